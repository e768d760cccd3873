// Package sheetstest provides an in-memory fake of the Google Sheets v4 REST API for tests.
package sheetstest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const prefix = "/v4/spreadsheets/"

// Server is a fake Sheets API. Worksheets are grids of formatted cell text with a fixed
// number of rows (writes past the last row fail as they do with the real API).
type Server struct {
	*httptest.Server

	// ReadOnly makes every write fail with 403 PERMISSION_DENIED
	ReadOnly bool

	mu           sync.Mutex
	spreadsheets map[string]*spreadsheet
	calls        map[string]int
}

type spreadsheet struct {
	id     string
	title  string
	sheets []*sheet
}

type sheet struct {
	id      int64
	title   string
	rows    int
	columns int
	cells   [][]string
}

type apiError struct {
	code    int
	status  string
	message string
}

func NewServer() *Server {
	s := Server{
		spreadsheets: map[string]*spreadsheet{},
		calls:        map[string]int{},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get(prefix+"*", s.get)
	r.Put(prefix+"*", s.put)
	r.Post(prefix+"*", s.post)

	s.Server = httptest.NewServer(r)

	return &s
}

// Service returns a Sheets client that talks to the fake server.
func (s *Server) Service(ctx context.Context) (*sheets.Service, error) {
	return sheets.NewService(ctx,
		option.WithEndpoint(s.URL+"/"),
		option.WithHTTPClient(s.Client()))
}

// AddSpreadsheet creates (or replaces) an empty spreadsheet.
func (s *Server) AddSpreadsheet(id, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spreadsheets[id] = &spreadsheet{
		id:    id,
		title: title,
	}
}

// AddSheet adds a worksheet to a spreadsheet. The worksheet grid has exactly as many rows
// as 'cells' (but at least one) and 26 columns.
func (s *Server) AddSheet(id string, gid int64, title string, cells [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ss, ok := s.spreadsheets[id]
	if !ok {
		ss = &spreadsheet{id: id, title: id}
		s.spreadsheets[id] = ss
	}

	sh := sheet{
		id:      gid,
		title:   title,
		rows:    len(cells),
		columns: 26,
	}

	if sh.rows < 1 {
		sh.rows = 1
	}

	for _, row := range cells {
		sh.cells = append(sh.cells, append([]string{}, row...))
		if len(row) > sh.columns {
			sh.columns = len(row)
		}
	}

	ss.sheets = append(ss.sheets, &sh)
}

// Cells returns the used range of a worksheet, trimmed the same way as a values.get
// response.
func (s *Server) Cells(id, title string) [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ss, ok := s.spreadsheets[id]; ok {
		if sh := ss.sheet(title); sh != nil {
			return sh.read(&area{title: title, top: 1, left: 1})
		}
	}

	return nil
}

// RowCount returns the number of rows in the worksheet grid.
func (s *Server) RowCount(id, title string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ss, ok := s.spreadsheets[id]; ok {
		if sh := ss.sheet(title); sh != nil {
			return sh.rows
		}
	}

	return 0
}

// Calls returns the number of requests received for an API method e.g. "values.batchUpdate".
func (s *Server) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls[method]
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, rest, err := split(r)
	if err != nil {
		reply(w, nil, err)
		return
	}

	ss, ok := s.spreadsheets[id]
	if !ok {
		reply(w, nil, notFound("Requested entity was not found."))
		return
	}

	switch {
	case rest == "":
		s.calls["get"]++
		reply(w, ss.metadata(), nil)

	case strings.HasPrefix(rest, "/values/"):
		s.calls["values.get"]++

		a, sh, err := ss.area(unescape(strings.TrimPrefix(rest, "/values/")))
		if err != nil {
			reply(w, nil, err)
			return
		}

		values := [][]interface{}{}
		for _, row := range sh.read(a) {
			record := []interface{}{}
			for _, v := range row {
				record = append(record, v)
			}

			values = append(values, record)
		}

		reply(w, &sheets.ValueRange{
			Range:          unescape(strings.TrimPrefix(rest, "/values/")),
			MajorDimension: "ROWS",
			Values:         values,
		}, nil)

	default:
		reply(w, nil, notFound("Unknown method"))
	}
}

func (s *Server) put(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls["values.update"]++

	id, rest, err := split(r)
	if err != nil {
		reply(w, nil, err)
		return
	}

	ss, ok := s.spreadsheets[id]
	if !ok {
		reply(w, nil, notFound("Requested entity was not found."))
		return
	} else if s.ReadOnly {
		reply(w, nil, denied())
		return
	}

	var rq sheets.ValueRange
	if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
		reply(w, nil, invalid(err.Error()))
		return
	}

	a, sh, err := ss.area(unescape(strings.TrimPrefix(rest, "/values/")))
	if err != nil {
		reply(w, nil, err)
		return
	}

	if err := sh.write(a, rq.Values, r.URL.Query().Get("valueInputOption") == "USER_ENTERED"); err != nil {
		reply(w, nil, err)
		return
	}

	reply(w, &sheets.UpdateValuesResponse{SpreadsheetId: id}, nil)
}

func (s *Server) post(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, rest, err := split(r)
	if err != nil {
		reply(w, nil, err)
		return
	}

	id = strings.TrimSuffix(id, ":batchUpdate")

	ss, ok := s.spreadsheets[id]
	if !ok {
		reply(w, nil, notFound("Requested entity was not found."))
		return
	} else if s.ReadOnly {
		reply(w, nil, denied())
		return
	}

	switch {
	case rest == "" && strings.HasSuffix(r.URL.EscapedPath(), ":batchUpdate"):
		s.calls["batchUpdate"]++

		var rq sheets.BatchUpdateSpreadsheetRequest
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			reply(w, nil, invalid(err.Error()))
			return
		}

		if err := ss.update(rq.Requests); err != nil {
			reply(w, nil, err)
			return
		}

		reply(w, &sheets.BatchUpdateSpreadsheetResponse{SpreadsheetId: id}, nil)

	case rest == ":batchUpdate":
		s.calls["values.batchUpdate"]++

		var rq sheets.BatchUpdateValuesRequest
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			reply(w, nil, invalid(err.Error()))
			return
		}

		// ... validate everything first, the batch is all or nothing
		type write struct {
			area   *area
			sheet  *sheet
			values [][]interface{}
		}

		writes := []write{}
		for _, data := range rq.Data {
			a, sh, err := ss.area(data.Range)
			if err != nil {
				reply(w, nil, err)
				return
			} else if err := sh.check(a, data.Values); err != nil {
				reply(w, nil, err)
				return
			}

			writes = append(writes, write{a, sh, data.Values})
		}

		for _, v := range writes {
			v.sheet.write(v.area, v.values, rq.ValueInputOption == "USER_ENTERED")
		}

		reply(w, &sheets.BatchUpdateValuesResponse{SpreadsheetId: id}, nil)

	case rest == ":batchClear":
		s.calls["values.batchClear"]++

		var rq sheets.BatchClearValuesRequest
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			reply(w, nil, invalid(err.Error()))
			return
		}

		for _, v := range rq.Ranges {
			a, sh, err := ss.area(v)
			if err != nil {
				reply(w, nil, err)
				return
			}

			sh.clear(a)
		}

		reply(w, &sheets.BatchClearValuesResponse{SpreadsheetId: id, ClearedRanges: rq.Ranges}, nil)

	case strings.HasPrefix(rest, "/values/") && strings.HasSuffix(rest, ":append"):
		s.calls["values.append"]++

		var rq sheets.ValueRange
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			reply(w, nil, invalid(err.Error()))
			return
		}

		a, sh, err := ss.area(unescape(strings.TrimSuffix(strings.TrimPrefix(rest, "/values/"), ":append")))
		if err != nil {
			reply(w, nil, err)
			return
		}

		sh.append(a, rq.Values, r.URL.Query().Get("insertDataOption") == "INSERT_ROWS")

		reply(w, &sheets.AppendValuesResponse{SpreadsheetId: id}, nil)

	default:
		reply(w, nil, notFound("Unknown method"))
	}
}

// split separates the spreadsheet ID from the rest of the (escaped) request path.
func split(r *http.Request) (string, string, error) {
	path := r.URL.EscapedPath()
	if !strings.HasPrefix(path, prefix) {
		return "", "", notFound("Unknown method")
	}

	path = strings.TrimPrefix(path, prefix)
	id, rest := path, ""

	if ix := strings.Index(path, "/values"); ix >= 0 {
		id, rest = path[:ix], path[ix+len("/values"):]
		if strings.HasPrefix(rest, "/") {
			rest = "/values" + rest
		}
	}

	return unescape(id), rest, nil
}

func unescape(s string) string {
	if v, err := url.PathUnescape(s); err == nil {
		return v
	}

	return s
}

func reply(w http.ResponseWriter, response any, err error) {
	w.Header().Set("Content-Type", "application/json")

	if err != nil {
		e, ok := err.(*apiError)
		if !ok {
			e = invalid(err.Error())
		}

		w.WriteHeader(e.code)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    e.code,
				"message": e.message,
				"status":  e.status,
			},
		})

		return
	}

	json.NewEncoder(w).Encode(response)
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%v %v", e.status, e.message)
}

func notFound(message string) *apiError {
	return &apiError{code: http.StatusNotFound, status: "NOT_FOUND", message: message}
}

func invalid(message string) *apiError {
	return &apiError{code: http.StatusBadRequest, status: "INVALID_ARGUMENT", message: message}
}

func denied() *apiError {
	return &apiError{code: http.StatusForbidden, status: "PERMISSION_DENIED", message: "The caller does not have permission"}
}
