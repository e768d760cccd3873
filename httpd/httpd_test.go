package httpd

import (
	"bytes"
	"context"
	"encoding/json"
	syslog "log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uhppoted/uhppoted-lib/log"

	"github.com/sheetsync/sheetsync/spreadsheet/sheetstest"
	"github.com/sheetsync/sheetsync/tools"
)

func setup(t *testing.T) http.Handler {
	t.Helper()

	server := sheetstest.NewServer()
	t.Cleanup(server.Close)

	server.AddSpreadsheet("S1", "Accounts")
	server.AddSheet("S1", 0, "Members", [][]string{
		{"id", "name"},
		{"1", "Alice"},
	})
	server.AddSheet("S1", 8, "Archive", nil)

	google, err := server.Service(context.Background())
	require.NoError(t, err)

	return NewHTTPD(tools.NewTools(google, tools.Options{}), 0, false).Handler()
}

func TestListTools(t *testing.T) {
	h := setup(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tools", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var list []tools.Tool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 6)
	assert.Equal(t, "load_sheet", list[0].Name)
	assert.Equal(t, []string{"spreadsheet_url", "sheet_name"}, list[2].Args)
}

func TestCallTool(t *testing.T) {
	h := setup(t)

	body := `{"spreadsheet_url":"https://docs.google.com/spreadsheets/d/S1/edit"}`
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tools/get_sheet_names", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)

	var rsp struct {
		ID     string   `json:"id"`
		Tool   string   `json:"tool"`
		Result []string `json:"result"`
	}

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rsp))

	_, err := uuid.Parse(rsp.ID)
	assert.NoError(t, err)
	assert.Equal(t, "get_sheet_names", rsp.Tool)
	assert.Equal(t, []string{"Members", "Archive"}, rsp.Result)
}

func TestCallToolWithToolError(t *testing.T) {
	h := setup(t)

	body := `{"spreadsheet_url":"https://docs.google.com/spreadsheets/d/S1/edit#gid=404"}`
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tools/load_sheet", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)

	var rsp struct {
		Result string `json:"result"`
	}

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rsp))
	assert.True(t, strings.HasPrefix(rsp.Result, "Error loading sheet: "), "unexpected result %q", rsp.Result)
}

func TestCallUnknownTool(t *testing.T) {
	h := setup(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tools/drop_tables", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "unknown tool")
}

func TestCallToolWithInvalidRequest(t *testing.T) {
	h := setup(t)

	tests := []string{
		`{"spreadsheet_url":`,
		`{}`,
		`{"spreadsheet_url": 12}`,
	}

	for _, body := range tests {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tools/load_sheet", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, w.Code, "request %v", body)
	}
}

func TestCallToolLogsRequest(t *testing.T) {
	var buffer bytes.Buffer

	log.SetLogger(syslog.New(&buffer, "", 0))
	t.Cleanup(func() { log.SetLogger(syslog.Default()) })

	h := setup(t)

	body := `{"spreadsheet_url":"https://docs.google.com/spreadsheets/d/S1/edit"}`
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tools/get_sheet_names", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buffer.String(), "INFO ")
	assert.Contains(t, buffer.String(), "get_sheet_names")
}
