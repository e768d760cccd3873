// Package httpd serves the sheet tools over HTTP.
//
//	GET  /tools         lists the tools and their arguments
//	POST /tools/{name}  invokes a tool with a JSON object of string arguments
package httpd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/uhppoted/uhppoted-lib/log"

	"github.com/sheetsync/sheetsync/tools"
)

type HTTPD struct {
	tools   *tools.Tools
	router  *chi.Mux
	timeout time.Duration
	debug   bool
}

type response struct {
	ID     string `json:"id"`
	Tool   string `json:"tool"`
	Result any    `json:"result"`
}

const DEFAULT_TIMEOUT = 5 * time.Minute

func NewHTTPD(t *tools.Tools, timeout time.Duration, debug bool) *HTTPD {
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT
	}

	h := HTTPD{
		tools:   t,
		router:  chi.NewRouter(),
		timeout: timeout,
		debug:   debug,
	}

	h.router.Use(middleware.RequestID)
	h.router.Use(middleware.RealIP)
	h.router.Use(middleware.Logger)
	h.router.Use(middleware.Recoverer)
	h.router.Use(middleware.Timeout(timeout))

	h.router.Get("/tools", h.list)
	h.router.Post("/tools/{tool}", h.call)

	return &h
}

func (h *HTTPD) Handler() http.Handler {
	return h.router
}

// Run listens on 'bind' until the context is cancelled.
func (h *HTTPD) Run(ctx context.Context, bind string) error {
	srv := &http.Server{
		Addr:              bind,
		Handler:           h.router,
		ReadHeaderTimeout: 15 * time.Second,
	}

	errs := make(chan error, 1)

	go func() {
		log.Infof("listening on %v", bind)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}

		close(errs)
	}()

	select {
	case err := <-errs:
		return err

	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdown); err != nil {
			log.Warnf("%v", err)
		}

		return nil
	}
}

func (h *HTTPD) list(w http.ResponseWriter, r *http.Request) {
	reply(w, http.StatusOK, tools.List())
}

func (h *HTTPD) call(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "tool")
	args := map[string]string{}

	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
			replyError(w, http.StatusBadRequest, fmt.Sprintf("invalid request (%v)", err))
			return
		}
	}

	id := uuid.New().String()
	start := time.Now()

	if h.debug {
		log.Debugf("%v  %v  %v", id, name, args)
	}

	result, err := h.tools.Call(r.Context(), name, args)
	if errors.Is(err, tools.ErrUnknownTool) {
		replyError(w, http.StatusNotFound, err.Error())
		return
	} else if err != nil {
		replyError(w, http.StatusBadRequest, err.Error())
		return
	}

	log.Infof("%v  %v  %v", id, name, time.Since(start).Round(time.Millisecond))

	reply(w, http.StatusOK, response{
		ID:     id,
		Tool:   name,
		Result: result,
	})
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("error encoding response (%v)", err)
	}
}

func replyError(w http.ResponseWriter, status int, message string) {
	reply(w, status, map[string]string{"error": message})
}
