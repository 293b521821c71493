// Package httpserver is the REST facade over the operation dispatcher. Each
// route translates its request shape into an operation name plus argument
// bag and returns the dispatcher's envelope as the JSON body. Transport
// problems (bad JSON, missing body) are 400s; dispatch-level failures stay
// inside the envelope with a 200 status, matching the stdio surface.
package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/tomyedwab/sqlite-tools/database"
	"github.com/tomyedwab/sqlite-tools/dispatch"
)

type Server struct {
	dispatcher *dispatch.Dispatcher
	db         *database.Database
}

func New(dispatcher *dispatch.Dispatcher, db *database.Database) *Server {
	return &Server{dispatcher: dispatcher, db: db}
}

type queryBody struct {
	Query string `json:"query"`
}

type insertBody struct {
	Data map[string]any `json:"data"`
}

type updateBody struct {
	Data  map[string]any `json:"data"`
	Where map[string]any `json:"where"`
}

type deleteBody struct {
	Where map[string]any `json:"where"`
}

type toolBody struct {
	Arguments map[string]any `json:"arguments"`
}

// Handler builds the route table. Method-qualified patterns keep the
// per-route handlers free of method checks.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /tables", s.handleListTables)
	mux.HandleFunc("GET /tables/{tableName}", s.handleDescribeTable)
	mux.HandleFunc("POST /query", s.handleQuery)
	mux.HandleFunc("POST /tables/{tableName}/insert", s.handleInsert)
	mux.HandleFunc("PUT /tables/{tableName}/update", s.handleUpdate)
	mux.HandleFunc("DELETE /tables/{tableName}/delete", s.handleDelete)
	mux.HandleFunc("POST /tools/{toolName}", s.handleTool)

	return ApplyDefault(mux.ServeHTTP)
}

// Serve runs the HTTP listener until the context is cancelled, then shuts
// down gracefully.
func (s *Server) Serve(ctx context.Context, port int) error {
	listenAddr := fmt.Sprintf(":%d", port)
	srv := &http.Server{Addr: listenAddr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on %s", listenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unhealthy", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	s.dispatchAndWrite(w, r, string(dispatch.OpListTables), nil)
}

func (s *Server) handleDescribeTable(w http.ResponseWriter, r *http.Request) {
	args := map[string]any{"table_name": r.PathValue("tableName")}
	s.dispatchAndWrite(w, r, string(dispatch.OpDescribeTable), args)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var body queryBody
	if !decodeBody(w, r, &body) {
		return
	}
	s.dispatchAndWrite(w, r, string(dispatch.OpRunQuery), map[string]any{"query": body.Query})
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	var body insertBody
	if !decodeBody(w, r, &body) {
		return
	}
	args := map[string]any{
		"table_name": r.PathValue("tableName"),
	}
	if body.Data != nil {
		args["data"] = body.Data
	}
	s.dispatchAndWrite(w, r, string(dispatch.OpInsertRow), args)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var body updateBody
	if !decodeBody(w, r, &body) {
		return
	}
	args := map[string]any{
		"table_name": r.PathValue("tableName"),
	}
	if body.Data != nil {
		args["data"] = body.Data
	}
	if body.Where != nil {
		args["where"] = body.Where
	}
	s.dispatchAndWrite(w, r, string(dispatch.OpUpdateRow), args)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	var body deleteBody
	if !decodeBody(w, r, &body) {
		return
	}
	args := map[string]any{
		"table_name": r.PathValue("tableName"),
	}
	if body.Where != nil {
		args["where"] = body.Where
	}
	s.dispatchAndWrite(w, r, string(dispatch.OpDeleteRow), args)
}

// handleTool dispatches any operation by name, mirroring the stdio
// surface's tools/call.
func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	var body toolBody
	if !decodeBody(w, r, &body) {
		return
	}
	s.dispatchAndWrite(w, r, r.PathValue("toolName"), body.Arguments)
}

func (s *Server) dispatchAndWrite(w http.ResponseWriter, r *http.Request, op string, args map[string]any) {
	if args == nil {
		args = map[string]any{}
	}
	env := s.dispatcher.Dispatch(r.Context(), op, args)
	writeJSON(w, http.StatusOK, env)
}

// decodeBody parses a JSON request body, reporting transport-level problems
// as 400s before any dispatch happens. Returns false if a response was
// already written.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		http.Error(w, "Missing request body", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON body: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, resp any) {
	out, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(out)
}
