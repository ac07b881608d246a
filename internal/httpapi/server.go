// Package httpapi is the HTTP shell: request parsing, the response
// envelope, error-to-status mapping, and a handful of REST convenience
// routes layered over the single /query endpoint. None of this is part
// of the core engine — see spec.md §1's "out of scope" list — but it is
// the thing that actually drives the engine from outside a test.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/minirel/minirel/internal/exec"
	"github.com/minirel/minirel/internal/sqlfe"
	"github.com/minirel/minirel/internal/storage"
)

// Server wires one engine handle to a set of HTTP routes.
type Server struct {
	Engine *storage.Engine
	Auth   *AuthConfig
	mux    *http.ServeMux
}

// NewServer builds a Server and registers its routes.
func NewServer(engine *storage.Engine, auth *AuthConfig) *Server {
	s := &Server{Engine: engine, Auth: auth, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/stats", s.handleStats)
	s.mux.HandleFunc("/query", s.handleQuery)
	s.mux.HandleFunc("/tables", s.handleTables)
	s.mux.HandleFunc("/tables/", s.handleTableResource)
}

// Handler returns the fully wrapped handler (auth, then request logging)
// suitable for http.ListenAndServe.
func (s *Server) Handler() http.Handler {
	return WithRequestLogging(s.Auth.Middleware(s.mux))
}

// envelope is the JSON response shape every route produces, matching
// spec.md §6's documented wire contract.
type envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Warning string `json:"warning,omitempty"`
	Message string `json:"message,omitempty"`
	Error   *errBody `json:"error,omitempty"`
}

type errBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func writeOK(w http.ResponseWriter, data any, warning string) {
	writeEnvelope(w, http.StatusOK, envelope{Status: "OK", Data: data, Warning: warning})
}

func writeErr(w http.ResponseWriter, err error) {
	status, kind := classifyError(err)
	writeEnvelope(w, status, envelope{
		Status: "ERROR",
		Error:  &errBody{Type: kind, Message: err.Error()},
	})
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// classifyError maps an engine/query error to an HTTP status and a type
// label, per spec.md §7: Parse/Schema/Execution/ConstraintViolation map
// to 400; any other EngineError maps to 400 with its concrete type name;
// anything else is a 500 with a generic message.
func classifyError(err error) (int, string) {
	switch err.(type) {
	case *sqlfe.ParseError:
		return http.StatusBadRequest, "ParseError"
	case *exec.ExecutionError:
		return http.StatusBadRequest, "ExecutionError"
	case *storage.SchemaError:
		return http.StatusBadRequest, "SchemaError"
	case *storage.ConstraintViolation:
		return http.StatusBadRequest, "ConstraintViolation"
	case *storage.PageError:
		return http.StatusBadRequest, "PageError"
	case *storage.StorageError:
		return http.StatusBadRequest, "StorageError"
	case *storage.EngineError:
		return http.StatusBadRequest, "EngineError"
	default:
		return http.StatusInternalServerError, "InternalError"
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeOK(w, map[string]any{"ok": true}, "")
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.Engine.Stats()
	writeOK(w, map[string]any{
		"tables":     stats.TableCount,
		"pages":      stats.PageCount,
		"page_size":  stats.PageSize,
		"page_bytes": humanize.Bytes(uint64(stats.PageCount * stats.PageSize)),
	}, "")
}

type queryRequest struct {
	SQL string `json:"sql"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, envelope{
			Status: "ERROR",
			Error:  &errBody{Type: "ParseError", Message: "invalid JSON body: " + err.Error()},
		})
		return
	}

	result, err := exec.Run(s.Engine, req.SQL)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, rowsToJSON(result.Rows), result.Warning)
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	writeOK(w, s.Engine.Catalog.ListNames(), "")
}

// handleTableResource serves GET /tables/{name} (schema) and
// GET/POST /tables/{name}/rows (scan / insert) as REST-flavored
// convenience wrappers over the same engine operations /query exercises.
func (s *Server) handleTableResource(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path[len("/tables/"):]
	name := path
	rows := false
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			name = path[:i]
			rows = path[i+1:] == "rows"
			break
		}
	}
	if name == "" {
		http.NotFound(w, r)
		return
	}

	table, err := s.Engine.Catalog.Get(name)
	if err != nil {
		writeErr(w, err)
		return
	}

	if !rows {
		writeOK(w, tableSchemaJSON(table), "")
		return
	}

	switch r.Method {
	case http.MethodGet:
		rowsOut, err := s.Engine.ScanTable(name)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeOK(w, rowsToJSON(rowsOut), "")
	case http.MethodPost:
		var body struct {
			Values []storage.Value `json:"values"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeEnvelope(w, http.StatusBadRequest, envelope{
				Status: "ERROR",
				Error:  &errBody{Type: "ParseError", Message: "invalid JSON body: " + err.Error()},
			})
			return
		}
		if err := s.Engine.InsertRow(name, body.Values); err != nil {
			writeErr(w, err)
			return
		}
		writeOK(w, nil, "")
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func tableSchemaJSON(t *storage.Table) map[string]any {
	cols := make([]map[string]any, len(t.Schema.Columns))
	for i, c := range t.Schema.Columns {
		cols[i] = map[string]any{
			"name":        c.Name,
			"type":        c.Dtype.String(),
			"nullable":    c.Nullable,
			"primary_key": c.PrimaryKey,
		}
	}
	return map[string]any{"name": t.Name, "columns": cols}
}

func rowsToJSON(rows []*storage.Row) []map[string]storage.Value {
	out := make([]map[string]storage.Value, 0, len(rows))
	for _, row := range rows {
		m := make(map[string]storage.Value, len(row.Keys()))
		for _, k := range row.Keys() {
			v, _ := row.Get(k)
			m[k] = v
		}
		out = append(out, m)
	}
	return out
}
