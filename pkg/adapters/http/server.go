package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/internal/logging"
	"github.com/aretw0/rewind/pkg/books"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/go-chi/chi/v5"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// History defines the subset of the rewind engine exposed over HTTP.
type History interface {
	Record() error
	PerformUndo() error
	PerformRedo() error
	History() (undo, redo []rewind.Checkpoint)
	Stats() rewind.Stats
}

// Server implements the generated ServerInterface over a books desk and its history.
// The engine is single-threaded; every handler touching it holds mu.
type Server struct {
	Desk    *books.Desk
	History History
	Streams *StreamManager

	mu     sync.Mutex
	logger *slog.Logger
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStreams serves /events from sm. The engine must have been built with sm.Hooks()
// for events to flow.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		if sm != nil {
			s.Streams = sm
		}
	}
}

// NewServer creates a server over desk and history.
func NewServer(desk *books.Desk, history History, opts ...Option) *Server {
	s := &Server{
		Desk:    desk,
		History: history,
		Streams: NewStreamManager(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandler creates a new HTTP handler for the desk and its history.
func NewHandler(desk *books.Desk, history History, opts ...Option) http.Handler {
	return NewServer(desk, history, opts...).Routes()
}

// Routes builds the router. Extra routes (e.g. /metrics) can be mounted on the result.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(enableCORS)

	// Swagger UI
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			s.logger.Error("Failed to load OpenAPI spec", "error", err)
			return
		}
		w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	HandlerWithOptions(s, ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: s.paramError,
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Rewind API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// ListBooks handles GET /books.
func (s *Server) ListBooks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	printed := s.Desk.Factory().Books()
	out := make([]Book, len(printed))
	for i, b := range printed {
		out[i] = mapBook(b)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

// PrintBook handles POST /books.
func (s *Server) PrintBook(w http.ResponseWriter, r *http.Request) {
	var body PrintBookJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Source == "" {
		http.Error(w, "Invalid request body: source is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	b, err := s.Desk.Print(body.Source)
	var out Book
	if err == nil {
		out = mapBook(b)
	}
	s.mu.Unlock()

	if err != nil {
		s.fail(w, "PrintBook", err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// GetBook handles GET /books/{id}.
func (s *Server) GetBook(w http.ResponseWriter, r *http.Request, id BookID) {
	s.mu.Lock()
	b, found := s.Desk.Factory().Book(id)
	var out Book
	if found {
		out = mapBook(b)
	}
	s.mu.Unlock()

	if !found {
		s.fail(w, "GetBook", fmt.Errorf("book %d: %w", id, domain.ErrObjectNotFound))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// EditBook handles PUT /books/{id}.
func (s *Server) EditBook(w http.ResponseWriter, r *http.Request, id BookID) {
	s.mutateText(w, r, id, "EditBook", s.Desk.Edit)
}

// AppendBook handles POST /books/{id}/append.
func (s *Server) AppendBook(w http.ResponseWriter, r *http.Request, id BookID) {
	s.mutateText(w, r, id, "AppendBook", s.Desk.Append)
}

func (s *Server) mutateText(w http.ResponseWriter, r *http.Request, id BookID, op string, fn func(int, string) error) {
	var body TextRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn(op+": Invalid request body", "error", err)
		return
	}

	s.mu.Lock()
	err := fn(id, body.Text)
	var out Book
	if err == nil {
		b, _ := s.Desk.Factory().Book(id)
		out = mapBook(b)
	}
	s.mu.Unlock()

	if err != nil {
		s.fail(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// BurnBook handles DELETE /books/{id}.
func (s *Server) BurnBook(w http.ResponseWriter, r *http.Request, id BookID) {
	s.mu.Lock()
	err := s.Desk.Burn(id)
	s.mu.Unlock()

	if err != nil {
		s.fail(w, "BurnBook", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Record handles POST /record.
func (s *Server) Record(w http.ResponseWriter, r *http.Request) {
	s.apply(w, "Record", s.History.Record)
}

// Undo handles POST /undo. An empty history is a no-op and still answers 200.
func (s *Server) Undo(w http.ResponseWriter, r *http.Request) {
	s.apply(w, "Undo", s.History.PerformUndo)
}

// Redo handles POST /redo. An empty history is a no-op and still answers 200.
func (s *Server) Redo(w http.ResponseWriter, r *http.Request) {
	s.apply(w, "Redo", s.History.PerformRedo)
}

func (s *Server) apply(w http.ResponseWriter, op string, fn func() error) {
	s.mu.Lock()
	err := fn()
	resp := s.snapshot()
	s.mu.Unlock()

	if err != nil {
		s.fail(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetHistory handles GET /history.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := s.snapshot()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

// snapshot must be called with mu held.
func (s *Server) snapshot() HistoryResponse {
	undo, redo := s.History.History()
	st := s.History.Stats()
	return HistoryResponse{
		Undo: mapCheckpoints(undo),
		Redo: mapCheckpoints(redo),
		Stats: Stats{
			Capacity:   st.Capacity,
			UndoDepth:  st.UndoDepth,
			RedoDepth:  st.RedoDepth,
			UndoCursor: st.UndoCursor,
			RedoCursor: st.RedoCursor,
		},
	}
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{
		App:     "rewind-http",
		Version: strings.TrimSpace(rewind.Version),
	})
}

// -- Helpers --

func mapBook(b *books.Book) Book {
	c := b.SaveContent()
	return Book{Id: c.BookID, Source: c.SourcePath, Text: c.Text}
}

func mapCheckpoints(cps []rewind.Checkpoint) []Checkpoint {
	out := make([]Checkpoint, len(cps))
	for i, cp := range cps {
		out[i] = Checkpoint{Changed: nonNil(cp.Changed), Created: nonNil(cp.Created)}
	}
	return out
}

func nonNil(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSourceNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrReentrant):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	http.Error(w, fmt.Sprintf("%s error: %v", op, err), status)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "error", err)
		return
	}
	s.logger.Debug(op+" rejected", "error", err, "status", status)
}

func (s *Server) paramError(w http.ResponseWriter, r *http.Request, err error) {
	http.Error(w, err.Error(), http.StatusBadRequest)
	s.logger.Debug("request rejected", "path", r.URL.Path, "error", err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
