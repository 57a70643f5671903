package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/codewithboateng/signoff/internal/check"
	"github.com/codewithboateng/signoff/internal/checklist"
	"github.com/codewithboateng/signoff/internal/ir"
)

// Server exposes the validation pipeline as a stateless HTTP surface: every
// request carries its own item config and records, and nothing is stored.
type Server struct {
	Logger *slog.Logger
	Token  string // bearer token; empty disables auth
	Strict bool
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	withCORS := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS, POST")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			h(w, r)
		}
	}

	// Health
	mux.HandleFunc("GET /api/v1/health", withCORS(s.handleHealth))

	// Output contract inventory (read-only, no auth)
	mux.HandleFunc("GET /api/v1/contract", withCORS(s.handleContract))

	// Validation
	mux.HandleFunc("POST /api/v1/validate", withCORS(withAuth(s, s.handleValidate)))

	// Fallback 404
	mux.HandleFunc("/", withCORS(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"timestamp": time.Now().UTC(),
	})
}

// GET /api/v1/contract (per-mode output keys)
func (s *Server) handleContract(w http.ResponseWriter, r *http.Request) {
	modes := map[string][]string{}
	for _, m := range []ir.Mode{ir.ModeExistence, ir.ModePattern, ir.ModePatternWaiver, ir.ModeExistenceWaiver} {
		modes[modeKey(m)] = check.ContractKeys(m)
	}
	writeJSON(w, http.StatusOK, map[string]any{"modes": modes, "ir_version": ir.Version})
}

type validateRequest struct {
	Item          checklist.Item    `json:"item"`
	Records       []ir.ParsedRecord `json:"records"`
	SearchedPaths []string          `json:"searched_paths"`
}

type validateResponse struct {
	ID            string         `json:"id"`
	Mode          ir.Mode        `json:"mode,omitempty"`
	Status        ir.Status      `json:"status"`
	Result        map[string]any `json:"result,omitempty"`
	Diagnostics   []string       `json:"diagnostics,omitempty"`
	SearchedPaths []string       `json:"searched_paths,omitempty"`
}

// POST /api/v1/validate
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.err(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}
	if req.Item.ID == "" {
		s.err(w, http.StatusBadRequest, "item.id is required")
		return
	}

	c := checklist.Compile(req.Item, checklist.Options{Strict: s.Strict, Logger: s.Logger})
	out, err := c.Run(req.Records)
	if err != nil {
		// Fatal config errors are a distinct INVALID outcome, not a 5xx.
		writeJSON(w, http.StatusUnprocessableEntity, validateResponse{
			ID:          req.Item.ID,
			Status:      ir.StatusInvalid,
			Diagnostics: []string{err.Error()},
		})
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{
		ID:            req.Item.ID,
		Mode:          out.Mode,
		Status:        out.Status,
		Result:        out.Result,
		Diagnostics:   out.Diagnostics,
		SearchedPaths: check.NormalizePaths(req.SearchedPaths),
	})
}

func (s *Server) err(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func modeKey(m ir.Mode) string {
	switch m {
	case ir.ModeExistence:
		return "1"
	case ir.ModePattern:
		return "2"
	case ir.ModePatternWaiver:
		return "3"
	default:
		return "4"
	}
}
