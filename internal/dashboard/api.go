// Package dashboard serves the production board as HTML and as a JSON API.
package dashboard

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/jaakkos/prodboard/internal/app"
	"github.com/jaakkos/prodboard/internal/domain"
)

// SummaryResponse is the JSON response from /api/summary.
type SummaryResponse struct {
	Date      string             `json:"date"`
	Available bool               `json:"available"`
	Notice    string             `json:"notice,omitempty"`
	Scope     domain.TotalsScope `json:"scope"`
	Summary   domain.Totals      `json:"summary"`
	Source    string             `json:"source,omitempty"`
	LoadedAt  string             `json:"loaded_at,omitempty"`
	LoadError string             `json:"load_error,omitempty"`
}

// UrgentResponse is the JSON response from /api/urgent.
type UrgentResponse struct {
	Threshold int                    `json:"threshold"`
	Notice    string                 `json:"notice,omitempty"`
	Accounts  []domain.AccountRecord `json:"accounts"`
}

// AccountsResponse is the JSON response from /api/accounts.
type AccountsResponse struct {
	app.View
	Options app.FilterOptions `json:"options"`
}

// Handler holds dependencies for dashboard HTTP handlers.
type Handler struct {
	svc    *app.BoardService
	logger *log.Logger
}

// HandlerOption configures optional dependencies for the dashboard handler.
type HandlerOption func(*Handler)

// WithLogger sets the logger for request failures (default discards).
func WithLogger(l *log.Logger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler creates a dashboard handler.
func NewHandler(svc *app.BoardService, opts ...HandlerOption) *Handler {
	h := &Handler{svc: svc, logger: log.New(io.Discard, "", 0)}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes adds dashboard routes to the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/board", h.handleAPIBoard)
	mux.HandleFunc("/api/summary", h.handleAPISummary)
	mux.HandleFunc("/api/urgent", h.handleAPIUrgent)
	mux.HandleFunc("/api/accounts", h.handleAPIAccounts)
	mux.HandleFunc("/api/charts", h.handleAPICharts)
	mux.HandleFunc("/api/reload", h.handleAPIReload)
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/dashboard", h.handleDashboard)
	mux.HandleFunc("/dashboard/", h.handleDashboard)
}

// filterFromRequest reads the editor and category query parameters; absent means "all".
func filterFromRequest(r *http.Request) domain.Filter {
	q := r.URL.Query()
	return domain.NewFilter(q.Get("editor"), q.Get("category"))
}

func (h *Handler) board(r *http.Request) *app.Board {
	return h.svc.Board(filterFromRequest(r))
}

func (h *Handler) handleAPIBoard(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, h.board(r))
}

func (h *Handler) handleAPISummary(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	b := h.board(r)
	resp := SummaryResponse{
		Date:      b.Date,
		Available: b.Available,
		Notice:    b.Notice,
		Scope:     b.Scope,
		Summary:   b.Summary,
		Source:    b.Source,
		LoadError: b.LoadError,
	}
	if !b.LoadedAt.IsZero() {
		resp.LoadedAt = b.LoadedAt.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleAPIUrgent(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	b := h.board(r)
	writeJSON(w, http.StatusOK, UrgentResponse{
		Threshold: h.svc.Options().UrgentThreshold,
		Notice:    b.Notice,
		Accounts:  b.Urgent,
	})
}

func (h *Handler) handleAPIAccounts(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	b := h.board(r)
	writeJSON(w, http.StatusOK, AccountsResponse{View: b.View, Options: b.Options})
}

func (h *Handler) handleAPICharts(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	b := h.board(r)
	switch {
	case !b.Available:
		writeError(w, http.StatusServiceUnavailable, b.Notice)
	case b.Charts == nil:
		writeError(w, http.StatusInternalServerError, "chart rendering failed: "+b.ChartError)
	default:
		writeJSON(w, http.StatusOK, b.Charts)
	}
}

func (h *Handler) handleAPIReload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	res, err := h.svc.Reload()
	if err != nil {
		h.logger.Printf("Dashboard: reload failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ds := h.svc.Dataset()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"available": ds.Available(),
		"accounts":  len(ds.Accounts),
	})
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
