package app

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"grammarcheck/internal/checker"
	"grammarcheck/internal/customdict"
	"grammarcheck/internal/dictionary"
)

// Handler serves the checking and custom word API:
//
//	POST   /api/v1/check              {"text": "..."}
//	POST   /api/v1/check/batch        {"texts": ["...", ...]}
//	GET    /api/v1/rules
//	POST   /api/v1/custom-word        {"word": "...", "lemma": "...", "tag": "..."}
//	DELETE /api/v1/custom-word/{word}
type Handler struct {
	svc          *Service
	maxBodyBytes int64
	logger       *slog.Logger
	mux          *http.ServeMux
}

func NewHandler(svc *Service, maxBodyBytes int64, logger *slog.Logger) *Handler {
	h := &Handler{
		svc:          svc,
		maxBodyBytes: maxBodyBytes,
		logger:       logger.With("component", "http"),
		mux:          http.NewServeMux(),
	}
	h.mux.HandleFunc("POST /api/v1/check", h.check)
	h.mux.HandleFunc("POST /api/v1/check/batch", h.checkBatch)
	h.mux.HandleFunc("GET /api/v1/rules", h.rules)
	h.mux.HandleFunc("POST /api/v1/custom-word", h.addCustomWord)
	h.mux.HandleFunc("DELETE /api/v1/custom-word/{word}", h.removeCustomWord)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) { h.mux.ServeHTTP(w, r) }

func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !h.decode(w, r, &req) || strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	report, err := h.svc.Check(r.Context(), req.Text)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) checkBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Texts []string `json:"texts"`
	}
	if !h.decode(w, r, &req) || len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	reports, err := h.svc.CheckAll(r.Context(), req.Texts)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]*checker.Report{"reports": reports})
}

func (h *Handler) rules(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]checker.RuleInfo{"rules": h.svc.Rules()})
}

func (h *Handler) addCustomWord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Word  string `json:"word"`
		Lemma string `json:"lemma"`
		Tag   string `json:"tag"`
	}
	if !h.decode(w, r, &req) || strings.TrimSpace(req.Word) == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.svc.AddCustomWord(r.Context(), req.Word, dictionary.Entry{Lemma: req.Lemma, Tag: req.Tag}); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (h *Handler) removeCustomWord(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	if word == "" {
		writeError(w, http.StatusBadRequest, "word is required")
		return
	}
	n, err := h.svc.RemoveCustomWord(r.Context(), word)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "removed": n})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v) == nil
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, customdict.ErrInvalidWord):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNoCustomStore):
		writeError(w, http.StatusNotImplemented, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
