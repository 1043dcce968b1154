package handlers

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ainutools/ainconv/internal/db"
	"github.com/ainutools/ainconv/internal/lexicon"
	"github.com/ainutools/ainconv/internal/transliteration"
	"github.com/samber/lo"
)

type LexiconHandler struct {
	repo db.Repository
	log  *slog.Logger
}

func NewLexiconHandler(repo db.Repository, log *slog.Logger) *LexiconHandler {
	return &LexiconHandler{repo: repo, log: log}
}

type entryResponse struct {
	Latn      string   `json:"latn"`
	Kana      string   `json:"kana"`
	Cyrl      string   `json:"cyrl"`
	Syllables []string `json:"syllables"`
	Gloss     *string  `json:"gloss,omitempty"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

type paginationMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type listResponse struct {
	Data       []entryResponse `json:"data"`
	Pagination paginationMeta  `json:"pagination"`
}

func toEntryResponse(e db.Entry) entryResponse {
	resp := entryResponse{
		Latn:      e.Latn,
		Kana:      e.Kana,
		Cyrl:      e.Cyrl,
		Syllables: strings.Fields(e.Syllables),
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
		UpdatedAt: e.UpdatedAt.Format(time.RFC3339),
	}
	if e.Gloss.Valid {
		resp.Gloss = &e.Gloss.String
	}
	return resp
}

func (h *LexiconHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	prefix := lexicon.Normalize(q.Get("prefix"))

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 25
	}
	if page-1 > math.MaxInt32/limit {
		writeError(w, http.StatusBadRequest, "page out of range")
		return
	}
	offset := (page - 1) * limit

	total, err := h.repo.CountEntries(r.Context(), prefix)
	if err != nil {
		h.log.ErrorContext(r.Context(), "counting entries", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	entries, err := h.repo.ListEntries(r.Context(), db.ListEntriesParams{
		Prefix: prefix,
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "listing entries", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Data: lo.Map(entries, func(e db.Entry, _ int) entryResponse {
			return toEntryResponse(e)
		}),
		Pagination: paginationMeta{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

func (h *LexiconHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := lexicon.Lookup(r.Context(), h.repo, r.PathValue("latn"))
	if err != nil {
		if db.IsNoRows(err) {
			writeError(w, http.StatusNotFound, "entry not found")
			return
		}
		h.log.ErrorContext(r.Context(), "getting entry", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(e))
}

type createEntryRequest struct {
	Latn  string `json:"latn"`
	Gloss string `json:"gloss"`
}

func (h *LexiconHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Latn) == "" {
		writeError(w, http.StatusBadRequest, "latn is required")
		return
	}
	if transliteration.Detect(req.Latn) != transliteration.Latn {
		writeError(w, http.StatusBadRequest, "latn must be written in the Latin script")
		return
	}

	e, err := h.repo.UpsertEntry(r.Context(), lexicon.NewEntry(req.Latn, req.Gloss))
	if err != nil {
		h.log.ErrorContext(r.Context(), "upserting entry", "latn", req.Latn, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.log.InfoContext(r.Context(), "lexicon entry saved", "latn", e.Latn)
	writeJSON(w, http.StatusCreated, toEntryResponse(e))
}

func (h *LexiconHandler) Delete(w http.ResponseWriter, r *http.Request) {
	latn := lexicon.Normalize(r.PathValue("latn"))
	rows, err := h.repo.DeleteEntry(r.Context(), latn)
	if err != nil {
		h.log.ErrorContext(r.Context(), "deleting entry", "latn", latn, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if rows == 0 {
		writeError(w, http.StatusNotFound, "entry not found")
		return
	}

	h.log.InfoContext(r.Context(), "lexicon entry deleted", "latn", latn)
	w.WriteHeader(http.StatusNoContent)
}
