package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ainutools/ainconv/internal/transliteration"
)

// Converter is the conversion service behind the API, normally a
// *cache.Converter.
type Converter interface {
	Convert(text string, from, to transliteration.Script) (string, transliteration.Script)
	Detect(text string) transliteration.Script
	Syllabify(text string) [][]string
}

type ConvertHandler struct {
	conv Converter
	log  *slog.Logger
}

func NewConvertHandler(conv Converter, log *slog.Logger) *ConvertHandler {
	return &ConvertHandler{conv: conv, log: log}
}

type convertRequest struct {
	Text string `json:"text"`
	To   string `json:"to"`
	From string `json:"from"`
}

type convertResponse struct {
	Text   string                 `json:"text"`
	From   transliteration.Script `json:"from"`
	To     transliteration.Script `json:"to"`
	Result string                 `json:"result"`
}

// parseTarget accepts the three convertible scripts.
func parseTarget(name string) (transliteration.Script, error) {
	s, err := transliteration.ParseScript(name)
	if err != nil {
		return transliteration.Unknown, err
	}
	switch s {
	case transliteration.Latn, transliteration.Cyrl, transliteration.Kana:
		return s, nil
	}
	return transliteration.Unknown, fmt.Errorf("cannot convert to or from %s", s)
}

// parseSource is parseTarget plus "" and "auto", which mean detect.
func parseSource(name string) (transliteration.Script, error) {
	if name == "" || strings.EqualFold(name, "auto") {
		return transliteration.Unknown, nil
	}
	return parseTarget(name)
}

func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.To == "" {
		writeError(w, http.StatusBadRequest, "to is required")
		return
	}
	to, err := parseTarget(req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to: "+err.Error())
		return
	}
	from, err := parseSource(req.From)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from: "+err.Error())
		return
	}

	result, used := h.conv.Convert(req.Text, from, to)
	h.log.DebugContext(r.Context(), "converted", "from", used, "to", to, "length", len(req.Text))

	writeJSON(w, http.StatusOK, convertResponse{
		Text:   req.Text,
		From:   used,
		To:     to,
		Result: result,
	})
}

type detectResponse struct {
	Text   string                 `json:"text"`
	Script transliteration.Script `json:"script"`
}

func (h *ConvertHandler) Detect(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	writeJSON(w, http.StatusOK, detectResponse{Text: text, Script: h.conv.Detect(text)})
}

type syllablesResponse struct {
	Text  string     `json:"text"`
	Words [][]string `json:"words"`
}

func (h *ConvertHandler) Syllables(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	words := h.conv.Syllabify(text)
	if words == nil {
		words = [][]string{}
	}
	writeJSON(w, http.StatusOK, syllablesResponse{Text: text, Words: words})
}
