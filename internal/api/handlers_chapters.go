package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/bookseg/internal/pipeline"
	"github.com/dgallion1/bookseg/internal/segment"
	"github.com/dgallion1/bookseg/internal/store"
)

func (s *Server) handleGetChapter(w http.ResponseWriter, r *http.Request) {
	chapterID := chi.URLParam(r, "chapterID")
	ch, err := s.store.Chapter(r.Context(), chapterID)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "chapter not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("get chapter failed", "chapter_id", chapterID, "error", err)
		jsonError(w, "failed to load chapter", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ch)
}

type splitRequest struct {
	MaxTokens int `json:"max_tokens"`
}

// handleSplitChapter cuts an oversized chapter into token-bounded parts
// and replaces it in storage. A chapter that cannot be usefully divided
// is reported as a client error and left untouched.
func (s *Server) handleSplitChapter(w http.ResponseWriter, r *http.Request) {
	chapterID := chi.URLParam(r, "chapterID")
	ch, err := s.store.Chapter(r.Context(), chapterID)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "chapter not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("get chapter failed", "chapter_id", chapterID, "error", err)
		jsonError(w, "failed to load chapter", http.StatusInternalServerError)
		return
	}

	maxTokens := s.cfg.TokenThreshold()
	if r.Body != nil && r.ContentLength != 0 {
		var req splitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if req.MaxTokens != 0 {
			maxTokens = req.MaxTokens
		}
	}

	chunks, err := s.seg.Split(segment.Chapter{
		Title:      ch.Title,
		Content:    ch.Content,
		Level:      ch.Level,
		Order:      ch.Ord,
		Number:     ch.Number,
		TokenCount: ch.TokenCount,
	}, maxTokens)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(chunks) <= 1 {
		jsonError(w, "unable to split chapter effectively", http.StatusBadRequest)
		return
	}

	parts := make([]store.Chapter, len(chunks))
	for i, c := range chunks {
		parts[i] = store.Chapter{
			ID:         pipeline.NewID(),
			DocumentID: ch.DocumentID,
			Title:      c.Title,
			Content:    c.Content,
			Level:      c.Level,
			Ord:        c.Order,
			Part:       c.Part,
			Number:     c.Number,
			TokenCount: c.TokenCount,
		}
	}

	if err := s.store.ReplaceChapter(r.Context(), chapterID, parts); err != nil {
		s.log.Error("replace chapter failed", "chapter_id", chapterID, "error", err)
		jsonError(w, "failed to store split parts", http.StatusInternalServerError)
		return
	}

	s.log.Info("chapter split", "chapter_id", chapterID, "parts", len(parts), "max_tokens", maxTokens)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"chapters": parts})
}
