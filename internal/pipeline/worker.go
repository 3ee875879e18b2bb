package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/bookseg/internal/parser"
	"github.com/dgallion1/bookseg/internal/segment"
	"github.com/dgallion1/bookseg/internal/store"
)

// Worker processes a single document job: parse the upload, segment the
// text into chapters, persist the result.
type Worker struct {
	store       *store.Store
	seg         *segment.Segmenter
	log         *slog.Logger
	pdfFallback bool
}

func NewWorker(st *store.Store, seg *segment.Segmenter, log *slog.Logger, pdfFallback bool) *Worker {
	return &Worker{
		store:       st,
		seg:         seg,
		log:         log,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if pp, ok := p.(*parser.PDFParser); ok {
		pp.FallbackPdftotext = w.pdfFallback
	}

	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	title := doc.Title
	if job.Title != "" {
		title = job.Title
	}
	job.SetTitle(title)
	job.ContentHash = ContentHashHex([]byte(doc.Text))

	// Phase 2: Segment
	job.SetStatus(StatusSegmenting, "segmenting")
	seg := w.seg
	if job.Granularity != "" {
		seg = seg.WithGranularity(segment.Granularity(job.Granularity))
	}
	chapters := seg.Segment(doc.Text, title)
	totalTokens := 0
	for _, ch := range chapters {
		totalTokens += ch.TokenCount
	}
	job.SetResult(len(chapters), totalTokens)
	log.Info("segmented document", "chapters", len(chapters), "tokens", totalTokens)

	// Phase 3: Store
	job.SetStatus(StatusStoring, "storing")
	rows := make([]store.Chapter, len(chapters))
	for i, ch := range chapters {
		rows[i] = store.Chapter{
			ID:         NewID(),
			DocumentID: job.DocID,
			Title:      ch.Title,
			Content:    ch.Content,
			Level:      ch.Level,
			Ord:        ch.Order,
			Number:     ch.Number,
			TokenCount: ch.TokenCount,
		}
	}
	err = w.store.SaveDocument(ctx, store.Document{
		ID:          job.DocID,
		Title:       title,
		Filename:    job.Filename,
		Granularity: job.Granularity,
		CreatedAt:   time.Now(),
	}, rows)
	if err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	job.SetStatus(StatusCompleted, "done")
}
