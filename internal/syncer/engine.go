package syncer

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/openregs/docketsync/internal/comments"
	"github.com/openregs/docketsync/internal/regsapi"
)

// API is the slice of the docket API the engine consumes.
type API interface {
	Documents(ctx context.Context, q regsapi.DocumentsQuery) (regsapi.DocumentsPage, error)
	Document(ctx context.Context, documentID string) (regsapi.DocumentDetail, error)
}

// AttachmentResolver materializes one attachment descriptor into local paths.
type AttachmentResolver interface {
	Resolve(ctx context.Context, docID string, seq int, att regsapi.Attachment) ([]string, error)
}

// Engine pages through the docket listing and appends comments it has not
// seen before to the table. It performs no retries of its own; transient
// upstream failures are the API layer's concern and anything unrecovered
// propagates out of Run.
type Engine struct {
	api      API
	resolver AttachmentResolver
	table    *comments.Table
	cfg      Config
	logger   *zap.Logger
}

// New constructs an Engine over a possibly pre-populated table.
func New(api API, resolver AttachmentResolver, table *comments.Table, cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		api:      api,
		resolver: resolver,
		table:    table,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run executes the pagination loop. The true record count is only known
// after the first page; a page without a documents collection ends the run
// without error, covering both "query matched nothing" and a malformed page.
func (e *Engine) Run(ctx context.Context) error {
	offset := e.cfg.StartOffset
	total := -1
	for {
		page, err := e.api.Documents(ctx, regsapi.DocumentsQuery{
			DocketID:   e.cfg.DocketID,
			PostedDate: e.cfg.PostedDate,
			PerPage:    e.cfg.PageSize,
			PageOffset: offset,
		})
		if err != nil {
			return err
		}
		if !page.HasResults() {
			e.logger.Warn("page without results, treating as end of data",
				zap.Int("offset", offset),
				zap.Int("total", total))
			return nil
		}
		if total < 0 {
			total = page.TotalNumRecords
			e.logger.Info("listing opened",
				zap.String("docket", e.cfg.DocketID),
				zap.String("posted_date", e.cfg.PostedDate),
				zap.Int("total_records", total))
		}

		for _, summary := range page.Results() {
			if e.table.Has(summary.DocumentID) {
				totalCommentsSkipped.Inc()
				e.logger.Debug("already retrieved, skipping",
					zap.String("docid", summary.DocumentID))
				continue
			}
			if err := e.fetchOne(ctx, summary.DocumentID); err != nil {
				return err
			}
		}

		offset += e.cfg.PageSize
		if offset >= total {
			return nil
		}
	}
}

// fetchOne pulls the full detail, resolves attachments when the upstream
// count says any exist, and appends the normalized record.
func (e *Engine) fetchOne(ctx context.Context, docID string) error {
	detail, err := e.api.Document(ctx, docID)
	if err != nil {
		return err
	}

	rec := comments.Record{
		DocID:          detail.DocumentID,
		TrackingNumber: detail.TrackingNumber,
		RIN:            detail.RIN,
		Title:          detail.Title,
		DatePosted:     detail.PostedDate,
		DateReceived:   detail.ReceivedDate,
		CommentText:    detail.Comment,
	}

	if detail.HasAttachments() {
		var paths []string
		for i, att := range detail.Attachments {
			got, err := e.resolver.Resolve(ctx, docID, i+1, att)
			if err != nil {
				return err
			}
			paths = append(paths, got...)
		}
		rec.Attachments = strings.Join(paths, " ")
	}

	if err := e.table.Append(rec); err != nil {
		return err
	}
	totalCommentsStored.Inc()
	e.logger.Info("comment stored",
		zap.String("docid", docID),
		zap.Int("table_rows", e.table.Len()))
	return nil
}
