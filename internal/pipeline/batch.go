package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/latinscan/internal/model"
)

// DefaultConcurrency is the number of documents scanned at once when no
// concurrency is configured.
const DefaultConcurrency = 4

// Source is one document to scan.
type Source struct {
	// Name is the document name, usually the input path.
	Name string

	// Lines holds the verse lines in order.
	Lines []string
}

// BatchProcessor scans several documents concurrently.
type BatchProcessor struct {
	scanner     *Scanner
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent document scans.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor. The scanner is shared by all
// document scans.
func NewBatchProcessor(scanner *Scanner, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		scanner:     scanner,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch scans the sources concurrently and returns the documents in
// source order. Cancellation stops the batch and returns the context error.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, sources []Source) ([]*model.Document, error) {
	docs := make([]*model.Document, len(sources))
	err := bp.ProcessBatchWithCallback(ctx, sources, func(doc *model.Document, index int) {
		docs[index] = doc
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// ProcessBatchWithCallback scans the sources and calls callback for each
// completed document with its index in sources. The callback runs on the
// goroutine that scanned the document and must be safe for concurrent use
// when it touches shared state.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	sources []Source,
	callback func(doc *model.Document, index int),
) error {
	bp.logger.Info("starting batch processing",
		"total_documents", len(sources),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, src := range sources {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Debug("scanning document",
				"document", src.Name,
				"index", i+1,
				"total", len(sources),
			)

			doc, err := bp.scanner.ScanDocument(ctx, src.Lines, src.Name)
			if err != nil {
				bp.logger.Warn("document scan aborted",
					"document", src.Name,
					"error", err,
				)
				return err
			}

			callback(doc, i)
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch processing complete",
		"total_documents", len(sources),
		"elapsed", time.Since(startTime),
	)

	return err
}
