package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/athapong/adf-mcp/pkg/adf"
	"github.com/athapong/adf-mcp/pkg/mdstats"
	"github.com/athapong/adf-mcp/pkg/metrics"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const metricsSource = "batch"

// Pipeline converts batches of ADF documents concurrently. Every document
// gets its own conversion state, so one Converter serves all workers.
type Pipeline struct {
	converter *adf.Converter
	logger    *logrus.Logger
	batchSize int
	withStats bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithBatchSize sets how many documents are converted at once.
func WithBatchSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

// WithLogger replaces the default JSON logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithStats enables Markdown statistics on every converted document.
func WithStats(enabled bool) Option {
	return func(p *Pipeline) {
		p.withStats = enabled
	}
}

// New creates a new conversion pipeline
func New(converter *adf.Converter, opts ...Option) *Pipeline {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if converter == nil {
		converter = adf.NewConverter(adf.WithLogger(logger))
	}

	p := &Pipeline{
		converter: converter,
		batchSize: 10,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// BatchProcess converts documents batchSize at a time. A failing document
// does not stop the others; its error is kept on Document.Err and counted in
// the returned error.
func (p *Pipeline) BatchProcess(ctx context.Context, docs []*Document) error {
	p.logger.WithField("document_count", len(docs)).Info("Starting batch processing")

	failed := 0
	for i := 0; i < len(docs); i += p.batchSize {
		if err := ctx.Err(); err != nil {
			metrics.BatchQueueLength.Set(0)
			return errors.Wrap(err, "batch processing cancelled")
		}
		metrics.BatchQueueLength.Set(float64(len(docs) - i))

		end := i + p.batchSize
		if end > len(docs) {
			end = len(docs)
		}

		batch := docs[i:end]
		errs := make(chan error, len(batch))
		var wg sync.WaitGroup

		for _, doc := range batch {
			wg.Add(1)
			go func(d *Document) {
				defer wg.Done()
				if err := p.Process(ctx, d); err != nil {
					log := p.logger.WithError(err)
					if d != nil {
						log = log.WithField("doc_id", d.ID)
					}
					log.Error("Failed to convert document")
					errs <- err
				}
			}(doc)
		}

		wg.Wait()
		close(errs)
		for range errs {
			failed++
		}
	}
	metrics.BatchQueueLength.Set(0)

	if failed > 0 {
		return errors.Errorf("batch processing failed: %d of %d documents failed", failed, len(docs))
	}

	p.logger.Info("Batch processing completed successfully")
	return nil
}

// Process converts a single document in place.
func (p *Pipeline) Process(ctx context.Context, doc *Document) error {
	if doc == nil {
		return errors.New("cannot process nil document")
	}
	if err := ctx.Err(); err != nil {
		doc.Err = err
		return err
	}

	log := p.logger.WithFields(logrus.Fields{"doc_id": doc.ID, "source": doc.Source})
	log.Debug("Converting document")

	start := time.Now()
	root, err := adf.ParseAt(doc.Data, doc.Path)
	if err != nil {
		doc.Err = errors.Wrapf(err, "parse %s", doc.Source)
		metrics.ObserveConversion(metricsSource, nil, doc.Err, time.Since(start))
		return doc.Err
	}

	res, err := p.converter.ConvertWithResult(root)
	metrics.ObserveConversion(metricsSource, res, err, time.Since(start))
	if err != nil {
		doc.Err = errors.Wrapf(err, "convert %s", doc.Source)
		return doc.Err
	}

	doc.Markdown = res.Markdown
	doc.Warnings = res.Warnings
	if p.withStats {
		stats := mdstats.Analyze(doc.Markdown)
		doc.Stats = &stats
	}

	log.WithField("warnings", len(res.Warnings)).Debug("Document converted")
	return nil
}
