package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/aggarwalkavyanew-dev/apollo-contact-extractor/internal/credit"
	"github.com/aggarwalkavyanew-dev/apollo-contact-extractor/internal/model"
)

// LookupEngine resolves one profile URL into a contact record.
type LookupEngine interface {
	Lookup(ctx context.Context, linkedinURL string) model.ContactRecord
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithProgressEvery sets how many records go between progress log lines.
func WithProgressEvery(n int) ProcessorOption {
	return func(p *Processor) {
		if n > 0 {
			p.progressEvery = n
		}
	}
}

// Processor runs the lookup engine over a batch of identifiers, strictly
// one at a time and in input order.
type Processor struct {
	engine        LookupEngine
	usage         *credit.Usage
	progressEvery int
}

// NewProcessor creates a Processor sharing the engine's usage tracker so
// the end-of-run summary reflects what the engine spent.
func NewProcessor(engine LookupEngine, usage *credit.Usage, opts ...ProcessorOption) *Processor {
	p := &Processor{
		engine:        engine,
		usage:         usage,
		progressEvery: 10,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run resolves every identifier and returns one record per input, in
// input order. Individual lookup failures never abort the batch; only
// cancellation stops it early, returning the records completed so far
// alongside the error.
func (p *Processor) Run(ctx context.Context, ids []string) ([]model.ContactRecord, error) {
	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))
	log.Info("batch started", zap.Int("identifiers", len(ids)))

	records := make([]model.ContactRecord, 0, len(ids))
	var withEmail, withMobile, withError int

	for i, id := range ids {
		if ctx.Err() != nil {
			log.Warn("batch cancelled", zap.Int("processed", len(records)), zap.Int("total", len(ids)))
			return records, eris.Wrap(ctx.Err(), "pipeline: batch cancelled")
		}

		rec := p.engine.Lookup(ctx, id)
		records = append(records, rec)

		if rec.VerifiedEmail != "" {
			withEmail++
		}
		if rec.VerifiedMobilePhone != "" {
			withMobile++
		}
		if rec.ApolloError != "" {
			withError++
		}

		if (i+1)%p.progressEvery == 0 {
			log.Info("progress", zap.Int("processed", i+1), zap.Int("total", len(ids)))
		}
	}

	summary := []zap.Field{
		zap.Int("records", len(records)),
		zap.Int("with_email", withEmail),
		zap.Int("with_mobile", withMobile),
		zap.Int("with_error", withError),
	}
	log.Info("batch complete", append(summary, p.usage.Fields()...)...)

	return records, nil
}
