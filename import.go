/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package customerstore

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/customerstore/customer"
	"github.com/suparena/customerstore/datastore"
	"github.com/suparena/customerstore/document"
	"github.com/suparena/customerstore/errors"
)

// ImportOptions configures Import.
type ImportOptions struct {
	// SkipExisting leaves customers that are already stored untouched and counts
	// them as skipped. Otherwise imported records replace stored ones.
	SkipExisting bool
	// Strict runs Record.Validate on every record before writing it.
	Strict bool
	// ProgressEvery logs progress after every n documents. Zero disables it.
	ProgressEvery int
}

// ImportOption is a functional option for Import.
type ImportOption func(*ImportOptions)

// WithSkipExisting enables insert-only imports.
func WithSkipExisting() ImportOption {
	return func(o *ImportOptions) { o.SkipExisting = true }
}

// WithStrict enables record validation.
func WithStrict() ImportOption {
	return func(o *ImportOptions) { o.Strict = true }
}

// WithProgressEvery logs progress every n documents.
func WithProgressEvery(n int) ImportOption {
	return func(o *ImportOptions) { o.ProgressEvery = n }
}

// WithImportOptions applies a whole ImportOptions value, as loaded from configuration.
func WithImportOptions(opts ImportOptions) ImportOption {
	return func(o *ImportOptions) { *o = opts }
}

// ImportSummary reports the outcome of one Import run.
type ImportSummary struct {
	RunID      string          `json:"runId"`
	Total      int64           `json:"total"`
	Imported   int64           `json:"imported"`
	Skipped    int64           `json:"skipped"`
	Failures   []RecordFailure `json:"-"`
	StartedAt  strfmt.DateTime `json:"startedAt"`
	FinishedAt strfmt.DateTime `json:"finishedAt"`
}

// Failed returns the number of documents that were not written.
func (s *ImportSummary) Failed() int64 {
	return int64(len(s.Failures))
}

// Import reads every document from src, decodes it as a customer and writes it.
// A document that cannot be read, decoded, validated or written is recorded in
// the summary's Failures with its 0-based index and the import moves on. Import
// stops early only when ctx is done or src fails as a whole; the summary of the
// work done so far is returned with the error.
func (r *Repository) Import(ctx context.Context, src document.Source, opts ...ImportOption) (*ImportSummary, error) {
	var options ImportOptions
	for _, opt := range opts {
		opt(&options)
	}

	summary := &ImportSummary{
		RunID:     uuid.NewString(),
		StartedAt: strfmt.DateTime(time.Now().UTC()),
	}
	log := r.logger.With().Str("run", summary.RunID).Str("table", r.schema.Name).Logger()
	log.Info().Bool("skipExisting", options.SkipExisting).Bool("strict", options.Strict).Msg("import started")

	finish := func(err error) (*ImportSummary, error) {
		summary.FinishedAt = strfmt.DateTime(time.Now().UTC())
		event := log.Info()
		if err != nil {
			event = log.Error().Err(err)
		}
		event.
			Int64("total", summary.Total).
			Int64("imported", summary.Imported).
			Int64("skipped", summary.Skipped).
			Int64("failed", summary.Failed()).
			Msg("import finished")
		return summary, err
	}

	var putOpts []datastore.PutOption
	if options.SkipExisting {
		putOpts = append(putOpts, datastore.IfNotExists(r.schema.PartitionKey.Name))
	}

	for index := int64(0); ; index++ {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}

		doc, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil && !stderrors.Is(err, document.ErrInvalidDocument) {
			return finish(fmt.Errorf("reading document %d: %w", index, err))
		}
		summary.Total++

		if err == nil {
			err = r.importOne(ctx, doc, options, putOpts)
		}
		switch {
		case err == nil:
			summary.Imported++
		case errors.IsConditionFailed(err):
			summary.Skipped++
		case ctx.Err() != nil:
			return finish(ctx.Err())
		default:
			summary.Failures = append(summary.Failures, RecordFailure{Index: index, Key: keyOf(doc, r.schema), Err: err})
			log.Warn().Err(err).Int64("index", index).Msg("document not imported")
		}

		if options.ProgressEvery > 0 && summary.Total%int64(options.ProgressEvery) == 0 {
			log.Info().
				Int64("processed", summary.Total).
				Int64("imported", summary.Imported).
				Int64("failed", summary.Failed()).
				Msg("import progress")
		}
	}

	return finish(nil)
}

func (r *Repository) importOne(ctx context.Context, doc document.Document, options ImportOptions, putOpts []datastore.PutOption) error {
	rec, err := customer.Decode(doc)
	if err != nil {
		return err
	}
	if options.Strict {
		if err := rec.Validate(); err != nil {
			return err
		}
	}
	return r.client.PutDocument(ctx, r.schema.Name, customer.Encode(rec), putOpts...)
}
