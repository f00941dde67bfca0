/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package customerstore

import (
	"context"
	stderrors "errors"

	"github.com/suparena/customerstore/customer"
	"github.com/suparena/customerstore/datastore"
	"github.com/suparena/customerstore/document"
	"github.com/suparena/customerstore/storagemodels"
)

// RecordFailure reports one document that could not be decoded or imported.
type RecordFailure struct {
	// Index is the 0-based position of the document in the scan or import.
	Index int64
	// Key holds the key attributes found in the document, if any.
	Key document.Document
	Err error
}

// ScanResult holds the records decoded by a scan next to the documents that
// failed to decode.
type ScanResult struct {
	Records  []customer.Record
	Failures []RecordFailure
}

// PageRequest asks for one page of a caller-driven scan. An empty Token starts
// from the beginning.
type PageRequest struct {
	Limit int32
	Token string
}

// ScanAll decodes every customer in the table. A malformed document is reported
// in Failures and does not stop the scan. If the store fails part way the
// records gathered so far are returned together with the error.
func (r *Repository) ScanAll(ctx context.Context) (*ScanResult, error) {
	return r.collect(ctx, r.scanParams(nil))
}

// FindByLastName returns every customer with the given last name. No match is an
// empty result, not an error.
func (r *Repository) FindByLastName(ctx context.Context, lastName string) (*ScanResult, error) {
	return r.FindBy(ctx, customer.AttrLastName, document.String(lastName))
}

// FindBy returns every customer whose stored attribute equals value, filtering on
// the store side. Failure indexes count matching documents only.
func (r *Repository) FindBy(ctx context.Context, attribute string, value document.Value) (*ScanResult, error) {
	return r.collect(ctx, r.scanParams(map[string]document.Value{attribute: value}))
}

// Stream decodes customers lazily. Each result carries either a record or the
// decode error for that document; a final result wrapping
// datastore.ErrScanAborted reports a store failure.
func (r *Repository) Stream(ctx context.Context, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[customer.Record] {
	return datastore.Stream(ctx, r.client, r.scanParams(nil), customer.Decode, opts...)
}

// ScanPage returns one page of customers and the token for the next page. The
// token is empty on the last page. Failure indexes are relative to the page.
func (r *Repository) ScanPage(ctx context.Context, req PageRequest) (*ScanResult, string, error) {
	startKey, err := storagemodels.DecodePageToken(req.Token)
	if err != nil {
		return nil, "", err
	}

	params := r.scanParams(nil)
	params.ExclusiveStartKey = startKey
	if req.Limit > 0 {
		params.Limit = req.Limit
	}

	page, err := r.client.ScanDocuments(ctx, &params)
	if err != nil {
		return nil, "", err
	}

	result := &ScanResult{Records: make([]customer.Record, 0, len(page.Items))}
	for i, doc := range page.Items {
		r.decodeInto(result, int64(i), doc)
	}

	next, err := storagemodels.EncodePageToken(page.LastEvaluatedKey)
	if err != nil {
		return result, "", err
	}
	return result, next, nil
}

func (r *Repository) scanParams(filter map[string]document.Value) storagemodels.ScanParams {
	return storagemodels.ScanParams{
		Table:  r.schema.Name,
		Filter: filter,
		Limit:  r.pageSize,
	}
}

func (r *Repository) collect(ctx context.Context, params storagemodels.ScanParams) (*ScanResult, error) {
	result := &ScanResult{Records: []customer.Record{}}

	for item := range datastore.Stream(ctx, r.client, params, customer.Decode, storagemodels.WithPageSize(r.pageSize)) {
		if item.Error != nil {
			if stderrors.Is(item.Error, datastore.ErrScanAborted) {
				r.logger.Error().Err(item.Error).Int64("decoded", int64(len(result.Records))).Msg("scan aborted")
				return result, item.Error
			}
			r.recordFailure(result, item.Meta.Index, item.Raw, item.Error)
			continue
		}
		result.Records = append(result.Records, item.Item)
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	r.logger.Debug().
		Str("table", params.Table).
		Int("records", len(result.Records)).
		Int("failures", len(result.Failures)).
		Msg("scan complete")
	return result, nil
}

func (r *Repository) decodeInto(result *ScanResult, index int64, doc document.Document) {
	rec, err := customer.Decode(doc)
	if err != nil {
		r.recordFailure(result, index, doc, err)
		return
	}
	result.Records = append(result.Records, rec)
}

func (r *Repository) recordFailure(result *ScanResult, index int64, doc document.Document, err error) {
	failure := RecordFailure{Index: index, Key: keyOf(doc, r.schema), Err: err}
	result.Failures = append(result.Failures, failure)
	r.logger.Warn().Err(err).Int64("index", index).Msg("skipping malformed customer")
}
