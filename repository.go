/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package customerstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/suparena/customerstore/customer"
	"github.com/suparena/customerstore/datastore"
	"github.com/suparena/customerstore/document"
	"github.com/suparena/customerstore/errors"
	"github.com/suparena/customerstore/provision"
	"github.com/suparena/customerstore/storagemodels"
)

// Repository reads and writes customer records in one provisioned table.
// It holds no mutable state and is safe for concurrent use.
type Repository struct {
	client   datastore.Client
	table    *provision.TableHandle
	schema   storagemodels.TableSchema
	pageSize int32
	logger   zerolog.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger.With().Str("component", "repository").Logger()
	}
}

// WithPageSize sets how many items each scan request evaluates.
func WithPageSize(n int32) Option {
	return func(r *Repository) {
		if n > 0 {
			r.pageSize = n
		}
	}
}

// NewRepository returns a Repository over the table behind handle.
func NewRepository(client datastore.Client, handle *provision.TableHandle, opts ...Option) *Repository {
	r := &Repository{
		client:   client,
		table:    handle,
		schema:   handle.Schema(),
		pageSize: storagemodels.DefaultStreamOptions().PageSize,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Table returns the handle of the table the repository works on.
func (r *Repository) Table() *provision.TableHandle {
	return r.table
}

// GetByKey fetches one customer. dtid is required when the table has a sort key.
// A missing customer yields a NotFoundError; a stored document that cannot be
// decoded yields a MalformedRecordError.
func (r *Repository) GetByKey(ctx context.Context, id int64, dtid *int64) (customer.Record, error) {
	key, err := customer.KeyOf(r.schema, id, dtid)
	if err != nil {
		return customer.Record{}, err
	}

	doc, found, err := r.client.GetDocument(ctx, r.schema.Name, key)
	if err != nil {
		return customer.Record{}, err
	}
	if !found {
		return customer.Record{}, errors.NewNotFoundError("customer", describeKey(key, r.schema))
	}

	rec, err := customer.Decode(doc)
	if err != nil {
		r.logger.Warn().Err(err).Str("key", describeKey(key, r.schema)).Msg("stored customer is malformed")
		return customer.Record{}, fmt.Errorf("customer %s: %w", describeKey(key, r.schema), err)
	}
	return rec, nil
}

// Put writes rec, replacing any customer with the same key.
func (r *Repository) Put(ctx context.Context, rec customer.Record) error {
	return r.client.PutDocument(ctx, r.schema.Name, customer.Encode(rec))
}

// describeKey renders a key as "Id=3,DTID=1" in schema order.
func describeKey(key document.Document, schema storagemodels.TableSchema) string {
	parts := make([]string, 0, 2)
	for _, name := range schema.KeyNames() {
		parts = append(parts, name+"="+valueText(key[name]))
	}
	return strings.Join(parts, ",")
}

func valueText(v document.Value) string {
	switch tv := v.(type) {
	case document.String:
		return string(tv)
	case document.Number:
		return string(tv)
	case nil:
		return "?"
	default:
		return tv.Kind().String()
	}
}

// keyOf extracts whatever key attributes doc carries, for failure reports.
func keyOf(doc document.Document, schema storagemodels.TableSchema) document.Document {
	key := document.Document{}
	for _, name := range schema.KeyNames() {
		if v, ok := doc[name]; ok {
			key[name] = v
		}
	}
	if len(key) == 0 {
		return nil
	}
	return key
}
