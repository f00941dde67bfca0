/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/customerstore/document"
	"github.com/suparena/customerstore/storagemodels"
)

// Client is the capability set the provisioner and the repository need from a store.
// Implementations report failures with the types in the errors package; in
// particular CreateTable on an existing table must return an error satisfying
// errors.IsAlreadyExists.
type Client interface {
	CreateTable(ctx context.Context, schema storagemodels.TableSchema) (*storagemodels.TableDescriptor, error)

	DescribeTable(ctx context.Context, name string) (*storagemodels.TableDescriptor, error)

	PutDocument(ctx context.Context, table string, doc document.Document, opts ...PutOption) error

	// GetDocument returns false when no document has the given key.
	GetDocument(ctx context.Context, table string, key document.Document) (document.Document, bool, error)

	ScanDocuments(ctx context.Context, params *storagemodels.ScanParams) (*storagemodels.ScanPage, error)
}

// PutOptions configures a single write.
type PutOptions struct {
	// IfNotExists makes the put conditional on no document existing under the
	// same key. The condition names the partition key attribute.
	IfNotExists string
}

// PutOption is a functional option for PutDocument.
type PutOption func(*PutOptions)

// IfNotExists fails the put with a ConditionFailedError when a document with the
// same key already exists.
func IfNotExists(partitionKey string) PutOption {
	return func(o *PutOptions) {
		o.IfNotExists = partitionKey
	}
}

// ApplyPutOptions folds opts into a PutOptions value.
func ApplyPutOptions(opts ...PutOption) PutOptions {
	var o PutOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
