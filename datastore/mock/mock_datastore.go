/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.Client for testing
package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/suparena/customerstore/datastore"
	"github.com/suparena/customerstore/document"
	"github.com/suparena/customerstore/errors"
	"github.com/suparena/customerstore/storagemodels"
)

var _ datastore.Client = (*Client)(nil)

type table struct {
	schema    storagemodels.TableSchema
	createdAt time.Time
	// describes counts DescribeTable calls since creation; the table turns
	// ACTIVE once it reaches the client's activation delay.
	describes int
	order     []string
	items     map[string]document.Document
}

// Client is a mock implementation of datastore.Client for testing
type Client struct {
	mu              sync.Mutex
	tables          map[string]*table
	activationDelay int
	pageSize        int
	createError     error
	describeError   error
	putError        error
	getError        error
	scanError       error
	scanErrorAfter  int
	scanCalls       int
	createCalls     int
	describeCalls   int
}

// New creates a new mock Client. Tables become ACTIVE immediately unless
// WithActivationDelay is used.
func New() *Client {
	return &Client{
		tables: make(map[string]*table),
	}
}

// WithActivationDelay keeps new tables CREATING for the first n DescribeTable calls
func (m *Client) WithActivationDelay(n int) *Client {
	m.activationDelay = n
	return m
}

// WithPageSize caps the number of items evaluated per scan page
func (m *Client) WithPageSize(n int) *Client {
	m.pageSize = n
	return m
}

// WithCreateError makes CreateTable operations return an error
func (m *Client) WithCreateError(err error) *Client {
	m.createError = err
	return m
}

// WithDescribeError makes DescribeTable operations return an error
func (m *Client) WithDescribeError(err error) *Client {
	m.describeError = err
	return m
}

// WithPutError makes PutDocument operations return an error
func (m *Client) WithPutError(err error) *Client {
	m.putError = err
	return m
}

// WithGetError makes GetDocument operations return an error
func (m *Client) WithGetError(err error) *Client {
	m.getError = err
	return m
}

// WithScanError makes every ScanDocuments call after the first `after` calls
// return err
func (m *Client) WithScanError(after int, err error) *Client {
	m.scanErrorAfter = after
	m.scanError = err
	return m
}

// CreateTable registers a table. Creating an existing table fails with an
// AlreadyExistsError, as the real store does.
func (m *Client) CreateTable(ctx context.Context, schema storagemodels.TableSchema) (*storagemodels.TableDescriptor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.createCalls++
	if m.createError != nil {
		return nil, m.createError
	}
	if schema.Name == "" {
		return nil, errors.NewValidationError("name", "table name is required")
	}
	if _, exists := m.tables[schema.Name]; exists {
		return nil, errors.NewAlreadyExistsError("table", schema.Name)
	}

	t := &table{
		schema:    schema,
		createdAt: time.Now(),
		items:     make(map[string]document.Document),
	}
	m.tables[schema.Name] = t
	return m.describe(t), nil
}

// DescribeTable returns the table's descriptor
func (m *Client) DescribeTable(ctx context.Context, name string) (*storagemodels.TableDescriptor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.describeCalls++
	if m.describeError != nil {
		return nil, m.describeError
	}
	t, ok := m.tables[name]
	if !ok {
		return nil, errors.NewNotFoundError("table", name)
	}
	t.describes++
	return m.describe(t), nil
}

func (m *Client) describe(t *table) *storagemodels.TableDescriptor {
	status := storagemodels.TableStatusActive
	if t.describes < m.activationDelay {
		status = storagemodels.TableStatusCreating
	}
	keySchema := []storagemodels.KeySchemaElement{{AttributeName: t.schema.PartitionKey.Name, KeyType: "HASH"}}
	if t.schema.SortKey != nil {
		keySchema = append(keySchema, storagemodels.KeySchemaElement{AttributeName: t.schema.SortKey.Name, KeyType: "RANGE"})
	}
	return &storagemodels.TableDescriptor{
		Name:      t.schema.Name,
		Status:    status,
		KeySchema: keySchema,
		ItemCount: int64(len(t.items)),
		CreatedAt: t.createdAt,
	}
}

// PutDocument stores doc, replacing any document with the same key
func (m *Client) PutDocument(ctx context.Context, tableName string, doc document.Document, opts ...datastore.PutOption) error {
	if m.putError != nil {
		return m.putError
	}
	options := datastore.ApplyPutOptions(opts...)

	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tables[tableName]
	if !ok {
		return errors.NewNotFoundError("table", tableName)
	}
	key, err := keyString(t.schema, doc)
	if err != nil {
		return err
	}

	if _, exists := t.items[key]; exists {
		if options.IfNotExists != "" {
			return errors.NewConditionFailedError("put", fmt.Sprintf("attribute_not_exists(%s)", options.IfNotExists))
		}
	} else {
		t.order = append(t.order, key)
	}
	t.items[key] = doc.Clone()
	return nil
}

// GetDocument returns the document stored under key
func (m *Client) GetDocument(ctx context.Context, tableName string, key document.Document) (document.Document, bool, error) {
	if m.getError != nil {
		return nil, false, m.getError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tables[tableName]
	if !ok {
		return nil, false, errors.NewNotFoundError("table", tableName)
	}
	if len(key) != len(t.schema.KeyNames()) {
		return nil, false, errors.NewValidationError("key", "must name exactly the table's key attributes")
	}
	k, err := keyString(t.schema, key)
	if err != nil {
		return nil, false, err
	}
	doc, exists := t.items[k]
	if !exists {
		return nil, false, nil
	}
	return doc.Clone(), true, nil
}

// ScanDocuments returns one page of documents in insertion order
func (m *Client) ScanDocuments(ctx context.Context, params *storagemodels.ScanParams) (*storagemodels.ScanPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.scanCalls++
	if m.scanError != nil && m.scanCalls > m.scanErrorAfter {
		return nil, m.scanError
	}

	t, ok := m.tables[params.Table]
	if !ok {
		return nil, errors.NewNotFoundError("table", params.Table)
	}

	start := 0
	if len(params.ExclusiveStartKey) > 0 {
		k, err := keyString(t.schema, params.ExclusiveStartKey)
		if err != nil {
			return nil, err
		}
		for i, existing := range t.order {
			if existing == k {
				start = i + 1
				break
			}
		}
	}

	limit := len(t.order) - start
	if params.Limit > 0 && int(params.Limit) < limit {
		limit = int(params.Limit)
	}
	if m.pageSize > 0 && m.pageSize < limit {
		limit = m.pageSize
	}

	page := &storagemodels.ScanPage{Items: []document.Document{}}
	end := start + limit
	for _, k := range t.order[start:end] {
		doc := t.items[k]
		if !matches(doc, params.Filter) {
			continue
		}
		page.Items = append(page.Items, project(doc, params.Projection))
	}
	if end < len(t.order) {
		page.LastEvaluatedKey = keyOf(t.schema, t.items[t.order[end-1]])
	}
	return page, nil
}

// Helper methods for testing

// Seed stores docs directly, bypassing error injection
func (m *Client) Seed(tableName string, docs ...document.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tables[tableName]
	if !ok {
		return errors.NewNotFoundError("table", tableName)
	}
	for i, doc := range docs {
		key, err := keyString(t.schema, doc)
		if err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		if _, exists := t.items[key]; !exists {
			t.order = append(t.order, key)
		}
		t.items[key] = doc.Clone()
	}
	return nil
}

// Count returns the number of documents stored in a table
func (m *Client) Count(tableName string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tables[tableName]; ok {
		return len(t.items)
	}
	return 0
}

// CreateCalls returns the number of CreateTable calls made
func (m *Client) CreateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

// DescribeCalls returns the number of DescribeTable calls made
func (m *Client) DescribeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.describeCalls
}

// ScanCalls returns the number of ScanDocuments calls made
func (m *Client) ScanCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scanCalls
}

// keyString builds the identity of a document from its key attributes
func keyString(schema storagemodels.TableSchema, doc document.Document) (string, error) {
	attrs := []storagemodels.KeyAttribute{schema.PartitionKey}
	if schema.SortKey != nil {
		attrs = append(attrs, *schema.SortKey)
	}

	parts := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		v, ok := doc[attr.Name]
		if !ok {
			return "", errors.NewValidationError(attr.Name, "key attribute is missing")
		}
		switch tv := v.(type) {
		case document.String:
			if attr.Type != storagemodels.KeyTypeString {
				return "", errors.NewValidationError(attr.Name, "key attribute must be a number")
			}
			parts = append(parts, "S:"+string(tv))
		case document.Number:
			if attr.Type != storagemodels.KeyTypeNumber {
				return "", errors.NewValidationError(attr.Name, "key attribute must be a string")
			}
			text := string(tv)
			if i, err := tv.Int64(); err == nil {
				text = fmt.Sprint(i)
			}
			parts = append(parts, "N:"+text)
		default:
			return "", errors.NewValidationError(attr.Name, fmt.Sprintf("key attribute has type %s", v.Kind()))
		}
	}
	return strings.Join(parts, "|"), nil
}

func keyOf(schema storagemodels.TableSchema, doc document.Document) document.Document {
	key := make(document.Document, 2)
	for _, name := range schema.KeyNames() {
		key[name] = doc[name]
	}
	return key
}

func matches(doc document.Document, filter map[string]document.Value) bool {
	for name, want := range filter {
		got, ok := doc[name]
		if !ok || !document.Equal(got, want) {
			return false
		}
	}
	return true
}

func project(doc document.Document, names []string) document.Document {
	if len(names) == 0 {
		return doc.Clone()
	}
	out := make(document.Document, len(names))
	for _, name := range names {
		if v, ok := doc[name]; ok {
			out[name] = v
		}
	}
	return out.Clone()
}
