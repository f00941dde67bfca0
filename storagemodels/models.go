/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"time"

	"github.com/suparena/customerstore/document"
)

// KeyType is the scalar type of a key attribute.
type KeyType string

const (
	KeyTypeString KeyType = "S"
	KeyTypeNumber KeyType = "N"
)

// KeyAttribute names one component of a table's primary key.
type KeyAttribute struct {
	Name string  `yaml:"name" validate:"required"`
	Type KeyType `yaml:"type" validate:"required,oneof=S N"`
}

// Throughput is the provisioned capacity hint. Local backends ignore it.
type Throughput struct {
	ReadCapacityUnits  int64 `yaml:"readCapacityUnits" validate:"gte=1"`
	WriteCapacityUnits int64 `yaml:"writeCapacityUnits" validate:"gte=1"`
}

// TableSchema declares a table and its key. A nil SortKey means a single-attribute
// key; a nil Throughput means on-demand billing.
type TableSchema struct {
	Name         string
	PartitionKey KeyAttribute
	SortKey      *KeyAttribute
	Throughput   *Throughput
}

// KeyNames returns the names of the key attributes, partition key first.
func (s TableSchema) KeyNames() []string {
	names := []string{s.PartitionKey.Name}
	if s.SortKey != nil {
		names = append(names, s.SortKey.Name)
	}
	return names
}

// TableStatus is the lifecycle state reported by the store.
type TableStatus string

const (
	TableStatusCreating  TableStatus = "CREATING"
	TableStatusUpdating  TableStatus = "UPDATING"
	TableStatusDeleting  TableStatus = "DELETING"
	TableStatusActive    TableStatus = "ACTIVE"
	TableStatusArchiving TableStatus = "ARCHIVING"
	TableStatusArchived  TableStatus = "ARCHIVED"
)

// KeySchemaElement is one key attribute as the store reports it.
type KeySchemaElement struct {
	AttributeName string
	KeyType       string // HASH or RANGE
}

// TableDescriptor is the live description of a table.
type TableDescriptor struct {
	Name      string
	Status    TableStatus
	KeySchema []KeySchemaElement
	ItemCount int64
	CreatedAt time.Time
}

// Active reports whether the table accepts reads and writes.
func (d *TableDescriptor) Active() bool {
	return d != nil && d.Status == TableStatusActive
}

// ScanParams defines parameters for a full-table scan.
type ScanParams struct {
	// Table is the table name.
	Table string
	// Filter is an optional server-side equality filter; every entry must match.
	Filter map[string]document.Value
	// Projection limits the returned attributes. Empty means all.
	Projection []string
	// Limit is the maximum number of items evaluated per page. Zero uses the store default.
	Limit int32
	// ExclusiveStartKey continues a previous scan.
	ExclusiveStartKey document.Document
	// ConsistentRead requests strongly consistent reads.
	ConsistentRead bool
}

// ScanPage is one page of scan results.
type ScanPage struct {
	Items []document.Document
	// LastEvaluatedKey is nil on the last page.
	LastEvaluatedKey document.Document
}
