/*
Package storagemodels defines the data structures used throughout customerstore.

Key Types:

TableSchema:
The declared shape of a table, submitted once to the provisioner:

	schema := TableSchema{
	    Name:         "SummitCustomer",
	    PartitionKey: KeyAttribute{Name: "Id", Type: KeyTypeNumber},
	    SortKey:      &KeyAttribute{Name: "DTID", Type: KeyTypeNumber},
	    Throughput:   &Throughput{ReadCapacityUnits: 5, WriteCapacityUnits: 5},
	}

TableDescriptor:
The live description returned by CreateTable and DescribeTable. Status moves
through CREATING to ACTIVE.

ScanParams:
Parameters for scanning a table:

	params := &ScanParams{
	    Table:      "SummitCustomer",
	    Filter:     map[string]document.Value{"LastName": document.String("Smith")},
	    Projection: []string{"Id", "DTID", "LastName"},
	    Limit:      100,
	}

StreamResult:
Results from streaming operations with metadata:

	type StreamResult[T any] struct {
	    Item  T                 // The decoded item
	    Raw   document.Document // Raw stored attributes
	    Error error             // Item-specific error, if any
	    Meta  StreamMeta        // Metadata about this item
	}

StreamOptions:
Configuration for streaming behavior:

	opts := []StreamOption{
	    WithBufferSize(100),
	    WithPageSize(25),
	    WithProgressHandler(progressFunc),
	}

Page tokens:
EncodePageToken and DecodePageToken turn a LastEvaluatedKey into an opaque,
URL-safe string and back, so callers can resume a scan across requests.

These types provide a consistent interface across different storage implementations.
*/
package storagemodels
