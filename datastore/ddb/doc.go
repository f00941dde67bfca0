/*
Package ddb provides a DynamoDB implementation of the datastore.Client interface.

The Client supports:
  - Idempotent-friendly table creation: an existing table surfaces as
    errors.AlreadyExistsError, classified from the SDK's typed exceptions
  - Composite or single-attribute keys, on-demand or provisioned billing
  - Scans with equality filters and projections built with the expression package
  - Conditional puts (attribute_not_exists) for insert-only imports
  - Local DynamoDB and other compatible servers through a base endpoint

Construction:

	client, err := ddb.NewFromConfig(ctx, ddb.ConnectionConfig{
	    Region:   "us-east-1",
	    Endpoint: "http://localhost:8000",
	}, ddb.WithLogger(logger))

Any value implementing API can stand in for the SDK client, which is how the
unit tests drive the package.

Error mapping:

	ResourceInUseException          -> errors.AlreadyExistsError
	ResourceNotFoundException       -> errors.NotFoundError
	ConditionalCheckFailedException -> errors.ConditionFailedError
	ValidationException             -> errors.ValidationError
	anything else                   -> errors.StoreUnavailableError (wrapping the SDK error)
*/
package ddb
