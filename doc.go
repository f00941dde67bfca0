/*
Package customerstore keeps customer records in a DynamoDB-style key-value store.

The module has two cooperating parts:
  - provision: makes sure the customer table exists and is ACTIVE, tolerating
    tables created earlier or concurrently by other processes
  - customer: a pure codec between stored attribute-value documents and typed
    customer records, with one documented default for every optional field

Repository combines them into the read and write shapes callers need:
  - ScanAll and Stream: every customer, with malformed documents reported next
    to the decoded records instead of aborting the scan
  - ScanPage: caller-driven pagination with opaque continuation tokens
  - GetByKey: one customer, NotFound kept distinct from malformed
  - FindByLastName and FindBy: server-side equality filters returning all matches
  - Put and Import: single writes and bulk imports with a per-record summary

Basic Usage:

	client, _ := ddb.NewFromConfig(ctx, ddb.ConnectionConfig{Region: "us-east-1"})

	handle, err := provision.New(client).Ensure(ctx, schema)
	if err != nil {
	    return err
	}

	repo := customerstore.NewRepository(client, handle)
	result, err := repo.ScanAll(ctx)
	for _, f := range result.Failures {
	    log.Printf("document %d: %v", f.Index, f.Err)
	}

	rec, err := repo.GetByKey(ctx, 3, &dtid)
	if errors.IsNotFound(err) {
	    // no such customer
	}

Every store is reached through datastore.Client; datastore/mock provides an
in-memory implementation for tests.
*/
package customerstore
