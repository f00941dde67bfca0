/*
Package errors provides semantic error types for customerstore.

The package defines the failure taxonomy shared by the provisioner, the store
clients, the codec and the repository. Every typed error matches its sentinel
through errors.Is, so callers never need to inspect error text.

Sentinels:

	var (
	    ErrNotFound            = errors.New("not found")
	    ErrAlreadyExists       = errors.New("already exists")
	    ErrInvalidInput        = errors.New("invalid input")
	    ErrConditionFailed     = errors.New("condition check failed")
	    ErrMalformedRecord     = errors.New("malformed record")
	    ErrProvisioningFailure = errors.New("provisioning failed")
	    ErrProvisioningTimeout = errors.New("provisioning timed out")
	    ErrStoreUnavailable    = errors.New("store unavailable")
	)

Propagation:
  - ProvisioningError and ProvisioningTimeoutError abort Ensure; the caller decides
    whether to retry.
  - MalformedRecordError is per document. Scans and imports collect it next to the
    successful records instead of aborting.
  - NotFoundError from a point lookup is an expected outcome, distinct from a
    malformed document.
  - StoreUnavailableError wraps the transport failure unchanged.

Usage:

	rec, err := repo.GetByKey(ctx, 3, nil)
	switch {
	case errors.IsNotFound(err):
	    // no such customer
	case errors.IsMalformedRecord(err):
	    field, _ := errors.MalformedField(err)
	    log.Printf("stored customer is broken at %s", field)
	}
*/
package errors
