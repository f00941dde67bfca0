/*
Package provision ensures tables exist before they are used.

Provisioner.Ensure is idempotent: it issues one CreateTable request per call,
treats an AlreadyExistsError as success and then waits for the table to reach
ACTIVE. Whether a table already existed is decided from the error type reported
by the store client, never from its message.

	p := provision.New(client,
	    provision.WithConfig(provision.Config{PollInterval: time.Second, Timeout: time.Minute}),
	    provision.WithLogger(logger),
	)
	handle, err := p.Ensure(ctx, schema)
	switch {
	case errors.IsProvisioningTimeout(err):
	    // the table may still become active later
	case errors.IsProvisioningFailure(err):
	    // fatal create or describe failure, cause available through errors.Unwrap
	}

Cancelling ctx stops the wait and returns the context error. A deadline on ctx
is reported like the provisioner's own timeout.
*/
package provision
