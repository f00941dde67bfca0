/*
Package datastore defines the store client abstraction used by customerstore.

Client is deliberately small: table creation and description for the
provisioner, and document put, get and scan for the repository. Two
implementations ship with the module:

  - ddb: backed by Amazon DynamoDB through the AWS SDK for Go v2.
  - mock: in-memory, with simulated table activation and error injection.

Stream layers paging and decoding on top of any Client:

	results := datastore.Stream(ctx, client, storagemodels.ScanParams{Table: "SummitCustomer"},
	    customer.Decode,
	    storagemodels.WithPageSize(25),
	)
	for r := range results {
	    if r.Error != nil {
	        // decode failure for r.Meta.Index, or the scan itself failed
	        continue
	    }
	    process(r.Item)
	}
*/
package datastore
