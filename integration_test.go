//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package customerstore_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/customerstore"
	"github.com/suparena/customerstore/config"
	"github.com/suparena/customerstore/datastore/ddb"
	"github.com/suparena/customerstore/document"
	"github.com/suparena/customerstore/errors"
	"github.com/suparena/customerstore/provision"
)

// TestIntegrationCustomerLifecycle provisions a fresh table in the DynamoDB
// configured through the environment (or .env), imports customers and reads
// them back.
func TestIntegrationCustomerLifecycle(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	if cfg.AWS.Endpoint == "" && cfg.AWS.AccessKey == "" {
		t.Skip("set AWS_DDB_ENDPOINT or AWS credentials to run integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	client, err := ddb.NewFromConfig(ctx, cfg.Connection())
	require.NoError(t, err)

	schema := cfg.TableSchema()
	schema.Name = fmt.Sprintf("customerstore-e2e-%d", time.Now().UnixNano())

	p := provision.New(client, provision.WithConfig(provision.Config{PollInterval: time.Second}))
	handle, err := p.Ensure(ctx, schema)
	require.NoError(t, err)

	again, err := p.Ensure(ctx, schema)
	require.NoError(t, err, "ensuring an existing table succeeds")
	assert.Equal(t, handle.Name(), again.Name())

	repo := customerstore.NewRepository(client, handle, customerstore.WithPageSize(2))

	data := `[
		{"Id": 1, "DTID": 1, "LastName": "Smith", "FirstName": "Anna", "Contacts": {"Email_addresses": ["a@example.com"]}},
		{"Id": 2, "DTID": 1, "LastName": "Jones", "FirstName": "Bo"},
		{"Id": 3, "DTID": 1, "LastName": "Smith", "FirstName": "Cy", "Address": {"City": "Oakville"}},
		{"Id": 4, "DTID": 1, "LastName": "Broken"}
	]`
	summary, err := repo.Import(ctx, document.NewJSONArraySource(strings.NewReader(data)))
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Imported)
	assert.Equal(t, int64(1), summary.Failed())

	all, err := repo.ScanAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all.Records, 3)

	smiths, err := repo.FindByLastName(ctx, "Smith")
	require.NoError(t, err)
	assert.Len(t, smiths.Records, 2)

	dtid := int64(1)
	rec, err := repo.GetByKey(ctx, 3, &dtid)
	require.NoError(t, err)
	assert.Equal(t, "Oakville", rec.Address.City)

	_, err = repo.GetByKey(ctx, 99, &dtid)
	assert.True(t, errors.IsNotFound(err))
}
