/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/customerstore/storagemodels"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"AWS_REGION", "AWS_ACCESS_KEY", "AWS_SECRET_KEY", "AWS_DDB_ENDPOINT",
		"CUSTOMER_TABLE", "LOG_LEVEL", "LOG_FORMAT", "PROVISION_TIMEOUT"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", WithEnvFile(filepath.Join(t.TempDir(), "missing.env")))
	require.NoError(t, err)

	assert.Equal(t, DefaultRegion, cfg.AWS.Region)
	schema := cfg.TableSchema()
	assert.Equal(t, "SummitCustomer", schema.Name)
	assert.Equal(t, storagemodels.KeyAttribute{Name: "Id", Type: storagemodels.KeyTypeNumber}, schema.PartitionKey)
	require.NotNil(t, schema.SortKey)
	assert.Equal(t, "DTID", schema.SortKey.Name)
	assert.Equal(t, int64(1), schema.Throughput.ReadCapacityUnits)
	assert.Equal(t, 500*time.Millisecond, cfg.Provisioning.PollInterval)
	assert.True(t, cfg.Logging.Enabled)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, "customerctl.yaml", `
aws:
  region: eu-central-1
  endpoint: http://localhost:8000
table:
  name: Customers
  sortKey: null
  throughput: null
  pageSize: 25
provisioning:
  pollInterval: 2s
  timeout: 30s
logging:
  level: debug
  format: console
import:
  strict: true
  progressEvery: 10
`)

	cfg, err := Load(path, WithEnvFile(""))
	require.NoError(t, err)

	assert.Equal(t, "eu-central-1", cfg.AWS.Region)
	assert.Equal(t, "http://localhost:8000", cfg.Connection().Endpoint)
	schema := cfg.TableSchema()
	assert.Equal(t, "Customers", schema.Name)
	assert.Nil(t, schema.SortKey)
	assert.Nil(t, schema.Throughput)
	assert.Equal(t, "Id", schema.PartitionKey.Name)
	assert.Equal(t, int32(25), cfg.Table.PageSize)
	assert.Equal(t, 2*time.Second, cfg.Provisioning.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.Provisioning.Timeout)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Import.Strict)
	assert.Equal(t, 10, cfg.Import.ProgressEvery)
}

func TestLoadEnvironment(t *testing.T) {
	clearEnv(t)

	envFile := writeFile(t, "test.env", "AWS_REGION=ap-south-1\nCUSTOMER_TABLE=FromDotenv\nLOG_LEVEL=WARN\n")
	t.Setenv("CUSTOMER_TABLE", "FromProcess")
	t.Setenv("PROVISION_TIMEOUT", "5s")

	cfg, err := Load("", WithEnvFile(envFile))
	require.NoError(t, err)

	assert.Equal(t, "ap-south-1", cfg.AWS.Region)
	assert.Equal(t, "FromProcess", cfg.Table.Name, "process environment wins over the env file")
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 5*time.Second, cfg.Provisioning.Timeout)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), WithEnvFile(""))
		assert.Error(t, err)
	})

	t.Run("BadYAML", func(t *testing.T) {
		_, err := Load(writeFile(t, "bad.yaml", "aws: ["), WithEnvFile(""))
		assert.Error(t, err)
	})

	t.Run("InvalidKeyType", func(t *testing.T) {
		path := writeFile(t, "c.yaml", "table:\n  partitionKey:\n    name: Id\n    type: B\n")
		_, err := Load(path, WithEnvFile(""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PartitionKey.Type")
	})

	t.Run("SecretWithoutKey", func(t *testing.T) {
		t.Setenv("AWS_ACCESS_KEY", "AKID")
		_, err := Load("", WithEnvFile(""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SecretKey")
	})

	t.Run("BadDuration", func(t *testing.T) {
		t.Setenv("PROVISION_TIMEOUT", "soon")
		_, err := Load("", WithEnvFile(""))
		assert.Error(t, err)
	})
}
