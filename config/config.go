/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/customerstore/datastore/ddb"
	"github.com/suparena/customerstore/provision"
	"github.com/suparena/customerstore/storagemodels"
)

const (
	DefaultRegion    = "us-west-2"
	DefaultTableName = "SummitCustomer"
	DefaultEnvFile   = ".env"
)

// Config is the complete customerstore configuration.
type Config struct {
	AWS          AWSConfig        `yaml:"aws"`
	Table        TableConfig      `yaml:"table"`
	Provisioning provision.Config `yaml:"provisioning"`
	Logging      LoggingConfig    `yaml:"logging"`
	Import       ImportConfig     `yaml:"import"`
}

// AWSConfig describes how to reach DynamoDB and S3.
type AWSConfig struct {
	Region    string `yaml:"region" validate:"required"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey" validate:"required_with=AccessKey"`
	Endpoint  string `yaml:"endpoint" validate:"omitempty,url"`
}

// TableConfig declares the customer table.
type TableConfig struct {
	Name         string                      `yaml:"name" validate:"required"`
	PartitionKey storagemodels.KeyAttribute  `yaml:"partitionKey"`
	SortKey      *storagemodels.KeyAttribute `yaml:"sortKey"`
	Throughput   *storagemodels.Throughput   `yaml:"throughput"`
	PageSize     int32                       `yaml:"pageSize" validate:"gte=0"`
}

// LoggingConfig controls the logger built by the logging package.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Format  string `yaml:"format" validate:"omitempty,oneof=json console"`
}

// ImportConfig holds the defaults for bulk imports.
type ImportConfig struct {
	SkipExisting  bool `yaml:"skipExisting"`
	Strict        bool `yaml:"strict"`
	ProgressEvery int  `yaml:"progressEvery" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		AWS: AWSConfig{Region: DefaultRegion},
		Table: TableConfig{
			Name:         DefaultTableName,
			PartitionKey: storagemodels.KeyAttribute{Name: "Id", Type: storagemodels.KeyTypeNumber},
			SortKey:      &storagemodels.KeyAttribute{Name: "DTID", Type: storagemodels.KeyTypeNumber},
			Throughput:   &storagemodels.Throughput{ReadCapacityUnits: 1, WriteCapacityUnits: 1},
		},
		Provisioning: provision.Config{
			PollInterval: provision.DefaultPollInterval,
			Timeout:      provision.DefaultTimeout,
		},
		Logging: LoggingConfig{Enabled: true, Level: "info", Format: "json"},
		Import:  ImportConfig{ProgressEvery: 100},
	}
}

type loadOptions struct {
	envFile string
}

// LoadOption customizes Load.
type LoadOption func(*loadOptions)

// WithEnvFile reads environment overrides from path instead of .env.
func WithEnvFile(path string) LoadOption {
	return func(o *loadOptions) { o.envFile = path }
}

// Load builds the configuration from the defaults, the YAML file at path (if
// path is not empty), the env file and the environment. Variables already set in
// the environment take precedence over the env file.
func Load(path string, opts ...LoadOption) (*Config, error) {
	options := loadOptions{envFile: DefaultEnvFile}
	for _, opt := range opts {
		opt(&options)
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	dotenv, err := readEnvFile(options.envFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(newLookup(dotenv)); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return values, nil
}

type lookupFunc func(key string) (string, bool)

func newLookup(dotenv map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
}

func (c *Config) applyEnv(lookup lookupFunc) error {
	setString := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	setString("AWS_REGION", &c.AWS.Region)
	setString("AWS_ACCESS_KEY", &c.AWS.AccessKey)
	setString("AWS_SECRET_KEY", &c.AWS.SecretKey)
	setString("AWS_DDB_ENDPOINT", &c.AWS.Endpoint)
	setString("CUSTOMER_TABLE", &c.Table.Name)
	setString("LOG_LEVEL", &c.Logging.Level)
	setString("LOG_FORMAT", &c.Logging.Format)
	c.Logging.Level = strings.ToLower(c.Logging.Level)

	if v, ok := lookup("PROVISION_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PROVISION_TIMEOUT: %w", err)
		}
		c.Provisioning.Timeout = d
	}
	return nil
}

var validate = validator.New()

// Validate checks the configuration and reports every failing field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// TableSchema returns the customer table schema.
func (c *Config) TableSchema() storagemodels.TableSchema {
	return storagemodels.TableSchema{
		Name:         c.Table.Name,
		PartitionKey: c.Table.PartitionKey,
		SortKey:      c.Table.SortKey,
		Throughput:   c.Table.Throughput,
	}
}

// Connection returns the DynamoDB connection settings.
func (c *Config) Connection() ddb.ConnectionConfig {
	return ddb.ConnectionConfig{
		Region:    c.AWS.Region,
		AccessKey: c.AWS.AccessKey,
		SecretKey: c.AWS.SecretKey,
		Endpoint:  c.AWS.Endpoint,
	}
}
