/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package provision

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/suparena/customerstore/datastore"
	"github.com/suparena/customerstore/errors"
	"github.com/suparena/customerstore/storagemodels"
)

const (
	DefaultPollInterval = 500 * time.Millisecond
	DefaultTimeout      = 2 * time.Minute
)

// Config bounds the wait for a table to become active.
type Config struct {
	PollInterval time.Duration `yaml:"pollInterval" validate:"gte=0"`
	Timeout      time.Duration `yaml:"timeout" validate:"gte=0"`
}

// DefaultConfig returns the default polling configuration.
func DefaultConfig() Config {
	return Config{
		PollInterval: DefaultPollInterval,
		Timeout:      DefaultTimeout,
	}
}

// TableHandle refers to a table confirmed to exist and be ACTIVE. It is only
// obtained from Ensure.
type TableHandle struct {
	schema     storagemodels.TableSchema
	descriptor storagemodels.TableDescriptor
}

// Name returns the table name.
func (h *TableHandle) Name() string { return h.schema.Name }

// Schema returns the schema the table was ensured with.
func (h *TableHandle) Schema() storagemodels.TableSchema { return h.schema }

// Descriptor returns the descriptor observed when the table became active.
func (h *TableHandle) Descriptor() storagemodels.TableDescriptor { return h.descriptor }

// Provisioner creates tables idempotently.
type Provisioner struct {
	client datastore.Client
	cfg    Config
	logger zerolog.Logger
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithConfig replaces the polling configuration. Zero fields keep their defaults.
func WithConfig(cfg Config) Option {
	return func(p *Provisioner) {
		if cfg.PollInterval > 0 {
			p.cfg.PollInterval = cfg.PollInterval
		}
		if cfg.Timeout > 0 {
			p.cfg.Timeout = cfg.Timeout
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Provisioner) {
		p.logger = logger.With().Str("component", "provisioner").Logger()
	}
}

// New returns a Provisioner using client.
func New(client datastore.Client, opts ...Option) *Provisioner {
	p := &Provisioner{
		client: client,
		cfg:    DefaultConfig(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ensure makes sure the table described by schema exists and is ACTIVE.
//
// It always issues exactly one CreateTable request. If the table already exists
// the existing table is described instead. Either way Ensure then polls until the
// table is ACTIVE, the configured timeout elapses (ProvisioningTimeoutError) or
// ctx is cancelled. Any other create failure is returned as a ProvisioningError.
// Concurrent calls for the same schema, from this or other processes, converge.
func (p *Provisioner) Ensure(ctx context.Context, schema storagemodels.TableSchema) (*TableHandle, error) {
	if err := ValidateSchema(schema); err != nil {
		return nil, err
	}

	log := p.logger.With().Str("table", schema.Name).Logger()
	start := time.Now()

	desc, err := p.client.CreateTable(ctx, schema)
	switch {
	case err == nil:
		log.Info().Str("status", string(desc.Status)).Msg("table creation requested")
	case errors.IsAlreadyExists(err):
		log.Debug().Msg("table already exists")
		desc, err = p.client.DescribeTable(ctx, schema.Name)
		if err != nil {
			return nil, p.failure(ctx, schema.Name, err)
		}
	default:
		return nil, p.failure(ctx, schema.Name, err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	for !desc.Active() {
		if desc.Status == storagemodels.TableStatusDeleting {
			return nil, errors.NewProvisioningError(schema.Name, fmt.Errorf("table is being deleted"))
		}

		log.Debug().Str("status", string(desc.Status)).Msg("waiting for table to become active")

		timer := time.NewTimer(p.cfg.PollInterval)
		select {
		case <-waitCtx.Done():
			timer.Stop()
			return nil, p.waitFailure(ctx, schema.Name, desc.Status, time.Since(start))
		case <-timer.C:
		}

		next, err := p.client.DescribeTable(waitCtx, schema.Name)
		if err != nil {
			if waitCtx.Err() != nil {
				return nil, p.waitFailure(ctx, schema.Name, desc.Status, time.Since(start))
			}
			// A freshly created table can be briefly invisible to DescribeTable.
			if errors.IsNotFound(err) {
				continue
			}
			return nil, p.failure(ctx, schema.Name, err)
		}
		desc = next
	}

	if err := checkKeySchema(schema, desc); err != nil {
		return nil, errors.NewProvisioningError(schema.Name, err)
	}

	log.Info().Dur("waited", time.Since(start)).Msg("table active")
	return &TableHandle{schema: schema, descriptor: *desc}, nil
}

// failure wraps a store error, reporting caller cancellation as such.
func (p *Provisioner) failure(ctx context.Context, table string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && stderrors.Is(ctxErr, context.Canceled) {
		return fmt.Errorf("provisioning table %q: %w", table, ctxErr)
	}
	return errors.NewProvisioningError(table, err)
}

// waitFailure reports why polling stopped: caller cancellation, or a deadline
// (ours or the caller's) that elapsed before the table became active.
func (p *Provisioner) waitFailure(ctx context.Context, table string, last storagemodels.TableStatus, waited time.Duration) error {
	if stderrors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("provisioning table %q: %w", table, ctx.Err())
	}
	p.logger.Warn().Str("table", table).Str("status", string(last)).Dur("waited", waited).Msg("table not active before timeout")
	return errors.NewProvisioningTimeoutError(table, string(last), waited)
}

// ValidateSchema checks that a schema can be submitted to a store.
func ValidateSchema(schema storagemodels.TableSchema) error {
	if strings.TrimSpace(schema.Name) == "" {
		return errors.NewValidationError("name", "table name is required")
	}
	attrs := []storagemodels.KeyAttribute{schema.PartitionKey}
	if schema.SortKey != nil {
		attrs = append(attrs, *schema.SortKey)
	}
	for _, attr := range attrs {
		if attr.Name == "" {
			return errors.NewValidationError("key", "key attribute name is required")
		}
		if attr.Type != storagemodels.KeyTypeString && attr.Type != storagemodels.KeyTypeNumber {
			return errors.NewValidationError(attr.Name, "key type must be S or N")
		}
	}
	if schema.SortKey != nil && schema.SortKey.Name == schema.PartitionKey.Name {
		return errors.NewValidationError(schema.SortKey.Name, "sort key must differ from the partition key")
	}
	if t := schema.Throughput; t != nil && (t.ReadCapacityUnits < 1 || t.WriteCapacityUnits < 1) {
		return errors.NewValidationError("throughput", "capacity units must be at least 1")
	}
	return nil
}

// checkKeySchema rejects an existing table whose key differs from the declared one.
// Stores that report no key schema are accepted as is.
func checkKeySchema(schema storagemodels.TableSchema, desc *storagemodels.TableDescriptor) error {
	if len(desc.KeySchema) == 0 {
		return nil
	}
	want := map[string]string{schema.PartitionKey.Name: "HASH"}
	if schema.SortKey != nil {
		want[schema.SortKey.Name] = "RANGE"
	}
	if len(desc.KeySchema) != len(want) {
		return fmt.Errorf("existing table has %d key attributes, schema declares %d", len(desc.KeySchema), len(want))
	}
	for _, ks := range desc.KeySchema {
		if want[ks.AttributeName] != ks.KeyType {
			return fmt.Errorf("existing table key %s (%s) does not match the schema", ks.AttributeName, ks.KeyType)
		}
	}
	return nil
}
