/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"time"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a document or table is not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when attempting to create something that already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConditionFailed is returned when a conditional write fails
	ErrConditionFailed = errors.New("condition check failed")

	// ErrMalformedRecord is returned when a document cannot be decoded into a record.
	// It is permanent for the document: retrying will not help.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrProvisioningFailure is returned when a table could not be created or described
	ErrProvisioningFailure = errors.New("provisioning failed")

	// ErrProvisioningTimeout is returned when a table did not become active in time
	ErrProvisioningTimeout = errors.New("provisioning timed out")

	// ErrStoreUnavailable is returned for transport-level failures of the backing store
	ErrStoreUnavailable = errors.New("store unavailable")
)

// NotFoundError represents an error when a document or table is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents an error when a table or document already exists
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConditionFailedError represents a failed conditional operation
type ConditionFailedError struct {
	Operation string
	Condition string
}

func (e *ConditionFailedError) Error() string {
	return fmt.Sprintf("condition check failed for %s operation: %s", e.Operation, e.Condition)
}

func (e *ConditionFailedError) Is(target error) bool {
	return target == ErrConditionFailed
}

// MalformedRecordError reports a required field that is missing or invalid.
type MalformedRecordError struct {
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record: field %q %s", e.Field, e.Reason)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// ProvisioningError is a fatal table creation failure. Err holds the store's cause.
type ProvisioningError struct {
	Table string
	Err   error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("provisioning table %q failed: %v", e.Table, e.Err)
}

func (e *ProvisioningError) Is(target error) bool {
	return target == ErrProvisioningFailure
}

func (e *ProvisioningError) Unwrap() error {
	return e.Err
}

// ProvisioningTimeoutError is returned when a table is still not active after the
// wait budget. The table may still become active later.
type ProvisioningTimeoutError struct {
	Table      string
	LastStatus string
	Waited     time.Duration
}

func (e *ProvisioningTimeoutError) Error() string {
	return fmt.Sprintf("table %q not active after %s (last status %s)", e.Table, e.Waited, e.LastStatus)
}

func (e *ProvisioningTimeoutError) Is(target error) bool {
	return target == ErrProvisioningTimeout
}

// StoreUnavailableError wraps an opaque transport-level failure of the store.
type StoreUnavailableError struct {
	Operation string
	Err       error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Operation, e.Err)
}

func (e *StoreUnavailableError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(entityType, key string) error {
	return &AlreadyExistsError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewConditionFailedError creates a new ConditionFailedError
func NewConditionFailedError(operation, condition string) error {
	return &ConditionFailedError{Operation: operation, Condition: condition}
}

// NewMalformedRecordError creates a new MalformedRecordError
func NewMalformedRecordError(field, reason string) error {
	return &MalformedRecordError{Field: field, Reason: reason}
}

// NewProvisioningError creates a new ProvisioningError
func NewProvisioningError(table string, cause error) error {
	return &ProvisioningError{Table: table, Err: cause}
}

// NewProvisioningTimeoutError creates a new ProvisioningTimeoutError
func NewProvisioningTimeoutError(table, lastStatus string, waited time.Duration) error {
	return &ProvisioningTimeoutError{Table: table, LastStatus: lastStatus, Waited: waited}
}

// NewStoreUnavailableError creates a new StoreUnavailableError
func NewStoreUnavailableError(operation string, cause error) error {
	return &StoreUnavailableError{Operation: operation, Err: cause}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConditionFailed checks if an error is a condition failed error
func IsConditionFailed(err error) bool {
	return errors.Is(err, ErrConditionFailed)
}

// IsMalformedRecord checks if an error is a malformed record error
func IsMalformedRecord(err error) bool {
	return errors.Is(err, ErrMalformedRecord)
}

// IsProvisioningFailure checks if an error is a fatal provisioning error
func IsProvisioningFailure(err error) bool {
	return errors.Is(err, ErrProvisioningFailure)
}

// IsProvisioningTimeout checks if an error is a provisioning timeout
func IsProvisioningTimeout(err error) bool {
	return errors.Is(err, ErrProvisioningTimeout)
}

// IsStoreUnavailable checks if an error is a transport-level store failure
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// MalformedField returns the offending field of a malformed record error, if any.
func MalformedField(err error) (string, bool) {
	var mre *MalformedRecordError
	if errors.As(err, &mre) {
		return mre.Field, true
	}
	return "", false
}
