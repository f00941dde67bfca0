/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("customer", "Id=3")

	expected := `customer with key "Id=3" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}

	if IsMalformedRecord(err) {
		t.Error("NotFoundError must be distinguishable from a malformed record")
	}
}

func TestAlreadyExistsError(t *testing.T) {
	err := NewAlreadyExistsError("table", "SummitCustomer")

	expected := `table with key "SummitCustomer" already exists`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrAlreadyExists) {
		t.Error("AlreadyExistsError should match ErrAlreadyExists")
	}

	if !IsAlreadyExists(err) {
		t.Error("IsAlreadyExists should return true for AlreadyExistsError")
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "email",
			message:  "invalid format",
			expected: `validation failed for field "email": invalid format`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "missing required fields",
			expected: "validation failed: missing required fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !errors.Is(err, ErrInvalidInput) {
				t.Error("ValidationError should match ErrInvalidInput")
			}

			if !IsValidationError(err) {
				t.Error("IsValidationError should return true for ValidationError")
			}
		})
	}
}

func TestConditionFailedError(t *testing.T) {
	err := NewConditionFailedError("put", "attribute_not_exists(Id)")

	expected := "condition check failed for put operation: attribute_not_exists(Id)"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsConditionFailed(err) {
		t.Error("IsConditionFailed should return true for ConditionFailedError")
	}
}

func TestMalformedRecordError(t *testing.T) {
	err := NewMalformedRecordError("id", "is missing")

	expected := `malformed record: field "id" is missing`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsMalformedRecord(err) {
		t.Error("IsMalformedRecord should return true for MalformedRecordError")
	}

	field, ok := MalformedField(fmt.Errorf("document 4: %w", err))
	if !ok || field != "id" {
		t.Errorf("Expected field id from wrapped error, got %q (%v)", field, ok)
	}

	if _, ok := MalformedField(NewNotFoundError("customer", "1")); ok {
		t.Error("MalformedField should not match other errors")
	}
}

func TestProvisioningErrors(t *testing.T) {
	cause := NewStoreUnavailableError("CreateTable", errors.New("connection refused"))
	err := NewProvisioningError("SummitCustomer", cause)

	if !IsProvisioningFailure(err) {
		t.Error("ProvisioningError should match ErrProvisioningFailure")
	}
	if !IsStoreUnavailable(err) {
		t.Error("ProvisioningError should expose its cause through Unwrap")
	}
	if IsAlreadyExists(err) {
		t.Error("ProvisioningError must not match ErrAlreadyExists")
	}

	timeout := NewProvisioningTimeoutError("SummitCustomer", "CREATING", 2*time.Second)
	if !IsProvisioningTimeout(timeout) {
		t.Error("ProvisioningTimeoutError should match ErrProvisioningTimeout")
	}
	expected := `table "SummitCustomer" not active after 2s (last status CREATING)`
	if timeout.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, timeout.Error())
	}
}

func TestErrorWrapping(t *testing.T) {
	original := NewNotFoundError("customer", "123")
	wrapped := fmt.Errorf("get failed: %w", original)

	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("Wrapped NotFoundError should still match ErrNotFound")
	}

	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should work with wrapped errors")
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrInvalidInput,
		ErrConditionFailed,
		ErrMalformedRecord,
		ErrProvisioningFailure,
		ErrProvisioningTimeout,
		ErrStoreUnavailable,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v matches %v", err1, err2)
			}
		}
	}
}
