/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	stderrors "errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/suparena/customerstore/errors"
)

// classify maps an SDK failure onto the errors taxonomy. Only typed exceptions
// and API error codes are consulted, never message text.
func classify(operation, table string, err error) error {
	var inUse *types.ResourceInUseException
	var notFound *types.ResourceNotFoundException
	var condFailed *types.ConditionalCheckFailedException

	switch {
	case stderrors.As(err, &inUse):
		return errors.NewAlreadyExistsError("table", table)
	case stderrors.As(err, &notFound):
		return errors.NewNotFoundError("table", table)
	case stderrors.As(err, &condFailed):
		return errors.NewConditionFailedError(operation, "item already exists")
	}

	// Some DynamoDB-compatible servers return a generic API error carrying the
	// exception name as its code.
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ResourceInUseException":
			return errors.NewAlreadyExistsError("table", table)
		case "ResourceNotFoundException":
			return errors.NewNotFoundError("table", table)
		case "ConditionalCheckFailedException":
			return errors.NewConditionFailedError(operation, "item already exists")
		case "ValidationException":
			return errors.NewValidationError("", apiErr.ErrorMessage())
		}
	}

	return errors.NewStoreUnavailableError(operation, err)
}

func invalidDocument(err error) error {
	return errors.NewValidationError("document", err.Error())
}
