/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package customer

import (
	stderrors "errors"
	"fmt"

	"github.com/go-openapi/strfmt"
	"github.com/go-playground/validator/v10"

	"github.com/suparena/customerstore/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// "mailbox" checks an RFC 5322 address the way the swagger email format does.
	if err := v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		return strfmt.IsEmail(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate applies the strict checks used by imports in strict mode: both names
// are non-empty and every e-mail address is well formed. Decode never calls it.
func (r Record) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.NewValidationError("", err.Error())
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return errors.NewValidationError(fe.Namespace(), "is required")
	case "mailbox":
		return errors.NewValidationError(fe.Namespace(), fmt.Sprintf("%q is not a valid e-mail address", fe.Value()))
	default:
		return errors.NewValidationError(fe.Namespace(), fmt.Sprintf("failed %q check", fe.Tag()))
	}
}
