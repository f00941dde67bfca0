/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package customer

import (
	"github.com/suparena/customerstore/document"
	"github.com/suparena/customerstore/errors"
	"github.com/suparena/customerstore/storagemodels"
)

// Stored attribute names.
const (
	AttrID        = "Id"
	AttrDTID      = "DTID"
	AttrLastName  = "LastName"
	AttrFirstName = "FirstName"
	AttrAddress   = "Address"
	AttrContacts  = "Contacts"

	AttrAddrLine1 = "Addr1"
	AttrAddrCity  = "City"
	AttrAddrState = "State"
	AttrAddrZip   = "Zip"

	AttrEmails    = "Email_addresses"
	AttrMobile    = "Mobile"
	AttrHomePhone = "Homephone"
	AttrWorkPhone = "Workphone"
	AttrEmployer  = "Employer"
)

// Record is one customer.
type Record struct {
	ID        int64       `json:"id"`
	DTID      int64       `json:"dtid"`
	LastName  string      `json:"lastName" validate:"required"`
	FirstName string      `json:"firstName" validate:"required"`
	Address   Address     `json:"address"`
	Contact   ContactInfo `json:"contact"`
}

// Address is a postal address. Every field is optional.
type Address struct {
	Line1 string `json:"line1,omitempty"`
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
	Zip   string `json:"zip,omitempty"`
}

// IsZero reports whether every field is empty.
func (a Address) IsZero() bool {
	return a == Address{}
}

// ContactInfo holds the ways to reach a customer. EmailAddresses is a set: after
// decoding it is sorted, free of duplicates and never nil.
type ContactInfo struct {
	EmailAddresses []string `json:"emailAddresses" validate:"dive,mailbox"`
	Mobile         string   `json:"mobile,omitempty"`
	HomePhone      string   `json:"homePhone,omitempty"`
	WorkPhone      string   `json:"workPhone,omitempty"`
	Employer       string   `json:"employer,omitempty"`
}

// IsZero reports whether the contact has no e-mail addresses and no other field set.
func (c ContactInfo) IsZero() bool {
	return len(c.EmailAddresses) == 0 &&
		c.Mobile == "" && c.HomePhone == "" && c.WorkPhone == "" && c.Employer == ""
}

// Equal reports whether two records hold the same data, comparing e-mail
// addresses as sets.
func (r Record) Equal(other Record) bool {
	if r.ID != other.ID || r.DTID != other.DTID ||
		r.LastName != other.LastName || r.FirstName != other.FirstName ||
		r.Address != other.Address {
		return false
	}
	a, b := r.Contact, other.Contact
	if a.Mobile != b.Mobile || a.HomePhone != b.HomePhone ||
		a.WorkPhone != b.WorkPhone || a.Employer != b.Employer {
		return false
	}
	return document.Equal(
		document.StringSet(a.EmailAddresses).Normalize(),
		document.StringSet(b.EmailAddresses).Normalize(),
	)
}

// Key returns the key document addressing r in a table with the given schema.
func (r Record) Key(schema storagemodels.TableSchema) (document.Document, error) {
	doc := Encode(r)
	key := make(document.Document, 2)
	for _, name := range schema.KeyNames() {
		v, ok := doc[name]
		if !ok {
			return nil, errors.NewValidationError(name, "is not a customer attribute usable as a key")
		}
		key[name] = v
	}
	return key, nil
}

// KeyOf builds the key document for an id and an optional dtid.
func KeyOf(schema storagemodels.TableSchema, id int64, dtid *int64) (document.Document, error) {
	if schema.SortKey != nil && dtid == nil {
		return nil, errors.NewValidationError(schema.SortKey.Name, "is required for this table")
	}
	r := Record{ID: id}
	if dtid != nil {
		r.DTID = *dtid
	}
	return r.Key(schema)
}
