/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package customer

import (
	"fmt"

	"github.com/suparena/customerstore/document"
	"github.com/suparena/customerstore/errors"
)

// Decode converts a stored document into a Record. Missing or invalid required
// attributes fail with a MalformedRecordError naming the record field; optional
// attributes that are absent, null or of the wrong type take their zero value.
// Unknown attributes are ignored.
func Decode(doc document.Document) (Record, error) {
	var r Record
	var err error

	if r.ID, err = requiredInt(doc, AttrID, "id"); err != nil {
		return Record{}, err
	}
	if r.DTID, err = requiredInt(doc, AttrDTID, "dtid"); err != nil {
		return Record{}, err
	}
	if r.LastName, err = requiredString(doc, AttrLastName, "lastName"); err != nil {
		return Record{}, err
	}
	if r.FirstName, err = requiredString(doc, AttrFirstName, "firstName"); err != nil {
		return Record{}, err
	}

	if addr, ok := doc[AttrAddress].(document.Map); ok {
		r.Address = Address{
			Line1: optionalString(addr, AttrAddrLine1),
			City:  optionalString(addr, AttrAddrCity),
			State: optionalString(addr, AttrAddrState),
			Zip:   optionalString(addr, AttrAddrZip),
		}
	}

	r.Contact.EmailAddresses = []string{}
	if contacts, ok := doc[AttrContacts].(document.Map); ok {
		if emails, ok := contacts[AttrEmails].(document.StringSet); ok {
			r.Contact.EmailAddresses = []string(emails.Normalize())
		}
		r.Contact.Mobile = optionalString(contacts, AttrMobile)
		r.Contact.HomePhone = optionalString(contacts, AttrHomePhone)
		r.Contact.WorkPhone = optionalString(contacts, AttrWorkPhone)
		r.Contact.Employer = optionalString(contacts, AttrEmployer)
	}

	return r, nil
}

// Encode converts a Record into its stored document. Empty optional fields are
// left out, and so are an all-empty Address and ContactInfo.
func Encode(r Record) document.Document {
	doc := document.Document{
		AttrID:        document.NewNumber(r.ID),
		AttrDTID:      document.NewNumber(r.DTID),
		AttrLastName:  document.String(r.LastName),
		AttrFirstName: document.String(r.FirstName),
	}

	addr := document.Map{}
	putString(addr, AttrAddrLine1, r.Address.Line1)
	putString(addr, AttrAddrCity, r.Address.City)
	putString(addr, AttrAddrState, r.Address.State)
	putString(addr, AttrAddrZip, r.Address.Zip)
	if len(addr) > 0 {
		doc[AttrAddress] = addr
	}

	contacts := document.Map{}
	if emails := document.StringSet(r.Contact.EmailAddresses).Normalize(); len(emails) > 0 {
		contacts[AttrEmails] = emails
	}
	putString(contacts, AttrMobile, r.Contact.Mobile)
	putString(contacts, AttrHomePhone, r.Contact.HomePhone)
	putString(contacts, AttrWorkPhone, r.Contact.WorkPhone)
	putString(contacts, AttrEmployer, r.Contact.Employer)
	if len(contacts) > 0 {
		doc[AttrContacts] = contacts
	}

	return doc
}

func requiredInt(doc document.Document, attr, field string) (int64, error) {
	v, ok := doc[attr]
	if !ok {
		return 0, errors.NewMalformedRecordError(field, "is missing")
	}
	n, ok := v.(document.Number)
	if !ok {
		return 0, errors.NewMalformedRecordError(field, fmt.Sprintf("must be a number, found %s", v.Kind()))
	}
	i, err := n.Int64()
	if err != nil {
		return 0, errors.NewMalformedRecordError(field, fmt.Sprintf("value %q %v", string(n), err))
	}
	return i, nil
}

func requiredString(doc document.Document, attr, field string) (string, error) {
	v, ok := doc[attr]
	if !ok {
		return "", errors.NewMalformedRecordError(field, "is missing")
	}
	s, ok := v.(document.String)
	if !ok {
		return "", errors.NewMalformedRecordError(field, fmt.Sprintf("must be a string, found %s", v.Kind()))
	}
	return string(s), nil
}

func optionalString(m document.Map, attr string) string {
	if s, ok := m[attr].(document.String); ok {
		return string(s)
	}
	return ""
}

func putString(m document.Map, attr, value string) {
	if value != "" {
		m[attr] = document.String(value)
	}
}
