/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package customer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/customerstore/document"
	"github.com/suparena/customerstore/errors"
	"github.com/suparena/customerstore/storagemodels"
)

func minimalDoc() document.Document {
	return document.Document{
		AttrID:        document.Number("3"),
		AttrDTID:      document.Number("7"),
		AttrLastName:  document.String("Smith"),
		AttrFirstName: document.String("Anna"),
	}
}

func TestDecodeFull(t *testing.T) {
	doc := minimalDoc()
	doc[AttrAddress] = document.Map{
		AttrAddrLine1: document.String("1 Main St"),
		AttrAddrCity:  document.String("Oakville"),
		AttrAddrState: document.String("ON"),
		AttrAddrZip:   document.String("L6J"),
	}
	doc[AttrContacts] = document.Map{
		AttrEmails:    document.StringSet{"b@example.com", "a@example.com", "a@example.com"},
		AttrMobile:    document.String("555-0100"),
		AttrHomePhone: document.String("555-0101"),
		AttrWorkPhone: document.String("555-0102"),
		AttrEmployer:  document.String("Summit"),
	}
	doc["Unknown"] = document.String("ignored")

	r, err := Decode(doc)
	require.NoError(t, err)

	assert.Equal(t, Record{
		ID:        3,
		DTID:      7,
		LastName:  "Smith",
		FirstName: "Anna",
		Address:   Address{Line1: "1 Main St", City: "Oakville", State: "ON", Zip: "L6J"},
		Contact: ContactInfo{
			EmailAddresses: []string{"a@example.com", "b@example.com"},
			Mobile:         "555-0100",
			HomePhone:      "555-0101",
			WorkPhone:      "555-0102",
			Employer:       "Summit",
		},
	}, r)
}

func TestDecodeRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(document.Document)
		field  string
	}{
		{"missing id", func(d document.Document) { delete(d, AttrID) }, "id"},
		{"id not a number", func(d document.Document) { d[AttrID] = document.String("3") }, "id"},
		{"fractional id", func(d document.Document) { d[AttrID] = document.Number("3.5") }, "id"},
		{"id overflows", func(d document.Document) { d[AttrID] = document.Number("1e30") }, "id"},
		{"missing dtid", func(d document.Document) { delete(d, AttrDTID) }, "dtid"},
		{"null dtid", func(d document.Document) { d[AttrDTID] = document.Null{} }, "dtid"},
		{"missing last name", func(d document.Document) { delete(d, AttrLastName) }, "lastName"},
		{"null first name", func(d document.Document) { d[AttrFirstName] = document.Null{} }, "firstName"},
		{"unsupported first name", func(d document.Document) { d[AttrFirstName] = document.Unsupported{Type: "BOOL"} }, "firstName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := minimalDoc()
			tt.mutate(doc)

			_, err := Decode(doc)
			require.Error(t, err)
			assert.True(t, errors.IsMalformedRecord(err))
			field, ok := errors.MalformedField(err)
			assert.True(t, ok)
			assert.Equal(t, tt.field, field)
		})
	}
}

func TestDecodeIntegralWithFraction(t *testing.T) {
	doc := minimalDoc()
	doc[AttrID] = document.Number("3.0")

	r, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, int64(3), r.ID)
}

func TestDecodeOptionalDefaults(t *testing.T) {
	t.Run("contacts without mobile", func(t *testing.T) {
		doc := minimalDoc()
		doc[AttrContacts] = document.Map{AttrEmployer: document.String("Summit")}

		r, err := Decode(doc)
		require.NoError(t, err)
		assert.Equal(t, "", r.Contact.Mobile)
		assert.Equal(t, "Summit", r.Contact.Employer)
		assert.NotNil(t, r.Contact.EmailAddresses)
		assert.Empty(t, r.Contact.EmailAddresses)
	})

	t.Run("empty contacts map", func(t *testing.T) {
		doc := minimalDoc()
		doc[AttrContacts] = document.Map{}

		r, err := Decode(doc)
		require.NoError(t, err)
		assert.True(t, r.Contact.IsZero())
		assert.NotNil(t, r.Contact.EmailAddresses)
	})

	t.Run("partial address", func(t *testing.T) {
		doc := minimalDoc()
		doc[AttrAddress] = document.Map{AttrAddrCity: document.String("Oakville")}

		r, err := Decode(doc)
		require.NoError(t, err)
		assert.Equal(t, Address{City: "Oakville"}, r.Address)
	})

	t.Run("wrong types and nulls", func(t *testing.T) {
		doc := minimalDoc()
		doc[AttrAddress] = document.String("not a map")
		doc[AttrContacts] = document.Map{
			AttrEmails:    document.String("a@example.com"),
			AttrMobile:    document.Null{},
			AttrWorkPhone: document.Number("5550102"),
		}

		r, err := Decode(doc)
		require.NoError(t, err)
		assert.True(t, r.Address.IsZero())
		assert.Empty(t, r.Contact.EmailAddresses)
		assert.Equal(t, "", r.Contact.Mobile)
		assert.Equal(t, "", r.Contact.WorkPhone)
	})

	t.Run("minimal", func(t *testing.T) {
		r, err := Decode(minimalDoc())
		require.NoError(t, err)
		assert.True(t, r.Address.IsZero())
		assert.True(t, r.Contact.IsZero())
		assert.Equal(t, []string{}, r.Contact.EmailAddresses)
	})
}

func TestEncode(t *testing.T) {
	t.Run("minimal decode adds no nested maps", func(t *testing.T) {
		r, err := Decode(minimalDoc())
		require.NoError(t, err)

		doc := Encode(r)
		assert.NotContains(t, doc, AttrAddress)
		assert.NotContains(t, doc, AttrContacts)
		assert.True(t, document.EqualDocuments(minimalDoc(), doc))
	})

	t.Run("empty sub-fields are omitted", func(t *testing.T) {
		doc := Encode(Record{
			ID: 1, DTID: 2, LastName: "L", FirstName: "F",
			Address: Address{City: "Oakville"},
			Contact: ContactInfo{EmailAddresses: []string{"b@x.com", "a@x.com", "b@x.com"}},
		})

		addr := doc[AttrAddress].(document.Map)
		assert.Equal(t, document.Map{AttrAddrCity: document.String("Oakville")}, addr)

		contacts := doc[AttrContacts].(document.Map)
		assert.Len(t, contacts, 1)
		assert.Equal(t, document.StringSet{"a@x.com", "b@x.com"}, contacts[AttrEmails])
	})

	t.Run("contact with only a phone", func(t *testing.T) {
		doc := Encode(Record{ID: 1, DTID: 2, LastName: "L", FirstName: "F", Contact: ContactInfo{Mobile: "555"}})
		contacts := doc[AttrContacts].(document.Map)
		assert.NotContains(t, contacts, AttrEmails)
		assert.Equal(t, document.String("555"), contacts[AttrMobile])
	})
}

func TestRoundTrip(t *testing.T) {
	records := []Record{
		{ID: 1, DTID: 1, LastName: "Smith", FirstName: "Anna"},
		{ID: -5, DTID: 0, LastName: "", FirstName: "Nameless"},
		{
			ID: 9007199254740993, DTID: 42, LastName: "Big", FirstName: "Number",
			Address: Address{Line1: "1 Main St", Zip: "L6J"},
		},
		{
			ID: 2, DTID: 3, LastName: "Jones", FirstName: "Bo",
			Contact: ContactInfo{
				EmailAddresses: []string{"z@example.com", "a@example.com"},
				WorkPhone:      "555-0199",
			},
		},
		{
			ID: 4, DTID: 4, LastName: "Full", FirstName: "Record",
			Address: Address{Line1: "a", City: "b", State: "c", Zip: "d"},
			Contact: ContactInfo{
				EmailAddresses: []string{"x@example.com"},
				Mobile:         "1", HomePhone: "2", WorkPhone: "3", Employer: "4",
			},
		},
	}

	for _, r := range records {
		got, err := Decode(Encode(r))
		require.NoError(t, err)
		assert.True(t, r.Equal(got), "round trip of %+v gave %+v", r, got)
	}
}

func TestRecordEqual(t *testing.T) {
	a := Record{ID: 1, DTID: 1, LastName: "A", FirstName: "B", Contact: ContactInfo{EmailAddresses: []string{"x", "y"}}}
	b := a
	b.Contact.EmailAddresses = []string{"y", "x", "x"}
	assert.True(t, a.Equal(b))

	b.Contact.Mobile = "1"
	assert.False(t, a.Equal(b))

	c := Record{ID: 1, DTID: 1, LastName: "A", FirstName: "B"}
	d := c
	d.Contact.EmailAddresses = []string{}
	assert.True(t, c.Equal(d), "nil and empty e-mail sets are equal")
}

func TestKey(t *testing.T) {
	composite := storagemodels.TableSchema{
		Name:         "SummitCustomer",
		PartitionKey: storagemodels.KeyAttribute{Name: AttrID, Type: storagemodels.KeyTypeNumber},
		SortKey:      &storagemodels.KeyAttribute{Name: AttrDTID, Type: storagemodels.KeyTypeNumber},
	}
	single := storagemodels.TableSchema{
		Name:         "SummitCustomer",
		PartitionKey: storagemodels.KeyAttribute{Name: AttrID, Type: storagemodels.KeyTypeNumber},
	}

	r := Record{ID: 3, DTID: 9, LastName: "Smith", FirstName: "Anna"}

	key, err := r.Key(composite)
	require.NoError(t, err)
	assert.Equal(t, document.Document{AttrID: document.Number("3"), AttrDTID: document.Number("9")}, key)

	key, err = r.Key(single)
	require.NoError(t, err)
	assert.Equal(t, document.Document{AttrID: document.Number("3")}, key)

	_, err = KeyOf(composite, 3, nil)
	assert.True(t, errors.IsValidationError(err))

	dtid := int64(9)
	key, err = KeyOf(composite, 3, &dtid)
	require.NoError(t, err)
	assert.Len(t, key, 2)

	bad := single
	bad.PartitionKey.Name = "CustomerNumber"
	_, err = r.Key(bad)
	assert.True(t, errors.IsValidationError(err))
}

func TestValidate(t *testing.T) {
	good := Record{ID: 1, DTID: 1, LastName: "Smith", FirstName: "Anna",
		Contact: ContactInfo{EmailAddresses: []string{"anna@example.com"}}}
	assert.NoError(t, good.Validate())

	badEmail := good
	badEmail.Contact.EmailAddresses = []string{"anna@example.com", "not-an-address"}
	err := badEmail.Validate()
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "not-an-address")

	noName := good
	noName.FirstName = ""
	err = noName.Validate()
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "FirstName")
}

func TestCodecConcurrentUse(t *testing.T) {
	doc := minimalDoc()
	doc[AttrContacts] = document.Map{AttrEmails: document.StringSet{"b", "a"}}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := Decode(doc)
			assert.NoError(t, err)
			_ = Encode(r)
		}()
	}
	wg.Wait()

	assert.Equal(t, document.StringSet{"b", "a"}, doc[AttrContacts].(document.Map)[AttrEmails], "input is not mutated")
}
