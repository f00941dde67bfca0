/*
Package customer maps stored customer documents to typed records and back.

Stored layout:

	Id        N   required, integral
	DTID      N   required, integral
	LastName  S   required
	FirstName S   required
	Address   M   optional: Addr1, City, State, Zip
	Contacts  M   optional: Email_addresses (SS), Mobile, Homephone, Workphone, Employer

Decode and Encode are pure functions and safe for concurrent use. Encode leaves
out empty optional fields, so a record whose Address and ContactInfo are empty
encodes to the four required attributes only, and Decode(Encode(r)) equals r
under Record.Equal.
*/
package customer
