/*
Package document defines the attribute-value model shared by the store clients
and the customer codec.

A Document is a map of attribute names to Values. Value is a closed union:

	String     // S
	Number     // N, decimal text, never converted through float64
	StringSet  // SS, order carries no meaning
	Map        // M, nested attributes
	Null       // NULL, distinct from an absent attribute

Reading from a store may also produce Unsupported for wire kinds outside the
union (BOOL, L, B, NS, BS). Such values can be inspected but never written.

Conversions:

	doc := document.FromAttributeValueMap(out.Item)      // from the SDK
	item, err := document.ToAttributeValueMap(doc)       // to the SDK
	doc, err := document.FromJSON([]byte(`{"Id": 3}`))   // plain JSON
	token, err := document.MarshalTyped(lastKey)         // typed JSON, keeps kinds

Sources:

	src := document.NewJSONArraySource(file)
	for {
	    doc, err := src.Next()
	    if err == io.EOF {
	        break
	    }
	    if errors.Is(err, document.ErrInvalidDocument) {
	        continue // only this element is bad
	    }
	    ...
	}
*/
package document
