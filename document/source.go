/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package document

import (
	"encoding/json"
	"fmt"
	"io"
)

// Source is a lazy, ordered sequence of documents. Next returns io.EOF once the
// sequence is exhausted. An error wrapping ErrInvalidDocument concerns only the
// current element and the caller may keep reading; any other error is final.
type Source interface {
	Next() (Document, error)
}

// JSONArraySource reads a JSON array of objects one element at a time.
type JSONArraySource struct {
	dec     *json.Decoder
	started bool
	done    bool
	index   int
}

// NewJSONArraySource returns a Source over the JSON array read from r.
func NewJSONArraySource(r io.Reader) *JSONArraySource {
	return &JSONArraySource{dec: json.NewDecoder(r)}
}

// Next decodes the next array element.
func (s *JSONArraySource) Next() (Document, error) {
	if s.done {
		return nil, io.EOF
	}
	if !s.started {
		tok, err := s.dec.Token()
		if err == io.EOF {
			s.done = true
			return nil, io.EOF
		}
		if err != nil {
			s.done = true
			return nil, fmt.Errorf("reading array start: %w", err)
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '[' {
			s.done = true
			return nil, fmt.Errorf("expected a JSON array, found %v", tok)
		}
		s.started = true
	}

	if !s.dec.More() {
		// Consume the closing bracket.
		if _, err := s.dec.Token(); err != nil {
			s.done = true
			return nil, fmt.Errorf("reading array end: %w", err)
		}
		s.done = true
		return nil, io.EOF
	}

	var raw json.RawMessage
	if err := s.dec.Decode(&raw); err != nil {
		s.done = true
		return nil, fmt.Errorf("element %d: %w", s.index, err)
	}
	idx := s.index
	s.index++

	doc, err := FromJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("element %d: %w", idx, err)
	}
	return doc, nil
}

// SliceSource serves documents from memory.
type SliceSource struct {
	docs []Document
	pos  int
}

// NewSliceSource returns a Source over docs.
func NewSliceSource(docs ...Document) *SliceSource {
	return &SliceSource{docs: docs}
}

// Next returns the next document.
func (s *SliceSource) Next() (Document, error) {
	if s.pos >= len(s.docs) {
		return nil, io.EOF
	}
	d := s.docs[s.pos]
	s.pos++
	return d, nil
}
