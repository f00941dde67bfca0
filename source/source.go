/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package source opens import files holding a JSON array of customer documents,
// either on the local filesystem or in S3 (s3://bucket/key).
package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/suparena/customerstore/document"
	"github.com/suparena/customerstore/errors"
)

// S3API is the subset of *s3.Client used to fetch import files.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// File is an open import file. Documents are decoded lazily as Next is called;
// Close releases the underlying file or object body.
type File struct {
	*document.JSONArraySource
	URI  string
	body io.ReadCloser
}

// Close closes the underlying reader.
func (f *File) Close() error {
	return f.body.Close()
}

// Opener opens import files by URI.
type Opener struct {
	s3 S3API
}

// NewOpener returns an Opener. s3Client may be nil when only local files are used.
func NewOpener(s3Client S3API) *Opener {
	return &Opener{s3: s3Client}
}

// Open opens uri, a local path or an s3://bucket/key URI.
func (o *Opener) Open(ctx context.Context, uri string) (*File, error) {
	if uri == "" {
		return nil, errors.NewValidationError("uri", "must not be empty")
	}

	var body io.ReadCloser
	var err error
	if strings.HasPrefix(uri, "s3://") {
		body, err = o.openS3(ctx, uri)
	} else {
		body, err = os.Open(uri)
	}
	if err != nil {
		return nil, err
	}

	return &File{
		JSONArraySource: document.NewJSONArraySource(body),
		URI:             uri,
		body:            body,
	}, nil
}

func (o *Opener) openS3(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, key, err := parseS3URI(uri)
	if err != nil {
		return nil, err
	}
	if o.s3 == nil {
		return nil, errors.NewValidationError("uri", "s3 sources need an S3 client")
	}

	out, err := o.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.NewStoreUnavailableError("GetObject", fmt.Errorf("s3://%s/%s: %w", bucket, key, err))
	}
	return out.Body, nil
}

func parseS3URI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", errors.NewValidationError("uri", err.Error())
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", errors.NewValidationError("uri", "expected s3://bucket/key")
	}
	return u.Host, key, nil
}
