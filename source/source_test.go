/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package source

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/suparena/customerstore/document"
	"github.com/suparena/customerstore/errors"
)

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.GetObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

const twoCustomers = `[{"Id": 1, "DTID": 1, "LastName": "Smith"}, {"Id": 2, "DTID": 1, "LastName": "Jones"}]`

func readAll(t *testing.T, f *File) []document.Document {
	t.Helper()
	var docs []document.Document
	for {
		doc, err := f.Next()
		if err == io.EOF {
			return docs
		}
		require.NoError(t, err)
		docs = append(docs, doc)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customerdata.json")
	require.NoError(t, os.WriteFile(path, []byte(twoCustomers), 0o600))

	f, err := NewOpener(nil).Open(context.Background(), path)
	require.NoError(t, err)
	defer f.Close()

	docs := readAll(t, f)
	require.Len(t, docs, 2)
	assert.Equal(t, document.String("Jones"), docs[1]["LastName"])
	assert.Equal(t, path, f.URI)

	_, err = NewOpener(nil).Open(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenS3(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		api := &mockS3{}
		api.On("GetObject", ctx, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
			return aws.ToString(in.Bucket) == "imports" && aws.ToString(in.Key) == "2025/customerdata.json"
		})).Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(twoCustomers))}, nil)

		f, err := NewOpener(api).Open(ctx, "s3://imports/2025/customerdata.json")
		require.NoError(t, err)
		defer f.Close()

		assert.Len(t, readAll(t, f), 2)
		api.AssertExpectations(t)
	})

	t.Run("GetObjectFails", func(t *testing.T) {
		api := &mockS3{}
		api.On("GetObject", ctx, mock.Anything).Return(nil, stderrors.New("NoSuchKey"))

		_, err := NewOpener(api).Open(ctx, "s3://imports/missing.json")
		require.Error(t, err)
		assert.True(t, errors.IsStoreUnavailable(err))
		assert.Contains(t, err.Error(), "s3://imports/missing.json")
	})

	t.Run("BadURI", func(t *testing.T) {
		for _, uri := range []string{"s3://bucket-only", "s3:///key", ""} {
			_, err := NewOpener(&mockS3{}).Open(ctx, uri)
			assert.True(t, errors.IsValidationError(err), uri)
		}
	})

	t.Run("NoClient", func(t *testing.T) {
		_, err := NewOpener(nil).Open(ctx, "s3://imports/customerdata.json")
		assert.True(t, errors.IsValidationError(err))
	})
}
