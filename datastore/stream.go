/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/suparena/customerstore/document"
	"github.com/suparena/customerstore/storagemodels"
)

// ErrScanAborted marks a stream result reporting that the scan itself failed.
// It is always the last result on the channel.
var ErrScanAborted = errors.New("scan aborted")

// DecodeFunc turns one stored document into a typed item.
type DecodeFunc[T any] func(document.Document) (T, error)

// Stream scans every page described by params and sends each document, decoded
// with decode, on the returned channel. A decode failure is delivered as a result
// with Error set and the stream continues; a store failure is delivered the same
// way and ends the stream. The channel is closed when the scan ends or ctx is done.
func Stream[T any](
	ctx context.Context,
	client Client,
	params storagemodels.ScanParams,
	decode DecodeFunc[T],
	opts ...storagemodels.StreamOption,
) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	resultCh := make(chan storagemodels.StreamResult[T], options.BufferSize)

	go streamWorker(ctx, client, params, decode, options, resultCh)

	return resultCh
}

func streamWorker[T any](
	ctx context.Context,
	client Client,
	params storagemodels.ScanParams,
	decode DecodeFunc[T],
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult[T],
) {
	defer close(resultCh)

	var itemIndex int64
	var failures int64
	var pageNumber int
	startTime := time.Now()

	reportProgress := func(lastKey document.Document) {
		if options.ProgressHandler == nil {
			return
		}
		progress := storagemodels.StreamProgress{
			ItemsProcessed: itemIndex,
			PagesProcessed: pageNumber,
			LastKey:        lastKey,
			Failures:       failures,
			StartTime:      startTime,
		}
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			progress.CurrentRate = float64(itemIndex) / elapsed
		}
		options.ProgressHandler(progress)
	}

	if params.Limit == 0 {
		params.Limit = options.PageSize
	}

	for {
		if ctx.Err() != nil {
			return
		}

		page, err := client.ScanDocuments(ctx, &params)
		if err != nil {
			select {
			case <-ctx.Done():
			case resultCh <- storagemodels.StreamResult[T]{
				Error: fmt.Errorf("%w: %w", ErrScanAborted, err),
				Meta: storagemodels.StreamMeta{
					Index:      itemIndex,
					PageNumber: pageNumber,
					Timestamp:  time.Now(),
				},
			}:
			}
			return
		}

		pageNumber++

		for _, raw := range page.Items {
			result := storagemodels.StreamResult[T]{
				Raw: raw,
				Meta: storagemodels.StreamMeta{
					Index:      itemIndex,
					PageNumber: pageNumber,
					Timestamp:  time.Now(),
				},
			}
			result.Item, result.Error = decode(raw)
			if result.Error != nil {
				failures++
			}
			itemIndex++

			select {
			case <-ctx.Done():
				return
			case resultCh <- result:
			}
		}

		reportProgress(page.LastEvaluatedKey)

		if len(page.LastEvaluatedKey) == 0 {
			return
		}
		params.ExclusiveStartKey = page.LastEvaluatedKey
	}
}
