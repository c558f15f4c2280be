package objects

import (
	"context"
	"fmt"
	"strings"

	"ordered-sync/core/orderedsync"
	"ordered-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// Object is a stored object, keyed relative to its side's prefix.
type Object struct {
	Key  string
	Size int64
	ETag string
}

// listing streams a bucket listing. Closing it cancels the listing goroutine
// inside the minio client.
type listing struct {
	*orderedsync.FuncSequence[Object]
	cancel context.CancelFunc
}

func (l *listing) Close() error {
	l.cancel()
	return nil
}

// list opens a recursive listing of bucket under prefix. S3 returns keys in
// UTF-8 binary order, which is Go string order, so the listing is already a
// valid sequence.
func list(ctx context.Context, client storage.Client, bucket, prefix string) *listing {
	ctx, cancel := context.WithCancel(ctx)
	ch := client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true})

	next := func(peekCtx context.Context) (Object, bool, error) {
		select {
		case info, ok := <-ch:
			if !ok {
				return Object{}, false, nil
			}
			if info.Err != nil {
				return Object{}, false, fmt.Errorf("failed to list %s/%s: %w", bucket, prefix, info.Err)
			}
			return Object{
				Key:  strings.TrimPrefix(info.Key, prefix),
				Size: info.Size,
				ETag: info.ETag,
			}, true, nil
		case <-peekCtx.Done():
			return Object{}, false, peekCtx.Err()
		}
	}

	return &listing{FuncSequence: orderedsync.FromFunc(next), cancel: cancel}
}
