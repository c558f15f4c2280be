package objects

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"

	"ordered-sync/core/orderedsync"
	"ordered-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// Adapter mirrors objects from one bucket prefix to another.
type Adapter struct {
	client  storage.Client
	cfg     Config
	ensured atomic.Bool
}

// NewAdapter creates an object mirror adapter.
func NewAdapter(client storage.Client, cfg Config) *Adapter {
	return &Adapter{client: client, cfg: cfg}
}

// Name returns the job name.
func (a *Adapter) Name() string {
	return "objects"
}

// Key is the key relative to the prefix. Size and ETag are not part of it,
// so an overwritten object is not copied again.
func (a *Adapter) Key(o Object) string {
	return o.Key
}

// Describe returns the key and size.
func (a *Adapter) Describe(o Object) string {
	return o.Key + " (" + strconv.FormatInt(o.Size, 10) + " bytes)"
}

// OpenSource lists the source prefix. A missing source bucket is an error.
func (a *Adapter) OpenSource(ctx context.Context) (orderedsync.Sequence[Object], error) {
	exists, err := a.client.BucketExists(ctx, a.cfg.SourceBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", a.cfg.SourceBucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("source bucket %s does not exist", a.cfg.SourceBucket)
	}
	return list(ctx, a.client, a.cfg.SourceBucket, a.cfg.SourcePrefix), nil
}

// OpenTarget lists the target prefix. A missing target bucket reads as empty.
func (a *Adapter) OpenTarget(ctx context.Context) (orderedsync.Sequence[Object], error) {
	exists, err := a.client.BucketExists(ctx, a.cfg.TargetBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", a.cfg.TargetBucket, err)
	}
	// The bucket may have been deleted since the last run.
	a.ensured.Store(exists)
	if !exists {
		return orderedsync.FromSlice[Object](nil), nil
	}
	return list(ctx, a.client, a.cfg.TargetBucket, a.cfg.TargetPrefix), nil
}

// Add copies the object server side.
func (a *Adapter) Add(ctx context.Context, o Object) error {
	if !a.ensured.Load() && a.cfg.CreateBucket {
		if err := storage.EnsureBucket(ctx, a.client, a.cfg.TargetBucket, a.cfg.Region); err != nil {
			return err
		}
		a.ensured.Store(true)
	}

	dst := minio.CopyDestOptions{Bucket: a.cfg.TargetBucket, Object: a.cfg.TargetPrefix + o.Key}
	src := minio.CopySrcOptions{Bucket: a.cfg.SourceBucket, Object: a.cfg.SourcePrefix + o.Key}
	if _, err := a.client.CopyObject(ctx, dst, src); err != nil {
		return fmt.Errorf("failed to copy %s: %w", o.Key, err)
	}
	return nil
}

// Remove deletes the object from the target.
func (a *Adapter) Remove(ctx context.Context, o Object) error {
	key := a.cfg.TargetPrefix + o.Key
	if err := a.client.RemoveObject(ctx, a.cfg.TargetBucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
