// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the small Client interface the object
// mirror needs, and works against both AWS S3 and self-hosted MinIO.
//
// # Operations
//
//   - BucketExists / MakeBucket: bucket checks, combined by EnsureBucket.
//   - ListObjects: lists objects in lexicographic key order.
//   - CopyObject: server-side copy between buckets.
//   - RemoveObject: deletes a single object.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.EnsureBucket(ctx, client, "mirror", config.Region)
package storage
