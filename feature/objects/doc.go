// Package objects mirrors the objects under a source bucket prefix into a
// target bucket prefix.
//
// Both sides are read straight from the bucket listings, which S3 and MinIO
// return in key order. Missing objects are copied server side; objects that
// no longer exist in the source are removed from the target. Objects are
// matched by key alone, so content changed under an existing key is not
// detected.
package objects
