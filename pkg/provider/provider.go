// Package provider defines abstractions for cloud object storage listing.
//
// Providers implement a minimal surface area focused on the two calls an
// interactive browser needs: enumerating buckets and listing one level of a
// bucket. Authentication uses SDK default credential chains - providers
// should not implement custom auth logic.
package provider

import (
	"context"
	"time"
)

// Provider abstracts the listing operations used while browsing.
//
// Implementations should:
//   - Use SDK default credential chains (AWS default config)
//   - Return at most one page per call; callers decide whether to follow
//   - Report failures per call without retry loops of their own
type Provider interface {
	BucketLister
	DelimiterLister

	// Close releases any resources held by the provider.
	Close() error
}

// BucketLister enumerates the buckets visible to the caller's credentials.
type BucketLister interface {
	ListBuckets(ctx context.Context) ([]BucketSummary, error)
}

// BucketSummary describes one bucket returned by ListBuckets.
type BucketSummary struct {
	// Name is the bucket name.
	Name string

	// CreationDate is when the bucket was created. Zero if unknown.
	CreationDate time.Time
}

// ObjectSummary contains basic metadata returned from List operations.
type ObjectSummary struct {
	// Key is the full object key (path) in the bucket.
	Key string

	// Size is the object size in bytes.
	Size int64

	// ETag is the entity tag, typically an MD5 hash of the object.
	ETag string

	// LastModified is when the object was last modified.
	LastModified time.Time
}

// ProviderType identifies a cloud storage provider.
type ProviderType string

const (
	// ProviderS3 represents AWS S3 or S3-compatible storage.
	ProviderS3 ProviderType = "s3"
)

// String returns the string representation of the provider type.
func (p ProviderType) String() string {
	return string(p)
}
