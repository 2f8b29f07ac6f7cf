package provider

import "context"

// DelimiterLister supports delimiter-based listing.
//
// Delimiter listing returns one level of a bucket:
//   - Objects directly under Prefix (no nested delimiter in the remainder)
//   - CommonPrefixes (immediate child prefixes)
//
// Implementations map to provider-native delimiter listing (S3 ListObjectsV2
// with Delimiter).
type DelimiterLister interface {
	ListWithDelimiter(ctx context.Context, opts ListWithDelimiterOptions) (*ListWithDelimiterResult, error)
}

// ListWithDelimiterOptions configures a delimiter listing operation.
type ListWithDelimiterOptions struct {
	// Bucket is the bucket to list. Required.
	Bucket string

	// Prefix filters results to keys starting with this value.
	Prefix string

	// Delimiter groups keys (e.g., "/").
	Delimiter string

	// MaxKeys limits the number of keys returned.
	// Zero uses provider default (1000).
	MaxKeys int
}

// ListWithDelimiterResult contains one page of results from a delimiter listing.
type ListWithDelimiterResult struct {
	// Objects are object summaries directly under the requested Prefix,
	// in the order the store returned them.
	Objects []ObjectSummary

	// CommonPrefixes are the immediate child prefixes, in listing order.
	CommonPrefixes []string

	// IsTruncated indicates the store had more entries than were returned.
	IsTruncated bool
}
