package browse

import (
	"context"
	"fmt"
	"strings"

	"github.com/3leaps/s3uri/pkg/provider"
)

// memStore is an in-memory bucket that answers delimiter listings the way
// S3 does: one level, common prefixes and objects in key insertion order.
type memStore struct {
	buckets map[string][]string
	order   []string
	err     error
	calls   []provider.ListWithDelimiterOptions
}

func newMemStore() *memStore {
	return &memStore{buckets: map[string][]string{}}
}

func (m *memStore) put(bucket string, keys ...string) *memStore {
	if _, ok := m.buckets[bucket]; !ok {
		m.order = append(m.order, bucket)
	}
	m.buckets[bucket] = append(m.buckets[bucket], keys...)
	return m
}

func (m *memStore) ListBuckets(ctx context.Context) ([]provider.BucketSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]provider.BucketSummary, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, provider.BucketSummary{Name: name})
	}
	return out, nil
}

func (m *memStore) ListWithDelimiter(ctx context.Context, opts provider.ListWithDelimiterOptions) (*provider.ListWithDelimiterResult, error) {
	m.calls = append(m.calls, opts)
	if m.err != nil {
		return nil, m.err
	}
	keys, ok := m.buckets[opts.Bucket]
	if !ok {
		return nil, &provider.ProviderError{Op: "ListWithDelimiter", Provider: provider.ProviderS3, Bucket: opts.Bucket, Err: provider.ErrBucketNotFound}
	}

	res := &provider.ListWithDelimiterResult{}
	seen := map[string]bool{}
	for _, key := range keys {
		if !strings.HasPrefix(key, opts.Prefix) {
			continue
		}
		rest := key[len(opts.Prefix):]
		if i := strings.Index(rest, opts.Delimiter); opts.Delimiter != "" && i >= 0 {
			cp := opts.Prefix + rest[:i+len(opts.Delimiter)]
			if !seen[cp] {
				seen[cp] = true
				res.CommonPrefixes = append(res.CommonPrefixes, cp)
			}
			continue
		}
		res.Objects = append(res.Objects, provider.ObjectSummary{Key: key})
	}
	return res, nil
}

// scriptedSelector picks items by label, in order, and records every prompt.
type scriptedSelector struct {
	picks   []string
	prompts []string
	offered [][]string
	err     error
}

func (s *scriptedSelector) Select(ctx context.Context, prompt string, items []string, defaultIndex int) (int, error) {
	s.prompts = append(s.prompts, prompt)
	s.offered = append(s.offered, append([]string(nil), items...))
	if s.err != nil {
		return -1, s.err
	}
	if len(items) == 0 {
		return -1, ErrNoItems
	}
	if len(s.picks) == 0 {
		return -1, fmt.Errorf("script exhausted at prompt %q", prompt)
	}
	want := s.picks[0]
	s.picks = s.picks[1:]
	for i, item := range items {
		if item == want {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%q not offered at prompt %q: %v", want, prompt, items)
}
