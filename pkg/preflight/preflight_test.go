package preflight

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3leaps/s3uri/pkg/provider"
)

type fakeTarget struct {
	bucketsErr error
	listErr    error
	listOpts   []provider.ListWithDelimiterOptions
}

func (f *fakeTarget) ListBuckets(ctx context.Context) ([]provider.BucketSummary, error) {
	if f.bucketsErr != nil {
		return nil, f.bucketsErr
	}
	return []provider.BucketSummary{{Name: "logs"}}, nil
}

func (f *fakeTarget) ListWithDelimiter(ctx context.Context, opts provider.ListWithDelimiterOptions) (*provider.ListWithDelimiterResult, error) {
	f.listOpts = append(f.listOpts, opts)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &provider.ListWithDelimiterResult{}, nil
}

func TestRun_AllAllowed(t *testing.T) {
	target := &fakeTarget{}

	rep := Run(context.Background(), target, "logs", "2024/", "")
	require.Len(t, rep.Results, 2)
	assert.True(t, rep.OK())
	assert.Empty(t, rep.Failed())

	assert.Equal(t, CapBucketList, rep.Results[0].Capability)
	assert.Equal(t, CapObjectList, rep.Results[1].Capability)

	require.Len(t, target.listOpts, 1)
	assert.Equal(t, "logs", target.listOpts[0].Bucket)
	assert.Equal(t, "2024/", target.listOpts[0].Prefix)
	assert.Equal(t, 1, target.listOpts[0].MaxKeys)
	assert.Equal(t, DefaultDelimiter, target.listOpts[0].Delimiter)
}

func TestRun_UsesConfiguredDelimiter(t *testing.T) {
	target := &fakeTarget{}

	rep := Run(context.Background(), target, "logs", "2024|", "|")
	require.True(t, rep.OK())
	require.Len(t, target.listOpts, 1)
	assert.Equal(t, "|", target.listOpts[0].Delimiter)
	assert.Contains(t, rep.Results[1].Method, `delimiter="|"`)
}

func TestRun_NoBucketSkipsObjectProbe(t *testing.T) {
	target := &fakeTarget{}

	rep := Run(context.Background(), target, "", "", "")
	require.Len(t, rep.Results, 1)
	assert.Empty(t, target.listOpts)
}

func TestRun_FailuresAreClassified(t *testing.T) {
	target := &fakeTarget{
		bucketsErr: &provider.ProviderError{Op: "ListBuckets", Err: provider.ErrAccessDenied},
		listErr:    &provider.ProviderError{Op: "ListWithDelimiter", Bucket: "logs", Err: provider.ErrBucketNotFound},
	}

	rep := Run(context.Background(), target, "logs", "", "/")
	assert.False(t, rep.OK())

	failed := rep.Failed()
	require.Len(t, failed, 2, "object probe still runs after bucket probe fails")
	assert.Equal(t, "access-denied", failed[0].Reason)
	assert.Equal(t, "bucket-not-found", failed[1].Reason)
	assert.NotEmpty(t, failed[1].Detail)
}
