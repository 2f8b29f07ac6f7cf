package browse

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/3leaps/s3uri/pkg/provider"
)

func TestListContainers(t *testing.T) {
	store := newMemStore().put("logs").put("assets")

	names := ListContainers(context.Background(), store, nil)
	assert.Equal(t, []string{"logs", "assets"}, names)
}

func TestListContainers_ErrorIsAbsorbed(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store := newMemStore()
	store.err = &provider.ProviderError{Op: "ListBuckets", Provider: provider.ProviderS3, Err: provider.ErrInvalidCredentials}

	names := ListContainers(context.Background(), store, zap.New(core))
	assert.Empty(t, names)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "invalid-credentials", logs.All()[0].ContextMap()["reason"])
}

func TestSelectContainer(t *testing.T) {
	sel := &scriptedSelector{picks: []string{"assets"}}

	idx, err := SelectContainer(context.Background(), sel, []string{"logs", "assets"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, []string{"Bucket"}, sel.prompts)
}

func TestSelectContainer_NoContainers(t *testing.T) {
	sel := &scriptedSelector{}

	_, err := SelectContainer(context.Background(), sel, nil)
	assert.ErrorIs(t, err, ErrNoContainers)
	assert.Empty(t, sel.prompts, "selector must not be invoked")
}

func TestSelectContainer_Cancelled(t *testing.T) {
	sel := &scriptedSelector{err: ErrCancelled}

	_, err := SelectContainer(context.Background(), sel, []string{"logs"})
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestSelectContainer_OutOfRange(t *testing.T) {
	sel := SelectorFunc(func(ctx context.Context, prompt string, items []string, defaultIndex int) (int, error) {
		return 7, nil
	})

	_, err := SelectContainer(context.Background(), sel, []string{"logs"})
	assert.True(t, errors.Is(err, ErrInvalidSelection))
}

func TestClampIndex(t *testing.T) {
	assert.Equal(t, 0, ClampIndex(-3, 4))
	assert.Equal(t, 2, ClampIndex(2, 4))
	assert.Equal(t, 3, ClampIndex(9, 4))
}
