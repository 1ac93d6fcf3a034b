package fetch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestCommit(t *testing.T) {
	var l Latest[string]

	_, ok := l.Get()
	assert.False(t, ok)

	tok := l.Begin()
	assert.True(t, l.Commit(tok, "artist1"))

	v, ok := l.Get()
	require.True(t, ok)
	assert.Equal(t, "artist1", v)
}

func TestLatestDiscardsStaleResponse(t *testing.T) {
	var l Latest[string]

	first := l.Begin()
	second := l.Begin()

	// newer response arrives first, older one resolves afterwards
	assert.True(t, l.Commit(second, "artist2"))
	assert.False(t, l.Commit(first, "artist1"))

	v, ok := l.Get()
	require.True(t, ok)
	assert.Equal(t, "artist2", v)

	// the winning token can still overwrite its own value
	assert.True(t, l.Commit(second, "artist2b"))
	assert.False(t, l.Commit(first, "artist1"))
}

func TestLatestPendingAfterBegin(t *testing.T) {
	var l Latest[int]
	l.Commit(l.Begin(), 1)
	l.Begin()

	_, ok := l.Get()
	assert.False(t, ok, "a newer pending request hides the old value")
}

func TestLoad(t *testing.T) {
	var l Latest[int]
	ctx := context.Background()

	v, committed, err := Load(ctx, &l, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.True(t, committed)
	assert.Equal(t, 7, v)

	boom := errors.New("boom")
	_, committed, err = Load(ctx, &l, func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, committed)

	// a load superseded while in flight is dropped
	v, committed, err = Load(ctx, &l, func(context.Context) (int, error) {
		l.Begin()
		return 9, nil
	})
	require.NoError(t, err)
	assert.False(t, committed)
	assert.Equal(t, 9, v)
}
