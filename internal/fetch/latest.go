// Package fetch guards asynchronously loaded page data against stale
// responses: only the most recently issued request may commit.
package fetch

import (
	"context"
	"sync"
)

// Token identifies one issued request.
type Token uint64

// Latest holds the value of the most recent committed request.
type Latest[T any] struct {
	mu     sync.Mutex
	issued Token
	value  T
	loaded bool
}

// Begin issues a new token, superseding every earlier one.
func (l *Latest[T]) Begin() Token {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.issued++
	l.loaded = false
	var zero T
	l.value = zero
	return l.issued
}

// Commit stores v if tok is still the latest issued token.
// It reports false for a stale response, which is discarded.
func (l *Latest[T]) Commit(tok Token, v T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if tok != l.issued {
		return false
	}
	l.value = v
	l.loaded = true
	return true
}

// Get returns the committed value; ok is false while the latest request is pending.
func (l *Latest[T]) Get() (v T, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.loaded
}

// Load runs fn under a fresh token and commits its result.
// A stale result is dropped and reported with committed=false.
func Load[T any](ctx context.Context, l *Latest[T], fn func(context.Context) (T, error)) (v T, committed bool, err error) {
	tok := l.Begin()
	v, err = fn(ctx)
	if err != nil {
		return v, false, err
	}
	return v, l.Commit(tok, v), nil
}
