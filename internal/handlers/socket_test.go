package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"spaceHub/internal/errs"
)

func TestSocketHub_BroadcastEvictsRevokedClients(t *testing.T) {
	hub := newSocketHub(context.Background())
	subscribe := func(context.Context, func([]byte)) error { return nil }

	allowed := newSocketClient(nil, 1, rate.Inf, 1)
	revoked := newSocketClient(nil, 2, rate.Inf, 1)
	revoked.authorize = func(context.Context) error { return errs.ErrForbidden }
	flaky := newSocketClient(nil, 3, rate.Inf, 1)
	flaky.authorize = func(context.Context) error { return errors.New("connection reset") }

	for _, client := range []*socketClient{allowed, revoked, flaky} {
		require.NoError(t, hub.join("board", client, subscribe))
	}

	hub.broadcast("board", []byte("hello"))

	assert.Equal(t, []byte("hello"), <-allowed.send)
	_, open := <-revoked.send
	assert.False(t, open)
	assert.Empty(t, flaky.send)
	assert.Equal(t, 2, hub.count("board"))

	// Leaving after eviction must not close send twice.
	hub.leave("board", revoked)
	hub.leave("board", allowed)
	hub.leave("board", flaky)
	assert.Zero(t, hub.count("board"))
}

func TestSocketHub_LastLeaveCancelsSubscription(t *testing.T) {
	hub := newSocketHub(context.Background())
	var subCtx context.Context
	subscriptions := 0
	subscribe := func(ctx context.Context, _ func([]byte)) error {
		subCtx = ctx
		subscriptions++
		return nil
	}

	first := newSocketClient(nil, 1, rate.Inf, 1)
	second := newSocketClient(nil, 2, rate.Inf, 1)
	require.NoError(t, hub.join("channel", first, subscribe))
	require.NoError(t, hub.join("channel", second, subscribe))
	assert.Equal(t, 1, subscriptions)

	hub.leave("channel", first)
	assert.NoError(t, subCtx.Err())
	hub.leave("channel", second)
	assert.ErrorIs(t, subCtx.Err(), context.Canceled)
}

func TestAccessRevoked(t *testing.T) {
	assert.True(t, accessRevoked(errs.ErrForbidden))
	assert.True(t, accessRevoked(errs.ErrNotChannelMember))
	assert.True(t, accessRevoked(errs.ErrWorkspaceNotFound))
	assert.False(t, accessRevoked(errs.ErrInvalidElementType))
	assert.False(t, accessRevoked(errors.New("connection reset")))
}
