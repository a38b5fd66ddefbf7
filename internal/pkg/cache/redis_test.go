package cache

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_DisabledBypasses(t *testing.T) {
	ctx := context.Background()
	r := NewRedis(Options{Enabled: false}, zerolog.Nop())

	assert.False(t, r.Available())
	require.NoError(t, r.SetJSON(ctx, "k", map[string]int{"a": 1}, 0))

	var out map[string]int
	hit, err := r.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, out)

	assert.NoError(t, r.Delete(ctx, "k"))
	assert.NoError(t, r.DeleteByPattern(ctx, "stats:*"))
	assert.Error(t, r.Ping(ctx))
	assert.NoError(t, r.Close())
}

func TestRedis_NilReceiverBypasses(t *testing.T) {
	var r *Redis
	hit, err := r.GetJSON(context.Background(), "k", new(int))
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, r.SetJSON(context.Background(), "k", 1, 0))
}

func TestRedis_UnreachableFallsBack(t *testing.T) {
	r := NewRedis(Options{Enabled: true, Addr: "127.0.0.1:1"}, zerolog.Nop())
	assert.False(t, r.Available())
}
