package customdict

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDict(t *testing.T) *CustomDict {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, "")
}

func TestAddRemoveLexicon(t *testing.T) {
	ctx := context.Background()
	cd := newDict(t)

	require.NoError(t, cd.Add(ctx, " Kubernetes "))
	require.NoError(t, cd.Add(ctx, "grpc"))
	require.NoError(t, cd.Add(ctx, "grpc"))

	words, err := cd.All(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"kubernetes", "grpc"}, words)

	require.NoError(t, cd.Remove(ctx, "GRPC"))
	lex, err := cd.Lexicon(ctx)
	require.NoError(t, err)
	assert.True(t, lex.Contains("Kubernetes"))
	assert.False(t, lex.Contains("grpc"))
	assert.Equal(t, 1, lex.Len())
}

func TestRejectsInvalidWords(t *testing.T) {
	ctx := context.Background()
	cd := newDict(t)

	assert.Error(t, cd.Add(ctx, "   "))
	assert.Error(t, cd.Add(ctx, "two words"))
	assert.Error(t, cd.Remove(ctx, ""))
}
