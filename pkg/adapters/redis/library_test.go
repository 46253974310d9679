package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/rewind/pkg/adapters/redis"
	"github.com/aretw0/rewind/pkg/books"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLibrary_Contract(t *testing.T) {
	// Setup miniredis
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	lib := redis.NewFromClient(client)
	ports.RunLibraryContract(t, lib)
}

func TestRedisLibrary_Prefix(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	lib := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, lib.Put(ctx, "poem", "Roses are red"))

	// Verify keys in Redis directly
	assert.True(t, mr.Exists("custom:app:library"), "Expected hash with custom prefix to exist")
	assert.Equal(t, "Roses are red", mr.HGet("custom:app:library", "poem"))
}

func TestRedisLibrary_SeededExternally(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	mr.HSet(redis.DefaultPrefix+"library", "poem", "Roses are red, violets are blue..")

	lib := redis.New(mr.Addr(), "", 0)
	defer lib.Close()

	require.NoError(t, lib.Ping(context.Background()))

	// A factory can print straight from the shared library.
	factory := books.NewFactory(lib, books.WithLookupTimeout(time.Second))
	poem, err := factory.Print("poem")
	require.NoError(t, err)
	assert.Equal(t, "Roses are red, violets are blue..", poem.Text)

	_, err = factory.Print("tale")
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
}

func TestRedisLibrary_ServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	lib := redis.New(addr, "", 0)
	defer lib.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err = lib.Lookup(ctx, "poem")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSourceNotFound)
}
