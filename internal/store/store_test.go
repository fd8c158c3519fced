package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends returns a fresh instance of every Store implementation that can run without external services.
func backends(t *testing.T) map[string]Store {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"file":   NewFile(filepath.Join(t.TempDir(), "state.json")),
		"redis":  NewRedisFromClient(client),
	}
}

func TestLoadSave_RoundTrip(t *testing.T) {
	values := map[string]any{
		"empty object": map[string][]string{},
		"record":       map[string][]string{"https://example.com/cs10.html": {"/a1", "/a2"}},
		"string":       "dark",
	}

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, Save(ctx, s, "progress:cs", values["record"]))
			record, found, err := Load[map[string][]string](ctx, s, "progress:cs")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, values["record"], record)

			require.NoError(t, Save(ctx, s, "progress:it", values["empty object"]))
			empty, found, err := Load[map[string][]string](ctx, s, "progress:it")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, map[string][]string{}, empty)

			require.NoError(t, Save(ctx, s, "theme", values["string"]))
			theme, _, err := Load[string](ctx, s, "theme")
			require.NoError(t, err)
			assert.Equal(t, "dark", theme)
		})
	}
}

func TestLoad_MissingKey(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			value, found, err := Load[map[string][]string](context.Background(), s, "nope")
			require.NoError(t, err)
			assert.False(t, found)
			assert.Nil(t, value)
		})
	}
}

func TestLoad_CorruptValueReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	require.NoError(t, s.Set(ctx, "progress:cs", []byte(`{"broken":`), 0))

	value, found, err := Load[map[string][]string](ctx, s, "progress:cs")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, value)
}

func TestLoad_WrongShapeReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	require.NoError(t, s.Set(ctx, "progress:cs", []byte(`["not","an","object"]`), 0))

	_, found, err := Load[map[string][]string](ctx, s, "progress:cs")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, Save(ctx, s, "theme", "light"))
			require.NoError(t, s.Delete(ctx, "theme"))
			require.NoError(t, s.Delete(ctx, "theme"))

			_, found, err := s.Get(ctx, "theme")
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemory()
	s.SetClock(func() time.Time { return now })

	require.NoError(t, s.Set(ctx, "k", []byte(`1`), time.Hour))
	_, found, _ := s.Get(ctx, "k")
	assert.True(t, found)

	now = now.Add(time.Hour)
	_, found, _ = s.Get(ctx, "k")
	assert.False(t, found)
}

func TestMemory_DefaultRetention(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemory()
	s.SetClock(func() time.Time { return now })

	require.NoError(t, Save(ctx, s, "k", 1))

	now = now.Add(DefaultRetention - time.Second)
	_, found, _ := s.Get(ctx, "k")
	assert.True(t, found)

	now = now.Add(time.Second)
	_, found, _ = s.Get(ctx, "k")
	assert.False(t, found)
}

func TestRedis_UsesNativeTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	s := NewRedisFromClient(client)
	require.NoError(t, Save(context.Background(), s, "theme", "dark"))
	assert.Equal(t, DefaultRetention, mr.TTL("theme"))

	mr.FastForward(DefaultRetention)
	_, found, err := s.Get(context.Background(), "theme")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewRedis_EmptyAddress(t *testing.T) {
	s, err := NewRedis(context.Background(), RedisConfig{})
	assert.ErrorIs(t, err, ErrEmptyAddress)
	assert.Nil(t, s)
}

func TestNewRedis_Connects(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewRedis(context.Background(), RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, Save(context.Background(), s, "selected_category", "cs"))
	got, err := mr.Get("selected_category")
	require.NoError(t, err)
	assert.Equal(t, `"cs"`, got)
}

func TestFile_CorruptDocumentReadsAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	s := NewFile(path)
	_, found, err := s.Get(context.Background(), "progress:cs")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, Save(context.Background(), s, "progress:cs", map[string][]string{}))
	_, found, err = s.Get(context.Background(), "progress:cs")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestFile_RejectsInvalidJSON(t *testing.T) {
	s := NewFile(filepath.Join(t.TempDir(), "state.json"))

	err := s.Set(context.Background(), "k", []byte("{"), 0)
	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "k", storeErr.Key)
}

func TestFile_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	ctx := context.Background()

	require.NoError(t, Save(ctx, NewFile(path), "theme", "dark"))

	theme, found, err := Load[string](ctx, NewFile(path), "theme")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dark", theme)
}

func TestPrefixed_ScopesKeys(t *testing.T) {
	ctx := context.Background()
	inner := NewMemory()
	a := WithPrefix(inner, "site-a/")
	b := WithPrefix(inner, "site-b/")

	require.NoError(t, Save(ctx, a, "theme", "dark"))

	_, found, err := b.Get(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = inner.Get(ctx, "site-a/theme")
	require.NoError(t, err)
	assert.True(t, found)
}
