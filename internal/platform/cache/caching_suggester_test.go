package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSuggester is a mock implementation of the usecase.Suggester interface.
type mockSuggester struct {
	SuggestFunc func(ctx context.Context, prompt string) (string, error)
	calls       int
}

func (m *mockSuggester) Suggest(ctx context.Context, prompt string) (string, error) {
	m.calls++
	if m.SuggestFunc != nil {
		return m.SuggestFunc(ctx, prompt)
	}
	return "", errors.New("not configured")
}

func TestNewCachingSuggester(t *testing.T) {
	t.Run("defaults are applied", func(t *testing.T) {
		c := NewCachingSuggester(nil, 0, &mockSuggester{}, "")

		assert.Equal(t, 5*time.Minute, c.ttl)
		assert.Equal(t, "suggestions", c.namespace)
	})

	t.Run("explicit settings are kept", func(t *testing.T) {
		c := NewCachingSuggester(nil, 10*time.Minute, &mockSuggester{}, "custom")

		assert.Equal(t, 10*time.Minute, c.ttl)
		assert.Equal(t, "custom", c.namespace)
	})
}

func TestCachingSuggester_Suggest(t *testing.T) {
	const prompt = "generate three questions"
	const response = "one||two||three"

	t.Run("cache hit skips the underlying suggester", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockSuggester{}
		c := NewCachingSuggester(rdb, time.Minute, inner, "suggestions")

		mock.ExpectGet(c.cacheKey(prompt)).SetVal(response)

		out, err := c.Suggest(context.Background(), prompt)

		require.NoError(t, err)
		assert.Equal(t, response, out)
		assert.Zero(t, inner.calls, "inner suggester must not be called on a hit")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache miss calls through and stores the result", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockSuggester{
			SuggestFunc: func(ctx context.Context, p string) (string, error) {
				assert.Equal(t, prompt, p)
				return response, nil
			},
		}
		c := NewCachingSuggester(rdb, time.Minute, inner, "suggestions")

		key := c.cacheKey(prompt)
		mock.ExpectGet(key).RedisNil()
		mock.ExpectSet(key, response, time.Minute).SetVal("OK")

		out, err := c.Suggest(context.Background(), prompt)

		require.NoError(t, err)
		assert.Equal(t, response, out)
		assert.Equal(t, 1, inner.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inner failure is returned and nothing is cached", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockSuggester{
			SuggestFunc: func(ctx context.Context, p string) (string, error) {
				return "", errors.New("model unavailable")
			},
		}
		c := NewCachingSuggester(rdb, time.Minute, inner, "suggestions")

		mock.ExpectGet(c.cacheKey(prompt)).RedisNil()

		_, err := c.Suggest(context.Background(), prompt)

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil redis client bypasses the cache entirely", func(t *testing.T) {
		inner := &mockSuggester{
			SuggestFunc: func(ctx context.Context, p string) (string, error) {
				return response, nil
			},
		}
		c := NewCachingSuggester(nil, time.Minute, inner, "suggestions")

		out, err := c.Suggest(context.Background(), prompt)

		require.NoError(t, err)
		assert.Equal(t, response, out)
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("different prompts use different keys", func(t *testing.T) {
		c := NewCachingSuggester(nil, time.Minute, &mockSuggester{}, "suggestions")

		assert.NotEqual(t, c.cacheKey("prompt-a"), c.cacheKey("prompt-b"))
	})
}
