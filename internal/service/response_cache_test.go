package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	assert.Equal(t, CacheKey("a", "b"), CacheKey("a", "b"))
	assert.NotEqual(t, CacheKey("a", "b"), CacheKey("b", "a"))
	// 分隔符保证 ("ab","c") 和 ("a","bc") 不会撞 key
	assert.NotEqual(t, CacheKey("ab", "c"), CacheKey("a", "bc"))
	assert.Len(t, CacheKey("x"), 64)
}

func TestResponseCacheGetOrCompute(t *testing.T) {
	ctx := context.Background()

	t.Run("未命中计算一次后命中", func(t *testing.T) {
		cache := NewResponseCache(time.Minute, nil)
		calls := 0
		compute := func() (string, error) {
			calls++
			return "reply", nil
		}

		v1, err := cache.GetOrCompute(ctx, "k", compute)
		require.NoError(t, err)
		v2, err := cache.GetOrCompute(ctx, "k", compute)
		require.NoError(t, err)

		assert.Equal(t, "reply", v1)
		assert.Equal(t, "reply", v2)
		assert.Equal(t, 1, calls)
	})

	t.Run("不同 key 各自计算", func(t *testing.T) {
		cache := NewResponseCache(time.Minute, nil)
		calls := 0
		compute := func() (string, error) {
			calls++
			return "r", nil
		}

		cache.GetOrCompute(ctx, "k1", compute)
		cache.GetOrCompute(ctx, "k2", compute)
		assert.Equal(t, 2, calls)
	})

	t.Run("过期后重新计算", func(t *testing.T) {
		cache := NewResponseCache(time.Nanosecond, nil)
		calls := 0
		compute := func() (string, error) {
			calls++
			return "r", nil
		}

		cache.GetOrCompute(ctx, "k", compute)
		time.Sleep(time.Millisecond)
		cache.GetOrCompute(ctx, "k", compute)
		assert.Equal(t, 2, calls)
	})

	t.Run("计算失败不缓存错误", func(t *testing.T) {
		cache := NewResponseCache(time.Minute, nil)
		boom := errors.New("model unavailable")
		_, err := cache.GetOrCompute(ctx, "k", func() (string, error) {
			return "", boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, cache.Len())

		// 下一次调用会重试计算
		v, err := cache.GetOrCompute(ctx, "k", func() (string, error) {
			return "recovered", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "recovered", v)
	})
}

func TestResponseCacheSweep(t *testing.T) {
	ctx := context.Background()
	cache := NewResponseCache(time.Nanosecond, nil)

	cache.GetOrCompute(ctx, "k1", func() (string, error) { return "a", nil })
	cache.GetOrCompute(ctx, "k2", func() (string, error) { return "b", nil })
	require.Equal(t, 2, cache.Len())

	time.Sleep(time.Millisecond)
	cache.Sweep()
	assert.Equal(t, 0, cache.Len())
}
