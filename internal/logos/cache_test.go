package logos_test

import (
	"testing"

	"github.com/golazobot/golazo/internal/logos"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	cache := logos.NewCache()

	cache.Put("359", "https://cdn.example/359.png")
	cache.Put("359", "https://cdn.example/359-v2.png")
	cache.Put("", "https://cdn.example/ignored.png")
	cache.Put("363", "")

	url, found := cache.Get("359")
	require.True(t, found)
	require.Equal(t, "https://cdn.example/359-v2.png", url)

	_, found = cache.Get("363")
	require.False(t, found)

	require.Equal(t, 1, cache.Len())
}
