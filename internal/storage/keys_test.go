package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFromURL(t *testing.T) {
	cases := []struct {
		name   string
		rawURL string
		key    string
		ok     bool
	}{
		{
			name:   "plain bucket path",
			rawURL: "https://cdn.example.edu/event-assets/posters/mushaira.png",
			key:    "posters/mushaira.png",
			ok:     true,
		},
		{
			name:   "nested public path",
			rawURL: "https://files.example.edu/storage/v1/object/public/event-assets/docs/schedule.pdf",
			key:    "docs/schedule.pdf",
			ok:     true,
		},
		{
			name:   "query string ignored",
			rawURL: "https://cdn.example.edu/event-assets/posters/a.png?v=2&w=800",
			key:    "posters/a.png",
			ok:     true,
		},
		{
			name:   "stock placeholder",
			rawURL: "https://images.unsplash.com/photo-1540575467063?w=800",
			ok:     false,
		},
		{
			name:   "bucket as last segment, no key",
			rawURL: "https://cdn.example.edu/event-assets",
			ok:     false,
		},
		{
			name:   "bucket name only as substring",
			rawURL: "https://cdn.example.edu/event-assets-old/x.png",
			ok:     false,
		},
		{
			name:   "empty url",
			rawURL: "",
			ok:     false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key, ok := KeyFromURL("event-assets", tc.rawURL)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.key, key)
			}
		})
	}
}

func TestMemoryStore_PutURLRoundTrips(t *testing.T) {
	store := NewMemory("event-assets")

	url, err := store.Put(context.Background(), "uploads/x.png", strings.NewReader("x"), 1, "image/png")
	require.NoError(t, err)

	key, ok := store.ExtractKey(url)
	require.True(t, ok)
	assert.Equal(t, "uploads/x.png", key)
}
