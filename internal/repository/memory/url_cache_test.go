package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestURLCacheSetGetDelete(t *testing.T) {
	c := NewURLCache(15 * time.Minute)

	_, found := c.Get("cases/abc/photo.jpg")
	assert.False(t, found)

	c.Set("cases/abc/photo.jpg", "https://storage.example/signed")
	url, found := c.Get("cases/abc/photo.jpg")
	assert.True(t, found)
	assert.Equal(t, "https://storage.example/signed", url)

	c.Delete("cases/abc/photo.jpg")
	_, found = c.Get("cases/abc/photo.jpg")
	assert.False(t, found)
}

func TestURLCacheExpiresBeforeSignature(t *testing.T) {
	c := NewURLCache(40 * time.Millisecond)

	c.Set("key", "url")
	_, found := c.Get("key")
	assert.True(t, found)

	time.Sleep(60 * time.Millisecond)
	_, found = c.Get("key")
	assert.False(t, found)
}
