package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// URLCache keeps presigned object URLs in process so gallery reads don't
// re-sign every request. Entries expire before the signature does.
type URLCache struct {
	cache *cache.Cache
}

func NewURLCache(presignExpiry time.Duration) *URLCache {
	// Drop cached URLs well before the signature expires so clients never
	// receive a URL about to go stale.
	ttl := presignExpiry - presignExpiry/4
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &URLCache{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (c *URLCache) Get(objectKey string) (string, bool) {
	if v, found := c.cache.Get(objectKey); found {
		return v.(string), true
	}
	return "", false
}

func (c *URLCache) Set(objectKey, url string) {
	c.cache.Set(objectKey, url, cache.DefaultExpiration)
}

func (c *URLCache) Delete(objectKey string) {
	c.cache.Delete(objectKey)
}
