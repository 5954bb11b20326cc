package gateways

import (
	gocache "github.com/patrickmn/go-cache"
)

// DocumentCache memoizes parsed artifacts for one validation run so that
// per-file, collection and cross-type checks parse each file only once.
type DocumentCache struct {
	cache *gocache.Cache
}

type cachedDocument struct {
	value interface{}
	err   error
}

// NewDocumentCache creates an empty cache; entries never expire
func NewDocumentCache() *DocumentCache {
	return &DocumentCache{cache: gocache.New(gocache.NoExpiration, 0)}
}

// Len returns the number of cached documents
func (c *DocumentCache) Len() int {
	return c.cache.ItemCount()
}

// Flush drops every cached document
func (c *DocumentCache) Flush() {
	c.cache.Flush()
}

func (c *DocumentCache) get(key string) (cachedDocument, bool) {
	v, ok := c.cache.Get(key)
	if !ok {
		return cachedDocument{}, false
	}
	doc, ok := v.(cachedDocument)
	return doc, ok
}

func (c *DocumentCache) set(key string, doc cachedDocument) {
	c.cache.Set(key, doc, gocache.NoExpiration)
}

// Cached wraps a parse function with the cache. Parse failures are cached too.
func Cached[T any](c *DocumentCache, kind string, parse func(path string) (T, error)) func(path string) (T, error) {
	return func(path string) (T, error) {
		key := kind + ":" + path
		if doc, ok := c.get(key); ok {
			if doc.err != nil {
				var zero T
				return zero, doc.err
			}
			if v, ok := doc.value.(T); ok {
				return v, nil
			}
		}

		v, err := parse(path)
		c.set(key, cachedDocument{value: v, err: err})
		return v, err
	}
}
