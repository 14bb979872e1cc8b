package images

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// PreviewCache keeps encoded preview renders keyed by rotation angle so that
// stepping back and forth through angles does not re-render. A nil cache is
// a valid no-op cache.
type PreviewCache struct {
	c *lru.Cache[int, []byte]
}

// NewPreviewCache returns a cache holding up to size renders. size <= 0
// returns nil (caching disabled).
func NewPreviewCache(size int) *PreviewCache {
	if size <= 0 {
		return nil
	}
	c, err := lru.New[int, []byte](size)
	if err != nil {
		return nil
	}
	return &PreviewCache{c: c}
}

func (p *PreviewCache) Get(angle int) ([]byte, bool) {
	if p == nil {
		return nil, false
	}
	return p.c.Get(angle)
}

func (p *PreviewCache) Put(angle int, data []byte) {
	if p == nil || len(data) == 0 {
		return
	}
	p.c.Add(angle, data)
}

// Purge drops every render, e.g. after a new crop.
func (p *PreviewCache) Purge() {
	if p == nil {
		return
	}
	p.c.Purge()
}

func (p *PreviewCache) Len() int {
	if p == nil {
		return 0
	}
	return p.c.Len()
}
