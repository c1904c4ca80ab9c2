// Package logos keeps team crest URLs seen in scoreboard responses so they
// can be served without another upstream round trip.
package logos

import "sync"

type Cache struct {
	urls map[string]string
	mu   *sync.RWMutex
}

func NewCache() *Cache {
	return &Cache{
		urls: make(map[string]string),
		mu:   &sync.RWMutex{},
	}
}

// Put records the crest URL for a team id. Empty ids or URLs are ignored.
func (c *Cache) Put(teamID string, url string) {
	if teamID == "" || url == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.urls[teamID] = url
}

func (c *Cache) Get(teamID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	url, found := c.urls[teamID]
	return url, found
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.urls)
}
