package api

import (
	"sync"

	"go-deskpilot/internal/history"
)

// latestCache keeps the most recent feedback sentence hot for the spoken
// playback endpoint, falling back to the history store after a restart.
type latestCache struct {
	mu       sync.RWMutex
	sentence string
	store    history.Store
}

func newLatestCache(store history.Store) *latestCache {
	return &latestCache{store: store}
}

func (c *latestCache) put(sentence string) {
	c.mu.Lock()
	c.sentence = sentence
	c.mu.Unlock()
}

func (c *latestCache) get() (string, bool) {
	c.mu.RLock()
	sentence := c.sentence
	c.mu.RUnlock()
	if sentence != "" {
		return sentence, true
	}
	if c.store != nil {
		if entry, ok := c.store.Latest(); ok {
			return entry.Summary.Sentence, true
		}
	}
	return "", false
}
