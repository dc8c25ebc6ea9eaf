package storage

import (
	"strings"
	"sync"

	"github.com/aliskhannn/euroexplorer-bot/internal/domain/entities"
)

// FactsCache provides in-memory storage for country facts by country name.
// Entries live until the process exits.
type FactsCache struct {
	mu    sync.RWMutex
	facts map[string]*entities.CountryFacts
}

// NewFactsCache creates a new FactsCache.
func NewFactsCache() *FactsCache {
	return &FactsCache{
		facts: make(map[string]*entities.CountryFacts),
	}
}

func cacheKey(country string) string {
	return strings.ToLower(strings.TrimSpace(country))
}

// Store saves facts for a given country name.
func (c *FactsCache) Store(country string, facts *entities.CountryFacts) {
	if facts == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.facts[cacheKey(country)] = facts
}

// Get retrieves the facts for a given country name, or nil.
func (c *FactsCache) Get(country string) *entities.CountryFacts {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.facts[cacheKey(country)]
}

// Len returns the number of cached countries.
func (c *FactsCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.facts)
}
