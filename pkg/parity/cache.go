// Package parity tracks which academic week (even or odd) is in progress,
// refreshed from an external timetable source.
package parity

import (
	"context"
	"log"
	"sync"

	"weekalarm/pkg/models"
)

// FetchFunc looks up the current week parity from an external source.
// It returns models.WeekEven or models.WeekOdd on success.
type FetchFunc func(ctx context.Context) (models.WeekType, error)

// Cache holds the last known week parity. It fails open: any lookup problem
// leaves the cache at WeekAny, so parity-restricted alarms simply stay
// dormant instead of the refresh error propagating anywhere.
type Cache struct {
	mu      sync.RWMutex
	current models.WeekType
	fetch   FetchFunc
}

func NewCache(fetch FetchFunc) *Cache {
	return &Cache{
		current: models.WeekAny,
		fetch:   fetch,
	}
}

// Refresh invokes the external lookup and stores the result. Failures and
// unknown labels are absorbed here and stored as WeekAny; Refresh never
// returns an error.
func (c *Cache) Refresh(ctx context.Context) models.WeekType {
	parity := models.WeekAny

	if c.fetch != nil {
		result, err := c.fetch(ctx)
		if err != nil {
			log.Printf("Week parity lookup failed, treating as unknown: %v", err)
		} else if result == models.WeekEven || result == models.WeekOdd {
			parity = result
		} else {
			log.Printf("Week parity lookup returned unknown label %q, treating as unknown", result)
		}
	}

	c.mu.Lock()
	c.current = parity
	c.mu.Unlock()

	return parity
}

// Current returns the last cached parity. It never blocks on the network.
func (c *Cache) Current() models.WeekType {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.current
}
