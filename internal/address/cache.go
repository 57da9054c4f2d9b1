package address

import "time"

func NewAddressCache(ttl time.Duration) *AddressCache {
	return &AddressCache{
		entries: make(map[string]cachedAddress),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
}

func (c *AddressCache) Get(postcode string) (Address, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[postcode]
	if !exists {
		return Address{}, false
	}

	if time.Since(entry.fetchedAt) > c.ttl {
		return Address{}, false
	}

	return entry.address, true
}

func (c *AddressCache) Set(postcode string, addr Address) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[postcode] = cachedAddress{
		address:   addr,
		fetchedAt: time.Now(),
	}
}

func (c *AddressCache) Invalidate(postcode string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, postcode)
}

func (c *AddressCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cachedAddress)
}

func (c *AddressCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for postcode, entry := range c.entries {
		if now.Sub(entry.fetchedAt) > c.ttl {
			delete(c.entries, postcode)
		}
	}
}

func (c *AddressCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// StartCleanupRoutine evicts expired entries every interval until Stop is called
func (c *AddressCache) StartCleanupRoutine(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Cleanup()
			case <-c.stop:
				return
			}
		}
	}()
}

// Stop ends the cleanup routine. Safe to call more than once.
func (c *AddressCache) Stop() {
	c.once.Do(func() {
		close(c.stop)
	})
}
