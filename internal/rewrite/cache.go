package rewrite

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// cachedRelation memoizes Apply results by input.
type cachedRelation struct {
	Relation
	store *cache.Cache
}

// Cached wraps rel so repeated inputs are served from memory. Entries expire
// after ttl; a non-positive ttl keeps them for the life of the process.
// Errors are not cached.
func Cached(rel Relation, ttl time.Duration) Relation {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &cachedRelation{
		Relation: rel,
		store:    cache.New(ttl, cleanupInterval(ttl)),
	}
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl == cache.NoExpiration {
		return 0
	}
	return 2 * ttl
}

// Apply implements Relation.
func (c *cachedRelation) Apply(input string) (Lattice, error) {
	if v, ok := c.store.Get(input); ok {
		if l, ok := v.(Lattice); ok {
			return l.Clone(), nil
		}
	}
	out, err := c.Relation.Apply(input)
	if err != nil {
		return nil, err
	}
	c.store.SetDefault(input, out.Clone())
	return out, nil
}
