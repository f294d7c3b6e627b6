package memory

import (
	"time"

	"ai-rooms-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// RosterRepository memoizes room member lists. Entries expire by TTL only;
// membership changes become visible after expiry, which is acceptable for
// assignee resolution.
type RosterRepository struct {
	cache *cache.Cache
}

func NewRosterRepository() *RosterRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &RosterRepository{
		cache: c,
	}
}

func (r *RosterRepository) Save(roomId uuid.UUID, members []*entity.Member) {
	r.cache.Set(roomId.String(), members, cache.DefaultExpiration)
}

func (r *RosterRepository) Get(roomId uuid.UUID) ([]*entity.Member, bool) {
	if x, found := r.cache.Get(roomId.String()); found {
		return x.([]*entity.Member), true
	}
	return nil, false
}

func (r *RosterRepository) Delete(roomId uuid.UUID) {
	r.cache.Delete(roomId.String())
}
