package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultStalenessWindow is how long a full claims fetch stays fresh
const DefaultStalenessWindow = 30 * time.Second

// ClaimCache gates full claims fetches on a single freshness timestamp
type ClaimCache struct {
	backend interfaces.ClaimAPI
	store   *Store
	clock   func() time.Time
	window  time.Duration
}

func newClaimCache(backend interfaces.ClaimAPI, store *Store, clock func() time.Time, window time.Duration) *ClaimCache {
	return &ClaimCache{
		backend: backend,
		store:   store,
		clock:   clock,
		window:  window,
	}
}

// FetchAll replaces the claims collection with the backend's list unless the
// collection is non-empty and was fetched within the staleness window. The
// timestamp moves only on success. A malformed response is logged and
// otherwise ignored. A response that lands after an invalidation is dropped:
// it may predate an acknowledged status change.
func (c *ClaimCache) FetchAll(ctx context.Context) error {
	var (
		fresh bool
		gen   uint64
	)
	now := c.clock()
	epoch := c.store.begin(func(st *state) {
		fresh = len(st.claims) > 0 &&
			!st.claimsFetchedAt.IsZero() &&
			now.Sub(st.claimsFetchedAt) < c.window
		gen = st.claimsGen
	})
	if fresh {
		return nil
	}

	claims, err := c.backend.ListClaims(ctx)
	if err != nil {
		if errors.Is(err, interfaces.ErrMalformedResponse) {
			logging.From(ctx).Warn("Ignoring malformed claims response", "error", err.Error())
			return nil
		}
		return goerr.Wrap(err, "failed to fetch claims")
	}

	fetchedAt := c.clock()
	var superseded bool
	c.store.commit(epoch, func(st *state) {
		if st.claimsGen != gen {
			superseded = true
			return
		}
		st.replaceClaims(claims, fetchedAt)
	})
	if superseded {
		logging.From(ctx).Debug("Dropping claims fetched before an invalidation")
	}
	return nil
}

// Invalidate forces the next FetchAll to hit the backend and discards any
// fetch still in flight
func (c *ClaimCache) Invalidate() {
	c.store.update(func(st *state) {
		st.invalidateClaims()
	})
}
