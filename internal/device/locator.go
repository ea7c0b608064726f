package device

import (
	"context"
	"fmt"

	"github.com/go-drift/drift/pkg/platform"
	"golang.org/x/sync/singleflight"

	"github.com/nagaoyuriko/fusedlocation/internal/locationflow"
)

// LastKnownSource reads the platform's cached position.
type LastKnownSource interface {
	LastKnown(ctx context.Context) (*platform.LocationUpdate, error)
}

// Locator is a locationflow.Locator over the Drift location service.
// Callers share a single bridge call. A caller whose context ends stops
// waiting, but the bridge call keeps running, so a retry after a timeout
// joins it instead of issuing another one.
type Locator struct {
	Source LastKnownSource

	group singleflight.Group
}

var _ locationflow.Locator = (*Locator)(nil)

const lastKnownKey = "last-known"

// LastLocation returns the cached fix, or (nil, nil) when there is none.
func (l *Locator) LastLocation(ctx context.Context) (*locationflow.Fix, error) {
	ch := l.group.DoChan(lastKnownKey, func() (any, error) {
		return l.source().LastKnown(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("last known location: %w", res.Err)
		}
		update, _ := res.Val.(*platform.LocationUpdate)
		if update == nil {
			return nil, nil
		}
		return &locationflow.Fix{Latitude: update.Latitude, Longitude: update.Longitude}, nil
	}
}

func (l *Locator) source() LastKnownSource {
	if l.Source != nil {
		return l.Source
	}
	return platform.Location
}
