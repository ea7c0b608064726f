package device

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-drift/drift/pkg/platform"

	"github.com/nagaoyuriko/fusedlocation/internal/locationflow"
)

// Permissions is a locationflow.PermissionRegistry backed by a Drift
// permission. The zero value uses the foreground location permission.
type Permissions struct {
	Permission platform.Permission
}

var _ locationflow.PermissionRegistry = (*Permissions)(nil)

func (p *Permissions) permission() platform.Permission {
	if p.Permission != nil {
		return p.Permission
	}
	return platform.Location.Permission.WhenInUse
}

// Granted reports whether the permission status is granted.
func (p *Permissions) Granted(ctx context.Context) (bool, error) {
	status, err := p.permission().Status(ctx)
	if err != nil {
		return false, fmt.Errorf("location permission status: %w", err)
	}
	return status == platform.PermissionGranted, nil
}

// ShouldShowRationale passes through to the platform. iOS always answers false.
func (p *Permissions) ShouldShowRationale(ctx context.Context) (bool, error) {
	show, err := p.permission().ShouldShowRationale(ctx)
	if err != nil {
		return false, fmt.Errorf("location permission rationale: %w", err)
	}
	return show, nil
}

// Request shows the OS dialog and maps its outcome. A dialog that is
// dismissed, times out, or leaves the status undetermined yields a response
// with Present unset.
func (p *Permissions) Request(ctx context.Context) (locationflow.PermissionResponse, error) {
	status, err := p.permission().Request(ctx)
	if err != nil {
		if errors.Is(err, platform.ErrCanceled) || errors.Is(err, platform.ErrTimeout) {
			return locationflow.PermissionResponse{}, nil
		}
		return locationflow.PermissionResponse{}, fmt.Errorf("location permission request: %w", err)
	}
	return responseFor(status), nil
}

func responseFor(status platform.PermissionStatus) locationflow.PermissionResponse {
	switch status {
	case platform.PermissionGranted:
		return locationflow.PermissionResponse{Granted: true, Present: true}
	case platform.PermissionDenied, platform.PermissionPermanentlyDenied, platform.PermissionRestricted:
		return locationflow.PermissionResponse{Present: true}
	default:
		return locationflow.PermissionResponse{}
	}
}
