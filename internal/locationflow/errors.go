package locationflow

import "errors"

// Sentinel errors for the outcomes of a flow. Callers match them with
// errors.Is; reported errors wrap the underlying platform cause.
var (
	// ErrPermissionCancelled is logged when the permission dialog is
	// dismissed without a choice. No message is shown.
	ErrPermissionCancelled = errors.New("locationflow: permission request cancelled")

	// ErrPermissionDenied is logged when the user refuses the permission.
	ErrPermissionDenied = errors.New("locationflow: permission denied")

	// ErrLocationUnavailable wraps a failed or empty last-location query.
	ErrLocationUnavailable = errors.New("locationflow: location unavailable")

	// ErrPermissionRequired is logged when a location fetch is requested
	// before permission is held.
	ErrPermissionRequired = errors.New("locationflow: permission required")
)

var errNoFix = errors.New("no cached location fix")
