package locationflow

import (
	"context"
	"strconv"
)

// PermissionRegistry answers and requests the coarse location permission.
type PermissionRegistry interface {
	// Granted reports whether the permission is currently held.
	Granted(ctx context.Context) (bool, error)

	// ShouldShowRationale reports whether the platform wants an explanation
	// shown before the next request.
	ShouldShowRationale(ctx context.Context) (bool, error)

	// Request shows the OS permission dialog and blocks until the user
	// answers or ctx is done. It is never called on the UI thread.
	Request(ctx context.Context) (PermissionResponse, error)
}

// PermissionResponse is the outcome of one OS permission dialog.
type PermissionResponse struct {
	// Granted is meaningful only when Present is true.
	Granted bool
	// Present is false when the dialog was dismissed without a choice.
	Present bool
}

// Fix is a position read from the platform's location cache.
type Fix struct {
	Latitude  float64
	Longitude float64
}

// Locator reads the most recent cached fix.
type Locator interface {
	// LastLocation returns (nil, nil) when the platform has no cached fix.
	// It is never called on the UI thread.
	LastLocation(ctx context.Context) (*Fix, error)
}

// SettingsNavigator opens the system's application details screen.
type SettingsNavigator interface {
	OpenApplicationDetails(ctx context.Context, appID string) error
}

// Surface is the part of the screen the flow writes to. All methods are
// called on the UI thread.
type Surface interface {
	// ShowCoordinates replaces the latitude and longitude fields.
	ShowCoordinates(latitude, longitude string)

	// ShowMessage shows a transient banner without an action.
	ShowMessage(text string)

	// ShowActionMessage shows a banner that stays until its action is
	// invoked or another banner replaces it.
	ShowActionMessage(text, action string, onAction func())

	// DismissMessage removes the current banner, if any.
	DismissMessage()
}

// Messages holds the user-facing strings shown by a flow.
type Messages struct {
	LocationUnavailable string
	Rationale           string
	RationaleAction     string
	Denied              string
	DeniedAction        string
	SettingsUnavailable string
}

// FormatCoordinate renders a degree value in its shortest decimal form,
// so 35.6895 renders as "35.6895".
func FormatCoordinate(deg float64) string {
	return strconv.FormatFloat(deg, 'f', -1, 64)
}
