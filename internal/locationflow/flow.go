package locationflow

import (
	"context"
	"fmt"
	"log"
	"time"

	drifterrors "github.com/go-drift/drift/pkg/errors"
)

// Options configures a Flow.
type Options struct {
	// Permissions, Locator, Settings and Surface are required.
	Permissions PermissionRegistry
	Locator     Locator
	Settings    SettingsNavigator
	Surface     Surface

	// AppID identifies the application whose settings page is opened after
	// a denial.
	AppID string

	Messages Messages

	// Dispatch schedules a callback on the UI thread. Defaults to calling
	// the callback immediately, which is only correct when Go is synchronous.
	Dispatch func(callback func())

	// Go runs blocking work off the UI thread. Defaults to a new goroutine.
	Go func(work func())

	// RequestTimeout bounds the OS permission dialog and each last-location
	// query. Zero waits forever.
	RequestTimeout time.Duration

	// Logger receives informational lines. Defaults to log.Default().
	Logger *log.Logger
}

// Flow drives the permission check, the permission request sequence and the
// last-location query for one screen session. It must only be used from the
// UI thread.
type Flow struct {
	perms    PermissionRegistry
	locator  Locator
	settings SettingsNavigator
	surface  Surface
	appID    string
	msgs     Messages
	dispatch func(func())
	run      func(func())
	timeout  time.Duration
	logger   *log.Logger

	phase    Phase
	fetching bool
}

// New validates opts and returns a flow in PhaseUnchecked.
func New(opts Options) (*Flow, error) {
	switch {
	case opts.Permissions == nil:
		return nil, fmt.Errorf("locationflow: permission registry is required")
	case opts.Locator == nil:
		return nil, fmt.Errorf("locationflow: locator is required")
	case opts.Settings == nil:
		return nil, fmt.Errorf("locationflow: settings navigator is required")
	case opts.Surface == nil:
		return nil, fmt.Errorf("locationflow: surface is required")
	case opts.AppID == "":
		return nil, fmt.Errorf("locationflow: application id is required")
	}
	if opts.RequestTimeout < 0 {
		return nil, fmt.Errorf("locationflow: negative request timeout %s", opts.RequestTimeout)
	}

	f := &Flow{
		perms:    opts.Permissions,
		locator:  opts.Locator,
		settings: opts.Settings,
		surface:  opts.Surface,
		appID:    opts.AppID,
		msgs:     opts.Messages,
		dispatch: opts.Dispatch,
		run:      opts.Go,
		timeout:  opts.RequestTimeout,
		logger:   opts.Logger,
	}
	if f.dispatch == nil {
		f.dispatch = func(callback func()) { callback() }
	}
	if f.run == nil {
		f.run = func(work func()) { go work() }
	}
	if f.logger == nil {
		f.logger = log.Default()
	}
	return f, nil
}

// Phase returns the current position in the permission sub-flow.
func (f *Flow) Phase() Phase {
	return f.phase
}

// OnScreenStart checks the permission and starts the request sequence when
// it is not held. It does nothing while a request is outstanding, and after a
// denial it points the user to the settings screen again.
func (f *Flow) OnScreenStart() {
	if f.phase.awaitingUser() {
		f.logger.Printf("screen start ignored: permission request in progress (%s)", f.phase)
		return
	}
	if f.phase != PhaseDeniedTerminal {
		f.phase = PhaseCheckingPermission
	}
	if f.CheckPermission() == PermissionGranted {
		f.leaveDenied()
		f.phase = PhaseGranted
		return
	}
	f.RequestPermission()
}

// CheckPermission queries the registry. A registry failure is reported and
// treated as PermissionDenied.
func (f *Flow) CheckPermission() PermissionState {
	ctx := context.Background()
	granted, err := f.perms.Granted(ctx)
	if err != nil {
		f.report("locationflow.checkPermission", err)
		return PermissionDenied
	}
	if granted {
		return PermissionGranted
	}
	if f.shouldShowRationale(ctx) {
		return PermissionDeniedWithRationale
	}
	return PermissionDenied
}

// RequestPermission shows the rationale message when the platform asks for
// one, and otherwise opens the OS dialog directly. The answer arrives later
// through OnPermissionResult. Once the user has denied the permission no
// dialog is opened for the rest of the session; the settings banner is shown
// instead.
func (f *Flow) RequestPermission() {
	if f.phase.awaitingUser() {
		f.logger.Printf("permission request already in progress (%s)", f.phase)
		return
	}
	if f.phase == PhaseDeniedTerminal {
		f.logger.Printf("location permission denied for this session; pointing to settings")
		f.promptSettings()
		return
	}
	if f.shouldShowRationale(context.Background()) {
		f.logger.Printf("location permission was denied before; showing rationale")
		f.phase = PhaseAwaitingRationaleAck
		f.surface.ShowActionMessage(f.msgs.Rationale, f.msgs.RationaleAction, f.acknowledgeRationale)
		return
	}
	f.logger.Printf("requesting location permission")
	f.startPermissionRequest()
}

// OnPermissionResult handles the answer of one request sequence.
func (f *Flow) OnPermissionResult(granted, resultPresent bool) {
	switch {
	case !resultPresent:
		f.phase = PhaseUnchecked
		f.logger.Printf("%v", ErrPermissionCancelled)
	case granted:
		f.phase = PhaseGranted
		f.logger.Printf("location permission granted; fetching last location")
		f.FetchLastLocation()
	default:
		f.phase = PhaseDeniedTerminal
		f.logger.Printf("%v", ErrPermissionDenied)
		f.promptSettings()
	}
}

// FetchLastLocation queries the most recent cached fix and renders it. A
// call made while a query is in flight is dropped.
func (f *Flow) FetchLastLocation() {
	if f.fetching {
		f.logger.Printf("last location query already in flight")
		return
	}
	f.fetching = true
	f.run(func() {
		ctx, cancel := f.requestContext()
		defer cancel()
		fix, err := f.locator.LastLocation(ctx)
		f.dispatch(func() {
			f.fetching = false
			f.completeFetch(fix, err)
		})
	})
}

// OnButtonPressed fetches the location when permission is held and starts
// the request sequence when it is not. After a denial it only shows the
// settings banner again.
func (f *Flow) OnButtonPressed() {
	if f.CheckPermission() != PermissionGranted {
		f.logger.Printf("%v", ErrPermissionRequired)
		f.RequestPermission()
		return
	}
	f.leaveDenied()
	f.phase = PhaseGranted
	f.FetchLastLocation()
}

// OnResume picks up a permission granted from the settings screen. It only
// acts in PhaseDeniedTerminal and never starts a new request.
func (f *Flow) OnResume() {
	if f.phase != PhaseDeniedTerminal {
		return
	}
	if f.CheckPermission() != PermissionGranted {
		return
	}
	f.logger.Printf("location permission granted from settings")
	f.phase = PhaseGranted
	f.surface.DismissMessage()
	f.FetchLastLocation()
}

// leaveDenied clears the settings banner when the permission turns out to be
// held while the flow still sits in PhaseDeniedTerminal.
func (f *Flow) leaveDenied() {
	if f.phase == PhaseDeniedTerminal {
		f.surface.DismissMessage()
	}
}

func (f *Flow) promptSettings() {
	f.surface.ShowActionMessage(f.msgs.Denied, f.msgs.DeniedAction, f.openSettings)
}

func (f *Flow) acknowledgeRationale() {
	if f.phase != PhaseAwaitingRationaleAck {
		return
	}
	f.startPermissionRequest()
}

func (f *Flow) startPermissionRequest() {
	f.phase = PhaseAwaitingOSDecision
	f.run(func() {
		ctx, cancel := f.requestContext()
		defer cancel()
		resp, err := f.perms.Request(ctx)
		f.dispatch(func() {
			if err != nil {
				// No answer reached us; handle it like a dismissed dialog.
				f.report("locationflow.requestPermission", err)
				f.OnPermissionResult(false, false)
				return
			}
			f.OnPermissionResult(resp.Granted, resp.Present)
		})
	})
}

func (f *Flow) requestContext() (context.Context, context.CancelFunc) {
	if f.timeout > 0 {
		return context.WithTimeout(context.Background(), f.timeout)
	}
	return context.WithCancel(context.Background())
}

func (f *Flow) completeFetch(fix *Fix, err error) {
	if err == nil && fix == nil {
		err = errNoFix
	}
	if err != nil {
		f.report("locationflow.fetchLastLocation", fmt.Errorf("%w: %w", ErrLocationUnavailable, err))
		f.surface.ShowMessage(f.msgs.LocationUnavailable)
		return
	}
	f.surface.ShowCoordinates(FormatCoordinate(fix.Latitude), FormatCoordinate(fix.Longitude))
}

func (f *Flow) openSettings() {
	if err := f.settings.OpenApplicationDetails(context.Background(), f.appID); err != nil {
		f.report("locationflow.openSettings", err)
		f.surface.ShowMessage(f.msgs.SettingsUnavailable)
	}
}

func (f *Flow) shouldShowRationale(ctx context.Context) bool {
	show, err := f.perms.ShouldShowRationale(ctx)
	if err != nil {
		f.report("locationflow.shouldShowRationale", err)
		return false
	}
	return show
}

func (f *Flow) report(op string, err error) {
	drifterrors.Report(&drifterrors.DriftError{
		Op:   op,
		Kind: drifterrors.KindPlatform,
		Err:  err,
	})
}
