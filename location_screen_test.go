package main

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	drifterrors "github.com/go-drift/drift/pkg/errors"
	"github.com/go-drift/drift/pkg/platform"
	drifttest "github.com/go-drift/drift/pkg/testing"

	"github.com/nagaoyuriko/fusedlocation/internal/config"
	"github.com/nagaoyuriko/fusedlocation/internal/locationflow"
)

type fakeRegistry struct {
	granted   bool
	rationale bool
	response  locationflow.PermissionResponse
	requests  int
}

func (r *fakeRegistry) Granted(context.Context) (bool, error) { return r.granted, nil }

func (r *fakeRegistry) ShouldShowRationale(context.Context) (bool, error) { return r.rationale, nil }

func (r *fakeRegistry) Request(context.Context) (locationflow.PermissionResponse, error) {
	r.requests++
	if r.response.Granted {
		r.granted = true
	}
	return r.response, nil
}

type fakeLocator struct {
	fix *locationflow.Fix
	err error
}

func (l *fakeLocator) LastLocation(context.Context) (*locationflow.Fix, error) {
	return l.fix, l.err
}

type fakeSettings struct {
	opened []string
}

func (s *fakeSettings) OpenApplicationDetails(_ context.Context, appID string) error {
	s.opened = append(s.opened, appID)
	return nil
}

// fakeTimers records banner timers so tests can fire them on the test
// goroutine.
type fakeTimers struct {
	durations []time.Duration
	fire      []func()
	stopped   int
}

func (f *fakeTimers) afterFunc(d time.Duration, fn func()) func() bool {
	f.durations = append(f.durations, d)
	f.fire = append(f.fire, fn)
	return func() bool {
		f.stopped++
		return true
	}
}

type screenHarness struct {
	tester   *drifttest.WidgetTester
	cfg      *config.Resolved
	registry *fakeRegistry
	locator  *fakeLocator
	settings *fakeSettings
	timers   *fakeTimers
}

func pumpScreen(t *testing.T, registry *fakeRegistry, locator *fakeLocator) *screenHarness {
	t.Helper()
	cfg, err := config.Resolve(driftYAML, config.DefaultModulePath)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	drifterrors.SetHandler(&drifterrors.LogHandler{})
	t.Cleanup(func() { drifterrors.SetHandler(nil) })

	h := &screenHarness{
		tester:   drifttest.NewWidgetTesterWithT(t),
		cfg:      cfg,
		registry: registry,
		locator:  locator,
		settings: &fakeSettings{},
		timers:   &fakeTimers{},
	}
	t.Cleanup(platform.ResetForTest)

	err = h.tester.PumpWidget(locationScreen{
		cfg:         cfg,
		logger:      log.New(io.Discard, "", 0),
		permissions: registry,
		locator:     locator,
		settings:    h.settings,
		run:         func(work func()) { work() },
		afterFunc:   h.timers.afterFunc,
	})
	if err != nil {
		t.Fatalf("PumpWidget: %v", err)
	}
	return h
}

func (h *screenHarness) settle(t *testing.T) {
	t.Helper()
	if err := h.tester.PumpAndSettle(time.Second); err != nil {
		t.Fatalf("PumpAndSettle: %v", err)
	}
}

func (h *screenHarness) tap(t *testing.T, text string) {
	t.Helper()
	if err := h.tester.Tap(drifttest.ByText(text)); err != nil {
		t.Fatalf("Tap(%q): %v", text, err)
	}
	h.settle(t)
}

func (h *screenHarness) shows(text string) bool {
	return h.tester.Find(drifttest.ByText(text)).Exists()
}

func TestScreenFetchesOnButtonTap(t *testing.T) {
	h := pumpScreen(t, &fakeRegistry{granted: true}, &fakeLocator{
		fix: &locationflow.Fix{Latitude: 35.6895, Longitude: 139.6917},
	})

	if h.shows("35.6895") {
		t.Fatal("coordinates shown before the button was tapped")
	}
	h.tap(t, h.cfg.Labels.Button)

	if !h.shows("35.6895") || !h.shows("139.6917") {
		t.Error("expected coordinates after tap")
	}
	if h.registry.requests != 0 {
		t.Errorf("permission requested although granted")
	}
}

func TestScreenRationaleThenGrant(t *testing.T) {
	h := pumpScreen(t, &fakeRegistry{
		rationale: true,
		response:  locationflow.PermissionResponse{Granted: true, Present: true},
	}, &fakeLocator{fix: &locationflow.Fix{Latitude: 1.25, Longitude: 2.5}})

	if !h.shows(h.cfg.Messages.Rationale) {
		t.Fatal("expected rationale banner on start")
	}
	if h.registry.requests != 0 {
		t.Fatal("dialog shown before the rationale was acknowledged")
	}

	h.tap(t, h.cfg.Messages.RationaleAction)

	if h.registry.requests != 1 {
		t.Errorf("requests = %d, want 1", h.registry.requests)
	}
	if h.shows(h.cfg.Messages.Rationale) {
		t.Error("rationale banner still visible")
	}
	if !h.shows("1.25") || !h.shows("2.5") {
		t.Error("expected coordinates after grant")
	}
}

func TestScreenDeniedOpensSettings(t *testing.T) {
	h := pumpScreen(t, &fakeRegistry{
		response: locationflow.PermissionResponse{Present: true},
	}, &fakeLocator{})
	h.settle(t)

	if !h.shows(h.cfg.Messages.Denied) {
		t.Fatal("expected settings banner after denial")
	}
	h.tap(t, h.cfg.Messages.DeniedAction)

	if len(h.settings.opened) != 1 || h.settings.opened[0] != "com.nagaoyuriko.fusedlocation" {
		t.Errorf("settings opened for %v", h.settings.opened)
	}
	if h.shows(h.cfg.Messages.Denied) {
		t.Error("settings banner still visible after its action")
	}
}

func TestScreenCancelledShowsNothing(t *testing.T) {
	h := pumpScreen(t, &fakeRegistry{}, &fakeLocator{})
	h.settle(t)

	if h.registry.requests != 1 {
		t.Fatalf("requests = %d, want 1", h.registry.requests)
	}
	for _, msg := range []string{h.cfg.Messages.Denied, h.cfg.Messages.Rationale, h.cfg.Messages.LocationUnavailable} {
		if h.shows(msg) {
			t.Errorf("unexpected banner %q", msg)
		}
	}
}

func TestScreenFailureBannerTimesOut(t *testing.T) {
	h := pumpScreen(t, &fakeRegistry{granted: true}, &fakeLocator{err: errors.New("disabled")})

	h.tap(t, h.cfg.Labels.Button)
	if !h.shows(h.cfg.Messages.LocationUnavailable) {
		t.Fatal("expected failure banner")
	}
	if len(h.timers.durations) != 1 || h.timers.durations[0] != h.cfg.BannerDuration {
		t.Fatalf("timers = %v, want one of %s", h.timers.durations, h.cfg.BannerDuration)
	}

	h.timers.fire[0]()
	h.settle(t)
	if h.shows(h.cfg.Messages.LocationUnavailable) {
		t.Error("failure banner still visible after its duration")
	}
}

func TestScreenStaleTimerKeepsNewerBanner(t *testing.T) {
	h := pumpScreen(t, &fakeRegistry{granted: true}, &fakeLocator{err: errors.New("disabled")})

	h.tap(t, h.cfg.Labels.Button)
	h.tap(t, h.cfg.Labels.Button)
	if len(h.timers.fire) != 2 {
		t.Fatalf("timers = %d, want 2", len(h.timers.fire))
	}
	if h.timers.stopped == 0 {
		t.Error("first timer was not stopped when the banner was replaced")
	}

	h.timers.fire[0]()
	h.settle(t)
	if !h.shows(h.cfg.Messages.LocationUnavailable) {
		t.Fatal("stale timer dismissed the newer banner")
	}

	h.timers.fire[1]()
	h.settle(t)
	if h.shows(h.cfg.Messages.LocationUnavailable) {
		t.Error("banner still visible after its own timer fired")
	}
}

func TestScreenResumeAfterSettingsGrant(t *testing.T) {
	registry := &fakeRegistry{response: locationflow.PermissionResponse{Present: true}}
	h := pumpScreen(t, registry, &fakeLocator{fix: &locationflow.Fix{Latitude: 43.0621, Longitude: 141.3544}})
	h.settle(t)
	if !h.shows(h.cfg.Messages.Denied) {
		t.Fatal("expected settings banner after denial")
	}

	registry.granted = true
	for _, state := range []string{`{"state":"paused"}`, `{"state":"resumed"}`} {
		if err := platform.HandleEvent("drift/lifecycle/events", []byte(state)); err != nil {
			t.Fatalf("HandleEvent: %v", err)
		}
	}
	h.settle(t)

	if !h.shows("43.0621") || !h.shows("141.3544") {
		t.Error("expected coordinates after returning from settings")
	}
	if h.shows(h.cfg.Messages.Denied) {
		t.Error("settings banner still visible after grant")
	}
	if registry.requests != 1 {
		t.Errorf("requests = %d, resume must not request again", registry.requests)
	}
}
