package main

import (
	"testing"
	"time"

	drifterrors "github.com/go-drift/drift/pkg/errors"
	drifttest "github.com/go-drift/drift/pkg/testing"
	"github.com/go-drift/drift/pkg/widgets"

	"github.com/nagaoyuriko/fusedlocation/internal/config"
)

type recordingHandler struct {
	errs []*drifterrors.DriftError
}

func (h *recordingHandler) HandleError(err *drifterrors.DriftError) { h.errs = append(h.errs, err) }

func (h *recordingHandler) HandlePanic(*drifterrors.PanicError) {}

func (h *recordingHandler) HandleBoundaryError(*drifterrors.BoundaryError) {}

func TestLoadConfigEmbedded(t *testing.T) {
	cfg := loadConfig(driftYAML, config.DefaultModulePath)

	if cfg.AppID != "com.nagaoyuriko.fusedlocation" {
		t.Errorf("AppID = %q", cfg.AppID)
	}
	if cfg.LogTag != "ろぐ" {
		t.Errorf("LogTag = %q", cfg.LogTag)
	}
	if cfg.BannerDuration != 2750*time.Millisecond {
		t.Errorf("BannerDuration = %s", cfg.BannerDuration)
	}
	if cfg.Messages.LocationUnavailable != "位置情報を取得できませんでした" {
		t.Errorf("LocationUnavailable = %q", cfg.Messages.LocationUnavailable)
	}
	if cfg.Messages.DeniedAction != "設定画面にいく" {
		t.Errorf("DeniedAction = %q", cfg.Messages.DeniedAction)
	}
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	h := &recordingHandler{}
	drifterrors.SetHandler(h)
	t.Cleanup(func() { drifterrors.SetHandler(nil) })

	cfg := loadConfig([]byte("app: ["), config.DefaultModulePath)

	if cfg.AppID != "com.github.nagaoyuriko.fusedlocation" {
		t.Errorf("AppID = %q, want the module-derived default", cfg.AppID)
	}
	if len(h.errs) != 1 || h.errs[0].Op != "config.resolve" {
		t.Errorf("reported = %v, want one config.resolve error", h.errs)
	}
}

func TestAppShell(t *testing.T) {
	tester := drifttest.NewWidgetTesterWithT(t)
	err := tester.PumpWidget(appShell{
		title: "FusedLocation",
		child: widgets.Text{Content: "body"},
	})
	if err != nil {
		t.Fatalf("PumpWidget: %v", err)
	}
	if !tester.Find(drifttest.ByText("FusedLocation")).Exists() {
		t.Error("expected title")
	}
	if !tester.Find(drifttest.ByText("body")).Exists() {
		t.Error("expected child")
	}
}
