package main

import (
	"log"
	"time"

	"github.com/go-drift/drift/pkg/core"
	"github.com/go-drift/drift/pkg/graphics"
	"github.com/go-drift/drift/pkg/platform"
	"github.com/go-drift/drift/pkg/theme"
	"github.com/go-drift/drift/pkg/widgets"

	"github.com/nagaoyuriko/fusedlocation/internal/config"
	"github.com/nagaoyuriko/fusedlocation/internal/locationflow"
)

// locationScreen shows the last known coordinates and a button that fetches
// them again.
type locationScreen struct {
	cfg         *config.Resolved
	logger      *log.Logger
	permissions locationflow.PermissionRegistry
	locator     locationflow.Locator
	settings    locationflow.SettingsNavigator

	// Optional overrides. Nil uses a goroutine, platform.Dispatch and
	// time.AfterFunc.
	run       func(work func())
	dispatch  func(callback func())
	afterFunc func(d time.Duration, fn func()) (stop func() bool)
}

func (l locationScreen) CreateElement() core.Element {
	return core.NewStatefulElement(l, nil)
}

func (l locationScreen) Key() any {
	return nil
}

func (l locationScreen) CreateState() core.State {
	return &locationScreenState{screen: l}
}

type locationScreenState struct {
	core.StateBase
	screen locationScreen
	flow   *locationflow.Flow

	latitude  *core.ManagedState[string]
	longitude *core.ManagedState[string]
	banner    *core.ManagedState[bannerState]

	// bannerSerial identifies the banner a pending timer belongs to.
	bannerSerial int
	stopTimer    func() bool
}

var _ locationflow.Surface = (*locationScreenState)(nil)

func (s *locationScreenState) InitState() {
	if s.screen.logger == nil {
		s.screen.logger = log.Default()
	}
	s.latitude = core.NewManagedState(&s.StateBase, "")
	s.longitude = core.NewManagedState(&s.StateBase, "")
	s.banner = core.NewManagedState(&s.StateBase, bannerState{})

	flow, err := locationflow.New(locationflow.Options{
		Permissions:    s.screen.permissions,
		Locator:        s.screen.locator,
		Settings:       s.screen.settings,
		Surface:        s,
		AppID:          s.screen.cfg.AppID,
		Messages:       s.screen.cfg.Messages,
		Dispatch:       s.dispatch,
		Go:             s.screen.run,
		RequestTimeout: s.screen.cfg.RequestTimeout,
		Logger:         s.screen.logger,
	})
	if err != nil {
		// Only reachable through a wiring mistake in App.
		panic(err)
	}
	s.flow = flow

	removeLifecycle := platform.Lifecycle.AddHandler(func(state platform.LifecycleState) {
		if state == platform.LifecycleStateResumed {
			s.dispatch(s.flow.OnResume)
		}
	})
	s.OnDispose(func() {
		removeLifecycle()
		s.cancelTimer()
	})

	s.flow.OnScreenStart()
}

func (s *locationScreenState) Build(ctx core.BuildContext) core.Widget {
	_, colors, _ := theme.UseTheme(ctx)
	labels := s.screen.cfg.Labels

	children := []core.Widget{
		widgets.Expanded{Child: widgets.PaddingAll(24, widgets.Column{
			MainAxisAlignment:  widgets.MainAxisAlignmentStart,
			CrossAxisAlignment: widgets.CrossAxisAlignmentStart,
			Children: []core.Widget{
				coordinateRow(labels.Latitude, s.latitude.Get(), colors),
				widgets.VSpace(12),
				coordinateRow(labels.Longitude, s.longitude.Get(), colors),
				widgets.VSpace(24),
				theme.ButtonOf(ctx, labels.Button, s.flow.OnButtonPressed),
			},
		})},
	}
	if b := s.banner.Get(); b.visible() {
		children = append(children, widgets.PaddingAll(8, banner{state: b}))
	}

	return widgets.Column{
		CrossAxisAlignment: widgets.CrossAxisAlignmentStretch,
		Children:           children,
	}
}

func coordinateRow(label, value string, colors theme.ColorScheme) core.Widget {
	return widgets.Row{
		CrossAxisAlignment: widgets.CrossAxisAlignmentCenter,
		Children: []core.Widget{
			widgets.SizedBox{Width: 96, Child: widgets.Text{Content: label, Style: graphics.TextStyle{
				Color:    colors.OnSurfaceVariant,
				FontSize: 14,
			}}},
			widgets.Text{Content: value, Style: graphics.TextStyle{
				Color:      colors.OnSurface,
				FontSize:   18,
				FontWeight: graphics.FontWeightSemibold,
			}},
		},
	}
}

// ShowCoordinates implements locationflow.Surface.
func (s *locationScreenState) ShowCoordinates(latitude, longitude string) {
	s.latitude.Set(latitude)
	s.longitude.Set(longitude)
}

// ShowMessage shows text for the configured banner duration.
func (s *locationScreenState) ShowMessage(text string) {
	serial := s.showBanner(bannerState{text: text})
	if s.screen.cfg.BannerDuration <= 0 {
		return
	}
	s.stopTimer = s.after(s.screen.cfg.BannerDuration, func() {
		s.dispatch(func() {
			if s.bannerSerial == serial {
				s.hideBanner()
			}
		})
	})
}

// ShowActionMessage shows text until the action is tapped or another banner
// replaces it. Tapping the action hides the banner before running onAction.
func (s *locationScreenState) ShowActionMessage(text, action string, onAction func()) {
	var serial int
	serial = s.showBanner(bannerState{
		text:   text,
		action: action,
		onAction: func() {
			if s.bannerSerial != serial {
				return
			}
			s.hideBanner()
			onAction()
		},
	})
}

// DismissMessage implements locationflow.Surface.
func (s *locationScreenState) DismissMessage() {
	s.hideBanner()
}

func (s *locationScreenState) showBanner(b bannerState) int {
	s.cancelTimer()
	s.bannerSerial++
	s.banner.Set(b)
	return s.bannerSerial
}

func (s *locationScreenState) hideBanner() {
	s.cancelTimer()
	s.bannerSerial++
	s.banner.Set(bannerState{})
}

func (s *locationScreenState) cancelTimer() {
	if s.stopTimer != nil {
		s.stopTimer()
		s.stopTimer = nil
	}
}

func (s *locationScreenState) dispatch(callback func()) {
	if s.screen.dispatch != nil {
		s.screen.dispatch(callback)
		return
	}
	if !platform.Dispatch(callback) {
		s.screen.logger.Printf("dropped UI callback: no dispatcher registered")
	}
}

func (s *locationScreenState) after(d time.Duration, fn func()) func() bool {
	if s.screen.afterFunc != nil {
		return s.screen.afterFunc(d, fn)
	}
	return time.AfterFunc(d, fn).Stop
}
