package main

import (
	"log"

	"github.com/go-drift/drift/pkg/core"
	"github.com/go-drift/drift/pkg/graphics"
	"github.com/go-drift/drift/pkg/theme"
	"github.com/go-drift/drift/pkg/widgets"

	"github.com/nagaoyuriko/fusedlocation/internal/config"
	"github.com/nagaoyuriko/fusedlocation/internal/device"
)

// App returns the root widget wired to the device adapters.
func App(cfg *config.Resolved, logger *log.Logger) core.Widget {
	return appShell{
		title: cfg.Labels.Title,
		child: locationScreen{
			cfg:         cfg,
			logger:      logger,
			permissions: &device.Permissions{},
			locator:     &device.Locator{},
			settings:    &device.Settings{AppID: cfg.AppID, Logger: logger},
		},
	}
}

// appShell draws the title bar above the screen and keeps both inside the
// safe area.
type appShell struct {
	title string
	child core.Widget
}

func (a appShell) CreateElement() core.Element {
	return core.NewStatelessElement(a, nil)
}

func (a appShell) Key() any {
	return nil
}

func (a appShell) Build(ctx core.BuildContext) core.Widget {
	_, colors, textTheme := theme.UseTheme(ctx)
	return widgets.Container{
		Color: colors.Background,
		Child: widgets.SafeArea{
			Child: widgets.Column{
				CrossAxisAlignment: widgets.CrossAxisAlignmentStretch,
				Children: []core.Widget{
					widgets.Container{
						Color: colors.Primary,
						Child: widgets.PaddingSym(16, 14,
							widgets.Text{Content: a.title, Style: graphics.TextStyle{
								Color:      colors.OnPrimary,
								FontSize:   textTheme.TitleLarge.FontSize,
								FontWeight: graphics.FontWeightSemibold,
							}},
						),
					},
					widgets.Expanded{Child: a.child},
				},
			},
		},
	}
}
