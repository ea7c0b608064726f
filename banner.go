package main

import (
	"github.com/go-drift/drift/pkg/core"
	"github.com/go-drift/drift/pkg/graphics"
	"github.com/go-drift/drift/pkg/theme"
	"github.com/go-drift/drift/pkg/widgets"
)

// bannerState is the message strip shown at the bottom of the screen. The
// zero value hides it.
type bannerState struct {
	text     string
	action   string
	onAction func()
}

func (b bannerState) visible() bool {
	return b.text != ""
}

// banner renders a bannerState in the inverse surface colors.
type banner struct {
	state bannerState
}

func (b banner) CreateElement() core.Element {
	return core.NewStatelessElement(b, nil)
}

func (b banner) Key() any {
	return nil
}

func (b banner) Build(ctx core.BuildContext) core.Widget {
	colors := theme.ColorsOf(ctx)

	children := []core.Widget{
		widgets.Expanded{Child: widgets.Text{Content: b.state.text, Style: graphics.TextStyle{
			Color:    colors.OnInverseSurface,
			FontSize: 14,
		}}},
	}
	if b.state.action != "" {
		children = append(children,
			widgets.HSpace(12),
			widgets.Tap(b.state.onAction, widgets.PaddingSym(8, 6,
				widgets.Text{Content: b.state.action, Style: graphics.TextStyle{
					Color:      colors.InversePrimary,
					FontSize:   14,
					FontWeight: graphics.FontWeightSemibold,
				}},
			)),
		)
	}

	return widgets.Container{
		Color:        colors.InverseSurface,
		BorderRadius: 4,
		Child: widgets.PaddingSym(16, 10, widgets.Row{
			CrossAxisAlignment: widgets.CrossAxisAlignmentCenter,
			Children:           children,
		}),
	}
}
