package device

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/go-drift/drift/pkg/platform"

	"github.com/nagaoyuriko/fusedlocation/internal/locationflow"
)

// ApplicationDetailsAction is the Android settings action that shows the
// details page of one application.
const ApplicationDetailsAction = "android.settings.APPLICATION_DETAILS_SETTINGS"

// ErrForeignApplication is returned when asked to open another application's
// details page. Drift can only open the page of the running app.
var ErrForeignApplication = errors.New("device: settings for a foreign application")

// ApplicationDetailsURI returns the intent data URI for appID, for example
// "package:com.example.app".
func ApplicationDetailsURI(appID string) string {
	u := url.URL{Scheme: "package", Opaque: appID}
	return u.String()
}

// Settings is a locationflow.SettingsNavigator that opens the running app's
// details page.
type Settings struct {
	// AppID is the running application's id. When set, requests for any
	// other id are rejected.
	AppID string

	// Open defaults to platform.OpenAppSettings.
	Open func(ctx context.Context) error

	Logger *log.Logger
}

var _ locationflow.SettingsNavigator = (*Settings)(nil)

// OpenApplicationDetails opens the details page for appID.
func (s *Settings) OpenApplicationDetails(ctx context.Context, appID string) error {
	if appID == "" {
		return errors.New("device: empty application id")
	}
	if s.AppID != "" && appID != s.AppID {
		return fmt.Errorf("%w: %s", ErrForeignApplication, appID)
	}
	s.logger().Printf("opening %s %s", ApplicationDetailsAction, ApplicationDetailsURI(appID))

	open := s.Open
	if open == nil {
		open = platform.OpenAppSettings
	}
	if err := open(ctx); err != nil {
		return fmt.Errorf("open application details: %w", err)
	}
	return nil
}

func (s *Settings) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}
