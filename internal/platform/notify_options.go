// Package platform shows desktop notifications through the host's native
// notification service.
package platform

// AppName is the application name reported to notification services.
const AppName = "Inkshot"

// Options configures how a notification is displayed.
type Options struct {
	// IconPath optionally names an image shown with the notification.
	IconPath string
}
