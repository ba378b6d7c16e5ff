// Package platform wraps the host notification center.
package platform

// DefaultAppName identifies the sender when Options.AppName is empty.
const DefaultAppName = "Scribble"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName is the sending application shown by the notification center.
	AppName string
	// IconPath, when non-empty, points to an image the notification center
	// may show next to the message.
	IconPath string
	// TimeoutMillis is how long the message stays up. Zero uses 5s.
	TimeoutMillis int32
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}

func (o Options) timeout() int32 {
	if o.TimeoutMillis <= 0 {
		return 5000
	}
	return o.TimeoutMillis
}
