// Package notify sends desktop notifications via D-Bus and announces
// track changes with the cover as icon.
package notify

// AppName is reported to the notification server.
const AppName = "Saverino"

// Urgency is the freedesktop urgency hint.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification is one desktop notification.
type Notification struct {
	Title      string
	Body       string
	Icon       string // file path or icon name
	Timeout    int32  // ms; -1 server default, 0 never expires
	ReplacesID uint32 // 0 opens a new notification
	Urgency    Urgency
	// Transient notifications are not kept in the server's history.
	Transient bool
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify shows n and returns its server id.
	Notify(n Notification) (uint32, error)
	// Close withdraws notification id.
	Close(id uint32) error
}

// Nop discards notifications. It stands in when no server is reachable.
type Nop struct{}

func (Nop) Notify(Notification) (uint32, error) { return 0, nil }
func (Nop) Close(uint32) error                  { return nil }
