package notify

import "context"

type Kind string

const (
	// KindAdminAlert notifies the site owner about a new submission.
	KindAdminAlert Kind = "admin_alert"
	// KindAutoReply acknowledges the submitter.
	KindAutoReply Kind = "auto_reply"
)

// Payload carries the submission fields the templates interpolate.
type Payload struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Notifier sends a templated message of the given kind. Delivery is best
// effort: implementations report success or failure and never panic; callers
// log the outcome and move on.
type Notifier interface {
	Send(ctx context.Context, kind Kind, payload Payload) bool
}

// Noop is used when no email provider is configured.
type Noop struct{}

func (Noop) Send(context.Context, Kind, Payload) bool { return false }
