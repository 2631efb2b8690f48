package ports

import "context"

// NotificationSender delivers the two registration emails. Failures are the
// sender's problem to log; the auth workflow never blocks on delivery.
type NotificationSender interface {
	// SendActivationRequest notifies the fixed administrator address that a
	// registrant is waiting, including the activation link.
	SendActivationRequest(ctx context.Context, userEmail, userName, activationURL string) error
	// SendRegistrationConfirmation tells the registrant the request is
	// pending review.
	SendRegistrationConfirmation(ctx context.Context, userEmail, userName string) error
}
