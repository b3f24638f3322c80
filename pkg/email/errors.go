package email

import "errors"

var (
	// ErrInvalidConfig indicates missing or malformed email configuration.
	ErrInvalidConfig = errors.New("invalid email configuration")

	// ErrFailedToSendEmail indicates the provider rejected or failed the
	// send.
	ErrFailedToSendEmail = errors.New("failed to send email")

	// ErrNoRecipient indicates the address lookup returned no address for
	// the notification target.
	ErrNoRecipient = errors.New("no email recipient for target")
)
