package port

import "context"

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendExportReadyEmail(ctx context.Context, toEmail, fileName, downloadURL string) error
}
