package noop

import (
	"context"

	"go.uber.org/zap"

	"ledgerbook/internal/port"
)

type noopSender struct {
	log *zap.Logger
}

// NewNoopSender creates a no-op EmailSender that logs download links.
func NewNoopSender(log *zap.Logger) port.EmailSender {
	if log == nil {
		log = zap.NewNop()
	}
	return &noopSender{log: log.Named("email.noop")}
}

func (s *noopSender) SendExportReadyEmail(_ context.Context, toEmail, fileName, downloadURL string) error {
	s.log.Info("export ready email",
		zap.String("to", toEmail),
		zap.String("file", fileName),
		zap.String("url", downloadURL),
	)
	return nil
}
