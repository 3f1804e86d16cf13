package noop_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"ledgerbook/internal/email/noop"
)

func TestNoopSender_LogsLink(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sender := noop.NewNoopSender(zap.New(core))

	err := sender.SendExportReadyEmail(context.Background(), "owner@example.com", "sales.csv", "https://x.test/sales.csv")
	require.NoError(t, err)

	entries := logs.FilterMessage("export ready email").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "owner@example.com", entries[0].ContextMap()["to"])
}
