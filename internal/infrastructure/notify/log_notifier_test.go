package notify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/application/ports"
	"github.com/Chrisx-39/FormMaster/internal/infrastructure/notify"
)

func TestLogNotifier_EscribeEvento(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewLogNotifier(zerolog.New(&buf))

	err := n.Notify(context.Background(), ports.Notification{
		Kind:      ports.NotifyFinalWarning,
		Recipient: "obra@cliente.co",
		Subject:   "Devolución vencida",
		Body:      "La orden OR-2026-0007 lleva 7 días de retraso",
		Reference: "OR-2026-0007",
	})
	require.NoError(t, err)

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "notifier", event["component"])
	assert.Equal(t, ports.NotifyFinalWarning, event["kind"])
	assert.Equal(t, "obra@cliente.co", event["recipient"])
	assert.Equal(t, "OR-2026-0007", event["reference"])
	assert.Contains(t, event["message"], "7 días")
}
