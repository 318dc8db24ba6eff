// Package notify entrega de notificaciones. Sin proveedor de correo configurado
// los mensajes quedan en el log estructurado.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Chrisx-39/FormMaster/internal/application/ports"
)

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier escribe cada notificación como un evento de log.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) Notify(_ context.Context, msg ports.Notification) error {
	n.log.Info().
		Str("kind", msg.Kind).
		Str("recipient", msg.Recipient).
		Str("subject", msg.Subject).
		Str("reference", msg.Reference).
		Strs("attachments", msg.Attachments).
		Msg(msg.Body)
	return nil
}
