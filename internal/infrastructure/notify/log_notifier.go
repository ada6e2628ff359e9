// Package notify entrega notificaciones al usuario. La implementación actual
// las escribe en el log estructurado; el panel las lee del agregador.
package notify

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Invorya-access-api/internal/application/ports"
	"github.com/jhoicas/Invorya-access-api/pkg/logger"
)

// LogNotifier implementa ports.Notifier sobre el logger.
type LogNotifier struct {
	log *logger.Logger
}

var _ ports.Notifier = (*LogNotifier)(nil)

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.Nop()
	}
	return &LogNotifier{log: log.Component("notify")}
}

// Notify registra la notificación con un ID propio. Nunca falla.
func (n *LogNotifier) Notify(_ context.Context, msg ports.Notification) {
	var ev *zerolog.Event
	switch msg.Level {
	case ports.LevelError:
		ev = n.log.Error()
	case ports.LevelWarning:
		ev = n.log.Warn()
	default:
		ev = n.log.Info()
	}
	ev.Str("notification_id", uuid.New().String()).
		Str("severity", string(msg.Level)).
		Str("title", msg.Title).
		Str("user_id", msg.UserID).
		Str("company_id", msg.CompanyID).
		Msg(msg.Message)
}
