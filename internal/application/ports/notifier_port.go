package ports

import "context"

// Level severidad de una notificación.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification mensaje para el usuario (toast/alerta en el panel).
type Notification struct {
	Level     Level
	Title     string
	Message   string
	UserID    string
	CompanyID string
}

// Notifier es el sumidero de notificaciones. Es de tipo "disparar y olvidar":
// no devuelve nada y nunca debe bloquear el flujo que notifica.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}
