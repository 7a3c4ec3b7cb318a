package wallet

// Level is the severity of a user notification.
type Level string

const (
	Success Level = "success"
	Info    Level = "info"
	Warning Level = "warning"
	Failure Level = "error"
)

// Notification is a transient message for the user.
type Notification struct {
	Level   Level
	Title   string
	Message string
}

// Notifier receives the notifications emitted by wallet operations.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

type discard struct{}

func (discard) Notify(Notification) {}
