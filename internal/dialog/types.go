// Package dialog implements the per-user conversation state machine.
// It is transport-free: the Telegram binding converts updates into
// Events and delivers the returned Replies.
package dialog

// EventKind enumerates the input shapes a phase can receive.
type EventKind int

const (
	// EventStart is the /start command.
	EventStart EventKind = iota
	// EventText is a free-text message.
	EventText
	// EventButton is an inline button press with an opaque payload.
	EventButton
)

// Event is one inbound user action.
type Event struct {
	Kind   EventKind
	UserID int64
	// Text carries the message body for EventText.
	Text string
	// Action and Payload carry the button key and data for EventButton.
	Action  string
	Payload string
}

// Button is one choice offered to the user.
type Button struct {
	Label   string
	Action  string
	Payload string
	// URL makes this a link button instead of a callback.
	URL string
}

// Keyboard is a choice set attached to a reply. Row width is purely
// presentational.
type Keyboard struct {
	Buttons []Button
	PerRow  int
	// Menu renders labels as a persistent reply keyboard instead of
	// inline buttons.
	Menu bool
	// Remove clears any visible reply keyboard.
	Remove bool
}

// Reply is one outbound message produced by the engine.
type Reply struct {
	// To is the recipient user id; zero means the event's author.
	To       int64
	Text     string
	Keyboard *Keyboard
	// Edit updates the message the pressed button was attached to.
	Edit bool
}
