// Package conversation holds the append-only message log backing a chat
// session. Messages are immutable once appended; the log is only ever
// extended, or truncated back to its seed greeting on reset.
package conversation

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultGreeting is the seeded bot message shown before any user input.
const DefaultGreeting = "Hello! How can I help you today?"

// seedID is the fixed id of the seeded greeting message.
const seedID = "msg-greeting"

// ErrDuplicateID is returned when appending a message whose id is
// already present. This indicates a bug in id generation, not a user
// error.
var ErrDuplicateID = errors.New("conversation: duplicate message id")

// Sender identifies who produced a message.
type Sender int

const (
	SenderUser Sender = iota
	SenderBot
)

// String returns the wire-friendly label for the sender.
func (s Sender) String() string {
	switch s {
	case SenderUser:
		return "user"
	case SenderBot:
		return "bot"
	default:
		return "unknown"
	}
}

// Message is a single conversation entry. Fields are never mutated after
// Append; the display order is insertion order.
type Message struct {
	ID     string
	Text   string
	Sender Sender
}

// Log is an ordered, append-only sequence of messages seeded with one
// bot greeting. Safe for use from the single TUI goroutine plus the
// request goroutine that resolves completions.
type Log struct {
	mu     sync.Mutex
	msgs   []Message
	ids    map[string]struct{}
	seed   Message
	lastID int64
}

// New creates a log seeded with the greeting text. An empty greeting
// falls back to DefaultGreeting.
func New(greeting string) *Log {
	if greeting == "" {
		greeting = DefaultGreeting
	}
	l := &Log{
		ids:  make(map[string]struct{}),
		seed: Message{ID: seedID, Text: greeting, Sender: SenderBot},
	}
	l.msgs = []Message{l.seed}
	l.ids[l.seed.ID] = struct{}{}
	return l
}

// NewID mints a message id unique within this log. Ids are millisecond
// timestamps; when two ids are minted inside the same millisecond the
// second is offset past the first so a request cycle that appends both a
// user and a bot message never collides.
func (l *Log) NewID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.newIDLocked()
}

func (l *Log) newIDLocked() string {
	now := time.Now().UnixMilli()
	if now <= l.lastID {
		now = l.lastID + 1
	}
	l.lastID = now
	return fmt.Sprintf("msg-%d", now)
}

// Append adds a message at the end of the log. The only failure mode is
// a duplicate id.
func (l *Log) Append(msg Message) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.ids[msg.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, msg.ID)
	}
	l.ids[msg.ID] = struct{}{}
	l.msgs = append(l.msgs, msg)
	return nil
}

// AppendNew mints an id, appends a message with it, and returns the
// appended message.
func (l *Log) AppendNew(text string, sender Sender) Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := Message{ID: l.newIDLocked(), Text: text, Sender: sender}
	l.ids[msg.ID] = struct{}{}
	l.msgs = append(l.msgs, msg)
	return msg
}

// Reset truncates the log back to the seeded greeting.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = []Message{l.seed}
	l.ids = map[string]struct{}{l.seed.ID: {}}
}

// Messages returns a snapshot of the log in display order.
func (l *Log) Messages() []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Message, len(l.msgs))
	copy(out, l.msgs)
	return out
}

// Len reports the number of messages, including the seed.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.msgs)
}
