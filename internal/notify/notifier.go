// Package notify delivers categorized user-facing notifications with
// per-category debounce so retries do not flood the recipient.
package notify

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/model"
)

const (
	CategorySuccess = "success"
	CategoryError   = "error"
	CategoryInfo    = "info"
	CategoryWarning = "warning"
)

// DefaultDebounceWindow suppresses identical notifications repeated within it.
const DefaultDebounceWindow = 3 * time.Second

// Message is one notification to deliver.
type Message struct {
	UserID   uuid.UUID
	Category string
	Title    string
	Body     string
	Data     map[string]interface{}
}

// Sink receives messages that pass the debounce.
type Sink interface {
	Deliver(msg Message) error
}

// Notifier debounces and forwards notifications to its sink. The last-shown
// map is private state; construct one per component that needs it.
type Notifier struct {
	sink   Sink
	window time.Duration

	mu        sync.Mutex
	lastShown map[string]time.Time

	now func() time.Time
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithWindow overrides the debounce window.
func WithWindow(d time.Duration) Option {
	return func(n *Notifier) { n.window = d }
}

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) { n.now = now }
}

// New creates a Notifier delivering to sink.
func New(sink Sink, opts ...Option) *Notifier {
	n := &Notifier{
		sink:      sink,
		window:    DefaultDebounceWindow,
		lastShown: make(map[string]time.Time),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify delivers msg unless an identical category+title was shown to the
// same user within the debounce window. It reports whether delivery happened.
// Sink failures are logged, never propagated; the channel is fire-and-forget.
func (n *Notifier) Notify(msg Message) bool {
	key := msg.UserID.String() + "|" + msg.Category + "|" + msg.Title

	n.mu.Lock()
	last, seen := n.lastShown[key]
	now := n.now()
	if seen && now.Sub(last) < n.window {
		n.mu.Unlock()
		return false
	}
	// Entries past the window can no longer suppress anything; drop them so
	// the map does not keep one key per user and title forever.
	for k, ts := range n.lastShown {
		if now.Sub(ts) >= n.window {
			delete(n.lastShown, k)
		}
	}
	n.lastShown[key] = now
	n.mu.Unlock()

	if n.sink == nil {
		return true
	}
	if err := n.sink.Deliver(msg); err != nil {
		log.Printf("failed to deliver notification %q: %v", msg.Title, err)
	}
	return true
}

// Success is shorthand for a success-category Notify.
func (n *Notifier) Success(userID uuid.UUID, title, body string) bool {
	return n.Notify(Message{UserID: userID, Category: CategorySuccess, Title: title, Body: body})
}

// Error is shorthand for an error-category Notify.
func (n *Notifier) Error(userID uuid.UUID, title, body string) bool {
	return n.Notify(Message{UserID: userID, Category: CategoryError, Title: title, Body: body})
}

// Info is shorthand for an info-category Notify.
func (n *Notifier) Info(userID uuid.UUID, title, body string) bool {
	return n.Notify(Message{UserID: userID, Category: CategoryInfo, Title: title, Body: body})
}

// Warning is shorthand for a warning-category Notify.
func (n *Notifier) Warning(userID uuid.UUID, title, body string) bool {
	return n.Notify(Message{UserID: userID, Category: CategoryWarning, Title: title, Body: body})
}

// GormSink persists notifications as rows.
type GormSink struct {
	DB *gorm.DB
}

// Deliver stores msg as a Notification record.
func (s *GormSink) Deliver(msg Message) error {
	var data datatypes.JSON
	if msg.Data != nil {
		raw, err := json.Marshal(msg.Data)
		if err != nil {
			return err
		}
		data = datatypes.JSON(raw)
	}

	row := model.Notification{
		UserID:   msg.UserID,
		Category: msg.Category,
		Title:    msg.Title,
		Message:  msg.Body,
		Data:     data,
	}
	return s.DB.Create(&row).Error
}
