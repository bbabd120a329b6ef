package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// ThinkingText is shown while a reply is pending.
const ThinkingText = "🤖 Thinking..."

type Entry struct {
	ID        uuid.UUID
	Role      Role
	Text      string
	Pending   bool
	CreatedAt time.Time
}

// Transcript is the ordered conversation shown in the chat panel.
type Transcript struct {
	mu      sync.RWMutex
	entries []Entry
	notify  func(Entry)
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

// OnAppend registers fn to be called for every non-pending entry added.
func (t *Transcript) OnAppend(fn func(Entry)) {
	t.mu.Lock()
	t.notify = fn
	t.mu.Unlock()
}

func (t *Transcript) AddUser(text string) Entry {
	return t.add(Entry{Role: RoleUser, Text: text})
}

func (t *Transcript) AddBot(text string) Entry {
	return t.add(Entry{Role: RoleBot, Text: text})
}

// AddThinking appends a transient bot entry; remove it with Remove.
func (t *Transcript) AddThinking() Entry {
	return t.add(Entry{Role: RoleBot, Text: ThinkingText, Pending: true})
}

func (t *Transcript) add(e Entry) Entry {
	e.ID = uuid.New()
	e.CreatedAt = time.Now()

	t.mu.Lock()
	t.entries = append(t.entries, e)
	notify := t.notify
	t.mu.Unlock()

	if notify != nil && !e.Pending {
		notify(e)
	}
	return e
}

// Remove deletes the entry with id. It reports whether the entry existed.
func (t *Transcript) Remove(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, e := range t.entries {
		if e.ID == id {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (t *Transcript) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Entry(nil), t.entries...)
}

// Last returns the most recent entry, if any.
func (t *Transcript) Last() (Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.entries) == 0 {
		return Entry{}, false
	}
	return t.entries[len(t.entries)-1], true
}
