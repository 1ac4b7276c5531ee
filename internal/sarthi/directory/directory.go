// Package directory maintains the collection of conversation sessions and
// the currently active selection.
package directory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lawsarthi/sarthi/internal/sarthi"
)

// Buckets partitions filtered sessions the way the sidebar displays them.
// A session is archived, else pinned, else regular; an archived session
// appears only in the archived bucket regardless of its pinned flag.
type Buckets struct {
	Pinned   []*sarthi.ConversationSession
	Regular  []*sarthi.ConversationSession
	Archived []*sarthi.ConversationSession
}

// Directory owns the set of conversation sessions, unique by id, in
// insertion order. At most one session is active at a time, and the active
// id always refers to an existing session.
type Directory struct {
	mu       sync.Mutex
	sessions []*sarthi.ConversationSession
	activeID string
}

// New creates an empty directory.
func New() *Directory {
	return &Directory{}
}

// Create inserts a new session with the default title and makes it active.
func (d *Directory) Create() *sarthi.ConversationSession {
	d.mu.Lock()
	defer d.mu.Unlock()
	session := sarthi.NewConversationSession()
	d.sessions = append(d.sessions, session)
	d.activeID = session.ID
	return session
}

// Insert materializes an externally created session into the directory and
// makes it active. Fails if a session with the same id already exists.
func (d *Directory) Insert(session *sarthi.ConversationSession) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.find(session.ID) != nil {
		return fmt.Errorf("session %s already exists in directory", session.GetShortID())
	}
	d.sessions = append(d.sessions, session)
	d.activeID = session.ID
	return nil
}

// Get returns the session with the given id.
func (d *Directory) Get(id string) (*sarthi.ConversationSession, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	session := d.find(id)
	if session == nil {
		return nil, fmt.Errorf("%w: %s", sarthi.ErrNotFound, id)
	}
	return session, nil
}

// Select makes the session with the given id active and returns it. On an
// unknown id the active selection is left unchanged.
func (d *Directory) Select(id string) (*sarthi.ConversationSession, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	session := d.find(id)
	if session == nil {
		return nil, fmt.Errorf("%w: %s", sarthi.ErrNotFound, id)
	}
	d.activeID = session.ID
	return session, nil
}

// ActiveID returns the id of the active session, or "" when none is active.
func (d *Directory) ActiveID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.activeID
}

// ClearActive deselects the active session.
func (d *Directory) ClearActive() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.activeID = ""
}

// Len returns the number of sessions in the directory.
func (d *Directory) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sessions)
}

// Filter matches sessions whose title contains the query, case-insensitive,
// and partitions the matches into buckets. An empty query matches all
// sessions. Ordering within each bucket is the directory's insertion order.
func (d *Directory) Filter(query string) Buckets {
	d.mu.Lock()
	defer d.mu.Unlock()

	needle := strings.ToLower(query)
	var buckets Buckets
	for _, session := range d.sessions {
		if !strings.Contains(strings.ToLower(session.Title), needle) {
			continue
		}
		switch {
		case session.Archived:
			buckets.Archived = append(buckets.Archived, session)
		case session.Pinned:
			buckets.Pinned = append(buckets.Pinned, session)
		default:
			buckets.Regular = append(buckets.Regular, session)
		}
	}
	return buckets
}

// SetPinned pins or unpins the named session.
func (d *Directory) SetPinned(id string, pinned bool) error {
	return d.update(id, func(s *sarthi.ConversationSession) { s.Pinned = pinned })
}

// SetArchived archives or unarchives the named session.
func (d *Directory) SetArchived(id string, archived bool) error {
	return d.update(id, func(s *sarthi.ConversationSession) { s.Archived = archived })
}

// Rename sets the title of the named session.
func (d *Directory) Rename(id string, title string) error {
	return d.update(id, func(s *sarthi.ConversationSession) { s.Title = title })
}

// Remove deletes the named session. When the removed session was active, the
// active selection is cleared and wasActive reports true so the caller can
// reset the conversation controller. Ids are never reused after removal.
func (d *Directory) Remove(id string) (wasActive bool, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, session := range d.sessions {
		if session.ID == id {
			d.sessions = append(d.sessions[:i], d.sessions[i+1:]...)
			if d.activeID == id {
				d.activeID = ""
				return true, nil
			}
			return false, nil
		}
	}
	return false, fmt.Errorf("%w: %s", sarthi.ErrNotFound, id)
}

func (d *Directory) update(id string, fn func(*sarthi.ConversationSession)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	session := d.find(id)
	if session == nil {
		return fmt.Errorf("%w: %s", sarthi.ErrNotFound, id)
	}
	fn(session)
	return nil
}

func (d *Directory) find(id string) *sarthi.ConversationSession {
	for _, session := range d.sessions {
		if session.ID == id {
			return session
		}
	}
	return nil
}
