// Package editor implements the editing session: one Book, the active
// section reference, the drag gesture state, and every state-transition
// operation the frontend drives.
//
// Operations never return errors for bad input. Unknown ids and
// out-of-range indices are no-ops, and a dangling active-section
// reference falls back to the first section in order. Each operation is
// atomic under the session lock; there is no partial-update visibility.
package editor

import (
	"encoding/base64"
	"net/http"
	"sync"
	"time"

	"github.com/inkroomhq/inkroom/internal/book"
)

// Field names accepted by UpdateSectionField.
const (
	FieldTitle    = "title"
	FieldSubtitle = "subtitle"
	FieldContent  = "content"
)

// DefaultSectionTitle is the placeholder title for a freshly added section.
const DefaultSectionTitle = "새로운 챕터"

// Session owns the single Book of an editing session.
type Session struct {
	mu sync.RWMutex

	book            *book.Book
	activeSectionID string
	dragSourceIndex *int

	// autosave bookkeeping
	modifiedAt time.Time
	debounce   time.Duration
	now        func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithAutosaveDebounce sets the cosmetic auto-save debounce window.
func WithAutosaveDebounce(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession creates a session around the given book. A nil book seeds
// the stock sample book. The first section starts active.
func NewSession(b *book.Book, opts ...Option) *Session {
	if b == nil {
		b = book.DefaultBook()
	}
	s := &Session{
		book:     b,
		debounce: 2 * time.Second,
		now:      time.Now,
	}
	if len(b.Sections) > 0 {
		s.activeSectionID = b.Sections[0].ID
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Book returns a deep copy of the current book state.
func (s *Session) Book() *book.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.Clone()
}

// ActiveSection returns a copy of the active section and true, or a zero
// section and false when the book has no sections. A dangling active id
// resolves to the first section in order.
func (s *Session) ActiveSection() (book.Section, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sec := s.activeSection()
	if sec == nil {
		return book.Section{}, false
	}
	out := *sec
	out.Images = append([]book.BookImage(nil), sec.Images...)
	return out, true
}

// activeSection resolves the active section under the lock.
func (s *Session) activeSection() *book.Section {
	if sec := s.book.SectionByID(s.activeSectionID); sec != nil {
		return sec
	}
	if len(s.book.Sections) > 0 {
		return &s.book.Sections[0]
	}
	return nil
}

// SetActiveSection points the session at the given section. The id is
// stored as-is; resolution falls back to the first section if it is
// absent at read time.
func (s *Session) SetActiveSection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeSectionID = id
}

// UpdateBookField replaces one book-level field.
func (s *Session) UpdateBookField(apply func(*book.Book)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply(s.book)
	s.markDirty()
}

// SetTitle replaces the book title.
func (s *Session) SetTitle(v string) { s.UpdateBookField(func(b *book.Book) { b.Title = v }) }

// SetDescription replaces the book description.
func (s *Session) SetDescription(v string) {
	s.UpdateBookField(func(b *book.Book) { b.Description = v })
}

// SetPersona replaces the AI persona instruction.
func (s *Session) SetPersona(v string) { s.UpdateBookField(func(b *book.Book) { b.AIPersona = v }) }

// SetTargetAudience replaces the target audience.
func (s *Session) SetTargetAudience(v string) {
	s.UpdateBookField(func(b *book.Book) { b.TargetAudience = v })
}

// UpdateSectionField replaces one field on the active section. Unknown
// field names are a no-op.
func (s *Session) UpdateSectionField(field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := s.activeSection()
	if sec == nil {
		return
	}
	switch field {
	case FieldTitle:
		sec.Title = value
	case FieldSubtitle:
		sec.Subtitle = value
	case FieldContent:
		sec.Content = value
	default:
		return
	}
	s.markDirty()
}

// InsertTextAtCursor appends text to the active section's content with a
// single separating space. There is no cursor tracking; insertion is
// always at the end.
func (s *Session) InsertTextAtCursor(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := s.activeSection()
	if sec == nil {
		return
	}
	if sec.Content == "" || sec.Content[len(sec.Content)-1] == ' ' {
		sec.Content += text
	} else {
		sec.Content += " " + text
	}
	s.markDirty()
}

// AddSection appends a new placeholder section and makes it active.
// Returns a copy of the new section.
func (s *Session) AddSection() book.Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := book.NewSection(DefaultSectionTitle)
	s.book.Sections = append(s.book.Sections, sec)
	s.activeSectionID = sec.ID
	s.markDirty()
	return sec
}

// ApplyTableOfContents replaces the entire section list with one empty
// section per title, in order. The first new section becomes active.
// This is destructive; callers are expected to confirm with the user.
func (s *Session) ApplyTableOfContents(titles []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sections := make([]book.Section, 0, len(titles))
	for _, title := range titles {
		sections = append(sections, book.NewSection(title))
	}
	s.book.Sections = sections
	s.activeSectionID = ""
	if len(sections) > 0 {
		s.activeSectionID = sections[0].ID
	}
	s.markDirty()
}

// ReorderSections moves the section at from to position to. All other
// sections keep their relative order. Out-of-range indices and equal
// indices are no-ops.
func (s *Session) ReorderSections(from, to int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reorder(from, to)
}

func (s *Session) reorder(from, to int) {
	n := len(s.book.Sections)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}
	secs := s.book.Sections
	moved := secs[from]
	secs = append(secs[:from], secs[from+1:]...)
	secs = append(secs[:to], append([]book.Section{moved}, secs[to:]...)...)
	s.book.Sections = secs
	s.markDirty()
}

// BeginDrag records the index a reorder gesture started from.
func (s *Session) BeginDrag(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.book.Sections) {
		return
	}
	i := index
	s.dragSourceIndex = &i
}

// DragOver moves the dragged section to index and keeps tracking it
// there, matching the live-reorder behavior of the sidebar. No-op when
// no drag is in progress or the index is unchanged.
func (s *Session) DragOver(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dragSourceIndex == nil || *s.dragSourceIndex == index {
		return
	}
	if index < 0 || index >= len(s.book.Sections) {
		return
	}
	s.reorder(*s.dragSourceIndex, index)
	i := index
	s.dragSourceIndex = &i
}

// EndDrag clears the drag gesture state.
func (s *Session) EndDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragSourceIndex = nil
}

// DragSourceIndex returns the in-progress drag index, or -1.
func (s *Session) DragSourceIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dragSourceIndex == nil {
		return -1
	}
	return *s.dragSourceIndex
}

// AttachImage converts raw image bytes into a data URI and appends a new
// image with the default size to the named section. Returns the new
// image and true, or false when the section does not exist.
func (s *Session) AttachImage(sectionID string, data []byte, mimeType string) (book.BookImage, bool) {
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	img := book.BookImage{
		ID:   book.NewImageID(),
		URL:  "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
		Size: book.ImageSizeMedium,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sec := s.book.SectionByID(sectionID)
	if sec == nil {
		return book.BookImage{}, false
	}
	sec.Images = append(sec.Images, img)
	s.markDirty()
	return img, true
}

// RemoveImage removes one image by id. Unknown section or image ids are
// no-ops.
func (s *Session) RemoveImage(sectionID, imageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := s.book.SectionByID(sectionID)
	if sec == nil {
		return
	}
	for i := range sec.Images {
		if sec.Images[i].ID == imageID {
			sec.Images = append(sec.Images[:i], sec.Images[i+1:]...)
			s.markDirty()
			return
		}
	}
}

// SetImageSize updates the size of one image. Unknown ids and unknown
// sizes are no-ops.
func (s *Session) SetImageSize(sectionID, imageID string, size book.ImageSize) {
	if !book.ValidImageSize(size) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := s.book.SectionByID(sectionID)
	if sec == nil {
		return
	}
	for i := range sec.Images {
		if sec.Images[i].ID == imageID {
			sec.Images[i].Size = size
			s.markDirty()
			return
		}
	}
}
