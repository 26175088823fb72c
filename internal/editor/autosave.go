package editor

import "time"

// SaveStatus mirrors the header indicator in the frontend. Auto-save is
// cosmetic; nothing is written anywhere.
type SaveStatus string

const (
	SaveStatusClean  SaveStatus = "clean"  // no edits yet this session
	SaveStatusSaving SaveStatus = "saving" // inside the debounce window
	SaveStatusSaved  SaveStatus = "saved"
)

// SaveState reports the auto-save indicator state.
type SaveState struct {
	Status  SaveStatus `json:"status"`
	SavedAt time.Time  `json:"saved_at,omitempty"`
}

// markDirty records an edit. Callers hold the session lock.
func (s *Session) markDirty() {
	s.modifiedAt = s.now()
}

// SaveState derives the indicator from the last edit time: edits within
// the debounce window show as "saving", older edits as "saved".
func (s *Session) SaveState() SaveState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.modifiedAt.IsZero() {
		return SaveState{Status: SaveStatusClean}
	}
	settled := s.modifiedAt.Add(s.debounce)
	if s.now().Before(settled) {
		return SaveState{Status: SaveStatusSaving}
	}
	return SaveState{Status: SaveStatusSaved, SavedAt: settled}
}
