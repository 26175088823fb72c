// Package book defines the in-memory document model for one editing session:
// a Book made of ordered Sections, each with text content and inline images.
package book

import "github.com/google/uuid"

// ImageSize is the display size of an inline image.
type ImageSize string

const (
	ImageSizeSmall  ImageSize = "sm"
	ImageSizeMedium ImageSize = "md"
	ImageSizeLarge  ImageSize = "lg"
	ImageSizeFull   ImageSize = "full"
)

// ValidImageSize reports whether s is one of the known display sizes.
func ValidImageSize(s ImageSize) bool {
	switch s {
	case ImageSizeSmall, ImageSizeMedium, ImageSizeLarge, ImageSizeFull:
		return true
	}
	return false
}

// BookImage is an image placed inside a Section. The URL is either a
// data URI produced at attach time or a remote reference.
type BookImage struct {
	ID   string    `json:"id"`
	URL  string    `json:"url"`
	Size ImageSize `json:"size"`
}

// Collaborator is a display-only presence marker on a Section.
// The editor core never mutates it; it is seeded as static data.
type Collaborator struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Section is one chapter/unit of the Book.
type Section struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Subtitle     string        `json:"subtitle,omitempty"`
	Content      string        `json:"content"`
	Images       []BookImage   `json:"images"`
	Collaborator *Collaborator `json:"current_collaborator,omitempty"`
}

// Book is the single document being edited in a session.
type Book struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Sections       []Section `json:"sections"`
	AIPersona      string    `json:"ai_persona"`
	TargetAudience string    `json:"target_audience"`
}

// SuggestionType tags a writing suggestion.
type SuggestionType string

const (
	SuggestionContinuation SuggestionType = "continuation"
	SuggestionPhrase       SuggestionType = "phrase"
	SuggestionIdea         SuggestionType = "idea"
)

// ValidSuggestionType reports whether t is a known suggestion tag.
func ValidSuggestionType(t SuggestionType) bool {
	switch t {
	case SuggestionContinuation, SuggestionPhrase, SuggestionIdea:
		return true
	}
	return false
}

// AISuggestion is a transient writing suggestion. It is produced by the
// assist gateway, optionally inserted into a Section, then discarded.
type AISuggestion struct {
	Text string         `json:"text"`
	Type SuggestionType `json:"type"`
}

// VocabularyRecommendation is a transient word recommendation.
type VocabularyRecommendation struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
	Nuance  string `json:"nuance"`
}

// NewSectionID returns a fresh Section identifier.
func NewSectionID() string {
	return "section-" + uuid.New().String()
}

// NewImageID returns a fresh BookImage identifier.
func NewImageID() string {
	return "img-" + uuid.New().String()
}

// NewSection returns an empty Section with the given title.
func NewSection(title string) Section {
	return Section{
		ID:     NewSectionID(),
		Title:  title,
		Images: []BookImage{},
	}
}

// SectionByID returns a pointer to the section with the given id, or nil.
func (b *Book) SectionByID(id string) *Section {
	for i := range b.Sections {
		if b.Sections[i].ID == id {
			return &b.Sections[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the Book. Callers that hand out snapshots
// use this so readers never alias live session state.
func (b *Book) Clone() *Book {
	out := *b
	out.Sections = make([]Section, len(b.Sections))
	for i, s := range b.Sections {
		cs := s
		cs.Images = make([]BookImage, len(s.Images))
		copy(cs.Images, s.Images)
		if s.Collaborator != nil {
			c := *s.Collaborator
			cs.Collaborator = &c
		}
		out.Sections[i] = cs
	}
	return &out
}

// DefaultBook returns the stock sample book that seeds a fresh session.
// Content mirrors the shipped frontend's initial state, collaborator
// markers included (they are cosmetic and static).
func DefaultBook() *Book {
	return &Book{
		ID:          uuid.New().String(),
		Title:       "새로운 세계의 시작",
		Description: "인류가 새로운 행성을 발견하고 정착하며 겪는 감정과 사건들을 다룬 SF 서사시.",
		Sections: []Section{
			{
				ID:       "start",
				Title:    "프롤로그",
				Subtitle: "차가운 별빛 아래에서",
				Content:  "별들은 그가 기억하던 것보다 훨씬 더 차갑게 빛나고 있었다...",
				Images:   []BookImage{},
			},
			{
				ID:           "sec2",
				Title:        "행성 탐사",
				Subtitle:     "미지의 대지로",
				Images:       []BookImage{},
				Collaborator: &Collaborator{Name: "박작가", Color: "blue"},
			},
			{
				ID:           "sec3",
				Title:        "첫 번째 접촉",
				Subtitle:     "그들과의 만남",
				Images:       []BookImage{},
				Collaborator: &Collaborator{Name: "이편집", Color: "purple"},
			},
		},
		AIPersona:      "풍부한 감성 묘사와 생생한 시각적 표현을 중시하는 문학 에디터.",
		TargetAudience: "SF를 즐기는 청년층 및 일반 독자.",
	}
}
