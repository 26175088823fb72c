// Package toc builds the table-of-contents suggestion prompt: given the
// book title and description, the model proposes 5-10 chapter titles.
package toc

import "fmt"

// UserPrompt builds the prompt for a table-of-contents suggestion.
func UserPrompt(title, description string) string {
	return fmt.Sprintf(`제목: "%s", 설명: "%s". 이 책을 위한 상세한 목차를 추천해줘. 5~10개의 챕터 제목을 배열 형태로 제공해줘.`, title, description)
}

// DefaultTitles is the designed degradation path: when the model call
// fails or returns an unusable payload, this fixed outline is applied
// instead of surfacing an error.
func DefaultTitles() []string {
	return []string{"프롤로그", "서론", "첫 번째 이야기", "결말"}
}
