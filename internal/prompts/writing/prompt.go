// Package writing builds the inline writing-suggestion prompt: book
// context, current chapter, and draft text in; three tagged suggestions
// out. The configurable persona steers tone via the system instruction.
package writing

import "fmt"

// SuggestionCount is how many suggestions the model is asked for.
const SuggestionCount = 3

// SystemPrompt builds the persona-bearing system instruction.
func SystemPrompt(persona string) string {
	return fmt.Sprintf(`당신은 전문 작가 어시스턴트입니다. 역할: %s. 현재 글의 흐름을 이어가거나 개선할 수 있는 창의적인 문구 %d개를 제안하세요. 한국어로 답변하세요.`, persona, SuggestionCount)
}

// UserPrompt builds the user prompt from the book context, the active
// chapter title, and the text written so far.
func UserPrompt(bookContext, sectionTitle, currentText string) string {
	return fmt.Sprintf("책 배경: %s\n현재 챕터: %s\n현재 작성된 글: %s", bookContext, sectionTitle, currentText)
}
