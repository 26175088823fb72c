// Package vocab builds the vocabulary recommendation prompt: a free-text
// feeling or thought in, five evocative words with meaning and nuance out.
package vocab

import "fmt"

// WordCount is how many words the model is asked for.
const WordCount = 5

// UserPrompt builds the prompt for a vocabulary recommendation.
func UserPrompt(thought string) string {
	return fmt.Sprintf(`사용자가 표현하려는 생각/느낌: "%s". 이 감정을 가장 잘 나타내는 세련되거나 감각적인 단어 %d개를 추천해줘.`, thought, WordCount)
}
