package huggingface

import (
	"strings"
	"unicode/utf8"
)

// BuildPrompt prefixes question with the direct-answer instruction.
func BuildPrompt(question string) string {
	return promptInstruction + question
}

// StripEcho trims raw and, when it contains the question (case-insensitive),
// keeps only the text after the last occurrence. Original casing is kept.
func StripEcho(raw, question string) string {
	text := strings.TrimSpace(raw)
	if question == "" {
		return text
	}
	if i := lastIndexFold(text, question); i >= 0 {
		text = text[i+len(question):]
	}
	return strings.TrimSpace(text)
}

// lastIndexFold is strings.LastIndex under Unicode case folding, restricted
// to matches with the same byte length as substr.
func lastIndexFold(s, substr string) int {
	n := len(substr)
	if n == 0 {
		return len(s)
	}
	for i := len(s) - n; i >= 0; i-- {
		if !utf8.RuneStart(s[i]) {
			continue
		}
		if strings.EqualFold(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}
