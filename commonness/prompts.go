package commonness

import (
	"embed"
	"fmt"
)

//go:embed prompts/*.txt
var promptFS embed.FS

const systemPrompt = "You are a lexicographer estimating word frequencies. Reply only with the requested JSON."

var zipfPrompt string
var zipfPromptError error

func init() {
	promptBytes, err := promptFS.ReadFile("prompts/zipf_prompt.txt")
	if err != nil {
		zipfPromptError = fmt.Errorf("failed to load zipf prompt: %w", err)
		return
	}
	zipfPrompt = string(promptBytes)
}

var languageNames = map[string]string{
	"de": "German",
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"it": "Italian",
	"nl": "Dutch",
	"pt": "Portuguese",
}

func languageName(lang string) string {
	if name, ok := languageNames[lang]; ok {
		return name
	}
	return lang
}
