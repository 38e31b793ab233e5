package answer

import (
	"fmt"

	"github.com/kailas-cloud/wikibot/internal/domain"
)

// DefaultLanguage is the answer language used when none is configured.
const DefaultLanguage = "English"

// FallbackMessage is returned without a model call when no excerpt fits the context.
const FallbackMessage = "No relevant document context was found. Try rephrasing the question or check the search index."

const systemTemplate = `You are an HR policy assistant. Answer the question in %s, accurately and concisely, using only the provided document excerpts.
If the excerpts do not contain the answer, say that you don't know. Do not guess.
End the answer with the numbers of the excerpts you relied on in square brackets, for example [1][2].`

// SystemPrompt renders the fixed instruction for the given answer language.
func SystemPrompt(language string) string {
	if language == "" {
		language = DefaultLanguage
	}
	return fmt.Sprintf(systemTemplate, language)
}

// UserPrompt embeds the assembled context and the literal question.
func UserPrompt(context, query string) string {
	return "# excerpts\n" + context + "\n\n# question\n" + query
}

// Messages builds the two-message exchange sent to the model.
func Messages(language, context, query string) []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: SystemPrompt(language)},
		{Role: domain.RoleUser, Content: UserPrompt(context, query)},
	}
}
