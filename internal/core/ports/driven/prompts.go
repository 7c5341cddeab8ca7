package driven

// PromptStore provides access to direct-answer prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Unknown names are an error; known names fall back to a built-in default.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptDirectAnswer frames a question for the direct-answer API.
	// The template expects one %s placeholder for the question.
	PromptDirectAnswer = "direct_answer"

	// PromptFollowUp frames a question asked after a previous answer.
	// The template expects %s (previous answer) then %s (question).
	PromptFollowUp = "follow_up"
)
