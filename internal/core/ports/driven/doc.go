// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CandidateProvider: Loads and pre-filters apps, contacts, files or settings
//   - PreferenceStore: Hidden, pinned, nickname and usage persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ChangeNotifier: Push notification that a provider's data changed
//   - SuggestionFetcher: Web suggestions. Without it, empty results stay empty.
//   - AnswerFetcher: Direct-answer API. Without it, the direct answer engine is unavailable.
//   - AnswerValidator: Provider connectivity check for the answer settings.
//   - PromptStore: User-editable answer prompts. Without it, built-in framing is used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or provider package
package driven
