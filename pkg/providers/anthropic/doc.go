// Package anthropic adapts the normalized providers.Options/Response
// shape onto Anthropic's messages wire format: every system message
// folds into a single system prefix (joined by double newline), and the
// remaining messages become the alternating user/assistant conversation.
// Structured output is implemented by declaring a single forced tool
// whose input schema is the resolved response schema.
package anthropic
