package chat

import "strings"

// Greeting is the assistant's canonical opening line. The backend prefixes
// it to the first reply of a conversation, so the client both seeds the
// transcript with it and strips the duplicate.
const Greeting = "This is Olivia with the YMCA! How may I help you?"

// StripGreeting removes a duplicated greeting prefix from reply. The rule
// is exact-text matching against one fixed string, so it lives here behind
// a single function instead of inline in the reply handling.
//
// Only applies when the transcript already opens with the canonical
// greeting. The prefix and any immediately following blank lines are
// dropped; a reply that was nothing but the greeting falls back to the
// greeting itself rather than an empty bubble.
func StripGreeting(firstTranscriptEntry, reply string) string {
	if firstTranscriptEntry != Greeting {
		return reply
	}
	if !strings.HasPrefix(reply, Greeting) {
		return reply
	}
	rest := strings.TrimPrefix(reply, Greeting)
	rest = strings.TrimLeft(rest, "\n")
	if strings.TrimSpace(rest) == "" {
		return Greeting
	}
	return rest
}
