// File: internal/services/assistant/classifier.go
package assistant

import "regexp"

// RelevancePredicate decides whether a question should pull the chat's
// latest attachment into the upstream call. Swapping it out does not touch
// the gateway's control flow.
type RelevancePredicate func(question string) bool

var documentPattern = regexp.MustCompile(
	`(?i)summarize|explain|according to|in the pdf|based on the document|tools used|abstract|what does it say|methods used`)

// DocumentRelated is the default predicate: a fixed keyword match over the
// question text. A heuristic, not a guarantee.
func DocumentRelated(question string) bool {
	return documentPattern.MatchString(question)
}
