// Package intent classifies free-text input against an ordered rule list.
package intent

import (
	"github.com/alexanderramin/coach/internal/domain"
	"github.com/alexanderramin/coach/internal/knowledge"
)

// Handler produces reply content for a matched entry in the given variant.
type Handler func(entry *knowledge.Entry, variant domain.Variant) string

// Rule maps a set of trigger phrases to a topic. Triggers are lowercase and
// match as substrings of the normalized input.
type Rule struct {
	Name     string
	Topic    domain.Topic
	Triggers []string
	Handler  Handler
}

// InferenceRule maps keywords to a variant for implicit preference switches.
type InferenceRule struct {
	Variant  domain.Variant
	Keywords []string
}

// DefaultRules returns the built-in topic rules in priority order. Earlier
// rules win when several trigger sets occur in one message.
func DefaultRules(h Handler) []Rule {
	return []Rule{
		{Name: "binary-search", Topic: domain.TopicBinarySearch, Triggers: []string{"binary search"}, Handler: h},
		{Name: "dynamic-programming", Topic: domain.TopicDynamicProgramming, Triggers: []string{"dynamic programming", "dp"}, Handler: h},
		{Name: "two-pointers", Topic: domain.TopicTwoPointers, Triggers: []string{"two pointer"}, Handler: h},
		{Name: "study-plan", Topic: domain.TopicStudyPlan, Triggers: []string{"study plan", "how to start"}, Handler: h},
		{Name: "interview", Topic: domain.TopicInterview, Triggers: []string{"interview", "preparation"}, Handler: h},
		{Name: "time-complexity", Topic: domain.TopicTimeComplexity, Triggers: []string{"time complexity", "big o"}, Handler: h},
		{Name: "data-structures", Topic: domain.TopicDataStructures, Triggers: []string{"data structure"}, Handler: h},
		{Name: "problem-solving", Topic: domain.TopicProblemSolving, Triggers: []string{"how to solve", "approach"}, Handler: h},
		{Name: "capabilities", Topic: domain.TopicCapabilities, Triggers: []string{"help", "what can you do"}, Handler: h},
	}
}

// DefaultInferenceRules derives inference rules from the variant keyword
// table. Variants are tested in display order, so "javascript" is checked
// before "java".
func DefaultInferenceRules() []InferenceRule {
	rules := make([]InferenceRule, 0, len(domain.Variants))
	for _, v := range domain.Variants {
		rules = append(rules, InferenceRule{Variant: v, Keywords: v.Keywords()})
	}
	return rules
}
