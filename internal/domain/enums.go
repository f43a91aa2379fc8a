package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownVariant = errors.New("unknown variant")
	ErrUnknownTopic   = errors.New("unknown topic")
)

// Variant selects which snippet flavor and vocabulary a reply surfaces.
type Variant string

const (
	VariantPython     Variant = "python"
	VariantJavaScript Variant = "javascript"
	VariantJava       Variant = "java"
	VariantCpp        Variant = "cpp"
)

// DefaultVariant is the variant every knowledge entry must carry a snippet for.
const DefaultVariant = VariantPython

// Variants lists every variant in display order.
var Variants = []Variant{VariantPython, VariantJavaScript, VariantJava, VariantCpp}

type variantInfo struct {
	display  string
	fence    string
	keywords []string
}

var variantTable = map[Variant]variantInfo{
	VariantPython:     {display: "Python", fence: "python", keywords: []string{"python"}},
	VariantJavaScript: {display: "JavaScript", fence: "javascript", keywords: []string{"javascript", "typescript", "node.js"}},
	VariantJava:       {display: "Java", fence: "java", keywords: []string{"java"}},
	VariantCpp:        {display: "C++", fence: "cpp", keywords: []string{"c++", "cpp"}},
}

// Valid reports whether v is one of the closed set of variants.
func (v Variant) Valid() bool {
	_, ok := variantTable[v]
	return ok
}

// DisplayName returns the human-facing name, e.g. "C++".
func (v Variant) DisplayName() string {
	if info, ok := variantTable[v]; ok {
		return info.display
	}
	return string(v)
}

// FenceTag returns the language tag used on fenced code blocks.
func (v Variant) FenceTag() string {
	return variantTable[v].fence
}

// Keywords returns the lowercase phrases that imply this variant in free text.
func (v Variant) Keywords() []string {
	return variantTable[v].keywords
}

// Next returns the variant after v in display order, wrapping around.
func (v Variant) Next() Variant {
	for i, candidate := range Variants {
		if candidate == v {
			return Variants[(i+1)%len(Variants)]
		}
	}
	return DefaultVariant
}

// ParseVariant accepts a variant key or display name, case-insensitively.
func ParseVariant(s string) (Variant, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, v := range Variants {
		if needle == string(v) || needle == strings.ToLower(v.DisplayName()) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownVariant)
}

// Topic identifies one knowledge base entry.
type Topic string

const (
	TopicBinarySearch       Topic = "binary_search"
	TopicDynamicProgramming Topic = "dynamic_programming"
	TopicTwoPointers        Topic = "two_pointers"
	TopicStudyPlan          Topic = "study_plan"
	TopicInterview          Topic = "interview"
	TopicTimeComplexity     Topic = "time_complexity"
	TopicDataStructures     Topic = "data_structures"
	TopicProblemSolving     Topic = "problem_solving"
	TopicCapabilities       Topic = "capabilities"
)

// Topics lists the closed topic set in registry order.
var Topics = []Topic{
	TopicBinarySearch,
	TopicDynamicProgramming,
	TopicTwoPointers,
	TopicStudyPlan,
	TopicInterview,
	TopicTimeComplexity,
	TopicDataStructures,
	TopicProblemSolving,
	TopicCapabilities,
}

// Valid reports whether t is a known topic.
func (t Topic) Valid() bool {
	for _, known := range Topics {
		if known == t {
			return true
		}
	}
	return false
}

// ParseTopic accepts a topic key, with dashes or spaces in place of underscores.
func ParseTopic(s string) (Topic, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	t := Topic(key)
	if !t.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownTopic)
	}
	return t, nil
}

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

type MessageKind string

const (
	KindUser          MessageKind = "user"
	KindWelcome       MessageKind = "welcome"
	KindReply         MessageKind = "reply"
	KindEncouragement MessageKind = "encouragement"
	KindAck           MessageKind = "ack"
)

// SurfaceState is the visibility of the chat surface.
type SurfaceState string

const (
	SurfaceClosed    SurfaceState = "closed"
	SurfaceOpen      SurfaceState = "open"
	SurfaceMinimized SurfaceState = "minimized"
)

// ParseSurfaceAction validates a surface action name used by the UI event surface.
func ParseSurfaceAction(s string) (SurfaceAction, error) {
	a := SurfaceAction(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case ActionOpen, ActionClose, ActionMinimize, ActionToggle:
		return a, nil
	}
	return "", fmt.Errorf("unknown surface action %q", s)
}

type SurfaceAction string

const (
	ActionOpen     SurfaceAction = "open"
	ActionClose    SurfaceAction = "close"
	ActionMinimize SurfaceAction = "minimize"
	ActionToggle   SurfaceAction = "toggle"
)
