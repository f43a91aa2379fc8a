package assistant

// QuickQuestion is a pre-filled question offered as a shortcut.
type QuickQuestion struct {
	Label    string `json:"label"`
	Question string `json:"question"`
}

var quickQuestions = []QuickQuestion{
	{Label: "Binary Search", Question: "Explain binary search"},
	{Label: "Dynamic Programming", Question: "How does dynamic programming work?"},
	{Label: "Two Pointers", Question: "When should I use the two pointer technique?"},
	{Label: "Study Plan", Question: "Can you give me a study plan?"},
	{Label: "Interview Tips", Question: "How should I prepare for a coding interview?"},
	{Label: "Big O", Question: "Explain time complexity"},
}

// QuickQuestions returns the shortcut questions in display order.
func QuickQuestions() []QuickQuestion {
	return append([]QuickQuestion(nil), quickQuestions...)
}
