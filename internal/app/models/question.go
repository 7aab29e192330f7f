package models

// Option is a single answer choice.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is the student-facing question record. It never carries the
// correct answer; that field only exists on the admin variant.
type Question struct {
	ID        string   `json:"id"`
	SubjectID string   `json:"subject_id"`
	Question  string   `json:"question"`
	Options   []Option `json:"options"`
}

// AdminQuestion is the authority-bearing variant returned by admin-scoped
// endpoints only.
type AdminQuestion struct {
	Question
	CorrectAnswer string      `json:"correct_answer"`
	Explanation   Explanation `json:"explanation"`
}

// Explanation is the worked solution attached to a question.
type Explanation struct {
	Summary string   `json:"summary"`
	Steps   []string `json:"steps,omitempty"`
}

// AnswerResult is the grading outcome for one submission. It is consumed
// once and never cached.
type AnswerResult struct {
	Correct       bool        `json:"correct"`
	CorrectAnswer string      `json:"correct_answer"`
	Explanation   Explanation `json:"explanation"`
}
