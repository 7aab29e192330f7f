package models

// Exam is a prep track (SAT, ENEM, ...) offered on the platform.
type Exam struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Country     string    `json:"country"`
	Description string    `json:"description"`
	Subjects    []Subject `json:"subjects"`
}

// Subject is a section of an exam (e.g. Math, Reading).
type Subject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
