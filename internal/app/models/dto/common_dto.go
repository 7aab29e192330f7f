package dto

// AnswerRequest is the body of POST /questions/{id}/answer.
type AnswerRequest struct {
	Answer string `json:"answer"`
}

// MessageResponse is the generic acknowledgement body for writes that
// return no resource.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// APIErrorBody is the backend's error envelope. Detail is either a plain
// message or, for validation failures, a list of field errors.
type APIErrorBody struct {
	Detail any `json:"detail"`
}

// FieldError is one entry of a 422 validation detail list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
