package models

type Student struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Grade string `json:"grade"`
}

// CreateStudentRequest requires every non-id field. Age is a pointer so a
// legitimate zero value still satisfies the required rule; only a missing
// key fails validation.
type CreateStudentRequest struct {
	Name  string  `json:"name" validate:"required"`
	Age   *int    `json:"age" validate:"required"`
	Grade *string `json:"grade" validate:"required"`
}

// UpdateStudentRequest carries a pointer per field: nil means the field was
// absent from the body and keeps its stored value.
type UpdateStudentRequest struct {
	Name  *string `json:"name"`
	Age   *int    `json:"age"`
	Grade *string `json:"grade"`
}
