package models

type Teacher struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Subject    string `json:"subject"`
	Experience int    `json:"experience"`
}

type CreateTeacherRequest struct {
	Name       string  `json:"name" validate:"required"`
	Subject    *string `json:"subject" validate:"required"`
	Experience *int    `json:"experience" validate:"required"`
}

type UpdateTeacherRequest struct {
	Name       *string `json:"name"`
	Subject    *string `json:"subject"`
	Experience *int    `json:"experience"`
}
