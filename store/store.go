// Package store provides single-operation access to the records database.
// Handlers depend on the interfaces here, not on pgx, so tests can swap in
// an in-memory implementation.
package store

import (
	"context"
	"errors"

	"school-records/models"
)

// ErrNotFound is returned when the requested id has no row. Absence is a
// normal outcome, distinct from a query failure; handlers map it to 404.
var ErrNotFound = errors.New("record not found")

type StudentStore interface {
	List(ctx context.Context) ([]models.Student, error)
	Get(ctx context.Context, id int) (models.Student, error)
	Create(ctx context.Context, name string, age int, grade string) (models.Student, error)
	Update(ctx context.Context, id int, req models.UpdateStudentRequest) (models.Student, error)
	Delete(ctx context.Context, id int) (models.Student, error)
}

type TeacherStore interface {
	List(ctx context.Context) ([]models.Teacher, error)
	Get(ctx context.Context, id int) (models.Teacher, error)
	Create(ctx context.Context, name string, subject string, experience int) (models.Teacher, error)
	Update(ctx context.Context, id int, req models.UpdateTeacherRequest) (models.Teacher, error)
	Delete(ctx context.Context, id int) (models.Teacher, error)
}
