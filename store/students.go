package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"school-records/models"
)

// Students is the PostgreSQL-backed StudentStore. Every method runs exactly
// one statement on the pool, so each call is its own transaction: committed
// on success, rolled back by the server on any error or cancellation.
type Students struct {
	pool *pgxpool.Pool
}

func NewStudents(pool *pgxpool.Pool) *Students {
	return &Students{pool: pool}
}

func (s *Students) List(ctx context.Context) ([]models.Student, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, age, grade FROM students`)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(&student.ID, &student.Name, &student.Age, &student.Grade); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

func (s *Students) Get(ctx context.Context, id int) (models.Student, error) {
	var student models.Student
	query := `SELECT id, name, age, grade FROM students WHERE id = $1`
	err := s.pool.QueryRow(ctx, query, id).Scan(&student.ID, &student.Name, &student.Age, &student.Grade)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Student{}, ErrNotFound
	}
	if err != nil {
		return models.Student{}, fmt.Errorf("get student %d: %w", id, err)
	}
	return student, nil
}

func (s *Students) Create(ctx context.Context, name string, age int, grade string) (models.Student, error) {
	var student models.Student
	query := `
		INSERT INTO students (name, age, grade)
		VALUES ($1, $2, $3)
		RETURNING id, name, age, grade
	`
	err := s.pool.QueryRow(ctx, query, name, age, grade).Scan(&student.ID, &student.Name, &student.Age, &student.Grade)
	if err != nil {
		return models.Student{}, fmt.Errorf("create student: %w", err)
	}
	return student, nil
}

// Update overwrites only the fields present in req. Absent fields arrive as
// NULL and COALESCE keeps the stored value, so the whole partial update is
// one atomic statement.
func (s *Students) Update(ctx context.Context, id int, req models.UpdateStudentRequest) (models.Student, error) {
	var student models.Student
	query := `
		UPDATE students
		SET name = COALESCE($2, name),
		    age = COALESCE($3, age),
		    grade = COALESCE($4, grade)
		WHERE id = $1
		RETURNING id, name, age, grade
	`
	err := s.pool.QueryRow(ctx, query, id, req.Name, req.Age, req.Grade).Scan(&student.ID, &student.Name, &student.Age, &student.Grade)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Student{}, ErrNotFound
	}
	if err != nil {
		return models.Student{}, fmt.Errorf("update student %d: %w", id, err)
	}
	return student, nil
}

// Delete removes the row and returns it as it was immediately before
// deletion; RETURNING captures the values in the delete statement itself,
// so no re-read is needed.
func (s *Students) Delete(ctx context.Context, id int) (models.Student, error) {
	var student models.Student
	query := `DELETE FROM students WHERE id = $1 RETURNING id, name, age, grade`
	err := s.pool.QueryRow(ctx, query, id).Scan(&student.ID, &student.Name, &student.Age, &student.Grade)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Student{}, ErrNotFound
	}
	if err != nil {
		return models.Student{}, fmt.Errorf("delete student %d: %w", id, err)
	}
	return student, nil
}
