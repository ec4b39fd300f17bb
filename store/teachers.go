package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"school-records/models"
)

// Teachers is the PostgreSQL-backed TeacherStore. Same single-statement
// contract as Students.
type Teachers struct {
	pool *pgxpool.Pool
}

func NewTeachers(pool *pgxpool.Pool) *Teachers {
	return &Teachers{pool: pool}
}

func (s *Teachers) List(ctx context.Context) ([]models.Teacher, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, subject, experience FROM teachers`)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	defer rows.Close()

	teachers := []models.Teacher{}
	for rows.Next() {
		var teacher models.Teacher
		if err := rows.Scan(&teacher.ID, &teacher.Name, &teacher.Subject, &teacher.Experience); err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		teachers = append(teachers, teacher)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

func (s *Teachers) Get(ctx context.Context, id int) (models.Teacher, error) {
	var teacher models.Teacher
	query := `SELECT id, name, subject, experience FROM teachers WHERE id = $1`
	err := s.pool.QueryRow(ctx, query, id).Scan(&teacher.ID, &teacher.Name, &teacher.Subject, &teacher.Experience)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Teacher{}, ErrNotFound
	}
	if err != nil {
		return models.Teacher{}, fmt.Errorf("get teacher %d: %w", id, err)
	}
	return teacher, nil
}

func (s *Teachers) Create(ctx context.Context, name string, subject string, experience int) (models.Teacher, error) {
	var teacher models.Teacher
	query := `
		INSERT INTO teachers (name, subject, experience)
		VALUES ($1, $2, $3)
		RETURNING id, name, subject, experience
	`
	err := s.pool.QueryRow(ctx, query, name, subject, experience).Scan(&teacher.ID, &teacher.Name, &teacher.Subject, &teacher.Experience)
	if err != nil {
		return models.Teacher{}, fmt.Errorf("create teacher: %w", err)
	}
	return teacher, nil
}

func (s *Teachers) Update(ctx context.Context, id int, req models.UpdateTeacherRequest) (models.Teacher, error) {
	var teacher models.Teacher
	query := `
		UPDATE teachers
		SET name = COALESCE($2, name),
		    subject = COALESCE($3, subject),
		    experience = COALESCE($4, experience)
		WHERE id = $1
		RETURNING id, name, subject, experience
	`
	err := s.pool.QueryRow(ctx, query, id, req.Name, req.Subject, req.Experience).Scan(&teacher.ID, &teacher.Name, &teacher.Subject, &teacher.Experience)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Teacher{}, ErrNotFound
	}
	if err != nil {
		return models.Teacher{}, fmt.Errorf("update teacher %d: %w", id, err)
	}
	return teacher, nil
}

func (s *Teachers) Delete(ctx context.Context, id int) (models.Teacher, error) {
	var teacher models.Teacher
	query := `DELETE FROM teachers WHERE id = $1 RETURNING id, name, subject, experience`
	err := s.pool.QueryRow(ctx, query, id).Scan(&teacher.ID, &teacher.Name, &teacher.Subject, &teacher.Experience)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Teacher{}, ErrNotFound
	}
	if err != nil {
		return models.Teacher{}, fmt.Errorf("delete teacher %d: %w", id, err)
	}
	return teacher, nil
}
