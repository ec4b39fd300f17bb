package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"school-records/models"
	"school-records/store"
)

// StudentHandler serves the /students routes against an injected store.
type StudentHandler struct {
	store store.StudentStore
}

func NewStudentHandler(s store.StudentStore) *StudentHandler {
	return &StudentHandler{store: s}
}

// Register mounts the five student routes on the app.
func (h *StudentHandler) Register(app *fiber.App) {
	group := app.Group("/students")
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Get("/:id", h.Get)
	group.Put("/:id", h.Update)
	group.Delete("/:id", h.Delete)
}

// List handles GET /students/
func (h *StudentHandler) List(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), queryTimeout)
	defer cancel()

	students, err := h.store.List(ctx)
	if err != nil {
		log.Printf("list students: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to fetch students"})
	}
	return c.JSON(students)
}

// Get handles GET /students/:id
func (h *StudentHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "Student ID must be an integer"})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), queryTimeout)
	defer cancel()

	student, err := h.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Student not found"})
	}
	if err != nil {
		log.Printf("get student: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to fetch student"})
	}
	return c.JSON(student)
}

// Create handles POST /students/
func (h *StudentHandler) Create(c *fiber.Ctx) error {
	var req models.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": validationDetail(errs)})
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "Invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), queryTimeout)
	defer cancel()

	student, err := h.store.Create(ctx, req.Name, *req.Age, *req.Grade)
	if err != nil {
		log.Printf("create student: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to create student"})
	}
	return c.Status(fiber.StatusCreated).JSON(student)
}

// Update handles PUT /students/:id. Only fields present in the body are
// overwritten; the rest keep their stored values.
func (h *StudentHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "Student ID must be an integer"})
	}

	var req models.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "Invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), queryTimeout)
	defer cancel()

	student, err := h.store.Update(ctx, id, req)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Student not found"})
	}
	if err != nil {
		log.Printf("update student: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to update student"})
	}
	return c.JSON(student)
}

// Delete handles DELETE /students/:id and responds with the record as it
// existed before deletion.
func (h *StudentHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "Student ID must be an integer"})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), queryTimeout)
	defer cancel()

	student, err := h.store.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Student not found"})
	}
	if err != nil {
		log.Printf("delete student: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to delete student"})
	}
	return c.JSON(student)
}
