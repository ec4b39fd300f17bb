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

// TeacherHandler serves the /teachers routes against an injected store.
type TeacherHandler struct {
	store store.TeacherStore
}

func NewTeacherHandler(s store.TeacherStore) *TeacherHandler {
	return &TeacherHandler{store: s}
}

// Register mounts the five teacher routes on the app.
func (h *TeacherHandler) Register(app *fiber.App) {
	group := app.Group("/teachers")
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Get("/:id", h.Get)
	group.Put("/:id", h.Update)
	group.Delete("/:id", h.Delete)
}

// List handles GET /teachers/
func (h *TeacherHandler) List(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), queryTimeout)
	defer cancel()

	teachers, err := h.store.List(ctx)
	if err != nil {
		log.Printf("list teachers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to fetch teachers"})
	}
	return c.JSON(teachers)
}

// Get handles GET /teachers/:id
func (h *TeacherHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "Teacher ID must be an integer"})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), queryTimeout)
	defer cancel()

	teacher, err := h.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Teacher not found"})
	}
	if err != nil {
		log.Printf("get teacher: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to fetch teacher"})
	}
	return c.JSON(teacher)
}

// Create handles POST /teachers/
func (h *TeacherHandler) Create(c *fiber.Ctx) error {
	var req models.CreateTeacherRequest
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

	teacher, err := h.store.Create(ctx, req.Name, *req.Subject, *req.Experience)
	if err != nil {
		log.Printf("create teacher: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to create teacher"})
	}
	return c.Status(fiber.StatusCreated).JSON(teacher)
}

// Update handles PUT /teachers/:id. Only fields present in the body are
// overwritten; the rest keep their stored values.
func (h *TeacherHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "Teacher ID must be an integer"})
	}

	var req models.UpdateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "Invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), queryTimeout)
	defer cancel()

	teacher, err := h.store.Update(ctx, id, req)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Teacher not found"})
	}
	if err != nil {
		log.Printf("update teacher: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to update teacher"})
	}
	return c.JSON(teacher)
}

// Delete handles DELETE /teachers/:id and responds with the record as it
// existed before deletion.
func (h *TeacherHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "Teacher ID must be an integer"})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), queryTimeout)
	defer cancel()

	teacher, err := h.store.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Teacher not found"})
	}
	if err != nil {
		log.Printf("delete teacher: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to delete teacher"})
	}
	return c.JSON(teacher)
}
