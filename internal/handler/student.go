package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rollcall/rollcall/internal/auth"
	"github.com/rollcall/rollcall/internal/handler/dto"
	"github.com/rollcall/rollcall/internal/service"
)

// StudentHandler handles HTTP requests for student records. Every
// operation is scoped to the authenticated owner from the context.
type StudentHandler struct {
	svc      *service.StudentService
	logger   *slog.Logger
	validate *validator.Validate
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(svc *service.StudentService, logger *slog.Logger) *StudentHandler {
	return &StudentHandler{
		svc:      svc,
		logger:   logger,
		validate: validator.New(),
	}
}

// Create handles POST /api/v1/students.
func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	student, err := h.svc.CreateStudent(r.Context(), user.ID, service.CreateStudentInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		IdentityDocument: req.IdentityDocument,
		Address:          req.Address,
		University:       req.University,
		Faculty:          req.Faculty,
		Major:            req.Major,
		Semester:         req.Semester,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("student_created",
		"student_id", student.ID,
		"owner_id", user.ID,
	)

	writeJSON(w, http.StatusCreated, dto.CreatedResponse{
		Message: "Student registered successfully",
		ID:      student.ID,
	})
}

// List handles GET /api/v1/students.
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	students, err := h.svc.ListStudents(r.Context(), user.ID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToStudentListResponse(students))
}

// Get handles GET /api/v1/students/{id}.
func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	student, err := h.svc.GetStudent(r.Context(), user.ID, id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]dto.StudentResponse{
		"student": dto.ToStudentResponse(student),
	})
}

// Update handles PUT /api/v1/students/{id}.
func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req dto.UpdateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := h.svc.UpdateStudent(r.Context(), user.ID, id, req.ToPatch()); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("student_updated",
		"student_id", id,
		"owner_id", user.ID,
	)

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Student updated successfully"})
}

// Delete handles DELETE /api/v1/students/{id}.
func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.svc.DeleteStudent(r.Context(), user.ID, id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("student_deleted",
		"student_id", id,
		"owner_id", user.ID,
	)

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Student deleted successfully"})
}

// handleServiceError maps service errors to HTTP responses. Uniqueness
// conflicts are a 400, matching the external contract. A student owned
// by someone else reads as not found.
func (h *StudentHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		writeError(w, http.StatusNotFound, "STUDENT_NOT_FOUND", "Student not found")
	case errors.Is(err, service.ErrDocumentTaken):
		writeError(w, http.StatusBadRequest, "DOCUMENT_TAKEN", "A student with this identity document already exists")
	case errors.Is(err, service.ErrEmptyUpdate):
		writeError(w, http.StatusBadRequest, "EMPTY_UPDATE", "No fields to update")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
