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

// PersonHandler handles HTTP requests for person records.
type PersonHandler struct {
	svc      *service.PersonService
	logger   *slog.Logger
	validate *validator.Validate
}

// NewPersonHandler creates a new PersonHandler.
func NewPersonHandler(svc *service.PersonService, logger *slog.Logger) *PersonHandler {
	return &PersonHandler{
		svc:      svc,
		logger:   logger,
		validate: validator.New(),
	}
}

// Create handles POST /api/v1/persons.
func (h *PersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.CreatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	person, err := h.svc.CreatePerson(r.Context(), user.ID, service.CreatePersonInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		Phone:          req.Phone,
		Address:        req.Address,
		Neighborhood:   req.Neighborhood,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("person_created",
		"person_id", person.ID,
		"owner_id", user.ID,
	)

	writeJSON(w, http.StatusCreated, dto.CreatedResponse{
		Message: "Person added successfully",
		ID:      person.ID,
	})
}

// Get handles GET /api/v1/persons/{id}.
func (h *PersonHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	person, err := h.svc.GetPerson(r.Context(), user.ID, id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]dto.PersonResponse{
		"person": dto.ToPersonResponse(person),
	})
}

// Delete handles DELETE /api/v1/persons/{id}.
func (h *PersonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.svc.DeletePerson(r.Context(), user.ID, id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("person_deleted",
		"person_id", id,
		"owner_id", user.ID,
	)

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Person deleted successfully"})
}

func (h *PersonHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPersonNotFound):
		writeError(w, http.StatusNotFound, "PERSON_NOT_FOUND", "Person not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
