package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollcall/rollcall/internal/model"
	"github.com/rollcall/rollcall/internal/service"
)

func newPersonRouter(store *memPersonStore, user *model.User) http.Handler {
	h := NewPersonHandler(service.NewPersonService(store, nil), discardLogger())

	r := chi.NewRouter()
	r.Use(withUser(user))
	r.Post("/persons", h.Create)
	r.Get("/persons/{id}", h.Get)
	r.Delete("/persons/{id}", h.Delete)
	return r
}

const createPersonBody = `{
	"first_name": "Carla",
	"last_name": "Diaz",
	"document_type": "CC",
	"document_number": "555",
	"phone": "3001112233",
	"address": "Calle 1",
	"neighborhood": "Centro"
}`

func TestPersonCreateAndGet(t *testing.T) {
	t.Parallel()

	store := newMemPersonStore()
	router := newPersonRouter(store, testUser("owner-a"))

	rec := serve(router, http.MethodPost, "/persons", createPersonBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Person added successfully", body["message"])
	id := body["id"].(string)
	require.NotEmpty(t, id)

	rec = serve(router, http.MethodGet, "/persons/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Person struct {
			FirstName      string `json:"first_name"`
			DocumentType   string `json:"document_type"`
			DocumentNumber string `json:"document_number"`
			Phone          string `json:"phone"`
			Neighborhood   string `json:"neighborhood"`
		} `json:"person"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Carla", got.Person.FirstName)
	assert.Equal(t, "CC", got.Person.DocumentType)
	assert.Equal(t, "555", got.Person.DocumentNumber)
	assert.Equal(t, "3001112233", got.Person.Phone)
	assert.Equal(t, "Centro", got.Person.Neighborhood)
}

func TestPersonCreate_Validation(t *testing.T) {
	t.Parallel()

	router := newPersonRouter(newMemPersonStore(), testUser("owner-a"))

	rec := serve(router, http.MethodPost, "/persons",
		`{"first_name":"Carla"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "VALIDATION_FAILED", body["code"])
}

func TestPersonGet_CrossOwner(t *testing.T) {
	t.Parallel()

	store := newMemPersonStore()
	routerA := newPersonRouter(store, testUser("owner-a"))
	routerB := newPersonRouter(store, testUser("owner-b"))

	rec := serve(routerA, http.MethodPost, "/persons", createPersonBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody(t, rec)["id"].(string)

	rec = serve(routerB, http.MethodGet, "/persons/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "PERSON_NOT_FOUND", body["code"])
}

func TestPersonDelete(t *testing.T) {
	t.Parallel()

	store := newMemPersonStore()
	router := newPersonRouter(store, testUser("owner-a"))

	rec := serve(router, http.MethodPost, "/persons", createPersonBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody(t, rec)["id"].(string)

	rec = serve(router, http.MethodDelete, "/persons/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Person deleted successfully", decodeBody(t, rec)["message"])

	rec = serve(router, http.MethodGet, "/persons/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
