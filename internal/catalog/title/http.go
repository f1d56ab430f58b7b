// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

/*
Package title provides the HTTP interface for the reviewable catalog.

Each title links one optional category with any number of genres and
carries a derived rating, the rounded mean of its review scores.

# Access Control

  - Public: Listing, filtering and detail retrieval.
  - Admin: Creation, modification and removal.
*/
package title

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ndelaeva/kritika/internal/platform/apperr"
	"github.com/ndelaeva/kritika/internal/platform/middleware"
	requestutil "github.com/ndelaeva/kritika/internal/platform/request"
	"github.com/ndelaeva/kritika/internal/platform/respond"
	"github.com/ndelaeva/kritika/internal/platform/sec"
	"github.com/ndelaeva/kritika/pkg/pagination"
)

// Handler implements the HTTP layer for titles.
type Handler struct {
	service *Service
}

// NewHandler constructs a new title [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the title endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public
	router.Get("/", handler.list)
	router.Get("/{titleID}", handler.get)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.create)
		adminRoute.Patch("/{titleID}", handler.update)
		adminRoute.Delete("/{titleID}", handler.delete)
	})

	return router
}

/*
GET /api/v1/titles.

Description: Provides the public catalog listing. All filters combine with
AND; each result carries its category, genres and current rating.

Request:
  - category: string (Exact category slug)
  - genre: string (Exact genre slug)
  - name: string (Name substring)
  - year: int (Exact release year)
  - limit: int
  - page: int

Response:
  - 200: []Title: Paginated list
  - 400: Malformed year filter
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{
		CategorySlug: query.Get("category"),
		GenreSlug:    query.Get("genre"),
		Name:         query.Get("name"),
	}

	if rawYear := query.Get("year"); rawYear != "" {
		year, err := strconv.Atoi(rawYear)
		if err != nil {
			respond.Error(writer, request, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   FieldYear,
				Message: "Must be an integer",
			}))
			return
		}
		filter.Year = &year
	}

	titles, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/titles/{titleID}.

Response:
  - 200: Title: Hydrated title with rating
  - 404: Unknown title
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Get(request.Context(), titleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
POST /api/v1/titles.

Request (Body):
  - CreateInput: JSON object (Taxonomy referenced by slug)

Response:
  - 201: Title: Created title
  - 400: Validation failure or unknown taxonomy slug
  - 403: Admin only
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

/*
PATCH /api/v1/titles/{titleID}.

Request:
  - titleID: int64
  - body: UpdateInput (Partial JSON; a genre list replaces the whole set)

Response:
  - 200: Title: Updated title
  - 400: Validation failure
  - 403: Admin only
  - 404: Unknown title
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Update(request.Context(), titleID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
DELETE /api/v1/titles/{titleID}.

Response:
  - 204: No Content
  - 403: Admin only
  - 404: Unknown title
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), titleID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
