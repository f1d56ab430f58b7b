// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

/*
Package taxonomy provides the classification vocabulary of the catalog.

Categories and genres share one shape, a display name behind a unique slug,
and one lifecycle: anyone may browse them, administrators curate them, and
entries are never edited in place, only created and deleted.

# Access Control

  - Public: Listing and search.
  - Admin: Creation and removal.
*/
package taxonomy

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndelaeva/kritika/internal/platform/middleware"
	requestutil "github.com/ndelaeva/kritika/internal/platform/request"
	"github.com/ndelaeva/kritika/internal/platform/respond"
	"github.com/ndelaeva/kritika/internal/platform/sec"
	"github.com/ndelaeva/kritika/pkg/pagination"
)

// Handler implements the HTTP layer for categories and genres.
type Handler struct {
	service *Service
}

// NewHandler constructs a new taxonomy [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with both taxonomy resources.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Route("/categories", func(categoryRoute chi.Router) {
		// Public
		categoryRoute.Get("/", handler.listCategories)

		// Admin only
		categoryRoute.With(middleware.RequireRole(sec.RoleAdmin)).Post("/", handler.createCategory)
		categoryRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{slug}", handler.deleteCategory)
	})

	router.Route("/genres", func(genreRoute chi.Router) {
		// Public
		genreRoute.Get("/", handler.listGenres)

		// Admin only
		genreRoute.With(middleware.RequireRole(sec.RoleAdmin)).Post("/", handler.createGenre)
		genreRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{slug}", handler.deleteGenre)
	})

	return router
}

/*
GET /api/v1/categories.

Request:
  - search: string (Name substring)
  - limit: int
  - page: int

Response:
  - 200: []Category: Paginated list ordered by name
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Search: request.URL.Query().Get("search"),
	}

	categories, total, err := handler.service.ListCategories(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/v1/categories.

Request (Body):
  - Category: JSON object (Slug optional, derived from name)

Response:
  - 201: Category: Created entry
  - 400: Validation failure
  - 403: Admin only
  - 409: Slug collision
*/
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input Category

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateCategory(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, input)
}

/*
DELETE /api/v1/categories/{slug}.

Response:
  - 204: No Content
  - 403: Admin only
  - 404: Unknown slug
*/
func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	if err := handler.service.DeleteCategory(request.Context(), slug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /api/v1/genres.

Request:
  - search: string (Name substring)
  - limit: int
  - page: int

Response:
  - 200: []Genre: Paginated list ordered by name
*/
func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Search: request.URL.Query().Get("search"),
	}

	genres, total, err := handler.service.ListGenres(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, genres, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/v1/genres.

Request (Body):
  - Genre: JSON object (Slug optional, derived from name)

Response:
  - 201: Genre: Created entry
  - 400: Validation failure
  - 403: Admin only
  - 409: Slug collision
*/
func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var input Genre

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateGenre(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, input)
}

/*
DELETE /api/v1/genres/{slug}.

Response:
  - 204: No Content
  - 403: Admin only
  - 404: Unknown slug
*/
func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	if err := handler.service.DeleteGenre(request.Context(), slug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
