// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndelaeva/kritika/internal/platform/middleware"
	requestutil "github.com/ndelaeva/kritika/internal/platform/request"
	"github.com/ndelaeva/kritika/internal/platform/respond"
	"github.com/ndelaeva/kritika/internal/platform/sec"
	"github.com/ndelaeva/kritika/pkg/pagination"
)

// Handler implements the HTTP layer for account administration.
type Handler struct {
	service *Service
}

// NewHandler constructs a new account [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the account endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Self-service profile. Any authenticated principal.
	router.Group(func(selfRoute chi.Router) {
		selfRoute.Use(middleware.RequireAuth)

		selfRoute.Get("/me", handler.getSelf)
		selfRoute.Patch("/me", handler.updateSelf)
	})

	// Administrative CRUD
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Get("/", handler.list)
		adminRoute.Post("/", handler.create)
		adminRoute.Get("/{username}", handler.get)
		adminRoute.Patch("/{username}", handler.update)
		adminRoute.Delete("/{username}", handler.delete)
	})

	return router
}

/*
GET /api/v1/users.

Description: Provides a paginated administrative listing of accounts with an
optional case-insensitive username search.

Request:
  - search: string (Username substring)
  - limit: int
  - page: int

Response:
  - 200: []User: Paginated list
  - 401: Authentication required
  - 403: Admin only
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Search: request.URL.Query().Get("search"),
	}

	users, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/v1/users.

Description: Provisions an account manually with all profile fields, the
role included.

Request (Body):
  - CreateInput: JSON object

Response:
  - 201: User: Created account
  - 400: Validation failure
  - 403: Admin only
  - 409: Username or email collision
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
GET /api/v1/users/{username}.

Response:
  - 200: User: Target account
  - 403: Admin only
  - 404: Unknown username
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	user, err := handler.service.Get(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/{username}.

Description: Applies a partial administrative update. Role changes are
permitted here and only here.

Request:
  - username: string
  - body: UpdateInput (Partial JSON)

Response:
  - 200: User: Updated account
  - 400: Validation failure
  - 403: Admin only
  - 404: Unknown username
  - 409: Email collision
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Update(request.Context(), username, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/users/{username}.

Response:
  - 204: No Content
  - 403: Admin only
  - 404: Unknown username
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	if err := handler.service.Delete(request.Context(), username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /api/v1/users/me.

Description: Returns the authenticated caller's own profile. The identity
comes from the verified token, never from the path.

Response:
  - 200: User: Caller profile
  - 401: Authentication required
*/
func (handler *Handler) getSelf(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetSelf(request.Context(), claims.Username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/me.

Description: Updates the caller's own profile. A role field in the payload
is ignored.

Request (Body):
  - UpdateInput: Partial JSON

Response:
  - 200: User: Updated profile
  - 400: Validation failure
  - 401: Authentication required
*/
func (handler *Handler) updateSelf(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateSelf(request.Context(), claims.Username, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
