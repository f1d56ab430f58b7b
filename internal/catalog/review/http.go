// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

/*
Package review provides reviews and their comment threads, nested under
titles in the URL space.

# Access Control

  - Public: Reading reviews and comments.
  - Authenticated: Creating reviews and comments.
  - Author or Moderator: Editing and removing existing content.
*/
package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndelaeva/kritika/internal/platform/middleware"
	requestutil "github.com/ndelaeva/kritika/internal/platform/request"
	"github.com/ndelaeva/kritika/internal/platform/respond"
	"github.com/ndelaeva/kritika/pkg/pagination"
)

// Handler implements the HTTP layer for reviews and comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a new review [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for mounting under /titles/{titleID}/reviews.
// The titleID parameter is owned by the parent route.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public
	router.Get("/", handler.listReviews)
	router.Get("/{reviewID}", handler.getReview)
	router.Get("/{reviewID}/comments", handler.listComments)
	router.Get("/{reviewID}/comments/{commentID}", handler.getComment)

	// Authenticated. Ownership checks live in the service layer.
	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Post("/", handler.createReview)
		authRoute.Patch("/{reviewID}", handler.updateReview)
		authRoute.Delete("/{reviewID}", handler.deleteReview)

		authRoute.Post("/{reviewID}/comments", handler.createComment)
		authRoute.Patch("/{reviewID}/comments/{commentID}", handler.updateComment)
		authRoute.Delete("/{reviewID}/comments/{commentID}", handler.deleteComment)
	})

	return router
}

// reviewScope extracts the nested title and review identifiers.
func reviewScope(request *http.Request) (titleID, reviewID int64, err error) {
	if titleID, err = requestutil.IntParam(request, "titleID"); err != nil {
		return 0, 0, err
	}
	if reviewID, err = requestutil.IntParam(request, "reviewID"); err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

// # Review Endpoints

/*
GET /api/v1/titles/{titleID}/reviews.

Request:
  - limit: int
  - page: int

Response:
  - 200: []Review: Paginated list, newest first
  - 404: Unknown title
*/
func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	reviews, total, err := handler.service.ListReviews(request.Context(), titleID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/titles/{titleID}/reviews/{reviewID}.

Response:
  - 200: Review: Hydrated review
  - 404: Unknown title or review
*/
func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GetReview(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
POST /api/v1/titles/{titleID}/reviews.

Request (Body):
  - ReviewInput: JSON object (Score between 1 and 10)

Response:
  - 201: Review: Created review
  - 400: Validation failure
  - 401: Authentication required
  - 404: Unknown title
  - 409: Caller already reviewed this title
*/
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ReviewInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.CreateReview(request.Context(), titleID, claims, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

/*
PATCH /api/v1/titles/{titleID}/reviews/{reviewID}.

Request (Body):
  - ReviewPatch: Partial JSON

Response:
  - 200: Review: Updated review
  - 400: Validation failure
  - 401: Authentication required
  - 403: Neither author nor moderator
  - 404: Unknown title or review
*/
func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch ReviewPatch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.UpdateReview(request.Context(), titleID, reviewID, claims, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
DELETE /api/v1/titles/{titleID}/reviews/{reviewID}.

Response:
  - 204: No Content
  - 401: Authentication required
  - 403: Neither author nor moderator
  - 404: Unknown title or review
*/
func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReview(request.Context(), titleID, reviewID, claims); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Comment Endpoints

/*
GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments.

Request:
  - limit: int
  - page: int

Response:
  - 200: []Comment: Paginated list, oldest first
  - 404: Unknown title or review
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	comments, total, err := handler.service.ListComments(request.Context(), titleID, reviewID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}.

Response:
  - 200: Comment: Hydrated comment
  - 404: Unknown resource anywhere along the chain
*/
func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.IntParam(request, "commentID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GetComment(request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
POST /api/v1/titles/{titleID}/reviews/{reviewID}/comments.

Request (Body):
  - CommentInput: JSON object

Response:
  - 201: Comment: Created comment
  - 400: Validation failure
  - 401: Authentication required
  - 404: Unknown title or review
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CommentInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.CreateComment(request.Context(), titleID, reviewID, claims, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

/*
PATCH /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}.

Request (Body):
  - CommentInput: JSON object

Response:
  - 200: Comment: Updated comment
  - 400: Validation failure
  - 401: Authentication required
  - 403: Neither author nor moderator
  - 404: Unknown resource anywhere along the chain
*/
func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.IntParam(request, "commentID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CommentInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.UpdateComment(request.Context(), titleID, reviewID, commentID, claims, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
DELETE /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}.

Response:
  - 204: No Content
  - 401: Authentication required
  - 403: Neither author nor moderator
  - 404: Unknown resource anywhere along the chain
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.IntParam(request, "commentID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), titleID, reviewID, commentID, claims); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
