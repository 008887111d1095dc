// Copyright (c) 2026 MODON Evolutio. All rights reserved.

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/modonevolutio/modon/internal/platform/middleware"
	requestutil "github.com/modonevolutio/modon/internal/platform/request"
	"github.com/modonevolutio/modon/internal/platform/respond"
	"github.com/modonevolutio/modon/internal/platform/sec"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Self-service profile
	router.Group(func(router chi.Router) {
		router.Use(middleware.RequireAuth)

		router.Get("/me", handler.getMe)
		router.Patch("/me", handler.updateMe)
		router.Delete("/me", handler.deleteMe)
	})

	// Back-office user administration
	router.Route("/admin", func(router chi.Router) {
		router.Use(middleware.RequirePermission(sec.PermUsersManage))

		router.Get("/", handler.listUsers)
		router.Patch("/{id}", handler.updateUser)
		router.Delete("/{id}", handler.deleteUser)
	})

	return router
}

// # Self-service Endpoints

/*
GET /api/v1/users/me.

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: Profile: Fully hydrated user profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

// updateMeRequest defines the expected JSON payload for profile updates.
type updateMeRequest struct {
	DisplayName *string `json:"name"`
	Phone       *string `json:"phone"`
	AvatarURL   *string `json:"avatar_url"`
}

/*
PATCH /api/v1/users/me.

Description: Applies partial updates to the authenticated user's profile.

Request:
  - body: updateMeRequest (Partial JSON)

Response:
  - 200: Profile: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		DisplayName: input.DisplayName,
		Phone:       input.Phone,
		AvatarURL:   input.AvatarURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
DELETE /api/v1/users/me.

Description: Performs a soft-deletion of the authenticated user's account.

Response:
  - 204: No Content: Account deleted successfully
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) deleteMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteAccount(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Back-office Endpoints

/*
GET /api/v1/users/admin.

Description: Lists every account for the back-office user management screen.

Response:
  - 200: []Profile: Safety-mapped account views
  - 403: ErrForbidden: Missing the users manage permission
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	profiles, err := handler.accountService.ListUsers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profiles)
}

// adminUpdateRequest defines the account attributes staff may change.
type adminUpdateRequest struct {
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

/*
PATCH /api/v1/users/admin/{id}.

Description: Changes a user's role or suspension state. Staff cannot target
their own account.

Request:
  - id: string (UUID)
  - body: adminUpdateRequest (Partial JSON)

Response:
  - 200: Profile: The updated account view
  - 400: Validation: Unknown role value
  - 403: ErrForbidden: Self-targeting or missing permission
  - 404: ErrNotFound: Unknown account
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input adminUpdateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updateInput := UpdateUserInput{IsActive: input.IsActive}
	if input.Role != nil {
		role := sec.Role(*input.Role)
		updateInput.Role = &role
	}

	profile, err := handler.accountService.UpdateUser(request.Context(), actorID, requestutil.ID(request, "id"), updateInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
DELETE /api/v1/users/admin/{id}.

Description: Soft-deletes a user account. Staff cannot target their own
account.

Request:
  - id: string (UUID)

Response:
  - 204: No Content: Account deleted successfully
  - 403: ErrForbidden: Self-targeting or missing permission
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteUser(request.Context(), actorID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
