// Copyright (c) 2026 MODON Evolutio. All rights reserved.

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modonevolutio/modon/internal/platform/apperr"
	"github.com/modonevolutio/modon/internal/platform/sec"
	"github.com/modonevolutio/modon/internal/platform/validate"
	"github.com/modonevolutio/modon/internal/users/auth"
	"github.com/modonevolutio/modon/pkg/slice"
)

// # Service Layer

// Service orchestrates business logic for user profiles and back-office
// account administration.
type Service struct {
	userRepository auth.UserRepository
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(userRepo auth.UserRepository, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		logger:         logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the private identity of a user as a transport-safe view.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Profile: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*Profile, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}

	profile := NewProfile(user)
	return &profile, nil
}

// UpdateProfileInput defines the mutable subset of user profile fields.
// Nil fields are left untouched.
type UpdateProfileInput struct {
	DisplayName *string
	Phone       *string
	AvatarURL   *string
}

/*
UpdateProfile applies a partial set of changes to a user's account metadata.

Description: Fetches the existing user state, overrides provided fields, and
synchronizes the change to persistent storage.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *Profile: The updated user profile
  - error: Validation, update, or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*Profile, error) {

	validator := &validate.Validator{}
	if input.DisplayName != nil {
		validator.Required(FieldDisplayName, *input.DisplayName).MaxLen(FieldDisplayName, *input.DisplayName, 120)
	}
	if input.Phone != nil {
		validator.MaxLen(FieldPhone, *input.Phone, 40)
	}
	if input.AvatarURL != nil {
		validator.MaxLen(FieldAvatarURL, *input.AvatarURL, 2048)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	// Persist changes
	if err := service.userRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	profile := NewProfile(user)
	return &profile, nil
}

/*
DeleteAccount performs an idempotent soft-deletion of the caller's own account.

Description: Flags the account as deleted. Outstanding refresh sessions stop
working at their next rotation because the refresh path re-checks IsActive.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution failures
*/
func (service *Service) DeleteAccount(context context.Context, userID string) error {
	if err := service.userRepository.SoftDelete(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	service.logger.Warn("user_account_deleted", slog.String("user_id", userID))

	return nil
}

// # Back-office Administration

/*
ListUsers returns every account as transport-safe profiles, for the
back-office user management screen.

Parameters:
  - context: context.Context

Returns:
  - []Profile: Safety-mapped account views
  - error: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context) ([]Profile, error) {
	users, err := service.userRepository.List(context)
	if err != nil {
		return nil, fmt.Errorf("account_service_list_users_failed: %w", err)
	}

	return slice.Map(users, func(user auth.User) Profile {
		return NewProfile(&user)
	}), nil
}

// UpdateUserInput defines the account attributes staff may change.
// Nil fields are left untouched.
type UpdateUserInput struct {
	Role     *sec.Role
	IsActive *bool
}

/*
UpdateUser changes a user's role or active flag on behalf of a staff member.

Description: Staff cannot modify their own role or suspension state, which
prevents a sole administrator from locking themselves out.

Parameters:
  - context: context.Context
  - actorID: string (The staff member performing the change)
  - userID: string (The target account)
  - input: UpdateUserInput

Returns:
  - *Profile: The updated account view
  - error: Validation, authorization, or storage failures
*/
func (service *Service) UpdateUser(context context.Context, actorID, userID string, input UpdateUserInput) (*Profile, error) {
	if actorID == userID {
		return nil, apperr.Forbidden("You cannot change your own role or status")
	}

	if input.Role != nil && !input.Role.IsValid() {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldRole,
			Message: "must be one of: buyer, agent, admin, super_admin",
		})
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_admin_lookup_failed: %w", err)
	}

	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_admin_update_failed: %w", err)
	}

	service.logger.Info("user_account_updated_by_staff",
		slog.String("actor_id", actorID),
		slog.String("user_id", userID),
		slog.String("role", string(user.Role)),
		slog.Bool("is_active", user.IsActive),
	)

	profile := NewProfile(user)
	return &profile, nil
}

/*
DeleteUser soft-deletes a user account on behalf of a staff member.

Parameters:
  - context: context.Context
  - actorID: string
  - userID: string

Returns:
  - error: Authorization or execution failures
*/
func (service *Service) DeleteUser(context context.Context, actorID, userID string) error {
	if actorID == userID {
		return apperr.Forbidden("You cannot delete your own account from the back office")
	}

	if err := service.userRepository.SoftDelete(context, userID); err != nil {
		return fmt.Errorf("account_service_admin_delete_failed: %w", err)
	}

	service.logger.Warn("user_account_deleted_by_staff",
		slog.String("actor_id", actorID),
		slog.String("user_id", userID),
	)

	return nil
}
