// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"

	"github.com/taibuivan/velora/internal/platform/api"
	"github.com/taibuivan/velora/internal/platform/apperr"
	"github.com/taibuivan/velora/internal/platform/validate"
	"github.com/taibuivan/velora/internal/users/session"
	"github.com/taibuivan/velora/pkg/pointer"
)

// # Service Layer

// Service exposes profile reads and partial updates.
type Service struct {
	apiClient *api.Client
	sessions  *session.Manager
}

// NewService constructs an account [Service].
func NewService(apiClient *api.Client, sessions *session.Manager) *Service {
	return &Service{apiClient: apiClient, sessions: sessions}
}

// # Profile Management

/*
Profile retrieves the authenticated user's profile.

Parameters:
  - context: context.Context

Returns:
  - *session.User: The hydrated profile
  - error: Guard or request failures
*/
func (service *Service) Profile(context context.Context) (*session.User, error) {
	if !service.sessions.IsAuthenticated() {
		return nil, apperr.Guard("view your profile")
	}

	var user session.User
	if err := service.apiClient.Get(context, api.Prefix+"/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfileInput defines the mutable subset of profile fields. Nil
// pointers are omitted from the request entirely — "not provided" and
// "set to empty" are different statements to the API.
type UpdateProfileInput struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

/*
UpdateProfile applies a partial set of changes to the profile.

Parameters:
  - context: context.Context
  - input: UpdateProfileInput

Returns:
  - *session.User: The updated profile as the server now sees it
  - error: Guard, validation, or request failures
*/
func (service *Service) UpdateProfile(context context.Context, input UpdateProfileInput) (*session.User, error) {
	if !service.sessions.IsAuthenticated() {
		return nil, apperr.Guard("update your profile")
	}

	validator := &validate.Validator{}
	if input.FirstName != nil {
		validator.Required(FieldFirstName, pointer.Val(input.FirstName)).
			MaxLen(FieldFirstName, pointer.Val(input.FirstName), MaxNameLength)
	}
	if input.LastName != nil {
		validator.Required(FieldLastName, pointer.Val(input.LastName)).
			MaxLen(FieldLastName, pointer.Val(input.LastName), MaxNameLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var user session.User
	if err := service.apiClient.Put(context, api.Prefix+"/users/me", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
