package handlers

import (
	"errors"
	"net/http"

	"github.com/osokin/authgate/internal/apperrors"
	"github.com/osokin/authgate/internal/handlers/authctx"
	"github.com/osokin/authgate/internal/handlers/render"
)

// handleSignin registers a new user with the default role
func handleSignin(userService UserService) http.Handler {
	type signinRequest struct {
		Username string `json:"username" validate:"required"`
		Nickname string `json:"nickname" validate:"required,min=2,max=50"`
		Password string `json:"password" validate:"required,min=4"`
	}
	type signinResponse struct {
		Username    string   `json:"username"`
		Nickname    string   `json:"nickname"`
		Authorities []string `json:"authorities"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := render.BindAndValidate[signinRequest](w, r)
		if err != nil {
			return
		}

		user, err := userService.Register(r.Context(), req.Username, req.Nickname, req.Password)
		if err != nil {
			renderUserError(w, err)
			return
		}

		render.JSONStatus(w, signinResponse{
			Username:    user.Username,
			Nickname:    user.Nickname,
			Authorities: user.Roles,
		}, http.StatusCreated)
	})
}

// handleUserInfo returns the profile behind the request's identity
func handleUserInfo(userService UserService) http.Handler {
	type userInfoResponse struct {
		Username string `json:"username"`
		Nickname string `json:"nickname"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := authctx.FromContext(r.Context())
		if !ok {
			// unreachable behind the authorization interceptor
			render.Error(w, apperrors.ErrTokenNotFound)
			return
		}

		user, err := userService.GetByNickname(r.Context(), identity.Nickname)
		if err != nil {
			renderUserError(w, err)
			return
		}

		render.JSON(w, userInfoResponse{Username: user.Username, Nickname: user.Nickname})
	})
}

func renderUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUserAlreadyExists):
		render.Error(w, apperrors.ErrUserAlreadyExists)
	case errors.Is(err, apperrors.ErrUserNotFound):
		render.Error(w, apperrors.ErrUserNotFound)
	default:
		render.Error(w, apperrors.ErrInternal)
	}
}
