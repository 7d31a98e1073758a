package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/opennote-dev/opennote/internal/common"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	TokenExpireAt int64 `json:"token_expire_at"`
}

type whoamiResponse struct {
	Username string `json:"username"`
}

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, codeValidationError)
		return
	}

	_, err := s.users.Register(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusCreated)
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrUsernameTaken):
		writeErrorCode(w, http.StatusBadRequest, codeValidationError)
	case errors.Is(err, common.ErrorAlreadyExists):
		writeErrorCode(w, http.StatusBadRequest, codeWriteError)
	default:
		s.logger.Error(r.Context(), "register failed", "error", err.Error())
		internalError(w)
	}
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		forbidden(w)
		return
	}

	issued, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			forbidden(w)
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		internalError(w)
		return
	}

	setAuthCookie(w, issued)
	writeJSON(w, http.StatusCreated, tokenResponse{TokenExpireAt: issued.ExpireAt})
}

func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	token, ok := TokenFromContext(r.Context())
	if !ok {
		forbidden(w)
		return
	}

	issued, err := s.users.Refresh(r.Context(), token)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) || errors.Is(err, common.ErrRefreshTokenExpired) {
			forbidden(w)
			return
		}
		s.logger.Error(r.Context(), "refresh failed", "error", err.Error())
		internalError(w)
		return
	}

	setAuthCookie(w, issued)
	writeJSON(w, http.StatusCreated, tokenResponse{TokenExpireAt: issued.ExpireAt})
}

func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	token, ok := TokenFromContext(r.Context())
	if !ok {
		forbidden(w)
		return
	}

	if err := s.users.Logout(r.Context(), token); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			forbidden(w)
			return
		}
		s.logger.Error(r.Context(), "logout failed", "error", err.Error())
		internalError(w)
		return
	}

	clearAuthCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) whoamiHandler(w http.ResponseWriter, r *http.Request) {
	token, ok := TokenFromContext(r.Context())
	if !ok {
		forbidden(w)
		return
	}

	user, err := s.users.Whoami(r.Context(), token)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			forbidden(w)
			return
		}
		s.logger.Error(r.Context(), "whoami failed", "error", err.Error())
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, whoamiResponse{Username: user.Username})
}
