package httpserver

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/authservice/internal/dbx"
	"github.com/dmitrijs2005/authservice/internal/server/services"
)

type signupResponse struct {
	Email string `json:"email"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type changePasswordResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type meResponse struct {
	Email          string     `json:"email"`
	LastLoginDate  *time.Time `json:"last_login_date"`
	LastActiveDate *time.Time `json:"last_active_date"`
}

func newTokenResponse(p *services.TokenPair) tokenResponse {
	return tokenResponse{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken, TokenType: p.TokenType}
}

func (s *HTTPServer) ping(r *http.Request) (int, any, error) {
	return http.StatusOK, map[string]string{"status": "ok"}, nil
}

func (s *HTTPServer) signup(r *http.Request, tx dbx.DBTX) (int, any, error) {
	var req credentialsRequest
	if err := decodeRequest(r, &req); err != nil {
		return 0, nil, err
	}

	user, err := s.users.Signup(r.Context(), tx, req.Email, req.Password)
	if err != nil {
		return 0, nil, err
	}

	return http.StatusCreated, signupResponse{Email: user.Email}, nil
}

func (s *HTTPServer) login(r *http.Request, tx dbx.DBTX) (int, any, error) {
	var req credentialsRequest
	if err := decodeRequest(r, &req); err != nil {
		return 0, nil, err
	}

	pair, err := s.users.Login(r.Context(), tx, req.Email, req.Password)
	if err != nil {
		return 0, nil, err
	}

	return http.StatusOK, newTokenResponse(pair), nil
}

func (s *HTTPServer) refresh(r *http.Request) (int, any, error) {
	var req refreshRequest
	if err := decodeRequest(r, &req); err != nil {
		return 0, nil, err
	}

	pair, err := s.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		return 0, nil, err
	}

	return http.StatusOK, newTokenResponse(pair), nil
}

func (s *HTTPServer) changePassword(r *http.Request, tx dbx.DBTX) (int, any, error) {
	user, err := s.gate.CurrentActiveUser(r.Context(), tx, accessTokenFrom(r.Context()))
	if err != nil {
		return 0, nil, err
	}

	var req changePasswordRequest
	if err := decodeRequest(r, &req); err != nil {
		return 0, nil, err
	}

	if err := s.users.ChangePassword(r.Context(), tx, user, req.OldPassword, req.NewPassword); err != nil {
		return 0, nil, err
	}

	return http.StatusOK, changePasswordResponse{Success: true, Message: "Password changed successfully."}, nil
}

func (s *HTTPServer) me(r *http.Request, tx dbx.DBTX) (int, any, error) {
	user, err := s.gate.CurrentActiveUser(r.Context(), tx, accessTokenFrom(r.Context()))
	if err != nil {
		return 0, nil, err
	}

	return http.StatusOK, meResponse{
		Email:          user.Email,
		LastLoginDate:  user.LastLoginDate,
		LastActiveDate: user.LastActiveDate,
	}, nil
}
