package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"streamhaven/internal/auth"
	"streamhaven/models"
	"streamhaven/services/users"
)

type usersService interface {
	Signup(ctx context.Context, email, username, password string) (models.Account, error)
	Login(ctx context.Context, email, password string) (models.Account, error)
	Current(ctx context.Context) (models.Session, bool)
	Logout(ctx context.Context)
}

var _ usersService = (*users.Service)(nil)

type tokenSigner interface {
	Sign(accountID, email, username string) (string, error)
}

var _ tokenSigner = (*auth.TokenManager)(nil)

type AuthHandler struct {
	Users  usersService
	Tokens tokenSigner
}

func NewAuthHandler(usersSvc usersService, tokens tokenSigner) *AuthHandler {
	return &AuthHandler{Users: usersSvc, Tokens: tokens}
}

type credentialsBody struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token   string         `json:"token"`
	Account models.Session `json:"account"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	account, err := h.Users.Signup(r.Context(), body.Email, body.Username, body.Password)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, users.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, users.ErrEmailTaken):
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		return
	}
	h.respondWithToken(w, account)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	account, err := h.Users.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, users.ErrNotFound), errors.Is(err, users.ErrWrongPassword):
			// Same status for both so the response does not leak which
			// part of the credentials was wrong.
			status = http.StatusUnauthorized
		case errors.Is(err, users.ErrValidation):
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}
	h.respondWithToken(w, account)
}

// Me returns the session injected by the auth middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.GetSession(r)
	if !ok {
		http.Error(w, "no active session", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Users.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, account models.Account) {
	token, err := h.Tokens.Sign(account.ID, account.Email, account.Username)
	if err != nil {
		http.Error(w, "failed to issue session token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		Token:   token,
		Account: models.SessionFromAccount(account),
	})
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsBody, bool) {
	var body credentialsBody
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return credentialsBody{}, false
	}
	return body, true
}
