package backend

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/relabs-tech/catalog/core/credentials"
	"github.com/relabs-tech/catalog/core/csql"
	"github.com/relabs-tech/catalog/core/logger"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// readCredentials reads and validates the signup/login request body.
func (b *Backend) readCredentials(r *http.Request) (*credentialsRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if err := b.validator.ValidateString(string(body), "credentials"); err != nil {
		return nil, err
	}
	request := credentialsRequest{}
	if err := json.Unmarshal(body, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

func (b *Backend) signup(w http.ResponseWriter, r *http.Request) {
	rlog := logger.FromContext(r.Context())

	request, err := b.readCredentials(r)
	if err != nil {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	hash, err := credentials.HashPassword(request.Password)
	if err != nil {
		rlog.WithError(err).Errorln("cannot hash password")
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	user, err := b.users.Create(r.Context(), request.Username, hash)
	if errors.Is(err, credentials.ErrDuplicateUsername) {
		http.Error(w, "Username already exists", http.StatusConflict)
		return
	}
	if err != nil {
		rlog.WithError(err).Errorln("cannot create user")
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	token, err := b.tokens.Issue(user.UserID, user.Username)
	if err != nil {
		rlog.WithError(err).Errorln("cannot issue token")
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	rlog.Infoln("created user", user.Username)
	writeJSON(w, http.StatusCreated, tokenResponse{Message: "User created successfully", Token: token})
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	rlog := logger.FromContext(r.Context())

	request, err := b.readCredentials(r)
	if err != nil {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	// fetch-then-compare, the response never reveals which part was wrong
	user, err := b.users.FindByUsername(r.Context(), request.Username)
	if errors.Is(err, csql.ErrNoRows) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		rlog.WithError(err).Errorln("cannot query user")
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	if !credentials.CompareHashAndPassword(user.PasswordHash, request.Password) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := b.tokens.Issue(user.UserID, user.Username)
	if err != nil {
		rlog.WithError(err).Errorln("cannot issue token")
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Message: "Login successful", Token: token})
}
