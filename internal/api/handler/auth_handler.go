package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"crm-admin/internal/api/handler/dto"
	"crm-admin/internal/config"
	"crm-admin/internal/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 12 * time.Hour

// dummyHash is compared against when the username is unknown so both paths cost one bcrypt run.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

type AuthHandler struct {
	cfg    config.AuthConfig
	users  map[string][]byte
	now    func() time.Time
	logger *slog.Logger
}

func NewAuthHandler(cfg config.AuthConfig, l *slog.Logger) *AuthHandler {
	users := make(map[string][]byte, len(cfg.Users))
	for _, u := range cfg.Users {
		users[u.Username] = []byte(u.PasswordHash)
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	return &AuthHandler{
		cfg:    cfg,
		users:  users,
		now:    time.Now,
		logger: l.With("component", "AuthHandler"),
	}
}

func (h *AuthHandler) checkCredentials(username, password string) bool {
	hash, ok := h.users[username]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

// GenerateBearerToken exchanges admin credentials for a signed JWT.
//
// @Summary Issue an admin bearer token
// @Description Verifies a back-office username and password and returns an HS256 JWT.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Admin credentials"
// @Success 200 {object} dto.TokenResponse "Token successfully generated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/token [post]
func (h *AuthHandler) GenerateBearerToken(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Invalid token request", slog.Any("error", err))
		respondError(w, err)
		return
	}

	if !h.checkCredentials(req.Username, req.Password) {
		h.logger.WarnContext(r.Context(), "Rejected login", slog.String("username", req.Username))
		respondError(w, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized))
		return
	}

	now := h.now()
	expiresAt := now.Add(h.cfg.TokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   req.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to sign token", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: failed to sign token", apperrors.ErrInternalServer))
		return
	}

	h.logger.InfoContext(r.Context(), "Issued bearer token", slog.String("username", req.Username))
	respondJSON(w, http.StatusOK, dto.TokenResponse{Token: "Bearer " + tokenString, ExpiresAt: expiresAt})
}
