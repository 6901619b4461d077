package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const tokenTTL = 24 * time.Hour

// EmailChecker reports whether an address can plausibly receive mail.
type EmailChecker interface {
	Valid(ctx context.Context, email string) bool
}

type AuthHandler struct {
	users  user.Repository
	secret string
	emails EmailChecker
	log    *zap.Logger
}

// NewAuthHandler builds the register/login handler. A nil checker skips
// the email domain lookup.
func NewAuthHandler(
	users user.Repository,
	secret string,
	emails EmailChecker,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{users: users, secret: secret, emails: emails, log: log}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = user.RolePatient
	}
	if !user.ValidRole(role) {
		writeError(c, h.log, user.ErrInvalidRole)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if h.emails != nil && !h.emails.Valid(c.Request.Context(), email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain cannot receive mail.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not store the password.")
		return
	}

	u := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}

	if err := h.users.CreateUser(c.Request.Context(), &u); err != nil {
		writeError(c, h.log, err)
		return
	}

	token, err := h.generateToken(&u)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue a token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  userJSON(&u),
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := h.users.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
			return
		}
		writeError(c, h.log, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	token, err := h.generateToken(u)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue a token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  userJSON(u),
		"token": token,
	})
}

func userJSON(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(u *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"role":  u.Role,
		"exp":   time.Now().Add(tokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.secret))
}
