package handler

import (
	"net/http"
	"time"

	"imovel-service/internal/model"
	"imovel-service/internal/session"
	"imovel-service/pkg/database"
	"imovel-service/pkg/jwtutil"
	"imovel-service/pkg/logger"
	"imovel-service/prometheus"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves the admin sign-in, session and sign-out endpoints
type AuthHandler struct {
	sessions *session.Store
}

// NewAuthHandler creates the auth handler backed by the given session store
func NewAuthHandler(sessions *session.Store) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login authenticates an admin and issues an access/refresh token pair
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := database.GetDB().Where("email = ?", req.Email).First(&user)
	if result.Error != nil {
		log.Error("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Error("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := jwtutil.GenerateToken(user.Email, user.ID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	refreshToken, err := h.sessions.Create(c.Request().Context(), session.Session{
		UserID: user.ID,
		Email:  user.Email,
	})
	if err != nil {
		log.Error("Failed to create session", zap.Error(err))
		prometheus.RecordAuthError("session_creation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session error"})
	}

	log.Info("User logged in", zap.String("email", user.Email))
	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  token,
		"refresh_token": refreshToken,
		"user": echo.Map{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// Session returns the identity behind the presented bearer token
func (h *AuthHandler) Session(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	email, _ := c.Get("email").(string)
	return c.JSON(http.StatusOK, echo.Map{
		"user": echo.Map{
			"id":    userID,
			"email": email,
		},
	})
}

// Refresh exchanges a valid refresh token for a new access token
func (h *AuthHandler) Refresh(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token is required"})
	}

	sess, err := h.sessions.Get(c.Request().Context(), req.RefreshToken)
	if err != nil {
		log.Warn("Unknown or expired refresh token", zap.Error(err))
		prometheus.RecordAuthError("invalid_refresh_token")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired session"})
	}

	token, err := jwtutil.GenerateToken(sess.Email, sess.UserID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"access_token": token})
}

// Logout revokes the presented refresh token
func (h *AuthHandler) Logout(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token is required"})
	}

	if err := h.sessions.Delete(c.Request().Context(), req.RefreshToken); err != nil {
		log.Error("Failed to delete session", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to sign out"})
	}

	log.Info("User logged out")
	return c.JSON(http.StatusOK, echo.Map{"message": "signed out"})
}

// SeedAdminUser creates the back-office user from configuration when it does
// not exist yet. A blank email disables seeding.
func SeedAdminUser(email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var count int64
	database.GetDB().Model(&model.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.User{
		ID:       uuid.New().String(),
		Email:    email,
		Password: string(hash),
	}
	return database.GetDB().Create(&user).Error
}
