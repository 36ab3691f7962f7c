package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"skillswap/internal/delivery/http/middleware"
	entity "skillswap/internal/domain"
	service "skillswap/internal/service/postgresql"
	utils "skillswap/pkg"
)

type AuthHandler struct {
	authService   *service.AuthService
	sessionSecret []byte
	sessionTTL    time.Duration
}

func NewAuthHandler(authService *service.AuthService, sessionSecret []byte, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		sessionSecret: sessionSecret,
		sessionTTL:    sessionTTL,
	}
}

// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entity.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if input.Email == "" || input.Password == "" || input.Language == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if _, err := h.authService.Register(input); err != nil {
		if errors.Is(err, entity.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Account with this email already exists"})
			return
		}
		logrus.WithError(err).Error("registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration successful"})
}

// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entity.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	accountID, err := h.authService.Login(input)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		logrus.WithError(err).Error("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	token, err := utils.GenerateSessionToken(accountID, h.sessionSecret, h.sessionTTL)
	if err != nil {
		logrus.WithError(err).Error("session token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.SetCookie(middleware.SessionCookieName, token, int(h.sessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "userId": accountID})
}

// GET /api/session. Reports session state, never 401.
func (h *AuthHandler) Session(c *gin.Context) {
	if accountID, ok := c.Get("account_id"); ok {
		c.JSON(http.StatusOK, entity.SessionResponse{LoggedIn: true, UserID: accountID.(int64)})
		return
	}
	c.JSON(http.StatusOK, entity.SessionResponse{LoggedIn: false})
}

// POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
