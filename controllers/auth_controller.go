package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"hotel-frontdesk/middleware"
	"hotel-frontdesk/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload"})
		return
	}

	username := strings.TrimSpace(payload.Username)
	if username == "" || payload.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Username and password required."})
		return
	}

	session, staff, err := ac.Auth.Login(username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid credentials."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Login failed."})
		return
	}

	maxAge := 0
	if session.ExpiresAt != nil {
		maxAge = int(time.Until(*session.ExpiresAt).Seconds())
	}
	c.SetCookie(middleware.SessionCookieName, session.Token, maxAge, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
		"staff": gin.H{
			"id":        staff.ID,
			"full_name": staff.FullName,
			"username":  staff.Username,
		},
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	session := middleware.SessionFrom(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Login required."})
		return
	}

	if err := ac.Auth.Logout(session.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Logout failed."})
		return
	}

	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Logged out."})
}
