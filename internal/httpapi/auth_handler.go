package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/taskforge/scheduler/internal/auth"
)

// AuthHandler coordinates signup/login/logout, in the shape of the
// teacher's handlers.AuthHandler.
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler builds an AuthHandler.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Username       string `json:"username" binding:"required,min=3,max=50"`
		Password       string `json:"password" binding:"required"`
		SchedulingZone string `json:"scheduling_zone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := h.svc.Signup(c.Request.Context(), auth.SignupInput{
		Username:       req.Username,
		Password:       req.Password,
		SchedulingZone: req.SchedulingZone,
	})
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserDTO(*user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := h.svc.Login(c.Request.Context(), auth.LoginInput{Username: req.Username, Password: req.Password})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			unauthorized(c, err.Error())
			return
		}
		WriteError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID.String())
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, APIError{Kind: "INTERNAL_ERROR", Message: "failed to save session"})
		return
	}
	c.JSON(http.StatusOK, toUserDTO(*user))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, APIError{Kind: "INTERNAL_ERROR", Message: "failed to clear session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
