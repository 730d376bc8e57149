package httpapi

import (
	"net/http"

	"lingotutor/internal/service"

	"github.com/gin-gonic/gin"
)

type signupReq struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required"`
	TargetLanguage string `json:"target_language"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type profileReq struct {
	TargetLanguage string `json:"target_language"`
	Level          string `json:"level"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidParam, "name, a valid email and password are required")
		return
	}

	session, err := h.authService.Signup(c.Request.Context(), service.SignupInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		TargetLanguage: req.TargetLanguage,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	success(c, http.StatusCreated, newSessionView(session))
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidParam, "email and password are required")
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	success(c, http.StatusOK, newSessionView(session))
}

func (h *Handler) me(c *gin.Context) {
	success(c, http.StatusOK, newUserView(currentUser(c)))
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req profileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidParam, "invalid body")
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), currentUser(c), service.ProfileUpdate{
		TargetLanguage: req.TargetLanguage,
		Level:          req.Level,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	success(c, http.StatusOK, newUserView(user))
}
