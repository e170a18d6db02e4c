package handlers

import (
	"github.com/gin-gonic/gin"

	"campushub/internal/models"
)

// Signup creates an account and logs the caller in.
// POST /api/auth/register
func (h *Handlers) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	resp, err := h.services.Auth.Signup(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, resp)
}

// Login verifies credentials and issues a token.
// POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	resp, err := h.services.Auth.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

// GetProfile returns the caller's profile.
// GET /api/auth/profile
func (h *Handlers) GetProfile(c *gin.Context) {
	userID, _ := currentUser(c)
	user, err := h.services.Auth.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, user)
}

// UpdateProfile changes the caller's name or password.
// PUT /api/auth/profile
func (h *Handlers) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	userID, _ := currentUser(c)
	user, err := h.services.Auth.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, user)
}
