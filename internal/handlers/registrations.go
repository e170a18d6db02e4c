package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campushub/internal/models"
)

// Register signs the caller up for an event.
// POST /api/register
func (h *Handlers) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	userID, _ := currentUser(c)
	reg, err := h.services.Registrations.Register(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, models.RegisterResponse{RegistrationID: reg.ID})
}

// CancelRegistration withdraws a registration.
// DELETE /api/registrations/:id
func (h *Handlers) CancelRegistration(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid registration id")
		return
	}

	userID, role := currentUser(c)
	if err := h.services.Registrations.Cancel(c.Request.Context(), id, userID, role); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Registration cancelled")
}

// ConfirmRegistration approves a pending team registration.
// PUT /api/registrations/:id/confirm
func (h *Handlers) ConfirmRegistration(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid registration id")
		return
	}

	userID, role := currentUser(c)
	if err := h.services.Registrations.Confirm(c.Request.Context(), id, userID, role); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Registration confirmed")
}

// MyRegistrations returns the caller's active registrations.
// GET /api/registrations/my
func (h *Handlers) MyRegistrations(c *gin.Context) {
	userID, _ := currentUser(c)
	regs, err := h.services.Registrations.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if regs == nil {
		regs = []models.Registration{}
	}
	respondOK(c, regs)
}

// ExportParticipants downloads the participant list as CSV.
// GET /api/events/:slug/export-participants
func (h *Handlers) ExportParticipants(c *gin.Context) {
	userID, role := currentUser(c)
	filename, csv, err := h.services.Registrations.ExportParticipantsCSV(
		c.Request.Context(), c.Param("slug"), userID, role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", csv)
}
