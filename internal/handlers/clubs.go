package handlers

import (
	"github.com/gin-gonic/gin"

	"campushub/internal/models"
)

// ListClubs returns the club directory, optionally by category.
// GET /api/clubs?category=
func (h *Handlers) ListClubs(c *gin.Context) {
	clubs, err := h.services.Clubs.List(c.Request.Context(), c.DefaultQuery("category", "all"))
	if err != nil {
		respondError(c, err)
		return
	}
	if clubs == nil {
		clubs = []models.Club{}
	}
	respondOK(c, clubs)
}

// GetClub returns one club by slug.
// GET /api/clubs/:slug
func (h *Handlers) GetClub(c *gin.Context) {
	club, err := h.services.Clubs.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, club)
}

// CreateClub adds a club directory entry.
// POST /api/clubs
func (h *Handlers) CreateClub(c *gin.Context) {
	var req models.CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	club, err := h.services.Clubs.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, club)
}

// UpdateClub applies partial changes.
// PUT /api/clubs/:slug
func (h *Handlers) UpdateClub(c *gin.Context) {
	var req models.UpdateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	actorID, actorRole := currentUser(c)
	club, err := h.services.Clubs.Update(c.Request.Context(), c.Param("slug"), actorID, actorRole, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, club)
}

// DeleteClub removes a club directory entry.
// DELETE /api/clubs/:slug
func (h *Handlers) DeleteClub(c *gin.Context) {
	actorID, actorRole := currentUser(c)
	if err := h.services.Clubs.Delete(c.Request.Context(), c.Param("slug"), actorID, actorRole); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Club deleted")
}
