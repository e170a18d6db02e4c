package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campushub/internal/models"
)

// ListEvents returns one page of events.
// GET /api/events?category=&status=&search=&sortBy=&page=&limit=
func (h *Handlers) ListEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filter := models.EventFilter{
		Category: c.DefaultQuery("category", "all"),
		Status:   c.DefaultQuery("status", "all"),
		Search:   c.Query("search"),
		SortBy:   c.DefaultQuery("sortBy", "date"),
		Page:     page,
		Limit:    limit,
	}

	events, pagination, err := h.services.Events.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}

	c.JSON(http.StatusOK, models.PaginatedResponse{
		Success:    true,
		Data:       events,
		Pagination: pagination,
	})
}

// GetEvent returns the joined detail view.
// GET /api/events/:slug
func (h *Handlers) GetEvent(c *gin.Context) {
	detail, err := h.services.Events.GetDetail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, detail)
}

// CreateEvent creates an event owned by the caller.
// POST /api/events
func (h *Handlers) CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	userID, _ := currentUser(c)
	event, err := h.services.Events.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, event)
}

// UpdateEvent applies partial changes.
// PUT /api/events/:slug
func (h *Handlers) UpdateEvent(c *gin.Context) {
	var req models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	userID, role := currentUser(c)
	event, err := h.services.Events.Update(c.Request.Context(), c.Param("slug"), userID, role, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, event)
}

// DeleteEvent removes the event and its dependents.
// DELETE /api/events/:slug
func (h *Handlers) DeleteEvent(c *gin.Context) {
	userID, role := currentUser(c)
	if err := h.services.Events.Delete(c.Request.Context(), c.Param("slug"), userID, role); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Event deleted")
}

// ListGallery returns the event's images.
// GET /api/events/:slug/gallery
func (h *Handlers) ListGallery(c *gin.Context) {
	images, err := h.services.Events.ListGallery(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	if images == nil {
		images = []models.GalleryImage{}
	}
	respondOK(c, images)
}

// AddGalleryImage attaches an image to the event.
// POST /api/events/:slug/gallery
func (h *Handlers) AddGalleryImage(c *gin.Context) {
	var req models.AddGalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	userID, role := currentUser(c)
	img, err := h.services.Events.AddGalleryImage(c.Request.Context(), c.Param("slug"), userID, role, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, img)
}
