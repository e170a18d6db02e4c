package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"campushub/internal/models"
)

// ListCompanies returns placement companies, optionally by status.
// GET /api/placements/companies?status=
func (h *Handlers) ListCompanies(c *gin.Context) {
	companies, err := h.services.Placements.ListCompanies(c.Request.Context(), c.DefaultQuery("status", "all"))
	if err != nil {
		respondError(c, err)
		return
	}
	if companies == nil {
		companies = []models.PlacementCompany{}
	}
	respondOK(c, companies)
}

// CreateCompany adds a placement company listing.
// POST /api/placements/companies
func (h *Handlers) CreateCompany(c *gin.Context) {
	var req models.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	company, err := h.services.Placements.CreateCompany(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, company)
}

// UpdateCompany patches a company listing.
// PUT /api/placements/companies/:id
func (h *Handlers) UpdateCompany(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid company id")
		return
	}

	var req models.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	company, err := h.services.Placements.UpdateCompany(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, company)
}

// DeleteCompany removes a company listing and its placement records.
// DELETE /api/placements/companies/:id
func (h *Handlers) DeleteCompany(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid company id")
		return
	}

	if err := h.services.Placements.DeleteCompany(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Company deleted")
}

// ListPlacedStudents returns placement outcomes, optionally by year.
// GET /api/placements/students?year=
func (h *Handlers) ListPlacedStudents(c *gin.Context) {
	year, _ := strconv.Atoi(c.DefaultQuery("year", "0"))

	students, err := h.services.Placements.ListStudents(c.Request.Context(), year)
	if err != nil {
		respondError(c, err)
		return
	}
	if students == nil {
		students = []models.PlacedStudent{}
	}
	respondOK(c, students)
}

// CreatePlacedStudent records a placement outcome.
// POST /api/placements/students
func (h *Handlers) CreatePlacedStudent(c *gin.Context) {
	var req models.CreatePlacedStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	student, err := h.services.Placements.CreateStudent(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, student)
}

// PlacementStats aggregates outcomes per graduation year.
// GET /api/placements/stats
func (h *Handlers) PlacementStats(c *gin.Context) {
	stats, err := h.services.Placements.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if stats == nil {
		stats = []models.PlacementStats{}
	}
	respondOK(c, stats)
}
