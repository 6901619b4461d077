package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type PatientHandler struct {
	repo    domain.Repository
	catalog catalog.Repository
	log     *zap.Logger
}

func NewPatientHandler(
	repo domain.Repository,
	catalog catalog.Repository,
	log *zap.Logger,
) *PatientHandler {
	return &PatientHandler{
		repo:    repo,
		catalog: catalog,
		log:     log,
	}
}

type CreatePatientRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	Email         string `json:"email" binding:"omitempty,email"`
	ContactNumber string `json:"contact_number"`
}

// List filters by ?query= on name or email.
func (h *PatientHandler) List(c *gin.Context) {
	list, err := h.catalog.ListPatients(c.Request.Context(), c.Query("query"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create registers a patient owned by the calling account.
func (h *PatientHandler) Create(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	p := models.Patient{
		ID:            catalog.NewID("PAT"),
		FullName:      strings.TrimSpace(req.FullName),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		ContactNumber: strings.TrimSpace(req.ContactNumber),
		Owner:         c.GetString(middleware.ContextUserEmail),
	}

	if err := h.catalog.CreatePatient(c.Request.Context(), &p); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// Details returns the contact fields used to prefill forms. An unknown
// patient yields an empty object so the form simply stays blank.
func (h *PatientHandler) Details(c *gin.Context) {
	patient, err := h.repo.GetPatient(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrPatientNotFound) {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"patient_contact": patient.ContactNumber,
		"email":           patient.Email,
	})
}
