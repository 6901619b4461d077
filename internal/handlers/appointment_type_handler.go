package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentTypeHandler struct {
	repo    domain.Repository
	catalog catalog.Repository
	log     *zap.Logger
}

func NewAppointmentTypeHandler(
	repo domain.Repository,
	catalog catalog.Repository,
	log *zap.Logger,
) *AppointmentTypeHandler {
	return &AppointmentTypeHandler{
		repo:    repo,
		catalog: catalog,
		log:     log,
	}
}

type CreateAppointmentTypeRequest struct {
	TypeName            string `json:"type_name" binding:"required"`
	DefaultDurationMins int    `json:"default_duration_mins" binding:"required,min=1"`
}

func (h *AppointmentTypeHandler) List(c *gin.Context) {
	list, err := h.repo.ListAppointmentTypes(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AppointmentTypeHandler) Create(c *gin.Context) {
	var req CreateAppointmentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	at := models.AppointmentType{
		ID:                  strings.TrimSpace(req.TypeName),
		DefaultDurationMins: req.DefaultDurationMins,
	}

	if err := h.catalog.CreateAppointmentType(c.Request.Context(), &at); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, at)
}
