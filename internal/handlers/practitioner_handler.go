package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type PractitionerHandler struct {
	repo    domain.Repository
	catalog catalog.Repository
	log     *zap.Logger
}

func NewPractitionerHandler(
	repo domain.Repository,
	catalog catalog.Repository,
	log *zap.Logger,
) *PractitionerHandler {
	return &PractitionerHandler{
		repo:    repo,
		catalog: catalog,
		log:     log,
	}
}

// --------- Requests ---------

type SavePractitionerRequest struct {
	ID              string          `json:"id"`
	FullName        string          `json:"full_name" binding:"required"`
	Specialization  string          `json:"specialization"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
}

type ScheduleWindow struct {
	Weekday   *int   `json:"weekday" binding:"required,min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type ScheduleUpdateRequest struct {
	Windows []ScheduleWindow `json:"windows" binding:"dive"`
}

// --------- Handlers ---------

func (h *PractitionerHandler) List(c *gin.Context) {
	list, err := h.repo.ListPractitioners(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PractitionerHandler) Get(c *gin.Context) {
	p, err := h.repo.GetPractitioner(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PractitionerHandler) Save(c *gin.Context) {
	var req SavePractitionerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if req.ConsultationFee.IsNegative() {
		httperr.BadRequest(c, "invalid_consultation_fee", "consultation_fee cannot be negative.")
		return
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = catalog.NewID("PR")
	}

	p := models.Practitioner{
		ID:              id,
		FullName:        req.FullName,
		Specialization:  req.Specialization,
		ConsultationFee: req.ConsultationFee,
	}

	if err := h.catalog.SavePractitioner(c.Request.Context(), &p); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpdateSchedule replaces every working window of the practitioner.
func (h *PractitionerHandler) UpdateSchedule(c *gin.Context) {
	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	windows := make([]models.PractitionerSchedule, 0, len(req.Windows))
	for _, w := range req.Windows {
		windows = append(windows, models.PractitionerSchedule{
			Weekday:   *w.Weekday,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}

	if err := catalog.ValidateSchedule(windows); err != nil {
		writeError(c, h.log, err)
		return
	}

	id := c.Param("id")
	if err := h.catalog.ReplaceSchedule(c.Request.Context(), id, windows); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "windows": len(windows)})
}
