package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	availability *appointment.GetAvailability
	booking      *appointment.ConfirmBooking
	endTime      *appointment.CalculateEndTime
	cancel       *appointment.CancelAppointment
	status       *appointment.UpdateStatus
	listByDate   *appointment.ListAppointmentsByDate
	report       *appointment.AppointmentReport
	log          *zap.Logger
}

func NewAppointmentHandler(
	availability *appointment.GetAvailability,
	booking *appointment.ConfirmBooking,
	endTime *appointment.CalculateEndTime,
	cancel *appointment.CancelAppointment,
	status *appointment.UpdateStatus,
	listByDate *appointment.ListAppointmentsByDate,
	report *appointment.AppointmentReport,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		availability: availability,
		booking:      booking,
		endTime:      endTime,
		cancel:       cancel,
		status:       status,
		listByDate:   listByDate,
		report:       report,
		log:          log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AvailabilityQuery struct {
	Practitioner    string `form:"practitioner" binding:"required"`
	AppointmentDate string `form:"appointment_date" binding:"required"`
	AppointmentType string `form:"appointment_type" binding:"required"`
}

type ConfirmBookingRequest struct {
	Practitioner    string `json:"practitioner" binding:"required"`
	Patient         string `json:"patient" binding:"required"`
	AppointmentType string `json:"appointment_type" binding:"required"`
	AppointmentDate string `json:"appointment_date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	BookingChannel  string `json:"booking_channel"`
}

type ReportQuery struct {
	Practitioner    string `form:"practitioner"`
	AppointmentType string `form:"appointment_type"`
	Status          string `form:"status"`
	FromDate        string `form:"from_date"`
	ToDate          string `form:"to_date"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (q AvailabilityQuery) input() appointment.GetAvailabilityInput {
	return appointment.GetAvailabilityInput{
		PractitionerID:  q.Practitioner,
		AppointmentType: q.AppointmentType,
		Date:            q.AppointmentDate,
	}
}

// noSlots reports errors the calendar UI shows as an empty slot list.
func noSlots(err error) bool {
	return errors.Is(err, domain.ErrUnknownAppointmentType) ||
		errors.Is(err, domain.ErrInvalidConfiguration)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) AvailableStartTimes(c *gin.Context) {
	var q AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalidRequest(c, err)
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), q.input())
	if err != nil {
		if noSlots(err) {
			c.JSON(http.StatusOK, gin.H{"available_slots": []string{}})
			return
		}
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"available_slots": slots})
}

// AvailableSlots answers with a bare list and never fails.
func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	var q AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusOK, []string{})
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), q.input())
	if err != nil {
		h.log.Info("available slots lookup failed",
			zap.String("practitioner", q.Practitioner),
			zap.String("date", q.AppointmentDate),
			zap.Error(err),
		)
		c.JSON(http.StatusOK, []string{})
		return
	}

	c.JSON(http.StatusOK, slots)
}

func (h *AppointmentHandler) EndTime(c *gin.Context) {
	end, err := h.endTime.Execute(
		c.Request.Context(),
		c.Query("start_time"),
		c.Query("appointment_type"),
	)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"end_time": end})
}

// ======================================================
// CONFIRM BOOKING
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ap, err := h.booking.Execute(c.Request.Context(), appointment.ConfirmBookingInput{
		PractitionerID:  req.Practitioner,
		PatientID:       req.Patient,
		AppointmentType: req.AppointmentType,
		Date:            req.AppointmentDate,
		StartTime:       req.StartTime,
		Channel:         req.BookingChannel,
		UserID:          middleware.UserID(c),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	practitioner := c.Query("practitioner")
	date := c.Query("date")
	if practitioner == "" || date == "" {
		httperr.BadRequest(c, "practitioner_and_date_required", "practitioner and date are required.")
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), practitioner, date)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, list)
}

// Report is the staff analytics listing; every filter is optional.
func (h *AppointmentHandler) Report(c *gin.Context) {
	var q ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalidRequest(c, err)
		return
	}

	rows, err := h.report.Execute(c.Request.Context(), appointment.AppointmentReportInput{
		PractitionerID:  q.Practitioner,
		AppointmentType: q.AppointmentType,
		Status:          q.Status,
		FromDate:        q.FromDate,
		ToDate:          q.ToDate,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, rows)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	ap, err := h.cancel.Execute(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ap, err := h.status.Execute(c.Request.Context(), c.Param("id"), req.Status, middleware.UserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}
