package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/billing"
)

type BillingHandler struct {
	bill      *billing.CalculateEncounterBill
	payment   *billing.ProcessMockPayment
	summarize *billing.SummarizeClinicalNotes
	catalog   catalog.Repository
	log       *zap.Logger
}

func NewBillingHandler(
	bill *billing.CalculateEncounterBill,
	payment *billing.ProcessMockPayment,
	summarize *billing.SummarizeClinicalNotes,
	catalog catalog.Repository,
	log *zap.Logger,
) *BillingHandler {
	return &BillingHandler{
		bill:      bill,
		payment:   payment,
		summarize: summarize,
		catalog:   catalog,
		log:       log,
	}
}

// --------- Requests ---------

type SaveItemRequest struct {
	ID            string          `json:"id" binding:"required"`
	ItemName      string          `json:"item_name" binding:"required"`
	ValuationRate decimal.Decimal `json:"valuation_rate"`
}

type CreateEncounterRequest struct {
	Patient           string   `json:"patient" binding:"required"`
	Practitioner      string   `json:"practitioner" binding:"required"`
	Prescriptions     []string `json:"prescriptions"`
	ServicesPerformed []string `json:"services_performed"`
	ClinicalNotes     string   `json:"clinical_notes"`
}

// --------- Handlers ---------

func (h *BillingHandler) SaveItem(c *gin.Context) {
	var req SaveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if req.ValuationRate.IsNegative() {
		httperr.BadRequest(c, "invalid_valuation_rate", "valuation_rate cannot be negative.")
		return
	}

	item := models.Item{
		ID:            req.ID,
		ItemName:      req.ItemName,
		ValuationRate: req.ValuationRate,
	}
	if err := h.catalog.SaveItem(c.Request.Context(), &item); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *BillingHandler) CreateEncounter(c *gin.Context) {
	var req CreateEncounterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	enc := models.PatientEncounter{
		ID:             catalog.NewID("ENC"),
		PatientID:      req.Patient,
		PractitionerID: req.Practitioner,
		ClinicalNotes:  req.ClinicalNotes,
	}
	for _, medicine := range req.Prescriptions {
		enc.Prescriptions = append(enc.Prescriptions, models.Prescription{
			EncounterID: enc.ID,
			MedicineID:  medicine,
		})
	}
	for _, service := range req.ServicesPerformed {
		enc.ServicesPerformed = append(enc.ServicesPerformed, models.PerformedService{
			EncounterID:   enc.ID,
			ServiceItemID: service,
		})
	}

	if err := h.catalog.CreateEncounter(c.Request.Context(), &enc); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, enc)
}

func (h *BillingHandler) CalculateBill(c *gin.Context) {
	bill, err := h.bill.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"grand_total":            bill.GrandTotal,
		"total_consultation_fee": bill.ConsultationFee,
		"total_medicine_cost":    bill.MedicineCost,
		"total_service_cost":     bill.ServiceCost,
	})
}

func (h *BillingHandler) ProcessPayment(c *gin.Context) {
	name, err := h.payment.Execute(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment_name": name})
}

// Summarize always answers 200 once the encounter exists; the text may be
// one of the fallback messages.
func (h *BillingHandler) Summarize(c *gin.Context) {
	summary, err := h.summarize.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ai_summary": summary})
}
