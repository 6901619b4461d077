package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
)

func (a *App) RegisterRoutes(r *gin.Engine) {
	h := a.routes
	limiter := middleware.NewRateLimiter(a.cfg.RateLimitPerMinute, a.cfg.RateLimitBurst, a.log)

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(a.cfg.AllowedOrigins()))
	r.Use(middleware.RequestLogger(a.log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		auth := api.Group("/auth", limiter.Middleware())
		auth.POST("/register", h.auth.Register)
		auth.POST("/login", h.auth.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(a.cfg.JWTSecret))
		{
			secured.GET("/me", h.me.GetMe)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments/available-start-times", h.appointments.AvailableStartTimes)
			secured.GET("/appointments/available-slots", h.appointments.AvailableSlots)
			secured.GET("/appointments/end-time", h.appointments.EndTime)
			secured.POST("/appointments", h.appointments.Create)
			secured.GET("/appointments", h.appointments.ListByDate)
			secured.PATCH("/appointments/:id/cancel", h.appointments.Cancel)

			// ------------------------------
			// REFERENCE DATA
			// ------------------------------
			secured.GET("/practitioners", h.practitioners.List)
			secured.GET("/practitioners/:id", h.practitioners.Get)
			secured.GET("/appointment-types", h.appointmentTypes.List)
			secured.GET("/patients", h.patients.List)
			secured.POST("/patients", h.patients.Create)
			secured.GET("/patients/:id/details", h.patients.Details)

			// ------------------------------
			// ASSISTANT
			// ------------------------------
			chat := secured.Group("/assistant", limiter.Middleware())
			chat.POST("/slots", h.assistant.Slots)
			chat.POST("/appointments", h.assistant.Book)

			// ------------------------------
			// 🩺 STAFF ONLY
			// ------------------------------
			staff := secured.Group("/")
			staff.Use(middleware.RequireRole(user.RoleStaff))
			{
				staff.PATCH("/appointments/:id/status", h.appointments.UpdateStatus)
				staff.GET("/appointments/report", h.appointments.Report)

				staff.POST("/practitioners", h.practitioners.Save)
				staff.PUT("/practitioners/:id/schedule", h.practitioners.UpdateSchedule)
				staff.POST("/appointment-types", h.appointmentTypes.Create)

				staff.POST("/items", h.billing.SaveItem)
				staff.POST("/encounters", h.billing.CreateEncounter)
				staff.POST("/encounters/:id/bill", h.billing.CalculateBill)
				staff.POST("/encounters/:id/payment", h.billing.ProcessPayment)
				staff.POST("/encounters/:id/summary", h.billing.Summarize)

				if h.auditLogs != nil {
					staff.GET("/audit-logs", h.auditLogs.List)
				}
			}
		}
	}
}
