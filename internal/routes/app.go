package routes

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	domainAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	domainBilling "github.com/BruksfildServices01/clinic-scheduler/internal/domain/billing"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/gemini"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/storage"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucAssistant "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/assistant"
	ucBilling "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/billing"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// Stores groups the repositories one App runs on.
type Stores struct {
	Appointments domainAppointment.Repository
	Billing      domainBilling.Repository
	Catalog      catalog.Repository
	Users        user.Repository

	// AuditSink receives every audit event; AuditLogs is nil when the
	// sink cannot be queried.
	AuditSink audit.Sink
	AuditLogs handlers.AuditLogReader
}

// GormStores wires every repository to Postgres.
func GormStores(db *gorm.DB) Stores {
	auditLogger := audit.New(db)
	return Stores{
		Appointments: infraRepo.NewAppointmentGormRepository(db),
		Billing:      infraRepo.NewBillingGormRepository(db),
		Catalog:      infraRepo.NewCatalogGormRepository(db),
		Users:        infraRepo.NewUserGormRepository(db),
		AuditSink:    auditLogger,
		AuditLogs:    auditLogger,
	}
}

// MemoryStores keeps everything in process; audit events go to the log.
func MemoryStores(log *zap.Logger) Stores {
	appointments := infraRepo.NewAppointmentMemoryRepository()
	billing := infraRepo.NewBillingMemoryRepository()
	return Stores{
		Appointments: appointments,
		Billing:      billing,
		Catalog:      infraRepo.NewCatalogMemoryRepository(appointments, billing),
		Users:        infraRepo.NewUserMemoryRepository(),
		AuditSink:    audit.NewZapSink(log),
	}
}

// App holds the wired use cases and handlers of one API process.
type App struct {
	cfg    *config.Config
	stores Stores
	log    *zap.Logger

	audit  *audit.Dispatcher
	redis  *redis.Client
	gemini *gemini.Interpreter
	Sweep  *ucAppointment.CompletePastAppointments
	routes handlerSet
}

type handlerSet struct {
	auth             *handlers.AuthHandler
	me               *handlers.MeHandler
	appointments     *handlers.AppointmentHandler
	appointmentTypes *handlers.AppointmentTypeHandler
	practitioners    *handlers.PractitionerHandler
	patients         *handlers.PatientHandler
	billing          *handlers.BillingHandler
	assistant        *handlers.AssistantHandler
	auditLogs        *handlers.AuditLogsHandler
}

// NewApp builds the optional backends named by cfg, then every use case
// and handler. Redis, S3 and Gemini are skipped when unconfigured; an
// unreachable Redis falls back to the in-process lock.
func NewApp(ctx context.Context, cfg *config.Config, stores Stores, log *zap.Logger) (*App, error) {
	app := &App{cfg: cfg, stores: stores, log: log}

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	app.audit = audit.NewDispatcher(stores.AuditSink, log)

	var (
		locker domainAppointment.Locker = lock.NewKeyedMutex()
		shared domainAppointment.DurationCache
	)
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn("redis unavailable, using in-process booking lock", zap.Error(err))
		} else {
			app.redis = client
			locker = lock.NewRedisLocker(client, cfg.BookingLockTTL, log)
			shared = cache.NewRedisDurationCache(client, cfg.DurationCacheTTL, log)
		}
	}

	var archiver ucBilling.Archiver = storage.NoopArchiver{}
	if cfg.S3Bucket != "" {
		archiver = storage.NewS3BillArchiver(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			AccessKey: cfg.AWSAccessID,
			SecretKey: cfg.AWSSecret,
			Endpoint:  cfg.S3Endpoint,
		})
	}

	var (
		interpreter ucAssistant.Interpreter = gemini.Disabled{}
		summarizer  ucBilling.Interpreter
	)
	if cfg.GeminiAPIKey != "" {
		g, err := gemini.NewInterpreter(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("init gemini: %w", err)
		}
		app.gemini = g
		interpreter = g
		summarizer = g
	}

	var emails handlers.EmailChecker
	if cfg.VerifyEmailDomain {
		emails = validators.NewEmailDomainChecker(nil)
	}

	durations := domainAppointment.NewDurationResolver(stores.Appointments, shared)

	// ======================================================
	// 🧠 USE CASES: APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(
		stores.Appointments,
		durations,
		cfg.Timezone,
		cfg.SlotStep(),
	)

	bookingUC := ucAppointment.NewConfirmBooking(
		stores.Appointments,
		durations,
		locker,
		app.audit,
		cfg.Timezone,
	)

	endTimeUC := ucAppointment.NewCalculateEndTime(durations)

	cancelUC := ucAppointment.NewCancelAppointment(
		stores.Appointments,
		app.audit,
		cfg.Timezone,
	)

	statusUC := ucAppointment.NewUpdateStatus(
		stores.Appointments,
		app.audit,
		cfg.Timezone,
	)

	listByDateUC := ucAppointment.NewListAppointmentsByDate(
		stores.Appointments,
		cfg.Timezone,
	)

	reportUC := ucAppointment.NewAppointmentReport(
		stores.Appointments,
		cfg.Timezone,
	)

	app.Sweep = ucAppointment.NewCompletePastAppointments(
		stores.Appointments,
		app.audit,
		log,
	)

	// ======================================================
	// 🧠 USE CASES: BILLING
	// ======================================================
	billUC := ucBilling.NewCalculateEncounterBill(
		stores.Billing,
		archiver,
		app.audit,
		log,
	)

	paymentUC := ucBilling.NewProcessMockPayment(
		stores.Billing,
		app.audit,
		cfg.Timezone,
	)

	summaryUC := ucBilling.NewSummarizeClinicalNotes(
		stores.Billing,
		summarizer,
		app.audit,
		log,
	)

	// ======================================================
	// 🧠 USE CASES: ASSISTANT
	// ======================================================
	assistantUC := ucAssistant.New(
		stores.Appointments,
		interpreter,
		availabilityUC,
		bookingUC,
		cfg.Timezone,
		log,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		availabilityUC,
		bookingUC,
		endTimeUC,
		cancelUC,
		statusUC,
		listByDateUC,
		reportUC,
		log,
	)

	app.routes = handlerSet{
		auth:             handlers.NewAuthHandler(stores.Users, cfg.JWTSecret, emails, log),
		me:               handlers.NewMeHandler(stores.Users, log),
		appointments:     appointmentHandler,
		appointmentTypes: handlers.NewAppointmentTypeHandler(stores.Appointments, stores.Catalog, log),
		practitioners:    handlers.NewPractitionerHandler(stores.Appointments, stores.Catalog, log),
		patients:         handlers.NewPatientHandler(stores.Appointments, stores.Catalog, log),
		billing:          handlers.NewBillingHandler(billUC, paymentUC, summaryUC, stores.Catalog, log),
		assistant:        handlers.NewAssistantHandler(assistantUC, log),
	}
	if stores.AuditLogs != nil {
		app.routes.auditLogs = handlers.NewAuditLogsHandler(stores.AuditLogs, log)
	}

	return app, nil
}

// Close flushes pending audit events and releases external clients.
func (a *App) Close() {
	if a.audit != nil {
		a.audit.Close()
	}
	if a.gemini != nil {
		if err := a.gemini.Close(); err != nil {
			a.log.Warn("close gemini client", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("close redis client", zap.Error(err))
		}
	}
}
