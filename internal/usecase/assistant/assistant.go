package assistant

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// Interpreter turns a prompt into the model's raw text reply.
type Interpreter interface {
	Interpret(ctx context.Context, prompt string) (string, error)
}

type SlotFinder interface {
	Execute(ctx context.Context, in appointment.GetAvailabilityInput) ([]string, error)
}

type Booker interface {
	Execute(ctx context.Context, in appointment.ConfirmBookingInput) (*models.Appointment, error)
}

// Session identifies the caller of one chat turn.
type Session struct {
	UserID *uint
	Email  string
}

// Turn is one line of the conversation so far.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type Assistant struct {
	repo        domain.Repository
	interpreter Interpreter
	slots       SlotFinder
	booker      Booker
	log         *zap.Logger
	now         func() time.Time
}

func New(
	repo domain.Repository,
	interpreter Interpreter,
	slots SlotFinder,
	booker Booker,
	tz string,
	log *zap.Logger,
) *Assistant {
	return &Assistant{
		repo:        repo,
		interpreter: interpreter,
		slots:       slots,
		booker:      booker,
		log:         log,
		now:         func() time.Time { return timezone.NowIn(tz) },
	}
}

func (a *Assistant) today() string {
	return a.now().Format(domain.DateLayout)
}
