package billing

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/billing"
)

const (
	maxSummaryRunes = 1400

	msgNoNotes       = "No clinical notes to summarize."
	msgNotConfigured = "Error: Gemini API key is not set (GEMINI_API_KEY)."
	msgFailedPrefix  = "Error: Gemini summarization failed. "
)

const summaryPrompt = `You are an expert medical language model assisting doctors.
The following are rough, shorthand, or incomplete clinical notes written in a hurry.

Your task:
1. Interpret unclear medical shorthand or abbreviations.
2. Expand them into clear, full sentences using accurate clinical language.
3. Maintain the original meaning.
4. Then summarize the key findings in 3-4 concise bullet points.

Example Input:
"pt c/o chest pain since morn. bp high. r/o cardiac."
Example Output:
"The patient complained of chest pain since the morning and had elevated blood pressure. Cardiac causes are to be ruled out."
Summary:
- Presented with chest pain and high BP
- Possible cardiac cause under evaluation

Clinical Notes:
`

// Interpreter turns a prompt into the model's raw text reply.
type Interpreter interface {
	Interpret(ctx context.Context, prompt string) (string, error)
}

// SummarizeClinicalNotes expands an encounter's shorthand notes with the
// language model and stores the result as its AI summary. Every outcome,
// including the fallback messages, is written back.
type SummarizeClinicalNotes struct {
	repo        domain.Repository
	interpreter Interpreter
	audit       *audit.Dispatcher
	log         *zap.Logger
}

// NewSummarizeClinicalNotes takes a nil interpreter when no API key is
// configured.
func NewSummarizeClinicalNotes(
	repo domain.Repository,
	interpreter Interpreter,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *SummarizeClinicalNotes {
	return &SummarizeClinicalNotes{
		repo:        repo,
		interpreter: interpreter,
		audit:       audit,
		log:         log,
	}
}

func (uc *SummarizeClinicalNotes) Execute(
	ctx context.Context,
	encounterID string,
) (string, error) {

	enc, err := uc.repo.GetEncounter(ctx, encounterID)
	if err != nil {
		return "", err
	}

	summary := uc.summarize(ctx, enc.ID, enc.ClinicalNotes)

	if err := uc.repo.SaveSummary(ctx, enc.ID, summary); err != nil {
		return "", err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "encounter_summarized",
		Entity:   "patient_encounter",
		EntityID: enc.ID,
	})

	return summary, nil
}

func (uc *SummarizeClinicalNotes) summarize(ctx context.Context, encounterID, notes string) string {
	if strings.TrimSpace(notes) == "" {
		return msgNoNotes
	}

	if uc.interpreter == nil {
		uc.log.Warn("clinical notes summary skipped",
			zap.String("encounter", encounterID),
			zap.String("reason", msgNotConfigured),
		)
		return msgNotConfigured
	}

	reply, err := uc.interpreter.Interpret(ctx, summaryPrompt+notes+"\n\nOutput:\n")
	if err != nil {
		uc.log.Error("clinical notes summary failed",
			zap.String("encounter", encounterID),
			zap.Error(err),
		)
		return msgFailedPrefix + err.Error()
	}

	return truncateRunes(strings.TrimSpace(reply), maxSummaryRunes)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
