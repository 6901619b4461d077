package billing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/billing"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type fakeInterpreter struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeInterpreter) Interpret(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func notesRepo(notes string) *repository.BillingMemoryRepository {
	repo := repository.NewBillingMemoryRepository()
	repo.PutEncounter(models.PatientEncounter{
		ID:             "ENC-NOTES",
		PatientID:      "PAT-001",
		PractitionerID: "PR001",
		ClinicalNotes:  notes,
	})
	return repo
}

func TestSummarizeClinicalNotes(t *testing.T) {
	tests := []struct {
		name        string
		notes       string
		interpreter Interpreter
		want        string
	}{
		{
			name:        "summary",
			notes:       "pt c/o headache x2d",
			interpreter: &fakeInterpreter{reply: "  The patient reports a two day headache.  "},
			want:        "The patient reports a two day headache.",
		},
		{
			name:        "no notes",
			notes:       "   ",
			interpreter: &fakeInterpreter{reply: "unused"},
			want:        msgNoNotes,
		},
		{
			name:  "not configured",
			notes: "bp high",
			want:  msgNotConfigured,
		},
		{
			name:        "model failure",
			notes:       "bp high",
			interpreter: &fakeInterpreter{err: errors.New("quota exceeded")},
			want:        "Error: Gemini summarization failed. quota exceeded",
		},
		{
			name:        "truncated",
			notes:       "long",
			interpreter: &fakeInterpreter{reply: strings.Repeat("é", maxSummaryRunes+50)},
			want:        strings.Repeat("é", maxSummaryRunes),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := notesRepo(tt.notes)
			uc := NewSummarizeClinicalNotes(repo, tt.interpreter, newDispatcher(t), zap.NewNop())

			got, err := uc.Execute(context.Background(), "ENC-NOTES")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("summary = %q, want %q", got, tt.want)
			}

			enc, _ := repo.GetEncounter(context.Background(), "ENC-NOTES")
			if enc.AISummary != tt.want {
				t.Errorf("stored summary = %q, want %q", enc.AISummary, tt.want)
			}
		})
	}
}

func TestSummarizeClinicalNotes_PromptCarriesNotes(t *testing.T) {
	fake := &fakeInterpreter{reply: "ok"}
	uc := NewSummarizeClinicalNotes(notesRepo("r/o cardiac"), fake, newDispatcher(t), zap.NewNop())

	if _, err := uc.Execute(context.Background(), "ENC-NOTES"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(fake.prompt, "Clinical Notes:\nr/o cardiac") || !strings.HasSuffix(fake.prompt, "Output:\n") {
		t.Errorf("prompt = %q", fake.prompt)
	}
}

func TestSummarizeClinicalNotes_NotFound(t *testing.T) {
	uc := NewSummarizeClinicalNotes(notesRepo(""), &fakeInterpreter{}, newDispatcher(t), zap.NewNop())

	if _, err := uc.Execute(context.Background(), "ENC-404"); !errors.Is(err, domain.ErrEncounterNotFound) {
		t.Errorf("expected encounter_not_found, got %v", err)
	}
}
