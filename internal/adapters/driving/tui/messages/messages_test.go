package messages

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

func TestMessages_AreTeaMessages(t *testing.T) {
	msgs := []tea.Msg{
		SecondaryUpdated{State: domain.SecondaryState{Version: 3, Phase: domain.PhaseResults}},
		PinnedLoaded{Pinned: []domain.Candidate{{ID: "mail"}}},
		AnswerUpdated{State: domain.AnswerState{Query: "q", Answer: "a"}},
		Launched{Title: "Maps"},
		Copied{Title: "answer"},
		PreferenceChanged{Action: "Pinned", Title: "Maps"},
		ErrorOccurred{Err: errors.New("boom")},
	}

	for _, msg := range msgs {
		switch m := msg.(type) {
		case SecondaryUpdated:
			assert.Equal(t, uint64(3), m.State.Version)
		case PinnedLoaded:
			assert.Len(t, m.Pinned, 1)
		case AnswerUpdated:
			assert.Equal(t, "a", m.State.Answer)
		case Launched:
			assert.Equal(t, "Maps", m.Title)
		case Copied:
			assert.Equal(t, "answer", m.Title)
		case PreferenceChanged:
			assert.Equal(t, "Pinned", m.Action)
		case ErrorOccurred:
			assert.EqualError(t, m.Err, "boom")
		default:
			t.Fatalf("unexpected message %T", msg)
		}
	}
}
