package questclaim

import (
	"testing"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/catalog"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewProcessor(t *testing.T) {
	_, err := NewProcessor(catalog.Trigger{Type: entity.TriggerType("unknown")})
	require.Error(t, err)

	for _, typ := range []entity.TriggerType{
		entity.TriggerReaction, entity.TriggerText, entity.TriggerMultiStep, entity.TriggerManual,
	} {
		p, err := NewProcessor(catalog.Trigger{Type: typ})
		require.NoError(t, err)
		require.NotNil(t, p)
	}
}

func TestProcessor_GetActionForClaim(t *testing.T) {
	steps := catalog.Trigger{
		Type: entity.TriggerMultiStep,
		Steps: []catalog.Step{
			{Hint: "Parle au gardien", Answer: "bonjour"},
			{Hint: "Salue le", Emojis: []string{"👋"}},
			{Hint: "Donne le mot de passe", Answer: "lumen"},
		},
	}

	tests := []struct {
		name    string
		trigger catalog.Trigger
		signal  Signal
		step    int
		want    ActionForClaim
	}{
		{
			name:    "reaction in set",
			trigger: catalog.Trigger{Type: entity.TriggerReaction, Emojis: []string{"🔥", "✅"}},
			signal:  Reaction("✅"),
			want:    Complete,
		},
		{
			name:    "reaction not in set",
			trigger: catalog.Trigger{Type: entity.TriggerReaction, Emojis: []string{"🔥"}},
			signal:  Reaction("✅"),
			want:    NoMatch,
		},
		{
			name:    "text on reaction quest",
			trigger: catalog.Trigger{Type: entity.TriggerReaction, Emojis: []string{"🔥"}},
			signal:  Text("🔥"),
			want:    NoMatch,
		},
		{
			name:    "noisy answer",
			trigger: catalog.Trigger{Type: entity.TriggerText, Answer: "lumen"},
			signal:  Text("  Lumen  "),
			want:    Complete,
		},
		{
			name:    "wrong answer",
			trigger: catalog.Trigger{Type: entity.TriggerText, Answer: "café"},
			signal:  Text("coffee"),
			want:    NoMatch,
		},
		{
			name:    "reaction on text quest",
			trigger: catalog.Trigger{Type: entity.TriggerText, Answer: "lumen"},
			signal:  Reaction("🔥"),
			want:    NoMatch,
		},
		{
			name:    "first text step",
			trigger: steps,
			signal:  Text("  BONJOUR "),
			step:    1,
			want:    AdvanceStep,
		},
		{
			name:    "reaction on text step",
			trigger: steps,
			signal:  Reaction("👋"),
			step:    1,
			want:    NoMatch,
		},
		{
			name:    "reaction step",
			trigger: steps,
			signal:  Reaction("👋"),
			step:    2,
			want:    AdvanceStep,
		},
		{
			name:    "last step",
			trigger: steps,
			signal:  Text("LUMEN"),
			step:    3,
			want:    Complete,
		},
		{
			name:    "step out of range",
			trigger: steps,
			signal:  Text("lumen"),
			step:    4,
			want:    NoMatch,
		},
		{
			name:    "manual",
			trigger: catalog.Trigger{Type: entity.TriggerManual},
			signal:  Text("anything"),
			want:    NoMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProcessor(tt.trigger)
			require.NoError(t, err)

			got := p.GetActionForClaim(testutil.MockContext(), tt.signal, tt.step)
			require.True(t, got.Is(tt.want), "got %s, want %s", got.Name(), tt.want.Name())
		})
	}
}

func TestActionForClaim_WithMessage(t *testing.T) {
	a := NoMatch.WithMessage("Invalid step %d", 4)
	require.True(t, a.Is(NoMatch))
	require.False(t, a.Is(Complete))
	require.Equal(t, "Invalid step 4", a.Message())
	require.Empty(t, NoMatch.Message())
}
