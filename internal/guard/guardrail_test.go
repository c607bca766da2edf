package guard

import (
	"reflect"
	"testing"

	"github.com/rkuiper/bouwvrij/internal/model"
)

func TestFinalDecision(t *testing.T) {
	tests := []struct {
		draft    model.Decision
		evidence bool
		expected model.Decision
	}{
		{model.DecisionYes, true, model.DecisionYes},
		{model.DecisionYes, false, model.DecisionConditional},
		{model.DecisionNo, true, model.DecisionNo},
		{model.DecisionNo, false, model.DecisionNo},
		{model.DecisionConditional, true, model.DecisionConditional},
		{model.DecisionConditional, false, model.DecisionConditional},
	}

	for _, tt := range tests {
		if got := FinalDecision(tt.draft, tt.evidence); got != tt.expected {
			t.Errorf("FinalDecision(%s, %v) = %s, expected %s", tt.draft, tt.evidence, got, tt.expected)
		}
	}
}

func permitFreeChunk() model.ScoredChunk {
	return model.ScoredChunk{
		Chunk: model.Chunk{DocID: "d", Article: "2"},
		Score: 50,
		Tags:  []string{model.TagPermitFreePhrase},
	}
}

func plainChunk() model.ScoredChunk {
	return model.ScoredChunk{
		Chunk: model.Chunk{DocID: "d", Article: "1"},
		Score: 20,
		Tags:  []string{model.TagPlanTerm},
	}
}

func storageQuery() model.Query {
	return model.Query{Use: model.UseStorage}
}

func TestVerify_DowngradesUnsupportedYes(t *testing.T) {
	draft := model.Assessment{PermitFree: model.DecisionYes, Summary: "ok"}

	final := Verify(draft, []model.ScoredChunk{plainChunk()}, storageQuery())

	if final.PermitFree != model.DecisionConditional {
		t.Errorf("expected downgrade to Conditional, got %s", final.PermitFree)
	}
	if len(final.RiskFlags) != 1 || final.RiskFlags[0] != RiskFlagNoPermitFreeEvidence {
		t.Errorf("expected the no-evidence risk flag, got %v", final.RiskFlags)
	}
	if final.Summary != "ok" {
		t.Errorf("summary must pass through untouched, got %q", final.Summary)
	}
}

func TestVerify_YesWithEvidencePasses(t *testing.T) {
	draft := model.Assessment{PermitFree: model.DecisionYes}

	final := Verify(draft, []model.ScoredChunk{plainChunk(), permitFreeChunk()}, storageQuery())

	if final.PermitFree != model.DecisionYes {
		t.Errorf("expected Yes to survive with permit-free evidence, got %s", final.PermitFree)
	}
	if len(final.RiskFlags) != 0 {
		t.Errorf("expected no risk flags, got %v", final.RiskFlags)
	}
}

func TestVerify_NoIsNeverModified(t *testing.T) {
	draft := model.Assessment{PermitFree: model.DecisionNo}

	final := Verify(draft, nil, storageQuery())
	if final.PermitFree != model.DecisionNo {
		t.Errorf("No must pass through, got %s", final.PermitFree)
	}

	final = Verify(draft, []model.ScoredChunk{permitFreeChunk()}, storageQuery())
	if final.PermitFree != model.DecisionNo {
		t.Errorf("evidence never upgrades a No, got %s", final.PermitFree)
	}
}

func TestVerify_LivingSpaceRiskFlag(t *testing.T) {
	draft := model.Assessment{PermitFree: model.DecisionNo}
	q := model.Query{Use: model.UseLivingSpace}

	final := Verify(draft, []model.ScoredChunk{permitFreeChunk()}, q)

	if len(final.RiskFlags) != 1 || final.RiskFlags[0] != RiskFlagLivingSpace {
		t.Errorf("expected living-space risk flag, got %v", final.RiskFlags)
	}

	// The flag is appended once even when the draft already carries it.
	draft.RiskFlags = []string{RiskFlagLivingSpace}
	final = Verify(draft, nil, q)
	if len(final.RiskFlags) != 1 {
		t.Errorf("expected no duplicate flag, got %v", final.RiskFlags)
	}
}

func TestVerify_DraftNotMutated(t *testing.T) {
	flags := []string{"existing flag"}
	draft := model.Assessment{PermitFree: model.DecisionYes, RiskFlags: flags}

	_ = Verify(draft, nil, model.Query{Use: model.UseLivingSpace})

	if !reflect.DeepEqual(flags, []string{"existing flag"}) {
		t.Errorf("the draft's risk flags were mutated: %v", flags)
	}
	if draft.PermitFree != model.DecisionYes {
		t.Errorf("the draft's decision was mutated: %s", draft.PermitFree)
	}
}
