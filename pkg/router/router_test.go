package router

import (
	"testing"

	"github.com/rkotzy/promptuna/pkg/config"
	"github.com/rkotzy/promptuna/pkg/errs"
)

func weight(w int) *int { return &w }

func testPrompt() config.Prompt {
	return config.Prompt{
		Variants: map[string]config.Variant{
			"v1":        {Default: true},
			"v2":        {},
			"beta":      {},
			"announced": {},
		},
		Routing: config.Routing{
			Rules: []config.RoutingRule{
				{Target: "beta", Tags: []string{"beta-tester"}},
				{Target: "v1", Weight: weight(70)},
				{Target: "v2", Weight: weight(30)},
			},
			Phased: []config.PhasedRule{
				{Start: 100, End: 200, Weights: map[string]int{"announced": 100}},
			},
		},
	}
}

func TestSelect_TagMatchTakesPriority(t *testing.T) {
	sel, err := Select(testPrompt(), "greeting", "user-1", []string{"beta-tester"}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.VariantID != "beta" || sel.Reason != ReasonTagMatch {
		t.Errorf("unexpected selection: %+v", sel)
	}
}

func TestSelect_PhasedRolloutWhenActive(t *testing.T) {
	sel, err := Select(testPrompt(), "greeting", "user-1", nil, 150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.VariantID != "announced" || sel.Reason != ReasonPhasedRollout {
		t.Errorf("unexpected selection: %+v", sel)
	}
}

func TestSelect_DefaultRulesOutsidePhaseWindow(t *testing.T) {
	sel, err := Select(testPrompt(), "greeting", "user-1", nil, 999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Reason != ReasonWeightDistribution {
		t.Errorf("expected weight-distribution, got %+v", sel)
	}
	if sel.VariantID != "v1" && sel.VariantID != "v2" {
		t.Errorf("expected one of the weighted rule targets, got %q", sel.VariantID)
	}
}

func TestSelect_WeightedPickIsDeterministicPerUser(t *testing.T) {
	p := testPrompt()
	first, err := Select(p, "greeting", "stable-user", nil, 999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		sel, err := Select(p, "greeting", "stable-user", nil, 999)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sel.VariantID != first.VariantID {
			t.Errorf("expected the same variant for the same user every time, got %q then %q", first.VariantID, sel.VariantID)
		}
	}
}

func TestSelect_HardDefaultWhenNoRoutingRulesMatch(t *testing.T) {
	p := config.Prompt{
		Variants: map[string]config.Variant{"v1": {Default: true}},
		Routing:  config.Routing{Rules: nil},
	}
	sel, err := Select(p, "greeting", "", nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.VariantID != "v1" || sel.Reason != ReasonDefault {
		t.Errorf("unexpected selection: %+v", sel)
	}
}

func TestSelect_NoDefaultVariantIsFatal(t *testing.T) {
	p := config.Prompt{Variants: map[string]config.Variant{"v1": {}}}
	_, err := Select(p, "greeting", "", nil, 0)
	if err == nil {
		t.Fatal("expected an error when no variant is marked default")
	}
	execErr, ok := err.(*errs.ExecutionError)
	if !ok || execErr.Code != "no-default-variant" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestResolve_KnownVariant(t *testing.T) {
	p := testPrompt()
	sel, err := Resolve(p, "greeting", "v2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.VariantID != "v2" {
		t.Errorf("unexpected selection: %+v", sel)
	}
}

func TestResolve_UnknownVariantIsFatal(t *testing.T) {
	p := testPrompt()
	_, err := Resolve(p, "greeting", "does-not-exist")
	if err == nil {
		t.Fatal("expected an error for an unknown variant")
	}
	execErr, ok := err.(*errs.ExecutionError)
	if !ok || execErr.Code != "unknown-variant" {
		t.Errorf("unexpected error: %v", err)
	}
}
