package parammap

import "testing"

func TestMap_ScaleThenClamp(t *testing.T) {
	// canonical temperature 0.6 scaled by 2 -> 1.2 for openai/google.
	out := Map(ProviderOpenAI, map[string]interface{}{"temperature": 0.6})
	if got, want := out["temperature"], 1.2; got != want {
		t.Errorf("temperature = %v, want %v", got, want)
	}
}

func TestMap_ClampsAfterScale(t *testing.T) {
	// canonical temperature 1.0 scaled by 2 -> 2.0, clamped to max 2 (no-op),
	// but anthropic has no scale and clamps to max 1.
	openai := Map(ProviderOpenAI, map[string]interface{}{"temperature": 1.0})
	if got, want := openai["temperature"], 2.0; got != want {
		t.Errorf("openai temperature = %v, want %v", got, want)
	}

	anthropic := Map(ProviderAnthropic, map[string]interface{}{"temperature": 1.0})
	if got, want := anthropic["temperature"], 1.0; got != want {
		t.Errorf("anthropic temperature = %v, want %v", got, want)
	}
}

func TestMap_PenaltiesDroppedForAnthropic(t *testing.T) {
	out := Map(ProviderAnthropic, map[string]interface{}{"frequency_penalty": 1.5, "presence_penalty": -1.0})
	if len(out) != 0 {
		t.Errorf("expected anthropic to drop both penalties, got %+v", out)
	}
}

func TestMap_PenaltiesClampedForOpenAI(t *testing.T) {
	out := Map(ProviderOpenAI, map[string]interface{}{"frequency_penalty": 5.0, "presence_penalty": -5.0})
	if got, want := out["frequency_penalty"], 2.0; got != want {
		t.Errorf("frequency_penalty = %v, want %v", got, want)
	}
	if got, want := out["presence_penalty"], -2.0; got != want {
		t.Errorf("presence_penalty = %v, want %v", got, want)
	}
}

func TestMap_RenamesPerProvider(t *testing.T) {
	canonical := map[string]interface{}{"max_tokens": 256, "top_p": 0.9, "stop": []string{"END"}}

	openai := Map(ProviderOpenAI, canonical)
	if openai["max_completion_tokens"] != 256 {
		t.Errorf("expected openai max_completion_tokens, got %+v", openai)
	}

	google := Map(ProviderGoogle, canonical)
	if google["maxOutputTokens"] != 256 || google["topP"] != 0.9 {
		t.Errorf("unexpected google mapping: %+v", google)
	}

	anthropic := Map(ProviderAnthropic, canonical)
	stops, ok := anthropic["stop_sequences"].([]string)
	if !ok || len(stops) != 1 || stops[0] != "END" {
		t.Errorf("expected anthropic stop_sequences to pass through unscaled, got %+v", anthropic)
	}
}

func TestMap_UnknownCanonicalKeyDroppedSilently(t *testing.T) {
	out := Map(ProviderOpenAI, map[string]interface{}{"not_a_real_param": 1})
	if len(out) != 0 {
		t.Errorf("expected an unknown canonical key to be dropped, got %+v", out)
	}
}

func TestMap_LogitBiasOnlySupportedByOpenAI(t *testing.T) {
	canonical := map[string]interface{}{"logit_bias": map[string]int{"123": -100}}

	openai := Map(ProviderOpenAI, canonical)
	if _, ok := openai["logit_bias"]; !ok {
		t.Error("expected openai to keep logit_bias")
	}

	google := Map(ProviderGoogle, canonical)
	if len(google) != 0 {
		t.Errorf("expected google to drop logit_bias, got %+v", google)
	}
}
