package intent

import "testing"

func TestDetectReset(t *testing.T) {
	for _, text := range []string{"hi", "HELLO", " Menu ", "start"} {
		if got := Detect(text); got != Reset {
			t.Fatalf("Detect(%q) = %s, want reset", text, got)
		}
	}
}

func TestResetRequiresExactMatch(t *testing.T) {
	// "hi" inside a sentence must not wipe a session.
	for _, text := range []string{"hi there", "this is my menu", "starting over"} {
		if IsReset(text) {
			t.Fatalf("IsReset(%q) = true, want false", text)
		}
	}
}

func TestDetectGratitude(t *testing.T) {
	for _, text := range []string{"thanks", "Thank You", "thx", "ok", "great"} {
		if got := Detect(text); got != Gratitude {
			t.Fatalf("Detect(%q) = %s, want gratitude", text, got)
		}
	}

	if IsGratitude("thanks for nothing") {
		t.Fatal("gratitude must be an exact match")
	}
}

func TestDetectPricingBySubstring(t *testing.T) {
	for _, text := range []string{
		"price",
		"what's the price for a villa?",
		"can I get a quote",
		"How Much would it cost",
		"rates per sq ft please",
	} {
		if got := Detect(text); got != Pricing {
			t.Fatalf("Detect(%q) = %s, want pricing", text, got)
		}
	}
}

func TestDetectNone(t *testing.T) {
	for _, text := range []string{"", "   ", "my wall is peeling", "2"} {
		if got := Detect(text); got != None {
			t.Fatalf("Detect(%q) = %s, want none", text, got)
		}
	}
}

func TestResetWinsOverPricing(t *testing.T) {
	// Not a realistic message, but priority must hold whenever both match.
	if got := Detect("menu"); got != Reset {
		t.Fatalf("Detect(menu) = %s, want reset", got)
	}
}
