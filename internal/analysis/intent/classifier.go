package intent

import "strings"

// Intent classifies a single inbound message. It is derived per message and
// never stored on the session.
type Intent string

const (
	Reset     Intent = "reset"
	Gratitude Intent = "gratitude"
	Pricing   Intent = "pricing"
	None      Intent = "none"
)

// resetKeywords restart the conversation from any stage. Matched exactly so
// a sentence that merely contains "hi" does not wipe the session.
var resetKeywords = map[string]bool{
	"hi":    true,
	"hello": true,
	"menu":  true,
	"start": true,
}

// gratitudeKeywords are short acknowledgements, also matched exactly.
var gratitudeKeywords = map[string]bool{
	"thanks":    true,
	"thank you": true,
	"thx":       true,
	"ok":        true,
	"okay":      true,
	"great":     true,
}

// pricingKeywords are matched by containment: pricing intent usually shows
// up inside longer sentences ("what's the price for a villa?").
var pricingKeywords = []string{
	"price",
	"pricing",
	"price list",
	"pricelist",
	"quote",
	"quotation",
	"estimate",
	"charge",
	"cost",
	"rate",
	"fee",
	"how much",
	"per sq ft",
	"sq ft",
	"psf",
}

// Detect returns the highest-priority intent for the message, in the order
// reset > gratitude > pricing.
func Detect(text string) Intent {
	switch {
	case IsReset(text):
		return Reset
	case IsGratitude(text):
		return Gratitude
	case IsPricing(text):
		return Pricing
	default:
		return None
	}
}

// IsReset reports whether the message is a greeting or menu command.
func IsReset(text string) bool {
	return resetKeywords[normalize(text)]
}

// IsGratitude reports whether the message is a short acknowledgement.
func IsGratitude(text string) bool {
	return gratitudeKeywords[normalize(text)]
}

// IsPricing reports whether the message carries pricing intent anywhere in
// its text.
func IsPricing(text string) bool {
	normalized := normalize(text)
	if normalized == "" {
		return false
	}
	for _, keyword := range pricingKeywords {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}
	return false
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
