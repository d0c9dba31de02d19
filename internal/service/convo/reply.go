package convo

import (
	"fmt"
	"strings"

	"github.com/servicezone/concierge/internal/model/catalog"
)

// Fixed reply texts. Every code path must yield at least one segment, so
// each dead end below has a prompt of its own.
const (
	replyApology = "I didn't get that, type MENU to restart"

	replyGratitude = "You're welcome! If you'd like, you can book a free site visit or talk to an expert.\n" +
		"1. Book free site visit\n2. Talk to expert"

	replyAlreadyConnected = "You're already connected with our estimator. Please continue with them directly."

	replyHandoffRepeat = "We've already shared the expert's contact, they'll be with you shortly."

	replyLocationRequired = "Please type your location so we can plan the visit.\n" +
		"Examples: JVC - Seasons Community, Business Bay - Bay Square, Marina - Torch Tower"

	replyActionRequired = "Please reply with 1 or 2.\n1. Book free site visit\n2. Talk to expert"

	replyInvalidSlot = "That slot is not on the list. Please reply with one of the numbers shown."
)

func renderServiceMenu(services *catalog.Catalog) string {
	var b strings.Builder
	b.WriteString("*Welcome to ServiceZone UAE! Please choose a painting service to get started:*\n\n")
	for _, e := range services.Entries() {
		fmt.Fprintf(&b, "%s. %s\n", e.Key, e.Label)
	}
	fmt.Fprintf(&b, "Reply with the number of your choice (1 to %d)", services.Len())
	return b.String()
}

func renderLocationPrompt(service string) string {
	return fmt.Sprintf("*Great - %s*\n"+
		"Please type your location\n"+
		"Examples: JVC - Seasons Community, Business Bay - Bay Square, Marina - Torch Tower", service)
}

func renderActionMenu(location string) string {
	return fmt.Sprintf("*Got it: %s*\n\nWhat would you like to do next?\n"+
		"1. Book free site visit\n"+
		"2. Talk to expert\n"+
		"Reply with 1 or 2", location)
}

func renderSlotMenu(slots *catalog.Catalog) string {
	var b strings.Builder
	b.WriteString("*Please choose a time slot:*\n")
	keys := make([]string, 0, slots.Len())
	for _, e := range slots.Entries() {
		fmt.Fprintf(&b, "%s. %s\n", e.Key, e.Label)
		keys = append(keys, e.Key)
	}
	fmt.Fprintf(&b, "Reply with %s", joinKeys(keys))
	return b.String()
}

func renderBookingConfirmation(slot, location string, reschedulable bool) string {
	if location == "" {
		location = "-"
	}
	text := fmt.Sprintf("*Booked!*\nSlot: *%s*\nLocation: *%s*", slot, location)
	if reschedulable {
		text += "\n\nReply *RESCHEDULE* or *CANCEL* anytime."
	}
	return text
}

func renderCancelled() string {
	return "Cancelled. What would you like to do next?\n" +
		"1. Book free site visit\n" +
		"2. Talk to expert"
}

func (c *Controller) renderHandoffPayload(service, refCode string) []string {
	if service == "" {
		service = "painting"
	}
	link := c.expert.WALink
	if refCode != "" {
		link += "?text=" + refCode
	}
	return []string{
		fmt.Sprintf("Got it - connecting you to our %s estimator now.", service),
		fmt.Sprintf("%s (%s)", c.expert.Name, c.expert.Phone),
		fmt.Sprintf("You can also chat directly here: %s", link),
	}
}

// joinKeys formats catalog keys as "1, 2 or 3".
func joinKeys(keys []string) string {
	switch len(keys) {
	case 0:
		return ""
	case 1:
		return keys[0]
	default:
		return strings.Join(keys[:len(keys)-1], ", ") + " or " + keys[len(keys)-1]
	}
}
