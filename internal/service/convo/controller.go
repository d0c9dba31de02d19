package convo

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/servicezone/concierge/internal/analysis/intent"
	"github.com/servicezone/concierge/internal/config"
	"github.com/servicezone/concierge/internal/model/catalog"
	"github.com/servicezone/concierge/internal/model/convo"
)

// Delegate answers free-form questions the stage machine cannot classify.
type Delegate interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Notifier pings a human administrator about a handoff. Best effort: the
// implementation logs its own failures, the caller never waits on it.
type Notifier interface {
	Notify(ctx context.Context, userKey, body string) error
}

// EventSink receives one event per processed inbound message.
type EventSink interface {
	Publish(userKey string, stage convo.Stage, inbound string, replies []string)
}

// Deps carries the controller's optional collaborators. Any of them may be
// nil; the controller degrades to fixed replies instead of failing.
type Deps struct {
	Fallback Delegate
	Notifier Notifier
	Events   EventSink
}

// Controller turns one inbound message into the ordered reply segments for
// the channel. Global overrides (reset, gratitude, pricing) are checked
// before the per-stage transition table on every message.
type Controller struct {
	store    *Store
	services *catalog.Catalog
	slots    *catalog.Catalog
	expert   config.ExpertConfig

	fallback Delegate
	notifier Notifier
	events   EventSink

	cooldown        time.Duration
	fallbackTimeout time.Duration
	reschedule      bool

	now func() time.Time
}

// NewController wires the conversation controller.
func NewController(store *Store, services, slots *catalog.Catalog, flow config.FlowConfig, expert config.ExpertConfig, deps Deps) *Controller {
	return &Controller{
		store:           store,
		services:        services,
		slots:           slots,
		expert:          expert,
		fallback:        deps.Fallback,
		notifier:        deps.Notifier,
		events:          deps.Events,
		cooldown:        flow.HandoffCooldown,
		fallbackTimeout: flow.FallbackTimeout,
		reschedule:      flow.RescheduleEnabled,
		now:             time.Now,
	}
}

// outcome is the result of one decision pass over a locked session.
type outcome struct {
	segments []string

	// fallback asks Handle to consult the delegate after the lock is
	// released; unavailable is the reply used when no delegate is wired.
	fallback    bool
	unavailable string

	// notify is set when the full handoff payload was emitted.
	notify bool

	// session snapshot taken inside the critical section.
	stage    convo.Stage
	service  string
	location string
}

// Handle processes one inbound message and returns the reply segments in
// delivery order. It never returns an empty slice and never fails: input
// malformation, delegate errors and notification errors all degrade to
// fixed replies.
func (c *Controller) Handle(ctx context.Context, rawFrom, rawBody string) []string {
	key := NormalizeUserKey(rawFrom)
	body := strings.TrimSpace(rawBody)

	var out outcome
	c.store.With(key, func(sess *convo.Session) {
		out = c.decide(sess, body)
		out.stage = sess.Stage
		out.service = sess.Service
		out.location = sess.Location
	})

	segments := out.segments
	if out.fallback {
		// Delegate calls are network-bound; they run on the snapshot taken
		// above, outside the per-user critical section.
		segments = append(segments, c.fallbackAnswer(ctx, body, out.unavailable))
	}

	if out.notify {
		c.notifyAdmin(key, body, out)
	}
	if c.events != nil {
		c.events.Publish(key, out.stage, body, segments)
	}

	return segments
}

// decide applies global overrides, then the stage transition table. It runs
// under the session's lock and must not block.
func (c *Controller) decide(sess *convo.Session, body string) outcome {
	now := c.now().UTC()

	switch intent.Detect(body) {
	case intent.Reset:
		// Universal escape hatch: nothing from the old session survives.
		*sess = convo.Session{
			UserKey:   sess.UserKey,
			Stage:     convo.StageWaitingService,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return outcome{segments: []string{renderServiceMenu(c.services)}}

	case intent.Gratitude:
		return outcome{segments: []string{replyGratitude}}

	case intent.Pricing:
		if sess.Stage == convo.StageHandoff {
			// Expert already engaged; short form, no throttle check.
			return outcome{segments: []string{replyAlreadyConnected}}
		}
		segments := c.handoff(sess, now)
		sess.Stage = convo.StageHandoff
		return outcome{segments: segments, notify: len(segments) > 1}
	}

	switch sess.Stage {
	case convo.StageHandoff:
		return outcome{fallback: true, unavailable: replyApology}

	case convo.StageDone:
		return c.decideDone(sess, body)

	case convo.StageWaitingService:
		if label, ok := c.services.Lookup(body); ok {
			sess.Service = label
			sess.Stage = convo.StageWaitingLocation
			return outcome{segments: []string{renderLocationPrompt(label)}}
		}
		// Re-prompting with the menu keeps first contact useful even when
		// no delegate is configured.
		return outcome{fallback: true, unavailable: renderServiceMenu(c.services)}

	case convo.StageWaitingLocation:
		if body == "" {
			return outcome{segments: []string{replyLocationRequired}}
		}
		sess.Location = body
		sess.Stage = convo.StageOfferActions
		return outcome{segments: []string{renderActionMenu(body)}}

	case convo.StageOfferActions:
		switch body {
		case "1":
			sess.Stage = convo.StageChooseSlot
			return outcome{segments: []string{renderSlotMenu(c.slots)}}
		case "2":
			segments := c.handoff(sess, now)
			sess.Stage = convo.StageHandoff
			return outcome{segments: segments, notify: len(segments) > 1}
		default:
			return outcome{segments: []string{replyActionRequired}}
		}

	case convo.StageChooseSlot:
		label, ok := c.slots.Lookup(body)
		if !ok {
			return outcome{fallback: true, unavailable: replyInvalidSlot}
		}
		sess.Slot = label
		if c.reschedule {
			sess.Stage = convo.StageDone
		} else {
			sess.Stage = convo.StageHandoff
		}
		return outcome{segments: []string{renderBookingConfirmation(label, sess.Location, c.reschedule)}}
	}

	return outcome{fallback: true, unavailable: replyApology}
}

// decideDone handles the post-booking loop, only reachable with the
// reschedule flow enabled.
func (c *Controller) decideDone(sess *convo.Session, body string) outcome {
	switch strings.ToLower(body) {
	case "reschedule":
		sess.Stage = convo.StageChooseSlot
		return outcome{segments: []string{renderSlotMenu(c.slots)}}
	case "cancel":
		sess.Slot = ""
		sess.Stage = convo.StageOfferActions
		return outcome{segments: []string{renderCancelled()}}
	default:
		return outcome{fallback: true, unavailable: replyApology}
	}
}

// fallbackAnswer consults the delegate with a bounded timeout. Any failure
// degrades to the fixed apology; without a delegate the stage-specific
// prompt is used instead.
func (c *Controller) fallbackAnswer(ctx context.Context, question, unavailable string) string {
	if c.fallback == nil {
		return unavailable
	}

	ctx, cancel := context.WithTimeout(ctx, c.fallbackTimeout)
	defer cancel()

	answer, err := c.fallback.Answer(ctx, question)
	if err != nil {
		log.Printf("[convo] fallback delegate failed: %v", err)
		return replyApology
	}
	if strings.TrimSpace(answer) == "" {
		return replyApology
	}
	return answer
}

// notifyAdmin fires the administrator notification without blocking the
// reply path.
func (c *Controller) notifyAdmin(userKey, body string, out outcome) {
	if c.notifier == nil {
		return
	}

	service := out.service
	if service == "" {
		service = "unspecified"
	}
	location := out.location
	if location == "" {
		location = "unspecified"
	}
	msg := fmt.Sprintf("Expert handoff requested by %s (service: %s, location: %s). Last message: %q",
		userKey, service, location, body)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.notifier.Notify(ctx, userKey, msg); err != nil {
			log.Printf("[notify] admin notification failed: %v", err)
		}
	}()
}
