package convo

import (
	"strings"
	"testing"
	"time"

	"github.com/servicezone/concierge/internal/model/convo"
)

func throttleController(t *testing.T) *Controller {
	t.Helper()
	c, _ := newTestController(t, testFlow(), Deps{})
	return c
}

func TestHandoffFirstTimeEmitsFullPayload(t *testing.T) {
	c := throttleController(t)
	now := time.Unix(1700000000, 0).UTC()
	sess := &convo.Session{UserKey: "+971", Service: "Villa painting service"}

	segments := c.handoff(sess, now)
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	if !strings.Contains(segments[0], "Villa painting service") {
		t.Fatalf("connecting message must name the service: %s", segments[0])
	}
	if !sess.LastHandoffAt.Equal(now) {
		t.Fatalf("LastHandoffAt = %v, want %v", sess.LastHandoffAt, now)
	}
}

func TestHandoffWithinCooldownEmitsRepeatNotice(t *testing.T) {
	c := throttleController(t)
	stamped := time.Unix(1700000000, 0).UTC()
	sess := &convo.Session{UserKey: "+971", LastHandoffAt: stamped}

	segments := c.handoff(sess, stamped.Add(10*time.Second))
	if len(segments) != 1 {
		t.Fatalf("expected repeat notice only, got %d segments", len(segments))
	}
	if !strings.Contains(segments[0], "already shared") {
		t.Fatalf("unexpected notice: %s", segments[0])
	}
	if !sess.LastHandoffAt.Equal(stamped) {
		t.Fatalf("LastHandoffAt moved to %v", sess.LastHandoffAt)
	}
}

func TestHandoffAfterCooldownResendsPayload(t *testing.T) {
	c := throttleController(t)
	stamped := time.Unix(1700000000, 0).UTC()
	sess := &convo.Session{UserKey: "+971", LastHandoffAt: stamped}

	later := stamped.Add(31 * time.Second)
	segments := c.handoff(sess, later)
	if len(segments) != 3 {
		t.Fatalf("expected full payload after cooldown, got %d segments", len(segments))
	}
	if !sess.LastHandoffAt.Equal(later) {
		t.Fatalf("LastHandoffAt = %v, want %v", sess.LastHandoffAt, later)
	}
}

func TestHandoffDefaultsServiceName(t *testing.T) {
	c := throttleController(t)
	sess := &convo.Session{UserKey: "+971"}

	segments := c.handoff(sess, time.Unix(1700000000, 0).UTC())
	if !strings.Contains(segments[0], "painting estimator") {
		t.Fatalf("expected generic service name: %s", segments[0])
	}
}

func TestReferenceCodeDeterministic(t *testing.T) {
	at := time.Unix(1700000000, 0)

	a := referenceCode("+97150", at)
	b := referenceCode("+97150", at)
	if a == "" || a != b {
		t.Fatalf("expected stable code, got %q and %q", a, b)
	}

	if referenceCode("+97151", at) == a {
		t.Fatal("different keys should yield different codes")
	}
	if referenceCode("+97150", at.Add(time.Minute)) == a {
		t.Fatal("different times should yield different codes")
	}
}
