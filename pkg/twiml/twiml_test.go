package twiml

import (
	"strings"
	"testing"
)

func TestRenderSingleSegment(t *testing.T) {
	doc, err := Render([]string{"hello"})
	if err != nil {
		t.Fatalf("Render err: %v", err)
	}
	want := Header + "<Response><Message>hello</Message></Response>"
	if doc != want {
		t.Fatalf("got %s, want %s", doc, want)
	}
}

func TestRenderPreservesSegmentOrder(t *testing.T) {
	doc, err := Render([]string{"first", "second", "third"})
	if err != nil {
		t.Fatalf("Render err: %v", err)
	}
	if strings.Index(doc, "first") > strings.Index(doc, "second") ||
		strings.Index(doc, "second") > strings.Index(doc, "third") {
		t.Fatalf("segments out of order: %s", doc)
	}
	if got := strings.Count(doc, "<Message>"); got != 3 {
		t.Fatalf("expected 3 messages, got %d", got)
	}
}

func TestRenderEscapesMarkup(t *testing.T) {
	doc, err := Render([]string{`<script>alert("x")</script> & more`})
	if err != nil {
		t.Fatalf("Render err: %v", err)
	}
	if strings.Contains(doc, "<script>") {
		t.Fatalf("markup not escaped: %s", doc)
	}
	if !strings.Contains(doc, "&amp; more") {
		t.Fatalf("ampersand not escaped: %s", doc)
	}
}

func TestRenderEmpty(t *testing.T) {
	doc, err := Render(nil)
	if err != nil {
		t.Fatalf("Render err: %v", err)
	}
	if !strings.Contains(doc, "<Response>") {
		t.Fatalf("expected empty response element: %s", doc)
	}
}
