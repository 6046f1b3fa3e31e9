package sentences

import (
	"strings"
	"testing"

	"github.com/abhisek/shadowbox/internal/pace"
)

func TestBuildUserMessage_Contents(t *testing.T) {
	input := GenerateInput{
		Language: "fr",
		Level:    pace.Beginner,
		Topic:    "ordering food",
		Count:    4,
		Recent:   []string{"Bonjour tout le monde."},
	}

	msg := buildUserMessage(input, DefaultConfig())

	for _, want := range []string{
		"Language: fr",
		"Level: beginner (3-8 words per sentence)",
		"Topic: ordering food",
		"Sentences: 4",
		"Avoid repeating:",
		"1. Bonjour tout le monde.",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildUserMessage_NoTopicNoRecent(t *testing.T) {
	msg := buildUserMessage(GenerateInput{Language: "en", Level: pace.Advanced, Count: 5}, DefaultConfig())

	if strings.Contains(msg, "Topic:") {
		t.Errorf("empty topic should be omitted:\n%s", msg)
	}
	if !strings.Contains(msg, "Avoid repeating:\nNone") {
		t.Errorf("expected 'None' avoid list:\n%s", msg)
	}
	if !strings.Contains(msg, "Level: advanced (6-20 words per sentence)") {
		t.Errorf("expected advanced band:\n%s", msg)
	}
}

func TestBuildUserMessage_UnknownLevelFallsBack(t *testing.T) {
	msg := buildUserMessage(GenerateInput{Language: "en", Level: "weird", Count: 3}, DefaultConfig())
	if !strings.Contains(msg, "Level: intermediate (4-12 words per sentence)") {
		t.Errorf("expected intermediate fallback:\n%s", msg)
	}
}

func TestBuildAvoidList_KeepsMostRecent(t *testing.T) {
	recent := []string{"One old.", "Two old.", "Three new.", "Four new."}

	got := buildAvoidList(recent, 2)

	if strings.Contains(got, "One old.") || strings.Contains(got, "Two old.") {
		t.Errorf("expected the oldest entries trimmed:\n%s", got)
	}
	if !strings.Contains(got, "1. Three new.") || !strings.Contains(got, "2. Four new.") {
		t.Errorf("expected the newest entries renumbered:\n%s", got)
	}
}

func TestBuildAvoidList_Empty(t *testing.T) {
	if got := buildAvoidList(nil, 12); got != "None" {
		t.Errorf("expected None, got %q", got)
	}
}

func TestBuildAvoidList_NoLimit(t *testing.T) {
	got := buildAvoidList([]string{"A.", "B."}, 0)
	if !strings.Contains(got, "1. A.") || !strings.Contains(got, "2. B.") {
		t.Errorf("zero max should keep everything:\n%s", got)
	}
}
