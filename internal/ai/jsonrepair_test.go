package ai

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractJSONDirect(t *testing.T) {
	raw := `{"summary":"short"}`
	data, err := extractJSON(raw)
	if err != nil {
		t.Fatalf("extractJSON: %v", err)
	}
	if string(data) != raw {
		t.Fatalf("extractJSON = %s, want %s", data, raw)
	}
}

func TestExtractJSONStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"summary\":\"short\"}\n```"
	data, err := extractJSON(raw)
	if err != nil {
		t.Fatalf("extractJSON: %v", err)
	}
	if string(data) != `{"summary":"short"}` {
		t.Fatalf("extractJSON = %s", data)
	}
}

func TestExtractJSONRepairsRawNewlines(t *testing.T) {
	raw := "{\"summary\":\"line one\nline two\"}"
	data, err := extractJSON(raw)
	if err != nil {
		t.Fatalf("extractJSON: %v", err)
	}
	var out struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Summary != "line one\nline two" {
		t.Fatalf("Summary = %q, want newline preserved", out.Summary)
	}
}

func TestExtractJSONTrimsSurroundingProse(t *testing.T) {
	raw := "Here is the result you asked for:\n{\"summary\":\"short\"}\nLet me know if you need more."
	data, err := extractJSON(raw)
	if err != nil {
		t.Fatalf("extractJSON: %v", err)
	}
	if string(data) != `{"summary":"short"}` {
		t.Fatalf("extractJSON = %s", data)
	}
}

func TestExtractJSONProseAndNewlines(t *testing.T) {
	raw := "Sure!\n```\n{\"summary\":\"a\nb\",\"insights\":[]}\n```"
	data, err := extractJSON(raw)
	if err != nil {
		t.Fatalf("extractJSON: %v", err)
	}
	if !json.Valid(data) {
		t.Fatalf("extractJSON produced invalid JSON: %s", data)
	}
}

func TestExtractJSONRejectsGarbage(t *testing.T) {
	if _, err := extractJSON("I could not produce a response."); err == nil {
		t.Fatal("extractJSON: want error for prose with no object")
	}
	if _, err := extractJSON(""); err == nil {
		t.Fatal("extractJSON: want error for empty input")
	}
}

func TestEscapeControlCharsOutsideStringsUntouched(t *testing.T) {
	raw := "{\n  \"a\": 1\n}"
	if got := escapeControlChars(raw); got != raw {
		t.Fatalf("escapeControlChars changed whitespace outside strings: %q", got)
	}
}

func TestClampTextRuneBoundary(t *testing.T) {
	// "é" is two bytes; a cap landing mid-rune must back up.
	s := strings.Repeat("a", 9) + "é"
	got := clampText(s, 10)
	if !utf8.ValidString(got) {
		t.Fatalf("clampText produced invalid UTF-8: %q", got)
	}
	if got != strings.Repeat("a", 9) {
		t.Fatalf("clampText = %q, want the partial rune dropped", got)
	}

	whole := clampText("héllo", 10)
	if whole != "héllo" {
		t.Fatalf("clampText = %q, want input under the cap untouched", whole)
	}
}

func TestClampTextList(t *testing.T) {
	in := []string{"  one  ", "two", "three", "four", "five", "six"}
	out := clampTextList(in, 5, 3)
	if len(out) != 5 {
		t.Fatalf("len = %d, want 5", len(out))
	}
	if out[0] != "one" {
		t.Fatalf("out[0] = %q, want trimmed and clamped", out[0])
	}
}
