package utils

import (
	"testing"
)

type toolEnvelope struct {
	Tool string            `json:"tool"`
	Args map[string]string `json:"args"`
}

func TestSmartParseStrictJSON(t *testing.T) {
	var env toolEnvelope
	if _, err := SmartParse(`{"tool":"get_data_summary","args":{}}`, &env); err != nil {
		t.Fatalf("strict JSON should parse: %v", err)
	}
	if env.Tool != "get_data_summary" {
		t.Errorf("unexpected tool: %q", env.Tool)
	}
}

func TestSmartParseRepairsFencedJSON(t *testing.T) {
	input := "```json\n{'tool': 'compare_periods', 'args': {'period1': '2023'},}\n```"
	var env toolEnvelope
	if _, err := SmartParse(input, &env); err != nil {
		t.Fatalf("repairable JSON should parse: %v", err)
	}
	if env.Tool != "compare_periods" || env.Args["period1"] != "2023" {
		t.Errorf("unexpected parse result: %+v", env)
	}
}

func TestSmartParseGivesUp(t *testing.T) {
	var env toolEnvelope
	if _, err := SmartParse("I would rather chat about the weather.", &env); err == nil {
		// Plain prose may survive repair as a bare string, but it must not
		// populate the envelope.
		if env.Tool != "" {
			t.Errorf("prose should not produce a tool call: %+v", env)
		}
	}
}

func TestValidateMarkdownAcceptsNormalReplies(t *testing.T) {
	if !ValidateMarkdown("# Analysis\n\n- Revenue: **up 50%**\n") {
		t.Error("well-formed markdown should validate")
	}
	if !ValidateMarkdown("plain sentence, no markup") {
		t.Error("plain text is valid markdown")
	}
}

func TestCleanMarkdownStripsFence(t *testing.T) {
	in := "```markdown\n# Analysis\n\nRevenue grew 50%.\n```"
	want := "# Analysis\n\nRevenue grew 50%."
	if got := CleanMarkdown(in); got != want {
		t.Errorf("CleanMarkdown = %q, want %q", got, want)
	}
	if got := CleanMarkdown("  plain text  "); got != "plain text" {
		t.Errorf("plain text should just be trimmed, got %q", got)
	}
}
