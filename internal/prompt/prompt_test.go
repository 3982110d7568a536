package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func TestTerminalAsk(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("first\r\nsecond\nlast"), &out)

	for _, want := range []string{"first", "second", "last"} {
		got, err := term.Ask("Question?")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Fatalf("Ask() = %q; want %q", got, want)
		}
	}

	got, err := term.Ask("Again?")
	if err != io.EOF {
		t.Fatalf("expected io.EOF after input is exhausted, got %q, %v", got, err)
	}

	if !strings.Contains(out.String(), "Question? ") {
		t.Errorf("question not printed: %q", out.String())
	}
}

func TestTerminalAskKeepsInnerWhitespace(t *testing.T) {
	term := NewTerminal(strings.NewReader("  FOO=a b  \n"), io.Discard)

	got, err := term.Ask("Line:")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "  FOO=a b  " {
		t.Fatalf("Ask() = %q; want the line without its terminator only", got)
	}
}

func TestTerminalAskBlock(t *testing.T) {
	term := NewTerminal(strings.NewReader("name\nsrun hostname\necho done\n"), io.Discard)

	if _, err := term.Ask("Name:"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	block, err := term.AskBlock("Commands:")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if block != "srun hostname\necho done\n" {
		t.Fatalf("AskBlock() = %q", block)
	}

	block, err = term.AskBlock("More:")
	if err != nil || block != "" {
		t.Fatalf("AskBlock() after EOF = %q, %v; want empty", block, err)
	}
}

func TestTerminalSayAndWarn(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(""), &out)

	term.Say("  %d) %s", 1, "compute")
	term.Warn("bad value %q", "x")

	got := out.String()
	if !strings.Contains(got, "  1) compute\n") {
		t.Errorf("Say output missing: %q", got)
	}
	if !strings.Contains(got, "[SLG][WARN] bad value \"x\"\n") {
		t.Errorf("Warn output missing: %q", got)
	}
}
