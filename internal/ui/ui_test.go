package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func useMono(t *testing.T) {
	t.Helper()
	prev := lipgloss.ColorProfile()
	SetTheme("mono")
	t.Cleanup(func() {
		SetTheme("classic")
		lipgloss.SetColorProfile(prev)
	})
}

func TestPanelString_Frames(t *testing.T) {
	useMono(t)

	got := PanelString([]string{"Todos", "#0 Buy milk"}, 80)
	want := strings.Join([]string{
		"+-------------+",
		"| Todos       |",
		"| #0 Buy milk |",
		"+-------------+",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("PanelString:\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPanelString_TruncatesToWidth(t *testing.T) {
	useMono(t)

	got := PanelString([]string{strings.Repeat("x", 50)}, 20)
	for _, line := range strings.Split(strings.TrimSuffix(got, "\n"), "\n") {
		if w := ansi.StringWidth(line); w > 20 {
			t.Fatalf("line %q is %d cells wide, limit 20", line, w)
		}
	}
	if !strings.Contains(got, "…") {
		t.Fatalf("expected an ellipsis in %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much longer text", 5, "much…"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestOKAndFail_UseOutputs(t *testing.T) {
	useMono(t)
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	defer SetOutput(os.Stdout, os.Stderr)

	OK("added")
	Fail("rm: item not found: 3")

	if out.String() != "ok added\n" {
		t.Errorf("OK wrote %q", out.String())
	}
	if errOut.String() != "x rm: item not found: 3\n" {
		t.Errorf("Fail wrote %q", errOut.String())
	}
}

func TestSetTheme_UnknownFallsBackToClassic(t *testing.T) {
	SetTheme("pink")
	if Current().Name != "classic" {
		t.Fatalf("expected classic theme, got %q", Current().Name)
	}
	SetTheme("NEON")
	if Current().Name != "neon" {
		t.Fatalf("expected neon theme, got %q", Current().Name)
	}
	SetTheme("classic")
}

func TestSetColorForcing_Disable(t *testing.T) {
	prev := lipgloss.ColorProfile()
	defer lipgloss.SetColorProfile(prev)

	SetColorForcing(true, true)
	if lipgloss.ColorProfile() != termenv.Ascii {
		t.Fatalf("expected ascii profile, got %v", lipgloss.ColorProfile())
	}
	SetColorForcing(true, false)
	if lipgloss.ColorProfile() != termenv.ANSI256 {
		t.Fatalf("expected ANSI256 profile, got %v", lipgloss.ColorProfile())
	}
}
