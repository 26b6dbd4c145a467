package tui

import (
	"context"
	"log/slog"
	"testing"
	"time"
)

func TestLogHandler_Enabled(t *testing.T) {
	h := NewLogHandler(slog.LevelWarn)
	ctx := context.Background()
	if h.Enabled(ctx, slog.LevelInfo) {
		t.Errorf("info should be disabled at warn level")
	}
	if !h.Enabled(ctx, slog.LevelError) {
		t.Errorf("error should be enabled at warn level")
	}
}

func TestLogHandler_DropsWithoutProgram(t *testing.T) {
	h := NewLogHandler(slog.LevelDebug)
	r := slog.NewRecord(time.Now(), slog.LevelWarn, "dropped", 0)
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle: %v", err)
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		attrs  []slog.Attr
		groups []string
		record []any
		want   string
	}{
		{name: "message only", want: "observer failed"},
		{name: "record attrs", record: []any{"id", 3}, want: "observer failed (id=3)"},
		{
			name:   "handler attrs first",
			attrs:  []slog.Attr{slog.String("component", "store")},
			record: []any{"id", 3},
			want:   "observer failed (component=store, id=3)",
		},
		{
			name:   "grouped",
			groups: []string{"tui"},
			record: []any{"id", 3},
			want:   "observer failed (tui.id=3)",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := slog.NewRecord(time.Now(), slog.LevelWarn, "observer failed", 0)
			r.Add(tt.record...)
			got := summarize(r, tt.attrs, tt.groups)
			if got.Summary != tt.want || got.Level != slog.LevelWarn {
				t.Fatalf("summarize = %+v, want %q", got, tt.want)
			}
		})
	}
}

func TestLogHandler_DerivedSharesProgram(t *testing.T) {
	h := NewLogHandler(slog.LevelInfo)
	derived := h.WithAttrs([]slog.Attr{slog.Int("n", 1)}).WithGroup("g").(*LogHandler)
	if derived.program != h.program {
		t.Fatalf("derived handler does not share the program pointer")
	}
	if len(h.attrs) != 0 || len(h.groups) != 0 {
		t.Fatalf("parent handler mutated: %+v", h)
	}
	if len(derived.attrs) != 1 || len(derived.groups) != 1 {
		t.Fatalf("derived handler state: attrs=%v groups=%v", derived.attrs, derived.groups)
	}
}
