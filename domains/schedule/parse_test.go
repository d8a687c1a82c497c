package schedule

import (
	"testing"
	"time"
)

func TestParsePhrase(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		input string
		want  time.Time
	}{
		{"today at 3pm", time.Date(2025, 1, 15, 15, 0, 0, 0, time.UTC)},
		{"today at 3:45pm", time.Date(2025, 1, 15, 15, 45, 0, 0, time.UTC)},
		{"tomorrow at 10", time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC)},
		{"tomorrow at 10am", time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC)},
		{"Today at 9AM", time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)},
		{"  tomorrow at 18:30  ", time.Date(2025, 1, 16, 18, 30, 0, 0, time.UTC)},
		{"today at 12pm", time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			descriptor := ParsePhrase(tc.input, now)
			if descriptor.Kind != KindOneTime {
				t.Fatalf("Kind = %q, want %q", descriptor.Kind, KindOneTime)
			}
			if !descriptor.At.Equal(tc.want) {
				t.Fatalf("At = %v, want %v", descriptor.At, tc.want)
			}
		})
	}
}

func TestParsePhrase_Fallback(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	want := time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC)

	for _, input := range []string{
		"",
		"next friday",
		"today at 25pm",
		"whenever",
		"today at",
	} {
		descriptor := ParsePhrase(input, now)
		if !descriptor.At.Equal(want) {
			t.Fatalf("ParsePhrase(%q).At = %v, want fallback %v", input, descriptor.At, want)
		}
	}
}
