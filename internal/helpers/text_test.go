package helpers

import (
	"testing"
	"time"
)

func TestSplitList(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"commas", "a, b , c", []string{"a", "b", "c"}},
		{"newlines", "a\nb\r\nc", []string{"a", "b", "c"}},
		{"mixed", "a, b\nc,", []string{"a", "b", "c"}},
		{"blanks dropped", " , ,\n", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitList(tc.input)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v want %v", got, tc.want)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("item %d: got %q want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestParseEnergyPattern(t *testing.T) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	got := ParseEnergyPattern("09:00 5\n14:30=3\n16:00-2", day)
	if len(got) != 3 {
		t.Fatalf("expected 3 samples, got %v", got)
	}
	if got[0].Level != 5 || got[0].At.Hour() != 9 {
		t.Fatalf("unexpected first sample: %+v", got[0])
	}
	if got[1].At.Hour() != 14 || got[1].At.Minute() != 30 {
		t.Fatalf("'=' separator not handled: %+v", got[1])
	}
	if got[2].Level != 2 || got[2].At.Hour() != 16 {
		t.Fatalf("'-' separator not handled: %+v", got[2])
	}
}

func TestParseEnergyPatternSkipsBadLines(t *testing.T) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	got := ParseEnergyPattern("oops\n25:00 3\n09:00 9\n10:00 x\n11:00 4", day)
	if len(got) != 1 {
		t.Fatalf("expected only valid sample, got %v", got)
	}
	if got[0].Level != 4 || got[0].At.Hour() != 11 {
		t.Fatalf("unexpected sample: %+v", got[0])
	}
}
