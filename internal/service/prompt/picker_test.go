package prompt

import (
	"strings"
	"testing"
	"time"
)

func TestPickDeterministicPerDay(t *testing.T) {
	for day := 1; day <= 366; day++ {
		first := Pick(day, 10)
		for i := 0; i < 5; i++ {
			if got := Pick(day, 10); got != first {
				t.Fatalf("Pick(%d, 10) unstable: %d then %d", day, first, got)
			}
		}
		if first < 0 || first >= 10 {
			t.Fatalf("Pick(%d, 10) = %d out of range", day, first)
		}
	}
}

func TestPickVariesAcrossDays(t *testing.T) {
	seen := make(map[int]bool)
	for day := 1; day <= 30; day++ {
		seen[Pick(day, 10)] = true
	}
	if len(seen) < 2 {
		t.Errorf("expected variation across days, saw only %d distinct indices", len(seen))
	}
}

func TestPickEmptyPool(t *testing.T) {
	if got := Pick(42, 0); got != 0 {
		t.Errorf("Pick with empty pool = %d, want 0", got)
	}
}

func TestWritingPromptStableWithinDay(t *testing.T) {
	p := NewPicker()
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)

	morning := p.WritingPrompt(day.Add(8 * time.Hour))
	evening := p.WritingPrompt(day.Add(21 * time.Hour))

	if morning != evening {
		t.Errorf("prompt changed within a day: %q vs %q", morning, evening)
	}
	if morning == "" {
		t.Error("empty prompt")
	}
}

func TestNudgeBodyVariants(t *testing.T) {
	p := NewPicker()

	withStreak := p.NudgeBody(12)
	if !strings.Contains(withStreak, "12") {
		t.Errorf("streak variant must mention the streak length, got %q", withStreak)
	}

	zero := p.NudgeBody(0)
	if zero == withStreak {
		t.Error("streak and zero variants must differ")
	}
	if strings.Contains(zero, "streak") {
		t.Errorf("zero variant must not reference a streak, got %q", zero)
	}
}
