package prompt

import (
	"fmt"
	"math/rand"
	"time"
)

// writingPrompts is the built-in pool shown on writing reminders. Selection
// is deterministic per calendar day so every device of an account shows the
// same prompt without coordination.
var writingPrompts = []string{
	"What is on your mind right now?",
	"Describe one moment from today you want to remember.",
	"What are you grateful for today?",
	"What challenged you today, and how did you respond?",
	"Write about something you are looking forward to.",
	"What did you learn about yourself this week?",
	"If today had a title, what would it be?",
	"What would you tell yesterday's you?",
	"Describe today in three sentences.",
	"What small thing made you smile today?",
}

type Picker struct {
	pool []string
}

func NewPicker() *Picker {
	return &Picker{pool: writingPrompts}
}

// Pick maps a day-of-year to a pool index with a seeded generator: stable
// within a day, varying across days. No real randomness is wanted here.
func Pick(dayOfYear, poolSize int) int {
	if poolSize <= 0 {
		return 0
	}
	r := rand.New(rand.NewSource(int64(dayOfYear)))
	return r.Intn(poolSize)
}

// WritingPrompt returns the prompt body for the given day.
func (p *Picker) WritingPrompt(day time.Time) string {
	return p.pool[Pick(day.YearDay(), len(p.pool))]
}

// NudgeBody returns the fallback nudge body, personalized by the current
// streak length. The streak==0 variant is also the degraded form used when
// the streak lookup fails.
func (p *Picker) NudgeBody(streak int) string {
	if streak > 0 {
		return fmt.Sprintf("You haven't written yet today. Keep your %d-day streak alive!", streak)
	}
	return "You haven't written yet today. A few sentences still count."
}
