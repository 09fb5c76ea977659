// Package window decides when students may create or change a selection for a menu.
package window

import (
	"time"

	"hostelfood/internal/model"
)

// Result is the outcome of a window check for one menu.
type Result struct {
	Allowed bool       `json:"allowed"`
	Message string     `json:"message"`
	Start   *time.Time `json:"start"`
	End     *time.Time `json:"end"`
}

// Policy maps a meal type and menu date to the selection window.
type Policy interface {
	Window(mealType model.MealType, date string) Result
}

// AlwaysOpen keeps every menu open for selection: the window starts now and
// ends 24 hours later, whatever the meal type or date.
type AlwaysOpen struct {
	Now func() time.Time
}

// Window implements Policy.
func (p AlwaysOpen) Window(_ model.MealType, _ string) Result {
	now := clock(p.Now)
	end := now.Add(24 * time.Hour)
	return Result{
		Allowed: true,
		Message: "Selection window is open (testing mode)",
		Start:   &now,
		End:     &end,
	}
}

// band is a clock interval relative to midnight UTC of a day.
type band struct {
	dayOffset int
	start     time.Duration
	end       time.Duration
}

var mealBands = map[model.MealType]band{
	// 20:00-21:30 the evening before
	model.MealBreakfast: {dayOffset: -1, start: 20 * time.Hour, end: 21*time.Hour + 30*time.Minute},
	// 08:00-09:30 same day
	model.MealLunch: {start: 8 * time.Hour, end: 9*time.Hour + 30*time.Minute},
	// 11:30-14:00 same day
	model.MealDinner: {start: 11*time.Hour + 30*time.Minute, end: 14 * time.Hour},
}

// MealBands opens a fixed UTC clock window per meal type relative to the menu date.
type MealBands struct {
	Now func() time.Time
}

// Window implements Policy.
func (p MealBands) Window(mealType model.MealType, date string) Result {
	b, ok := mealBands[mealType]
	if !ok {
		return Result{Message: "Invalid meal type"}
	}
	day, err := time.ParseInLocation(model.DateLayout, date, time.UTC)
	if err != nil {
		return Result{Message: "Invalid menu date"}
	}

	day = day.AddDate(0, 0, b.dayOffset)
	start := day.Add(b.start)
	end := day.Add(b.end)
	now := clock(p.Now)

	allowed := !now.Before(start) && !now.After(end)
	message := "Selection window is closed"
	if allowed {
		message = "Selection window is open"
	}
	return Result{Allowed: allowed, Message: message, Start: &start, End: &end}
}

// New returns the policy registered under name, defaulting to AlwaysOpen.
func New(name string, now func() time.Time) Policy {
	if name == "meal_bands" {
		return MealBands{Now: now}
	}
	return AlwaysOpen{Now: now}
}

func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now().UTC()
	}
	return now().UTC()
}
