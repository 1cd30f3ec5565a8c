package domain

import (
	"sort"
	"time"

	"backoffice/internal/domain/models"
)

// NextDayNumber returns the lowest positive day number not in existing.
// When 1..max are all taken it returns max+1, and 1 for an empty set.
func NextDayNumber(existing []int) int {
	nums := append([]int(nil), existing...)
	sort.Ints(nums)

	next := 1
	for _, n := range nums {
		if n < next {
			continue
		}
		if n > next {
			break
		}
		next++
	}
	return next
}

// MissingDayNumbers lists the numbers in 1..duration that are not taken,
// ascending.
func MissingDayNumbers(duration int, existing []int) []int {
	taken := make(map[int]struct{}, len(existing))
	for _, n := range existing {
		taken[n] = struct{}{}
	}
	out := []int{}
	for n := 1; n <= duration; n++ {
		if _, ok := taken[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}

// DayNumbers extracts day numbers from days.
func DayNumbers(days []models.Day) []int {
	out := make([]int, 0, len(days))
	for _, d := range days {
		out = append(out, d.DayNumber)
	}
	return out
}

// DayDate is start + (dayNumber-1) calendar days; day 1 falls on start.
// A missing start date is a validation failure, never "today".
func DayDate(start *time.Time, dayNumber int) (time.Time, error) {
	if start == nil || start.IsZero() {
		return time.Time{}, ValidationError{Field: "start_date", Msg: "itinerary has no start date"}
	}
	if dayNumber < 1 {
		return time.Time{}, ValidationError{Field: "day_number", Msg: "must be at least 1"}
	}
	y, m, d := start.Date()
	return time.Date(y, m, d+dayNumber-1, 0, 0, 0, 0, start.Location()), nil
}

// SortDays orders days by day number, never by storage order.
func SortDays(days []models.Day) {
	sort.SliceStable(days, func(i, j int) bool {
		if days[i].DayNumber != days[j].DayNumber {
			return days[i].DayNumber < days[j].DayNumber
		}
		return days[i].ID < days[j].ID
	})
}

// NextSortOrder is max(sort_order)+1 over a day's activities, or 0.
// Gaps left by deletions are never reused.
func NextSortOrder(existing []models.Activity) int {
	if len(existing) == 0 {
		return 0
	}
	top := existing[0].SortOrder
	for _, a := range existing[1:] {
		if a.SortOrder > top {
			top = a.SortOrder
		}
	}
	return top + 1
}

// SortActivities orders by day number, then sort order, then id.
func SortActivities(acts []models.Activity) {
	sort.SliceStable(acts, func(i, j int) bool {
		a, b := acts[i], acts[j]
		if a.DayNumber != b.DayNumber {
			return a.DayNumber < b.DayNumber
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.ID < b.ID
	})
}
