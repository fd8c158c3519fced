package progress

import (
	"fmt"
	"math"
	"time"

	"github.com/jonathan/course-progress/internal/types"
)

// DefaultDeadline is the last day of class.
var DefaultDeadline = time.Date(2026, time.January, 20, 23, 59, 59, 0, time.Local)

// CourseStats is the completion state of one course.
type CourseStats struct {
	URL       string
	Name      string
	Completed int
	Total     int
	Percent   int
	Error     bool
}

// Summary is everything the presentation layer shows about a category.
type Summary struct {
	Courses   []CourseStats
	Completed int
	Total     int
	Percent   int
	// Orphaned counts completed hrefs that no loaded course lists any more.
	// They stay in the stored record but are excluded from Completed.
	Orphaned  int
	Countdown Countdown
	PerDay    float64
}

// Summarize cross-references a load result with the category's record.
// Only hrefs that appear in their course's current list count as completed.
// Courses that failed to load are skipped entirely: their stored hrefs are
// neither counted nor reported as orphaned.
func Summarize(result *types.CategoryResult, record types.CompletionRecord, now, deadline time.Time) Summary {
	summary := Summary{Countdown: NewCountdown(now, deadline)}

	for _, url := range result.Order {
		course := result.Courses[url]
		stats := CourseStats{URL: url, Name: course.Name, Error: course.Error}
		if course.Error {
			summary.Courses = append(summary.Courses, stats)
			continue
		}

		stats.Total = len(course.Assignments)
		for _, href := range record.Hrefs(url) {
			if course.HasAssignment(href) {
				stats.Completed++
			} else {
				summary.Orphaned++
			}
		}
		stats.Percent = Percent(stats.Completed, stats.Total)

		summary.Completed += stats.Completed
		summary.Total += stats.Total
		summary.Courses = append(summary.Courses, stats)
	}

	for url := range record {
		if _, known := result.Courses[url]; !known {
			summary.Orphaned += len(record.Hrefs(url))
		}
	}

	summary.Percent = Percent(summary.Completed, summary.Total)
	summary.PerDay = PerDay(summary.Total, summary.Completed, summary.Countdown.Days)
	return summary
}

// Percent returns completed/total as a whole percentage, 0 when total is 0.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// PerDay is how many assignments must be finished each remaining day to
// complete everything by the deadline. It is 0 once the deadline has passed
// or nothing remains.
func PerDay(total, completed, daysLeft int) float64 {
	remaining := total - completed
	if daysLeft <= 0 || remaining <= 0 {
		return 0
	}
	return float64(remaining) / float64(daysLeft)
}

// Countdown is the time remaining until the deadline.
type Countdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
	Ended   bool
}

// NewCountdown splits the time from now to deadline into whole units.
func NewCountdown(now, deadline time.Time) Countdown {
	diff := deadline.Sub(now)
	if diff <= 0 {
		return Countdown{Ended: true}
	}

	const day = 24 * time.Hour
	return Countdown{
		Days:    int(diff / day),
		Hours:   int(diff % day / time.Hour),
		Minutes: int(diff % time.Hour / time.Minute),
		Seconds: int(diff % time.Minute / time.Second),
	}
}

func (c Countdown) String() string {
	if c.Ended {
		return "Class has ended!"
	}
	return fmt.Sprintf("%dd %dh %dm %ds", c.Days, c.Hours, c.Minutes, c.Seconds)
}
