package journal

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/solacejournal/solace-backend/internal/query"
	"github.com/solacejournal/solace-backend/internal/store"
)

// MoodAnalytics aggregates mood data over a user's non-archived entries.
type MoodAnalytics struct {
	AverageMood      float64          `json:"averageMood"`
	MoodDistribution map[string]int   `json:"moodDistribution"`
	MoodTrend        []MoodTrendPoint `json:"moodTrend"`
	TotalEntries     int              `json:"totalEntries"`
}

// MoodTrendPoint is the mean mood rating of one UTC calendar day.
type MoodTrendPoint struct {
	Date string  `json:"date"`
	Mood float64 `json:"mood"`
}

// round2 rounds half-up at the hundredths digit. Ratings are positive, so
// math.Round's half-away-from-zero is half-up here.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MoodAnalytics computes the average mood, per-label distribution and
// per-day trend of userID's non-archived entries, optionally restricted to
// an inclusive createdAt range. An empty match set yields zero values, not
// an error.
func (s *Service) MoodAnalytics(ctx context.Context, userID string, startDate, endDate *time.Time) (*MoodAnalytics, error) {
	pred := compileFilter(userID, ListQuery{StartDate: startDate, EndDate: endDate})

	entries, err := s.store.FindMany(ctx, pred, store.Sort{Field: query.FieldCreatedAt}, 0, 0)
	if err != nil {
		return nil, err
	}

	totalEntries := len(entries)
	if totalEntries == 0 {
		return &MoodAnalytics{
			AverageMood:      0,
			MoodDistribution: map[string]int{},
			MoodTrend:        []MoodTrendPoint{},
			TotalEntries:     0,
		}, nil
	}

	ratingSum := 0
	distribution := make(map[string]int)
	dailyRatings := make(map[string][]int)
	for i := range entries {
		entry := &entries[i]
		ratingSum += entry.Mood.Rating
		distribution[entry.Mood.Label]++

		day := entry.CreatedAt.UTC().Format("2006-01-02")
		dailyRatings[day] = append(dailyRatings[day], entry.Mood.Rating)
	}

	days := make([]string, 0, len(dailyRatings))
	for day := range dailyRatings {
		days = append(days, day)
	}
	sort.Strings(days)

	trend := make([]MoodTrendPoint, 0, len(days))
	for _, day := range days {
		ratings := dailyRatings[day]
		daySum := 0
		for _, r := range ratings {
			daySum += r
		}
		trend = append(trend, MoodTrendPoint{
			Date: day,
			Mood: round2(float64(daySum) / float64(len(ratings))),
		})
	}

	return &MoodAnalytics{
		AverageMood:      round2(float64(ratingSum) / float64(totalEntries)),
		MoodDistribution: distribution,
		MoodTrend:        trend,
		TotalEntries:     totalEntries,
	}, nil
}

// PopularTags returns the user's most-used tags across non-archived entries,
// ordered by descending count with ties broken by tag name. Limit defaults
// to 10.
func (s *Service) PopularTags(ctx context.Context, userID string, limit int) ([]store.TagCount, error) {
	if limit < 1 {
		limit = 10
	}
	pred := compileFilter(userID, ListQuery{})
	return s.store.AggregateTagCounts(ctx, pred, int64(limit))
}
