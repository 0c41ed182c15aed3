package journal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacejournal/solace-backend/internal/models"
)

func TestMoodAnalytics_Empty(t *testing.T) {
	svc, _ := newTestService(t)

	analytics, err := svc.MoodAnalytics(context.Background(), "user-1", nil, nil)
	require.NoError(t, err)

	assert.Zero(t, analytics.AverageMood)
	assert.Empty(t, analytics.MoodDistribution)
	assert.Empty(t, analytics.MoodTrend)
	assert.Zero(t, analytics.TotalEntries)
}

func TestMoodAnalytics_AverageAndDistribution(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	for _, m := range []models.Mood{
		{Rating: 2, Label: "low"},
		{Rating: 4, Label: "okay"},
		{Rating: 6, Label: "okay"},
		{Rating: 8, Label: "good"},
	} {
		seedEntry(t, st, models.JournalEntry{UserID: "user-1", Mood: m})
	}
	// Archived entries stay out of analytics.
	seedEntry(t, st, models.JournalEntry{UserID: "user-1", Mood: models.Mood{Rating: 10, Label: "great"}, IsArchived: true})

	analytics, err := svc.MoodAnalytics(ctx, "user-1", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 5.0, analytics.AverageMood)
	assert.Equal(t, 4, analytics.TotalEntries)
	assert.Equal(t, map[string]int{"low": 1, "okay": 2, "good": 1}, analytics.MoodDistribution)
}

func TestMoodAnalytics_Rounding(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	for _, rating := range []int{3, 3, 4} {
		seedEntry(t, st, models.JournalEntry{UserID: "user-1", Mood: models.Mood{Rating: rating, Label: "x"}})
	}

	analytics, err := svc.MoodAnalytics(ctx, "user-1", nil, nil)
	require.NoError(t, err)

	// 10/3 rounds to two decimals.
	assert.Equal(t, 3.33, analytics.AverageMood)
}

func TestMoodAnalytics_Trend(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	// Two entries on the same day average together; days come back ascending
	// regardless of insert order.
	seedEntry(t, st, models.JournalEntry{UserID: "user-1", Mood: models.Mood{Rating: 8, Label: "good"}, CreatedAt: day(t, "2026-07-03")})
	seedEntry(t, st, models.JournalEntry{UserID: "user-1", Mood: models.Mood{Rating: 3, Label: "low"}, CreatedAt: day(t, "2026-07-01")})
	seedEntry(t, st, models.JournalEntry{UserID: "user-1", Mood: models.Mood{Rating: 7, Label: "good"}, CreatedAt: day(t, "2026-07-01")})

	analytics, err := svc.MoodAnalytics(ctx, "user-1", nil, nil)
	require.NoError(t, err)

	require.Len(t, analytics.MoodTrend, 2)
	assert.Equal(t, MoodTrendPoint{Date: "2026-07-01", Mood: 5.0}, analytics.MoodTrend[0])
	assert.Equal(t, MoodTrendPoint{Date: "2026-07-03", Mood: 8.0}, analytics.MoodTrend[1])
}

func TestMoodAnalytics_DateRange(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	seedEntry(t, st, models.JournalEntry{UserID: "user-1", Mood: models.Mood{Rating: 2, Label: "low"}, CreatedAt: day(t, "2026-07-01")})
	seedEntry(t, st, models.JournalEntry{UserID: "user-1", Mood: models.Mood{Rating: 8, Label: "good"}, CreatedAt: day(t, "2026-08-01")})

	start := day(t, "2026-07-15")
	analytics, err := svc.MoodAnalytics(ctx, "user-1", &start, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, analytics.TotalEntries)
	assert.Equal(t, 8.0, analytics.AverageMood)
}

func TestPopularTags(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	seedEntry(t, st, models.JournalEntry{UserID: "user-1", Tags: []string{"work", "stress"}})
	seedEntry(t, st, models.JournalEntry{UserID: "user-1", Tags: []string{"work", "sleep"}})
	seedEntry(t, st, models.JournalEntry{UserID: "user-1", Tags: []string{"work"}})
	seedEntry(t, st, models.JournalEntry{UserID: "user-1", Tags: []string{"sleep"}})
	seedEntry(t, st, models.JournalEntry{UserID: "user-1", Tags: []string{"ignored"}, IsArchived: true})
	seedEntry(t, st, models.JournalEntry{UserID: "user-2", Tags: []string{"other-user"}})

	tags, err := svc.PopularTags(ctx, "user-1", 0)
	require.NoError(t, err)

	require.Len(t, tags, 3)
	assert.Equal(t, "work", tags[0].Tag)
	assert.Equal(t, 3, tags[0].Count)
	// Equal counts break ties by tag name.
	assert.Equal(t, "sleep", tags[1].Tag)
	assert.Equal(t, "stress", tags[2].Tag)

	tags, err = svc.PopularTags(ctx, "user-1", 2)
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}
