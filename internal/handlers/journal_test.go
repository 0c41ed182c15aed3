package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacejournal/solace-backend/internal/validation"
)

func TestParseListQuery_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/journal", nil)

	q, err := parseListQuery(r)
	require.NoError(t, err)

	assert.Zero(t, q.Page)
	assert.Zero(t, q.Limit)
	assert.Empty(t, q.Search)
	assert.Nil(t, q.Tags)
	assert.Nil(t, q.StartDate)
	assert.Nil(t, q.EndDate)
}

func TestParseListQuery_FullQuery(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/api/journal?page=2&limit=20&search=walk&tags=work,stress&tags=sleep"+
			"&moodRatingMin=3&moodRatingMax=8&privacy=therapist"+
			"&startDate=2026-07-01&endDate=2026-07-31&sortBy=mood.rating&sortOrder=asc", nil)

	q, err := parseListQuery(r)
	require.NoError(t, err)

	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 20, q.Limit)
	assert.Equal(t, "walk", q.Search)
	assert.Equal(t, []string{"work", "stress", "sleep"}, q.Tags, "repeated and comma-separated tags both split")
	assert.Equal(t, 3, q.MoodRatingMin)
	assert.Equal(t, 8, q.MoodRatingMax)
	assert.Equal(t, "therapist", q.Privacy)
	require.NotNil(t, q.StartDate)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), *q.StartDate)
	assert.Equal(t, "mood.rating", q.SortBy)
	assert.Equal(t, "asc", q.SortOrder)
}

func TestParseListQuery_BadValues(t *testing.T) {
	cases := []struct {
		name  string
		query string
		field string
	}{
		{"non-numeric page", "page=abc", "page"},
		{"negative page", "page=-1", "page"},
		{"mood rating out of range", "moodRatingMax=11", "moodRatingMax"},
		{"unknown privacy", "privacy=secret", "privacy"},
		{"unknown sort key", "sortBy=popularity", "sortBy"},
		{"unknown sort order", "sortOrder=sideways", "sortOrder"},
		{"malformed date", "startDate=July+1st", "startDate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/journal?"+tc.query, nil)

			_, err := parseListQuery(r)
			require.Error(t, err)

			var verr *validation.Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestParseListQuery_RFC3339Date(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/journal?endDate=2026-07-31T15:04:05Z", nil)

	q, err := parseListQuery(r)
	require.NoError(t, err)

	require.NotNil(t, q.EndDate)
	assert.Equal(t, time.Date(2026, 7, 31, 15, 4, 5, 0, time.UTC), *q.EndDate)
}

func TestCreateEntrySchema(t *testing.T) {
	valid := map[string]interface{}{
		"title":       "A day",
		"content":     "It went fine.",
		"mood.rating": 6,
		"mood.label":  "good",
	}
	require.NoError(t, createEntrySchema.Validate(valid))

	for name, tweak := range map[string]func(map[string]interface{}){
		"missing title":      func(m map[string]interface{}) { delete(m, "title") },
		"empty content":      func(m map[string]interface{}) { m["content"] = "" },
		"rating too high":    func(m map[string]interface{}) { m["mood.rating"] = 11 },
		"rating missing":     func(m map[string]interface{}) { delete(m, "mood.rating") },
		"bad privacy":        func(m map[string]interface{}) { m["privacy"] = "friends" },
		"missing mood label": func(m map[string]interface{}) { delete(m, "mood.label") },
	} {
		t.Run(name, func(t *testing.T) {
			values := map[string]interface{}{}
			for k, v := range valid {
				values[k] = v
			}
			tweak(values)
			assert.Error(t, createEntrySchema.Validate(values))
		})
	}
}

func TestValidateAttachments(t *testing.T) {
	require.NoError(t, validateAttachments(nil))
	require.NoError(t, validateAttachments([]AttachmentRequest{
		{Kind: "image", URL: "https://cdn.example.com/a.png", Filename: "a.png"},
	}))

	err := validateAttachments([]AttachmentRequest{{Kind: "video", URL: "https://x/y"}})
	require.Error(t, err)
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)

	err = validateAttachments([]AttachmentRequest{{Kind: "image"}})
	assert.Error(t, err, "url is required")
}
