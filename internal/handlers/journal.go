package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/solacejournal/solace-backend/internal/journal"
	"github.com/solacejournal/solace-backend/internal/models"
	"github.com/solacejournal/solace-backend/internal/services"
	"github.com/solacejournal/solace-backend/internal/validation"
)

const journalRequestTimeout = 5 * time.Second

// JournalHandler exposes the journal service over HTTP. The service and the
// analytics cache are injected; handlers only decode, validate and translate
// errors.
type JournalHandler struct {
	journal *journal.Service
	cache   *services.CacheService
}

func NewJournalHandler(svc *journal.Service, cache *services.CacheService) *JournalHandler {
	return &JournalHandler{journal: svc, cache: cache}
}

type MoodRequest struct {
	Rating int    `json:"rating"`
	Label  string `json:"label"`
}

type AttachmentRequest struct {
	Kind       string    `json:"kind"`
	URL        string    `json:"url"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type CreateEntryRequest struct {
	Title          string              `json:"title"`
	Content        string              `json:"content"`
	Mood           MoodRequest         `json:"mood"`
	Tags           []string            `json:"tags"`
	Attachments    []AttachmentRequest `json:"attachments"`
	Privacy        string              `json:"privacy"`
	TherapistNotes string              `json:"therapistNotes"`
	Location       string              `json:"location"`
	Weather        string              `json:"weather"`
	Activities     []string            `json:"activities"`
}

type UpdateEntryRequest struct {
	Title          *string             `json:"title"`
	Content        *string             `json:"content"`
	Mood           *MoodRequest        `json:"mood"`
	Tags           []string            `json:"tags"`
	Attachments    []AttachmentRequest `json:"attachments"`
	Privacy        *string             `json:"privacy"`
	TherapistNotes *string             `json:"therapistNotes"`
	Location       *string             `json:"location"`
	Weather        *string             `json:"weather"`
	Activities     []string            `json:"activities"`
}

type ShareEntryRequest struct {
	UserIDs []string `json:"userIds"`
}

// Boundary validation rules. The journal core assumes pre-validated input;
// these schemas are the single place request shape is enforced.
var createEntrySchema = validation.Schema{
	{Name: "title", Checks: []validation.Checker{validation.NonEmpty()}},
	{Name: "content", Checks: []validation.Checker{validation.NonEmpty()}},
	{Name: "mood.rating", Checks: []validation.Checker{validation.IntBetween(1, 10)}},
	{Name: "mood.label", Checks: []validation.Checker{validation.NonEmpty()}},
	{Name: "privacy", Checks: []validation.Checker{validation.Optional(validation.OneOf(models.PrivacyPrivate, models.PrivacyTherapist, models.PrivacyPublic))}},
}

var listQuerySchema = validation.Schema{
	{Name: "page", Checks: []validation.Checker{validation.Optional(validation.MinInt(1))}},
	{Name: "limit", Checks: []validation.Checker{validation.Optional(validation.MinInt(1))}},
	{Name: "moodRatingMin", Checks: []validation.Checker{validation.Optional(validation.IntBetween(1, 10))}},
	{Name: "moodRatingMax", Checks: []validation.Checker{validation.Optional(validation.IntBetween(1, 10))}},
	{Name: "privacy", Checks: []validation.Checker{validation.Optional(validation.OneOf(models.PrivacyPrivate, models.PrivacyTherapist, models.PrivacyPublic))}},
	{Name: "sortBy", Checks: []validation.Checker{validation.Optional(validation.OneOf(journal.SortByCreatedAt, journal.SortByUpdatedAt, journal.SortByMoodRating, journal.SortByTitle))}},
	{Name: "sortOrder", Checks: []validation.Checker{validation.Optional(validation.OneOf("asc", "desc"))}},
}

var attachmentKindCheck = validation.OneOf(models.AttachmentImage, models.AttachmentAudio, models.AttachmentDocument)

func validateAttachments(attachments []AttachmentRequest) error {
	for _, a := range attachments {
		if msg := attachmentKindCheck(a.Kind); msg != "" {
			return &validation.Error{Field: "attachments.kind", Message: msg}
		}
		if a.URL == "" {
			return &validation.Error{Field: "attachments.url", Message: "must be a non-empty string"}
		}
	}
	return nil
}

func toAttachments(reqs []AttachmentRequest) []models.Attachment {
	if reqs == nil {
		return nil
	}
	attachments := make([]models.Attachment, 0, len(reqs))
	for _, a := range reqs {
		uploadedAt := a.UploadedAt
		if uploadedAt.IsZero() {
			uploadedAt = time.Now().UTC()
		}
		attachments = append(attachments, models.Attachment{
			Kind:       a.Kind,
			URL:        a.URL,
			Filename:   a.Filename,
			Size:       a.Size,
			UploadedAt: uploadedAt,
		})
	}
	return attachments
}

func (h *JournalHandler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), journalRequestTimeout)
}

// invalidateCaches drops the user's cached aggregations after a mutation.
func (h *JournalHandler) invalidateCaches(ctx context.Context, userID string) {
	if h.cache != nil {
		h.cache.InvalidateUser(ctx, userID)
	}
}

// Create handles POST /api/journal.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	if err := createEntrySchema.Validate(map[string]interface{}{
		"title":       req.Title,
		"content":     req.Content,
		"mood.rating": req.Mood.Rating,
		"mood.label":  req.Mood.Label,
		"privacy":     req.Privacy,
	}); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := validateAttachments(req.Attachments); err != nil {
		writeServiceError(w, err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	entry, err := h.journal.Create(ctx, userID, journal.CreateEntryInput{
		Title:          req.Title,
		Content:        req.Content,
		Mood:           models.Mood{Rating: req.Mood.Rating, Label: req.Mood.Label},
		Tags:           req.Tags,
		Attachments:    toAttachments(req.Attachments),
		Privacy:        req.Privacy,
		TherapistNotes: req.TherapistNotes,
		Location:       req.Location,
		Weather:        req.Weather,
		Activities:     req.Activities,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.invalidateCaches(ctx, userID)
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "entry": entry})
}

// parseListQuery decodes and validates the listing query parameters.
func parseListQuery(r *http.Request) (journal.ListQuery, error) {
	q := journal.ListQuery{
		Search:    r.URL.Query().Get("search"),
		Privacy:   r.URL.Query().Get("privacy"),
		SortBy:    r.URL.Query().Get("sortBy"),
		SortOrder: r.URL.Query().Get("sortOrder"),
	}

	intParams := []struct {
		name string
		dest *int
	}{
		{"page", &q.Page},
		{"limit", &q.Limit},
		{"moodRatingMin", &q.MoodRatingMin},
		{"moodRatingMax", &q.MoodRatingMax},
	}
	for _, p := range intParams {
		raw := r.URL.Query().Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, &validation.Error{Field: p.name, Message: "must be a number"}
		}
		*p.dest = n
	}

	for _, raw := range r.URL.Query()["tags"] {
		for _, tag := range strings.Split(raw, ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				q.Tags = append(q.Tags, tag)
			}
		}
	}

	var err error
	if q.StartDate, err = parseDateParam(r, "startDate"); err != nil {
		return q, err
	}
	if q.EndDate, err = parseDateParam(r, "endDate"); err != nil {
		return q, err
	}

	return q, listQuerySchema.Validate(map[string]interface{}{
		"page":          q.Page,
		"limit":         q.Limit,
		"moodRatingMin": q.MoodRatingMin,
		"moodRatingMax": q.MoodRatingMax,
		"privacy":       q.Privacy,
		"sortBy":        q.SortBy,
		"sortOrder":     q.SortOrder,
	})
}

func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, &validation.Error{Field: name, Message: "must be a date (YYYY-MM-DD or RFC 3339)"}
}

// List handles GET /api/journal.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	q, err := parseListQuery(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	page, err := h.journal.List(ctx, userID, q)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Get handles GET /api/journal/{id}.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	entry, err := h.journal.Get(ctx, chi.URLParam(r, "id"), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "entry": entry})
}

// Update handles PATCH /api/journal/{id}.
func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	values := map[string]interface{}{}
	schema := validation.Schema{}
	if req.Title != nil {
		schema = append(schema, validation.Field{Name: "title", Checks: []validation.Checker{validation.NonEmpty()}})
		values["title"] = *req.Title
	}
	if req.Content != nil {
		schema = append(schema, validation.Field{Name: "content", Checks: []validation.Checker{validation.NonEmpty()}})
		values["content"] = *req.Content
	}
	if req.Mood != nil {
		schema = append(schema,
			validation.Field{Name: "mood.rating", Checks: []validation.Checker{validation.IntBetween(1, 10)}},
			validation.Field{Name: "mood.label", Checks: []validation.Checker{validation.NonEmpty()}},
		)
		values["mood.rating"] = req.Mood.Rating
		values["mood.label"] = req.Mood.Label
	}
	if req.Privacy != nil {
		schema = append(schema, validation.Field{Name: "privacy", Checks: []validation.Checker{validation.OneOf(models.PrivacyPrivate, models.PrivacyTherapist, models.PrivacyPublic)}})
		values["privacy"] = *req.Privacy
	}
	if err := schema.Validate(values); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := validateAttachments(req.Attachments); err != nil {
		writeServiceError(w, err)
		return
	}

	in := journal.UpdateEntryInput{
		Title:          req.Title,
		Content:        req.Content,
		Tags:           req.Tags,
		Attachments:    toAttachments(req.Attachments),
		Privacy:        req.Privacy,
		TherapistNotes: req.TherapistNotes,
		Location:       req.Location,
		Weather:        req.Weather,
		Activities:     req.Activities,
	}
	if req.Mood != nil {
		in.Mood = &models.Mood{Rating: req.Mood.Rating, Label: req.Mood.Label}
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	entry, err := h.journal.Update(ctx, chi.URLParam(r, "id"), userID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.invalidateCaches(ctx, userID)
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "entry": entry})
}

// Delete handles DELETE /api/journal/{id}. Deletion is permanent.
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.journal.Delete(ctx, chi.URLParam(r, "id"), userID); err != nil {
		writeServiceError(w, err)
		return
	}

	h.invalidateCaches(ctx, userID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *JournalHandler) setArchived(w http.ResponseWriter, r *http.Request, archived bool) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	var entry *models.JournalEntry
	var err error
	if archived {
		entry, err = h.journal.Archive(ctx, chi.URLParam(r, "id"), userID)
	} else {
		entry, err = h.journal.Unarchive(ctx, chi.URLParam(r, "id"), userID)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.invalidateCaches(ctx, userID)
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "entry": entry})
}

// Archive handles PATCH /api/journal/{id}/archive.
func (h *JournalHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, true)
}

// Unarchive handles PATCH /api/journal/{id}/unarchive.
func (h *JournalHandler) Unarchive(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, false)
}

// ToggleFavorite handles PATCH /api/journal/{id}/favorite.
func (h *JournalHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	entry, err := h.journal.ToggleFavorite(ctx, chi.URLParam(r, "id"), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.invalidateCaches(ctx, userID)
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "entry": entry})
}

// Share handles POST /api/journal/{id}/share.
func (h *JournalHandler) Share(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req ShareEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	entry, err := h.journal.Share(ctx, chi.URLParam(r, "id"), userID, req.UserIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.invalidateCaches(ctx, userID)
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "entry": entry})
}

// Shared handles GET /api/journal/shared — entries other users shared with me.
func (h *JournalHandler) Shared(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	entries, err := h.journal.SharedEntries(ctx, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "entries": entries})
}

// MoodAnalytics handles GET /api/journal/analytics/mood.
func (h *JournalHandler) MoodAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	startDate, err := parseDateParam(r, "startDate")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	endDate, err := parseDateParam(r, "endDate")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	cacheKey := services.MoodAnalyticsKey(userID, r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if h.cache != nil {
		var cached journal.MoodAnalytics
		if hit, _ := h.cache.Get(ctx, cacheKey, &cached); hit {
			writeJSON(w, http.StatusOK, &cached)
			return
		}
	}

	analytics, err := h.journal.MoodAnalytics(ctx, userID, startDate, endDate)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if h.cache != nil {
		h.cache.Set(ctx, cacheKey, analytics)
	}
	writeJSON(w, http.StatusOK, analytics)
}

// PopularTags handles GET /api/journal/analytics/tags.
func (h *JournalHandler) PopularTags(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeServiceError(w, &validation.Error{Field: "limit", Message: "must be at least 1"})
			return
		}
		limit = n
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	cacheKey := services.PopularTagsKey(userID, limit)
	if h.cache != nil {
		var cached []map[string]interface{}
		if hit, _ := h.cache.Get(ctx, cacheKey, &cached); hit {
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "tags": cached})
			return
		}
	}

	tags, err := h.journal.PopularTags(ctx, userID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if h.cache != nil {
		h.cache.Set(ctx, cacheKey, tags)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "tags": tags})
}
