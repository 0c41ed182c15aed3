package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Privacy tiers for a journal entry. Private entries are owner-only and can
// never be shared; therapist and public entries may be shared with other users.
const (
	PrivacyPrivate   = "private"
	PrivacyTherapist = "therapist"
	PrivacyPublic    = "public"
)

// Attachment kinds.
const (
	AttachmentImage    = "image"
	AttachmentAudio    = "audio"
	AttachmentDocument = "document"
)

// Mood is the required mood snapshot on every entry. Rating is 1-10.
type Mood struct {
	Rating int    `bson:"rating" json:"rating"`
	Label  string `bson:"label" json:"label"`
}

// Attachment is an uploaded file referenced by an entry.
type Attachment struct {
	Kind       string    `bson:"kind" json:"kind"`
	URL        string    `bson:"url" json:"url"`
	Filename   string    `bson:"filename" json:"filename"`
	Size       int64     `bson:"size" json:"size"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploadedAt"`
}

// JournalEntry is a mood-tagged journal entry owned by a single user.
// UserID references the Postgres user (UUID string); the entries themselves
// live in MongoDB. Tags keep insertion order for display but match as a set.
type JournalEntry struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         string             `bson:"user_id" json:"userId"`
	Title          string             `bson:"title" json:"title"`
	Content        string             `bson:"content" json:"content"`
	Mood           Mood               `bson:"mood" json:"mood"`
	Tags           []string           `bson:"tags" json:"tags"`
	Attachments    []Attachment       `bson:"attachments" json:"attachments"`
	Privacy        string             `bson:"privacy" json:"privacy"`
	IsArchived     bool               `bson:"is_archived" json:"isArchived"`
	IsFavorite     bool               `bson:"is_favorite" json:"isFavorite"`
	TherapistNotes string             `bson:"therapist_notes,omitempty" json:"therapistNotes,omitempty"`
	SharedWith     []string           `bson:"shared_with,omitempty" json:"sharedWith,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	Weather        string             `bson:"weather,omitempty" json:"weather,omitempty"`
	Activities     []string           `bson:"activities,omitempty" json:"activities,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// SharedWithUser reports whether userID is in the entry's share list.
func (e *JournalEntry) SharedWithUser(userID string) bool {
	for _, id := range e.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}
