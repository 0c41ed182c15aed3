// Package query defines a small backend-agnostic predicate AST used to filter
// journal entries. The journal service builds predicates with the constructors
// here; each store backend interprets the tree itself (MongoDB compiles it to
// a bson filter, the memory store evaluates it directly).
package query

// Entry field names predicates may reference. These match the bson field
// names of models.JournalEntry so the Mongo backend can use them verbatim.
const (
	FieldID         = "_id"
	FieldUserID     = "user_id"
	FieldTitle      = "title"
	FieldContent    = "content"
	FieldTags       = "tags"
	FieldMoodRating = "mood.rating"
	FieldPrivacy    = "privacy"
	FieldIsArchived = "is_archived"
	FieldSharedWith = "shared_with"
	FieldCreatedAt  = "created_at"
	FieldUpdatedAt  = "updated_at"
)

// Predicate is one node of the filter tree.
type Predicate interface {
	isPredicate()
}

// Equals matches when the field equals Value exactly.
type Equals struct {
	Field string
	Value interface{}
}

// Range matches when the field lies within the given inclusive bounds.
// A nil bound is open on that side.
type Range struct {
	Field string
	Min   interface{}
	Max   interface{}
}

// InSet matches when the field value is one of Values. On array fields
// (tags, shared_with) it matches when at least one element is in Values.
type InSet struct {
	Field  string
	Values []interface{}
}

// Contains matches when the field contains Substr case-insensitively.
// On array fields it matches when any element contains Substr.
type Contains struct {
	Field  string
	Substr string
}

// And matches when every child matches. An empty And matches everything.
type And struct {
	Preds []Predicate
}

// Or matches when at least one child matches.
type Or struct {
	Preds []Predicate
}

func (Equals) isPredicate()   {}
func (Range) isPredicate()    {}
func (InSet) isPredicate()    {}
func (Contains) isPredicate() {}
func (And) isPredicate()      {}
func (Or) isPredicate()       {}

// Eq builds an exact-match predicate.
func Eq(field string, value interface{}) Predicate {
	return Equals{Field: field, Value: value}
}

// Between builds an inclusive range predicate; pass nil for an open bound.
func Between(field string, min, max interface{}) Predicate {
	return Range{Field: field, Min: min, Max: max}
}

// In builds a set-membership predicate.
func In(field string, values ...interface{}) Predicate {
	return InSet{Field: field, Values: values}
}

// ContainsFold builds a case-insensitive substring predicate.
func ContainsFold(field, substr string) Predicate {
	return Contains{Field: field, Substr: substr}
}

// All combines predicates with AND.
func All(preds ...Predicate) Predicate {
	return And{Preds: preds}
}

// Any combines predicates with OR.
func Any(preds ...Predicate) Predicate {
	return Or{Preds: preds}
}
