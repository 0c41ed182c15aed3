package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_FirstFailureWins(t *testing.T) {
	schema := Schema{
		{Name: "title", Checks: []Checker{NonEmpty()}},
		{Name: "rating", Checks: []Checker{IntBetween(1, 10)}},
	}

	err := schema.Validate(map[string]interface{}{
		"title":  "",
		"rating": 42,
	})
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field, "fields are checked in declaration order")
}

func TestSchema_MissingFieldFailsRequired(t *testing.T) {
	schema := Schema{{Name: "content", Checks: []Checker{NonEmpty()}}}

	err := schema.Validate(map[string]interface{}{})
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "content", verr.Field)
}

func TestSchema_Valid(t *testing.T) {
	schema := Schema{
		{Name: "title", Checks: []Checker{NonEmpty()}},
		{Name: "rating", Checks: []Checker{IntBetween(1, 10)}},
		{Name: "privacy", Checks: []Checker{Optional(OneOf("private", "therapist", "public"))}},
	}

	err := schema.Validate(map[string]interface{}{
		"title":  "ok",
		"rating": 7,
	})
	assert.NoError(t, err)
}

func TestIntBetween(t *testing.T) {
	check := IntBetween(1, 10)

	assert.Empty(t, check(1))
	assert.Empty(t, check(10))
	assert.NotEmpty(t, check(0))
	assert.NotEmpty(t, check(11))
	assert.NotEmpty(t, check("7"), "non-int values are rejected")
}

func TestMinInt(t *testing.T) {
	check := MinInt(1)

	assert.Empty(t, check(1))
	assert.NotEmpty(t, check(0))
	assert.NotEmpty(t, check(nil))
}

func TestOneOf(t *testing.T) {
	check := OneOf("asc", "desc")

	assert.Empty(t, check("asc"))
	assert.NotEmpty(t, check("sideways"))
	assert.NotEmpty(t, check(nil))
}

func TestOptional(t *testing.T) {
	check := Optional(OneOf("private", "therapist", "public"))

	assert.Empty(t, check(nil))
	assert.Empty(t, check(""))
	assert.Empty(t, check("public"))
	assert.NotEmpty(t, check("friends-only"))

	numeric := Optional(IntBetween(1, 10))
	assert.Empty(t, numeric(0))
	assert.NotEmpty(t, numeric(15))
}
