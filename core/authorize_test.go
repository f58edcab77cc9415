package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func op(name, body string) Operation {
	return Operation{Name: name, Body: json.RawMessage(body)}
}

func TestAuthorize_Allowed(t *testing.T) {
	decision := Authorize(
		[]string{"vote", "comment"},
		[]Operation{op("vote", `{"voter":"alice","author":"bob","permlink":"p"}`)},
		"alice",
	)
	assert.Equal(t, Allowed, decision.Kind)
	assert.Empty(t, decision.ViolatingScopes)
}

func TestAuthorize_ScopeDenied(t *testing.T) {
	decision := Authorize(
		[]string{"vote"},
		[]Operation{op("comment", `{"author":"alice","permlink":"p"}`)},
		"alice",
	)
	assert.Equal(t, ScopeDenied, decision.Kind)
	assert.Equal(t, []string{"comment"}, decision.ViolatingScopes)
}

func TestAuthorize_AuthorDenied(t *testing.T) {
	decision := Authorize(
		[]string{"vote"},
		[]Operation{op("vote", `{"voter":"bob","author":"alice","permlink":"p"}`)},
		"alice",
	)
	assert.Equal(t, AuthorDenied, decision.Kind)
}

func TestAuthorize_CollectsAllScopeViolations(t *testing.T) {
	decision := Authorize(
		[]string{"vote"},
		[]Operation{
			op("comment", `{"author":"alice"}`),
			op("vote", `{"voter":"alice"}`),
			op("transfer", `{"from":"alice","to":"bob","amount":"1.000 STEEM"}`),
			op("comment", `{"author":"alice"}`),
		},
		"alice",
	)
	assert.Equal(t, ScopeDenied, decision.Kind)
	// Batch order, deduplicated.
	assert.Equal(t, []string{"comment", "transfer"}, decision.ViolatingScopes)
}

func TestAuthorize_ScopeViolationWinsOverAuthorship(t *testing.T) {
	decision := Authorize(
		[]string{"vote"},
		[]Operation{
			op("comment", `{"author":"alice"}`),
			op("vote", `{"voter":"bob","author":"alice"}`),
		},
		"alice",
	)
	assert.Equal(t, ScopeDenied, decision.Kind)
	assert.Equal(t, []string{"comment"}, decision.ViolatingScopes)
}

func TestAuthorize_EmptyBatch(t *testing.T) {
	decision := Authorize([]string{"vote"}, nil, "alice")
	assert.Equal(t, Allowed, decision.Kind)
}

func TestAuthorize_UnknownOperationInScopeFailsAuthorship(t *testing.T) {
	// A name present in the granted scope but missing from the author table
	// must still fail closed on the authorship check.
	decision := Authorize(
		[]string{"witness_update"},
		[]Operation{op("witness_update", `{"owner":"alice"}`)},
		"alice",
	)
	assert.Equal(t, AuthorDenied, decision.Kind)
}
