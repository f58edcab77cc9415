package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adcpm/sc2/core"
)

func voteOp(voter string) core.Operation {
	return core.Operation{
		Name: "vote",
		Body: json.RawMessage(`{"voter":"` + voter + `","author":"bob","permlink":"p","weight":10000}`),
	}
}

func appCredential(scope ...string) core.Credential {
	return core.Credential{User: "alice", Proxy: "busy.app", Role: core.RoleApp, Scope: scope}
}

func TestBroadcast_Success(t *testing.T) {
	broadcaster := &fakeBroadcaster{result: json.RawMessage(`{"id":"abc123"}`)}
	events := &fakeEvents{}
	svc := NewBroadcastService(broadcaster, events, "posting-wif", core.RecognizedOperations(), testLogger())

	result, err := svc.Broadcast(context.Background(), appCredential("vote"), []core.Operation{voteOp("alice")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc123"}`, string(result))
	assert.Equal(t, 1, broadcaster.calls)
	assert.Equal(t, "posting-wif", broadcaster.gotPosting)
	assert.Equal(t, 1, events.broadcasts)
}

func TestBroadcast_EmptyScopeFallsBackToDefaults(t *testing.T) {
	broadcaster := &fakeBroadcaster{result: json.RawMessage(`{}`)}
	svc := NewBroadcastService(broadcaster, &fakeEvents{}, "key", []string{"vote"}, testLogger())

	_, err := svc.Broadcast(context.Background(), appCredential(), []core.Operation{voteOp("alice")})
	require.NoError(t, err)
}

func TestBroadcast_ScopeDenied(t *testing.T) {
	broadcaster := &fakeBroadcaster{}
	svc := NewBroadcastService(broadcaster, &fakeEvents{}, "key", core.RecognizedOperations(), testLogger())

	ops := []core.Operation{
		{Name: "comment", Body: json.RawMessage(`{"author":"alice","permlink":"p"}`)},
		voteOp("alice"),
	}
	_, err := svc.Broadcast(context.Background(), appCredential("vote"), ops)

	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	assert.Equal(t, "invalid_scope", apiErr.Code)
	assert.Contains(t, apiErr.Description, "comment")
	assert.Equal(t, 0, broadcaster.calls)
}

func TestBroadcast_ScopeDeniedListsNamesInBatchOrder(t *testing.T) {
	svc := NewBroadcastService(&fakeBroadcaster{}, &fakeEvents{}, "key", core.RecognizedOperations(), testLogger())

	ops := []core.Operation{
		{Name: "transfer", Body: json.RawMessage(`{"from":"alice","to":"bob","amount":"1.000 STEEM"}`)},
		{Name: "comment", Body: json.RawMessage(`{"author":"alice","permlink":"p"}`)},
	}
	_, err := svc.Broadcast(context.Background(), appCredential("vote"), ops)

	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Description, "transfer, comment")
}

func TestBroadcast_AuthorDenied(t *testing.T) {
	broadcaster := &fakeBroadcaster{}
	svc := NewBroadcastService(broadcaster, &fakeEvents{}, "key", core.RecognizedOperations(), testLogger())

	_, err := svc.Broadcast(context.Background(), appCredential("vote"), []core.Operation{voteOp("mallory")})

	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	assert.Equal(t, "unauthorized_client", apiErr.Code)
	assert.Contains(t, apiErr.Description, "@alice")
	assert.Equal(t, 0, broadcaster.calls)
}

func TestBroadcast_EmptyBatchRejected(t *testing.T) {
	svc := NewBroadcastService(&fakeBroadcaster{}, &fakeEvents{}, "key", core.RecognizedOperations(), testLogger())

	_, err := svc.Broadcast(context.Background(), appCredential("vote"), nil)

	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, core.DescOperationsRequired, apiErr.Description)
}

func TestBroadcast_BroadcasterFailure(t *testing.T) {
	broadcaster := &fakeBroadcaster{err: errors.New("missing required posting authority")}
	events := &fakeEvents{}
	svc := NewBroadcastService(broadcaster, events, "key", core.RecognizedOperations(), testLogger())

	_, err := svc.Broadcast(context.Background(), appCredential("vote"), []core.Operation{voteOp("alice")})

	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, "server_error", apiErr.Code)
	assert.Equal(t, "missing required posting authority", apiErr.Description)
	assert.Equal(t, 0, events.broadcasts)
}

func TestBroadcast_EventFailureDoesNotFailRequest(t *testing.T) {
	broadcaster := &fakeBroadcaster{result: json.RawMessage(`{}`)}
	events := &fakeEvents{err: errors.New("redis down")}
	svc := NewBroadcastService(broadcaster, events, "key", core.RecognizedOperations(), testLogger())

	_, err := svc.Broadcast(context.Background(), appCredential("vote"), []core.Operation{voteOp("alice")})
	require.NoError(t, err)
}
