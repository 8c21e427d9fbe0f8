package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/flowgrid/pkg/adapters/memory"
	"github.com/aretw0/flowgrid/pkg/persistence/middleware"
	"github.com/aretw0/flowgrid/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIIMiddleware_Masking(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	mw, err := middleware.NewPIIMiddleware([]string{"(?i)email", "(?i)ssn"})
	require.NoError(t, err)
	secure := mw(underlying)

	state := sampleState("pii")
	state.Records[0]["Owner"] = map[string]any{"Name": "Grace", "SSN__c": "999-99-9999"}

	require.NoError(t, secure.Save(ctx, "pii", state))

	// The engine's copy stays intact.
	assert.Equal(t, "ada@example.com", state.Records[0]["Email"])
	assert.Equal(t, "999-99-9999", state.Records[0]["Owner"].(map[string]any)["SSN__c"])
	v, _ := state.Edits.Get("c2", "Email")
	assert.Equal(t, "new@example.com", v)

	stored, err := underlying.Load(ctx, "pii")
	require.NoError(t, err)

	assert.Equal(t, "c1", stored.Records[0]["Id"])
	assert.Equal(t, "Ada", stored.Records[0]["Name"])
	assert.Equal(t, middleware.Mask, stored.Records[0]["Email"])
	owner := stored.Records[0]["Owner"].(map[string]any)
	assert.Equal(t, "Grace", owner["Name"])
	assert.Equal(t, middleware.Mask, owner["SSN__c"])

	v, ok := stored.Edits.Get("c2", "Email")
	require.True(t, ok)
	assert.Equal(t, middleware.Mask, v)
	assert.Equal(t, 3, stored.Revision)
}

func TestPIIMiddleware_IdentifierNeverMasked(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	mw, err := middleware.NewPIIMiddleware([]string{"Id"})
	require.NoError(t, err)

	require.NoError(t, mw(underlying).Save(ctx, "g", sampleState("g")))

	stored, err := underlying.Load(ctx, "g")
	require.NoError(t, err)
	assert.Equal(t, "c1", stored.Records[0].ID())
}

func TestPIIMiddleware_InvalidPattern(t *testing.T) {
	_, err := middleware.NewPIIMiddleware([]string{"("})
	assert.Error(t, err)
}

func TestChain_EncryptsMaskedState(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()

	pii, err := middleware.NewPIIMiddleware([]string{"(?i)email"})
	require.NoError(t, err)
	enc, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)

	store := middleware.Chain(underlying, pii, enc)
	require.NoError(t, store.Save(ctx, "g", sampleState("g")))

	raw, err := underlying.Load(ctx, "g")
	require.NoError(t, err)
	assert.Contains(t, raw.Records[0], middleware.EnvelopeField)

	loaded, err := store.Load(ctx, "g")
	require.NoError(t, err)
	assert.Equal(t, middleware.Mask, loaded.Records[0]["Email"])
	assert.Equal(t, "Ada", loaded.Records[0]["Name"])
	assert.Equal(t, []string{"g"}, mustList(t, store))
}

func mustList(t *testing.T, store ports.StateStore) []string {
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	return ids
}
