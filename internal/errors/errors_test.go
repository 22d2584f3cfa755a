package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/reroll-stats/internal/errors"
)

func TestCodeHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{name: "not found", err: errors.NotFoundf("no reroll data for actor %s", "a1"), check: errors.IsNotFound},
		{name: "invalid argument", err: errors.InvalidArgument("actor ID is required"), check: errors.IsInvalidArgument},
		{name: "permission denied", err: errors.PermissionDenied("GM only"), check: errors.IsPermissionDenied},
		{name: "failed precondition", err: errors.FailedPreconditionf("prompt %s already resolved", "p1"), check: errors.IsFailedPrecondition},
		{name: "data loss", err: errors.DataLoss("malformed payload"), check: errors.IsDataLoss},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.False(t, errors.IsInternal(tt.err))
		})
	}
}

func TestWrapPreservesCode(t *testing.T) {
	inner := errors.NotFound("no reroll data")
	wrapped := errors.Wrap(inner, "failed to load counters")

	assert.True(t, errors.IsNotFound(wrapped))
	assert.Contains(t, wrapped.Error(), "failed to load counters")
	assert.True(t, stderrors.Is(wrapped, inner))
}

func TestWrapForeignErrorIsInternal(t *testing.T) {
	wrapped := errors.Wrap(stderrors.New("connection refused"), "failed to reach store")

	assert.True(t, errors.IsInternal(wrapped))
	assert.Equal(t, errors.CodeInternal, errors.GetCode(wrapped))
}

func TestWrapWithCode(t *testing.T) {
	wrapped := errors.WrapWithCode(stderrors.New("bad json"), errors.CodeDataLoss, "malformed payload")

	assert.True(t, errors.IsDataLoss(wrapped))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, "nothing"))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(errors.NotFound("gone")))
	assert.Equal(t, errors.CodeInternal, errors.GetCode(stderrors.New("plain")))
}

func TestValidationBuilder(t *testing.T) {
	t.Run("no violations builds nil", func(t *testing.T) {
		err := errors.NewValidationBuilder().
			NonNegativeField("rerollCount", 3).
			Build()

		assert.NoError(t, err)
	})

	t.Run("collects every violation", func(t *testing.T) {
		err := errors.NewValidationBuilder().
			NonNegativeField("rerollCount", -1).
			NonNegativeField("betterCount", -2).
			Fieldf("rerollCount", "better (%d) + worse (%d) + same (%d) must equal reroll count (%d)", 0, 0, 0, -1).
			Build()

		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
		assert.Contains(t, err.Error(), "betterCount")
		assert.Contains(t, err.Error(), "rerollCount")
	})

	t.Run("field order is stable", func(t *testing.T) {
		build := func() string {
			return errors.NewValidationBuilder().
				RequiredField("zeta").
				RequiredField("alpha").
				Build().
				Error()
		}

		assert.Equal(t, build(), build())
	})
}
