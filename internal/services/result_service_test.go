package services

import (
	"errors"
	"testing"

	"github.com/academy-platform/tournament-engine/internal/results"
	"github.com/stretchr/testify/assert"
)

func TestTranslateValidationError_PreservesReasonAndDetail(t *testing.T) {
	original := &results.ValidationError{
		Reason: "duplicate ranks in submission",
		Detail: map[string]interface{}{"duplicate_ranks": []int{2}},
	}

	got := translateValidationError(original)
	appErr, ok := got.(*AppError)
	assert.True(t, ok)
	assert.Equal(t, KindInvalidResult, appErr.Kind)
	assert.Equal(t, "duplicate ranks in submission", appErr.Message)
	assert.Equal(t, original.Detail, appErr.Detail)
}

func TestTranslateValidationError_WrapsPlainError(t *testing.T) {
	got := translateValidationError(errors.New("unexpected failure"))
	appErr, ok := got.(*AppError)
	assert.True(t, ok)
	assert.Equal(t, KindInvalidResult, appErr.Kind)
	assert.Equal(t, "unexpected failure", appErr.Message)
	assert.Nil(t, appErr.Detail)
}
