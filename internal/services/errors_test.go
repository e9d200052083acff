package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindToHTTPStatus(t *testing.T) {
	cases := map[ErrorKind]int{
		KindUnauthenticated:    401,
		KindForbidden:          403,
		KindNotFound:           404,
		KindInvalidSchema:      422,
		KindInvalidTransition:  400,
		KindInvalidResult:      400,
		KindIncompleteStage:    400,
		KindAlreadyFinalized:   400,
		KindUnknownScoringType: 400,
		KindConflict:           409,
		KindInternal:           500,
		ErrorKind("unmapped"):  500,
	}
	for kind, want := range cases {
		assert.Equal(t, want, KindToHTTPStatus(kind), "kind=%s", kind)
	}
}

func TestAsAppError_PassesThroughAppError(t *testing.T) {
	original := NewAppError(KindConflict, "already enrolled", map[string]interface{}{"user_id": "u1"})
	got := AsAppError(original)
	assert.Same(t, original, got)
}

func TestAsAppError_WrapsPlainErrorAsInternal(t *testing.T) {
	got := AsAppError(errors.New("boom"))
	assert.Equal(t, KindInternal, got.Kind)
	assert.Equal(t, "boom", got.Message)
}

func TestAsAppError_NilIsNil(t *testing.T) {
	assert.Nil(t, AsAppError(nil))
}
