package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	err := &NotFoundError{Reason: "no translog files", Path: "/x"}
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(fmt.Errorf("scan failed: %w", err)), "wrapped errors must still match")
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsDecodeError(err))
}

func TestIsDecodeError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := &DecodeError{Path: "/x/translog-1.ckp", Message: "truncated", Err: cause}
	assert.True(t, IsDecodeError(err))
	assert.True(t, IsDecodeError(fmt.Errorf("read failed: %w", err)))
	assert.True(t, errors.Is(err, cause), "DecodeError must unwrap to its cause")
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "truncated")
}
