package kernerr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesCause(t *testing.T) {
	wrapped := Wrap(ErrBadFD, "close: pid 0 fd 99")
	assert.ErrorIs(t, Cause(wrapped), ErrBadFD)
	assert.Contains(t, wrapped.Error(), "close: pid 0 fd 99")
	assert.Contains(t, wrapped.Error(), ErrBadFD.Error())
}

func TestWrapfPreservesCause(t *testing.T) {
	wrapped := Wrapf(ErrNotOwner, "close: pid %d fd %d", 3, 5)
	assert.ErrorIs(t, Cause(wrapped), ErrNotOwner)
	assert.Contains(t, wrapped.Error(), "close: pid 3 fd 5")
}

func TestWrapNilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "unreachable"))
	assert.Nil(t, Wrapf(nil, "unreachable %d", 1))
}
