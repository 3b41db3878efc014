package pipebuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsEmpty(t *testing.T) {
	b := New(4)
	assert.True(t, b.Empty())
	assert.False(t, b.Full())
	assert.Equal(t, 0, b.Len())
}

func TestRoundTrip(t *testing.T) {
	b := New(16)
	msg := []byte("HI")
	n := b.Enqueue(msg)
	require.Equal(t, len(msg), n)

	out := make([]byte, 4)
	n = b.Dequeue(out)
	require.Equal(t, len(msg), n)
	assert.Equal(t, msg, out[:n])

	n = b.Dequeue(out)
	assert.Equal(t, 0, n)
	assert.True(t, b.Empty())
}

func TestCapacityBoundary(t *testing.T) {
	const cap = 8
	b := New(cap)

	written := b.Enqueue(make([]byte, 2*cap))
	assert.Equal(t, cap, written)
	assert.True(t, b.Full())

	// writing into a full buffer returns 0
	assert.Equal(t, 0, b.Enqueue([]byte{1}))

	one := make([]byte, 1)
	n := b.Dequeue(one)
	require.Equal(t, 1, n)
	assert.False(t, b.Full())

	n = b.Enqueue([]byte{0xAA})
	require.Equal(t, 1, n)
	assert.True(t, b.Full())
}

func TestFillAndDrain(t *testing.T) {
	const cap = 4
	b := New(cap)

	n := b.Enqueue(make([]byte, 2*cap))
	assert.Equal(t, cap, n)
	assert.True(t, b.Full())

	assert.Equal(t, 0, b.Enqueue([]byte{1, 2, 3}))

	out := make([]byte, cap)
	n = b.Dequeue(out)
	assert.Equal(t, cap, n)
	assert.False(t, b.Full())
	assert.True(t, b.Empty())

	n = b.Enqueue([]byte{1, 2, 3, 4, 5})
	assert.Equal(t, cap, n)
}

func TestFrontRearInvariant(t *testing.T) {
	b := New(5)
	b.Enqueue([]byte{1, 2, 3})
	out := make([]byte, 1)
	b.Dequeue(out)
	b.Enqueue([]byte{4})

	assert.GreaterOrEqual(t, b.front, 0)
	assert.Less(t, b.front, len(b.data))
	assert.GreaterOrEqual(t, b.rear, 0)
	assert.Less(t, b.rear, len(b.data))
	if b.full {
		assert.Equal(t, b.front, (b.rear+1)%len(b.data))
	}
}
