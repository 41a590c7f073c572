package resizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer[float32](5, 3, 2)
	assert.Len(t, b.Data, 30)
	assert.Equal(t, 0, b.MinX)
	require.NoError(t, b.validate())
}

func TestBuffer_AtSet(t *testing.T) {
	b := NewBuffer[float32](4, 3, 2)

	b.Set(2, 1, 0, 0.25)
	b.Set(2, 1, 1, 0.75)

	assert.InDelta(t, 0.25, float64(b.At(2, 1, 0)), 0)
	assert.InDelta(t, 0.75, float64(b.At(2, 1, 1)), 0)
	assert.Zero(t, b.At(3, 1, 0))

	// Planar layout: channel 1's sample sits one full plane after channel 0's.
	assert.InDelta(t, 0.25, float64(b.Data[1*4+2]), 0)
	assert.InDelta(t, 0.75, float64(b.Data[3*4+1*4+2]), 0)
}

func TestBuffer_NonZeroOrigins(t *testing.T) {
	b := NewBufferAt[float32](10, 20, 1, 4, 3, 2)

	b.Set(10, 20, 1, 0.5)
	assert.InDelta(t, 0.5, float64(b.At(10, 20, 1)), 0)
	assert.InDelta(t, 0.5, float64(b.Data[0]), 0)

	row := b.Row(21, 2)
	assert.Len(t, row, 4)
	b.Set(13, 21, 2, 1)
	assert.InDelta(t, 1, float64(row[3]), 0)
}

func TestBuffer_Validate(t *testing.T) {
	tests := []struct {
		name   string
		buffer *Buffer[float32]
	}{
		{"nil", nil},
		{"negative extent", &Buffer[float32]{Width: -1, Height: 2, Channels: 1}},
		{"short backing slice", &Buffer[float32]{Data: make([]float32, 5), Width: 4, Height: 2, Channels: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.buffer.validate(), ErrBufferMismatch)
		})
	}
}
