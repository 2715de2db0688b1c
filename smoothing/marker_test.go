package smoothing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinOrMerge(t *testing.T) {
	empty := Marker{}

	a := NewMarker(1, 3)
	b := NewMarker(2, 7)

	assert.Equal(t, a, MinOrMerge(a, empty))
	assert.Equal(t, a, MinOrMerge(empty, a))
	assert.Equal(t, empty, MinOrMerge(empty, empty))

	assert.Equal(t, a, MinOrMerge(a, b))
	assert.Equal(t, a, MinOrMerge(b, a))

	c := NewMarker(10, 3)
	assert.Equal(t, NewMarker(11, 3), MinOrMerge(a, c))
}

func TestMaxOrEmpty(t *testing.T) {
	empty := Marker{}

	a := NewMarker(1, 3)
	b := NewMarker(2, 7)

	assert.Equal(t, empty, MaxOrEmpty(a, empty))
	assert.Equal(t, empty, MaxOrEmpty(empty, b))

	assert.Equal(t, b, MaxOrEmpty(a, b))
	assert.Equal(t, b, MaxOrEmpty(b, a))

	c := NewMarker(10, 3)
	assert.Equal(t, empty, MaxOrEmpty(a, c))
}
