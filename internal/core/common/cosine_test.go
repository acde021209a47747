package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineIdentical(t *testing.T) {
	v := []float32{0.5, 0.5, 0.7}
	assert.InDelta(t, 1.0, Cosine(v, v), 1e-6)
}

func TestCosineOrthogonal(t *testing.T) {
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-6)
}

func TestCosineOppositeClampsToZero(t *testing.T) {
	// Negative similarity is floored so the score stays in [0,1].
	assert.Equal(t, 0.0, Cosine([]float32{1, 0}, []float32{-1, 0}))
}

func TestCosineMismatchedLengths(t *testing.T) {
	assert.Equal(t, 0.0, Cosine([]float32{1, 0}, []float32{1}))
	assert.Equal(t, 0.0, Cosine(nil, []float32{1}))
	assert.Equal(t, 0.0, Cosine([]float32{0, 0}, []float32{0, 0}))
}
