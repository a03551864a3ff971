package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageEmpty(t *testing.T) {
	avg, ok := Average(nil)
	assert.False(t, ok)
	assert.Equal(t, 0.0, avg)

	avg, ok = Average([]Rating{})
	assert.False(t, ok)
	assert.Equal(t, 0.0, avg)
}

func TestAverage(t *testing.T) {
	ratings := []Rating{
		{Rating: 5},
		{Rating: 3},
		{Rating: 4},
	}
	avg, ok := Average(ratings)
	assert.True(t, ok)
	assert.Equal(t, 4.0, avg)
}

func TestAverageSingle(t *testing.T) {
	avg, ok := Average([]Rating{{Rating: 2}})
	assert.True(t, ok)
	assert.Equal(t, 2.0, avg)
}
