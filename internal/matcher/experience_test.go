package matcher

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExperience(t *testing.T) {
	t.Parallel()

	tests := []struct {
		years int
		level string
		want  float64
	}{
		{0, "fresher", 1.0},
		{2, "Entry level", 0.8},
		{5, "fresher", 0.6},
		{2, "1-3 years", 1.0},
		{0, "junior", 0.8},
		{5, "junior", 0.8},
		{8, "junior", 0.6},
		{4, "3-5", 1.0},
		{2, "mid", 0.8},
		{7, "Mid level", 0.8},
		{10, "mid", 0.6},
		{1, "mid", 0.6},
		{6, "5+", 1.0},
		{3, "Senior", 0.7},
		{1, "senior", 0.4},
		{3, "", 0.7},
		{3, "principal", 0.7},
		{-2, "fresher", 1.0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d years %q", tt.years, tt.level), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Experience(tt.years, tt.level))
		})
	}
}

func TestExperienceBucket(t *testing.T) {
	name, ok := ExperienceBucket("  Senior Engineer ")
	assert.True(t, ok)
	assert.Equal(t, "senior", name)

	_, ok = ExperienceBucket("staff")
	assert.False(t, ok)
}
