package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expected      Level
		expectedError bool
	}{
		{name: "empty defaults to A1", input: "", expected: LevelA1},
		{name: "upper case", input: "B2", expected: LevelB2},
		{name: "lower case with spaces", input: " c1 ", expected: LevelC1},
		{name: "unknown", input: "D1", expectedError: true},
		{name: "garbage", input: "fluent", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.expectedError {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestLevel_Valid(t *testing.T) {
	for _, l := range Levels {
		assert.True(t, l.Valid(), string(l))
	}
	assert.False(t, Level("").Valid())
	assert.False(t, Level("a1").Valid())
}
