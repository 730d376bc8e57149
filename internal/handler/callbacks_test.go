package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal string",
			input:    "test_data",
			expected: "test_data",
		},
		{
			name:     "string with whitespace",
			input:    "  test_data  ",
			expected: "test_data",
		},
		{
			name:     "string with newline",
			input:    "test\ndata",
			expected: "testdata",
		},
		{
			name:     "string with tab",
			input:    "test\tdata",
			expected: "testdata",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: "",
		},
		{
			name:     "string with unprintable characters",
			input:    "test\x00data\x01",
			expected: "testdata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseCallback(t *testing.T) {
	tests := []struct {
		name       string
		unique     string
		data       string
		wantAction string
		wantArgs   []string
	}{
		{"split by telebot", "master", "12|2", "master", []string{"12", "2"}},
		{"unique only", "cancel", "", "cancel", nil},
		{"raw data", "", "\fdelete|7|0", "delete", []string{"7", "0"}},
		{"raw page", "", "words_page|3", "words_page", []string{"3"}},
		{"garbage", "", "???", "???", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, args := parseCallback(tt.unique, tt.data)
			assert.Equal(t, tt.wantAction, action)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestEntryTarget(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantID   int64
		wantPage int
		wantErr  bool
	}{
		{"list page", []string{"12", "2"}, 12, 2, false},
		{"review", []string{"5", "0"}, 5, 0, false},
		{"missing page", []string{"12"}, 0, 0, true},
		{"zero id", []string{"0", "1"}, 0, 0, true},
		{"non numeric", []string{"x", "1"}, 0, 0, true},
		{"negative page", []string{"3", "-1"}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, page, err := entryTarget(tt.args)
			if tt.wantErr {
				assert.ErrorIs(t, err, errBadCallback)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantPage, page)
		})
	}
}
