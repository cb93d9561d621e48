package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNames(t *testing.T) {
	tests := []struct {
		name   string
		joined string
		want   []string
	}{
		{"empty", "", []string{}},
		{"single", "Kunal Verma", []string{"Kunal Verma"}},
		{"trims and drops empties", " Kunal Verma , ,Akash Roy,, ", []string{"Kunal Verma", "Akash Roy"}},
		{"drops repeats", "Akash Roy, Akash Roy", []string{"Akash Roy"}},
		{"case sensitive", "akash, Akash", []string{"akash", "Akash"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNames(tt.joined))
		})
	}
}

func TestJoinNames(t *testing.T) {
	assert.Equal(t, "Kunal Verma, Akash Roy", JoinNames([]string{" Kunal Verma", "", "Akash Roy "}))
	assert.Equal(t, "", JoinNames(nil))

	joined := "Kunal Verma, Akash Roy"
	assert.Equal(t, joined, JoinNames(ParseNames(joined)))
}
