package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "plain prose is lowercased and split",
			in:   "How do I create a Topic?",
			want: []string{"how", "do", "i", "create", "a", "topic"},
		},
		{
			name: "command names survive as single terms",
			in:   "run kafka-topics.sh --create to add one",
			want: []string{"run", "kafka-topics.sh", "create", "to", "add", "one"},
		},
		{
			name: "config keys keep their dots",
			in:   "set log.retention.hours=168",
			want: []string{"set", "log.retention.hours", "168"},
		},
		{
			name: "punctuation-only input yields nothing",
			in:   "--- ... !!!",
			want: []string{},
		},
		{
			name: "empty input",
			in:   "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}
