package lexical

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_RangeAndDeterminism(t *testing.T) {
	r := New()

	texts := []string{
		"",
		"short",
		"To create a topic run kafka-topics.sh --create --topic name.",
		strings.Repeat("Kafka brokers replicate partitions across the cluster. ", 40),
	}
	for _, text := range texts {
		first, err := r.Score(context.Background(), "create a topic", text)
		require.NoError(t, err)
		second, err := r.Score(context.Background(), "create a topic", text)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Greater(t, first, 0.0)
		assert.Less(t, first, 1.0)
	}
}

func TestScore_TermCoverageRanksHigher(t *testing.T) {
	r := New()

	covering, err := r.Score(context.Background(), "topic retention policy",
		"The topic retention policy controls how long messages persist.")
	require.NoError(t, err)

	unrelated, err := r.Score(context.Background(), "topic retention policy",
		"ZooKeeper coordinates controller election and membership tracking.")
	require.NoError(t, err)

	assert.Greater(t, covering, unrelated)
}

func TestScore_EarlyMatchBeatsLateMatch(t *testing.T) {
	r := New()

	padding := strings.Repeat("x ", 200)
	early, err := r.Score(context.Background(), "retention",
		"retention settings come first here. "+padding)
	require.NoError(t, err)

	late, err := r.Score(context.Background(), "retention",
		padding+" retention settings come last here.")
	require.NoError(t, err)

	assert.Greater(t, early, late)
}

func TestScore_ModerateLengthPreferred(t *testing.T) {
	r := New()

	// Identical coverage and position, different lengths.
	near := "retention " + strings.Repeat("a", 790)
	tiny := "retention"

	nearScore, err := r.Score(context.Background(), "retention", near)
	require.NoError(t, err)
	tinyScore, err := r.Score(context.Background(), "retention", tiny)
	require.NoError(t, err)

	assert.Greater(t, nearScore, tinyScore)
}

func TestScore_CommandNamesMatchWhole(t *testing.T) {
	r := New()

	exact, err := r.Score(context.Background(), "kafka-topics.sh",
		"Use kafka-topics.sh to manage topics.")
	require.NoError(t, err)

	partial, err := r.Score(context.Background(), "kafka-topics.sh",
		"Kafka topics are managed through the admin client.")
	require.NoError(t, err)

	assert.Greater(t, exact, partial)
}

func TestName(t *testing.T) {
	assert.Equal(t, "lexical", New().Name())
}
