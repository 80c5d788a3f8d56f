package services

import (
	"sort"
	"strings"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// maxExpansionTerms caps how many related terms are appended to a
// query so expansion improves recall without drowning the original.
const maxExpansionTerms = 3

// Expander augments queries with related domain vocabulary from a
// static phrase table. It is a pure, deterministic transform: the same
// query always expands to the same text, and a query with no matching
// phrase passes through unchanged.
type Expander struct {
	table domain.ExpansionTable
	// phrases holds the table keys sorted for deterministic iteration.
	phrases []string
}

// NewExpander creates an expander over the given table. A nil table
// selects the built-in one.
func NewExpander(table domain.ExpansionTable) *Expander {
	if table == nil {
		table = DefaultExpansionTable()
	}
	phrases := make([]string, 0, len(table))
	for p := range table {
		phrases = append(phrases, p)
	}
	sort.Strings(phrases)
	return &Expander{table: table, phrases: phrases}
}

// Expand returns the query with up to maxExpansionTerms related terms
// appended. Matching is case-insensitive substring lookup of each
// table phrase in the query. Terms already present in the query are
// not appended, which keeps repeated application from growing the
// text without bound.
func (e *Expander) Expand(query string) string {
	lower := strings.ToLower(query)

	var additions []string
	for _, phrase := range e.phrases {
		if !strings.Contains(lower, phrase) {
			continue
		}
		for _, term := range e.table[phrase] {
			if len(additions) >= maxExpansionTerms {
				break
			}
			if strings.Contains(lower, strings.ToLower(term)) {
				continue // already in the query
			}
			duplicate := false
			for _, a := range additions {
				if strings.EqualFold(a, term) {
					duplicate = true
					break
				}
			}
			if !duplicate {
				additions = append(additions, term)
			}
		}
	}

	if len(additions) == 0 {
		return query
	}

	expanded := query + " " + strings.Join(additions, " ")
	logger.Debug("Query expanded: %q -> %q", query, expanded)
	return expanded
}

// DefaultExpansionTable maps common operational phrases to the
// command-line vocabulary used in the corpus. Entries are tunable via
// the expansion table in the config file.
func DefaultExpansionTable() domain.ExpansionTable {
	return domain.ExpansionTable{
		"create a topic": {"kafka-topics.sh", "--create", "topic creation"},
		"create topic":   {"kafka-topics.sh", "--create", "topic creation"},
		"delete topic":   {"kafka-topics.sh", "--delete", "topic deletion"},
		"list topics":    {"kafka-topics.sh", "--list", "describe"},
		"consumer group": {"kafka-consumer-groups.sh", "consumer offset", "group management"},
		"producer":       {"kafka-console-producer.sh", "produce messages", "send messages"},
		"consumer":       {"kafka-console-consumer.sh", "consume messages", "read messages"},
		"configuration":  {"broker config", "server.properties", "configure"},
		"retention":      {"log retention", "retention policy", "log.retention"},
		"partition":      {"partitioning", "partition assignment", "num.partitions"},
		"replication":    {"replication factor", "replica", "replicas"},
	}
}
