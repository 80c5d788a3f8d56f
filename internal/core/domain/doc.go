// Package domain contains the core business entities and rules for Recall.
// This package has no external dependencies and defines the ubiquitous language:
// chunks, queries, scored candidates, retrieval results, and settings.
package domain
