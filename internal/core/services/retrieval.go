package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// Ensure RetrievalEngine implements the interface.
var _ driving.RetrievalService = (*RetrievalEngine)(nil)

// generation bundles the read-only structures serving one corpus
// version. Queries resolve the active generation once at entry, so a
// concurrent Reload never changes an in-flight call's results.
type generation struct {
	chunks driven.ChunkStore
	dense  driven.DenseIndex
	sparse driven.SparseIndex
}

// RetrievalEngine coordinates the hybrid retrieval pipeline:
// expansion, parallel index lookups, fusion, filtering, truncation,
// and the optional rerank stage.
type RetrievalEngine struct {
	settings domain.RetrievalSettings
	factory  driven.IndexFactory
	embedder driven.EmbeddingProvider
	reranker driven.Reranker
	expander *Expander
	merger   *Merger

	gen atomic.Pointer[generation]
	// reloading serialises Reload calls; query serving never takes it.
	reloading atomic.Bool
}

// NewRetrievalEngine creates the engine. Settings are validated here:
// invalid weights or thresholds fail with domain.ErrConfiguration
// before any query is served. The reranker parameter is optional
// (can be nil).
func NewRetrievalEngine(
	settings domain.RetrievalSettings,
	expansion domain.ExpansionTable,
	factory driven.IndexFactory,
	embedder driven.EmbeddingProvider,
	reranker driven.Reranker,
) (*RetrievalEngine, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, fmt.Errorf("%w: index factory is required", domain.ErrConfiguration)
	}
	if settings.RerankEnabled && reranker == nil {
		return nil, fmt.Errorf("%w: rerank enabled but no reranker configured", domain.ErrRerankUnavailable)
	}

	merger, err := NewMerger(settings.DenseWeight, settings.SparseWeight)
	if err != nil {
		return nil, err
	}

	return &RetrievalEngine{
		settings: settings,
		factory:  factory,
		embedder: embedder,
		reranker: reranker,
		expander: NewExpander(expansion),
		merger:   merger,
	}, nil
}

// Ready reports whether a generation has been built.
func (e *RetrievalEngine) Ready() bool {
	return e.gen.Load() != nil
}

// Retrieve answers a query with a ranked, deduplicated candidate list.
func (e *RetrievalEngine) Retrieve(
	ctx context.Context, query string, opts domain.RetrievalOptions,
) (*domain.RetrievalResult, error) {
	logger.Section("Retrieval Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidQuery)
	}
	if opts.TopK < 0 {
		return nil, fmt.Errorf("%w: negative top_k %d", domain.ErrInvalidQuery, opts.TopK)
	}
	if opts.ContentType != "" && !opts.ContentType.Valid() {
		return nil, fmt.Errorf("%w: unknown content type %q", domain.ErrInvalidQuery, opts.ContentType)
	}

	gen := e.gen.Load()
	if gen == nil {
		return nil, domain.ErrIndexNotReady
	}

	// Expansion is applied exactly once per query.
	expanded := query
	if !opts.DisableExpansion {
		expanded = e.expander.Expand(query)
	}

	result := &domain.RetrievalResult{
		Query:         query,
		ExpandedQuery: expanded,
	}

	if opts.TopK == 0 {
		logger.Debug("top_k=0, returning empty result")
		return result, nil
	}

	if e.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	logger.Debug("Generating query embedding...")
	vector, err := e.embedder.Embed(ctx, expanded)
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		return nil, fmt.Errorf("generate query embedding: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(vector))

	// Each index gets a pool larger than top_k so the merger has
	// enough material before truncation.
	pool := opts.TopK * e.settings.OverfetchFactor
	logger.Debug("Candidate pool per index: %d", pool)

	var denseHits, sparseHits []driven.Hit
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		denseHits, err = gen.dense.Search(gctx, vector, pool)
		if err != nil {
			return fmt.Errorf("dense search: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		sparseHits, err = gen.sparse.Search(gctx, domain.Tokenize(expanded), pool)
		if err != nil {
			return fmt.Errorf("sparse search: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("Index hits: dense=%d, sparse=%d", len(denseHits), len(sparseHits))

	merged := e.merger.Merge(denseHits, sparseHits)
	logger.Debug("Fused candidates: %d", len(merged))

	// Hydrate, filter, threshold, truncate.
	type hydrated struct {
		fusedCandidate
		chunk domain.Chunk
	}
	survivors := make([]hydrated, 0, opts.TopK)
	for _, c := range merged {
		if len(survivors) >= opts.TopK {
			break
		}
		if e.settings.SimilarityThreshold > 0 && c.fused < e.settings.SimilarityThreshold {
			// Candidates are sorted by fused score, so nothing
			// below this one can pass either.
			break
		}
		chunk, err := gen.chunks.Get(c.chunkID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get chunk %s: %w", c.chunkID, err)
		}
		if opts.ContentType != domain.ContentTypeAny && chunk.ContentType != opts.ContentType {
			continue
		}
		survivors = append(survivors, hydrated{fusedCandidate: c, chunk: *chunk})
	}
	logger.Debug("Survivors after filter/threshold/truncate: %d", len(survivors))

	// Optional rerank stage: re-sort the survivors by a second-pass
	// score against the original query. The fused order stands when
	// the stage is absent.
	rerankScores := make(map[string]float64)
	if e.settings.RerankEnabled && e.reranker != nil {
		logger.Debug("Reranking %d candidates with %s", len(survivors), e.reranker.Name())
		for i := range survivors {
			score, err := e.reranker.Score(ctx, query, survivors[i].chunk.Content)
			if err != nil {
				return nil, fmt.Errorf("rerank %s: %w", survivors[i].chunkID, err)
			}
			rerankScores[survivors[i].chunkID] = score
		}
		sort.SliceStable(survivors, func(i, j int) bool {
			si, sj := rerankScores[survivors[i].chunkID], rerankScores[survivors[j].chunkID]
			if si != sj {
				return si > sj
			}
			return survivors[i].chunkID < survivors[j].chunkID
		})
	}

	result.Candidates = make([]domain.ScoredCandidate, len(survivors))
	for i := range survivors {
		result.Candidates[i] = domain.ScoredCandidate{
			ChunkID:     survivors[i].chunkID,
			Chunk:       survivors[i].chunk,
			DenseScore:  survivors[i].rawDense,
			SparseScore: survivors[i].rawSparse,
			FusedScore:  survivors[i].fused,
			Rank:        i + 1,
		}
	}

	if opts.Debug {
		diag := &domain.Diagnostics{
			Query:         query,
			ExpandedQuery: expanded,
			TopK:          opts.TopK,
			Entries:       make([]domain.DiagnosticEntry, len(survivors)),
		}
		for i := range survivors {
			entry := domain.DiagnosticEntry{
				ChunkID:    survivors[i].chunkID,
				DocName:    survivors[i].chunk.DocName,
				Page:       survivors[i].chunk.Page,
				RawDense:   survivors[i].rawDense,
				RawSparse:  survivors[i].rawSparse,
				NormDense:  survivors[i].normDense,
				NormSparse: survivors[i].normSparse,
				FusedScore: survivors[i].fused,
			}
			if score, ok := rerankScores[survivors[i].chunkID]; ok {
				entry.RerankScore = &score
			}
			diag.Entries[i] = entry
		}
		result.Diagnostics = diag
	}

	logger.Info("Final results: %d", len(result.Candidates))
	return result, nil
}

// Reload builds a new generation from the given chunks and embeddings
// and atomically swaps it in. The build happens fully off to the side;
// a failure leaves the previous generation serving.
func (e *RetrievalEngine) Reload(
	ctx context.Context, chunks []domain.Chunk, embeddings map[string][]float32,
) error {
	if !e.reloading.CompareAndSwap(false, true) {
		return domain.ErrIngestInProgress
	}
	defer e.reloading.Store(false)

	logger.Section("Generation Rebuild")
	logger.Debug("Building generation: %d chunks, %d embeddings", len(chunks), len(embeddings))

	for i := range chunks {
		if _, ok := embeddings[chunks[i].ID]; !ok {
			return fmt.Errorf("%w: chunk %s has no embedding", domain.ErrConfiguration, chunks[i].ID)
		}
	}

	store, err := e.factory.NewChunkStore(chunks)
	if err != nil {
		return fmt.Errorf("build chunk store: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dense, err := e.factory.NewDenseIndex(embeddings)
	if err != nil {
		return fmt.Errorf("build dense index: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	sparse, err := e.factory.NewSparseIndex(chunks, e.settings.BM25K1, e.settings.BM25B)
	if err != nil {
		return fmt.Errorf("build sparse index: %w", err)
	}

	e.gen.Store(&generation{chunks: store, dense: dense, sparse: sparse})
	logger.Info("Generation swapped: %d chunks live", store.Len())
	return nil
}
