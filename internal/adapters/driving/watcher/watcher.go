// Package watcher reloads the live generation when the corpus database
// changes on disk, so a concurrent ingest from another process becomes
// visible without restarting the server.
package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// debounceDelay coalesces the burst of write events one corpus swap
// produces into a single reload.
const debounceDelay = 500 * time.Millisecond

// Watcher monitors the corpus file and rebuilds the generation when it
// changes.
type Watcher struct {
	watcher   *fsnotify.Watcher
	corpus    driven.CorpusStore
	retrieval driving.RetrievalService
	stopChan  chan struct{}
}

// New creates a watcher over the corpus store's database file.
func New(corpus driven.CorpusStore, retrieval driving.RetrievalService) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: SQLite swaps journal files around the
	// database, and a directory watch survives those renames.
	if err := fsw.Add(filepath.Dir(corpus.Path())); err != nil {
		fsw.Close()
		return nil, err
	}

	return &Watcher{
		watcher:   fsw,
		corpus:    corpus,
		retrieval: retrieval,
		stopChan:  make(chan struct{}),
	}, nil
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.watchLoop()
	logger.Info("Watching corpus at %s", w.corpus.Path())
}

// Stop ends watching and releases the underlying watcher.
func (w *Watcher) Stop() {
	close(w.stopChan)
	w.watcher.Close()
	logger.Debug("Corpus watcher stopped")
}

func (w *Watcher) watchLoop() {
	var debounce *time.Timer

	for {
		select {
		case <-w.stopChan:
			if debounce != nil {
				debounce.Stop()
			}
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(w.corpus.Path()) {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			// Debounce: an ingest touches the file many times.
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, w.reload)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Corpus watcher error: %v", err)
		}
	}
}

// reload rebuilds the generation from the corpus store. A reload
// already in progress wins; the watcher will be triggered again by the
// next write.
func (w *Watcher) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	chunks, embeddings, err := w.corpus.Load(ctx)
	if err != nil {
		logger.Warn("Corpus reload failed to load chunks: %v", err)
		return
	}
	if len(chunks) == 0 {
		logger.Debug("Corpus file changed but holds no chunks, skipping reload")
		return
	}

	if err := w.retrieval.Reload(ctx, chunks, embeddings); err != nil {
		if errors.Is(err, domain.ErrIngestInProgress) {
			logger.Debug("Reload already in progress, skipping")
			return
		}
		logger.Warn("Corpus reload failed: %v", err)
		return
	}
	logger.Info("Corpus reloaded: %d chunks live", len(chunks))
}
