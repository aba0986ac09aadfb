// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingestion

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/mailidx/ai"
	"github.com/poiesic/mailidx/config"
	"github.com/poiesic/mailidx/core"
	"github.com/poiesic/mailidx/extract"
	"github.com/poiesic/mailidx/index"
	"github.com/poiesic/mailidx/lookup"
	"github.com/poiesic/mailidx/mailstore"
	"github.com/poiesic/mailidx/storage"
)

// Pipeline ties the ingestion stages together: mail search, extraction,
// publisher resolution, change detection, embedding, and vector upsert.
// Threads are processed strictly one at a time in store order; per-thread
// error isolation substitutes for concurrency.
type Pipeline struct {
	cfg      *config.Config
	store    storage.StateStore
	mail     mailstore.ThreadSource
	table    lookup.TableReader // nil when no lookup table is configured
	embedder ai.Embedder
	writer   index.VectorWriter
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithClock overrides the time source. Used by tests to pin watermarks.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) error {
		if now != nil {
			p.now = now
		}
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline. The table reader may be nil;
// every other collaborator is required.
func NewPipeline(
	cfg *config.Config,
	store storage.StateStore,
	mail mailstore.ThreadSource,
	table lookup.TableReader,
	embedder ai.Embedder,
	writer index.VectorWriter,
	opts ...Option,
) (*Pipeline, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if store == nil {
		return nil, ErrStateStoreRequired
	}
	if mail == nil {
		return nil, ErrThreadSourceRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if writer == nil {
		return nil, ErrVectorWriterRequired
	}

	p := &Pipeline{
		cfg:      cfg,
		store:    store,
		mail:     mail,
		table:    table,
		embedder: embedder,
		writer:   writer,
		logger:   slog.Default(),
		now:      time.Now,
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Run executes one full pipeline pass and returns the run summary.
//
// Missing mandatory configuration is fatal and mutates no state. Auxiliary
// state failures degrade to empty defaults. Once the per-thread loop has
// finished, the fingerprint updates and the new watermark are persisted even
// if some threads errored; persistence failures are logged, not re-raised.
func (p *Pipeline) Run(ctx context.Context) (*core.RunSummary, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	// The watermark candidate is captured before the query so mail arriving
	// mid-run falls into the next window instead of being skipped.
	runStart := p.now()

	table := p.loadPublisherTable(ctx)
	fingerprints := p.loadFingerprints(ctx)
	after := p.loadWatermark(ctx)

	threads, err := p.mail.Search(ctx, p.cfg.SubjectPrefix, after)
	if err != nil {
		return nil, err
	}
	p.logger.Info("search complete", "threads", len(threads), "after", after.Unix())

	summary := &core.RunSummary{Total: len(threads)}
	updated := map[string]string{}
	for i := range threads {
		switch p.processThread(ctx, &threads[i], table, fingerprints, updated) {
		case threadProcessed:
			summary.Processed++
		case threadSkipped:
			summary.Skipped++
		case threadErrored:
			summary.Errored++
		}
	}

	if err := p.store.PutFingerprints(ctx, updated); err != nil {
		p.logger.Error("error persisting fingerprints", "err", err)
	}
	state := &core.RunState{
		Watermark:   runStart.Unix(),
		Processed:   int64(summary.Processed),
		Errored:     int64(summary.Errored),
		Total:       int64(summary.Total),
		CompletedAt: p.now().Unix(),
	}
	if err := p.store.SaveRunState(ctx, state); err != nil {
		p.logger.Error("error persisting run state", "err", err)
	}

	p.logger.Info("run complete",
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"errored", summary.Errored,
		"total", summary.Total)
	return summary, nil
}

type threadStatus int

const (
	threadProcessed threadStatus = iota
	threadSkipped
	threadErrored
)

// processThread runs one thread through extraction, change detection,
// embedding, and upsert. All failures are local to the thread: they are
// logged, reported as threadErrored, and leave the fingerprint map
// untouched so the next run retries.
func (p *Pipeline) processThread(
	ctx context.Context,
	thread *mailstore.Thread,
	table map[string]string,
	fingerprints map[string]string,
	updated map[string]string,
) threadStatus {
	record := extract.BuildThreadRecord(thread.ID, thread.Messages, p.logger)
	record.Labels = thread.Labels
	record.PublisherID = lookup.ResolvePublisher(thread.Labels, table)

	fingerprint := core.Fingerprint(record.FullText)
	if stored, ok := fingerprints[record.ThreadID]; ok && stored == fingerprint {
		p.logger.Debug("thread unchanged", "thread", record.ThreadID)
		return threadSkipped
	}

	vector, err := p.embedder.EmbedText(ctx, record.FullText)
	if err != nil {
		p.logger.Warn("embedding unavailable", "thread", record.ThreadID, "err", err)
		return threadErrored
	}

	err = p.writer.Upsert(ctx, core.VectorRecord{
		ID:       record.ThreadID,
		Values:   vector,
		Metadata: p.buildMetadata(record, fingerprint),
	})
	if err != nil {
		p.logger.Warn("upsert failed", "thread", record.ThreadID, "err", err)
		return threadErrored
	}

	// Only a successful upsert marks the thread as processed.
	fingerprints[record.ThreadID] = fingerprint
	updated[record.ThreadID] = fingerprint
	return threadProcessed
}

// buildMetadata assembles the metadata stored alongside the vector.
// Classification is recorded, not used as a gate: the search query already
// pre-filters by subject prefix, and non-digest matches are stored too.
func (p *Pipeline) buildMetadata(record *core.ThreadRecord, fingerprint string) map[string]any {
	return map[string]any{
		"publisher_id":    record.PublisherID,
		"subject":         record.Subject,
		"last_message":    record.LastMessage,
		"participants":    strings.Join(p.externalParticipants(record), ", "),
		"fingerprint":     fingerprint,
		"is_daily_digest": extract.IsDailyDigest(record, p.cfg.TargetAddress, p.cfg.SubjectPrefix),
		"labels":          strings.Join(record.Labels, ", "),
		"text":            record.FullText,
	}
}

// externalParticipants filters internal-domain addresses out of the stored
// participant list. The full set still drives classification.
func (p *Pipeline) externalParticipants(record *core.ThreadRecord) []string {
	if len(p.cfg.InternalDomains) == 0 {
		return record.Participants
	}
	var external []string
	for _, addr := range record.Participants {
		internal := false
		for _, domain := range p.cfg.InternalDomains {
			if strings.HasSuffix(addr, "@"+domain) {
				internal = true
				break
			}
		}
		if !internal {
			external = append(external, addr)
		}
	}
	return external
}

// loadPublisherTable reads the label -> publisher table. Any failure or
// missing configuration degrades to an empty table.
func (p *Pipeline) loadPublisherTable(ctx context.Context) map[string]string {
	if p.table == nil || p.cfg.SpreadsheetID == "" || p.cfg.SheetName == "" {
		return map[string]string{}
	}
	table, err := p.table.ReadPublisherTable(ctx, p.cfg.SpreadsheetID, p.cfg.SheetName)
	if err != nil {
		p.logger.Warn("publisher table unavailable, using empty mapping", "err", err)
		return map[string]string{}
	}
	return table
}

// loadFingerprints loads the persisted fingerprint map, degrading to empty.
func (p *Pipeline) loadFingerprints(ctx context.Context) map[string]string {
	fingerprints, err := p.store.Fingerprints(ctx)
	if err != nil {
		p.logger.Warn("fingerprint state unavailable, treating as empty", "err", err)
		return map[string]string{}
	}
	return fingerprints
}

// loadWatermark returns the lower bound of the search window: the last
// run's watermark, or the zero time when no run has completed.
func (p *Pipeline) loadWatermark(ctx context.Context) time.Time {
	state, err := p.store.LastRun(ctx)
	if err != nil {
		p.logger.Warn("run state unavailable, querying from epoch", "err", err)
		return time.Time{}
	}
	if state == nil || state.Watermark <= 0 {
		return time.Time{}
	}
	return time.Unix(state.Watermark, 0)
}

// Inspection is the result of a dry run over a single thread.
type Inspection struct {
	Record        *core.ThreadRecord
	Fingerprint   string
	StoredMatches bool
	IsDailyDigest bool
}

// InspectLatest runs extraction, classification, and fingerprinting against
// the single most recent matching thread without writing any state. It is a
// manual verification surface, not part of the scheduled run.
func (p *Pipeline) InspectLatest(ctx context.Context) (*Inspection, error) {
	threads, err := p.mail.Search(ctx, p.cfg.SubjectPrefix, time.Time{})
	if err != nil {
		return nil, err
	}
	if len(threads) == 0 {
		return nil, ErrNoMatchingThread
	}

	latest := &threads[0]
	latestRecord := extract.BuildThreadRecord(latest.ID, latest.Messages, p.logger)
	for i := 1; i < len(threads); i++ {
		candidate := extract.BuildThreadRecord(threads[i].ID, threads[i].Messages, p.logger)
		if candidate.LastMessage > latestRecord.LastMessage {
			latest = &threads[i]
			latestRecord = candidate
		}
	}
	latestRecord.Labels = latest.Labels
	latestRecord.PublisherID = lookup.ResolvePublisher(latest.Labels, p.loadPublisherTable(ctx))

	fingerprint := core.Fingerprint(latestRecord.FullText)
	stored := p.loadFingerprints(ctx)[latestRecord.ThreadID]

	return &Inspection{
		Record:        latestRecord,
		Fingerprint:   fingerprint,
		StoredMatches: stored == fingerprint,
		IsDailyDigest: extract.IsDailyDigest(latestRecord, p.cfg.TargetAddress, p.cfg.SubjectPrefix),
	}, nil
}
