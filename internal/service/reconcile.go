package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/anthanhphan/go-sheet-charts/internal/domain"
	"github.com/anthanhphan/go-sheet-charts/internal/port"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sweepRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sc_reconcile_sweeps_total",
		Help: "Total reconciliation sweeps executed",
	})
	orphanChartsRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sc_reconcile_orphan_charts_removed_total",
		Help: "Charts removed because their file no longer exists",
	})
	staleProcessingRepairedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sc_reconcile_stale_processing_repaired_total",
		Help: "Files stuck in processing flipped to failed",
	})
	payloadsPrunedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sc_reconcile_payloads_pruned_total",
		Help: "Unreferenced payloads removed from the payload store",
	})
)

// ReconcilerConfig tunes the background reconciliation.
type ReconcilerConfig struct {
	// SweepInterval is the period of the full orphan sweep.
	SweepInterval time.Duration

	// StaleProcessingAfter flips files stuck in processing to failed once
	// they are older than this. The flip timer does not survive a restart,
	// so the sweep is the only thing that unsticks them.
	StaleProcessingAfter time.Duration

	// PayloadGrace protects freshly written payloads whose record may not
	// be visible yet from the unreferenced-payload prune.
	PayloadGrace time.Duration
}

// Reconciler guarantees eventual consistency of the "no chart without a
// live file" invariant. A periodic sweep covers everything; a best-effort
// subscription to store deletion events shrinks the orphan window in
// between. Both paths only ever delete, so replaying them is harmless.
type Reconciler struct {
	store    port.ResourceStore
	payloads port.PayloadStore
	cfg      ReconcilerConfig
	now      func() time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewReconciler builds the reconciler. payloads may be nil, which disables
// the leaked-payload prune.
func NewReconciler(store port.ResourceStore, payloads port.PayloadStore, cfg ReconcilerConfig) *Reconciler {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Hour
	}
	if cfg.StaleProcessingAfter <= 0 {
		cfg.StaleProcessingAfter = 10 * time.Minute
	}
	if cfg.PayloadGrace <= 0 {
		cfg.PayloadGrace = time.Hour
	}
	return &Reconciler{
		store:    store,
		payloads: payloads,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Start launches the sweep loop and the deletion-event consumer.
func (r *Reconciler) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(2)
	go r.runSweeps(runCtx)
	go r.consumeEvents(runCtx)

	logger.Infow("Reconciler started", "sweep_interval", r.cfg.SweepInterval.String())
}

// Stop halts both loops and waits for in-flight work.
func (r *Reconciler) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}

func (r *Reconciler) runSweeps(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweepOnce(ctx)
		}
	}
}

// sweepOnce runs one full reconciliation pass. Safe to run concurrently
// with normal traffic and with itself: every action is a delete or a
// status repair, and a record already gone is a no-op.
func (r *Reconciler) sweepOnce(ctx context.Context) {
	sweepRunsTotal.Inc()
	start := r.now()

	orphans := r.removeOrphanCharts(ctx)
	stale := r.repairStaleProcessing(ctx)
	pruned := r.pruneLeakedPayloads(ctx)

	logger.Infow("Reconcile sweep finished",
		"orphan_charts", orphans,
		"stale_processing", stale,
		"pruned_payloads", pruned,
		"elapsed", r.now().Sub(start).String(),
	)
}

func (r *Reconciler) removeOrphanCharts(ctx context.Context) int {
	charts, err := r.store.ScanCharts(ctx)
	if err != nil {
		logger.Warnw("Orphan sweep: chart scan failed", "error", err.Error())
		return 0
	}

	removed := 0
	for _, c := range charts {
		exists, err := r.store.FileExists(ctx, c.FileID)
		if err != nil {
			logger.Warnw("Orphan sweep: file lookup failed", "chart_id", c.ID, "file_id", c.FileID, "error", err.Error())
			continue
		}
		if exists {
			continue
		}

		// Referential gap: resolved silently, never surfaced as an error.
		logger.Infow("Removing orphaned chart", "chart_id", c.ID, "file_id", c.FileID)
		if err := r.store.DeleteChart(ctx, c.ID); err != nil && !errors.Is(err, port.ErrNotFound) {
			logger.Warnw("Orphan chart delete failed", "chart_id", c.ID, "error", err.Error())
			continue
		}
		removed++
		orphanChartsRemovedTotal.Inc()
	}
	return removed
}

func (r *Reconciler) repairStaleProcessing(ctx context.Context) int {
	files, err := r.store.ScanFiles(ctx)
	if err != nil {
		logger.Warnw("Stale-processing sweep: file scan failed", "error", err.Error())
		return 0
	}

	repaired := 0
	cutoff := r.now().Add(-r.cfg.StaleProcessingAfter)
	for _, f := range files {
		if f.Status != domain.StatusProcessing || f.CreatedAt.After(cutoff) {
			continue
		}
		logger.Warnw("File stuck in processing, marking failed", "file_id", f.ID, "created_at", f.CreatedAt.Format(time.RFC3339))
		if err := r.store.UpdateFileStatus(ctx, f.ID, domain.StatusFailed); err != nil && !errors.Is(err, port.ErrNotFound) {
			logger.Warnw("Stale-processing repair failed", "file_id", f.ID, "error", err.Error())
			continue
		}
		repaired++
		staleProcessingRepairedTotal.Inc()
	}
	return repaired
}

// pruneLeakedPayloads deletes payloads no live file references. TTL expiry
// removes only the record, so its payload is always leaked until this runs.
func (r *Reconciler) pruneLeakedPayloads(ctx context.Context) int {
	if r.payloads == nil {
		return 0
	}

	infos, err := r.payloads.List(ctx)
	if err != nil {
		logger.Warnw("Payload prune: list failed", "error", err.Error())
		return 0
	}
	if len(infos) == 0 {
		return 0
	}

	files, err := r.store.ScanFiles(ctx)
	if err != nil {
		logger.Warnw("Payload prune: file scan failed", "error", err.Error())
		return 0
	}
	referenced := make(map[string]struct{}, len(files))
	for _, f := range files {
		if f.PayloadHandle != "" {
			referenced[f.PayloadHandle] = struct{}{}
		}
	}

	pruned := 0
	cutoff := r.now().Add(-r.cfg.PayloadGrace)
	for _, info := range infos {
		if _, ok := referenced[info.Handle]; ok {
			continue
		}
		// Grace period covers the window between payload write and the
		// record becoming visible.
		if info.ModTime.After(cutoff) {
			continue
		}
		if err := r.payloads.Delete(ctx, info.Handle); err != nil {
			logger.Warnw("Payload prune failed", "handle", info.Handle, "error", err.Error())
			continue
		}
		pruned++
		payloadsPrunedTotal.Inc()
	}
	return pruned
}

// consumeEvents reacts to store deletion notifications. A file deletion,
// whether explicit or TTL-caused, immediately cascades to its charts
// instead of waiting for the next sweep. Duplicated or replayed events end
// in the same state.
func (r *Reconciler) consumeEvents(ctx context.Context) {
	defer r.wg.Done()

	for {
		events, err := r.store.SubscribeDeletions(ctx)
		if err != nil {
			logger.Warnw("Deletion subscription failed, retrying", "error", err.Error())
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
				continue
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					// Stream dropped; resubscribe. The sweep covers
					// anything missed in between.
					events = nil
				} else {
					r.handleDeletion(ctx, ev)
				}
			}
			if events == nil {
				break
			}
		}
	}
}

func (r *Reconciler) handleDeletion(ctx context.Context, ev port.DeletionEvent) {
	if ev.Kind != port.KindFile {
		return
	}

	chartIDs, err := r.store.ListChartIDsByFile(ctx, ev.ID)
	if err != nil {
		logger.Warnw("Event cascade: chart lookup failed", "file_id", ev.ID, "error", err.Error())
		return
	}
	for _, chartID := range chartIDs {
		if err := r.store.DeleteChart(ctx, chartID); err != nil && !errors.Is(err, port.ErrNotFound) {
			logger.Warnw("Event cascade: chart delete failed", "file_id", ev.ID, "chart_id", chartID, "error", err.Error())
			continue
		}
		orphanChartsRemovedTotal.Inc()
	}
}
