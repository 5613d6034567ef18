// Package watcher orchestrates the roster watch loop: poll the grid, diff
// it against the last snapshot, notify subscribers, serve the daily duty
// digest, and apply operator edits. The watcher observes and relays; all
// rendering lives in report and all validation in command.
//
// Three trigger sources interleave: the poll ticker, the daily digest
// timer, and inbound operator messages. One mutex serializes diff cycles
// so an edit-triggered cycle can never read the snapshot mid-replace.
// Every triggered entry point contains its own errors; nothing here is
// allowed to take the process down.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/St3r30X/any-bot/command"
	"github.com/St3r30X/any-bot/diff"
	"github.com/St3r30X/any-bot/grid"
	"github.com/St3r30X/any-bot/report"
	"github.com/St3r30X/any-bot/sheets"
	"github.com/St3r30X/any-bot/snapshot"
)

// Messenger delivers outbound texts. Delivery is fire and forget: the
// watcher logs failures and the next tick tries fresh data.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string, html bool) error
}

// Options tunes the watch loop.
type Options struct {
	// NotifyChat receives change notifications and scheduled digests.
	NotifyChat int64
	// RichText enables HTML parse mode on outbound messages.
	RichText bool
	// PollInterval is the diff-cycle frequency. Default: 2m.
	PollInterval time.Duration
	// DigestAt is the local "HH:MM" the daily digest fires at.
	// Default: "18:00".
	DigestAt string
	// Now overrides the clock (tests). Default: time.Now.
	Now func() time.Time
}

func (o *Options) defaults() {
	if o.PollInterval <= 0 {
		o.PollInterval = 2 * time.Minute
	}
	if o.DigestAt == "" {
		o.DigestAt = "18:00"
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Stats are point-in-time counters, exported via the status endpoint.
type Stats struct {
	Cycles        int64 `json:"cycles"`
	Notifications int64 `json:"notifications"`
	Digests       int64 `json:"digests"`
	Commands      int64 `json:"commands"`
	Errors        int64 `json:"errors"`
}

// Watcher is the top-level orchestrator. Create one per process.
type Watcher struct {
	grid    sheets.Service
	store   snapshot.Store
	msgr    Messenger
	proc    *command.Processor
	changes report.Changes
	digest  report.Digest
	opts    Options
	logger  *slog.Logger

	// cycleMu makes "read grid, load snapshot, notify, replace snapshot"
	// one critical section.
	cycleMu sync.Mutex

	cycles        atomic.Int64
	notifications atomic.Int64
	digests       atomic.Int64
	commands      atomic.Int64
	errs          atomic.Int64
}

// New creates a Watcher.
func New(
	svc sheets.Service,
	store snapshot.Store,
	msgr Messenger,
	proc *command.Processor,
	changes report.Changes,
	digest report.Digest,
	opts Options,
	logger *slog.Logger,
) *Watcher {
	opts.defaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		grid:    svc,
		store:   store,
		msgr:    msgr,
		proc:    proc,
		changes: changes,
		digest:  digest,
		opts:    opts,
		logger:  logger,
	}
}

// Stats returns the current counters.
func (w *Watcher) Stats() Stats {
	return Stats{
		Cycles:        w.cycles.Load(),
		Notifications: w.notifications.Load(),
		Digests:       w.digests.Load(),
		Commands:      w.commands.Load(),
		Errors:        w.errs.Load(),
	}
}

// RunCycle executes one full diff cycle: fetch the grid, compare against
// the stored snapshot, notify when something changed, replace the
// snapshot. Cycles are serialized; a failure anywhere leaves the snapshot
// unchanged so the next tick retries against the same baseline.
//
// The very first cycle only seeds the snapshot: no notification.
func (w *Watcher) RunCycle(ctx context.Context) error {
	w.cycleMu.Lock()
	defer w.cycleMu.Unlock()

	id := uuid.NewString()
	w.cycles.Add(1)

	curr, err := w.grid.Read(ctx)
	if err != nil {
		return fmt.Errorf("watcher: read grid: %w", err)
	}

	prev, err := w.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("watcher: load snapshot: %w", err)
	}

	if prev == nil {
		w.logger.Info("watcher: first run, seeding snapshot", "cycle", id, "rows", len(curr))
		if err := w.store.Replace(ctx, curr); err != nil {
			return fmt.Errorf("watcher: seed snapshot: %w", err)
		}
		return nil
	}

	changes := diff.Diff(prev, curr)
	if len(changes) == 0 {
		w.logger.Debug("watcher: no changes", "cycle", id)
		return nil
	}

	if text := w.changes.Compose(changes, curr); text != "" {
		if err := w.msgr.SendMessage(ctx, w.opts.NotifyChat, text, w.opts.RichText); err != nil {
			return fmt.Errorf("watcher: notify: %w", err)
		}
		w.notifications.Add(1)
	}

	if err := w.store.Replace(ctx, curr); err != nil {
		return fmt.Errorf("watcher: replace snapshot: %w", err)
	}

	w.logger.Info("watcher: cycle complete", "cycle", id, "changes", len(changes))
	return nil
}

// RunDigest sends the duty digest for date to the notify chat. An empty
// date means tomorrow. An empty digest (no matching column, or nobody on
// duty) is a no-op, not an error.
func (w *Watcher) RunDigest(ctx context.Context, date string) error {
	if date == "" {
		date = grid.Tomorrow(w.opts.Now())
	}

	g, err := w.grid.Read(ctx)
	if err != nil {
		return fmt.Errorf("watcher: read grid: %w", err)
	}

	text := w.digest.Compose(g, date)
	if text == "" {
		w.logger.Info("watcher: empty digest", "date", date)
		return nil
	}

	if err := w.msgr.SendMessage(ctx, w.opts.NotifyChat, text, w.opts.RichText); err != nil {
		return fmt.Errorf("watcher: send digest: %w", err)
	}
	w.digests.Add(1)
	return nil
}

// HandleMessage processes one inbound operator message. Edits cascade into
// an immediate diff cycle on success, so subscribers see the change
// attributed like any other; the confirmation reply is sent first.
func (w *Watcher) HandleMessage(ctx context.Context, chat int64, sender, text string) {
	w.commands.Add(1)

	if date, ok := w.digestRequest(sender, text); ok {
		w.replyDigest(ctx, chat, date)
		return
	}

	out := w.proc.Handle(ctx, sender, text)
	if out.Kind == command.Ignored {
		return
	}

	if err := w.msgr.SendMessage(ctx, chat, out.Reply, false); err != nil {
		w.errs.Add(1)
		w.logger.Error("watcher: reply failed", "chat", chat, "error", err)
	}

	if out.Kind == command.Applied {
		if err := w.RunCycle(ctx); err != nil {
			w.errs.Add(1)
			w.logger.Error("watcher: post-edit cycle failed", "error", err)
		}
	}
}

// digestRequest recognizes "/digest" and "/digest YYYY-MM-DD" from
// allow-listed senders. An empty date means tomorrow.
func (w *Watcher) digestRequest(sender, text string) (string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || fields[0] != "/digest" || !w.proc.Allowed(sender) {
		return "", false
	}
	if len(fields) > 1 && grid.ValidDate(fields[1]) {
		return fields[1], true
	}
	return "", true
}

func (w *Watcher) replyDigest(ctx context.Context, chat int64, date string) {
	if date == "" {
		date = grid.Tomorrow(w.opts.Now())
	}

	g, err := w.grid.Read(ctx)
	if err != nil {
		w.errs.Add(1)
		w.logger.Error("watcher: read grid", "error", err)
		return
	}

	text := w.digest.Compose(g, date)
	if text == "" {
		text = "Nobody is on duty on " + date + "."
	}
	if err := w.msgr.SendMessage(ctx, chat, text, w.opts.RichText); err != nil {
		w.errs.Add(1)
		w.logger.Error("watcher: reply failed", "chat", chat, "error", err)
	}
}

// Run blocks until ctx is cancelled, driving the poll ticker and the daily
// digest timer. One diff cycle and one digest run immediately at start.
// Failures are counted and logged; the next tick always gets a fresh try.
func (w *Watcher) Run(ctx context.Context) {
	if err := w.RunCycle(ctx); err != nil {
		w.errs.Add(1)
		w.logger.Error("watcher: initial cycle failed", "error", err)
	}
	if err := w.RunDigest(ctx, ""); err != nil {
		w.errs.Add(1)
		w.logger.Error("watcher: initial digest failed", "error", err)
	}

	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	digestTimer := time.NewTimer(time.Until(w.nextDigestTime()))
	defer digestTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.RunCycle(ctx); err != nil {
				w.errs.Add(1)
				w.logger.Error("watcher: cycle failed", "error", err)
			}
		case <-digestTimer.C:
			if err := w.RunDigest(ctx, ""); err != nil {
				w.errs.Add(1)
				w.logger.Error("watcher: digest failed", "error", err)
			}
			digestTimer.Reset(time.Until(w.nextDigestTime()))
		}
	}
}

// nextDigestTime returns the next local occurrence of opts.DigestAt.
func (w *Watcher) nextDigestTime() time.Time {
	now := w.opts.Now()
	at, err := time.Parse("15:04", w.opts.DigestAt)
	if err != nil {
		// Validated at startup; fall back to a day from now if someone
		// bypassed config loading.
		return now.Add(24 * time.Hour)
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
