// SlideShowBob
// Copyright (c) 2026 The SlideShowBob Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of SlideShowBob.
//
// SlideShowBob is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// SlideShowBob is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with SlideShowBob.  If not, see <http://www.gnu.org/licenses/>.

package service

import (
	"context"
	"errors"
	"time"

	"github.com/jefftier/SlideShowBob-sub000/pkg/api/models"
	"github.com/jefftier/SlideShowBob-sub000/pkg/api/notifications"
	"github.com/jefftier/SlideShowBob-sub000/pkg/config"
	"github.com/jefftier/SlideShowBob-sub000/pkg/helpers"
	"github.com/jefftier/SlideShowBob-sub000/pkg/helpers/syncutil"
	"github.com/jefftier/SlideShowBob-sub000/pkg/media"
	"github.com/jefftier/SlideShowBob-sub000/pkg/media/discovery"
	"github.com/jefftier/SlideShowBob-sub000/pkg/media/loader"
	"github.com/jefftier/SlideShowBob-sub000/pkg/media/playlist"
	"github.com/jefftier/SlideShowBob-sub000/pkg/service/state"
	"github.com/jefftier/SlideShowBob-sub000/pkg/video"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

var (
	ErrAlreadyRunning = errors.New("slideshow already running")
	ErrEmptyPlaylist  = errors.New("playlist is empty")
	ErrInvalidDelay   = errors.New("slide delay must be positive")
)

// Coordinator is the slideshow state machine. It owns the playlist,
// issues navigation events, runs the auto-advance timer and dispatches
// loads. All playlist access is serialized through it.
type Coordinator struct {
	cfg      *config.Instance
	st       *state.State
	disc     *discovery.Discoverer
	playlist *playlist.Manager
	loader   *loader.Loader
	player   video.Player
	clock    clockwork.Clock

	loopCancel  context.CancelFunc
	loopDone    chan struct{}
	itemShownAt time.Time
	delay       time.Duration
	mu          syncutil.Mutex
	// emitMu keeps navigated events and dispatches in plan order
	emitMu  syncutil.Mutex
	running bool
}

func NewCoordinator(
	cfg *config.Instance,
	st *state.State,
	disc *discovery.Discoverer,
	pl *playlist.Manager,
	ld *loader.Loader,
	player video.Player,
	clock clockwork.Clock,
) *Coordinator {
	return &Coordinator{
		cfg:      cfg,
		st:       st,
		disc:     disc,
		playlist: pl,
		loader:   ld,
		player:   player,
		clock:    clock,
	}
}

// navPlan is a navigation event prepared under the coordinator lock and
// executed outside it.
type navPlan struct {
	item       media.Item
	neighbors  []media.Item
	index      int
	total      int
	generation uint64
	stopVideo  bool
}

// displayPlanLocked prepares the show of the playlist's current item:
// bumps the generation, resets the auto-advance baseline when running
// and records whether a playing video has to be stopped first.
func (c *Coordinator) displayPlanLocked() (navPlan, bool) {
	item, ok := c.playlist.Current()
	if !ok {
		return navPlan{}, false
	}

	plan := navPlan{
		item:       item,
		neighbors:  c.neighborsLocked(),
		index:      c.playlist.CurrentIndex(),
		total:      c.playlist.Count(),
		generation: c.st.AdvanceGeneration(),
	}
	if displayed, has := c.st.Displayed(); has && displayed.Type == media.TypeVideo {
		plan.stopVideo = true
	}
	if c.running {
		c.itemShownAt = c.clock.Now()
	}
	return plan, true
}

// neighborsLocked returns the items adjacent to the current index for
// cache preloading, next first.
func (c *Coordinator) neighborsLocked() []media.Item {
	n := c.playlist.Count()
	if n < 2 {
		return nil
	}
	idx := c.playlist.CurrentIndex()
	next, _ := c.playlist.ItemAt((idx + 1) % n)
	if n == 2 {
		return []media.Item{next}
	}
	prev, _ := c.playlist.ItemAt((idx - 1 + n) % n)
	return []media.Item{next, prev}
}

// execute runs a prepared navigation event: stops a playing video,
// announces the move and hands the item to the loader.
func (c *Coordinator) execute(plan navPlan) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	if plan.stopVideo {
		c.player.Stop(true)
	}
	notifications.MediaNavigated(c.st.Notifications, models.NavigatedParams{
		Item:  plan.item,
		Index: plan.index,
		Total: plan.total,
	})
	c.loader.Dispatch(loader.Request{
		Item:       plan.item,
		Neighbors:  plan.neighbors,
		Generation: plan.generation,
	})
}

func (c *Coordinator) announce(params models.NavigatedParams) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	notifications.MediaNavigated(c.st.Notifications, params)
}

// LoadFiles scans folders for media and replaces the playlist contents.
// The previously current item stays current when it survives the reload,
// otherwise the playlist restarts at the first item. Returns the number
// of items in the playlist afterwards.
func (c *Coordinator) LoadFiles(ctx context.Context, folders []string, includeVideos bool) int {
	// scan before taking the lock so navigation stays responsive
	items := c.disc.Discover(ctx, folders, includeVideos)

	c.mu.Lock()
	prev, hadPrev := c.playlist.Current()
	c.playlist.LoadFiles(items)

	if hadPrev && c.playlist.HasItems() {
		if idx := c.playlist.IndexOf(prev.Path); idx >= 0 {
			c.playlist.SetIndex(idx)
		} else {
			c.playlist.SetIndex(0)
		}
	}

	count := c.playlist.Count()
	plan, ok := c.displayPlanLocked()
	var loopDone chan struct{}
	if !ok && c.running {
		loopDone = c.stopLoopLocked()
	}
	c.mu.Unlock()

	if ok {
		c.execute(plan)
		return count
	}

	if loopDone != nil {
		<-loopDone
		notifications.SlideshowStopped(c.st.Notifications)
	}
	c.announce(models.NavigatedParams{Index: -1})
	return count
}

func (c *Coordinator) NavigateNext() {
	c.navigate(func() { c.playlist.NavigateNext() })
}

func (c *Coordinator) NavigatePrevious() {
	c.navigate(func() { c.playlist.NavigatePrevious() })
}

// SetIndex moves to the given playlist position, clamped into range.
func (c *Coordinator) SetIndex(i int) {
	c.navigate(func() { c.playlist.SetIndex(i) })
}

// navigate applies move to the playlist and shows the resulting current
// item. A no-op on an empty playlist.
func (c *Coordinator) navigate(move func()) {
	c.mu.Lock()
	if !c.playlist.HasItems() {
		c.mu.Unlock()
		return
	}
	move()
	plan, ok := c.displayPlanLocked()
	c.mu.Unlock()

	if ok {
		c.execute(plan)
	}
}

// Sort reorders the playlist. The current item keeps its identity across
// the re-sort; only its index changes, so no reload is dispatched unless
// the item vanished from the playlist. The chosen mode is persisted.
func (c *Coordinator) Sort(mode playlist.SortMode) {
	c.mu.Lock()
	prev, hadPrev := c.playlist.Current()
	c.playlist.Sort(mode)

	var plan navPlan
	var dispatch bool
	var params models.NavigatedParams
	announce := false
	if hadPrev {
		if idx := c.playlist.IndexOf(prev.Path); idx >= 0 {
			c.playlist.SetIndex(idx)
			params = models.NavigatedParams{
				Item:  prev,
				Index: idx,
				Total: c.playlist.Count(),
			}
			announce = true
		} else {
			c.playlist.SetIndex(0)
			plan, dispatch = c.displayPlanLocked()
		}
	}
	c.mu.Unlock()

	c.cfg.SetSortMode(string(mode))
	if err := c.cfg.Save(); err != nil {
		log.Warn().Err(err).Msg("failed to persist sort mode")
	}

	switch {
	case dispatch:
		c.execute(plan)
	case announce:
		c.announce(params)
	}
}

// RemoveFile drops a single item from the playlist. Reports whether the
// path was present.
func (c *Coordinator) RemoveFile(path string) bool {
	c.mu.Lock()
	prev, _ := c.playlist.Current()
	if !c.playlist.RemoveFile(path) {
		c.mu.Unlock()
		return false
	}
	followup := c.removalFollowupLocked(prev)
	c.mu.Unlock()

	c.applyRemovalFollowup(followup)
	return true
}

// RemoveFolder drops every item under the given folder. Returns how many
// items were removed.
func (c *Coordinator) RemoveFolder(root string) int {
	c.mu.Lock()
	prev, _ := c.playlist.Current()
	removed := c.playlist.RemoveFolder(root)
	if removed == 0 {
		c.mu.Unlock()
		return 0
	}
	followup := c.removalFollowupLocked(prev)
	c.mu.Unlock()

	c.applyRemovalFollowup(followup)
	return removed
}

// removalFollowup describes what has to happen after items were removed:
// stop the emptied slideshow, announce a shifted index, or show the item
// that replaced the removed current one.
type removalFollowup struct {
	loopDone chan struct{}
	plan     navPlan
	params   models.NavigatedParams
	dispatch bool
}

func (c *Coordinator) removalFollowupLocked(prev media.Item) removalFollowup {
	cur, ok := c.playlist.Current()
	if !ok {
		f := removalFollowup{params: models.NavigatedParams{Index: -1}}
		if c.running {
			f.loopDone = c.stopLoopLocked()
		}
		return f
	}

	if helpers.PathsEqual(cur.Path, prev.Path) {
		// same item, shifted position
		return removalFollowup{params: models.NavigatedParams{
			Item:  cur,
			Index: c.playlist.CurrentIndex(),
			Total: c.playlist.Count(),
		}}
	}

	plan, _ := c.displayPlanLocked()
	return removalFollowup{plan: plan, dispatch: true}
}

func (c *Coordinator) applyRemovalFollowup(f removalFollowup) {
	if f.loopDone != nil {
		<-f.loopDone
		notifications.SlideshowStopped(c.st.Notifications)
	}
	if f.dispatch {
		c.execute(f.plan)
		return
	}
	c.announce(f.params)
}

// Start begins auto-advancing at the configured delay. The playlist must
// be non-empty and the delay positive.
func (c *Coordinator) Start() error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return ErrAlreadyRunning
	}
	if !c.playlist.HasItems() {
		c.mu.Unlock()
		return ErrEmptyPlaylist
	}
	delay := c.cfg.SlideshowDelay()
	if delay <= 0 {
		c.mu.Unlock()
		return ErrInvalidDelay
	}

	c.running = true
	c.delay = delay
	c.itemShownAt = c.clock.Now()

	ctx, cancel := context.WithCancel(c.st.GetContext())
	c.loopCancel = cancel
	done := make(chan struct{})
	c.loopDone = done

	ticker := c.clock.NewTicker(delay)
	go c.slideshowLoop(ctx, ticker, done)
	c.mu.Unlock()

	c.player.SetMuted(c.cfg.Mute())
	notifications.SlideshowStarted(c.st.Notifications, models.SlideshowParams{
		DelayMS: delay.Milliseconds(),
	})
	log.Info().Dur("delay", delay).Msg("slideshow started")
	return nil
}

// Stop halts auto-advance. The displayed item stays as it is. Calling
// Stop while already stopped is a no-op.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	done := c.stopLoopLocked()
	c.mu.Unlock()

	if done == nil {
		return
	}
	<-done
	notifications.SlideshowStopped(c.st.Notifications)
	log.Info().Msg("slideshow stopped")
}

// stopLoopLocked cancels the timer loop and returns its done channel.
// Waiting on the channel must happen outside the lock, the loop needs it
// to finish a tick in flight.
func (c *Coordinator) stopLoopLocked() chan struct{} {
	if !c.running {
		return nil
	}
	c.running = false
	c.loopCancel()
	return c.loopDone
}

func (c *Coordinator) slideshowLoop(ctx context.Context, ticker clockwork.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			c.autoAdvance()
		}
	}
}

// autoAdvance moves to the next item once the configured delay has
// elapsed for the current one. Videos hold the slide until they signal
// completion, however long that takes.
func (c *Coordinator) autoAdvance() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	if c.clock.Since(c.itemShownAt) < c.delay {
		c.mu.Unlock()
		return
	}
	if displayed, ok := c.st.Displayed(); ok &&
		displayed.Type == media.TypeVideo && !c.st.VideoEnded() {
		c.mu.Unlock()
		log.Debug().Str("path", displayed.Path).Msg("holding slide until video finishes")
		return
	}
	if !c.playlist.HasItems() {
		c.mu.Unlock()
		return
	}

	c.playlist.NavigateNext()
	plan, ok := c.displayPlanLocked()
	c.mu.Unlock()

	if ok {
		c.execute(plan)
	}
}

// SetMuted toggles video playback audio and persists the choice.
func (c *Coordinator) SetMuted(muted bool) {
	c.player.SetMuted(muted)

	c.cfg.SetMute(muted)
	if err := c.cfg.Save(); err != nil {
		log.Warn().Err(err).Msg("failed to persist mute flag")
	}
}

func (c *Coordinator) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Items returns a copy of the playlist in display order.
func (c *Coordinator) Items() []media.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playlist.Items()
}

func (c *Coordinator) CurrentItem() (media.Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playlist.Current()
}

func (c *Coordinator) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playlist.CurrentIndex()
}

func (c *Coordinator) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playlist.Count()
}

func (c *Coordinator) HasItems() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playlist.HasItems()
}

func (c *Coordinator) SortMode() playlist.SortMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playlist.Mode()
}
