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

// Package loader resolves media items into displayable content on a
// background decode pool, suppressing results that navigation has
// already superseded.
package loader

import (
	"context"
	"runtime"
	"sync"

	"github.com/jefftier/SlideShowBob-sub000/pkg/api/models"
	"github.com/jefftier/SlideShowBob-sub000/pkg/config"
	"github.com/jefftier/SlideShowBob-sub000/pkg/helpers/syncutil"
	"github.com/jefftier/SlideShowBob-sub000/pkg/media"
	"github.com/jefftier/SlideShowBob-sub000/pkg/media/cache"
	"github.com/jefftier/SlideShowBob-sub000/pkg/video"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/semaphore"
)

// DisplayState is the slice of coordinator state the loader needs: the
// current generation, the gate that applies a result to the display, and
// the video-completion latch for videos that fail to hand off.
type DisplayState interface {
	// Generation returns the current navigation generation.
	Generation() uint64
	// ApplyDisplayed marks item as the displayed item if generation is
	// still current. Reports whether the result was applied.
	ApplyDisplayed(item media.Item, generation uint64) bool
	// SetVideoEnded marks the displayed video as finished. Reports
	// whether the displayed item was a video.
	SetVideoEnded() bool
}

// Request asks the loader to resolve one item. Generation is the value
// captured when navigation dispatched the request; Neighbors are the
// adjacent playlist items to warm the cache with afterwards.
type Request struct {
	Item       media.Item
	Neighbors  []media.Item
	Generation uint64
}

// Loader runs the decode pipeline. Display loads borrow a decode slot
// and block for it; preloads only take a slot when one is free.
type Loader struct {
	cfg    *config.Instance
	fs     afero.Fs
	cache  *cache.ImageCache
	state  DisplayState
	player video.Player
	ns     chan<- models.Notification

	slots  *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// displayMu serializes the apply-then-notify pair so show
	// notifications reach subscribers in apply order
	displayMu syncutil.Mutex
}

func NewLoader(
	cfg *config.Instance,
	fsys afero.Fs,
	imgCache *cache.ImageCache,
	state DisplayState,
	ns chan<- models.Notification,
	player video.Player,
) *Loader {
	workers := cfg.DecodeWorkers()
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	// a lone slot would let a preload stall the display path
	if workers < 2 {
		workers = 2
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		cfg:    cfg,
		fs:     fsys,
		cache:  imgCache,
		state:  state,
		player: player,
		ns:     ns,
		slots:  semaphore.NewWeighted(int64(workers)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Dispatch starts resolving req in the background and returns at once.
// The result is delivered as a notification, or silently discarded when
// the request's generation is stale by then.
func (l *Loader) Dispatch(req Request) {
	if l.ctx.Err() != nil {
		return
	}
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.process(req)
	}()
}

// Close stops accepting work and waits for in-flight goroutines to
// finish. In-flight decodes are not interrupted, they run out and their
// results are dropped.
func (l *Loader) Close() {
	l.cancel()
	l.wg.Wait()
}

func (l *Loader) process(req Request) {
	if err := l.slots.Acquire(l.ctx, 1); err != nil {
		return
	}
	shown := l.resolve(req)
	// release before preloading so neighbor decodes get the full pool
	l.slots.Release(1)

	if shown {
		l.preloadNeighbors(req.Neighbors)
	}
}

// resolve runs the per-type load path. Reports whether the item made it
// onto the display.
func (l *Loader) resolve(req Request) bool {
	switch req.Item.Type {
	case media.TypeImage:
		return l.processImage(req)
	case media.TypeAnimatedImage:
		return l.processAnimated(req)
	case media.TypeVideo:
		return l.processVideo(req)
	default:
		log.Error().Str("type", string(req.Item.Type)).
			Str("path", req.Item.Path).Msg("cannot load unknown media type")
		return false
	}
}

func (l *Loader) processImage(req Request) bool {
	img, ok := l.cache.Get(req.Item.Path)
	if !ok {
		decoded, err := l.decodeImage(req.Item.Path)
		if err != nil {
			l.reportFailure(req, err)
			return false
		}
		// cache even when this request lost the race, the next
		// request for the same path still gets the hit
		l.cache.Put(req.Item.Path, decoded)
		img = decoded
	}

	return l.applyAndShow(req, models.ShowMediaParams{Image: img, Item: req.Item})
}

func (l *Loader) processAnimated(req Request) bool {
	anim, err := l.decodeAnimation(req.Item.Path)
	if err != nil {
		l.reportFailure(req, err)
		return false
	}

	return l.applyAndShow(req, models.ShowMediaParams{Animation: anim, Item: req.Item})
}

func (l *Loader) processVideo(req Request) bool {
	l.displayMu.Lock()
	if !l.state.ApplyDisplayed(req.Item, req.Generation) {
		l.displayMu.Unlock()
		log.Debug().Str("path", req.Item.Path).
			Msg("discarding superseded video load")
		return false
	}

	if err := l.player.LoadVideo(req.Item.Path); err != nil {
		// fail like any other bad item: report it and release the
		// auto-advance hold, there will never be an end signal
		l.state.SetVideoEnded()
		l.notify(models.Notification{
			Method: models.NotificationMediaFailed,
			Params: models.MediaFailedParams{Item: req.Item, Error: err.Error()},
		})
		l.displayMu.Unlock()
		log.Warn().Err(err).Str("path", req.Item.Path).
			Msg("video player rejected media")
		return false
	}

	l.notify(models.Notification{
		Method: models.NotificationMediaShow,
		Params: models.ShowMediaParams{Item: req.Item},
	})
	l.displayMu.Unlock()
	return true
}

// applyAndShow applies the result to display state and emits the show
// notification as one step, so a superseding load cannot slot its
// notification between ours. Reports whether the result was applied.
func (l *Loader) applyAndShow(req Request, payload models.ShowMediaParams) bool {
	l.displayMu.Lock()
	defer l.displayMu.Unlock()

	if !l.state.ApplyDisplayed(req.Item, req.Generation) {
		log.Debug().Str("path", req.Item.Path).
			Uint64("generation", req.Generation).
			Msg("discarding superseded load")
		return false
	}

	l.notify(models.Notification{
		Method: models.NotificationMediaShow,
		Params: payload,
	})
	return true
}

// reportFailure logs a decode failure and, when the request is still
// current, tells subscribers the item has no content. Stale failures
// are only logged.
func (l *Loader) reportFailure(req Request, err error) {
	log.Warn().Err(err).Str("path", req.Item.Path).Msg("failed to load media")

	if l.state.Generation() != req.Generation {
		return
	}
	l.notify(models.Notification{
		Method: models.NotificationMediaFailed,
		Params: models.MediaFailedParams{Item: req.Item, Error: err.Error()},
	})
}

// preloadNeighbors warms the cache for items adjacent to a shown item.
// Purely best effort: only still images qualify, slots are try-acquired
// rather than waited for, and failures are dropped.
func (l *Loader) preloadNeighbors(neighbors []media.Item) {
	for _, item := range neighbors {
		if item.Type != media.TypeImage {
			continue
		}
		if _, ok := l.cache.Get(item.Path); ok {
			continue
		}
		if !l.slots.TryAcquire(1) {
			log.Debug().Msg("decode slots busy, skipping preloads")
			return
		}

		l.wg.Add(1)
		go func(item media.Item) {
			defer l.wg.Done()
			defer l.slots.Release(1)
			l.preload(item)
		}(item)
	}
}

func (l *Loader) preload(item media.Item) {
	if l.ctx.Err() != nil {
		return
	}
	img, err := l.decodeImage(item.Path)
	if err != nil {
		log.Debug().Err(err).Str("path", item.Path).Msg("preload failed")
		return
	}
	l.cache.Put(item.Path, img)
}

// notify sends on the notification channel unless the loader is shutting
// down, so a stopped consumer can never wedge a decode goroutine.
func (l *Loader) notify(n models.Notification) {
	select {
	case l.ns <- n:
	case <-l.ctx.Done():
	}
}
