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

package state

import (
	"context"
	"sync/atomic"

	"github.com/jefftier/SlideShowBob-sub000/pkg/api/models"
	"github.com/jefftier/SlideShowBob-sub000/pkg/helpers/syncutil"
	"github.com/jefftier/SlideShowBob-sub000/pkg/media"
)

// State holds the runtime state of the slideshow service: the navigation
// generation, the item currently on display and the video-completion
// latch that gates auto-advance.
//
// LOCKING RULES: mu protects displayed, hasDisplayed and videoEnded.
// The generation counter is atomic so navigation can bump it without
// taking the lock. Never send to channels while holding the lock;
// pattern: lock, modify, copy what you need, unlock, then notify.
type State struct {
	ctx           context.Context
	ctxCancelFunc context.CancelFunc
	Notifications chan<- models.Notification
	sessionUUID   string
	displayed     media.Item
	generation    atomic.Uint64
	mu            syncutil.RWMutex
	hasDisplayed  bool
	videoEnded    bool
}

func NewState(sessionUUID string) (*State, <-chan models.Notification) {
	// Show payloads carry decoded frames, so the buffer only needs to
	// absorb short bursts while a frontend catches up.
	ns := make(chan models.Notification, 64)
	ctx, ctxCancelFunc := context.WithCancel(context.Background())
	st := &State{
		ctx:           ctx,
		ctxCancelFunc: ctxCancelFunc,
		Notifications: ns,
		sessionUUID:   sessionUUID,
	}
	st.generation.Store(1)
	return st, ns
}

// Generation returns the current navigation generation.
func (s *State) Generation() uint64 {
	return s.generation.Load()
}

// AdvanceGeneration marks a new navigation intent. Loads dispatched
// under earlier generations are discarded when their results arrive.
func (s *State) AdvanceGeneration() uint64 {
	return s.generation.Add(1)
}

// ApplyDisplayed records item as the one on display, unless generation
// is no longer current. Applying a new item clears the video-completion
// latch. Reports whether the result was applied.
func (s *State) ApplyDisplayed(item media.Item, generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation.Load() {
		return false
	}
	s.displayed = item
	s.hasDisplayed = true
	s.videoEnded = false
	return true
}

// Displayed returns the item currently on display, if any.
func (s *State) Displayed() (media.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.displayed, s.hasDisplayed
}

// SetVideoEnded marks the displayed video as finished so auto-advance
// can move past it. Reports whether the displayed item was a video;
// end signals arriving after navigation moved elsewhere are dropped.
func (s *State) SetVideoEnded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasDisplayed || s.displayed.Type != media.TypeVideo {
		return false
	}
	s.videoEnded = true
	return true
}

// VideoEnded reports whether the displayed video has signalled
// completion. Always false when the displayed item is not a video.
func (s *State) VideoEnded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.videoEnded
}

// SessionUUID identifies this service run.
func (s *State) SessionUUID() string {
	return s.sessionUUID
}

func (s *State) GetContext() context.Context {
	return s.ctx
}

// Stop cancels the service context, which shuts down the broker and
// every loop bound to it.
func (s *State) Stop() {
	s.ctxCancelFunc()
}
