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

// Package video defines the boundary to the video playback backend. The
// pipeline hands video URIs across it and listens for completion, it
// never decodes frames itself.
package video

import (
	"image"

	"github.com/rs/zerolog/log"
)

type EventKind string

const (
	// EventMediaOpened fires once a handed-off URI is ready to play.
	EventMediaOpened EventKind = "media_opened"
	// EventMediaEnded fires when playback reaches the end of the file.
	// The slideshow holds auto-advance on videos until it arrives.
	EventMediaEnded EventKind = "media_ended"
	// EventFrameCaptured carries a still frame grabbed from playback,
	// used as an instant placeholder. Backends may never send it.
	EventFrameCaptured EventKind = "frame_captured"
)

// Event is a playback notification from the backend.
type Event struct {
	Frame image.Image
	Kind  EventKind
	URI   string
}

// Player is implemented by video playback backends.
type Player interface {
	// LoadVideo hands a media URI to the backend and starts playback.
	LoadVideo(uri string) error
	// Stop halts playback. With captureLastFrame set the backend may
	// emit one final EventFrameCaptured before stopping.
	Stop(captureLastFrame bool)
	// Replay restarts the current video from the beginning.
	Replay()
	// SeekTo jumps to a position given as a 0..1 ratio of duration.
	SeekTo(ratio float64)
	// SetMuted toggles audio.
	SetMuted(muted bool)
	// Events returns the backend's notification stream. The channel
	// stays open for the lifetime of the player.
	Events() <-chan Event
}

// NullPlayer is a Player with no playback backend. Headless runs use it
// so video items still flow through the pipeline, and tests drive its
// event stream directly via Emit.
type NullPlayer struct {
	events chan Event
}

var _ Player = (*NullPlayer)(nil)

func NewNullPlayer() *NullPlayer {
	return &NullPlayer{
		events: make(chan Event, 16),
	}
}

func (p *NullPlayer) LoadVideo(uri string) error {
	log.Debug().Str("uri", uri).Msg("null player: load video")
	return nil
}

func (p *NullPlayer) Stop(_ bool) {}

func (p *NullPlayer) Replay() {}

func (p *NullPlayer) SeekTo(_ float64) {}

func (p *NullPlayer) SetMuted(_ bool) {}

func (p *NullPlayer) Events() <-chan Event {
	return p.events
}

// Emit injects an event as if the backend produced it. Non-blocking so
// a stalled consumer can never wedge the caller.
func (p *NullPlayer) Emit(evt Event) {
	select {
	case p.events <- evt:
	default:
		log.Warn().Str("kind", string(evt.Kind)).
			Msg("null player: event dropped, channel full")
	}
}
