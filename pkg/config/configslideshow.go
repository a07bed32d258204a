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

package config

import "time"

type Slideshow struct {
	DelayMS       int    `toml:"delay_ms,omitempty"`
	SortMode      string `toml:"sort_mode,omitempty"`
	IncludeVideos bool   `toml:"include_videos"`
	Mute          bool   `toml:"mute"`
}

// SlideshowDelay returns the configured delay between auto-advances.
// The value is returned as configured; callers validate that it is positive.
func (c *Instance) SlideshowDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Slideshow.DelayMS) * time.Millisecond
}

// SetSlideshowDelayMS sets the delay between auto-advances in milliseconds.
func (c *Instance) SetSlideshowDelayMS(ms int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Slideshow.DelayMS = ms
}

// SortMode returns the persisted sort mode identifier.
func (c *Instance) SortMode() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Slideshow.SortMode
}

// SetSortMode sets the persisted sort mode identifier.
func (c *Instance) SetSortMode(mode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Slideshow.SortMode = mode
}

// IncludeVideos returns whether motion media (.gif/.mp4) is included in scans.
func (c *Instance) IncludeVideos() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Slideshow.IncludeVideos
}

// SetIncludeVideos sets whether motion media is included in scans.
func (c *Instance) SetIncludeVideos(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Slideshow.IncludeVideos = enabled
}

// Mute returns whether video playback audio is muted.
func (c *Instance) Mute() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Slideshow.Mute
}

// SetMute sets whether video playback audio is muted.
func (c *Instance) SetMute(muted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Slideshow.Mute = muted
}
