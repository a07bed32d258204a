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

type Media struct {
	CacheCapacity *int     `toml:"cache_capacity,omitempty"`
	Folders       []string `toml:"folders,omitempty,multiline"`
	DecodeWorkers int      `toml:"decode_workers,omitempty"`
	ViewportWidth int      `toml:"viewport_width,omitempty"`
}

// Folders returns the media folder roots to scan.
func (c *Instance) Folders() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	folders := make([]string, len(c.vals.Media.Folders))
	copy(folders, c.vals.Media.Folders)
	return folders
}

// SetFolders sets the media folder roots to scan.
func (c *Instance) SetFolders(folders []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Media.Folders = make([]string, len(folders))
	copy(c.vals.Media.Folders, folders)
}

// CacheCapacity returns the number of decoded images kept in memory.
func (c *Instance) CacheCapacity() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Media.CacheCapacity == nil {
		return 3
	}
	return *c.vals.Media.CacheCapacity
}

// SetCacheCapacity sets the number of decoded images kept in memory.
func (c *Instance) SetCacheCapacity(capacity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Media.CacheCapacity = &capacity
}

// DecodeWorkers returns the number of parallel decode slots.
// Zero means derive from the CPU count.
func (c *Instance) DecodeWorkers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Media.DecodeWorkers
}

// ViewportWidth returns the width in pixels that animated media is
// downscaled to at decode time.
func (c *Instance) ViewportWidth() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Media.ViewportWidth <= 0 {
		return 1920
	}
	return c.vals.Media.ViewportWidth
}

// SetViewportWidth sets the width in pixels that animated media is
// downscaled to at decode time.
func (c *Instance) SetViewportWidth(width int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Media.ViewportWidth = width
}
