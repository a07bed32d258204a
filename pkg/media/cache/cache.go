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

// Package cache holds a small bounded store of decoded images so that
// revisiting recent slides skips the decode entirely.
package cache

import (
	"image"

	"github.com/jefftier/SlideShowBob-sub000/pkg/helpers"
	"github.com/jefftier/SlideShowBob-sub000/pkg/helpers/syncutil"
)

// DefaultCapacity bounds the cache to a handful of full-size bitmaps.
// Slides are large, so the win is revisits and neighbor preloads, not
// bulk retention.
const DefaultCapacity = 3

// ImageCache maps normalized file paths to immutable decoded bitmaps.
// When full, inserting a new entry evicts the entry inserted earliest,
// regardless of how recently it was read. Entries are never invalidated
// by external file changes during a run.
//
// Safe for concurrent use by the display and preload paths.
type ImageCache struct {
	entries  map[string]image.Image
	order    []string
	capacity int
	mu       syncutil.Mutex
}

// NewImageCache creates a cache bounded to capacity entries. Values
// below 1 fall back to DefaultCapacity.
func NewImageCache(capacity int) *ImageCache {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &ImageCache{
		entries:  make(map[string]image.Image, capacity),
		order:    make([]string, 0, capacity),
		capacity: capacity,
	}
}

// Get returns the cached bitmap for path, if present. A hit returns the
// shared immutable image and does not affect eviction order.
func (c *ImageCache) Get(path string) (image.Image, bool) {
	key := helpers.NormalizePathForComparison(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	img, ok := c.entries[key]
	return img, ok
}

// Put stores the bitmap for path, evicting the earliest-inserted entry
// when the cache is over capacity. Re-inserting an existing path
// replaces its bitmap but keeps its original insertion slot.
func (c *ImageCache) Put(path string, img image.Image) {
	if img == nil {
		return
	}
	key := helpers.NormalizePathForComparison(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = img
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = img
	c.order = append(c.order, key)
}

// Len reports how many entries the cache currently holds.
func (c *ImageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity reports the configured bound.
func (c *ImageCache) Capacity() int {
	return c.capacity
}
