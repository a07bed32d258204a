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

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestAccessors_NoRecursiveLock guards against a getter calling another
// getter while holding RLock. CacheCapacity and ViewportWidth inline their
// default fallbacks for this reason.
//
// With -tags=deadlock, go-deadlock panics on recursive locks, failing this
// test if that invariant regresses.
func TestAccessors_NoRecursiveLock(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}

	done := make(chan struct{})
	go func() {
		_ = cfg.SlideshowDelay()
		_ = cfg.SortMode()
		_ = cfg.IncludeVideos()
		_ = cfg.Mute()
		_ = cfg.Folders()
		_ = cfg.CacheCapacity()
		_ = cfg.DecodeWorkers()
		_ = cfg.ViewportWidth()
		_ = cfg.DebugLogging()
		close(done)
	}()

	select {
	case <-done:
		// Success - no deadlock
	case <-time.After(2 * time.Second):
		t.Fatal("config getters deadlocked - recursive RLock bug")
	}
}

// TestInstance_ConcurrentAccess verifies getters and setters are safe for
// concurrent use from the coordinator, loader, and CLI goroutines.
func TestInstance_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(n int) {
			for j := 0; j < 100; j++ {
				if n%2 == 0 {
					cfg.SetSortMode("random")
					cfg.SetFolders([]string{"/pics"})
					cfg.SetCacheCapacity(n)
				}
				_ = cfg.SortMode()
				_ = cfg.Folders()
				_ = cfg.CacheCapacity()
				_ = cfg.SlideshowDelay()
			}
			done <- struct{}{}
		}(i)
	}

	for i := 0; i < 10; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("concurrent access deadlocked")
		}
	}
}

// TestCacheCapacity_DefaultWhenUnset verifies the fallback when no value
// has been configured.
func TestCacheCapacity_DefaultWhenUnset(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}
	assert.Equal(t, 3, cfg.CacheCapacity())
}

// TestCacheCapacity_CustomValue verifies a configured capacity wins over
// the fallback.
func TestCacheCapacity_CustomValue(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}
	cfg.SetCacheCapacity(8)
	assert.Equal(t, 8, cfg.CacheCapacity())
}
