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
	"sync"
	"testing"

	"github.com/jefftier/SlideShowBob-sub000/pkg/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	t.Parallel()

	st, ns := NewState("test-session-uuid")

	assert.NotNil(t, ns)
	assert.Equal(t, "test-session-uuid", st.SessionUUID())
	assert.Equal(t, uint64(1), st.Generation())

	_, ok := st.Displayed()
	assert.False(t, ok, "nothing should be displayed initially")
	assert.False(t, st.VideoEnded())
}

func TestAdvanceGeneration(t *testing.T) {
	t.Parallel()

	st, _ := NewState("test")

	assert.Equal(t, uint64(2), st.AdvanceGeneration())
	assert.Equal(t, uint64(3), st.AdvanceGeneration())
	assert.Equal(t, uint64(3), st.Generation())
}

func TestApplyDisplayed_CurrentGeneration(t *testing.T) {
	t.Parallel()

	st, _ := NewState("test")
	item := media.NewItem("/pics/a.jpg", media.TypeImage)

	applied := st.ApplyDisplayed(item, st.Generation())
	assert.True(t, applied)

	displayed, ok := st.Displayed()
	require.True(t, ok)
	assert.Equal(t, item.Path, displayed.Path)
}

func TestApplyDisplayed_StaleGenerationRejected(t *testing.T) {
	t.Parallel()

	st, _ := NewState("test")
	current := media.NewItem("/pics/a.jpg", media.TypeImage)
	require.True(t, st.ApplyDisplayed(current, st.Generation()))

	stale := media.NewItem("/pics/old.jpg", media.TypeImage)
	staleGen := st.Generation()
	st.AdvanceGeneration()

	assert.False(t, st.ApplyDisplayed(stale, staleGen))

	displayed, ok := st.Displayed()
	require.True(t, ok)
	assert.Equal(t, current.Path, displayed.Path, "stale apply must not replace the display")
}

func TestSetVideoEnded_OnlyForDisplayedVideo(t *testing.T) {
	t.Parallel()

	st, _ := NewState("test")

	assert.False(t, st.SetVideoEnded(), "no displayed item yet")

	require.True(t, st.ApplyDisplayed(
		media.NewItem("/pics/a.jpg", media.TypeImage), st.Generation()))
	assert.False(t, st.SetVideoEnded(), "displayed item is not a video")
	assert.False(t, st.VideoEnded())

	require.True(t, st.ApplyDisplayed(
		media.NewItem("/clips/movie.mp4", media.TypeVideo), st.Generation()))
	assert.True(t, st.SetVideoEnded())
	assert.True(t, st.VideoEnded())
}

func TestApplyDisplayed_ClearsVideoEndedLatch(t *testing.T) {
	t.Parallel()

	st, _ := NewState("test")

	require.True(t, st.ApplyDisplayed(
		media.NewItem("/clips/movie.mp4", media.TypeVideo), st.Generation()))
	require.True(t, st.SetVideoEnded())

	st.AdvanceGeneration()
	require.True(t, st.ApplyDisplayed(
		media.NewItem("/clips/next.mp4", media.TypeVideo), st.Generation()))

	assert.False(t, st.VideoEnded(), "new item must start with a fresh latch")
}

func TestStop_CancelsContext(t *testing.T) {
	t.Parallel()

	st, _ := NewState("test")

	select {
	case <-st.GetContext().Done():
		t.Fatal("context should not be done before Stop")
	default:
	}

	st.Stop()

	select {
	case <-st.GetContext().Done():
	default:
		t.Fatal("context should be done after Stop")
	}
}

func TestState_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	st, _ := NewState("test")
	items := []media.Item{
		media.NewItem("/pics/a.jpg", media.TypeImage),
		media.NewItem("/pics/b.jpg", media.TypeImage),
		media.NewItem("/clips/c.mp4", media.TypeVideo),
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				item := items[(i+j)%len(items)]
				st.ApplyDisplayed(item, st.Generation())
				if j%5 == 0 {
					st.AdvanceGeneration()
				}
				_, _ = st.Displayed()
				st.SetVideoEnded()
				_ = st.VideoEnded()
			}
		}(i)
	}
	wg.Wait()

	assert.Positive(t, st.Generation())
}
