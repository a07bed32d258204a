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

package playlist

import (
	"testing"
	"time"

	"github.com/jefftier/SlideShowBob-sub000/pkg/media"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(path string) media.Item {
	return media.NewItem(path, media.TypeImage)
}

func items(paths ...string) []media.Item {
	out := make([]media.Item, 0, len(paths))
	for _, p := range paths {
		out = append(out, item(p))
	}
	return out
}

func names(m *Manager) []string {
	list := m.Items()
	out := make([]string, 0, len(list))
	for _, it := range list {
		out = append(out, it.Name)
	}
	return out
}

func TestParseSortMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    SortMode
		wantErr bool
	}{
		{name: "name ascending", input: "name_asc", want: SortNameAscending},
		{name: "name descending", input: "name_desc", want: SortNameDescending},
		{name: "date oldest", input: "date_oldest", want: SortDateOldestFirst},
		{name: "date newest", input: "date_newest", want: SortDateNewestFirst},
		{name: "random", input: "random", want: SortRandom},
		{name: "mixed case", input: "Name_Asc", want: SortNameAscending},
		{name: "padded", input: "  random  ", want: SortRandom},
		{name: "unknown", input: "by_size", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSortMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortByName(t *testing.T) {
	t.Parallel()

	m := NewManager(afero.NewMemMapFs(), SortNameAscending)
	m.LoadFiles(items("/pics/b.jpg", "/pics/a.jpg", "/pics/c.jpg"))

	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, names(m))
	assert.Equal(t, 1, m.IndexOf("/pics/b.jpg"))

	m.Sort(SortNameDescending)
	assert.Equal(t, []string{"c.jpg", "b.jpg", "a.jpg"}, names(m))
}

func TestSortByName_IgnoresDirectoryInName(t *testing.T) {
	t.Parallel()

	// ordering compares file names, not full paths
	m := NewManager(afero.NewMemMapFs(), SortNameAscending)
	m.LoadFiles(items("/zzz/a.jpg", "/aaa/z.jpg"))

	assert.Equal(t, []string{"a.jpg", "z.jpg"}, names(m))
}

func newDateFS(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	files := []struct {
		name string
		age  time.Duration
	}{
		{name: "/pics/newest.jpg", age: 0},
		{name: "/pics/middle.jpg", age: time.Hour},
		{name: "/pics/oldest.jpg", age: 2 * time.Hour},
	}
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, f.name, []byte("x"), 0o644))
		require.NoError(t, fs.Chtimes(f.name, base, base.Add(-f.age)))
	}
	return fs
}

func TestSortByDate(t *testing.T) {
	t.Parallel()

	m := NewManager(newDateFS(t), SortDateOldestFirst)
	m.LoadFiles(items("/pics/newest.jpg", "/pics/oldest.jpg", "/pics/middle.jpg"))

	assert.Equal(t, []string{"oldest.jpg", "middle.jpg", "newest.jpg"}, names(m))

	m.Sort(SortDateNewestFirst)
	assert.Equal(t, []string{"newest.jpg", "middle.jpg", "oldest.jpg"}, names(m))
}

func TestSortByDate_MissingTimestampSortsLast(t *testing.T) {
	t.Parallel()

	// gone.jpg and lost.jpg are in the playlist but not on the
	// filesystem, as if deleted between discovery and sorting
	m := NewManager(newDateFS(t), SortDateOldestFirst)
	m.LoadFiles(items(
		"/pics/gone.jpg",
		"/pics/newest.jpg",
		"/pics/lost.jpg",
		"/pics/oldest.jpg",
	))

	assert.Equal(t,
		[]string{"oldest.jpg", "newest.jpg", "gone.jpg", "lost.jpg"},
		names(m))

	m.Sort(SortDateNewestFirst)
	assert.Equal(t,
		[]string{"newest.jpg", "oldest.jpg", "gone.jpg", "lost.jpg"},
		names(m))
}

func TestSort_DeterministicModesAreIdempotent(t *testing.T) {
	t.Parallel()

	modes := []SortMode{
		SortNameAscending,
		SortNameDescending,
		SortDateOldestFirst,
		SortDateNewestFirst,
	}

	for _, mode := range modes {
		mode := mode
		t.Run(string(mode), func(t *testing.T) {
			t.Parallel()
			m := NewManager(newDateFS(t), mode)
			m.LoadFiles(items(
				"/pics/middle.jpg",
				"/pics/newest.jpg",
				"/pics/oldest.jpg",
			))

			first := m.Items()
			m.Sort(mode)
			assert.Equal(t, first, m.Items())
		})
	}
}

func TestSortRandom_PreservesItems(t *testing.T) {
	t.Parallel()

	loaded := items("/pics/a.jpg", "/pics/b.jpg", "/pics/c.jpg", "/pics/d.jpg")
	m := NewManager(afero.NewMemMapFs(), SortRandom)
	m.LoadFiles(loaded)

	assert.ElementsMatch(t, loaded, m.Items())
	m.Sort(SortRandom)
	assert.ElementsMatch(t, loaded, m.Items())
}

func TestLoadFiles_DeduplicatesCaseInsensitively(t *testing.T) {
	t.Parallel()

	m := NewManager(afero.NewMemMapFs(), SortNameAscending)
	m.LoadFiles(items("/pics/A.jpg", "/Pics/a.JPG", "/pics/b.jpg"))

	require.Equal(t, 2, m.Count())
	assert.Equal(t, []string{"A.jpg", "b.jpg"}, names(m))
}

func TestLoadFiles_KeepsIndexInRange(t *testing.T) {
	t.Parallel()

	m := NewManager(afero.NewMemMapFs(), SortNameAscending)

	m.LoadFiles(items("/pics/a.jpg", "/pics/b.jpg", "/pics/c.jpg"))
	assert.Equal(t, 0, m.CurrentIndex(), "first load selects index 0")

	m.SetIndex(2)
	m.LoadFiles(items("/pics/a.jpg"))
	assert.Equal(t, 0, m.CurrentIndex(), "index clamped after shrinking")

	m.LoadFiles(nil)
	assert.Equal(t, -1, m.CurrentIndex(), "empty playlist has index -1")
	assert.False(t, m.HasItems())
}

func TestNavigate_WrapsAround(t *testing.T) {
	t.Parallel()

	m := NewManager(afero.NewMemMapFs(), SortNameAscending)
	m.LoadFiles(items("/pics/a.jpg", "/pics/b.jpg", "/pics/c.jpg"))

	m.SetIndex(2)
	assert.Equal(t, 0, m.NavigateNext(), "last wraps to first")

	m.SetIndex(0)
	assert.Equal(t, 2, m.NavigatePrevious(), "first wraps to last")

	assert.Equal(t, 0, m.NavigateNext())
	assert.Equal(t, 1, m.NavigateNext())
}

func TestNavigate_EmptyPlaylistNoOp(t *testing.T) {
	t.Parallel()

	m := NewManager(afero.NewMemMapFs(), SortNameAscending)

	assert.Equal(t, -1, m.NavigateNext())
	assert.Equal(t, -1, m.NavigatePrevious())
	assert.Equal(t, -1, m.CurrentIndex())

	_, ok := m.Current()
	assert.False(t, ok)
}

func TestSetIndex_Clamps(t *testing.T) {
	t.Parallel()

	m := NewManager(afero.NewMemMapFs(), SortNameAscending)

	assert.Equal(t, -1, m.SetIndex(1), "empty playlist rejects any index")

	m.LoadFiles(items("/pics/a.jpg", "/pics/b.jpg", "/pics/c.jpg"))

	assert.Equal(t, 1, m.SetIndex(1))
	assert.Equal(t, 0, m.SetIndex(-5))
	assert.Equal(t, 2, m.SetIndex(99))
}

func TestRemoveFile(t *testing.T) {
	t.Parallel()

	t.Run("before current shifts index to follow item", func(t *testing.T) {
		t.Parallel()
		m := NewManager(afero.NewMemMapFs(), SortNameAscending)
		m.LoadFiles(items("/pics/a.jpg", "/pics/b.jpg", "/pics/c.jpg"))
		m.SetIndex(2)

		require.True(t, m.RemoveFile("/pics/a.jpg"))

		assert.Equal(t, 1, m.CurrentIndex())
		current, ok := m.Current()
		require.True(t, ok)
		assert.Equal(t, "c.jpg", current.Name)
	})

	t.Run("current keeps same index when in bounds", func(t *testing.T) {
		t.Parallel()
		m := NewManager(afero.NewMemMapFs(), SortNameAscending)
		m.LoadFiles(items("/pics/a.jpg", "/pics/b.jpg", "/pics/c.jpg"))
		m.SetIndex(1)

		require.True(t, m.RemoveFile("/pics/b.jpg"))

		assert.Equal(t, 1, m.CurrentIndex())
		current, ok := m.Current()
		require.True(t, ok)
		assert.Equal(t, "c.jpg", current.Name)
	})

	t.Run("current at end falls back to last", func(t *testing.T) {
		t.Parallel()
		m := NewManager(afero.NewMemMapFs(), SortNameAscending)
		m.LoadFiles(items("/pics/a.jpg", "/pics/b.jpg", "/pics/c.jpg"))
		m.SetIndex(2)

		require.True(t, m.RemoveFile("/pics/c.jpg"))

		assert.Equal(t, 1, m.CurrentIndex())
	})

	t.Run("last item leaves empty playlist", func(t *testing.T) {
		t.Parallel()
		m := NewManager(afero.NewMemMapFs(), SortNameAscending)
		m.LoadFiles(items("/pics/a.jpg"))

		require.True(t, m.RemoveFile("/pics/a.jpg"))

		assert.Equal(t, -1, m.CurrentIndex())
		_, ok := m.Current()
		assert.False(t, ok)
	})

	t.Run("case insensitive match", func(t *testing.T) {
		t.Parallel()
		m := NewManager(afero.NewMemMapFs(), SortNameAscending)
		m.LoadFiles(items("/pics/a.jpg"))

		assert.True(t, m.RemoveFile("/PICS/A.JPG"))
		assert.Equal(t, 0, m.Count())
	})

	t.Run("unknown path is a no-op", func(t *testing.T) {
		t.Parallel()
		m := NewManager(afero.NewMemMapFs(), SortNameAscending)
		m.LoadFiles(items("/pics/a.jpg"))

		assert.False(t, m.RemoveFile("/pics/zzz.jpg"))
		assert.Equal(t, 1, m.Count())
		assert.Equal(t, 0, m.CurrentIndex())
	})
}

func TestRemoveFolder(t *testing.T) {
	t.Parallel()

	t.Run("drops only entries under the folder", func(t *testing.T) {
		t.Parallel()
		m := NewManager(afero.NewMemMapFs(), SortNameAscending)
		m.LoadFiles(items(
			"/photos/a.jpg",
			"/photos/sub/b.jpg",
			"/photos2/c.jpg",
		))

		assert.Equal(t, 2, m.RemoveFolder("/photos"))
		assert.Equal(t, []string{"c.jpg"}, names(m))
	})

	t.Run("current inside folder moves to same position", func(t *testing.T) {
		t.Parallel()
		m := NewManager(afero.NewMemMapFs(), SortNameAscending)
		// sorted order: a.jpg, b.jpg, c.jpg, d.jpg
		m.LoadFiles(items(
			"/keep/a.jpg",
			"/gone/b.jpg",
			"/gone/c.jpg",
			"/keep/d.jpg",
		))
		m.SetIndex(2)

		assert.Equal(t, 2, m.RemoveFolder("/gone"))

		assert.Equal(t, 1, m.CurrentIndex())
		current, ok := m.Current()
		require.True(t, ok)
		assert.Equal(t, "d.jpg", current.Name)
	})

	t.Run("current past surviving entries falls back to last", func(t *testing.T) {
		t.Parallel()
		m := NewManager(afero.NewMemMapFs(), SortNameAscending)
		// sorted order: a.jpg, y.jpg, z.jpg
		m.LoadFiles(items(
			"/keep/a.jpg",
			"/gone/y.jpg",
			"/gone/z.jpg",
		))
		m.SetIndex(2)

		assert.Equal(t, 2, m.RemoveFolder("/gone"))
		assert.Equal(t, 0, m.CurrentIndex())
	})

	t.Run("removing everything empties the playlist", func(t *testing.T) {
		t.Parallel()
		m := NewManager(afero.NewMemMapFs(), SortNameAscending)
		m.LoadFiles(items("/gone/a.jpg", "/gone/b.jpg"))

		assert.Equal(t, 2, m.RemoveFolder("/gone"))
		assert.Equal(t, -1, m.CurrentIndex())
		assert.False(t, m.HasItems())
	})

	t.Run("unrelated folder removes nothing", func(t *testing.T) {
		t.Parallel()
		m := NewManager(afero.NewMemMapFs(), SortNameAscending)
		m.LoadFiles(items("/photos/a.jpg"))

		assert.Equal(t, 0, m.RemoveFolder("/elsewhere"))
		assert.Equal(t, 1, m.Count())
	})
}

func TestItems_ReturnsCopy(t *testing.T) {
	t.Parallel()

	m := NewManager(afero.NewMemMapFs(), SortNameAscending)
	m.LoadFiles(items("/pics/a.jpg", "/pics/b.jpg"))

	list := m.Items()
	list[0] = item("/pics/hacked.jpg")

	current, ok := m.ItemAt(0)
	require.True(t, ok)
	assert.Equal(t, "a.jpg", current.Name)
}

func TestIndexOf_CaseInsensitive(t *testing.T) {
	t.Parallel()

	m := NewManager(afero.NewMemMapFs(), SortNameAscending)
	m.LoadFiles(items("/pics/a.jpg", "/pics/b.jpg"))

	assert.Equal(t, 1, m.IndexOf("/PICS/B.JPG"))
	assert.Equal(t, -1, m.IndexOf("/pics/missing.jpg"))
}
