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

// Package playlist keeps the ordered list of media items and the
// navigation cursor over them.
package playlist

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/jefftier/SlideShowBob-sub000/pkg/helpers"
	"github.com/jefftier/SlideShowBob-sub000/pkg/media"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

type SortMode string

const (
	SortNameAscending   SortMode = "name_asc"
	SortNameDescending  SortMode = "name_desc"
	SortDateOldestFirst SortMode = "date_oldest"
	SortDateNewestFirst SortMode = "date_newest"
	SortRandom          SortMode = "random"
)

// ParseSortMode converts a persisted sort mode string into a SortMode.
func ParseSortMode(s string) (SortMode, error) {
	mode := SortMode(strings.ToLower(strings.TrimSpace(s)))
	switch mode {
	case SortNameAscending, SortNameDescending,
		SortDateOldestFirst, SortDateNewestFirst, SortRandom:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown sort mode: %q", s)
	}
}

// Manager owns the ordered playlist, its sort mode and the current index.
//
// Manager is not safe for concurrent use. The coordinator serializes all
// access to it under its own lock.
//
// Invariant: the index is -1 exactly when the playlist is empty, and in
// [0, len-1] otherwise.
type Manager struct {
	fs    afero.Fs
	items []media.Item
	mode  SortMode
	index int
}

func NewManager(fsys afero.Fs, mode SortMode) *Manager {
	return &Manager{
		fs:    fsys,
		mode:  mode,
		index: -1,
	}
}

// LoadFiles replaces the playlist contents with discovery output,
// deduplicated case-insensitively, and re-applies the current sort mode.
// The numeric index is kept where possible and only clamped back into
// range; callers that want to keep the same item restore it by path.
func (m *Manager) LoadFiles(items []media.Item) {
	seen := make(map[string]struct{}, len(items))
	next := make([]media.Item, 0, len(items))
	for _, item := range items {
		key := helpers.NormalizePathForComparison(item.Path)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		next = append(next, item)
	}

	m.items = next
	m.applySort()
	m.clampIndex()
}

// Sort switches the active sort mode and re-derives the order. The index
// is left untouched, so it usually points at a different item afterwards;
// callers restore the previously current item by path if they need to.
func (m *Manager) Sort(mode SortMode) {
	m.mode = mode
	m.applySort()
}

func (m *Manager) applySort() {
	switch m.mode {
	case SortNameAscending:
		m.sortByName(false)
	case SortNameDescending:
		m.sortByName(true)
	case SortDateOldestFirst:
		m.sortByDate(false)
	case SortDateNewestFirst:
		m.sortByDate(true)
	case SortRandom:
		m.shuffle()
	default:
		m.sortByName(false)
	}
}

// nameLess orders items by display name, case-insensitively, with the
// normalized path as tie-breaker so the order is total.
func nameLess(a, b media.Item) bool {
	an := strings.ToLower(a.Name)
	bn := strings.ToLower(b.Name)
	if an != bn {
		return an < bn
	}
	return helpers.NormalizePathForComparison(a.Path) <
		helpers.NormalizePathForComparison(b.Path)
}

func (m *Manager) sortByName(descending bool) {
	sort.Slice(m.items, func(i, j int) bool {
		if descending {
			return nameLess(m.items[j], m.items[i])
		}
		return nameLess(m.items[i], m.items[j])
	})
}

type dateKey struct {
	mod  int64
	item media.Item
	ok   bool
}

func (m *Manager) sortByDate(newestFirst bool) {
	keys := make([]dateKey, len(m.items))
	for i, item := range m.items {
		info, err := m.fs.Stat(item.Path)
		if err != nil {
			// file vanished or is unreadable since discovery
			log.Debug().Err(err).Str("path", item.Path).
				Msg("no timestamp for date sort")
			keys[i] = dateKey{item: item}
			continue
		}
		keys[i] = dateKey{item: item, mod: info.ModTime().UnixNano(), ok: true}
	}

	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		// entries without a timestamp sort last in both directions
		if a.ok != b.ok {
			return a.ok
		}
		if a.ok && a.mod != b.mod {
			if newestFirst {
				return a.mod > b.mod
			}
			return a.mod < b.mod
		}
		return nameLess(a.item, b.item)
	})

	for i := range keys {
		m.items[i] = keys[i].item
	}
}

// shuffle reorders uniformly at random. Every application reshuffles,
// there is no stable seed.
func (m *Manager) shuffle() {
	rand.Shuffle(len(m.items), func(i, j int) {
		m.items[i], m.items[j] = m.items[j], m.items[i]
	})
}

func (m *Manager) clampIndex() {
	switch {
	case len(m.items) == 0:
		m.index = -1
	case m.index < 0:
		m.index = 0
	case m.index >= len(m.items):
		m.index = len(m.items) - 1
	}
}

// SetIndex moves the cursor to i, clamped into [0, len-1]. On an empty
// playlist the cursor stays -1. Returns the index actually applied.
func (m *Manager) SetIndex(i int) int {
	if len(m.items) == 0 {
		m.index = -1
		return m.index
	}
	if i >= len(m.items) {
		i = len(m.items) - 1
	} else if i < 0 {
		i = 0
	}
	m.index = i
	return m.index
}

// NavigateNext advances the cursor, wrapping from the last item to the
// first. No-op on an empty playlist. Returns the new index.
func (m *Manager) NavigateNext() int {
	if len(m.items) == 0 {
		return -1
	}
	idx := m.index + 1
	if idx >= len(m.items) {
		idx = 0
	}
	m.index = idx
	return idx
}

// NavigatePrevious moves the cursor back, wrapping from the first item
// to the last. No-op on an empty playlist. Returns the new index.
func (m *Manager) NavigatePrevious() int {
	if len(m.items) == 0 {
		return -1
	}
	idx := m.index - 1
	if idx < 0 {
		idx = len(m.items) - 1
	}
	m.index = idx
	return idx
}

// RemoveFile drops the entry matching path, if present. When the removed
// entry was current, the same index is kept if still in bounds, else the
// last index, else -1. Reports whether an entry was removed.
func (m *Manager) RemoveFile(path string) bool {
	i := m.IndexOf(path)
	if i < 0 {
		return false
	}

	m.items = append(m.items[:i], m.items[i+1:]...)

	switch {
	case len(m.items) == 0:
		m.index = -1
	case i < m.index:
		m.index--
	case i == m.index && m.index >= len(m.items):
		m.index = len(m.items) - 1
	}

	return true
}

// RemoveFolder drops every entry under root, compared case-insensitively
// on the folder boundary. Index handling matches RemoveFile: the current
// item is kept when it survives, otherwise the same position, the last
// index or -1. Returns how many entries were removed.
func (m *Manager) RemoveFolder(root string) int {
	removed := 0
	removedBeforeCurrent := 0
	currentRemoved := false

	kept := m.items[:0]
	for i, item := range m.items {
		if helpers.PathHasPrefix(item.Path, root) {
			removed++
			if i < m.index {
				removedBeforeCurrent++
			} else if i == m.index {
				currentRemoved = true
			}
			continue
		}
		kept = append(kept, item)
	}

	if removed == 0 {
		return 0
	}

	m.items = kept

	switch {
	case len(m.items) == 0:
		m.index = -1
	case currentRemoved:
		idx := m.index - removedBeforeCurrent
		if idx >= len(m.items) {
			idx = len(m.items) - 1
		}
		m.index = idx
	default:
		m.index -= removedBeforeCurrent
	}

	return removed
}

// Items returns a copy of the playlist in its current order.
func (m *Manager) Items() []media.Item {
	items := make([]media.Item, len(m.items))
	copy(items, m.items)
	return items
}

func (m *Manager) Count() int {
	return len(m.items)
}

func (m *Manager) HasItems() bool {
	return len(m.items) > 0
}

func (m *Manager) CurrentIndex() int {
	return m.index
}

// Current returns the item under the cursor, or false when the playlist
// is empty.
func (m *Manager) Current() (media.Item, bool) {
	if m.index < 0 || m.index >= len(m.items) {
		return media.Item{}, false
	}
	return m.items[m.index], true
}

// ItemAt returns the item at index i, or false when out of bounds.
func (m *Manager) ItemAt(i int) (media.Item, bool) {
	if i < 0 || i >= len(m.items) {
		return media.Item{}, false
	}
	return m.items[i], true
}

// IndexOf locates path in the playlist using normalized comparison, or
// returns -1 when absent.
func (m *Manager) IndexOf(path string) int {
	for i, item := range m.items {
		if helpers.PathsEqual(item.Path, path) {
			return i
		}
	}
	return -1
}

func (m *Manager) Mode() SortMode {
	return m.mode
}
