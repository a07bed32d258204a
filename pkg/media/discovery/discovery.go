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

// Package discovery scans folders for media files the viewer can display.
package discovery

import (
	"context"
	"os"

	"github.com/jefftier/SlideShowBob-sub000/pkg/helpers"
	"github.com/jefftier/SlideShowBob-sub000/pkg/media"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentRoots caps how many folder trees are walked at once. Scans
// are I/O bound so there is little to gain past a few spindles.
const maxConcurrentRoots = 4

// Discoverer recursively scans folder trees for displayable media files.
type Discoverer struct {
	fs afero.Fs
}

func NewDiscoverer(fsys afero.Fs) *Discoverer {
	return &Discoverer{fs: fsys}
}

// Discover walks every folder in roots and returns the media items found,
// classified at discovery time. Folders that cannot be read are skipped
// with a warning rather than failing the whole scan, so a missing drive
// or a permissions error never empties the playlist on its own. An empty
// roots list yields an empty result, not an error.
//
// Results keep the order of roots, with files in each root in walk order.
// A file reachable from more than one root is reported once, for the
// first root that found it, compared case-insensitively.
func (d *Discoverer) Discover(
	ctx context.Context,
	roots []string,
	includeVideos bool,
) []media.Item {
	if len(roots) == 0 {
		return nil
	}

	perRoot := make([][]media.Item, len(roots))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRoots)

	for i, root := range roots {
		i, root := i, root
		g.Go(func() error {
			perRoot[i] = d.scanRoot(ctx, root, includeVideos)
			return nil
		})
	}

	// scanRoot never reports an error, it swallows them per folder
	_ = g.Wait()

	seen := make(map[string]struct{})
	var items []media.Item
	for _, found := range perRoot {
		for _, item := range found {
			key := helpers.NormalizePathForComparison(item.Path)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			items = append(items, item)
		}
	}

	return items
}

func (d *Discoverer) scanRoot(
	ctx context.Context,
	root string,
	includeVideos bool,
) []media.Item {
	var found []media.Item

	err := afero.Walk(d.fs, root, func(path string, info os.FileInfo, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping unreadable path")
			return nil
		}
		if info.IsDir() {
			return nil
		}

		mediaType, ok := media.Classify(path, includeVideos)
		if !ok {
			return nil
		}
		item := media.NewItem(path, mediaType)
		found = append(found, item)

		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("root", root).Msg("folder scan aborted")
	}

	return found
}
