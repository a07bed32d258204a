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

// Package media defines the item model shared by the whole pipeline.
// An item's type is resolved once from its extension at discovery time and
// carried immutably, so downstream components never re-inspect extensions.
package media

import (
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/jefftier/SlideShowBob-sub000/pkg/helpers"
)

// Type identifies how an item is decoded and displayed.
type Type string

const (
	// TypeImage is a still image, decoded once and cached.
	TypeImage Type = "image"
	// TypeAnimatedImage is an animated image, decoded per display.
	TypeAnimatedImage Type = "animated"
	// TypeVideo is handed to the external video player, never decoded here.
	TypeVideo Type = "video"
)

// ImageExtensions are the still image formats included in every scan.
var ImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".bmp":  {},
	".tif":  {},
	".tiff": {},
}

// MotionExtensions are the formats only included when videos are enabled.
var MotionExtensions = map[string]Type{
	".gif": TypeAnimatedImage,
	".mp4": TypeVideo,
}

// Classify returns the media type for a path based on its extension.
// Motion media (.gif/.mp4) is only classified when includeVideos is set;
// unknown extensions report ok false.
func Classify(path string, includeVideos bool) (mediaType Type, ok bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, found := ImageExtensions[ext]; found {
		return TypeImage, true
	}
	if t, found := MotionExtensions[ext]; found && includeVideos {
		return t, true
	}
	return "", false
}

// Item is a single playlist entry. Items are immutable after construction
// and identified by their path under case-insensitive normalized comparison.
type Item struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Type Type   `json:"type"`
}

// NewItem builds an item for path with its display name derived from the
// final path element.
func NewItem(path string, mediaType Type) Item {
	return Item{
		Path: path,
		Name: filepath.Base(path),
		Type: mediaType,
	}
}

// IsZero reports whether the item is the empty value.
func (i Item) IsZero() bool {
	return i.Path == ""
}

// SamePath reports whether the item refers to the given path.
func (i Item) SamePath(path string) bool {
	return helpers.PathsEqual(i.Path, path)
}

// Animation is a fully composed animated image ready for display. Frames
// are already orientation-neutral and downscaled to the viewport width.
type Animation struct {
	Frames []image.Image
	Delays []time.Duration
	// Loop is the number of times to repeat, 0 meaning forever.
	Loop int
}

// FrameCount returns the number of frames in the animation.
func (a *Animation) FrameCount() int {
	return len(a.Frames)
}
