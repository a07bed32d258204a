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

// Package models defines the notification payloads the pipeline emits to
// the presentation layer.
package models

import (
	"image"

	"github.com/jefftier/SlideShowBob-sub000/pkg/media"
)

const (
	NotificationMediaNavigated   = "media.navigated"
	NotificationMediaShow        = "media.show"
	NotificationMediaFailed      = "media.failed"
	NotificationSlideshowStarted = "slideshow.started"
	NotificationSlideshowStopped = "slideshow.stopped"
	NotificationVideoFrame       = "video.frame"
)

// Notification is a single event sent to presentation subscribers.
// Params carries the method-specific payload and may hold decoded image
// data, so notifications are in-process only.
type Notification struct {
	Params any
	Method string
}

// NavigatedParams reports that the navigation cursor moved. It is emitted
// as soon as the cursor changes, before the item's content is ready.
type NavigatedParams struct {
	Item  media.Item `json:"item"`
	Index int        `json:"index"`
	Total int        `json:"total"`
}

// ShowMediaParams carries the content for the item that should be on
// screen now. Exactly one of Image or Animation is set for decoded media;
// both are nil for videos, which the video player presents itself.
type ShowMediaParams struct {
	Image     image.Image
	Animation *media.Animation
	Item      media.Item
}

// MediaFailedParams reports that an item could not be loaded. The item is
// treated as absent for display; the pipeline continues.
type MediaFailedParams struct {
	Item  media.Item `json:"item"`
	Error string     `json:"error"`
}

// SlideshowParams reports the delay a started slideshow is running at.
type SlideshowParams struct {
	DelayMS int64 `json:"delayMs"`
}

// VideoFrameParams carries a placeholder frame captured from the video
// player, used for instant feedback while the next item loads.
type VideoFrameParams struct {
	Frame image.Image
	URI   string
}
