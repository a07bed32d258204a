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

// Package notifications holds the senders for events the coordinator
// raises on the notification queue. The loader and the player event
// pump emit their notifications directly so they can bail out on
// shutdown instead of blocking.
package notifications

import "github.com/jefftier/SlideShowBob-sub000/pkg/api/models"

func MediaNavigated(ns chan<- models.Notification, payload models.NavigatedParams) {
	ns <- models.Notification{
		Method: models.NotificationMediaNavigated,
		Params: payload,
	}
}

func SlideshowStarted(ns chan<- models.Notification, payload models.SlideshowParams) {
	ns <- models.Notification{
		Method: models.NotificationSlideshowStarted,
		Params: payload,
	}
}

func SlideshowStopped(ns chan<- models.Notification) {
	ns <- models.Notification{
		Method: models.NotificationSlideshowStopped,
	}
}
