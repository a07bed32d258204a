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

package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		path          string
		includeVideos bool
		expectedType  Type
		expectedOK    bool
	}{
		{
			name:         "jpeg image",
			path:         "/photos/cat.jpg",
			expectedType: TypeImage,
			expectedOK:   true,
		},
		{
			name:         "uppercase extension",
			path:         "/photos/CAT.JPEG",
			expectedType: TypeImage,
			expectedOK:   true,
		},
		{
			name:         "tiff image",
			path:         "/photos/scan.tiff",
			expectedType: TypeImage,
			expectedOK:   true,
		},
		{
			name:       "gif excluded without videos",
			path:       "/photos/loop.gif",
			expectedOK: false,
		},
		{
			name:          "gif included with videos",
			path:          "/photos/loop.gif",
			includeVideos: true,
			expectedType:  TypeAnimatedImage,
			expectedOK:    true,
		},
		{
			name:       "mp4 excluded without videos",
			path:       "/clips/holiday.mp4",
			expectedOK: false,
		},
		{
			name:          "mp4 included with videos",
			path:          "/clips/holiday.mp4",
			includeVideos: true,
			expectedType:  TypeVideo,
			expectedOK:    true,
		},
		{
			name:       "unsupported extension",
			path:       "/docs/readme.txt",
			expectedOK: false,
		},
		{
			name:       "no extension",
			path:       "/photos/raw",
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mediaType, ok := Classify(tt.path, tt.includeVideos)
			assert.Equal(t, tt.expectedOK, ok)
			if tt.expectedOK {
				assert.Equal(t, tt.expectedType, mediaType)
			}
		})
	}
}

func TestNewItem(t *testing.T) {
	t.Parallel()

	item := NewItem("/photos/vacation/IMG_001.jpg", TypeImage)

	assert.Equal(t, "/photos/vacation/IMG_001.jpg", item.Path)
	assert.Equal(t, "IMG_001.jpg", item.Name)
	assert.Equal(t, TypeImage, item.Type)
	assert.False(t, item.IsZero())
}

func TestItem_SamePath(t *testing.T) {
	t.Parallel()

	item := NewItem("/Photos/IMG.jpg", TypeImage)

	assert.True(t, item.SamePath("/photos/img.JPG"))
	assert.False(t, item.SamePath("/photos/other.jpg"))
}

func TestItem_IsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, Item{}.IsZero())
}
