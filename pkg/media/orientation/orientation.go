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

// Package orientation resolves EXIF rotation/flip hints and applies the
// matching correction to decoded images.
package orientation

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	"github.com/rwcarlsen/goexif/exif"
)

// Orientation is one of the eight EXIF orientation states. Values match
// the EXIF tag values 1 through 8.
type Orientation int

const (
	Normal Orientation = iota + 1
	FlipHorizontal
	Rotate180
	FlipVertical
	Rotate90Flip
	Rotate90
	Rotate270Flip
	Rotate270
)

func (o Orientation) String() string {
	switch o {
	case Normal:
		return "normal"
	case FlipHorizontal:
		return "flip_horizontal"
	case Rotate180:
		return "rotate_180"
	case FlipVertical:
		return "flip_vertical"
	case Rotate90Flip:
		return "rotate_90_flip"
	case Rotate90:
		return "rotate_90"
	case Rotate270Flip:
		return "rotate_270_flip"
	case Rotate270:
		return "rotate_270"
	default:
		return "unknown"
	}
}

// FromEXIF maps a raw EXIF orientation value to an Orientation. Values
// outside 1-8 map to Normal.
func FromEXIF(v int) Orientation {
	if v < int(Normal) || v > int(Rotate270) {
		return Normal
	}
	return Orientation(v)
}

// tiff tag id for orientation, probed across every IFD because some
// encoders write it outside the primary directory
const orientationTagID = 0x0112

// Resolve inspects image metadata from r and returns the orientation to
// correct for. It never fails: missing metadata, decode errors and even
// panics inside the EXIF parser all degrade to Normal.
func Resolve(r io.Reader) (o Orientation) {
	o = Normal
	defer func() {
		if rec := recover(); rec != nil {
			log.Debug().Msgf("orientation probe panicked: %v", rec)
			o = Normal
		}
	}()

	x, err := exif.Decode(r)
	if err != nil || x == nil {
		return Normal
	}

	if tag, getErr := x.Get(exif.Orientation); getErr == nil && tag != nil {
		if v, intErr := tag.Int(0); intErr == nil {
			return FromEXIF(v)
		}
	}

	if x.Tiff == nil {
		return Normal
	}
	for _, dir := range x.Tiff.Dirs {
		if dir == nil {
			continue
		}
		for _, tag := range dir.Tags {
			if tag == nil || tag.Id != orientationTagID {
				continue
			}
			if v, intErr := tag.Int(0); intErr == nil {
				return FromEXIF(v)
			}
		}
	}

	return Normal
}

// Apply returns img corrected for the orientation. Rotation amounts are
// expressed for a counter-clockwise-positive frame: the Rotate90 state
// marks a 90° clockwise capture, so its correction is a 270° ccw turn.
func (o Orientation) Apply(img image.Image) image.Image {
	if img == nil {
		return nil
	}
	switch o {
	case FlipHorizontal:
		return imaging.FlipH(img)
	case Rotate180:
		return imaging.Rotate180(img)
	case FlipVertical:
		return imaging.FlipV(img)
	case Rotate90Flip:
		return imaging.Transpose(img)
	case Rotate90:
		return imaging.Rotate270(img)
	case Rotate270Flip:
		return imaging.Transverse(img)
	case Rotate270:
		return imaging.Rotate90(img)
	case Normal:
		return img
	default:
		return img
	}
}
