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

package helpers

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/jpeg"
	"image/png"
	"path/filepath"

	"github.com/spf13/afero"
)

// NewTestImage creates a solid-color bitmap for decode fixtures.
func NewTestImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// WritePNG writes a solid-color PNG media fixture to path.
func WritePNG(fsys afero.Fs, path string, width, height int, c color.NRGBA) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, NewTestImage(width, height, c)); err != nil {
		return fmt.Errorf("failed to encode png fixture: %w", err)
	}
	return writeMediaFile(fsys, path, buf.Bytes())
}

// WriteJPEG writes a solid-color JPEG media fixture to path.
func WriteJPEG(fsys afero.Fs, path string, width, height int, c color.NRGBA) error {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, NewTestImage(width, height, c), nil); err != nil {
		return fmt.Errorf("failed to encode jpeg fixture: %w", err)
	}
	return writeMediaFile(fsys, path, buf.Bytes())
}

// WriteGIF writes an animated GIF media fixture with the given number of
// full frames to path.
func WriteGIF(fsys afero.Fs, path string, width, height, frames int) error {
	g := &gif.GIF{}
	for i := 0; i < frames; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, width, height), palette.Plan9)
		// vary the fill so frames are distinguishable
		fill := uint8((i * 37) % 256) //nolint:gosec // test fixture pattern
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				frame.SetColorIndex(x, y, fill)
			}
		}
		g.Image = append(g.Image, frame)
		g.Delay = append(g.Delay, 5)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		return fmt.Errorf("failed to encode gif fixture: %w", err)
	}
	return writeMediaFile(fsys, path, buf.Bytes())
}

func writeMediaFile(fsys afero.Fs, path string, data []byte) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for media fixture: %w", err)
	}
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write media fixture %s: %w", path, err)
	}
	return nil
}
