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

package loader

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/disintegration/imaging"
	"github.com/jefftier/SlideShowBob-sub000/pkg/media"
	"github.com/jefftier/SlideShowBob-sub000/pkg/media/orientation"
	"github.com/rs/zerolog/log"

	_ "image/jpeg" // register still image formats
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// defaultFrameDelay substitutes for zero or missing GIF frame delays.
const defaultFrameDelay = 100 * time.Millisecond

// decodeImage loads a still image, correcting for its EXIF orientation.
// The returned bitmap is never written to again and is safe to share.
func (l *Loader) decodeImage(path string) (image.Image, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open media file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Str("path", path).Msg("close media file failed")
		}
	}()

	orient := orientation.Resolve(f)

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind media file: %w", err)
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return orient.Apply(img), nil
}

// decodeAnimation loads an animated image frame by frame, compositing
// partial frames onto a shared canvas and downscaling to the viewport
// width when the source is wider. Animations bypass the image cache.
func (l *Loader) decodeAnimation(path string) (*media.Animation, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open media file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Str("path", path).Msg("close media file failed")
		}
	}()

	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode animation: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, errors.New("animation has no frames")
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewNRGBA(bounds)

	maxWidth := l.cfg.ViewportWidth()

	anim := &media.Animation{
		Frames: make([]image.Image, 0, len(g.Image)),
		Delays: make([]time.Duration, 0, len(g.Image)),
		Loop:   g.LoopCount,
	}

	for i, frame := range g.Image {
		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

		var snapshot image.Image
		if bounds.Dx() > maxWidth {
			snapshot = imaging.Resize(canvas, maxWidth, 0, imaging.Lanczos)
		} else {
			snapshot = imaging.Clone(canvas)
		}
		anim.Frames = append(anim.Frames, snapshot)
		anim.Delays = append(anim.Delays, frameDelay(g.Delay, i))

		if i < len(g.Disposal) && g.Disposal[i] == gif.DisposalBackground {
			draw.Draw(canvas, frame.Bounds(), image.Transparent,
				image.Point{}, draw.Src)
		}
	}

	return anim, nil
}

// frameDelay converts a GIF delay in hundredths of a second, mapping
// absent or zero delays to a sane default.
func frameDelay(delays []int, i int) time.Duration {
	if i >= len(delays) {
		return defaultFrameDelay
	}
	d := time.Duration(delays[i]) * 10 * time.Millisecond
	if d <= 0 {
		return defaultFrameDelay
	}
	return d
}
