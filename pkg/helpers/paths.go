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
	"path/filepath"
	"strings"
)

// NormalizePathForComparison normalizes a path for cross-platform case-insensitive comparison.
// Converts to forward slashes and lowercases for consistent matching across all platforms.
// This handles paths from config files (forward slashes) vs filepath.Join (OS-specific slashes),
// and ensures case-insensitive matching works for FAT32/exFAT filesystems on all platforms.
func NormalizePathForComparison(path string) string {
	p := filepath.ToSlash(filepath.Clean(path))
	return strings.ToLower(p)
}

// PathsEqual reports whether two paths refer to the same media file under
// normalized comparison.
func PathsEqual(a, b string) bool {
	return NormalizePathForComparison(a) == NormalizePathForComparison(b)
}

// PathHasPrefix checks if path is within root directory, handling separator boundaries correctly.
// This avoids the prefix bug where "c:/photos2/pic.jpg" would incorrectly match root "c:/photos".
func PathHasPrefix(path, root string) bool {
	normPath := NormalizePathForComparison(path)
	normRoot := NormalizePathForComparison(root)

	// Handle exact match
	if normPath == normRoot {
		return true
	}

	// Handle empty root - only match if both are empty
	if normRoot == "" {
		return false
	}

	// Ensure root ends with separator to avoid "photos" matching "photos2"
	if !strings.HasSuffix(normRoot, "/") {
		normRoot += "/"
	}

	return strings.HasPrefix(normPath, normRoot)
}
