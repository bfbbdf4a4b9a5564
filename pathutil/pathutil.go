/*
Copyright © 2025 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package pathutil classifies C/C++ source and header files and
// normalizes workspace-relative paths to the forward-slash, case-
// preserving form the rest of the analyzer expects.
package pathutil

import (
	"path/filepath"
	"strings"
)

// sourceExtensions are translation units: changing one never propagates.
var sourceExtensions = map[string]struct{}{
	"cpp": {},
	"cc":  {},
	"cxx": {},
	"c":   {},
}

// headerExtensions are files whose change can transitively force a
// rebuild of every translation unit that includes them.
var headerExtensions = map[string]struct{}{
	"h":   {},
	"hpp": {},
	"hxx": {},
	"hh":  {},
	"inl": {},
	"ipp": {},
}

// ToSlash normalizes a path to forward-slash separators. Unlike
// filepath.ToSlash (which only rewrites the host OS separator), this
// also rewrites backslashes on non-Windows hosts, since project files
// authored on Windows (.sln/.vcxproj) carry backslash-separated paths
// regardless of which OS later scans the workspace.
func ToSlash(p string) string {
	return strings.ReplaceAll(filepath.ToSlash(p), "\\", "/")
}

// Ext returns the lowercased extension of p without its leading dot.
func Ext(p string) string {
	ext := filepath.Ext(p)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsSource reports whether p has a recognized C/C++ source extension.
func IsSource(p string) bool {
	_, ok := sourceExtensions[Ext(p)]
	return ok
}

// IsHeader reports whether p has a recognized C/C++ header extension.
func IsHeader(p string) bool {
	_, ok := headerExtensions[Ext(p)]
	return ok
}

// IsSourceOrHeader reports whether p is a file the dependency graph
// tracks at all.
func IsSourceOrHeader(p string) bool {
	return IsSource(p) || IsHeader(p)
}

// Basename returns the lowercased basename of p, used as the key into
// the filename index for fuzzy include resolution.
func Basename(p string) string {
	return strings.ToLower(filepath.Base(ToSlash(p)))
}
