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
package depgraph

import "regexp"

// includeDirective matches a line-anchored #include "…" directive.
// Angle-bracket includes (#include <vector>) are intentionally never
// matched: the graph only tracks project-local, quote-form includes
// headers are deliberately out of scope: no preprocessor/macro
// understanding, no system header resolution. Leading whitespace
// before '#' and around the directive
// name is tolerated, matching common formatting.
var includeDirective = regexp.MustCompile(`(?m)^[ \t]*#[ \t]*include[ \t]+"([^"]+)"`)

// parseIncludeTargets extracts every quote-form #include target from
// content, in source order, duplicates included. It is a textual scan,
// not a preprocessor: a directive inside a /* */ block comment or an
// #if 0 block is still reported, preferring false positives (extra
// rebuilds) over false negatives. A line that starts with "//" is not
// matched, so a line-commented directive is not reported.
func parseIncludeTargets(content []byte) []string {
	matches := includeDirective.FindAllSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	targets := make([]string, 0, len(matches))
	for _, m := range matches {
		targets = append(targets, string(m[1]))
	}
	return targets
}
