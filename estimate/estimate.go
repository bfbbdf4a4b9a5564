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

// Package estimate computes the rebuild-impact percentages the rest of
// the analyzer aggregates into a types.ImpactReport.
package estimate

import "math"

// Percentage returns affected/total as a percentage, rounded half away
// from zero to one decimal place. A zero total yields 0, since there is
// nothing to rebuild.
func Percentage(affected, total int) float64 {
	if total <= 0 {
		return 0
	}
	raw := float64(affected) / float64(total) * 1000
	rounded := math.Floor(math.Abs(raw) + 0.5)
	if raw < 0 {
		rounded = -rounded
	}
	return rounded / 10
}
