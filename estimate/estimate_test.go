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
package estimate_test

import (
	"testing"

	"rebuildradar.dev/core/estimate"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		name     string
		affected int
		total    int
		want     float64
	}{
		{"zero total", 0, 0, 0},
		{"zero affected", 0, 100, 0},
		{"all affected", 100, 100, 100},
		{"one third", 1, 3, 33.3},
		{"half away from zero up", 1, 16, 6.3},
		{"two thirds", 2, 3, 66.7},
		{"tiny fraction rounds to tenth", 1, 1000, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := estimate.Percentage(tt.affected, tt.total)
			if got != tt.want {
				t.Errorf("Percentage(%d, %d) = %v, want %v", tt.affected, tt.total, got, tt.want)
			}
		})
	}
}
