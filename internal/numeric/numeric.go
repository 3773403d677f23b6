/*
Copyright © 2026 the FireSTARR/TBD authors.
This file is part of FireSTARR/TBD.

FireSTARR/TBD is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

FireSTARR/TBD is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with FireSTARR/TBD.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package numeric collects small slice-reduction helpers shared by the
// model's convergence diagnostics, built on gonum/floats the way the
// rest of this codebase leans on gonum/stat for its mean/stddev.
package numeric

import "gonum.org/v1/gonum/floats"

// TotalAndMax returns the sum and the maximum of values, or (0, 0) for
// an empty slice.
func TotalAndMax(values []float64) (total, max float64) {
	if len(values) == 0 {
		return 0, 0
	}
	return floats.Sum(values), floats.Max(values)
}
