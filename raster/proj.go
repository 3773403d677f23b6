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

package raster

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/ctessum/geom/proj"
)

var (
	utmZonePattern  = regexp.MustCompile(`\+proj=utm\s+\+zone=(\d+)`)
	utmSouthPattern = regexp.MustCompile(`\+south\b`)
)

// RewriteUTM rewrites a "+proj=utm +zone=N ..." PROJ string into the
// equivalent explicit "+proj=tmerc ..." form, matching the central
// meridian and scale factor a UTM zone implies. Strings that are not
// "+proj=utm" are returned unchanged.
func RewriteUTM(projStr string) (string, error) {
	m := utmZonePattern.FindStringSubmatch(projStr)
	if m == nil {
		return projStr, nil
	}
	zone, err := strconv.Atoi(m[1])
	if err != nil {
		return "", fmt.Errorf("raster: bad UTM zone in %q: %w", projStr, err)
	}
	if zone < 1 || zone > 60 {
		return "", fmt.Errorf("raster: UTM zone %d out of range [1,60]", zone)
	}
	lonOrigin := float64(zone)*6 - 183

	south := ""
	if utmSouthPattern.MatchString(projStr) {
		south = " +south"
	}
	return fmt.Sprintf(
		"+proj=tmerc +lat_0=0 +lon_0=%v +k=0.9996 +x_0=500000 +y_0=0%s +ellps=WGS84 +units=m +no_defs",
		lonOrigin, south,
	), nil
}

// Validate parses projStr, returning an error if it is not a usable
// spatial reference.
func Validate(projStr string) error {
	if projStr == "" {
		return fmt.Errorf("raster: empty projection string")
	}
	if _, err := proj.Parse(projStr); err != nil {
		return fmt.Errorf("raster: parsing projection %q: %w", projStr, err)
	}
	return nil
}
