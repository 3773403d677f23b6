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
	"path/filepath"
	"testing"
)

func TestASCRoundTrip(t *testing.T) {
	meta := Meta{Rows: 2, Columns: 3, CellSize: 100, OriginX: 500000, OriginY: 6000000}
	data := []float64{1, 2, 3, 4, 5, 6}

	path := filepath.Join(t.TempDir(), "grid.asc")
	if err := WriteASC(path, data, meta); err != nil {
		t.Fatalf("WriteASC: %v", err)
	}

	got, gotMeta, err := ReadASC(path)
	if err != nil {
		t.Fatalf("ReadASC: %v", err)
	}
	if gotMeta != meta {
		t.Errorf("meta round trip = %+v, want %+v", gotMeta, meta)
	}
	if len(got) != len(data) {
		t.Fatalf("len(data) = %d, want %d", len(got), len(data))
	}
	for i := range data {
		if got[i] != data[i] {
			t.Errorf("data[%d] = %v, want %v", i, got[i], data[i])
		}
	}
}

func TestWriteASCRejectsSizeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.asc")
	badMeta := Meta{Rows: 2, Columns: 2, CellSize: 10}
	if err := WriteASC(path, []float64{1, 2, 3}, badMeta); err == nil {
		t.Error("want WriteASC to reject a data slice shorter than Rows*Columns")
	}
}

func TestRewriteUTMNorth(t *testing.T) {
	got, err := RewriteUTM("+proj=utm +zone=11 +datum=WGS84")
	if err != nil {
		t.Fatal(err)
	}
	want := "+proj=tmerc +lat_0=0 +lon_0=-117 +k=0.9996 +x_0=500000 +y_0=0 +ellps=WGS84 +units=m +no_defs"
	if got != want {
		t.Errorf("RewriteUTM() = %q, want %q", got, want)
	}
}

func TestRewriteUTMSouth(t *testing.T) {
	got, err := RewriteUTM("+proj=utm +zone=55 +south +datum=WGS84")
	if err != nil {
		t.Fatal(err)
	}
	if !containsSouth(got) {
		t.Errorf("RewriteUTM() = %q, want +south preserved", got)
	}
}

func containsSouth(s string) bool {
	return utmSouthPattern.MatchString(s)
}

func TestRewriteUTMPassesThroughNonUTM(t *testing.T) {
	in := "+proj=tmerc +lat_0=0 +lon_0=-93"
	got, err := RewriteUTM(in)
	if err != nil {
		t.Fatal(err)
	}
	if got != in {
		t.Errorf("RewriteUTM() = %q, want unchanged %q", got, in)
	}
}

func TestRewriteUTMRejectsBadZone(t *testing.T) {
	if _, err := RewriteUTM("+proj=utm +zone=99"); err == nil {
		t.Error("want error for an out-of-range UTM zone")
	}
}

func TestValidateRejectsEmpty(t *testing.T) {
	if err := Validate(""); err == nil {
		t.Error("want error validating an empty projection string")
	}
}
