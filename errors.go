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

package tbd

import "fmt"

// FatalError wraps a configuration, input-data, or numerical-guard
// failure with enough context (a path and a short description) for
// cmd/tbd to print something actionable before exiting non-zero. Expected
// edge cases (fire leaves the domain, a cell has no fuel, an empty event
// queue) are never wrapped in a FatalError; they are handled locally.
type FatalError struct {
	Path    string
	Context string
	Err     error
}

func (e *FatalError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Context, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.Context, e.Path, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// Fatalf builds a FatalError with no associated path, for numerical
// guards and other bugs-not-user-errors.
func Fatalf(context, format string, args ...interface{}) *FatalError {
	return &FatalError{Context: context, Err: fmt.Errorf(format, args...)}
}

// FatalPath builds a FatalError associated with an input file path, for
// configuration and input-data failures.
func FatalPath(path, context string, err error) *FatalError {
	return &FatalError{Path: path, Context: context, Err: err}
}
