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

package tbdutil

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tbd "github.com/jordan-evens/firestarr-tbd-sub001"
	"github.com/jordan-evens/firestarr-tbd-sub001/fuel"
	"github.com/jordan-evens/firestarr-tbd-sub001/fwi"
	"github.com/jordan-evens/firestarr-tbd-sub001/internal/hash"
	"github.com/jordan-evens/firestarr-tbd-sub001/raster"
	"github.com/jordan-evens/firestarr-tbd-sub001/weather"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// testFuelCode is the fuel type `test` mode burns: C-2 boreal spruce,
// the fuel the engine's own unit tests exercise.
const testFuelCode fuel.Code = 2

// defaultConfidence, defaultMinimumScenarios, defaultCheckEvery configure
// the adaptive stopping rule when --confidence is not given.
const (
	defaultConfidence       = 0.95
	defaultMinimumScenarios = 30
	defaultCheckEvery       = 10
	defaultWorkers          = 4
)

func newSimulateCmd(cfg *Cfg) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate <output_dir> <YYYY-MM-DD> <lat> <lon> <HH:MM>",
		Short: "Run a Monte Carlo fire-growth simulation from an ignition point.",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cfg, args)
		},
		DisableAutoGenTag: true,
	}

	flags := cmd.Flags()
	flags.String("wx", "", "path to the hourly weather CSV")
	flags.Float64("ffmc", 0, "starting Fine Fuel Moisture Code")
	flags.Float64("dmc", 0, "starting Duff Moisture Code")
	flags.Float64("dc", 0, "starting Drought Code")
	flags.Float64("apcp_0800", 0, "precipitation (mm) in the 24h ending 0800 local on the start date")
	flags.String("fuel", "", "path to the fuel GeoTIFF")
	flags.String("dem", "", "path to the DEM GeoTIFF")
	flags.String("perim", "", "path to an existing-perimeter raster (optional, unused when absent)")
	flags.Float64("size", 0, "existing fire size in hectares (optional)")
	flags.Float64("confidence", defaultConfidence, "confidence level for the adaptive stopping rule")
	flags.String("output_date_offsets", "[24]", "JSON list of output time offsets, in hours since ignition")
	flags.BoolP("intensity", "i", false, "has no effect: simulate writes no per-scenario arrival grids")
	flags.BoolP("synchronous", "s", false, "run scenarios synchronously (single worker)")
	flags.Bool("ascii", false, "write ASC instead of GeoTIFF")
	flags.Bool("no-intensity", false, "skip intensity-class outputs")
	flags.Bool("no-probability", false, "skip the probability-of-any-burn output")
	flags.Bool("occurrence", false, "also write raw occurrence counts")
	flags.Bool("deterministic", false, "run every scenario with thresholds fixed at zero, for byte-identical reruns")
	flags.Int64("seed", 0, "RNG seed; 0 picks one from the clock")
	flags.Float64("maximum-spread-distance", 0, "maximum cell-widths the head fire may advance in one spread step (0 uses the engine default)")
	for _, required := range []string{"wx", "ffmc", "dmc", "dc", "fuel", "dem"} {
		_ = cmd.MarkFlagRequired(required)
	}
	cfg.BindPFlags(flags)

	return cmd
}

func newTestCmd(cfg *Cfg) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test <output_dir> <num_hours> [slope [aspect [wind_speed [wind_direction]]]]",
		Short: "Run one deterministic scenario on a uniform C-2 landscape.",
		Args:  cobra.RangeArgs(2, 6),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(cfg, args)
		},
		DisableAutoGenTag: true,
	}
	cmd.Flags().Bool("ascii", false, "write ASC instead of GeoTIFF")
	cfg.BindPFlags(cmd.Flags())
	return cmd
}

// runSimulate implements the `simulate` subcommand: loads rasters and
// weather, builds the Model, runs it to the adaptive stopping rule or a
// hard limit, and writes every configured output.
func runSimulate(cfg *Cfg, args []string) error {
	log := cfg.Logger()
	outputDir, dateStr, latStr, lonStr, timeStr := args[0], args[1], args[2], args[3], args[4]

	if err := EnsureOutputDir(outputDir); err != nil {
		return fmt.Errorf("tbd: creating output directory: %w", err)
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return fmt.Errorf("tbd: parsing latitude %q: %w", latStr, err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return fmt.Errorf("tbd: parsing longitude %q: %w", lonStr, err)
	}
	startTime, err := time.Parse("2006-01-02 15:04", dateStr+" "+timeStr)
	if err != nil {
		return fmt.Errorf("tbd: parsing ignition date/time: %w", err)
	}

	table := fuel.NewTable()

	loaded, ignRow, ignCol, err := LoadLandscape(cfg.GetString("fuel"), cfg.GetString("dem"), lon, lat, table)
	if err != nil {
		return err
	}

	wxFile, err := os.Open(cfg.GetString("wx"))
	if err != nil {
		return fmt.Errorf("tbd: opening weather file: %w", err)
	}
	defer wxFile.Close()
	stream, err := weather.ReadCSV(wxFile, false)
	if err != nil {
		return fmt.Errorf("tbd: reading weather: %w", err)
	}

	startDay := startTime.YearDay() + startTime.Year()*366
	startHour := stream.Index(startDay, startTime.Hour())
	if startHour < 0 || startHour >= stream.Len() {
		return fmt.Errorf("tbd: ignition time %s falls outside the weather stream", startTime)
	}

	nd := fwi.LatitudeAdjustedDayOfYear(lat, startTime.YearDay())

	offsets, err := parseOffsets(cfg.GetString("output_date_offsets"))
	if err != nil {
		return err
	}

	ascii := cfg.GetBool("ascii")

	deterministic := cfg.GetBool("deterministic")
	runCfg := tbd.Config{
		Landscape:               loaded.Landscape,
		Fuels:                   table,
		Weather:                 stream,
		IgnitionRow:             ignRow,
		IgnitionColumn:          ignCol,
		StartHour:               startHour,
		Deterministic:           deterministic,
		ThresholdWeightScenario: 1.0 / 3,
		ThresholdWeightDay:      1.0 / 3,
		ThresholdWeightHour:     1.0 / 3,
		Curing:                  0,
		ND:                      nd,
		MaximumSpreadDistance:   cfg.GetFloat64("maximum-spread-distance"),
	}
	log.Debugf("tbd: scenario input fingerprint %s", hash.Hash(struct {
		IgnitionRow, IgnitionColumn, StartHour, ND int
		Deterministic                              bool
		Curing                                     float64
	}{ignRow, ignCol, startHour, nd, deterministic, runCfg.Curing}))

	registry := prometheus.NewRegistry()
	model := tbd.NewModel(loaded.Landscape, tbd.StoppingConfig{
		MinimumScenarios: defaultMinimumScenarios,
		CheckEvery:       defaultCheckEvery,
		ConfidenceLevel:  cfg.GetFloat64("confidence"),
		MaximumTime:      30 * time.Minute,
		MaximumCount:     10000,
	}, offsets, registry)

	workers := defaultWorkers
	if cfg.GetBool("synchronous") {
		workers = 1
	}
	seed := cfg.GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	n := model.Run(runCfg, workers, seed, log)
	log.Infof("tbd: completed %d scenarios", n)

	if err := WriteClippedInputs(outputDir, ascii, loaded); err != nil {
		return err
	}
	includeProbability := !cfg.GetBool("no-probability")
	includeIntensity := !cfg.GetBool("no-intensity")
	for _, offset := range offsets {
		if err := WriteModelOutputs(outputDir, ascii, loaded.Meta, model, offset, includeProbability, includeIntensity, cfg.GetBool("occurrence")); err != nil {
			return err
		}
	}
	return writeLog(outputDir, fmt.Sprintf("tbd simulate: %d scenarios run, offsets=%v", n, offsets))
}

// runTest implements the `test` subcommand: a single deterministic
// scenario on a uniform, flat-unless-given-slope C-2 landscape, matching
// the reference implementation's TestScenario harness.
func runTest(cfg *Cfg, args []string) error {
	outputDir := args[0]
	numHours, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("tbd: parsing num_hours %q: %w", args[1], err)
	}

	slope, aspect, windSpeed, windDir := 0, 0, 0.0, 0.0
	if len(args) > 2 {
		slope, err = strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("tbd: parsing slope: %w", err)
		}
	}
	if len(args) > 3 {
		aspect, err = strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("tbd: parsing aspect: %w", err)
		}
	}
	if len(args) > 4 {
		windSpeed, err = strconv.ParseFloat(args[4], 64)
		if err != nil {
			return fmt.Errorf("tbd: parsing wind_speed: %w", err)
		}
	}
	if len(args) > 5 {
		windDir, err = strconv.ParseFloat(args[5], 64)
		if err != nil {
			return fmt.Errorf("tbd: parsing wind_direction: %w", err)
		}
	}

	if err := EnsureOutputDir(outputDir); err != nil {
		return fmt.Errorf("tbd: creating output directory: %w", err)
	}

	const rows, columns = 201, 201
	cells := make([]tbd.Cell, rows*columns)
	for r := 0; r < rows; r++ {
		for c := 0; c < columns; c++ {
			cells[r*columns+c] = tbd.NewCell(r, c, slope, aspect, testFuelCode)
		}
	}
	landscape := tbd.NewLandscape(rows, columns, 100, 0, 0, "", cells)

	start := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	days := (numHours + 23) / 24 // NewStream requires whole days of hourly records
	records := make([]weather.Record, days*24)
	for h := range records {
		rec, _ := weather.NewRecord(start.Add(time.Duration(h)*time.Hour), 0, 20, 40, windSpeed, windDir, 90, 40, 200, 0, 0, 0)
		records[h] = rec
	}
	minDay := start.YearDay() + start.Year()*366
	stream, err := weather.NewStream(minDay, minDay+days-1, records, true)
	if err != nil {
		return fmt.Errorf("tbd: building synthetic weather stream: %w", err)
	}

	table := fuel.NewTable()
	runCfg := tbd.Config{
		Landscape:               landscape,
		Fuels:                   table,
		Weather:                 stream,
		IgnitionRow:             rows / 2,
		IgnitionColumn:          columns / 2,
		StartHour:               0,
		Deterministic:           true,
		ThresholdWeightScenario: 1,
		ND:                      182,
	}

	// A single deterministic scenario still needs a Model to merge into
	// at its SAVE/END_SIMULATION events; zero output offsets makes every
	// merge a no-op, since this mode reports the scenario's own arrival
	// grid directly rather than an accumulated probability map.
	model := tbd.NewModel(landscape, tbd.StoppingConfig{}, nil, nil)
	rng := rand.New(rand.NewSource(1))
	scenario := tbd.NewScenario(runCfg, rng)
	finalSize := scenario.Run(model, rng)

	log := cfg.Logger()
	log.Infof("tbd test: final size %d cells", finalSize)

	meta := raster.Meta{Rows: rows, Columns: columns, CellSize: 100, OriginX: 0, OriginY: 0}
	ascii := cfg.GetBool("ascii")
	if err := WriteScenarioArrival(outputDir, ascii, meta, scenario, ""); err != nil {
		return err
	}
	return writeLog(outputDir, fmt.Sprintf("tbd test: %d hours, final size %d cells", numHours, finalSize))
}

func parseOffsets(raw string) ([]int, error) {
	var offsets []int
	if err := json.Unmarshal([]byte(raw), &offsets); err != nil {
		return nil, fmt.Errorf("tbd: parsing --output_date_offsets %q: %w", raw, err)
	}
	if len(offsets) == 0 {
		return nil, fmt.Errorf("tbd: --output_date_offsets must name at least one offset")
	}
	return offsets, nil
}

func writeLog(outputDir, message string) error {
	f, err := os.OpenFile(filepath.Join(outputDir, "log.txt"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("tbd: opening log.txt: %w", err)
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%s: %s\n", time.Now().Format(time.RFC3339), message)
	return err
}
