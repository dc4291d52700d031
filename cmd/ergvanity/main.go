// Copyright 2024 The go-ergvanity Authors
// This file is part of go-ergvanity.
//
// go-ergvanity is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ergvanity is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ergvanity. If not, see <http://www.gnu.org/licenses/>.

// ergvanity searches for Ergo P2PK vanity addresses: mnemonics with a derived
// mainnet address m/44'/429'/0'/0/{0..N-1} (N set by --index, default 1)
// that starts with one of the given Base58 prefixes.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ergvanity/go-ergvanity/internal/logging"
	"github.com/ergvanity/go-ergvanity/search"
)

var (
	patternsFlag = &cli.StringSliceFlag{
		Name:    "pattern",
		Aliases: []string{"p"},
		Usage:   "address prefix(es) to search for, e.g. -p 9err,9ego",
	}
	ignoreCaseFlag = &cli.BoolFlag{
		Name:    "ignore-case",
		Aliases: []string{"i"},
		Usage:   "case-insensitive matching",
	}
	maxResultsFlag = &cli.IntFlag{
		Name:    "max-results",
		Aliases: []string{"n"},
		Value:   1,
		Usage:   "stop after this many verified matches",
	}
	numIndicesFlag = &cli.UintFlag{
		Name:  "index",
		Value: 1,
		Usage: "address indices m/44'/429'/0'/0/{0..N-1} to check per seed",
	}
	durationFlag = &cli.DurationFlag{
		Name:  "duration",
		Usage: "stop after this wall-clock time (e.g. 90s, 10m)",
	}
	devicesFlag = &cli.StringFlag{
		Name:  "devices",
		Value: "0",
		Usage: "comma-separated device indices, or 'all'",
	}
	batchSizeFlag = &cli.UintFlag{
		Name:  "batch-size",
		Value: uint(search.DefaultConfig.BatchSize),
		Usage: "work items per kernel launch",
	}
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Value: "info",
		Usage: "log level (debug, info, warn, error)",
	}
	benchItersFlag = &cli.IntFlag{
		Name:  "iters",
		Value: 20,
		Usage: "timed benchmark iterations",
	}
	benchWarmupFlag = &cli.IntFlag{
		Name:  "warmup",
		Value: 3,
		Usage: "warmup iterations before timing",
	}
)

func main() {
	app := &cli.App{
		Name:  "ergvanity",
		Usage: "Ergo P2PK vanity address generator",
		Flags: []cli.Flag{
			patternsFlag, ignoreCaseFlag, maxResultsFlag, numIndicesFlag,
			durationFlag, devicesFlag, batchSizeFlag, verbosityFlag,
		},
		Action: runSearch,
		Commands: []*cli.Command{
			{
				Name:   "devices",
				Usage:  "list available compute devices",
				Action: listDevices,
			},
			{
				Name:  "bench",
				Usage: "run the pipeline microbenchmark",
				Flags: []cli.Flag{
					devicesFlag, batchSizeFlag, numIndicesFlag,
					benchItersFlag, benchWarmupFlag,
				},
				Action: runBench,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func collectPatterns(ctx *cli.Context) []string {
	var patterns []string
	for _, p := range ctx.StringSlice(patternsFlag.Name) {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			patterns = append(patterns, trimmed)
		}
	}
	// Positional fallback: ergvanity 9err
	for _, p := range ctx.Args().Slice() {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			patterns = append(patterns, trimmed)
		}
	}
	return patterns
}

func parseDevices(arg string) ([]int, error) {
	available := search.EnumerateDevices()
	if strings.EqualFold(strings.TrimSpace(arg), "all") {
		indices := make([]int, len(available))
		for i, info := range available {
			indices[i] = info.Index
		}
		return indices, nil
	}
	var indices []int
	for _, part := range strings.Split(arg, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid device index %q: expected integer or 'all'", part)
		}
		indices = append(indices, idx)
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("no device indices provided")
	}
	return indices, nil
}

func runSearch(ctx *cli.Context) error {
	logging.SetLevel(ctx.String(verbosityFlag.Name))

	patterns := collectPatterns(ctx)
	if len(patterns) == 0 {
		return fmt.Errorf("at least one pattern is required (-p or positional)")
	}
	devices, err := parseDevices(ctx.String(devicesFlag.Name))
	if err != nil {
		return err
	}

	cfg := search.DefaultConfig
	cfg.BatchSize = uint32(ctx.Uint(batchSizeFlag.Name))
	cfg.NumIndices = uint32(ctx.Uint(numIndicesFlag.Name))
	cfg.IgnoreCase = ctx.Bool(ignoreCaseFlag.Name)
	cfg.MaxResults = ctx.Int(maxResultsFlag.Name)
	cfg.Duration = ctx.Duration(durationFlag.Name)
	cfg.Devices = devices

	controller, err := search.New(patterns, cfg)
	if err != nil {
		return err
	}

	runCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	results, stats, err := controller.Run(runCtx)
	if err != nil && len(results) == 0 {
		return err
	}

	for i, r := range results {
		printResult(controller, i+1, &r)
	}
	fmt.Printf("\nFound %d match(es) in %.1fs (%d addresses checked)\n",
		len(results), stats.Elapsed.Seconds(), stats.AddressesChecked)
	if stats.HitsDropped > 0 {
		fmt.Printf("Warning: %d hits dropped due to buffer overflow (pattern too short?)\n",
			stats.HitsDropped)
	}
	return nil
}

func printResult(c *search.Controller, n int, r *search.Result) {
	fmt.Printf("\n=== Match %d ===\n", n)
	fmt.Printf("Device:   %d\n", r.DeviceIndex)
	fmt.Printf("Address:  %s\n", r.Address)
	fmt.Printf("Pattern:  %s\n", c.Patterns().Original(int(r.PatternIndex)))
	fmt.Printf("Path:     m/44'/429'/0'/0/%d\n", r.AddressIndex)
	fmt.Printf("Mnemonic: %s\n", r.Mnemonic)
	fmt.Printf("Entropy:  %s\n", hex.EncodeToString(r.Entropy[:]))
}

func listDevices(*cli.Context) error {
	devices := search.EnumerateDevices()
	if len(devices) == 0 {
		fmt.Println("No compute devices found.")
		return nil
	}
	for _, info := range devices {
		fmt.Println(info)
	}
	return nil
}

func runBench(ctx *cli.Context) error {
	devices, err := parseDevices(ctx.String(devicesFlag.Name))
	if err != nil {
		return err
	}
	cfg := search.BenchConfig{
		BatchSize:  uint32(ctx.Uint(batchSizeFlag.Name)),
		NumIndices: uint32(ctx.Uint(numIndicesFlag.Name)),
		Iters:      ctx.Int(benchItersFlag.Name),
		Warmup:     ctx.Int(benchWarmupFlag.Name),
	}

	for _, idx := range devices {
		start := time.Now()
		stats, err := search.Bench(idx, cfg)
		if err != nil {
			return err
		}
		fmt.Printf("device %d: %d batches, %d addresses in %.2fs -> %.0f addr/s (total %.2fs)\n",
			stats.DeviceIndex, stats.Batches, stats.Addresses,
			stats.Elapsed.Seconds(), stats.AddressesPerSec, time.Since(start).Seconds())
	}
	return nil
}
