// Copyright 2024 The go-ergvanity Authors
// This file is part of the go-ergvanity library.
//
// The go-ergvanity library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ergvanity library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ergvanity library. If not, see <http://www.gnu.org/licenses/>.

package search

import (
	"time"

	"github.com/pkg/errors"
)

// BenchConfig parameterises the pipeline microbenchmark.
type BenchConfig struct {
	BatchSize  uint32
	NumIndices uint32
	Iters      int
	Warmup     int
	Workers    int
}

// DefaultBenchConfig mirrors the default search launch shape.
var DefaultBenchConfig = BenchConfig{
	BatchSize:  1 << 18,
	NumIndices: 1,
	Iters:      100,
	Warmup:     5,
}

// BenchStats reports measured throughput for one device.
type BenchStats struct {
	DeviceIndex     int
	Batches         int
	Addresses       uint64
	Elapsed         time.Duration
	AddressesPerSec float64
}

// Bench runs timed batches of the full pipeline on one device with a fixed
// salt and an effectively unmatchable pattern, so the measured cost is the
// pipeline itself rather than hit handling.
func Bench(deviceIndex int, cfg BenchConfig) (BenchStats, error) {
	if cfg.BatchSize == 0 || cfg.NumIndices < 1 || cfg.NumIndices > MaxIndices || cfg.Iters < 1 {
		return BenchStats{}, errors.Wrap(ErrBadConfig, "bench parameters")
	}

	var info *DeviceInfo
	for _, d := range EnumerateDevices() {
		if d.Index == deviceIndex {
			d := d
			info = &d
			break
		}
	}
	if info == nil {
		return BenchStats{}, errors.Wrapf(ErrNoDevice, "index %d", deviceIndex)
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = info.Workers
	}

	ps, err := NewPatternSet([]string{"9ezzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"}, false)
	if err != nil {
		return BenchStats{}, err
	}

	dev := newDevice(deviceIndex, workers)
	var salt [32]byte
	salt[0] = 0xb7 // fixed: benchmark runs must be comparable
	args := kernelArgs{
		salt:       salt,
		patterns:   ps,
		numIndices: cfg.NumIndices,
		maxHits:    MaxHits,
	}

	counter := uint64(0)
	for i := 0; i < cfg.Warmup; i++ {
		args.counterStart = counter
		counter += uint64(cfg.BatchSize)
		dev.runBatch(args, cfg.BatchSize)
	}

	start := time.Now()
	for i := 0; i < cfg.Iters; i++ {
		args.counterStart = counter
		counter += uint64(cfg.BatchSize)
		dev.runBatch(args, cfg.BatchSize)
	}
	elapsed := time.Since(start)

	addresses := uint64(cfg.Iters) * uint64(cfg.BatchSize) * uint64(cfg.NumIndices)
	return BenchStats{
		DeviceIndex:     deviceIndex,
		Batches:         cfg.Iters,
		Addresses:       addresses,
		Elapsed:         elapsed,
		AddressesPerSec: float64(addresses) / elapsed.Seconds(),
	}, nil
}
