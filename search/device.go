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
	"fmt"
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// ErrNoDevice is returned for an unknown device index. An empty device
// selection is not an error: the controller then uses device 0.
var ErrNoDevice = errors.New("search: no such compute device")

// DeviceInfo describes a selectable compute device.
type DeviceInfo struct {
	Index   int
	Name    string
	Workers int
}

func (d DeviceInfo) String() string {
	return fmt.Sprintf("[%d] %s (%d workers)", d.Index, d.Name, d.Workers)
}

// EnumerateDevices lists the compute devices of this host. The software
// device exposes every schedulable CPU as a worker.
func EnumerateDevices() []DeviceInfo {
	return []DeviceInfo{{
		Index:   0,
		Name:    "cpu",
		Workers: runtime.NumCPU(),
	}}
}

// device drives one serial batch queue. Work items of a launch are split
// across its workers; each work item runs to completion on private state,
// so the only contention is the hit counter.
type device struct {
	index   int
	workers int
	buf     hitBuffer
}

func newDevice(index, workers int) *device {
	if workers < 1 {
		workers = 1
	}
	return &device{index: index, workers: workers}
}

// runBatch launches batchSize work items against the device's hit buffer
// and blocks until all complete. It returns the recorded hits and the raw
// claim count (which exceeds len(hits) when the buffer overflowed).
func (d *device) runBatch(args kernelArgs, batchSize uint32) ([]Hit, int32) {
	d.buf.reset()
	args.hits = &d.buf

	workers := d.workers
	if uint32(workers) > batchSize {
		workers = int(batchSize)
	}
	chunk := batchSize / uint32(workers)
	rem := batchSize % uint32(workers)

	var wg sync.WaitGroup
	start := uint32(0)
	for w := 0; w < workers; w++ {
		n := chunk
		if uint32(w) < rem {
			n++
		}
		lo, hi := start, start+n
		start = hi
		wg.Add(1)
		go func() {
			defer wg.Done()
			for gid := lo; gid < hi; gid++ {
				runWorkItem(&args, gid)
			}
		}()
	}
	wg.Wait()

	raw := d.buf.raw()
	n := raw
	if n > int32(args.maxHits) {
		n = int32(args.maxHits)
	}
	if n > MaxHits {
		n = MaxHits
	}
	hits := make([]Hit, n)
	copy(hits, d.buf.hits[:n])
	return hits, raw
}
