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

// Package search implements the vanity address search: the per-work-item
// pipeline, the per-device batch loop and the controller that sweeps the
// counter space, verifies reported hits and enforces termination.
package search

import (
	"context"
	"crypto/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	gometrics "github.com/rcrowley/go-metrics"
	"golang.org/x/sync/errgroup"

	"github.com/ergvanity/go-ergvanity/address"
	"github.com/ergvanity/go-ergvanity/bip32"
	"github.com/ergvanity/go-ergvanity/bip39"
	"github.com/ergvanity/go-ergvanity/crypto/base58"
	"github.com/ergvanity/go-ergvanity/internal/logging"
)

var log = logging.MustGetLogger("search")

// ErrBadConfig tags configuration validation failures.
var ErrBadConfig = errors.New("search: bad config")

// MaxIndices bounds how many address indices a work item sweeps per seed.
const MaxIndices = 100

// Config holds the per-search parameters.
type Config struct {
	// BatchSize is the global work size of one kernel launch.
	BatchSize uint32
	// NumIndices is how many addresses m/44'/429'/0'/0/{0..N-1} each seed
	// is checked at, 1..100.
	NumIndices uint32
	// IgnoreCase selects ASCII case-insensitive prefix matching.
	IgnoreCase bool
	// MaxResults stops the search after this many verified matches.
	MaxResults int
	// Duration bounds the wall-clock run time; zero means unbounded.
	Duration time.Duration
	// Devices selects compute devices by global index; nil means device 0.
	Devices []int
	// Workers overrides the per-device worker count; zero uses the
	// device's own parallelism.
	Workers int
	// Salt fixes the search salt; nil draws 32 bytes from the platform
	// CSPRNG. Fixing it is for tests and benchmarks.
	Salt *[32]byte
	// Progress is the interval between throughput reports; zero disables
	// them.
	Progress time.Duration
}

// DefaultConfig is the baseline search configuration.
var DefaultConfig = Config{
	BatchSize:  1 << 18,
	NumIndices: 1,
	MaxResults: 1,
	Progress:   5 * time.Second,
}

// Result is one verified match.
type Result struct {
	Entropy      [32]byte
	WorkItemID   uint32
	AddressIndex uint32
	PatternIndex uint32
	DeviceIndex  int
	Address      string
	Mnemonic     string
	PrivateKey   [32]byte
}

// Stats summarises a finished search.
type Stats struct {
	AddressesChecked uint64
	HitsDropped      uint64
	VerifyFailures   uint64
	Elapsed          time.Duration
}

// Controller owns all mutable state of one search: the salt, the counter
// sequencer, the aggregated results and the stop flag. Lifetime is a single
// Run call.
type Controller struct {
	cfg      Config
	patterns *PatternSet
	devices  []*device
	salt     [32]byte

	counterMu sync.Mutex
	counter   uint64

	stopped int32

	mu      sync.Mutex
	results []Result
	stats   Stats

	meter gometrics.Meter
}

// New validates the configuration and pattern set and prepares a
// controller. All input violations surface here, before any search work.
func New(patterns []string, cfg Config) (*Controller, error) {
	ps, err := NewPatternSet(patterns, cfg.IgnoreCase)
	if err != nil {
		return nil, err
	}
	if cfg.BatchSize == 0 {
		return nil, errors.Wrap(ErrBadConfig, "batch size must be at least 1")
	}
	if cfg.NumIndices < 1 || cfg.NumIndices > MaxIndices {
		return nil, errors.Wrapf(ErrBadConfig, "num indices %d outside 1..%d", cfg.NumIndices, MaxIndices)
	}
	if cfg.MaxResults < 1 {
		return nil, errors.Wrap(ErrBadConfig, "max results must be at least 1")
	}

	available := EnumerateDevices()
	byIndex := make(map[int]DeviceInfo, len(available))
	for _, info := range available {
		byIndex[info.Index] = info
	}
	selected := cfg.Devices
	if len(selected) == 0 {
		selected = []int{available[0].Index}
	}

	c := &Controller{
		cfg:      cfg,
		patterns: ps,
		meter:    gometrics.NewMeter(),
	}
	for _, idx := range selected {
		info, ok := byIndex[idx]
		if !ok {
			return nil, errors.Wrapf(ErrNoDevice, "index %d (available: %v)", idx, available)
		}
		workers := cfg.Workers
		if workers == 0 {
			workers = info.Workers / len(selected)
		}
		c.devices = append(c.devices, newDevice(idx, workers))
	}

	if cfg.Salt != nil {
		c.salt = *cfg.Salt
	} else {
		if _, err := rand.Read(c.salt[:]); err != nil {
			return nil, errors.Wrap(err, "search: drawing salt")
		}
	}
	return c, nil
}

// Patterns returns the validated pattern set.
func (c *Controller) Patterns() *PatternSet {
	return c.patterns
}

// Stop requests cooperative termination; in-flight batches finish first.
func (c *Controller) Stop() {
	atomic.StoreInt32(&c.stopped, 1)
}

func (c *Controller) shouldStop(ctx context.Context, deadline time.Time) bool {
	if atomic.LoadInt32(&c.stopped) != 0 {
		return true
	}
	if ctx.Err() != nil {
		return true
	}
	if !deadline.IsZero() && time.Now().After(deadline) {
		return true
	}
	return false
}

// nextCounter hands out the next disjoint work-item id range.
func (c *Controller) nextCounter(batch uint32) uint64 {
	c.counterMu.Lock()
	defer c.counterMu.Unlock()
	start := c.counter
	c.counter += uint64(batch)
	return start
}

// Run drives the search until MaxResults verified matches, the deadline,
// context cancellation or Stop. One goroutine per device runs its serial
// batch loop; aggregation happens under the controller mutex.
func (c *Controller) Run(ctx context.Context) ([]Result, Stats, error) {
	start := time.Now()
	var deadline time.Time
	if c.cfg.Duration > 0 {
		deadline = start.Add(c.cfg.Duration)
	}

	log.Infow("starting search",
		"patterns", c.patterns.originals,
		"ignoreCase", c.cfg.IgnoreCase,
		"numIndices", c.cfg.NumIndices,
		"maxResults", c.cfg.MaxResults,
		"devices", len(c.devices),
		"batchSize", c.cfg.BatchSize,
	)

	progressCtx, stopProgress := context.WithCancel(context.Background())
	defer stopProgress()
	if c.cfg.Progress > 0 {
		go c.reportProgress(progressCtx, start)
	}

	var group errgroup.Group
	for _, dev := range c.devices {
		dev := dev
		group.Go(func() error {
			c.deviceLoop(ctx, dev, deadline)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, Stats{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	sortResults(c.results)
	if len(c.results) > c.cfg.MaxResults {
		c.results = c.results[:c.cfg.MaxResults]
	}
	c.stats.Elapsed = time.Since(start)
	if c.stats.HitsDropped > 0 {
		log.Warnw("hits dropped due to buffer overflow; pattern may be too short",
			"dropped", c.stats.HitsDropped)
	}
	log.Infow("search finished",
		"matches", len(c.results),
		"checked", c.stats.AddressesChecked,
		"elapsed", c.stats.Elapsed,
	)
	return c.results, c.stats, ctx.Err()
}

func (c *Controller) deviceLoop(ctx context.Context, dev *device, deadline time.Time) {
	args := kernelArgs{
		salt:       c.salt,
		patterns:   c.patterns,
		numIndices: c.cfg.NumIndices,
		maxHits:    MaxHits,
	}

	for !c.shouldStop(ctx, deadline) {
		args.counterStart = c.nextCounter(c.cfg.BatchSize)
		hits, raw := dev.runBatch(args, c.cfg.BatchSize)
		c.meter.Mark(int64(c.cfg.BatchSize) * int64(c.cfg.NumIndices))

		var verified []Result
		var failures uint64
		for i := range hits {
			res, err := c.verifyHit(&hits[i])
			if err != nil {
				// A hit that does not reproduce is a kernel bug indicator;
				// drop it and keep searching.
				log.Warnw("hit failed host verification", "err", err,
					"workItem", hits[i].WorkItemID, "device", dev.index)
				failures++
				continue
			}
			res.DeviceIndex = dev.index
			verified = append(verified, *res)
		}
		// Claim order across work items is nondeterministic; sort for
		// stable batch output.
		sortResults(verified)

		c.mu.Lock()
		c.stats.AddressesChecked += uint64(c.cfg.BatchSize) * uint64(c.cfg.NumIndices)
		c.stats.VerifyFailures += failures
		if over := int64(raw) - int64(len(hits)); over > 0 {
			c.stats.HitsDropped += uint64(over)
		}
		c.results = append(c.results, verified...)
		done := len(c.results) >= c.cfg.MaxResults
		c.mu.Unlock()

		if done {
			c.Stop()
		}
	}
}

// verifyHit re-runs the full pipeline on the host for a reported hit and
// checks the prefix still matches.
func (c *Controller) verifyHit(h *Hit) (*Result, error) {
	entropy := h.Entropy()
	mnemonic := bip39.Mnemonic(&entropy)
	seed := bip39.SeedFromMnemonic(mnemonic)

	master, err := bip32.Master(seed[:])
	if err != nil {
		return nil, err
	}
	ext, err := master.ErgoExternal()
	if err != nil {
		return nil, err
	}
	child, err := ext.Child(h.AddressIndex)
	if err != nil {
		return nil, err
	}
	pub, err := child.PublicKey()
	if err != nil {
		return nil, err
	}

	var payload [address.PayloadLen]byte
	address.P2PKPayload(&pub, address.Mainnet, &payload)
	if !address.VerifyPayload(&payload) {
		return nil, errors.New("payload checksum mismatch")
	}

	if int(h.PatternIndex) >= c.patterns.Len() {
		return nil, errors.Errorf("pattern index %d out of range", h.PatternIndex)
	}
	if !base58.MatchPrefix(&payload, c.patterns.pattern(int(h.PatternIndex)), c.patterns.IgnoreCase()) {
		return nil, errors.Errorf("address does not match pattern %q",
			c.patterns.Normalized(int(h.PatternIndex)))
	}

	return &Result{
		Entropy:      entropy,
		WorkItemID:   h.WorkItemID,
		AddressIndex: h.AddressIndex,
		PatternIndex: h.PatternIndex,
		Address:      base58.Encode(payload[:]),
		Mnemonic:     mnemonic,
		PrivateKey:   child.KeyBytes(),
	}, nil
}

func (c *Controller) reportProgress(ctx context.Context, start time.Time) {
	ticker := time.NewTicker(c.cfg.Progress)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			found := len(c.results)
			checked := c.stats.AddressesChecked
			c.mu.Unlock()
			log.Infow("progress",
				"checked", checked,
				"rate", int64(c.meter.Snapshot().RateMean()),
				"found", found,
				"target", c.cfg.MaxResults,
				"elapsed", time.Since(start).Round(time.Second),
			)
		}
	}
}

// sortResults orders by (address index, pattern index, work item id) for
// stable output.
func sortResults(rs []Result) {
	sort.Slice(rs, func(i, j int) bool {
		a, b := &rs[i], &rs[j]
		if a.AddressIndex != b.AddressIndex {
			return a.AddressIndex < b.AddressIndex
		}
		if a.PatternIndex != b.PatternIndex {
			return a.PatternIndex < b.PatternIndex
		}
		return a.WorkItemID < b.WorkItemID
	})
}
