//
//  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

package snowflake

import (
	"errors"
	"runtime"
	"sync"
	"time"
)

// Identity schema, number of bits per fraction
//
//	1bit        41 bit            10 bit   12 bit
//	 |-|------------------------|--------|-------|
//	 ⟨0⟩           ⟨𝒕⟩              ⟨𝒍⟩      ⟨𝒔⟩
const (
	TimeBits = 41
	NodeBits = 10
	SeqBits  = 12

	// TimeMax is the upper bound of ⟨𝒕⟩ timestamp fraction, about 69 years
	// of milliseconds since the configured epoch.
	TimeMax = 1<<TimeBits - 1

	// NodeMax is the upper bound of ⟨𝒍⟩ node fraction.
	NodeMax = 1<<NodeBits - 1

	// SeqMax is the upper bound of ⟨𝒔⟩ sequence fraction.
	SeqMax = 1<<SeqBits - 1

	timeShift = NodeBits + SeqBits
	nodeShift = SeqBits
)

// DefaultEpoch is the built-in zero point of ⟨𝒕⟩ timestamp fraction,
// 2021-01-01T00:00:00Z as milliseconds of UNIX epoch.
const DefaultEpoch int64 = 1609459200000

// ID is 64-bit k-sortable unique identifier. Identifiers allocated by one
// node are strictly ordered by allocation time, the numerical order of
// identifiers follows the order of ⟨𝒕, 𝒔⟩ fractions.
type ID uint64

var (
	// ErrNodeOutOfRange is returned by New if ⟨𝒍⟩ node fraction does not
	// fit 10 bits.
	ErrNodeOutOfRange = errors.New("snowflake: node is out of range")

	// ErrInvalidEpoch is returned by New if the epoch is negative or ahead
	// of the clock.
	ErrInvalidEpoch = errors.New("snowflake: epoch is out of range")

	// ErrClockUnavailable is returned by Generate if the clock reading
	// precedes the configured epoch.
	ErrClockUnavailable = errors.New("snowflake: clock reading is not available")

	// ErrClockMovedBackwards is returned by Generate if the clock reading
	// precedes the one observed by the previous allocation.
	ErrClockMovedBackwards = errors.New("snowflake: clock moved backwards")

	// ErrSequenceOverflow is returned by Generate if ⟨𝒔⟩ sequence fraction
	// is exhausted and the clock does not advance within the spin limit.
	ErrSequenceOverflow = errors.New("snowflake: sequence overflow")

	// ErrTimestampOverflow is returned by Generate if ⟨𝒕⟩ timestamp
	// fraction does not fit 41 bits.
	ErrTimestampOverflow = errors.New("snowflake: timestamp overflow")
)

// Generator is an allocator of k-sortable unique identifiers. It is safe
// for concurrent use by multiple goroutines. Each instance owns the pair
// ⟨lastTime, seq⟩, the application creates one instance per logical node.
type Generator struct {
	node   uint64
	epoch  int64
	ticker func() int64
	limit  time.Duration

	mu       sync.Mutex
	lastTime int64
	seq      uint64
}

// New creates an allocator of unique identifiers for the given ⟨𝒍⟩ node.
// The node is assigned by the operator, its uniqueness across the
// deployment is not enforced by the library.
func New(node uint64, opts ...Config) (*Generator, error) {
	g := &Generator{
		node:     node,
		epoch:    DefaultEpoch,
		ticker:   unixtime,
		limit:    5 * time.Second,
		lastTime: -1,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.node > NodeMax {
		return nil, ErrNodeOutOfRange
	}

	if g.epoch < 0 || g.epoch > g.ticker() {
		return nil, ErrInvalidEpoch
	}

	return g, nil
}

// Generate allocates new k-sortable unique identifier. Identifiers of one
// instance are strictly increasing, the same ⟨𝒕, 𝒔⟩ pair is never issued
// twice.
//
// The clock regression policy is a hard error: the call fails with
// ErrClockMovedBackwards and leaves the allocator state intact, so that
// the call succeeds again once the clock catches up.
func (g *Generator) Generate() (ID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	elapsed := g.ticker() - g.epoch
	if elapsed < 0 {
		return 0, ErrClockUnavailable
	}

	seq := uint64(0)
	switch {
	case elapsed < g.lastTime:
		return 0, ErrClockMovedBackwards
	case elapsed == g.lastTime:
		seq = (g.seq + 1) & SeqMax
		if seq == 0 {
			// ⟨𝒔⟩ is exhausted within the current millisecond,
			// spin until the clock advances
			next, err := g.nextMilli(g.lastTime)
			if err != nil {
				return 0, err
			}
			elapsed = next
		}
	}

	if elapsed > TimeMax {
		return 0, ErrTimestampOverflow
	}

	g.lastTime = elapsed
	g.seq = seq

	return ID(uint64(elapsed)<<timeShift | g.node<<nodeShift | seq), nil
}

// nextMilli spins until the clock advances past the given reading. The
// wait is bounded by the spin limit, a healthy clock advances within a
// millisecond.
func (g *Generator) nextMilli(last int64) (int64, error) {
	deadline := time.Now().Add(g.limit)

	for {
		elapsed := g.ticker() - g.epoch
		if elapsed > last {
			return elapsed, nil
		}
		if time.Now().After(deadline) {
			return 0, ErrSequenceOverflow
		}
		runtime.Gosched()
	}
}

func unixtime() int64 {
	return time.Now().UnixMilli()
}
