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
	"crypto/sha256"
	"os"
	"strconv"
	"time"
)

// Config option of the allocator behavior. Config options allows to define
// custom strategies to obtain ⟨𝒍⟩ node, the epoch or ⟨𝒕⟩ clock readings.
type Config func(*Generator)

// WithEpoch explicitly configures the zero point of ⟨𝒕⟩ timestamp fraction
// as milliseconds of UNIX epoch.
func WithEpoch(epoch int64) Config {
	return func(g *Generator) {
		g.epoch = epoch
	}
}

// WithEpochTime explicitly configures the zero point of ⟨𝒕⟩ timestamp
// fraction as wall-clock instant.
func WithEpochTime(t time.Time) Config {
	return func(g *Generator) {
		g.epoch = t.UnixMilli()
	}
}

// WithClock configures a custom clock reading function, milliseconds of
// UNIX epoch. The default clock is time.Now().UnixMilli().
func WithClock(ticker func() int64) Config {
	return func(g *Generator) {
		g.ticker = ticker
	}
}

// WithNodeFromEnv configures ⟨𝒍⟩ node fraction using env variable.
//
//	CONFIG_SNOWFLAKE_NODE_ID - defines node id as a string
//
// Decimal values are used verbatim, any other value is hashed to the
// 10-bit node space.
func WithNodeFromEnv() Config {
	return func(g *Generator) {
		val := os.Getenv("CONFIG_SNOWFLAKE_NODE_ID")
		if node, err := strconv.ParseUint(val, 10, 64); err == nil {
			g.node = node
			return
		}

		h := sha256.New()
		h.Write([]byte(val))
		hash := h.Sum(nil)
		g.node = (uint64(hash[0])<<8 | uint64(hash[1])) & NodeMax
	}
}

// WithSpinLimit bounds the busy-wait on ⟨𝒔⟩ sequence exhaustion. The
// allocator fails with ErrSequenceOverflow if the clock does not advance
// within the limit. The default limit is 5 seconds.
func WithSpinLimit(limit time.Duration) Config {
	return func(g *Generator) {
		g.limit = limit
	}
}
