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

package snowflake_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/fogfish/it/v2"
	"github.com/fogfish/snowflake"
)

func TestWithEpoch(t *testing.T) {
	g, _ := snowflake.New(1,
		snowflake.WithEpoch(snowflake.DefaultEpoch),
		snowflake.WithClock(func() int64 { return snowflake.DefaultEpoch + 0x1234 }),
	)
	a, err := g.Generate()

	it.Then(t).Should(
		it.True(err == nil),
		it.Equal(snowflake.Time(a), 0x1234),
	)
}

func TestWithEpochTime(t *testing.T) {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g, _ := snowflake.New(1,
		snowflake.WithEpochTime(epoch),
		snowflake.WithClock(func() int64 { return epoch.UnixMilli() + 512 }),
	)
	a, _ := g.Generate()

	it.Then(t).Should(
		it.Equal(snowflake.Time(a), 512),
		it.Equal(
			snowflake.UnixTime(a, epoch.UnixMilli()).UnixMilli(),
			epoch.UnixMilli()+512,
		),
	)
}

func TestWithClock(t *testing.T) {
	g, _ := snowflake.New(1,
		snowflake.WithClock(func() int64 { return snowflake.DefaultEpoch + 0xfedc }),
	)
	a, _ := g.Generate()
	b, _ := g.Generate()

	it.Then(t).Should(
		it.Equal(snowflake.Time(a), 0xfedc),
		it.Equal(snowflake.Time(b), 0xfedc),
		it.Equal(snowflake.Seq(b)-snowflake.Seq(a), 1),
	)
}

func TestWithNodeFromEnv(t *testing.T) {
	os.Setenv("CONFIG_SNOWFLAKE_NODE_ID", "42")

	g, err := snowflake.New(0,
		snowflake.WithNodeFromEnv(),
	)
	it.Then(t).Must(it.True(err == nil))

	a, _ := g.Generate()

	it.Then(t).Should(
		it.Equal(snowflake.Node(a), 42),
	)
}

func TestWithNodeFromEnvHashed(t *testing.T) {
	os.Setenv("CONFIG_SNOWFLAKE_NODE_ID", "abc@go")

	g, err := snowflake.New(0,
		snowflake.WithNodeFromEnv(),
	)
	it.Then(t).Must(it.True(err == nil))

	a, _ := g.Generate()

	it.Then(t).Should(
		it.Equal(snowflake.Node(a), 0x305),
	)
}

func TestWithNodeFromEnvOutOfRange(t *testing.T) {
	os.Setenv("CONFIG_SNOWFLAKE_NODE_ID", "2048")

	_, err := snowflake.New(0,
		snowflake.WithNodeFromEnv(),
	)

	it.Then(t).Should(
		it.True(errors.Is(err, snowflake.ErrNodeOutOfRange)),
	)
}

func TestWithSpinLimit(t *testing.T) {
	g, _ := snowflake.New(1,
		snowflake.WithSpinLimit(time.Millisecond),
		snowflake.WithClock(func() int64 { return snowflake.DefaultEpoch }),
	)

	var err error
	for i := 0; i <= snowflake.SeqMax+1; i++ {
		if _, err = g.Generate(); err != nil {
			break
		}
	}

	it.Then(t).Should(
		it.True(errors.Is(err, snowflake.ErrSequenceOverflow)),
	)
}
