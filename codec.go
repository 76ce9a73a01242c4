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
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"
)

/*******************************************************************************

Lenses of identifier

*******************************************************************************/

// Time returns ⟨𝒕⟩ timestamp fraction from identifier, milliseconds since
// the epoch of the allocator.
func Time(uid ID) uint64 {
	return uint64(uid) >> timeShift & TimeMax
}

// Node returns ⟨𝒍⟩ node fraction from identifier.
func Node(uid ID) uint64 {
	return uint64(uid) >> nodeShift & NodeMax
}

// Seq returns ⟨𝒔⟩ sequence fraction from identifier. The value of
// monotonic integer at the time of ID allocation.
func Seq(uid ID) uint64 {
	return uint64(uid) & SeqMax
}

// UnixTime converts ⟨𝒕⟩ timestamp fraction from identifier to wall-clock
// instant. The optional argument overrides DefaultEpoch, use the same
// epoch as the allocator of the identifier.
func UnixTime(uid ID, epoch ...int64) time.Time {
	return time.UnixMilli(int64(Time(uid)) + epochOf(epoch))
}

// FromTime converts wall-clock instant to the smallest identifier
// allocatable at that instant. The value is usable as lower bound for
// range scans over stored identifiers.
func FromTime(t time.Time, epoch ...int64) ID {
	elapsed := t.UnixMilli() - epochOf(epoch)
	if elapsed < 0 {
		elapsed = 0
	}
	return ID(uint64(elapsed) << timeShift)
}

func epochOf(epoch []int64) int64 {
	if len(epoch) == 0 {
		return DefaultEpoch
	}
	return epoch[0]
}

/*******************************************************************************

Ordering

*******************************************************************************/

// Before returns true if identifier a is allocated before identifier b.
func Before(a, b ID) bool {
	return a < b
}

// After returns true if identifier a is allocated after identifier b.
func After(a, b ID) bool {
	return a > b
}

/*******************************************************************************

Codec

*******************************************************************************/

// Bytes encodes identifier to 8-byte big-endian slice, the binary form
// preserves the allocation order.
func Bytes(uid ID) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(uid))
	return b
}

// FromBytes decodes identifier from 8-byte big-endian slice.
func FromBytes(val []byte) ID {
	if len(val) != 8 {
		panic(fmt.Errorf("malformed snowflake: %v", val))
	}
	return ID(binary.BigEndian.Uint64(val))
}

var alphabet []rune = []rune{
	'.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'A', 'B', 'C', 'D', 'E',
	'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U',
	'V', 'W', 'X', 'Y', 'Z', '_', 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j',
	'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z',
}

// String encodes identifier to lexicographically sortable 11-rune string.
func String(uid ID) string {
	b := make([]rune, 11)
	for i := range b {
		b[i] = alphabet[uint64(uid)>>(60-6*i)&0x3f]
	}
	return string(b)
}

// FromString decodes identifier from lexicographically sortable string.
func FromString(val string) ID {
	uid := uint64(0)
	for _, x := range val {
		uid = uid<<6 | uint64(ordinal(x))
	}
	return ID(uid)
}

func ordinal(x rune) byte {
	switch {
	case x == '.':
		return 0
	case x >= '0' && x <= '9':
		return byte(x-'0') + 1
	case x >= 'A' && x <= 'Z':
		return byte(x-'A') + 11
	case x == '_':
		return 37
	case x >= 'a' && x <= 'z':
		return byte(x-'a') + 38
	}
	return 0
}

// UnmarshalJSON decodes lexicographically sortable string to identifier
func (uid *ID) UnmarshalJSON(b []byte) (err error) {
	var val string
	if err = json.Unmarshal(b, &val); err != nil {
		return
	}
	*uid = FromString(val)
	return
}

// MarshalJSON encodes identifier to lexicographically sortable JSON string
func (uid ID) MarshalJSON() (bytes []byte, err error) {
	return json.Marshal(String(uid))
}

// String encoding of identifier
func (uid ID) String() string {
	return String(uid)
}
