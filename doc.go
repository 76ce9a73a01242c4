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

/*
Package snowflake implements allocator of compact 64-bit k-sortable unique
identifiers for distributed applications. The allocation is decentralized,
the only coordination is an operator-assigned node identity.

# Key features

This library aims important objectives:

↣ IDs allocation does not require centralized authority, nodes coordinate
through statically assigned node identity only.

↣ IDs are roughly sortable by allocation order ("time"), identifiers of
one node are strictly ordered.

↣ IDs are compact 64-bit integers, they fit native machine words, reduce
indexes footprints and optimize lookup latency.

# Identity Schema

A fixed size of 64-bit is used to implement identity schema, the well-known
layout of Twitter Snowflake
(https://blog.twitter.com/engineering/en_us/a/2010/announcing-snowflake.html)

	1bit        41 bit            10 bit   12 bit
	 |-|------------------------|--------|-------|
	 ⟨0⟩           ⟨𝒕⟩              ⟨𝒍⟩      ⟨𝒔⟩

↣ ⟨𝒕⟩ is 41-bit timestamp with millisecond precision, measured since the
configurable epoch (2021-01-01T00:00:00Z unless overridden). The sign bit
is kept zero so that the value is castable to non-negative int64. The
41-bit fraction covers about 69 years since the epoch.

↣ ⟨𝒍⟩ is 10-bit node identity assigned by the operator. The library
assumes the identity is unique across concurrently running allocators,
this guarantee is external.

↣ ⟨𝒔⟩ is 12-bit monotonic integer distinguishing identifiers allocated
within single millisecond, about 4M allocations per second on single node.
The allocator never reuses ⟨𝒕, 𝒔⟩ pair, it spins to the next millisecond
once the sequence is exhausted.

The allocator is safe for concurrent use, clock regression is surfaced as
a hard error rather than a duplicate or out-of-order identifier.

	g, err := snowflake.New(42)
	if err != nil { ... }

	uid, err := g.Generate()
	if err != nil { ... }

# Applications

↣ object identity: use library to generate unique identifiers.

↣ replacement of auto increment types: out-of-the-box replacement for auto
increment fields in databases.

↣ event ordering: identifiers are suitable for partial event ordering in
distributed environment.
*/
package snowflake
