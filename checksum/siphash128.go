/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package checksum

import "github.com/dchest/siphash"

// SipHash128 computes the 128-bit SipHash-2-4 digest under a pair of
// 64-bit keys, delegating to the siphash package.
type SipHash128 struct {
	k0 uint64
	k1 uint64
}

// NewSipHash128 creates a SipHash128 keyed by (k0, k1).
func NewSipHash128(k0, k1 uint64) *SipHash128 {
	return &SipHash128{k0: k0, k1: k1}
}

// Name identifies this algorithm for the checksum registry and the CLI's
// --checksum flag.
func (s *SipHash128) Name() string { return NameSipHash }

// Sum returns the low 64 bits of the 128-bit digest, satisfying Hash.
// Callers who want the full 128 bits should call Hash128 directly.
func (s *SipHash128) Sum(data []byte) uint64 {
	lo, _ := s.Hash128(data)
	return lo
}

// Hash128 returns the (lo, hi) halves of the 128-bit digest of data.
func (s *SipHash128) Hash128(data []byte) (lo uint64, hi uint64) {
	return siphash.Hash128(s.k0, s.k1, data)
}
