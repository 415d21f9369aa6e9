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

import "golang.org/x/crypto/blake2b"

// Blake2b256 computes a 256-bit BLAKE2b digest, truncated to its first 8
// bytes (read big-endian) to satisfy Hash. Callers who want the full digest should use
// golang.org/x/crypto/blake2b directly; this wrapper exists so a caller can
// select among Hash implementations uniformly.
type Blake2b256 struct{}

// NewBlake2b256 creates a Blake2b256 hasher.
func NewBlake2b256() *Blake2b256 {
	return &Blake2b256{}
}

// Name identifies this algorithm for the checksum registry and the CLI's
// --checksum flag.
func (Blake2b256) Name() string { return NameBlake2b }

// Sum returns the first 8 bytes of the BLAKE2b-256 digest of data as a
// big-endian uint64, satisfying Hash.
func (b Blake2b256) Sum(data []byte) uint64 {
	return b.Hash(data)
}

// Hash returns the first 8 bytes of the BLAKE2b-256 digest of data as a
// big-endian uint64.
func (Blake2b256) Hash(data []byte) uint64 {
	sum := blake2b.Sum256(data)
	var v uint64

	for i := 0; i < 8; i++ {
		v = (v << 8) | uint64(sum[i])
	}

	return v
}

// FullHash returns the complete 32-byte BLAKE2b-256 digest of data.
func (Blake2b256) FullHash(data []byte) [32]byte {
	return blake2b.Sum256(data)
}
