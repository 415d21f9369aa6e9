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

// Package symctx defines the cumulative-frequency probability model queried
// by the arithmetic coder, and provides a dense, array-backed implementation.
package symctx

import "errors"

// MaxTotal is the renormalization guard: no SymbolContext handed to the
// codec may report a Total() greater than this value, or the working
// interval can shrink below the total and desynchronize encoder and decoder.
const MaxTotal = uint64(1) << 31

var (
	// ErrOutOfRange is returned when a mutation targets a symbol index
	// outside the context's alphabet.
	ErrOutOfRange = errors.New("context: symbol index out of range")

	// ErrOverflow is returned when a mutation would push Total() past MaxTotal.
	ErrOverflow = errors.New("context: total frequency would exceed the renormalization guard")

	// ErrInvalidArgument is returned when an additive update would drive a
	// frequency negative.
	ErrInvalidArgument = errors.New("context: frequency update would become negative")
)

// SymbolContext is the cumulative-frequency model the encoder and decoder
// query once per symbol. Implementations must keep the three queries
// mutually consistent: SymbolPos(s+1) - SymbolPos(s) == SymbolFreq(s), and
// SymbolPos must be monotonic non-decreasing, for every s the caller intends
// to encode or decode.
//
// A SymbolContext is not safe for concurrent use; the caller must not mutate
// it while an Encoder or Decoder holding it is mid-operation.
type SymbolContext interface {
	// Total returns the sum of all symbol frequencies.
	Total() uint64

	// SymbolFreq returns the frequency of s, or 0 if s is outside the
	// alphabet this context represents.
	SymbolFreq(s int64) uint64

	// SymbolPos returns the sum of frequencies of symbols strictly less
	// than s. Returns 0 for s at or below the smallest symbol and Total()
	// for s above the largest symbol.
	SymbolPos(s int64) uint64
}
