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

package arith

import "errors"

var (
	// ErrZeroFrequencySymbol is returned by WriteSymbol when the context
	// reports a zero frequency for the symbol being encoded.
	ErrZeroFrequencySymbol = errors.New("arith: symbol has zero frequency")

	// ErrInconsistentContext is returned by WriteSymbol when the context's
	// SymbolPos/SymbolFreq/Total values violate pos+freq <= total.
	ErrInconsistentContext = errors.New("arith: symbol position plus frequency exceeds total")

	// ErrAlreadyFinalized is returned by WriteSymbol, ReadSymbol and
	// SetContext once Finalize has completed.
	ErrAlreadyFinalized = errors.New("arith: codec already finalized")

	// ErrStreamEndedImproperly is returned by Decoder.Finalize when the
	// 4-byte synchronization trailer cannot be located.
	ErrStreamEndedImproperly = errors.New("arith: synchronization trailer not found")
)
