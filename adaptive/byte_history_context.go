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

// Package adaptive provides a predictive SymbolContext built from a history
// of previously seen bytes, for callers who want a model that adapts on its
// own rather than supplying frequencies out of band. bytecodec's streaming
// mode is the production caller: it drives Observe after every decoded or
// encoded byte to keep both sides of a stream synchronized.
package adaptive

import "github.com/arcodec/arcodec/symctx"

// rescaleCeiling bounds how large a single sub-context's total may grow
// before it is halved. Kept comfortably under symctx.MaxTotal so a single
// Observe call can never push a context over the renormalization guard,
// even though 256 sub-contexts each independently approach it.
const rescaleCeiling = uint64(1) << 20

// byteStreamAlphabetSize mirrors bytecodec.AlphabetSize (the 256 byte
// values plus one reserved end-of-stream symbol). adaptive cannot import
// bytecodec without creating an import cycle (bytecodec imports adaptive
// to drive streaming mode), so the constant is duplicated here; the two
// must be kept in step.
const byteStreamAlphabetSize = 257

// ByteHistoryContext is an order-1 predictive SymbolContext over byte
// values: the frequency distribution used for the next query depends on
// the byte most recently observed. It selects among 256 independent
// ArrayContext instances by the last-seen byte, the way a context-mixing
// coder's byte-history state selects among per-context counters, but
// restructured around ArrayContext's cumulative-frequency queries instead
// of per-bit probability counters.
type ByteHistoryContext struct {
	contexts [256]*symctx.ArrayContext
	previous byte
}

// NewByteHistoryContext creates a ByteHistoryContext with every
// sub-context initialized to frequency 1 per symbol and the initial
// selector at the sub-context for byte 0.
func NewByteHistoryContext() (*ByteHistoryContext, error) {
	h := &ByteHistoryContext{}

	for i := range h.contexts {
		sub, err := symctx.NewArrayContext(byteStreamAlphabetSize, nil)

		if err != nil {
			return nil, err
		}

		h.contexts[i] = sub
	}

	return h, nil
}

// active returns the sub-context selected by the most recently observed
// byte.
func (h *ByteHistoryContext) active() *symctx.ArrayContext {
	return h.contexts[h.previous]
}

// Total implements symctx.SymbolContext.
func (h *ByteHistoryContext) Total() uint64 { return h.active().Total() }

// SymbolFreq implements symctx.SymbolContext.
func (h *ByteHistoryContext) SymbolFreq(s int64) uint64 { return h.active().SymbolFreq(s) }

// SymbolPos implements symctx.SymbolContext.
func (h *ByteHistoryContext) SymbolPos(s int64) uint64 { return h.active().SymbolPos(s) }

// Observe records that symbol was the byte just encoded or decoded: it
// bumps symbol's frequency in the currently active sub-context, rescaling
// that sub-context first if its total has reached rescaleCeiling, then
// switches the selector to symbol's own sub-context for the next query.
// Callers drive this explicitly after each WriteSymbol/ReadSymbol call on
// a real byte value (never on the end-of-stream symbol, which has no
// byte representation); the codec itself never calls it, consistent with
// the caller owning the model.
func (h *ByteHistoryContext) Observe(symbol byte) error {
	sub := h.active()

	if sub.Total() >= rescaleCeiling {
		if err := rescale(sub); err != nil {
			return err
		}
	}

	if err := sub.Bump(int64(symbol)); err != nil {
		return err
	}

	h.previous = symbol
	return nil
}

// Reset reinitializes every sub-context to a uniform distribution and
// returns the selector to byte 0, as if the context were newly
// constructed. Useful for a caller that wants to reuse one
// ByteHistoryContext across multiple independent streams.
func (h *ByteHistoryContext) Reset() {
	for _, sub := range h.contexts {
		_ = sub.UpdateFrequencies(func(freqs []uint64) {
			for i := range freqs {
				freqs[i] = 1
			}
		})
	}

	h.previous = 0
}

// rescale halves every frequency in place, flooring at 1, aging out old
// evidence so the distribution can keep tracking a non-stationary source
// without ever approaching the overflow ceiling.
func rescale(c *symctx.ArrayContext) error {
	return c.UpdateFrequencies(func(freqs []uint64) {
		for i, f := range freqs {
			if f > 1 {
				freqs[i] = (f + 1) / 2
			}
		}
	})
}
