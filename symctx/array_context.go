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

package symctx

import "golang.org/x/exp/slices"

// ArrayContext is a dense, array-backed SymbolContext for alphabets [0, N).
// It maintains a lazily rebuilt cumulative-position table: positions[i] is
// the sum of freqs[0:i], valid up to positionsValidUntil. Point updates
// invalidate only the tail past the updated index; bulk updates invalidate
// everything. This amortizes well for the decoder's forward scan over
// SymbolPos, which is monotonically increasing within a single decode.
type ArrayContext struct {
	freqs               []uint64
	positions           []uint64
	positionsValidUntil int
	total               uint64
}

// NewArrayContext creates an ArrayContext over the alphabet [0, n). If init
// is nil every frequency defaults to 1, otherwise init(i) supplies the
// initial frequency of symbol i.
func NewArrayContext(n int, init func(int) uint64) (*ArrayContext, error) {
	freqs := make([]uint64, n)
	var total uint64

	for i := range freqs {
		f := uint64(1)

		if init != nil {
			f = init(i)
		}

		freqs[i] = f
		total += f
	}

	if total > MaxTotal {
		return nil, ErrOverflow
	}

	return &ArrayContext{
		freqs:               freqs,
		positions:           make([]uint64, n),
		positionsValidUntil: 0,
		total:               total,
	}, nil
}

// NewArrayContextFromFrequencies creates an ArrayContext from an existing
// frequency vector. The vector is cloned: the returned context owns an
// independent copy and the caller's slice may be reused or discarded freely.
func NewArrayContextFromFrequencies(freqs []uint64) (*ArrayContext, error) {
	var total uint64

	for _, f := range freqs {
		total += f
	}

	if total > MaxTotal {
		return nil, ErrOverflow
	}

	return &ArrayContext{
		freqs:               slices.Clone(freqs),
		positions:           make([]uint64, len(freqs)),
		positionsValidUntil: 0,
		total:               total,
	}, nil
}

// Len returns the size of the alphabet, N.
func (c *ArrayContext) Len() int {
	return len(c.freqs)
}

// Total returns the sum of all symbol frequencies.
func (c *ArrayContext) Total() uint64 {
	return c.total
}

// SymbolFreq returns the frequency of s, or 0 if s is outside [0, N).
func (c *ArrayContext) SymbolFreq(s int64) uint64 {
	if s < 0 || s >= int64(len(c.freqs)) {
		return 0
	}

	return c.freqs[s]
}

// SymbolPos returns the sum of frequencies of symbols strictly less than s.
func (c *ArrayContext) SymbolPos(s int64) uint64 {
	n := int64(len(c.freqs))

	if s <= 0 {
		return 0
	}

	if s >= n {
		return c.total
	}

	idx := int(s)

	if idx > c.positionsValidUntil {
		c.extendPositions(idx)
	}

	return c.positions[idx]
}

// extendPositions fills positions[positionsValidUntil+1 .. upTo] and raises
// the high-water mark. positions[0] is always implicitly 0 (never stored or
// read: SymbolPos special-cases s <= 0 before consulting the table).
func (c *ArrayContext) extendPositions(upTo int) {
	start := c.positionsValidUntil + 1

	if start == 0 {
		start = 1
	}

	sum := uint64(0)

	if start > 1 {
		sum = c.positions[start-1]
	}

	for i := start; i <= upTo; i++ {
		sum += c.freqs[i-1]
		c.positions[i] = sum
	}

	c.positionsValidUntil = upTo
}

// SetSymbolFrequency sets the frequency of s to newFreq.
func (c *ArrayContext) SetSymbolFrequency(s int64, newFreq uint64) error {
	if s < 0 || s >= int64(len(c.freqs)) {
		return ErrOutOfRange
	}

	old := c.freqs[s]
	newTotal := int64(c.total) - int64(old) + int64(newFreq)

	if newTotal < 0 {
		return ErrInvalidArgument
	}

	if uint64(newTotal) > MaxTotal {
		return ErrOverflow
	}

	c.freqs[s] = newFreq
	c.total = uint64(newTotal)

	idx := int(s)

	if idx < c.positionsValidUntil {
		c.positionsValidUntil = idx
	}

	return nil
}

// IncrementSymbolFrequency adds delta to the frequency of s (delta may be
// negative). Fails with ErrInvalidArgument if the result would be negative.
func (c *ArrayContext) IncrementSymbolFrequency(s int64, delta int64) error {
	if s < 0 || s >= int64(len(c.freqs)) {
		return ErrOutOfRange
	}

	newFreq := int64(c.freqs[s]) + delta

	if newFreq < 0 {
		return ErrInvalidArgument
	}

	return c.SetSymbolFrequency(s, uint64(newFreq))
}

// Bump increments the frequency of s by 1. A convenience wrapper around
// IncrementSymbolFrequency for the common adaptive-model case.
func (c *ArrayContext) Bump(s int64) error {
	return c.IncrementSymbolFrequency(s, 1)
}

// UpdateFrequencies runs mutator over the live frequency slice in place,
// then recomputes Total and fully invalidates the cumulative-position
// cache. Use this for edits that touch more than one symbol at a time;
// point edits should prefer SetSymbolFrequency/IncrementSymbolFrequency,
// which invalidate only the tail.
func (c *ArrayContext) UpdateFrequencies(mutator func(freqs []uint64)) error {
	mutator(c.freqs)
	return c.rebuild()
}

// ReplaceFrequencies runs mutator over a clone of the live frequency slice
// and installs whatever it returns as the new backing vector (which may
// have a different length, growing or shrinking the alphabet), then
// recomputes Total and fully invalidates the cumulative-position cache.
func (c *ArrayContext) ReplaceFrequencies(mutator func(freqs []uint64) []uint64) error {
	next := mutator(slices.Clone(c.freqs))
	c.freqs = next
	c.positions = make([]uint64, len(next))
	return c.rebuild()
}

func (c *ArrayContext) rebuild() error {
	var total uint64

	for _, f := range c.freqs {
		total += f
	}

	if total > MaxTotal {
		return ErrOverflow
	}

	c.total = total
	c.positionsValidUntil = -1

	if len(c.positions) != len(c.freqs) {
		c.positions = make([]uint64, len(c.freqs))
	}

	return nil
}
