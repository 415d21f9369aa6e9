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

import (
	"errors"
	"fmt"
	"io"
	"math/bits"

	"github.com/arcodec/arcodec/bytestream"
	"github.com/arcodec/arcodec/symctx"
)

// Decoder consumes bits from a ByteSource and locates each symbol via the
// current SymbolContext's cumulative distribution. A Decoder is not safe
// for concurrent use.
type Decoder struct {
	source bytestream.ByteSource
	ctx    symctx.SymbolContext

	low  uint32
	high uint32
	code uint32

	curByte  byte
	bitsLeft uint

	state     lifecycle
	listeners []Listener
}

// NewDecoder creates a Decoder reading from source under the given initial
// context. The context may be swapped later with SetContext.
func NewDecoder(source bytestream.ByteSource, ctx symctx.SymbolContext) *Decoder {
	return &Decoder{
		source: source,
		ctx:    ctx,
		low:    0,
		high:   0xFFFFFFFF,
	}
}

// SetContext swaps the context consulted by the next ReadSymbol call.
func (d *Decoder) SetContext(ctx symctx.SymbolContext) error {
	if d.state == finalized {
		return ErrAlreadyFinalized
	}

	d.ctx = ctx
	return nil
}

// AddListener registers l to receive codec events. Returns true.
func (d *Decoder) AddListener(l Listener) bool {
	d.listeners = addListener(d.listeners, l)
	return true
}

// RemoveListener unregisters l. Returns whether l was found.
func (d *Decoder) RemoveListener(l Listener) bool {
	listeners, ok := removeListener(d.listeners, l)
	d.listeners = listeners
	return ok
}

// readByteOrZero reads a byte from the source, substituting 0 once the
// source is exhausted. The decoder always stays four bytes behind the
// encoder's write position (the priming read), so genuine end-of-stream
// padding is handled by Finalize, not here; this fallback only matters if
// a caller asks for more symbols than were ever encoded, which is
// undefined behavior the spec leaves to the caller to avoid.
func (d *Decoder) readByteOrZero() (byte, error) {
	b, err := d.source.ReadByte()

	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}

		return 0, fmt.Errorf("arith: reading byte from source: %w", err)
	}

	return b, nil
}

// readBit returns the next bit of the input stream, MSB first within each
// byte, pulling a fresh byte from the source whenever the buffer empties.
func (d *Decoder) readBit() (uint32, error) {
	if d.bitsLeft == 0 {
		b, err := d.readByteOrZero()

		if err != nil {
			return 0, err
		}

		d.curByte = b
		d.bitsLeft = 8
	}

	bit := (d.curByte >> 7) & 1
	d.curByte <<= 1
	d.bitsLeft--
	return uint32(bit), nil
}

// ReadSymbol decodes and returns the next symbol under the current context.
func (d *Decoder) ReadSymbol() (int64, error) {
	if d.state == finalized {
		return 0, ErrAlreadyFinalized
	}

	if d.state == fresh {
		for i := 0; i < 4; i++ {
			b, err := d.readByteOrZero()

			if err != nil {
				return 0, err
			}

			d.code = (d.code << 8) | uint32(b)
		}
	} else if err := d.renormalizeAndUnderflow(); err != nil {
		return 0, err
	}

	total := d.ctx.Total()
	rng := uint64(d.high-d.low) + 1

	x := uint64(d.code) - uint64(d.low) + 1
	hi, lo := bits.Mul64(x, total)

	if lo == 0 {
		hi--
		lo = ^uint64(0)
	} else {
		lo--
	}

	pos, _ := bits.Div64(hi, lo, rng)

	symbol := d.locateSymbol(pos)

	p := d.ctx.SymbolPos(symbol)
	f := d.ctx.SymbolFreq(symbol)
	newLow := d.low + uint32(rng*p/total)
	newHigh := d.low + uint32(rng*(p+f)/total) - 1
	d.low = newLow
	d.high = newHigh

	d.state = active

	if len(d.listeners) > 0 {
		notifyListeners(d.listeners, newEvent(EvtSymbolDecoded, symbol))
	}

	return symbol, nil
}

// renormalizeAndUnderflow mirrors the encoder's renormalization and
// underflow loops, feeding a fresh input bit into code on every shift.
func (d *Decoder) renormalizeAndUnderflow() error {
	for (d.low^d.high)&0x80000000 == 0 {
		bit, err := d.readBit()

		if err != nil {
			return err
		}

		d.high = (d.high << 1) | 1
		d.low = d.low << 1
		d.code = (d.code << 1) | bit
	}

	for d.low&0x40000000 != 0 && d.high&0x40000000 == 0 {
		bit, err := d.readBit()

		if err != nil {
			return err
		}

		d.high = ((d.high & 0x7FFFFFFF) << 1) | 0x80000001
		d.low = (d.low << 1) & 0x7FFFFFFF
		d.code = (((d.code & 0x7FFFFFFF) ^ 0x40000000) << 1) | bit
	}

	return nil
}

// locateSymbol finds the symbol s such that SymbolPos(s) <= pos <
// SymbolPos(s+1), using an exponential (galloping) search followed by a
// binary search over the overshoot. This minimizes calls to SymbolPos,
// which for ArrayContext extends the cumulative cache monotonically and so
// runs in amortized O(alphabet size) across a full decode.
func (d *Decoder) locateSymbol(pos uint64) int64 {
	var symbol int64
	var inc int64 = 1

	for pos >= d.ctx.SymbolPos(symbol+inc) {
		symbol += inc
		inc *= 2
	}

	for inc > 1 {
		inc /= 2

		if pos >= d.ctx.SymbolPos(symbol+inc) {
			symbol += inc
		}
	}

	return symbol
}

// Finalize consumes the synchronization padding so the source is
// positioned exactly after the codec's last byte. If closeSource is true
// the source is closed afterward. Calling Finalize a second time returns
// ErrAlreadyFinalized.
func (d *Decoder) Finalize(closeSource bool) error {
	if d.state == finalized {
		return ErrAlreadyFinalized
	}

	if d.state == fresh {
		d.state = finalized

		if closeSource {
			return d.source.Close()
		}

		return nil
	}

	for d.bitsLeft > 0 {
		bit := (d.curByte >> 7) & 1
		d.curByte <<= 1
		d.bitsLeft--
		d.code = (d.code << 1) | uint32(bit)
	}

	if d.code != 0x51515150 {
		found := false

		for i := 0; i < 5; i++ {
			b, err := d.source.ReadByte()

			if err != nil {
				return fmt.Errorf("%w: %v", ErrStreamEndedImproperly, err)
			}

			if b == 0x50 {
				found = true
				break
			}

			if b != 0x51 {
				return ErrStreamEndedImproperly
			}
		}

		if !found {
			return ErrStreamEndedImproperly
		}
	}

	d.state = finalized

	if len(d.listeners) > 0 {
		notifyListeners(d.listeners, newEvent(EvtFinalized, -1))
	}

	if closeSource {
		return d.source.Close()
	}

	return nil
}
