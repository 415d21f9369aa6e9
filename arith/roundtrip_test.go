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
	"encoding/binary"
	"errors"
	"testing"

	"github.com/arcodec/arcodec/bytestream"
	"github.com/arcodec/arcodec/symctx"
	"golang.org/x/exp/rand"
)

func mustContext(t *testing.T, freqs []uint64) *symctx.ArrayContext {
	t.Helper()
	ctx, err := symctx.NewArrayContextFromFrequencies(freqs)

	if err != nil {
		t.Fatalf("NewArrayContextFromFrequencies(%v): %v", freqs, err)
	}

	return ctx
}

// TestSingleSymbolAlphabet is seed scenario 1.
func TestSingleSymbolAlphabet(t *testing.T) {
	ctx := mustContext(t, []uint64{1})
	stream := bytestream.NewMemoryStream()

	enc := NewEncoder(stream, ctx)
	for i := 0; i < 100; i++ {
		if err := enc.WriteSymbol(0); err != nil {
			t.Fatalf("WriteSymbol: %v", err)
		}
	}
	if err := enc.Finalize(false); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if got := stream.Len(); got != 5 {
		t.Fatalf("encoded length = %d, want 5", got)
	}

	dec := NewDecoder(stream, ctx)
	for i := 0; i < 100; i++ {
		s, err := dec.ReadSymbol()

		if err != nil {
			t.Fatalf("ReadSymbol[%d]: %v", i, err)
		}

		if s != 0 {
			t.Fatalf("ReadSymbol[%d] = %d, want 0", i, s)
		}
	}
	if err := dec.Finalize(false); err != nil {
		t.Fatalf("Decoder.Finalize: %v", err)
	}
}

// TestUniformByteAlphabet is seed scenario 2.
func TestUniformByteAlphabet(t *testing.T) {
	freqs := make([]uint64, 256)
	for i := range freqs {
		freqs[i] = 1
	}

	ctx := mustContext(t, freqs)
	stream := bytestream.NewMemoryStream()

	enc := NewEncoder(stream, ctx)
	for i := 0; i < 256; i++ {
		if err := enc.WriteSymbol(int64(i)); err != nil {
			t.Fatalf("WriteSymbol(%d): %v", i, err)
		}
	}
	if err := enc.Finalize(false); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	out := stream.Bytes()
	for i := 0; i < 256; i++ {
		if out[i] != byte(i) {
			t.Fatalf("output[%d] = %d, want %d (pass-through under uniform distribution)", i, out[i], i)
		}
	}

	dec := NewDecoder(stream, ctx)
	for i := 0; i < 256; i++ {
		s, err := dec.ReadSymbol()

		if err != nil {
			t.Fatalf("ReadSymbol[%d]: %v", i, err)
		}

		if s != int64(i) {
			t.Fatalf("ReadSymbol[%d] = %d, want %d", i, s, i)
		}
	}
	if err := dec.Finalize(false); err != nil {
		t.Fatalf("Decoder.Finalize: %v", err)
	}
}

// TestSkewedContextRoundTrip is seed scenario 3.
func TestSkewedContextRoundTrip(t *testing.T) {
	ctx := mustContext(t, []uint64{10, 30, 10})
	pattern := []int64{1, 0, 1, 2, 1}

	stream := bytestream.NewMemoryStream()
	enc := NewEncoder(stream, ctx)

	for rep := 0; rep < 10; rep++ {
		for _, s := range pattern {
			if err := enc.WriteSymbol(s); err != nil {
				t.Fatalf("WriteSymbol(%d): %v", s, err)
			}
		}
	}
	if err := enc.Finalize(false); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if err := stream.WriteByte(47); err != nil {
		t.Fatalf("WriteByte(sentinel): %v", err)
	}

	dec := NewDecoder(stream, ctx)
	for rep := 0; rep < 10; rep++ {
		for _, want := range pattern {
			s, err := dec.ReadSymbol()

			if err != nil {
				t.Fatalf("ReadSymbol: %v", err)
			}

			if s != want {
				t.Fatalf("ReadSymbol = %d, want %d", s, want)
			}
		}
	}
	if err := dec.Finalize(false); err != nil {
		t.Fatalf("Decoder.Finalize: %v", err)
	}

	sentinel, err := stream.ReadByte()
	if err != nil {
		t.Fatalf("ReadByte(sentinel): %v", err)
	}
	if sentinel != 47 {
		t.Fatalf("sentinel = %d, want 47", sentinel)
	}
}

// TestAdaptiveModel is seed scenario 4: an adaptive order-0 context with
// frequent context swaps, bracketed by big-endian int32 markers.
func TestAdaptiveModel(t *testing.T) {
	freqs := make([]uint64, 1000)
	for i := range freqs {
		freqs[i] = 1
	}
	primary := mustContext(t, freqs)
	secondary := mustContext(t, []uint64{3, 2, 1})
	secondaryPattern := []int64{0, 1, 0, 1, 0, 2}

	stream := bytestream.NewMemoryStream()

	var marker [4]byte
	binary.BigEndian.PutUint32(marker[:], 12345)
	for _, b := range marker {
		if err := stream.WriteByte(b); err != nil {
			t.Fatalf("WriteByte(marker): %v", err)
		}
	}

	rng := rand.New(rand.NewSource(42))
	enc := NewEncoder(stream, primary)

	var written []int64

	for i := 0; i < 100000; i++ {
		if i%1000 == 0 {
			if err := enc.SetContext(secondary); err != nil {
				t.Fatalf("SetContext(secondary): %v", err)
			}

			for _, s := range secondaryPattern {
				if err := enc.WriteSymbol(s); err != nil {
					t.Fatalf("WriteSymbol(secondary %d): %v", s, err)
				}
				written = append(written, s)
			}

			if err := enc.SetContext(primary); err != nil {
				t.Fatalf("SetContext(primary): %v", err)
			}
		}

		s := int64(rng.Intn(1000))
		if err := enc.WriteSymbol(s); err != nil {
			t.Fatalf("WriteSymbol(primary %d): %v", s, err)
		}
		written = append(written, s)

		if err := primary.Bump(s); err != nil {
			t.Fatalf("Bump(%d): %v", s, err)
		}
	}
	if err := enc.Finalize(false); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	binary.BigEndian.PutUint32(marker[:], uint32(int32(-54321)))
	for _, b := range marker {
		if err := stream.WriteByte(b); err != nil {
			t.Fatalf("WriteByte(marker): %v", err)
		}
	}

	if want := 100000 + 600; len(written) != want {
		t.Fatalf("produced %d symbols, want %d", len(written), want)
	}

	var head [4]byte
	for i := range head {
		b, err := stream.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte(leading marker): %v", err)
		}
		head[i] = b
	}
	if got := int32(binary.BigEndian.Uint32(head[:])); got != 12345 {
		t.Fatalf("leading marker = %d, want 12345", got)
	}

	freqsDec := make([]uint64, 1000)
	for i := range freqsDec {
		freqsDec[i] = 1
	}
	primaryDec := mustContext(t, freqsDec)
	secondaryDec := mustContext(t, []uint64{3, 2, 1})

	dec := NewDecoder(stream, primaryDec)
	idx := 0

	for i := 0; i < 100000; i++ {
		if i%1000 == 0 {
			if err := dec.SetContext(secondaryDec); err != nil {
				t.Fatalf("SetContext(secondary): %v", err)
			}

			for range secondaryPattern {
				s, err := dec.ReadSymbol()
				if err != nil {
					t.Fatalf("ReadSymbol(secondary): %v", err)
				}
				if s != written[idx] {
					t.Fatalf("symbol[%d] = %d, want %d", idx, s, written[idx])
				}
				idx++
			}

			if err := dec.SetContext(primaryDec); err != nil {
				t.Fatalf("SetContext(primary): %v", err)
			}
		}

		s, err := dec.ReadSymbol()
		if err != nil {
			t.Fatalf("ReadSymbol(primary): %v", err)
		}
		if s != written[idx] {
			t.Fatalf("symbol[%d] = %d, want %d", idx, s, written[idx])
		}
		idx++

		if err := primaryDec.Bump(s); err != nil {
			t.Fatalf("Bump(%d): %v", s, err)
		}
	}
	if err := dec.Finalize(false); err != nil {
		t.Fatalf("Decoder.Finalize: %v", err)
	}

	var tail [4]byte
	for i := range tail {
		b, err := stream.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte(trailing marker): %v", err)
		}
		tail[i] = b
	}
	if got := int32(binary.BigEndian.Uint32(tail[:])); got != -54321 {
		t.Fatalf("trailing marker = %d, want -54321", got)
	}
}

// TestExtremeSkew is seed scenario 5.
func TestExtremeSkew(t *testing.T) {
	ns := []int{0, 1, 2, 10, 1000, 100000}

	for _, n := range ns {
		ctx := mustContext(t, []uint64{1, (uint64(1) << 31) - 2})
		stream := bytestream.NewMemoryStream()

		enc := NewEncoder(stream, ctx)
		for i := 0; i < n; i++ {
			if err := enc.WriteSymbol(1); err != nil {
				t.Fatalf("n=%d WriteSymbol(1)[%d]: %v", n, i, err)
			}
		}
		if err := enc.WriteSymbol(0); err != nil {
			t.Fatalf("n=%d WriteSymbol(0): %v", n, err)
		}
		if err := enc.Finalize(false); err != nil {
			t.Fatalf("n=%d Finalize: %v", n, err)
		}
		if err := stream.WriteByte(0xAB); err != nil {
			t.Fatalf("n=%d WriteByte(sentinel): %v", n, err)
		}

		dec := NewDecoder(stream, ctx)
		for i := 0; i < n; i++ {
			s, err := dec.ReadSymbol()
			if err != nil {
				t.Fatalf("n=%d ReadSymbol(1)[%d]: %v", n, i, err)
			}
			if s != 1 {
				t.Fatalf("n=%d symbol[%d] = %d, want 1", n, i, s)
			}
		}
		s, err := dec.ReadSymbol()
		if err != nil {
			t.Fatalf("n=%d ReadSymbol(0): %v", n, err)
		}
		if s != 0 {
			t.Fatalf("n=%d final symbol = %d, want 0", n, s)
		}
		if err := dec.Finalize(false); err != nil {
			t.Fatalf("n=%d Decoder.Finalize: %v", n, err)
		}

		sentinel, err := stream.ReadByte()
		if err != nil {
			t.Fatalf("n=%d ReadByte(sentinel): %v", n, err)
		}
		if sentinel != 0xAB {
			t.Fatalf("n=%d sentinel = %#x, want 0xAB", n, sentinel)
		}
	}
}

// TestZeroFrequencyRejection is seed scenario 6.
func TestZeroFrequencyRejection(t *testing.T) {
	ctx := mustContext(t, []uint64{0, 1, 1})
	stream := bytestream.NewMemoryStream()

	enc := NewEncoder(stream, ctx)
	err := enc.WriteSymbol(0)

	if !errors.Is(err, ErrZeroFrequencySymbol) {
		t.Fatalf("WriteSymbol(0) error = %v, want ErrZeroFrequencySymbol", err)
	}

	if stream.Len() != 0 {
		t.Fatalf("stream has %d bytes after rejected write, want 0", stream.Len())
	}
}

// TestInconsistentContext exercises the pos+freq>total guard with a
// deliberately misbehaving SymbolContext.
type brokenContext struct{}

func (brokenContext) Total() uint64            { return 10 }
func (brokenContext) SymbolFreq(s int64) uint64 { return 10 }
func (brokenContext) SymbolPos(s int64) uint64  { return 5 }

func TestInconsistentContext(t *testing.T) {
	stream := bytestream.NewMemoryStream()
	enc := NewEncoder(stream, brokenContext{})

	err := enc.WriteSymbol(0)
	if !errors.Is(err, ErrInconsistentContext) {
		t.Fatalf("WriteSymbol error = %v, want ErrInconsistentContext", err)
	}
}

func TestAlreadyFinalized(t *testing.T) {
	ctx := mustContext(t, []uint64{1, 1})
	stream := bytestream.NewMemoryStream()

	enc := NewEncoder(stream, ctx)
	if err := enc.WriteSymbol(0); err != nil {
		t.Fatalf("WriteSymbol: %v", err)
	}
	if err := enc.Finalize(false); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if err := enc.WriteSymbol(0); !errors.Is(err, ErrAlreadyFinalized) {
		t.Fatalf("post-finalize WriteSymbol error = %v, want ErrAlreadyFinalized", err)
	}
	if err := enc.SetContext(ctx); !errors.Is(err, ErrAlreadyFinalized) {
		t.Fatalf("post-finalize SetContext error = %v, want ErrAlreadyFinalized", err)
	}
	if err := enc.Finalize(false); !errors.Is(err, ErrAlreadyFinalized) {
		t.Fatalf("second Finalize error = %v, want ErrAlreadyFinalized", err)
	}
}

func TestFreshFinalizeWritesNothing(t *testing.T) {
	ctx := mustContext(t, []uint64{1, 1})
	stream := bytestream.NewMemoryStream()

	enc := NewEncoder(stream, ctx)
	if err := enc.Finalize(false); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if stream.Len() != 0 {
		t.Fatalf("fresh Finalize wrote %d bytes, want 0", stream.Len())
	}

	dec := NewDecoder(stream, ctx)
	if err := dec.Finalize(false); err != nil {
		t.Fatalf("Decoder.Finalize: %v", err)
	}
}

// TestRoundTripRandomAlphabets exercises the round-trip law across varied
// alphabet sizes and context mutation interleaved with encode/decode.
func TestRoundTripRandomAlphabets(t *testing.T) {
	sizes := []int{1, 2, 3, 17, 250, 1000}

	for _, n := range sizes {
		freqs := make([]uint64, n)
		for i := range freqs {
			freqs[i] = uint64(1 + i%7)
		}

		encCtx := mustContext(t, freqs)
		decCtx := mustContext(t, append([]uint64(nil), freqs...))

		rng := rand.New(rand.NewSource(uint64(n)*7919 + 1))
		symbols := make([]int64, 500)
		for i := range symbols {
			symbols[i] = int64(rng.Intn(n))
		}

		stream := bytestream.NewMemoryStream()
		enc := NewEncoder(stream, encCtx)

		for i, s := range symbols {
			if err := enc.WriteSymbol(s); err != nil {
				t.Fatalf("n=%d WriteSymbol[%d]=%d: %v", n, i, s, err)
			}

			if i%11 == 0 {
				if err := encCtx.Bump(s); err != nil {
					t.Fatalf("n=%d Bump: %v", n, err)
				}
			}
		}
		if err := enc.Finalize(false); err != nil {
			t.Fatalf("n=%d Finalize: %v", n, err)
		}

		dec := NewDecoder(stream, decCtx)
		for i, want := range symbols {
			s, err := dec.ReadSymbol()
			if err != nil {
				t.Fatalf("n=%d ReadSymbol[%d]: %v", n, i, err)
			}
			if s != want {
				t.Fatalf("n=%d symbol[%d] = %d, want %d", n, i, s, want)
			}

			if i%11 == 0 {
				if err := decCtx.Bump(s); err != nil {
					t.Fatalf("n=%d Bump: %v", n, err)
				}
			}
		}
		if err := dec.Finalize(false); err != nil {
			t.Fatalf("n=%d Decoder.Finalize: %v", n, err)
		}
	}
}

func TestListenerReceivesEvents(t *testing.T) {
	ctx := mustContext(t, []uint64{1, 1, 1})
	stream := bytestream.NewMemoryStream()
	enc := NewEncoder(stream, ctx)

	var events []int
	l := recordingListener{record: &events}
	enc.AddListener(l)

	if err := enc.WriteSymbol(1); err != nil {
		t.Fatalf("WriteSymbol: %v", err)
	}
	if err := enc.Finalize(false); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if len(events) != 2 || events[0] != EvtSymbolEncoded || events[1] != EvtFinalized {
		t.Fatalf("events = %v, want [EvtSymbolEncoded, EvtFinalized]", events)
	}

	if ok := enc.RemoveListener(l); !ok {
		t.Fatalf("RemoveListener returned false for a registered listener")
	}
}

type recordingListener struct {
	record *[]int
}

func (r recordingListener) ProcessEvent(evt *Event) {
	*r.record = append(*r.record, evt.Type())
}
