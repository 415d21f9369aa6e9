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

package bytecodec

import (
	"fmt"

	"github.com/arcodec/arcodec/arith"
	"github.com/arcodec/arcodec/bytestream"
	"github.com/arcodec/arcodec/checksum"
	"github.com/arcodec/arcodec/symctx"
)

// StaticWriter buffers an entire message, derives a fixed frequency table
// from its actual byte distribution, writes that table (and, if
// requested, a whole-message checksum) as a self-describing header, then
// entropy-codes the message under the resulting static context. Static
// mode trades one buffering pass for a context that exactly matches the
// message instead of one that adapts toward it.
type StaticWriter struct {
	sink          bytestream.ByteSink
	buffered      []byte
	closed        bool
	algo          checksumAlgo
	algoName      string
	explicitFreqs []uint64
}

// NewStaticWriter creates a StaticWriter over sink.
func NewStaticWriter(sink bytestream.ByteSink) *StaticWriter {
	return &StaticWriter{sink: sink}
}

// SetChecksum selects a whole-message checksum algorithm ("none",
// "xxhash64", "siphash", or "blake2b") to store alongside the frequency
// header, matching the CLI's --checksum flag. It must be called before
// Close; the default, if never called, is "none".
func (w *StaticWriter) SetChecksum(name string) error {
	algo, err := checksumAlgoFromName(name)
	if err != nil {
		return err
	}

	w.algo = algo
	w.algoName = name
	return nil
}

// SetFrequencies supplies a fixed 257-entry frequency table to use
// instead of the histogram Close would otherwise derive from the
// buffered input, matching the CLI's --config frequency-table option for
// reproducible static-mode encoding. Every byte actually written must
// have a non-zero frequency in freqs, as must EOS, or Close fails with the
// encoder's zero-frequency-symbol error. It must be called before
// Close and overrides any earlier call.
func (w *StaticWriter) SetFrequencies(freqs []uint64) error {
	if len(freqs) != AlphabetSize {
		return fmt.Errorf("bytecodec: frequency table has %d entries, want %d", len(freqs), AlphabetSize)
	}

	w.explicitFreqs = append([]uint64(nil), freqs...)
	return nil
}

// Write buffers p for later encoding and reports having consumed all of p.
// Its only failure is ErrAlreadyClosed, once Close has run.
func (w *StaticWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrAlreadyClosed
	}

	w.buffered = append(w.buffered, p...)
	return len(p), nil
}

// Close derives the frequency table for the buffered bytes, computes the
// configured checksum (if any), writes the header, encodes every
// buffered byte followed by the end-of-stream symbol, and finalizes the
// underlying encoder. If closeSink is true the sink is closed afterward.
func (w *StaticWriter) Close(closeSink bool) error {
	if w.closed {
		return ErrAlreadyClosed
	}

	w.closed = true

	var freqs []uint64

	if w.explicitFreqs != nil {
		freqs = w.explicitFreqs
	} else {
		freqs = make([]uint64, AlphabetSize)
		for _, b := range w.buffered {
			freqs[b]++
		}
		freqs[EOS] = 1
	}

	var digest uint64

	if w.algo != checksumNone {
		h, err := checksum.New(w.algoName)
		if err != nil {
			return fmt.Errorf("bytecodec: resolving checksum algorithm: %w", err)
		}

		digest = h.Sum(w.buffered)
	}

	if err := writeHeader(w.sink, header{freqs: freqs, algo: w.algo, checksum: digest}); err != nil {
		return err
	}

	ctx, err := symctx.NewArrayContextFromFrequencies(freqs)
	if err != nil {
		return fmt.Errorf("bytecodec: building static context: %w", err)
	}

	enc := arith.NewEncoder(w.sink, ctx)

	for _, b := range w.buffered {
		if err := enc.WriteSymbol(int64(b)); err != nil {
			return fmt.Errorf("bytecodec: encoding byte: %w", err)
		}
	}

	if err := enc.WriteSymbol(EOS); err != nil {
		return fmt.Errorf("bytecodec: encoding end-of-stream symbol: %w", err)
	}

	return enc.Finalize(closeSink)
}

// StaticReader decodes a message written by StaticWriter.
type StaticReader struct {
	source   bytestream.ByteSource
	dec      *arith.Decoder
	ended    bool
	primed   bool
	algo     checksumAlgo
	checksum uint64
	decoded  []byte
}

// NewStaticReader creates a StaticReader over source. The header is read
// lazily, on the first Read call, so constructing a StaticReader never
// fails on its own.
func NewStaticReader(source bytestream.ByteSource) *StaticReader {
	return &StaticReader{source: source}
}

func (r *StaticReader) prime() error {
	if r.primed {
		return nil
	}

	h, err := readHeader(r.source)
	if err != nil {
		return err
	}

	ctx, err := symctx.NewArrayContextFromFrequencies(h.freqs)
	if err != nil {
		return fmt.Errorf("bytecodec: rebuilding static context: %w", err)
	}

	r.dec = arith.NewDecoder(r.source, ctx)
	r.algo = h.algo
	r.checksum = h.checksum
	r.primed = true
	return nil
}

// Read decodes up to len(p) bytes into p, stopping early (with n <
// len(p), err == nil) once the end-of-stream symbol is decoded. Once the
// end-of-stream symbol has been consumed, every subsequent Read returns
// ErrAlreadyEnded without touching the underlying decoder: the guard the
// teacher's own byte-stream wrapper was missing on its interleaved path.
// Every decoded byte is also retained internally so a later VerifyChecksum
// call can recompute the digest over the whole message.
func (r *StaticReader) Read(p []byte) (int, error) {
	if r.ended {
		return 0, ErrAlreadyEnded
	}

	if err := r.prime(); err != nil {
		return 0, err
	}

	n := 0

	for n < len(p) {
		s, err := r.dec.ReadSymbol()

		if err != nil {
			return n, fmt.Errorf("bytecodec: decoding byte: %w", err)
		}

		if s == EOS {
			r.ended = true
			return n, nil
		}

		p[n] = byte(s)
		r.decoded = append(r.decoded, byte(s))
		n++
	}

	return n, nil
}

// Ended reports whether the end-of-stream symbol has already been decoded.
// A caller reading in a fixed-size-buffer loop should stop calling Read as
// soon as this is true, rather than waiting for a zero-byte Read, since a
// final Read can legitimately return n > 0 and Ended() == true together.
func (r *StaticReader) Ended() bool { return r.ended }

// HasChecksum reports whether the header carries a checksum at all, and
// if so, which algorithm. Valid only after priming (i.e. after the first
// Read call); it returns ("", false) on a reader that hasn't read anything
// yet.
func (r *StaticReader) HasChecksum() (name string, ok bool) {
	if !r.primed || r.algo == checksumNone {
		return "", false
	}

	return r.algo.name(), true
}

// VerifyChecksum recomputes the header's checksum algorithm over every
// byte decoded so far and reports whether it matches the digest stored in
// the header. It must be called after Ended reports true, since the
// digest covers the whole message. It returns an error if the header
// carries no checksum (HasChecksum reports false) or if the algorithm
// cannot be resolved.
func (r *StaticReader) VerifyChecksum() (bool, error) {
	name, ok := r.HasChecksum()
	if !ok {
		return false, fmt.Errorf("bytecodec: static stream has no stored checksum")
	}

	h, err := checksum.New(name)
	if err != nil {
		return false, fmt.Errorf("bytecodec: resolving checksum algorithm: %w", err)
	}

	return h.Sum(r.decoded) == r.checksum, nil
}

// Finalize drains the synchronization trailer from source. It must be
// called after the end-of-stream symbol has been read (i.e. once Ended
// returns true).
func (r *StaticReader) Finalize(closeSource bool) error {
	return r.dec.Finalize(closeSource)
}
