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

	"github.com/arcodec/arcodec/adaptive"
	"github.com/arcodec/arcodec/arith"
	"github.com/arcodec/arcodec/bytestream"
)

// StreamWriter entropy-codes bytes one at a time under a live order-1
// ByteHistoryContext that starts uniform and adapts toward the data as it
// goes, so no header or buffering pass is needed. The matching
// StreamReader must be constructed with a freshly built ByteHistoryContext
// of its own: the two stay in sync because both sides apply the identical
// Observe call after every symbol.
type StreamWriter struct {
	enc    *arith.Encoder
	model  *adaptive.ByteHistoryContext
	closed bool
}

// NewStreamWriter creates a StreamWriter over sink.
func NewStreamWriter(sink bytestream.ByteSink) (*StreamWriter, error) {
	model, err := adaptive.NewByteHistoryContext()
	if err != nil {
		return nil, err
	}

	return &StreamWriter{enc: arith.NewEncoder(sink, model), model: model}, nil
}

// Write encodes every byte of p in turn.
func (w *StreamWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrAlreadyClosed
	}

	for i, b := range p {
		if err := w.enc.WriteSymbol(int64(b)); err != nil {
			return i, fmt.Errorf("bytecodec: encoding byte: %w", err)
		}

		if err := w.model.Observe(b); err != nil {
			return i + 1, fmt.Errorf("bytecodec: updating stream model: %w", err)
		}
	}

	return len(p), nil
}

// Close encodes the end-of-stream symbol and finalizes the encoder. If
// closeSink is true the sink is closed afterward. The end-of-stream symbol
// is never fed to the model's Observe: it has no byte representation and
// the stream is ending anyway.
func (w *StreamWriter) Close(closeSink bool) error {
	if w.closed {
		return ErrAlreadyClosed
	}

	w.closed = true

	if err := w.enc.WriteSymbol(EOS); err != nil {
		return fmt.Errorf("bytecodec: encoding end-of-stream symbol: %w", err)
	}

	return w.enc.Finalize(closeSink)
}

// StreamReader decodes a message written by StreamWriter.
type StreamReader struct {
	dec   *arith.Decoder
	model *adaptive.ByteHistoryContext
	ended bool
}

// NewStreamReader creates a StreamReader over source.
func NewStreamReader(source bytestream.ByteSource) (*StreamReader, error) {
	model, err := adaptive.NewByteHistoryContext()
	if err != nil {
		return nil, err
	}

	return &StreamReader{dec: arith.NewDecoder(source, model), model: model}, nil
}

// Read decodes up to len(p) bytes into p, stopping early once the
// end-of-stream symbol is decoded. Once consumed, every subsequent Read
// returns ErrAlreadyEnded without touching the underlying decoder.
func (r *StreamReader) Read(p []byte) (int, error) {
	if r.ended {
		return 0, ErrAlreadyEnded
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

		if err := r.model.Observe(byte(s)); err != nil {
			return n, fmt.Errorf("bytecodec: updating stream model: %w", err)
		}

		p[n] = byte(s)
		n++
	}

	return n, nil
}

// Ended reports whether the end-of-stream symbol has already been decoded.
func (r *StreamReader) Ended() bool { return r.ended }

// Finalize drains the synchronization trailer from the underlying source.
func (r *StreamReader) Finalize(closeSource bool) error {
	return r.dec.Finalize(closeSource)
}
