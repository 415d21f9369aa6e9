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

// Package bytecodec wraps the arith package's symbol-oriented codec with a
// byte-oriented stream interface: a fixed 257-symbol alphabet (byte values
// 0-255 plus a reserved end-of-stream symbol), so callers who just want to
// push bytes through an entropy coder don't have to manage SymbolContext
// plumbing themselves. This layer is peripheral to the core codec: arith
// never imports it.
package bytecodec

import "errors"

// AlphabetSize is the fixed alphabet used by every wrapper in this package:
// the 256 byte values plus one reserved end-of-stream symbol.
const AlphabetSize = 257

// EOS is the end-of-stream symbol written once by Close and used by the
// reader side to stop returning bytes.
const EOS = int64(256)

// ErrTruncatedHeader is returned by a StaticReader when the self-describing
// frequency header cannot be fully read.
var ErrTruncatedHeader = errors.New("bytecodec: truncated static header")

// ErrAlreadyClosed is returned by Write/Close calls made after Close has
// already run.
var ErrAlreadyClosed = errors.New("bytecodec: writer already closed")

// ErrAlreadyEnded is returned by Read calls made after the end-of-stream
// symbol has already been consumed. The teacher's byte-stream wrapper had a
// known bug here: its Read path could call into the underlying decoder
// again after _ended was set by an end-of-stream symbol read on a prior
// call, risking state corruption on the interleaved path. This wrapper sets
// ended before returning the partial buffer and guards every subsequent
// read against it, so a post-EOS Read always short-circuits here instead.
var ErrAlreadyEnded = errors.New("bytecodec: read past end-of-stream symbol")
