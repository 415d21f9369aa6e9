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
	"encoding/binary"
	"fmt"

	"github.com/arcodec/arcodec/bytestream"
)

// presenceBitmapBytes holds one bit per alphabet symbol, the byte-oriented
// analogue of the teacher's EncodeAlphabet partial-alphabet presence masks.
const presenceBitmapBytes = (AlphabetSize + 7) / 8

// checksumAlgo identifies which checksum.Hash (if any) a static-mode
// header carries, so a StaticReader knows how to recompute and compare
// the digest for --verify-checksum without the caller having to say which
// algorithm was used to encode the file.
type checksumAlgo byte

const (
	checksumNone checksumAlgo = iota
	checksumXXHash64
	checksumSipHash
	checksumBlake2b
)

func checksumAlgoFromName(name string) (checksumAlgo, error) {
	switch name {
	case "":
		return checksumNone, nil
	case "none":
		return checksumNone, nil
	case "xxhash64":
		return checksumXXHash64, nil
	case "siphash":
		return checksumSipHash, nil
	case "blake2b":
		return checksumBlake2b, nil
	default:
		return checksumNone, fmt.Errorf("bytecodec: unknown checksum algorithm %q", name)
	}
}

func (a checksumAlgo) name() string {
	switch a {
	case checksumXXHash64:
		return "xxhash64"
	case checksumSipHash:
		return "siphash"
	case checksumBlake2b:
		return "blake2b"
	default:
		return "none"
	}
}

// header bundles everything writeHeader/readHeader exchange: the static
// context's frequency table plus the optional whole-message checksum.
type header struct {
	freqs    []uint64
	algo     checksumAlgo
	checksum uint64
}

// writeHeader emits a self-describing static-mode header: one checksum
// algorithm byte, an 8-byte big-endian digest (zero when algo is
// checksumNone), a presence bitmap over the 257-symbol alphabet, then one
// varint frequency per present symbol in increasing symbol order.
func writeHeader(sink bytestream.ByteSink, h header) error {
	if err := sink.WriteByte(byte(h.algo)); err != nil {
		return fmt.Errorf("bytecodec: writing header checksum algorithm: %w", err)
	}

	var digestBuf [8]byte
	binary.BigEndian.PutUint64(digestBuf[:], h.checksum)

	for _, b := range digestBuf {
		if err := sink.WriteByte(b); err != nil {
			return fmt.Errorf("bytecodec: writing header checksum digest: %w", err)
		}
	}

	var bitmap [presenceBitmapBytes]byte

	for s, f := range h.freqs {
		if f > 0 {
			bitmap[s>>3] |= 1 << uint(s&7)
		}
	}

	for _, b := range bitmap {
		if err := sink.WriteByte(b); err != nil {
			return fmt.Errorf("bytecodec: writing header bitmap: %w", err)
		}
	}

	for s, f := range h.freqs {
		if f > 0 {
			if err := writeVarInt(sink, f); err != nil {
				return fmt.Errorf("bytecodec: writing header frequency for symbol %d: %w", s, err)
			}
		}
	}

	return nil
}

// readHeader reads a header written by writeHeader.
func readHeader(source bytestream.ByteSource) (header, error) {
	algoByte, err := source.ReadByte()
	if err != nil {
		return header{}, fmt.Errorf("%w: reading checksum algorithm: %v", ErrTruncatedHeader, err)
	}

	var digestBuf [8]byte
	for i := range digestBuf {
		b, err := source.ReadByte()

		if err != nil {
			return header{}, fmt.Errorf("%w: reading checksum digest byte %d: %v", ErrTruncatedHeader, i, err)
		}

		digestBuf[i] = b
	}

	var bitmap [presenceBitmapBytes]byte

	for i := range bitmap {
		b, err := source.ReadByte()

		if err != nil {
			return header{}, fmt.Errorf("%w: reading bitmap byte %d: %v", ErrTruncatedHeader, i, err)
		}

		bitmap[i] = b
	}

	freqs := make([]uint64, AlphabetSize)

	for s := 0; s < AlphabetSize; s++ {
		if bitmap[s>>3]&(1<<uint(s&7)) == 0 {
			continue
		}

		f, err := readVarInt(source)

		if err != nil {
			return header{}, fmt.Errorf("%w: reading frequency for symbol %d: %v", ErrTruncatedHeader, s, err)
		}

		freqs[s] = f
	}

	return header{
		freqs:    freqs,
		algo:     checksumAlgo(algoByte),
		checksum: binary.BigEndian.Uint64(digestBuf[:]),
	}, nil
}
