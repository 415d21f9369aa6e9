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

	"github.com/arcodec/arcodec/bytestream"
)

// writeVarInt writes value as a little-endian base-128 varint, one
// continuation bit per byte, the byte-stream analogue of the teacher's
// bitstream-oriented WriteVarInt.
func writeVarInt(sink bytestream.ByteSink, value uint64) error {
	for value >= 128 {
		if err := sink.WriteByte(byte(0x80 | (value & 0x7F))); err != nil {
			return fmt.Errorf("bytecodec: writing varint byte: %w", err)
		}

		value >>= 7
	}

	if err := sink.WriteByte(byte(value)); err != nil {
		return fmt.Errorf("bytecodec: writing varint byte: %w", err)
	}

	return nil
}

// readVarInt reads a varint written by writeVarInt.
func readVarInt(source bytestream.ByteSource) (uint64, error) {
	var result uint64
	var shift uint

	for {
		b, err := source.ReadByte()

		if err != nil {
			return 0, fmt.Errorf("bytecodec: reading varint byte: %w", err)
		}

		result |= uint64(b&0x7F) << shift

		if b < 128 {
			return result, nil
		}

		shift += 7
	}
}
