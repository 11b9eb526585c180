// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package avro implements the compact AVRO-subset binary codec (§4.8):
// zig-zag varint primitives, blocked sequence encoding, AVRO JSON
// schema generation, and a minimal object-container file writer.
package avro

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/apache/celix-sub005/errs"
)

// maxVarintBytes bounds a malformed/adversarial varint decode: 10
// bytes covers a full 64-bit value at 7 bits per byte.
const maxVarintBytes = 10

func encodeZigZag64(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63))
}

func decodeZigZag64(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// writeBool writes one byte, 0x00 or 0x01.
func writeBool(w io.Writer, b bool) error {
	v := byte(0)
	if b {
		v = 1
	}
	_, err := w.Write([]byte{v})
	return err
}

// readBool reads one byte and fails on any value other than 0x00/0x01.
func readBool(r io.Reader) (bool, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return false, errs.Wrap(errs.DecodeError, err, "reading bool")
	}
	switch buf[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errs.New(errs.DecodeError, "invalid bool byte 0x%02x", buf[0])
	}
}

// writeLong zig-zag/varint-encodes v.
func writeLong(w io.Writer, v int64) error {
	u := encodeZigZag64(v)
	var buf [maxVarintBytes]byte
	n := 0
	for {
		b := byte(u & 0x7f)
		u >>= 7
		if u != 0 {
			b |= 0x80
		}
		buf[n] = b
		n++
		if u == 0 {
			break
		}
	}
	_, err := w.Write(buf[:n])
	return err
}

// readLong decodes a zig-zag/varint-encoded long.
func readLong(r io.Reader) (int64, error) {
	var u uint64
	var shift uint
	var buf [1]byte
	for i := 0; i < maxVarintBytes; i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, errs.Wrap(errs.DecodeError, err, "reading varint")
		}
		u |= uint64(buf[0]&0x7f) << shift
		if buf[0]&0x80 == 0 {
			return decodeZigZag64(u), nil
		}
		shift += 7
	}
	return 0, errs.New(errs.DecodeError, "varint exceeds %d bytes", maxVarintBytes)
}

// writeFloat writes f as 4 little-endian IEEE-754 bytes.
func writeFloat(w io.Writer, f float32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(f))
	_, err := w.Write(buf[:])
	return err
}

func readFloat(r io.Reader) (float32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, errs.Wrap(errs.DecodeError, err, "reading float")
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[:])), nil
}

// writeDouble writes f as 8 little-endian IEEE-754 bytes.
func writeDouble(w io.Writer, f float64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
	_, err := w.Write(buf[:])
	return err
}

func readDouble(r io.Reader) (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, errs.Wrap(errs.DecodeError, err, "reading double")
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:])), nil
}

// writeString writes a long length prefix followed by s's raw bytes.
func writeString(w io.Writer, s string) error {
	if err := writeLong(w, int64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// writeBytes writes a long length prefix followed by b's raw bytes,
// the same framing writeString uses (AVRO's "bytes" and "string"
// primitives share an encoding).
func writeBytes(w io.Writer, b []byte) error {
	if err := writeLong(w, int64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func readString(r io.Reader) (string, error) {
	n, err := readLong(r)
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", errs.New(errs.DecodeError, "negative string length %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", errs.Wrap(errs.DecodeError, err, "reading string body")
	}
	return string(buf), nil
}
