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

package avro

import (
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/apache/celix-sub005/errs"
)

var containerMagic = [4]byte{'O', 'b', 'j', 0x01}

// SaveFile writes a minimal AVRO object-container file to path, per
// §4.8.4: magic, a one-entry "avro.schema" metadata map, a random
// 16-byte sync marker, and a single data block holding payload.
func SaveFile(path string, schema string, payload []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.IoError, err, "creating container file %q", path)
	}
	defer f.Close()
	if err := WriteContainer(f, schema, payload); err != nil {
		return errs.Wrap(errs.IoError, err, "writing container file %q", path)
	}
	return nil
}

// WriteContainer writes the container format described above to w.
func WriteContainer(w io.Writer, schema string, payload []byte) error {
	if _, err := w.Write(containerMagic[:]); err != nil {
		return err
	}

	// Metadata map: one (key, value) pair block, then the terminator.
	if err := writeLong(w, 1); err != nil {
		return err
	}
	if err := writeString(w, "avro.schema"); err != nil {
		return err
	}
	if err := writeBytes(w, []byte(schema)); err != nil {
		return err
	}
	if err := writeLong(w, 0); err != nil {
		return err
	}

	sync := uuid.New()
	if _, err := w.Write(sync[:]); err != nil {
		return err
	}

	if err := writeLong(w, 1); err != nil {
		return err
	}
	if err := writeLong(w, int64(len(payload))); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	if _, err := w.Write(sync[:]); err != nil {
		return err
	}
	return nil
}
