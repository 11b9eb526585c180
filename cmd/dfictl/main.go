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

// Command dfictl parses a type descriptor, prints its layout, and
// round-trips a zero-valued instance of it through the JSON and AVRO
// codecs. It exists as a smoke-test harness and usage example, not a
// production tool.
package main

import (
	"flag"
	"fmt"
	"os"

	pkgerrors "github.com/pkg/errors"

	"github.com/apache/celix-sub005/codec/avro"
	codecjson "github.com/apache/celix-sub005/codec/json"
	"github.com/apache/celix-sub005/dfi/types"
)

func main() {
	descriptor := flag.String("descriptor", "", "type descriptor string, e.g. \"{II a b}\"")
	name := flag.String("name", "", "name to assign the parsed type")
	flag.Parse()

	if err := run(*descriptor, *name); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(descriptor, name string) error {
	if descriptor == "" {
		return pkgerrors.New("-descriptor is required")
	}

	t, err := types.ParseString(descriptor, name, nil)
	if err != nil {
		return pkgerrors.Wrap(err, "parsing descriptor")
	}

	fmt.Printf("parsed type %s (size=%d align=%d)\n", t.Kind, t.Size(), t.Align())
	types.Print(os.Stdout, t)

	inst := types.Alloc(t)

	data, err := codecjson.Serialize(t, inst)
	if err != nil {
		return pkgerrors.Wrap(err, "serializing to JSON")
	}
	fmt.Printf("json: %s\n", data)

	if _, err := codecjson.Deserialize(t, data); err != nil {
		return pkgerrors.Wrap(err, "deserializing from JSON")
	}

	bin, err := avro.Serialize(t, inst)
	if err != nil {
		return pkgerrors.Wrap(err, "serializing to AVRO binary")
	}
	fmt.Printf("avro: %d bytes\n", len(bin))

	if _, err := avro.Deserialize(t, bin); err != nil {
		return pkgerrors.Wrap(err, "deserializing from AVRO binary")
	}

	schema, err := avro.GenerateSchema(t)
	if err != nil {
		return pkgerrors.Wrap(err, "generating AVRO schema")
	}
	fmt.Printf("schema: %s\n", schema)

	return nil
}
