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

package types

import (
	"fmt"
	"io"
	"strings"
)

// Print writes a tree-shaped diagnostic rendering of t to w: one line
// per node, indentation showing nesting. A Simple line gives its Kind
// and descriptor character, other lines a descriptor-style marker ('t',
// '*', '[]', '{name}'), each with size and alignment; a Reference line
// names its target. For Complex, each field's name and offset precede
// the line of its type. This is a debugging aid, not a serialization
// format.
func Print(w io.Writer, t *Type) {
	printType(w, t, 0, "")
}

func printType(w io.Writer, t *Type, depth int, label string) {
	indent := strings.Repeat("  ", depth)
	name := t.Name
	if name == "" {
		name = "<anon>"
	}
	prefix := ""
	if label != "" {
		prefix = label + ": "
	}
	switch t.Kind {
	case KindSimple:
		fmt.Fprintf(w, "%s%s%s %c (size=%d align=%d)\n", indent, prefix, t.Kind, t.Descriptor(), t.Size(), t.Align())
	case KindText:
		fmt.Fprintf(w, "%s%st (size=%d align=%d)\n", indent, prefix, t.Size(), t.Align())
	case KindReference:
		fmt.Fprintf(w, "%s%sref -> %s\n", indent, prefix, t.TargetName)
	case KindTypedPointer:
		fmt.Fprintf(w, "%s%s* (size=%d align=%d)\n", indent, prefix, t.Size(), t.Align())
		printType(w, t.Elem, depth+1, "elem")
	case KindSequence:
		fmt.Fprintf(w, "%s%s[] (size=%d align=%d)\n", indent, prefix, t.Size(), t.Align())
		printType(w, t.Elem, depth+1, "elem")
	case KindComplex:
		fmt.Fprintf(w, "%s%s{%s} (size=%d align=%d)\n", indent, prefix, name, t.Size(), t.Align())
		for _, f := range t.Fields {
			fn := f.Name
			if fn == "" {
				fn = "<unnamed>"
			}
			fmt.Fprintf(w, "%s  field %s @%d:\n", indent, fn, f.Offset)
			printType(w, f.Type, depth+2, "")
		}
	}
}
