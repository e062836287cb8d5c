/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package jsonx

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Kind is the JSON type of a Node.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

var kindNames = [...]string{
	Null:   "null",
	Bool:   "bool",
	Number: "number",
	String: "string",
	Array:  "array",
	Object: "object",
}

// String returns the lowercase JSON name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ErrSyntax is returned by Parse for malformed input.
var ErrSyntax = errors.New("jsonx: syntax error")

// Member is a single name/value pair of an object node, in input order.
type Member struct {
	Name  string
	Value *Node
}

// Node is an immutable, parse-once-read-many JSON tree node.
// A nil *Node behaves like a JSON null.
type Node struct {
	kind    Kind
	b       bool
	text    string // number literal or string value
	elems   []*Node
	members []Member
}

// Parse reads exactly one JSON value from data.
func Parse(data []byte) (*Node, error) {
	return Read(bytes.NewReader(data))
}

// Read reads exactly one JSON value from r. Trailing non-space input is an error.
func Read(r io.Reader) (*Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	n, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.Wrap(ErrSyntax, "trailing data after top-level value")
	}
	return n, nil
}

func parseValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(ErrSyntax, err.Error())
	}
	return parseToken(dec, tok)
}

func parseToken(dec *json.Decoder, tok json.Token) (*Node, error) {
	switch t := tok.(type) {
	case nil:
		return &Node{kind: Null}, nil
	case bool:
		return &Node{kind: Bool, b: t}, nil
	case json.Number:
		return &Node{kind: Number, text: t.String()}, nil
	case string:
		return &Node{kind: String, text: t}, nil
	case json.Delim:
		switch t {
		case '[':
			n := &Node{kind: Array}
			for dec.More() {
				e, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				n.elems = append(n.elems, e)
			}
			if _, err := dec.Token(); err != nil {
				return nil, errors.Wrap(ErrSyntax, err.Error())
			}
			return n, nil
		case '{':
			n := &Node{kind: Object}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, errors.Wrap(ErrSyntax, err.Error())
				}
				name, ok := kt.(string)
				if !ok {
					return nil, errors.Wrapf(ErrSyntax, "object key %v is not a string", kt)
				}
				v, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				n.members = append(n.members, Member{Name: name, Value: v})
			}
			if _, err := dec.Token(); err != nil {
				return nil, errors.Wrap(ErrSyntax, err.Error())
			}
			return n, nil
		}
	}
	return nil, errors.Wrapf(ErrSyntax, "unexpected token %v", tok)
}

// Kind reports the JSON type of n.
func (n *Node) Kind() Kind {
	if n == nil {
		return Null
	}
	return n.kind
}

func (n *Node) IsNull() bool   { return n.Kind() == Null }
func (n *Node) IsBool() bool   { return n.Kind() == Bool }
func (n *Node) IsNumber() bool { return n.Kind() == Number }
func (n *Node) IsString() bool { return n.Kind() == String }
func (n *Node) IsArray() bool  { return n.Kind() == Array }
func (n *Node) IsObject() bool { return n.Kind() == Object }

// Bool returns the boolean value; false for other kinds.
func (n *Node) Bool() bool {
	return n.Kind() == Bool && n.b
}

// Str returns the string value; "" for other kinds.
func (n *Node) Str() string {
	if n.Kind() != String {
		return ""
	}
	return n.text
}

// Literal returns the raw number literal; "" for other kinds.
func (n *Node) Literal() string {
	if n.Kind() != Number {
		return ""
	}
	return n.text
}

// Int parses the number as a signed integer. Fractional or exponent literals fail.
func (n *Node) Int() (int64, error) {
	return strconv.ParseInt(n.Literal(), 10, 64)
}

// Uint parses the number as an unsigned integer.
func (n *Node) Uint() (uint64, error) {
	return strconv.ParseUint(n.Literal(), 10, 64)
}

// Float parses the number with the given bit size (32 or 64).
func (n *Node) Float(bitSize int) (float64, error) {
	return strconv.ParseFloat(n.Literal(), bitSize)
}

// Len returns the number of elements (array) or members (object).
func (n *Node) Len() int {
	switch n.Kind() {
	case Array:
		return len(n.elems)
	case Object:
		return len(n.members)
	}
	return 0
}

// Elems returns the array elements. The slice must not be modified.
func (n *Node) Elems() []*Node {
	if n.Kind() != Array {
		return nil
	}
	return n.elems
}

// Members returns the object members in input order. The slice must not be modified.
func (n *Node) Members() []Member {
	if n.Kind() != Object {
		return nil
	}
	return n.members
}

// Member returns the first member with the given name.
func (n *Node) Member(name string) (*Node, bool) {
	for _, m := range n.Members() {
		if m.Name == name {
			return m.Value, true
		}
	}
	return nil, false
}

// Equal reports whether two trees hold the same JSON data. Object members are
// compared by name regardless of order; numbers are compared by value.
func Equal(a, b *Node) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case Null:
		return true
	case Bool:
		return a.b == b.b
	case String:
		return a.text == b.text
	case Number:
		if a.text == b.text {
			return true
		}
		x, err1 := a.Float(64)
		y, err2 := b.Float(64)
		return err1 == nil && err2 == nil && x == y
	case Array:
		if len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if !Equal(a.elems[i], b.elems[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(a.members) != len(b.members) {
			return false
		}
		for _, m := range a.members {
			o, ok := b.Member(m.Name)
			if !ok || !Equal(m.Value, o) {
				return false
			}
		}
		return true
	}
	return false
}
