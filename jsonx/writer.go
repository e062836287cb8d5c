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
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var (
	// ErrUnbalanced is returned when writer calls do not form a well-nested document.
	ErrUnbalanced = errors.New("jsonx: unbalanced writer calls")
	// ErrUnsupportedValue is returned for numbers JSON cannot represent (NaN, Inf).
	ErrUnsupportedValue = errors.New("jsonx: unsupported value")
)

type frame struct {
	object bool
	count  int  // values written in this container
	key    bool // object: a key was written and awaits its value
}

// Writer is an append-only streaming JSON writer. Calls must be strictly
// balanced; the first misuse is recorded and every later call is a no-op.
type Writer struct {
	buf    bytes.Buffer
	indent string
	stack  []frame
	done   bool
	err    error
}

// NewWriter returns a writer. A non-empty indent enables pretty printing.
func NewWriter(indent string) *Writer {
	return &Writer{indent: indent}
}

// Err returns the first error recorded by the writer.
func (w *Writer) Err() error { return w.err }

// Bytes returns the document, or the first error, or ErrUnbalanced if a
// container is still open or nothing was written.
func (w *Writer) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if len(w.stack) != 0 || !w.done {
		return nil, errors.Wrap(ErrUnbalanced, "document is incomplete")
	}
	return w.buf.Bytes(), nil
}

func (w *Writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *Writer) newline(depth int) {
	if w.indent == "" {
		return
	}
	w.buf.WriteByte('\n')
	w.buf.WriteString(strings.Repeat(w.indent, depth))
}

// beforeValue validates position and emits separators.
func (w *Writer) beforeValue() bool {
	if w.err != nil {
		return false
	}
	if len(w.stack) == 0 {
		if w.done {
			w.fail(errors.Wrap(ErrUnbalanced, "second top-level value"))
			return false
		}
		return true
	}
	top := &w.stack[len(w.stack)-1]
	if top.object {
		if !top.key {
			w.fail(errors.Wrap(ErrUnbalanced, "object value without key"))
			return false
		}
		top.key = false
		top.count++
		return true
	}
	if top.count > 0 {
		w.buf.WriteByte(',')
	}
	w.newline(len(w.stack))
	top.count++
	return true
}

func (w *Writer) afterValue() {
	if len(w.stack) == 0 {
		w.done = true
	}
}

// Key writes an object member name.
func (w *Writer) Key(name string) {
	if w.err != nil {
		return
	}
	if len(w.stack) == 0 || !w.stack[len(w.stack)-1].object {
		w.fail(errors.Wrap(ErrUnbalanced, "key outside object"))
		return
	}
	top := &w.stack[len(w.stack)-1]
	if top.key {
		w.fail(errors.Wrap(ErrUnbalanced, "key after key"))
		return
	}
	if top.count > 0 {
		w.buf.WriteByte(',')
	}
	w.newline(len(w.stack))
	writeString(&w.buf, name)
	w.buf.WriteByte(':')
	if w.indent != "" {
		w.buf.WriteByte(' ')
	}
	top.key = true
}

// StartObject opens an object.
func (w *Writer) StartObject() {
	if !w.beforeValue() {
		return
	}
	w.buf.WriteByte('{')
	w.stack = append(w.stack, frame{object: true})
}

// EndObject closes the innermost object.
func (w *Writer) EndObject() { w.end(true, '}') }

// StartArray opens an array.
func (w *Writer) StartArray() {
	if !w.beforeValue() {
		return
	}
	w.buf.WriteByte('[')
	w.stack = append(w.stack, frame{})
}

// EndArray closes the innermost array.
func (w *Writer) EndArray() { w.end(false, ']') }

func (w *Writer) end(object bool, c byte) {
	if w.err != nil {
		return
	}
	if len(w.stack) == 0 {
		w.fail(errors.Wrap(ErrUnbalanced, "end without start"))
		return
	}
	top := w.stack[len(w.stack)-1]
	if top.object != object || top.key {
		w.fail(errors.Wrap(ErrUnbalanced, "mismatched end"))
		return
	}
	w.stack = w.stack[:len(w.stack)-1]
	if top.count > 0 {
		w.newline(len(w.stack))
	}
	w.buf.WriteByte(c)
	w.afterValue()
}

// Null writes null.
func (w *Writer) Null() {
	if !w.beforeValue() {
		return
	}
	w.buf.WriteString("null")
	w.afterValue()
}

// Bool writes true or false.
func (w *Writer) Bool(v bool) {
	if !w.beforeValue() {
		return
	}
	w.buf.WriteString(strconv.FormatBool(v))
	w.afterValue()
}

// Int writes a signed integer.
func (w *Writer) Int(v int64) {
	if !w.beforeValue() {
		return
	}
	w.buf.WriteString(strconv.FormatInt(v, 10))
	w.afterValue()
}

// Uint writes an unsigned integer.
func (w *Writer) Uint(v uint64) {
	if !w.beforeValue() {
		return
	}
	w.buf.WriteString(strconv.FormatUint(v, 10))
	w.afterValue()
}

// Float writes v using the shortest representation for bitSize (32 or 64).
// Integral values keep a trailing ".0" so they read back as floating point.
func (w *Writer) Float(v float64, bitSize int) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		w.fail(errors.Wrapf(ErrUnsupportedValue, "%v", v))
		return
	}
	if !w.beforeValue() {
		return
	}
	s := strconv.FormatFloat(v, 'g', -1, bitSize)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	w.buf.WriteString(s)
	w.afterValue()
}

// String writes an escaped string.
func (w *Writer) String(v string) {
	if !w.beforeValue() {
		return
	}
	writeString(&w.buf, v)
	w.afterValue()
}

const hex = "0123456789abcdef"

// writeString escapes per RFC 8259; invalid UTF-8 becomes U+FFFD.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c >= 0x20 && c != '"' && c != '\\' {
				i++
				continue
			}
			buf.WriteString(s[start:i])
			switch c {
			case '"', '\\':
				buf.WriteByte('\\')
				buf.WriteByte(c)
			case '\n':
				buf.WriteString(`\n`)
			case '\r':
				buf.WriteString(`\r`)
			case '\t':
				buf.WriteString(`\t`)
			default:
				buf.WriteString(`\u00`)
				buf.WriteByte(hex[c>>4])
				buf.WriteByte(hex[c&0xf])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf.WriteString(s[start:i])
			buf.WriteString("\ufffd")
			i += size
			start = i
			continue
		}
		i += size
	}
	buf.WriteString(s[start:])
	buf.WriteByte('"')
}
