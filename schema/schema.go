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

// Package schema exports declared field tables as YAML, for documentation and
// for diffing the wire schema between releases.
package schema

import (
	"reflect"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"dirpx.dev/rfield/apis"
	uref "dirpx.dev/rfield/utils/reflect"
)

// Document is the exported form of the field tables of one capability.
type Document struct {
	Capability string `yaml:"capability"`
	Types      []Type `yaml:"types"`
}

// Type is one declaring type and its fields in table order.
type Type struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Fields      []Field `yaml:"fields"`
}

// Describer is implemented by declaring types that document themselves in
// exported schemas.
type Describer interface {
	EntityDescription() string
}

// Field describes one table entry.
type Field struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Shape string `yaml:"shape"`
	// Elem names the declared type reached through pointers and containers.
	Elem string `yaml:"elem,omitempty"`
	// Enum lists the symbolic names of enumeration fields.
	Enum []string `yaml:"enum,omitempty"`
	// Subclasses lists the tags reachable through a polymorphic field, or
	// through the elements of a container of them.
	Subclasses []string       `yaml:"subclasses,omitempty"`
	Meta       map[string]any `yaml:"meta,omitempty"`
}

// lister is implemented by field registries that can enumerate their types.
type lister interface {
	Types(cap apis.Capability) []reflect.Type
}

// Build exports the tables of types for cap. With no types, every type the
// registry declares for cap is exported, sorted by name.
func Build(env *apis.Env, cap apis.Capability, types ...reflect.Type) (*Document, error) {
	if len(types) == 0 {
		l, ok := env.Fields.(lister)
		if !ok {
			return nil, errors.Errorf("schema: %T cannot list its types", env.Fields)
		}
		types = l.Types(cap)
	}

	doc := &Document{Capability: cap.String(), Types: make([]Type, 0, len(types))}
	for _, t := range types {
		tbl, err := env.Fields.Table(cap, t)
		if err != nil {
			return nil, errors.WithMessagef(err, "schema: %s", uref.Name(t))
		}
		out := Type{Name: uref.Name(t), Fields: make([]Field, 0, len(tbl.Fields()))}
		if d, ok := reflect.New(t).Interface().(Describer); ok {
			out.Description = d.EntityDescription()
		}
		for _, f := range tbl.Fields() {
			out.Fields = append(out.Fields, field(env, f))
		}
		doc.Types = append(doc.Types, out)
	}
	return doc, nil
}

// YAML renders Build's document.
func YAML(env *apis.Env, cap apis.Capability, types ...reflect.Type) ([]byte, error) {
	doc, err := Build(env, cap, types...)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

func field(env *apis.Env, f apis.Field) Field {
	out := Field{
		Name:  f.Name,
		Type:  uref.Name(f.Type),
		Shape: uref.Classify(f.Type).String(),
	}
	if named, err := uref.Normalize(f.Type); err == nil && named != f.Type {
		out.Elem = uref.Name(named)
	}
	if env.Enums != nil {
		if e, ok := env.Enums.Lookup(f.Type); ok {
			out.Shape = "enum"
			out.Enum = append([]string(nil), e.Names...)
		}
	}
	if base := polymorphicBase(f.Type); base != nil && env.Subclasses != nil {
		for _, e := range env.Subclasses.Entries(base) {
			out.Subclasses = append(out.Subclasses, e.Tag)
		}
	}
	if len(f.Meta) > 0 {
		out.Meta = make(map[string]any, len(f.Meta))
		for k, v := range f.Meta {
			out.Meta[string(k)] = v
		}
	}
	return out
}

// polymorphicBase returns the interface type held by t, looking through
// pointers and container elements.
func polymorphicBase(t reflect.Type) reflect.Type {
	for range uref.MaxUnwrap {
		switch t.Kind() {
		case reflect.Interface:
			return t
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Map:
			t = t.Elem()
		default:
			return nil
		}
	}
	return nil
}
