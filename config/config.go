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

package config

import (
	"dirpx.dev/rfield/apis"
)

const (
	// DefaultIntMin and DefaultIntMax bound integer sliders without a declared range.
	DefaultIntMin = 0
	DefaultIntMax = 10
	// DefaultFloatMin and DefaultFloatMax bound float sliders without a declared range.
	DefaultFloatMin = 0.0
	DefaultFloatMax = 1.0
	// DefaultTypeKey is the envelope member holding a polymorphic subclass tag.
	DefaultTypeKey = "type"
	// DefaultDataKey is the envelope member holding the subclass's own fields.
	DefaultDataKey = "data"
	// DefaultIndent is used by Marshal for pretty output.
	DefaultIndent = "    "
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return Normalize(cfg)
}

// Normalize repairs a Config built by hand. Envelope keys must be usable and
// distinct, and slider ranges must not be inverted; offending settings fall
// back to their defaults. Indent is left alone: empty means compact.
func Normalize(cfg apis.Config) apis.Config {
	if cfg.TypeKey == "" || cfg.DataKey == "" || cfg.TypeKey == cfg.DataKey {
		cfg.TypeKey, cfg.DataKey = DefaultTypeKey, DefaultDataKey
	}
	if cfg.IntMin > cfg.IntMax {
		cfg.IntMin, cfg.IntMax = DefaultIntMin, DefaultIntMax
	}
	if cfg.FloatMin > cfg.FloatMax {
		cfg.FloatMin, cfg.FloatMax = DefaultFloatMin, DefaultFloatMax
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		IntMin:   DefaultIntMin,
		IntMax:   DefaultIntMax,
		FloatMin: DefaultFloatMin,
		FloatMax: DefaultFloatMax,
		TypeKey:  DefaultTypeKey,
		DataKey:  DefaultDataKey,
		Indent:   DefaultIndent,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithIntRange sets the default integer slider range.
// An inverted range is ignored.
func WithIntRange(min, max int) Option {
	return func(c *apis.Config) {
		if min > max {
			return
		}
		c.IntMin, c.IntMax = min, max
	}
}

// WithFloatRange sets the default float slider range.
// An inverted range is ignored.
func WithFloatRange(min, max float64) Option {
	return func(c *apis.Config) {
		if min > max {
			return
		}
		c.FloatMin, c.FloatMax = min, max
	}
}

// WithEnvelopeKeys sets the member names of polymorphic envelopes.
func WithEnvelopeKeys(typeKey, dataKey string) Option {
	return func(c *apis.Config) {
		c.TypeKey, c.DataKey = typeKey, dataKey
	}
}

// WithIndent sets the indentation of marshaled output; "" means compact.
func WithIndent(indent string) Option {
	return func(c *apis.Config) {
		c.Indent = indent
	}
}
