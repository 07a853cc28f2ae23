// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package query builds URL query strings for the storefront API list endpoints.

It wraps [url.Values] with typed, skip-if-zero setters so that callers only
send the parameters they actually care about — the API treats absent and
default parameters identically.
*/
package query

import (
	"net/url"
	"strconv"
)

// Params accumulates query parameters. The zero value is ready to use.
type Params struct {
	values url.Values
}

// ensure lazily initializes the underlying values map.
func (p *Params) ensure() {
	if p.values == nil {
		p.values = url.Values{}
	}
}

// Set adds a string parameter, skipping empty values.
func (p *Params) Set(key, value string) *Params {
	if value != "" {
		p.ensure()
		p.values.Set(key, value)
	}
	return p
}

// SetInt adds an integer parameter, skipping zero values.
func (p *Params) SetInt(key string, value int) *Params {
	if value != 0 {
		p.ensure()
		p.values.Set(key, strconv.Itoa(value))
	}
	return p
}

// SetBool adds a boolean parameter. Nil means "not specified" and is skipped;
// an explicit false is still sent, matching the API's tri-state filters.
func (p *Params) SetBool(key string, value *bool) *Params {
	if value != nil {
		p.ensure()
		p.values.Set(key, strconv.FormatBool(*value))
	}
	return p
}

// Encode returns the "?key=value" suffix, or the empty string when no
// parameters were set.
func (p *Params) Encode() string {
	if p.values == nil || len(p.values) == 0 {
		return ""
	}
	return "?" + p.values.Encode()
}
