// Copyright 2026 The Routeway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package routefile loads declarative route tables from YAML and builds a
// warmed-up routeway.RouteList.
//
// A route file is a list of entries. An entry either declares a route:
//
//	routes:
//	  - mask: <presenter>/<action>[/<id \d+>]
//	    name: detail
//	    defaults:
//	      action: default
//	    constants:
//	      module: shop
//	    patterns:
//	      id: \d{1,6}
//	    filters:
//	      presenter: dashed
//	    one_way: false
//
// or opens a scoped section holding nested entries:
//
//	  - domain: "%sld%.example.com"
//	    routes:
//	      - mask: <presenter>
//	  - path: /admin
//	    routes:
//	      - mask: <presenter>/<action>
//
// Filters cannot be expressed in YAML; they are registered by name with
// WithFilter and referenced from the file.
package routefile

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/routeway/routeway"
)

type filterPair struct {
	in  routeway.FilterIn
	out routeway.FilterOut
}

// Option configures loading.
type Option func(*config)

type config struct {
	filters  map[string]filterPair
	listOpts []routeway.ListOption
}

// WithFilter registers a named filter pair that route entries can
// reference in their "filters" section. Either direction may be nil.
func WithFilter(name string, in routeway.FilterIn, out routeway.FilterOut) Option {
	return func(c *config) {
		if c.filters == nil {
			c.filters = make(map[string]filterPair)
		}
		c.filters[name] = filterPair{in: in, out: out}
	}
}

// WithListOptions passes options through to the root RouteList.
func WithListOptions(opts ...routeway.ListOption) Option {
	return func(c *config) {
		c.listOpts = append(c.listOpts, opts...)
	}
}

type entry struct {
	Mask      string            `yaml:"mask"`
	Name      string            `yaml:"name"`
	OneWay    bool              `yaml:"one_way"`
	Defaults  map[string]any    `yaml:"defaults"`
	Constants map[string]any    `yaml:"constants"`
	Patterns  map[string]string `yaml:"patterns"`
	Filters   map[string]string `yaml:"filters"`

	Domain string  `yaml:"domain"`
	Path   string  `yaml:"path"`
	Routes []entry `yaml:"routes"`
}

type file struct {
	Routes []entry `yaml:"routes"`
}

// Load reads a YAML route table and builds a warmed-up RouteList.
func Load(r io.Reader, opts ...Option) (*routeway.RouteList, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("routefile: read: %w", err)
	}
	return Parse(data, opts...)
}

// Parse builds a warmed-up RouteList from YAML bytes.
func Parse(data []byte, opts ...Option) (*routeway.RouteList, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("routefile: parse: %w", err)
	}

	list := routeway.NewRouteList(cfg.listOpts...)
	if err := addEntries(list, f.Routes, &cfg); err != nil {
		return nil, err
	}
	list.WarmupCache()
	return list, nil
}

func addEntries(list *routeway.RouteList, entries []entry, cfg *config) error {
	for i, e := range entries {
		switch {
		case e.Mask != "" && (e.Domain != "" || e.Path != "" || len(e.Routes) > 0):
			return fmt.Errorf("routefile: entry %d: mask and scoped section are mutually exclusive", i)
		case e.Mask != "":
			if err := addRoute(list, e, cfg); err != nil {
				return fmt.Errorf("routefile: entry %d: %w", i, err)
			}
		case e.Domain != "" && e.Path != "":
			return fmt.Errorf("routefile: entry %d: domain and path are mutually exclusive; nest them instead", i)
		case e.Domain != "":
			if err := addEntries(list.WithDomain(e.Domain), e.Routes, cfg); err != nil {
				return err
			}
		case e.Path != "":
			if err := addEntries(list.WithPath(e.Path), e.Routes, cfg); err != nil {
				return err
			}
		default:
			return fmt.Errorf("routefile: entry %d: needs a mask, domain or path", i)
		}
	}
	return nil
}

func addRoute(list *routeway.RouteList, e entry, cfg *config) error {
	metadata := make(routeway.Metadata)
	param := func(name string) routeway.Param { return metadata[name] }

	for name, v := range e.Defaults {
		p := param(name)
		p.Default = v
		metadata[name] = p
	}
	for name, v := range e.Constants {
		p := param(name)
		p.Value = v
		metadata[name] = p
	}
	for name, pat := range e.Patterns {
		p := param(name)
		p.Pattern = pat
		metadata[name] = p
	}
	for name, filterName := range e.Filters {
		pair, ok := cfg.filters[filterName]
		if !ok {
			return fmt.Errorf("unknown filter %q for parameter %q", filterName, name)
		}
		p := param(name)
		p.FilterIn = pair.in
		p.FilterOut = pair.out
		metadata[name] = p
	}

	var opts []routeway.RouteOption
	if e.Name != "" {
		opts = append(opts, routeway.WithName(e.Name))
	}

	route, err := routeway.NewRoute(e.Mask, metadata, opts...)
	if err != nil {
		return err
	}
	if e.OneWay {
		list.Add(route, routeway.OneWay)
	} else {
		list.Add(route)
	}
	return nil
}
