/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// fileConfig mirrors the subset of command-line options that can also be
// supplied via --config=, so a caller can check a repeatable invocation
// into a file instead of retyping flags. Frequencies, when present,
// supplies a static-mode frequency table directly instead of having
// StaticWriter derive one from the input, for advanced or reproducible
// encoding runs.
type fileConfig struct {
	Model       string   `json:"model"`
	Input       string   `json:"input"`
	Output      string   `json:"output"`
	Verbose     bool     `json:"verbose"`
	Checksum    string   `json:"checksum"`
	Frequencies []uint64 `json:"frequencies"`
}

// loadConfig reads a YAML config file and decodes it into a fileConfig.
// sigs.k8s.io/yaml round-trips through encoding/json so the same struct
// tags serve both formats.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("arcodec: reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("arcodec: parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// applyConfig fills in any of opts's zero-valued fields from cfg, letting
// explicit command-line flags take precedence over the config file.
func applyConfig(opts *options, cfg fileConfig) {
	if opts.model == "" {
		opts.model = cfg.Model
	}
	if opts.input == "" {
		opts.input = cfg.Input
	}
	if opts.output == "" {
		opts.output = cfg.Output
	}
	if !opts.verboseSet {
		opts.verbose = cfg.Verbose
	}
	if opts.checksum == "" {
		opts.checksum = cfg.Checksum
	}
	if opts.frequencies == nil {
		opts.frequencies = cfg.Frequencies
	}
}
