// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the settings of an xrefmap build.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/biogo/xrefmap/goa"
	"github.com/biogo/xrefmap/idmap"
	"github.com/biogo/xrefmap/sprot"
)

// Names of the intermediate tables written to the work directory.
const (
	Phase1Name = "phase_1.tsv"
	Phase2Name = "phase_2.tsv"
)

// IDMap holds the 0-based columns of the idmapping table.
type IDMap struct {
	Accession int `yaml:"accession"`
	GO        int `yaml:"go"`
	UniRef    int `yaml:"uniref"`
}

// GOA holds the accepted GO annotation evidence codes.
type GOA struct {
	Evidence []string `yaml:"evidence"`
}

// SwissProt holds the flat-file evidence codes.
type SwissProt struct {
	Reference string   `yaml:"reference"`
	Evidence  []string `yaml:"evidence"`
}

// Config is the configuration of a build.
type Config struct {
	IDMap     IDMap     `yaml:"idmap"`
	GOA       GOA       `yaml:"goa"`
	SwissProt SwissProt `yaml:"sprot"`

	// WorkDir holds the intermediate tables.
	WorkDir string `yaml:"work-dir"`

	// Output is the path of the final table.
	Output string `yaml:"output"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		IDMap: IDMap{
			Accession: idmap.DefaultColumns.Accession,
			GO:        idmap.DefaultColumns.GOTerms,
			UniRef:    idmap.DefaultColumns.UniRef,
		},
		GOA:       GOA{Evidence: append([]string(nil), goa.DefaultEvidence...)},
		SwissProt: SwissProt{Reference: sprot.DefaultReference, Evidence: append([]string(nil), sprot.DefaultEvidence...)},
		WorkDir:   ".",
		Output:    "map_file.tsv",
	}
}

// Load reads the YAML configuration file at path, merging it over the
// defaults. Unknown keys are an error. The result is validated.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a YAML configuration from r, merging it over the defaults.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(cfg)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// Validate returns an error describing every problem with c.
func (c *Config) Validate() error {
	var errs []error
	cols := map[string]int{
		"idmap.accession": c.IDMap.Accession,
		"idmap.go":        c.IDMap.GO,
		"idmap.uniref":    c.IDMap.UniRef,
	}
	for _, k := range []string{"idmap.accession", "idmap.go", "idmap.uniref"} {
		if cols[k] < 0 {
			errs = append(errs, fmt.Errorf("%s: negative column %d", k, cols[k]))
		}
	}
	if c.IDMap.Accession == c.IDMap.GO || c.IDMap.Accession == c.IDMap.UniRef || c.IDMap.GO == c.IDMap.UniRef {
		errs = append(errs, fmt.Errorf("idmap: columns must be distinct: %+v", c.IDMap))
	}
	if len(c.GOA.Evidence) == 0 {
		errs = append(errs, errors.New("goa.evidence: no evidence codes"))
	}
	if c.SwissProt.Reference == "" {
		errs = append(errs, errors.New("sprot.reference: empty evidence code"))
	}
	if len(c.SwissProt.Evidence) == 0 {
		errs = append(errs, errors.New("sprot.evidence: no evidence codes"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output: empty path"))
	}
	return errors.Join(errs...)
}

// Columns returns the idmapping columns.
func (c *Config) Columns() idmap.Columns {
	return idmap.Columns{Accession: c.IDMap.Accession, GOTerms: c.IDMap.GO, UniRef: c.IDMap.UniRef}
}

// SwissProtOptions returns the flat-file scanner options.
func (c *Config) SwissProtOptions() sprot.Options {
	return sprot.Options{Reference: c.SwissProt.Reference, Evidence: c.SwissProt.Evidence}
}

// Phase1 returns the path of the join 1 table.
func (c *Config) Phase1() string { return filepath.Join(c.WorkDir, Phase1Name) }

// Phase2 returns the path of the join 2 table.
func (c *Config) Phase2() string { return filepath.Join(c.WorkDir, Phase2Name) }
