// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/biogo/xrefmap/xref"
)

// inputs is the set of input tables a phase command reads.
type inputs uint

const (
	annotationsInput inputs = 1 << iota
	indexInput
	idmapInput
	sprotInput
)

const (
	phase1Inputs = annotationsInput | indexInput
	phase2Inputs = idmapInput
	phase3Inputs = idmapInput | sprotInput
	buildInputs  = phase1Inputs | phase2Inputs | phase3Inputs
)

type phaseFlags struct {
	annotations string
	index       string
	idmap       string
	sprot       []string
	workDir     string
	output      string
}

func newPhaseCmd(o *options, use, short string, in inputs, run func(*xref.Builder) error) *cobra.Command {
	var f phaseFlags
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("work-dir") {
				o.cfg.WorkDir = f.workDir
			}
			if cmd.Flags().Changed("output") {
				o.cfg.Output = f.output
			}
			if err := o.cfg.Validate(); err != nil {
				return err
			}
			if err := os.MkdirAll(o.cfg.WorkDir, 0o755); err != nil {
				return err
			}
			return run(&xref.Builder{
				Annotations: f.annotations,
				Index:       f.index,
				IDMap:       f.idmap,
				FlatFiles:   f.sprot,

				Phase1Path: o.cfg.Phase1(),
				Phase2Path: o.cfg.Phase2(),
				Output:     o.cfg.Output,

				Columns:    o.cfg.Columns(),
				GOEvidence: o.cfg.GOA.Evidence,
				SwissProt:  o.cfg.SwissProtOptions(),

				Logger: o.log,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.workDir, "work-dir", "", "directory holding the intermediate tables (default from configuration)")
	flags.StringVarP(&f.output, "output", "o", "", "final cross-reference table (default from configuration)")
	if in&annotationsInput != 0 {
		flags.StringVarP(&f.annotations, "annotations", "a", "", "GO evidence annotation table")
		cmd.MarkFlagRequired("annotations")
	}
	if in&indexInput != 0 {
		flags.StringVarP(&f.index, "index", "i", "", "GO database accession to UniProt accession map")
		cmd.MarkFlagRequired("index")
	}
	if in&idmapInput != 0 {
		flags.StringVar(&f.idmap, "idmap", "", "UniProt idmapping table")
		cmd.MarkFlagRequired("idmap")
	}
	if in&sprotInput != 0 {
		flags.StringArrayVar(&f.sprot, "sprot", nil, "SwissProt or TrEMBL flat file, may be repeated; later files take precedence")
		cmd.MarkFlagRequired("sprot")
	}
	return cmd
}
