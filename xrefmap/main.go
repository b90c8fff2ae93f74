// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// xrefmap builds a cross-reference table linking GO annotations to UniProt
// accessions, their UniRef100 cluster representatives and the PubMed
// literature that SwissProt cites as experimental evidence for them.
//
// The table is built in three phases that may be run separately, each
// writing a table read by the next:
//
//	xrefmap phase1 -a goa.tsv -i go2uniprot.tsv
//	xrefmap phase2 --idmap idmapping_selected.tab.gz
//	xrefmap phase3 --idmap idmapping_selected.tab.gz --sprot uniprot_sprot.dat.gz --sprot uniprot_trembl.dat.gz
//
// or together with the build command. The subset commands reduce the
// UniRef100 FASTA release to the clusters with experimental support, and
// the stats command summarizes a finished table.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/biogo/xrefmap/config"
	"github.com/biogo/xrefmap/xref"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "xrefmap: %v\n", err)
		return 1
	}
	return 0
}

// options holds the state shared by all commands.
type options struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:           "xrefmap",
		Short:         "Build the GO/UniProt/UniRef100 evidence cross-reference table",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.init(cmd.ErrOrStderr())
		},
	}
	cmd.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newPhaseCmd(o, "phase1", "Join GO annotations to UniProt accessions", phase1Inputs, (*xref.Builder).Phase1),
		newPhaseCmd(o, "phase2", "Join UniProt accessions to UniRef100 representatives", phase2Inputs, (*xref.Builder).Phase2),
		newPhaseCmd(o, "phase3", "Join SwissProt evidence and backfill unannotated accessions", phase3Inputs, (*xref.Builder).Phase3),
		newPhaseCmd(o, "build", "Run all three phases", buildInputs, (*xref.Builder).Build),
		newSubsetCmd(o),
		newStatsCmd(o),
	)
	return cmd
}

func (o *options) init(stderr io.Writer) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q", o.logLevel)
	}
	o.log = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if o.configPath == "" {
		o.cfg = config.Default()
		return nil
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.log.Debug("loaded configuration", "path", o.configPath)
	return nil
}
