// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/biogo/xrefmap/flatfile"
	"github.com/biogo/xrefmap/idmap"
	"github.com/biogo/xrefmap/sprot"
	"github.com/biogo/xrefmap/uniref"
	"github.com/biogo/xrefmap/xref"
)

type subsetFlags struct {
	fasta           string
	out             string
	representatives string
	clusters        string
}

func (f *subsetFlags) add(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.fasta, "fasta", "", "UniRef100 FASTA release")
	flags.StringVarP(&f.out, "out", "o", flatfile.Stdio, "subset FASTA output")
	flags.StringVar(&f.representatives, "representatives", "", "write the accepted representative accessions to this file")
	flags.StringVar(&f.clusters, "clusters", "", "write the cluster data of the written sequences to this file")
	cmd.MarkFlagRequired("fasta")
}

func newSubsetCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subset",
		Short: "Subset the UniRef100 FASTA release to clusters with experimental support",
	}
	cmd.AddCommand(newEvidenceSubsetCmd(o), newGOSubsetCmd(o))
	return cmd
}

func newEvidenceSubsetCmd(o *options) *cobra.Command {
	var (
		f          subsetFlags
		flatFiles  []string
		idmapPath  string
		accessions string
	)
	cmd := &cobra.Command{
		Use:   "evidence",
		Short: "Keep clusters whose members carry experimental evidence in SwissProt or TrEMBL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := o.log.With("stage", "subset-evidence")
			accs, err := evidenced(flatFiles, o.cfg.SwissProtOptions(), log)
			if err != nil {
				return err
			}
			if accessions != "" {
				if err := writeSet(accessions, accs); err != nil {
					return err
				}
			}
			reps, err := representatives(idmapPath, o.cfg.Columns(), accs)
			if err != nil {
				return err
			}
			log.Info("mapped accessions", "accessions", accs.Len(), "representatives", reps.Len())
			return f.subset(reps, log)
		},
	}
	f.add(cmd)
	cmd.Flags().StringArrayVar(&flatFiles, "sprot", nil, "SwissProt or TrEMBL flat file, may be repeated")
	cmd.Flags().StringVar(&idmapPath, "idmap", "", "UniProt idmapping table")
	cmd.Flags().StringVar(&accessions, "accessions", "", "write the accepted UniProt accessions to this file")
	cmd.MarkFlagRequired("sprot")
	cmd.MarkFlagRequired("idmap")
	return cmd
}

func newGOSubsetCmd(o *options) *cobra.Command {
	var (
		f     subsetFlags
		table string
	)
	cmd := &cobra.Command{
		Use:   "go",
		Short: "Keep clusters whose representatives appear in a cross-reference table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := o.log.With("stage", "subset-go")
			reps, err := tableRepresentatives(table)
			if err != nil {
				return err
			}
			log.Info("read cross-reference table", "path", table, "representatives", reps.Len())
			return f.subset(reps, log)
		},
	}
	f.add(cmd)
	cmd.Flags().StringVar(&table, "table", "", "cross-reference table built by xrefmap build")
	cmd.MarkFlagRequired("table")
	return cmd
}

// evidenced returns the accessions of the flat-file records that carry
// any of the configured evidence codes.
func evidenced(paths []string, opts sprot.Options, log *slog.Logger) (*uniref.Set, error) {
	accs := &uniref.Set{}
	for _, path := range paths {
		r, err := flatfile.Open(path)
		if err != nil {
			return nil, err
		}
		var n, kept int
		sc := sprot.NewScanner(r, opts)
		for sc.Next() {
			n++
			rec := sc.Record()
			if !rec.Evidenced {
				continue
			}
			kept++
			for _, acc := range rec.Accessions {
				accs.Insert(acc)
			}
		}
		r.Close()
		if err := sc.Error(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		log.Info("scanned flat file", "path", path, "records", n, "evidenced", kept)
	}
	return accs, nil
}

// representatives returns the UniRef100 representatives of accs.
func representatives(path string, cols idmap.Columns, accs *uniref.Set) (*uniref.Set, error) {
	r, err := flatfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	t, err := idmap.Read(r, cols, accs.Has)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	reps := &uniref.Set{}
	for _, e := range t {
		if e.HasRepresentative() {
			reps.Insert(e.Representative)
		}
	}
	return reps, nil
}

// tableRepresentatives returns the UniRef100 representatives named in a
// cross-reference table.
func tableRepresentatives(path string) (*uniref.Set, error) {
	r, err := flatfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	reps := &uniref.Set{}
	xr := xref.NewReader(r)
	for {
		x, err := xr.Read()
		if err == io.EOF {
			return reps, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for _, rep := range x.UniRef {
			if rep != xref.None {
				reps.Insert(rep)
			}
		}
	}
}

func (f *subsetFlags) subset(reps *uniref.Set, log *slog.Logger) error {
	if f.representatives != "" {
		if err := writeSet(f.representatives, reps); err != nil {
			return err
		}
	}

	in, err := flatfile.Open(f.fasta)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := flatfile.Create(f.out)
	if err != nil {
		return err
	}

	var (
		clusters io.WriteCloser
		cerr     error
		report   func(uniref.Cluster)
	)
	if f.clusters != "" {
		clusters, err = flatfile.Create(f.clusters)
		if err != nil {
			out.Close()
			return err
		}
		report = func(c uniref.Cluster) {
			if cerr == nil {
				_, cerr = fmt.Fprintf(clusters, "%s\t%d\t%d\t%s\t%d\t%s\n",
					c.Representative, c.Length, c.Members, c.Taxon, c.TaxID, c.Name)
			}
		}
	}

	n, err := uniref.Subset(out, in, reps, report)
	if clusters != nil {
		if err := clusters.Close(); cerr == nil {
			cerr = err
		}
	}
	if oerr := out.Close(); err == nil {
		err = oerr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", f.fasta, err)
	}
	if cerr != nil {
		return cerr
	}
	log.Info("wrote subset", "path", f.out, "sequences", n, "missing", reps.Len()-n)
	return nil
}

// writeSet writes the elements of s to path, one per line.
func writeSet(path string, s *uniref.Set) error {
	w, err := flatfile.Create(path)
	if err != nil {
		return err
	}
	var werr error
	s.Do(func(acc string) {
		if werr == nil {
			_, werr = fmt.Fprintln(w, acc)
		}
	})
	if err := w.Close(); werr == nil {
		werr = err
	}
	return werr
}
