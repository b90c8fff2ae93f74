// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/biogo/xrefmap/flatfile"
	"github.com/biogo/xrefmap/xref"
)

// tableStats contains the summary statistics of a cross-reference
// table. Reference counts are per distinct UniProt accession.
type tableStats struct {
	Rows       int
	Joined     int
	Backfilled int

	Accessions int // distinct UniProt accessions
	Elements   int // UniProt accession elements over all rows
	NoRep      int // elements without a UniRef100 representative
	NoRefs     int // accessions without any PubMed reference

	MeanRefs   float64
	StdRefs    float64
	MedianRefs float64
	MaxRefs    float64
}

func newStatsCmd(o *options) *cobra.Command {
	var (
		plotPath string
		bins     int
	)
	cmd := &cobra.Command{
		Use:   "stats <table>",
		Short: "Print summary statistics of a cross-reference table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := flatfile.Open(args[0])
			if err != nil {
				return err
			}
			defer r.Close()
			b, refs, err := tabulate(xref.NewReader(r))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", b)
			if plotPath == "" {
				return nil
			}
			err = histogram(plotPath, refs, bins)
			if err != nil {
				return err
			}
			o.log.Info("wrote histogram", "path", plotPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&plotPath, "plot", "", "write a histogram of references per accession to this file (png, svg, pdf or eps)")
	cmd.Flags().IntVar(&bins, "bins", 20, "number of histogram bins")
	return cmd
}

// tabulate reads the table from r and returns its statistics and the
// PubMed reference count of each distinct UniProt accession.
func tabulate(r *xref.Reader) (tableStats, []float64, error) {
	var (
		b    tableStats
		refs []float64
		seen = make(map[string]bool)
	)
	for {
		x, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return b, nil, err
		}
		b.Rows++
		if x.Backfilled {
			b.Backfilled++
		} else {
			b.Joined++
		}
		for i, acc := range x.UniProt {
			b.Elements++
			if x.UniRef[i] == xref.None {
				b.NoRep++
			}
			if seen[acc] {
				continue
			}
			seen[acc] = true
			n := len(x.UniProtEvidence[i].PubMed)
			if n == 0 {
				b.NoRefs++
			}
			refs = append(refs, float64(n))
		}
	}
	b.Accessions = len(refs)
	if len(refs) == 0 {
		return b, refs, nil
	}

	sorted := append([]float64(nil), refs...)
	sort.Float64s(sorted)
	b.MeanRefs = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		b.StdRefs = stat.StdDev(sorted, nil)
	}
	b.MedianRefs = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	b.MaxRefs = sorted[len(sorted)-1]
	return b, refs, nil
}

// histogram saves a histogram of refs to path in the format given by
// the path's extension.
func histogram(path string, refs []float64, bins int) error {
	if len(refs) == 0 {
		return errors.New("no accessions to plot")
	}
	p := plot.New()
	p.Title.Text = "PubMed references per UniProt accession"
	p.X.Label.Text = "references"
	p.Y.Label.Text = "accessions"

	h, err := plotter.NewHist(plotter.Values(refs), bins)
	if err != nil {
		return err
	}
	p.Add(h)
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
