// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xref

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/biogo/xrefmap/flatfile"
	"github.com/biogo/xrefmap/goa"
	"github.com/biogo/xrefmap/idmap"
	"github.com/biogo/xrefmap/sprot"
)

// Builder runs the joins over files, materializing the output of each
// join so that only one lookup table is resident at a time.
type Builder struct {
	Annotations string   // GO evidence table
	Index       string   // GO database accession to UniProt map
	IDMap       string   // UniProt idmapping table
	FlatFiles   []string // SwissProt and TrEMBL dumps, later files take precedence

	Phase1Path string // join 1 output
	Phase2Path string // join 2 output
	Output     string // final cross-reference table

	Columns    idmap.Columns
	GOEvidence []string
	SwissProt  sprot.Options

	// Logger receives progress records. If nil, no
	// progress is logged.
	Logger *slog.Logger
}

func (b *Builder) log(stage string) *slog.Logger {
	l := b.Logger
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l.With("stage", stage)
}

// Build runs all three phases.
func (b *Builder) Build() error {
	for _, phase := range []func() error{b.Phase1, b.Phase2, b.Phase3} {
		if err := phase(); err != nil {
			return err
		}
	}
	return nil
}

// Phase1 performs join 1 from the GO evidence table and the GO to
// UniProt map, writing the Phase1Path table.
func (b *Builder) Phase1() error {
	log := b.log(StageUniProt)

	f, err := flatfile.Open(b.Index)
	if err != nil {
		return &StageError{Stage: StageUniProt, Path: b.Index, Err: err}
	}
	idx, err := goa.ReadIndex(f)
	f.Close()
	if err != nil {
		return &StageError{Stage: StageUniProt, Path: b.Index, Err: err}
	}
	log.Info("loaded GO to UniProt map", "path", b.Index, "accessions", len(idx))

	var st Stats
	err = pipe(StageUniProt, b.Annotations, b.Phase1Path, func(r io.Reader, w io.Writer) (err error) {
		st, err = JoinUniProt(NewRowWriter(w), goa.NewReader(r, b.GOEvidence), idx)
		return err
	})
	if err != nil {
		return err
	}
	log.Info("joined", "path", b.Phase1Path, "rows_in", st.In, "rows_out", st.Out, "misses", st.Misses)
	return nil
}

// Phase2 performs join 2 from the Phase1Path table and the idmapping
// table, writing the Phase2Path table.
func (b *Builder) Phase2() error {
	log := b.log(StageUniRef)

	f, err := flatfile.Open(b.IDMap)
	if err != nil {
		return &StageError{Stage: StageUniRef, Path: b.IDMap, Err: err}
	}
	t, err := idmap.Read(f, b.Columns, nil)
	f.Close()
	if err != nil {
		return &StageError{Stage: StageUniRef, Path: b.IDMap, Err: err}
	}
	log.Info("loaded idmapping", "path", b.IDMap, "accessions", len(t))

	var st Stats
	err = pipe(StageUniRef, b.Phase1Path, b.Phase2Path, func(r io.Reader, w io.Writer) (err error) {
		st, err = JoinUniRef(NewRowWriter(w), NewRowReader(r, UniProtWidth), t)
		return err
	})
	if err != nil {
		return err
	}
	log.Info("joined", "path", b.Phase2Path, "rows_in", st.In, "rows_out", st.Out, "dropped", st.Dropped, "misses", st.Misses)
	return nil
}

// Phase3 performs join 3 from the Phase2Path table and the flat files
// and then backfills accessions that were not reached, writing the
// Output table.
func (b *Builder) Phase3() error {
	log := b.log(StageEvidence)

	ev := sprot.NewEvidenceMap()
	for _, path := range b.FlatFiles {
		f, err := flatfile.Open(path)
		if err != nil {
			return &StageError{Stage: StageEvidence, Path: path, Err: err}
		}
		n, err := sprot.ReadEvidence(ev, f, b.SwissProt)
		f.Close()
		if err != nil {
			return &StageError{Stage: StageEvidence, Path: path, Err: err}
		}
		log.Info("scanned flat file", "path", path, "records", n, "accessions", ev.Len())
	}

	seen := make(Seen)
	err := pipe(StageEvidence, b.Phase2Path, b.Output, func(r io.Reader, w io.Writer) error {
		dst := NewWriter(w)
		st, err := JoinEvidence(dst, NewRowReader(r, UniRefWidth), ev, seen)
		if err != nil {
			return err
		}
		log.Info("joined", "rows_in", st.In, "rows_out", st.Out, "dropped", st.Dropped, "accessions", len(seen))

		unseen := make(map[string]bool)
		for _, acc := range seen.Unseen(ev) {
			unseen[acc] = true
		}
		f, err := flatfile.Open(b.IDMap)
		if err != nil {
			return &StageError{Stage: StageBackfill, Path: b.IDMap, Err: err}
		}
		t, err := idmap.Read(f, b.Columns, func(acc string) bool { return unseen[acc] })
		f.Close()
		if err != nil {
			return &StageError{Stage: StageBackfill, Path: b.IDMap, Err: err}
		}

		st, err = Backfill(dst, ev, seen, t)
		if err != nil {
			return err
		}
		b.log(StageBackfill).Info("backfilled", "rows_out", st.Out, "misses", st.Misses)
		return nil
	})
	if err != nil {
		return err
	}
	log.Info("wrote cross-reference table", "path", b.Output)
	return nil
}

// pipe runs fn over the named source and destination files. The
// destination is written to a temporary file in the same directory
// and renamed only when fn succeeds, so a failed stage leaves no
// output. Errors not already annotated are wrapped in a StageError
// for the source path.
func pipe(stage, src, dst string, fn func(io.Reader, io.Writer) error) error {
	r, err := flatfile.Open(src)
	if err != nil {
		return &StageError{Stage: stage, Path: src, Err: err}
	}
	defer r.Close()

	if dst == flatfile.Stdio {
		w, err := flatfile.Create(dst)
		if err != nil {
			return &StageError{Stage: StageWrite, Path: dst, Err: err}
		}
		err = fn(r, w)
		if cerr := w.Close(); err == nil && cerr != nil {
			return &StageError{Stage: StageWrite, Path: dst, Err: cerr}
		}
		return annotate(stage, src, err)
	}

	// The temporary name keeps the destination's suffix so that
	// compression is chosen the same way.
	tmp := filepath.Join(filepath.Dir(dst), ".partial-"+filepath.Base(dst))
	w, err := flatfile.Create(tmp)
	if err != nil {
		return &StageError{Stage: StageWrite, Path: dst, Err: err}
	}
	err = fn(r, w)
	if err != nil {
		w.Close()
		os.Remove(tmp)
		return annotate(stage, src, err)
	}
	if err = w.Close(); err != nil {
		os.Remove(tmp)
		return &StageError{Stage: StageWrite, Path: dst, Err: err}
	}
	if err = os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return &StageError{Stage: StageWrite, Path: dst, Err: err}
	}
	return nil
}

// annotate wraps err with the stage and source path unless it is nil
// or already carries them.
func annotate(stage, src string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*StageError); ok {
		return err
	}
	return &StageError{Stage: stage, Path: src, Err: err}
}
