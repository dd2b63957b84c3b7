// Package phylo supports the TMED paralog tree figure: sequence retrieval
// and filtering, hand-off to the external alignment and tree toolchain, and
// rendering of the bootstrapped tree.
package phylo

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/carbocation/pfx"

	tmedanalysis "github.com/grekalab/TMED-paper-2025-analysis"
)

// Sequence is one protein sequence and its display label.
type Sequence struct {
	Name string
	Seq  string
}

var geneNameRE = regexp.MustCompile(`GN=([A-Za-z0-9._-]+)`)

// FetchSequences reads a FASTA set from a local path or a remote query URL
// (a UniProt search with format=fasta) and decodes it.
func FetchSequences(input string) ([]Sequence, error) {
	raw, err := tmedanalysis.OpenFileOrURL(input)
	if err != nil {
		return nil, err
	}

	r := fasta.NewReader(bytes.NewReader(raw), linear.NewSeq("", nil, alphabet.Protein))
	sc := seqio.NewScanner(r)

	var out []Sequence
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		out = append(out, Sequence{
			Name: strings.TrimSpace(s.ID + " " + s.Desc),
			Seq:  s.Seq.String(),
		})
	}
	if err := sc.Error(); err != nil {
		return nil, pfx.Err(err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no sequences decoded from %s", input)
	}

	return out, nil
}

// SimplifyLabels replaces each full FASTA header with the gene symbol
// extracted from its GN= field and drops the named entries (the readthrough
// pseudogene does not belong in the paralog tree). Sequences with no GN=
// field keep their original header.
func SimplifyLabels(seqs []Sequence, drop []string) []Sequence {
	dropSet := make(map[string]struct{}, len(drop))
	for _, d := range drop {
		dropSet[strings.ToUpper(d)] = struct{}{}
	}

	var out []Sequence
	for _, s := range seqs {
		name := s.Name
		if m := geneNameRE.FindStringSubmatch(s.Name); m != nil {
			name = m[1]
		}

		if _, skip := dropSet[strings.ToUpper(name)]; skip {
			continue
		}

		out = append(out, Sequence{Name: name, Seq: s.Seq})
	}

	return out
}

// WriteFasta writes the sequences with 60-column line wrapping.
func WriteFasta(path string, seqs []Sequence) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	for _, s := range seqs {
		if _, err := fmt.Fprintf(f, ">%s\n", s.Name); err != nil {
			return pfx.Err(err)
		}
		for at := 0; at < len(s.Seq); at += 60 {
			end := at + 60
			if end > len(s.Seq) {
				end = len(s.Seq)
			}
			if _, err := fmt.Fprintln(f, s.Seq[at:end]); err != nil {
				return pfx.Err(err)
			}
		}
	}

	return nil
}
