// tmedtree reproduces the TMED paralog tree figure. It fetches the human
// TMED protein sequences from UniProt, drops the readthrough pseudogene
// entry, simplifies the sequence labels to gene symbols, hands the set to an
// external alignment and maximum-likelihood tree toolchain with bootstrap
// resampling, and renders the resulting tree.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/grekalab/TMED-paper-2025-analysis/phylo"
)

const defaultQuery = "https://rest.uniprot.org/uniprotkb/stream?query=gene:TMED*+AND+organism_id:9606+AND+reviewed:true&format=fasta"

func main() {
	var (
		input      string
		drop       string
		outDir     string
		aligner    string
		treeCmd    string
		newickPath string
	)

	flag.StringVar(&input, "input", defaultQuery, "FASTA source: a UniProt query URL or a local FASTA path.")
	flag.StringVar(&drop, "drop", "TMED7-TICAM2", "Gene symbol to exclude (the readthrough pseudogene).")
	flag.StringVar(&outDir, "outdir", "out", "Output directory.")
	flag.StringVar(&aligner, "aligner", "muscle -align {in} -output {out}", "Alignment command template; {in} and {out} are substituted.")
	flag.StringVar(&treeCmd, "treecmd", "iqtree2 -s {in} -B 1000 -seed 20250101 --prefix {out}", "Tree command template; {in} and {out} are substituted.")
	flag.StringVar(&newickPath, "newick", "", "Where the tree command leaves its Newick output. Defaults to <outdir>/tmed.treefile.")
	flag.Parse()

	if err := run(input, drop, outDir, aligner, treeCmd, newickPath); err != nil {
		log.Fatalln(err)
	}
}

func run(input, drop, outDir, aligner, treeCmd, newickPath string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	if newickPath == "" {
		newickPath = filepath.Join(outDir, "tmed.treefile")
	}

	seqs, err := phylo.FetchSequences(input)
	if err != nil {
		return err
	}
	log.Println("Fetched", len(seqs), "sequences")

	kept := phylo.SimplifyLabels(seqs, []string{drop})
	log.Println("Keeping", len(kept), "sequences after pseudogene filtering")

	fastaPath := filepath.Join(outDir, "tmed.fasta")
	if err := phylo.WriteFasta(fastaPath, kept); err != nil {
		return err
	}

	tc := phylo.Toolchain{Aligner: aligner, TreeBuilder: treeCmd}

	alignedPath := filepath.Join(outDir, "tmed_aligned.fasta")
	log.Println("Aligning", fastaPath)
	if err := tc.Align(fastaPath, alignedPath); err != nil {
		return err
	}

	log.Println("Building bootstrapped tree from", alignedPath)
	if err := tc.BuildTree(alignedPath, filepath.Join(outDir, "tmed")); err != nil {
		return err
	}

	newickText, err := os.ReadFile(newickPath)
	if err != nil {
		return err
	}

	tree, err := phylo.ParseNewick(string(newickText))
	if err != nil {
		return err
	}

	treePNG := filepath.Join(outDir, "tmed_tree.png")
	if err := phylo.DrawTree(tree, treePNG); err != nil {
		return err
	}
	log.Println("Wrote", treePNG)

	return nil
}
