package phylo

import (
	"fmt"
	"os/exec"
	"strings"
)

// Toolchain names the external programs that do the actual alignment and
// maximum-likelihood tree search with bootstrap resampling. Each entry is a
// command template in which {in} and {out} are replaced with file paths.
// The programs are opaque to this package: they either succeed or fail the
// run, with no retry.
type Toolchain struct {
	Aligner     string
	TreeBuilder string
}

// Align runs the external aligner on fastaIn, producing alignedOut.
func (tc Toolchain) Align(fastaIn, alignedOut string) error {
	return runTemplate(tc.Aligner, fastaIn, alignedOut)
}

// BuildTree runs the external tree program on the alignment. Where the
// program leaves its Newick output is the caller's business; most tools
// derive it from the {out} prefix.
func (tc Toolchain) BuildTree(alignedIn, outPrefix string) error {
	return runTemplate(tc.TreeBuilder, alignedIn, outPrefix)
}

func runTemplate(template, in, out string) error {
	expanded := strings.ReplaceAll(template, "{in}", in)
	expanded = strings.ReplaceAll(expanded, "{out}", out)

	fields := strings.Fields(expanded)
	if len(fields) == 0 {
		return fmt.Errorf("empty command template")
	}

	if output, err := exec.Command(fields[0], fields[1:]...).CombinedOutput(); err != nil {
		return fmt.Errorf("running %q | Output: %s | Error: %s", expanded, string(output), err.Error())
	}

	return nil
}
