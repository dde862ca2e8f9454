// Copyright © 2024 Manish Kumar <manish59@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"fmt"
	"time"

	"github.com/manish59/grit"
	"github.com/spf13/cobra"
)

// intersectCmd represents
var intersectCmd = &cobra.Command{
	Use:   "intersect",
	Short: "report overlaps between two sorted BED files",
	Long: `report overlaps between two sorted BED files

By default the shared region of every qualifying (A, B) pair is written.
The output modes --wa, --wb, --both, -u, -v and -c are mutually
exclusive.

Attentions:
  1. Both inputs must be sorted by chromosome block and start position;
     use "grit sort" or --allow-unsorted for raw files.
  2. With --bedtools-compatible, zero-length intervals become 1-base
     points at parse time.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		start := time.Now()

		aFile := expandPath(getFlagString(cmd, "a-file"))
		bFile := expandPath(getFlagString(cmd, "b-file"))
		checkFiles(aFile, bFile)
		if isStdin(aFile) && isStdin(bFile) {
			checkError(fmt.Errorf("only one of -a and -b can be stdin"))
		}

		fraction := getFlagFloat64(cmd, "fraction")
		if fraction > 1 {
			checkError(fmt.Errorf("value of -f/--fraction should be in range of [0, 1]"))
		}
		reciprocal := getFlagBool(cmd, "reciprocal")

		mode := grit.IntersectOverlap
		n := 0
		for flag, m := range map[string]grit.IntersectMode{
			"wa":         grit.IntersectWriteA,
			"wb":         grit.IntersectWriteB,
			"both":       grit.IntersectWriteBoth,
			"unique":     grit.IntersectUniqueA,
			"no-overlap": grit.IntersectNoOverlapA,
			"count":      grit.IntersectCountA,
		} {
			if getFlagBool(cmd, flag) {
				mode = m
				n++
			}
		}
		if n > 1 {
			checkError(fmt.Errorf("only one output mode flag is allowed"))
		}

		genome := loadGenome(cmd, opt, false)
		outFile := expandPath(getFlagString(cmd, "out-file"))

		ca, closeA, err := openCursor(opt, aFile, genome, getAllowUnsorted(cmd))
		checkError(err)
		defer closeA()
		cb, closeB, err := openCursor(opt, bFile, genome, getAllowUnsorted(cmd))
		checkError(err)
		defer closeB()

		outfh, gw, w, err := outStream(outFile, gzippedOutFile(outFile), opt.CompressionLevel)
		checkError(err)
		defer func() {
			outfh.Flush()
			if gw != nil {
				gw.Close()
			}
			w.Close()
		}()

		wtr := grit.NewWriter(outfh)
		op := grit.NewIntersector(wtr, mode)
		op.Qual.Fraction = fraction
		op.Qual.Reciprocal = reciprocal

		var stats grit.RunStats
		err = grit.Sweep(ca, cb, op, grit.SweepOptions{
			Genome:       genome,
			AssumeSorted: getAssumeSorted(cmd) || getAllowUnsorted(cmd),
			Compat:       opt.Compat,
			Stats:        &stats,
		})
		checkError(err)
		checkError(wtr.Flush())

		reportStats(opt, &stats, wtr.Rows(), start)
	},
}

func init() {
	RootCmd.AddCommand(intersectCmd)

	intersectCmd.Flags().StringP("a-file", "a", "-", `query BED file ("-" for stdin)`)
	intersectCmd.Flags().StringP("b-file", "b", "-", `subject BED file ("-" for stdin)`)
	intersectCmd.Flags().StringP("out-file", "o", "-", `out file ("-" for stdout, suffix .gz for gzipped out)`)
	intersectCmd.Flags().StringP("genome", "g", "", "genome file fixing chromosome order")
	intersectCmd.Flags().Float64P("fraction", "f", -1, "minimum overlap as a fraction of A's length")
	intersectCmd.Flags().BoolP("reciprocal", "r", false, "require the fraction of B too")
	intersectCmd.Flags().BoolP("wa", "", false, "write the original A record per overlap")
	intersectCmd.Flags().BoolP("wb", "", false, "write the overlapping B record")
	intersectCmd.Flags().BoolP("both", "", false, "write A's and B's fields on one row")
	intersectCmd.Flags().BoolP("unique", "u", false, "write A once if any B overlaps")
	intersectCmd.Flags().BoolP("no-overlap", "v", false, "write A only if no B overlaps")
	intersectCmd.Flags().BoolP("count", "c", false, "write A with its overlap count")
	addStreamFlags(intersectCmd, true)
}
