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

// coverageCmd represents
var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "summarize how deeply B covers each A record",
	Long: `summarize how deeply B covers each A record

By default each A record is written followed by four fields: the number
of overlapping B records, the bases of A covered by their union, A's
length, and the covered fraction. --hist, --per-base and --mean select
alternative reports and are mutually exclusive.

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

		mode := grit.CoverageDefault
		n := 0
		for flag, m := range map[string]grit.CoverageMode{
			"hist":     grit.CoverageHist,
			"per-base": grit.CoveragePerBase,
			"mean":     grit.CoverageMean,
		} {
			if getFlagBool(cmd, flag) {
				mode = m
				n++
			}
		}
		if n > 1 {
			checkError(fmt.Errorf("only one of --hist, --per-base and --mean is allowed"))
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
		op := &grit.Coverer{W: wtr, Mode: mode}

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
	RootCmd.AddCommand(coverageCmd)

	coverageCmd.Flags().StringP("a-file", "a", "-", `query BED file ("-" for stdin)`)
	coverageCmd.Flags().StringP("b-file", "b", "-", `subject BED file ("-" for stdin)`)
	coverageCmd.Flags().StringP("out-file", "o", "-", `out file ("-" for stdout, suffix .gz for gzipped out)`)
	coverageCmd.Flags().StringP("genome", "g", "", "genome file fixing chromosome order")
	coverageCmd.Flags().BoolP("hist", "", false, "report per-depth base counts per chromosome and a genome aggregate")
	coverageCmd.Flags().BoolP("per-base", "", false, "report chrom/pos/depth for every base of A")
	coverageCmd.Flags().BoolP("mean", "", false, "append the mean depth instead")
	addStreamFlags(coverageCmd, true)
}
