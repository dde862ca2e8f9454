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

// genomecovCmd represents
var genomecovCmd = &cobra.Command{
	Use:   "genomecov",
	Short: "per-base depth over the whole genome",
	Long: `per-base depth over the whole genome

The default report is a histogram: chrom, depth, bases, fraction rows
per chromosome plus "genome" aggregate rows. --bg writes nonzero-depth
BedGraph runs, --bga all runs including zero depth. A genome file is
mandatory.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		start := time.Now()

		inFile := expandPath(getFlagString(cmd, "in-file"))
		checkFiles(inFile)

		bg := getFlagBool(cmd, "bg")
		bga := getFlagBool(cmd, "bga")
		if bg && bga {
			checkError(fmt.Errorf("--bg and --bga are mutually exclusive"))
		}
		scale := getFlagFloat64(cmd, "scale")
		if scale <= 0 {
			checkError(fmt.Errorf("value of --scale should be greater than 0"))
		}

		genome := loadGenome(cmd, opt, true)
		outFile := expandPath(getFlagString(cmd, "out-file"))

		ci, closeIn, err := openCursor(opt, inFile, genome, getAllowUnsorted(cmd))
		checkError(err)
		defer closeIn()

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
		op := grit.NewGenomeCover(wtr, genome)
		op.Scale = scale
		if bg {
			op.Mode = grit.GenomeCovBedGraph
		} else if bga {
			op.Mode = grit.GenomeCovBedGraphAll
		}

		var stats grit.RunStats
		err = grit.Sweep(ci, grit.EmptyCursor(), op, grit.SweepOptions{
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
	RootCmd.AddCommand(genomecovCmd)

	genomecovCmd.Flags().StringP("in-file", "i", "-", `input BED file ("-" for stdin)`)
	genomecovCmd.Flags().StringP("out-file", "o", "-", `out file ("-" for stdout, suffix .gz for gzipped out)`)
	genomecovCmd.Flags().StringP("genome", "g", "", "genome file (required)")
	genomecovCmd.Flags().BoolP("bg", "", false, "BedGraph output of nonzero-depth runs")
	genomecovCmd.Flags().BoolP("bga", "", false, "BedGraph output of all runs, zero depth included")
	genomecovCmd.Flags().Float64P("scale", "", 1, "multiply emitted BedGraph depth by this factor")
	addStreamFlags(genomecovCmd, true)
}
