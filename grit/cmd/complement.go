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
	"time"

	"github.com/manish59/grit"
	"github.com/spf13/cobra"
)

// complementCmd represents
var complementCmd = &cobra.Command{
	Use:   "complement",
	Short: "report the genome regions the input leaves uncovered",
	Long: `report the genome regions the input leaves uncovered

Chromosomes come out in genome-file order; chromosomes the input never
touches are written whole. A genome file is mandatory and also fixes
the chromosome order the input must follow.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		start := time.Now()

		inFile := expandPath(getFlagString(cmd, "in-file"))
		checkFiles(inFile)

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
		op := &grit.Complementer{W: wtr, G: genome}

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
	RootCmd.AddCommand(complementCmd)

	complementCmd.Flags().StringP("in-file", "i", "-", `input BED file ("-" for stdin)`)
	complementCmd.Flags().StringP("out-file", "o", "-", `out file ("-" for stdout, suffix .gz for gzipped out)`)
	complementCmd.Flags().StringP("genome", "g", "", "genome file (required)")
	addStreamFlags(complementCmd, true)
}
