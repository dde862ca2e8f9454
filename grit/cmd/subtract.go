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

// subtractCmd represents
var subtractCmd = &cobra.Command{
	Use:   "subtract",
	Short: "remove B-covered bases from each A record",
	Long: `remove B-covered bases from each A record

The surviving pieces of every A record are written left to right, each
carrying A's remaining columns. With -A/--remove-entire, one qualifying
overlap drops the whole A record instead.

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
		op := grit.NewSubtractor(wtr)
		op.RemoveEntire = getFlagBool(cmd, "remove-entire")
		op.Qual.Fraction = fraction
		op.Qual.Reciprocal = getFlagBool(cmd, "reciprocal")

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
	RootCmd.AddCommand(subtractCmd)

	subtractCmd.Flags().StringP("a-file", "a", "-", `query BED file ("-" for stdin)`)
	subtractCmd.Flags().StringP("b-file", "b", "-", `subject BED file ("-" for stdin)`)
	subtractCmd.Flags().StringP("out-file", "o", "-", `out file ("-" for stdout, suffix .gz for gzipped out)`)
	subtractCmd.Flags().StringP("genome", "g", "", "genome file fixing chromosome order")
	subtractCmd.Flags().BoolP("remove-entire", "A", false, "drop the whole A record on any qualifying overlap")
	subtractCmd.Flags().Float64P("fraction", "f", -1, "minimum overlap as a fraction of A's length")
	subtractCmd.Flags().BoolP("reciprocal", "r", false, "require the fraction of B too")
	addStreamFlags(subtractCmd, true)
}
