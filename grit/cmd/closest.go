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

// closestCmd represents
var closestCmd = &cobra.Command{
	Use:   "closest",
	Short: "report the nearest B record for each A record",
	Long: `report the nearest B record for each A record

Distance is signed and coordinate-defined: 0 on overlap or bookended
features, positive when B is downstream, negative when B is upstream.
A records with no candidate emit a sentinel row (". -1 -1").

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

		var tie grit.TiePolicy
		switch t := getFlagString(cmd, "tie"); t {
		case "all":
			tie = grit.TieAll
		case "first":
			tie = grit.TieFirst
		case "last":
			tie = grit.TieLast
		default:
			checkError(fmt.Errorf("invalid value of -t/--tie: %s (all/first/last)", t))
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
		op := grit.NewClosest(wtr)
		op.MaxDistance = getFlagInt64(cmd, "max-distance")
		op.Tie = tie
		op.IgnoreOverlap = getFlagBool(cmd, "ignore-overlap")
		op.IgnoreUpstream = getFlagBool(cmd, "ignore-upstream")
		op.IgnoreDown = getFlagBool(cmd, "ignore-downstream")
		op.ReportDistance = getFlagBool(cmd, "report-distance")

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
	RootCmd.AddCommand(closestCmd)

	closestCmd.Flags().StringP("a-file", "a", "-", `query BED file ("-" for stdin)`)
	closestCmd.Flags().StringP("b-file", "b", "-", `subject BED file ("-" for stdin)`)
	closestCmd.Flags().StringP("out-file", "o", "-", `out file ("-" for stdout, suffix .gz for gzipped out)`)
	closestCmd.Flags().StringP("genome", "g", "", "genome file fixing chromosome order")
	closestCmd.Flags().Int64P("max-distance", "d", -1, "ignore candidates farther than this (-1: unlimited)")
	closestCmd.Flags().StringP("tie", "t", "all", "tie policy: all, first or last")
	closestCmd.Flags().BoolP("ignore-overlap", "", false, "ignore overlapping B records")
	closestCmd.Flags().BoolP("ignore-upstream", "", false, "ignore B records upstream of A")
	closestCmd.Flags().BoolP("ignore-downstream", "", false, "ignore B records downstream of A")
	closestCmd.Flags().BoolP("report-distance", "D", false, "append the signed distance")
	addStreamFlags(closestCmd, true)
}
