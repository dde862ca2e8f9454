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

// windowCmd represents
var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "report B records near each A record",
	Long: `report B records near each A record

Each A record is virtually extended -w/--window bases both ways, or
-l/--left and -r/--right bases asymmetrically, before testing overlap;
output keeps A's original coordinates.

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

		left := getFlagUint64(cmd, "left")
		right := getFlagUint64(cmd, "right")
		if cmd.Flags().Changed("window") {
			if cmd.Flags().Changed("left") || cmd.Flags().Changed("right") {
				checkError(fmt.Errorf("-w/--window and -l/--left, -r/--right are mutually exclusive"))
			}
			left = getFlagUint64(cmd, "window")
			right = left
		}

		mode := grit.WindowWriteBoth
		n := 0
		for flag, m := range map[string]grit.WindowMode{
			"unique":     grit.WindowUniqueA,
			"no-overlap": grit.WindowNoOverlapA,
			"count":      grit.WindowCountA,
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
		op := &grit.Windower{W: wtr, Left: left, Right: right, Mode: mode}

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
	RootCmd.AddCommand(windowCmd)

	windowCmd.Flags().StringP("a-file", "a", "-", `query BED file ("-" for stdin)`)
	windowCmd.Flags().StringP("b-file", "b", "-", `subject BED file ("-" for stdin)`)
	windowCmd.Flags().StringP("out-file", "o", "-", `out file ("-" for stdout, suffix .gz for gzipped out)`)
	windowCmd.Flags().StringP("genome", "g", "", "genome file fixing chromosome order")
	windowCmd.Flags().Uint64P("window", "w", 1000, "symmetric window size")
	windowCmd.Flags().Uint64P("left", "l", 1000, "bases added leftward")
	windowCmd.Flags().Uint64P("right", "r", 1000, "bases added rightward")
	windowCmd.Flags().BoolP("unique", "u", false, "write A once if any B is within the window")
	windowCmd.Flags().BoolP("no-overlap", "v", false, "write A only when the window is empty")
	windowCmd.Flags().BoolP("count", "c", false, "write A with its hit count")
	addStreamFlags(windowCmd, true)
}
