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

// multiinterCmd represents
var multiinterCmd = &cobra.Command{
	Use:   "multiinter",
	Short: "partition the genome by which of N inputs cover it",
	Long: `partition the genome by which of N inputs cover it

Every maximal half-open run over which the set of covering inputs is
constant is written with its cover count and the 1-based indices of the
covering inputs. With --cluster only runs covered by every input come
out.

Attentions:
  1. All inputs must be sorted and share one chromosome order.
  2. At most 65535 input files allowed.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		start := time.Now()

		files := getFileListFromArgsAndFile(cmd, args, "infile-list")
		if opt.Verbose {
			if len(files) == 1 && isStdin(files[0]) {
				log.Info("no files given, reading from stdin")
			} else {
				log.Infof("%d input file(s) given", len(files))
			}
		}
		if len(files) > 65535 {
			checkError(fmt.Errorf("at most 65535 input files allowed"))
		}
		for i, file := range files {
			files[i] = expandPath(file)
		}
		checkFiles(files...)

		genome := loadGenome(cmd, opt, false)
		outFile := expandPath(getFlagString(cmd, "out-file"))

		cursors := make([]grit.Cursor, len(files))
		for i, file := range files {
			c, closer, err := openCursor(opt, file, genome, getAllowUnsorted(cmd))
			checkError(err)
			defer closer()
			cursors[i] = c
		}

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
		var stats grit.RunStats
		err = grit.MultiIntersect(cursors, wtr, grit.SweepOptions{
			Genome:       genome,
			AssumeSorted: getAssumeSorted(cmd) || getAllowUnsorted(cmd),
			Compat:       opt.Compat,
			Stats:        &stats,
		}, getFlagBool(cmd, "cluster"))
		checkError(err)
		checkError(wtr.Flush())

		reportStats(opt, &stats, wtr.Rows(), start)
	},
}

func init() {
	RootCmd.AddCommand(multiinterCmd)

	multiinterCmd.Flags().StringP("infile-list", "i", "", "file of input files list (one file per line), if given, files from cli arguments are ignored")
	multiinterCmd.Flags().StringP("out-file", "o", "-", `out file ("-" for stdout, suffix .gz for gzipped out)`)
	multiinterCmd.Flags().StringP("genome", "g", "", "genome file fixing chromosome order")
	multiinterCmd.Flags().BoolP("cluster", "", false, "only write runs covered by every input")
	addStreamFlags(multiinterCmd, true)
}
