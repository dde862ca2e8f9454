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
	"runtime"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/manish59/grit"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/twotwotwo/sorts"
)

// sortCmd represents
var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "sort a BED file for the streaming commands",
	Long: `sort a BED file for the streaming commands

Records are ordered stably by (chromosome, start, end). Without a
genome file, chromosome blocks keep their first-seen order; with one,
they follow the genome order and unknown chromosomes are an error.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		runtime.GOMAXPROCS(opt.NumCPUs)
		sorts.MaxProcs = opt.NumCPUs
		start := time.Now()

		inFile := expandPath(getFlagString(cmd, "in-file"))
		checkFiles(inFile)

		genome := loadGenome(cmd, opt, false)
		outFile := expandPath(getFlagString(cmd, "out-file"))

		infh, r, err := inStream(inFile)
		checkError(err)
		reader := grit.NewReader(infh, opt.Compat)
		recs, err := grit.ReadAll(reader)
		if r != nil {
			r.Close()
		}
		checkError(errors.Wrap(err, inFile))
		if opt.Verbose {
			log.Infof("%s records loaded from %s", humanize.Comma(int64(len(recs))), inFile)
		}

		recs, err = grit.SortRecords(recs, genome)
		checkError(errors.Wrap(err, inFile))

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
		for i := range recs {
			wtr.WriteRecord(&recs[i])
		}
		checkError(wtr.Flush())

		if opt.Stats {
			log.Infof("stats: %s records sorted, %s elapsed",
				humanize.Comma(int64(len(recs))), time.Since(start))
		}
	},
}

func init() {
	RootCmd.AddCommand(sortCmd)

	sortCmd.Flags().StringP("in-file", "i", "-", `input BED file ("-" for stdin)`)
	sortCmd.Flags().StringP("out-file", "o", "-", `out file ("-" for stdout, suffix .gz for gzipped out)`)
	sortCmd.Flags().StringP("genome", "g", "", "genome file fixing chromosome order")
}
