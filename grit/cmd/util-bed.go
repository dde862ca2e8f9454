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

	humanize "github.com/dustin/go-humanize"
	"github.com/manish59/grit"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/twotwotwo/sorts"
)

// addStreamFlags registers the shared sort-contract flags. Commands
// whose operator supports the in-memory fallback also get
// --allow-unsorted.
func addStreamFlags(cmd *cobra.Command, fallback bool) {
	cmd.Flags().BoolP("streaming", "", true, "stream sorted input in one pass (the only mode; kept for pipeline compatibility)")
	cmd.Flags().BoolP("assume-sorted", "", false, "skip the sort-order validator")
	if fallback {
		cmd.Flags().BoolP("allow-unsorted", "", false, "buffer and sort the input in memory before streaming")
	}
}

func getAssumeSorted(cmd *cobra.Command) bool {
	return getFlagBool(cmd, "assume-sorted")
}

func getAllowUnsorted(cmd *cobra.Command) bool {
	if cmd.Flags().Lookup("allow-unsorted") == nil {
		return false
	}
	return getFlagBool(cmd, "allow-unsorted")
}

// loadGenome reads the -g/--genome file when given; required marks
// operators that cannot run without one.
func loadGenome(cmd *cobra.Command, opt *Options, required bool) *grit.Genome {
	file := getFlagString(cmd, "genome")
	if file == "" {
		if required {
			checkError(grit.ErrGenomeRequired)
		}
		return nil
	}
	file = expandPath(file)
	checkFiles(file)
	g, err := grit.ReadGenome(file)
	checkError(errors.Wrap(err, file))
	if opt.Verbose {
		log.Infof("genome: %d chromosomes, %s bases", g.Len(),
			humanize.Comma(int64(g.TotalSize())))
	}
	return g
}

// openCursor turns an input file into a sorted-record cursor. With
// allowUnsorted the whole file is buffered, radix-sorted and replayed;
// otherwise records stream straight off the reader and the sweep's
// validator enforces the sort contract.
func openCursor(opt *Options, file string, genome *grit.Genome, allowUnsorted bool) (grit.Cursor, func(), error) {
	infh, r, err := inStream(file)
	if err != nil {
		return nil, nil, err
	}
	reader := grit.NewReader(infh, opt.Compat)

	if !allowUnsorted {
		closer := func() {
			if r != nil {
				r.Close()
			}
		}
		return reader, closer, nil
	}

	if opt.Verbose {
		log.Infof("buffering %s for in-memory sort", file)
	}
	recs, err := grit.ReadAll(reader)
	if r != nil {
		r.Close()
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, file)
	}
	sorts.MaxProcs = opt.NumCPUs
	recs, err = grit.SortRecords(recs, genome)
	if err != nil {
		return nil, nil, errors.Wrap(err, file)
	}
	if opt.Verbose {
		log.Infof("sorted %s records from %s", humanize.Comma(int64(len(recs))), file)
	}
	return grit.NewSliceCursor(recs), func() {}, nil
}

// reportStats logs one run summary line to the error stream.
func reportStats(opt *Options, stats *grit.RunStats, rows uint64, start time.Time) {
	if !opt.Stats {
		return
	}
	log.Infof("stats: %s A records, %s B records, %s rows, max active set %d, %s elapsed",
		humanize.Comma(int64(stats.ARecords)),
		humanize.Comma(int64(stats.BRecords)),
		humanize.Comma(int64(rows)),
		stats.MaxActive,
		time.Since(start))
}
