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
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

// VERSION of grit
const VERSION = "0.3.1"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "grit",
	Short: "Genomic Range Interval Toolkit",
	Long: fmt.Sprintf(`grit - Genomic Range Interval Toolkit

A command-line toolkit for set algebra and statistics over sorted BED
intervals: intersect, subtract, merge, closest, window, coverage,
complement, jaccard, genomecov and multiinter, all computed in a single
streaming pass with memory bounded by the overlap depth instead of the
file size.

Input files must be sorted by chromosome block and start position
(see "grit sort"). Plain and gzip-compressed files are both accepted,
and "-" means stdin/stdout.

Version: %s

Author: Manish Kumar <manish59@gmail.com>

Source code: https://github.com/manish59/grit


`, VERSION),
}

// Execute adds all child commands to the root command sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	defaultThreads := runtime.NumCPU()
	if defaultThreads > 2 {
		defaultThreads = 2
	}

	RootCmd.PersistentFlags().IntP("threads", "j", defaultThreads, "number of CPUs to use for the unsorted-input fallback sort")
	RootCmd.PersistentFlags().BoolP("verbose", "", false, "print verbose information")
	RootCmd.PersistentFlags().BoolP("bedtools-compatible", "", false, "treat zero-length intervals as 1-base points at parse time")
	RootCmd.PersistentFlags().BoolP("stats", "", false, "print run statistics to the error stream")
	RootCmd.PersistentFlags().IntP("compression-level", "", 5, "compression level for gzipped output files")
}
