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

package grit

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempGenome(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "test.genome")
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatalf("write genome: %s", err)
	}
	return file
}

func TestReadGenome(t *testing.T) {
	file := writeTempGenome(t, "# build 38\nchr1\t248956422\nchr2\t242193529\nchrM\t16569\n")
	g, err := ReadGenome(file)
	if err != nil {
		t.Fatalf("read: %s", err)
	}
	if g.Len() != 3 {
		t.Fatalf("chromosome count %d", g.Len())
	}
	if rank, ok := g.Rank([]byte("chr2")); !ok || rank != 1 {
		t.Errorf("rank of chr2: %d %v", rank, ok)
	}
	if size, ok := g.Size([]byte("chrM")); !ok || size != 16569 {
		t.Errorf("size of chrM: %d %v", size, ok)
	}
	if _, ok := g.Rank([]byte("chrX")); ok {
		t.Error("unknown chromosome resolved")
	}
	if g.TotalSize() != 248956422+242193529+16569 {
		t.Errorf("total size %d", g.TotalSize())
	}
}

func TestReadGenomeDuplicate(t *testing.T) {
	file := writeTempGenome(t, "chr1\t1000\nchr1\t2000\n")
	_, err := ReadGenome(file)
	if _, ok := err.(*GenomeError); !ok {
		t.Errorf("expected GenomeError, got %v", err)
	}
}

func TestReadGenomeBadSize(t *testing.T) {
	for _, content := range []string{"chr1\tbig\n", "chr1\t0\n", "chr1\n"} {
		file := writeTempGenome(t, content)
		if _, err := ReadGenome(file); err == nil {
			t.Errorf("no error for %q", content)
		}
	}
}
