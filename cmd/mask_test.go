// Copyright © 2018 Wei Shen <shenwei356@gmail.com>
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
	"bufio"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/lcmask/lcmask"
)

func TestParseBackend(t *testing.T) {
	cases := []struct {
		in   string
		want lcmask.Backend
		ok   bool
	}{
		{"", lcmask.BackendAuto, true},
		{"auto", lcmask.BackendAuto, true},
		{"dense", lcmask.BackendDense, true},
		{"sparse", lcmask.BackendSparse, true},
		{"bogus", lcmask.BackendAuto, false},
	}
	for _, c := range cases {
		got, err := parseBackend(c.in)
		if (err == nil) != c.ok {
			t.Errorf("parseBackend(%q) err=%v, want ok=%v", c.in, err, c.ok)
		}
		if err == nil && got != c.want {
			t.Errorf("parseBackend(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if displayName("-") != "stdin" {
		t.Errorf(`displayName("-") should be "stdin"`)
	}
	if displayName("a.fastq") != "a.fastq" {
		t.Errorf("displayName should pass through real paths unchanged")
	}
}

func TestOutGzipped(t *testing.T) {
	if !outGzipped("out.fastq.gz") {
		t.Errorf("expected .gz suffix to be detected")
	}
	if outGzipped("out.fastq") {
		t.Errorf("did not expect a non-.gz file to be detected as gzipped")
	}
}

func TestMaskedPct(t *testing.T) {
	if maskedPct(lcmask.Stats{}) != 0 {
		t.Errorf("maskedPct of empty stats should be 0")
	}
	got := maskedPct(lcmask.Stats{Bases: 100, MaskedBases: 25})
	if got != 25.0 {
		t.Errorf("maskedPct = %v, want 25.0", got)
	}
}

func TestApplyConfigDefaultsReachesLocalFlag(t *testing.T) {
	home, err := os.MkdirTemp("", "lcmask-home-*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	defer os.RemoveAll(home)

	t.Setenv("HOME", home)
	homedir.DisableCache = true
	homedir.Reset()
	defer homedir.Reset()

	content := "window=30\nthreshold=0.6\nthreads=4\n"
	if err := os.WriteFile(filepath.Join(home, configFileName), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cmd := &cobra.Command{Use: "mask"}
	cmd.Flags().IntP("window", "w", 25, "")
	cmd.Flags().Float64P("threshold", "e", 0.55, "")
	cmd.PersistentFlags().IntP("threads", "j", runtime.NumCPU(), "")

	applyConfigDefaults(cmd)

	if got, _ := cmd.Flags().GetInt("window"); got != 30 {
		t.Errorf("local flag window = %d, want 30 (config defaults must reach maskCmd.Flags(), not just PersistentFlags())", got)
	}
	if got, _ := cmd.Flags().GetFloat64("threshold"); got != 0.6 {
		t.Errorf("local flag threshold = %v, want 0.6", got)
	}
	if got, _ := cmd.PersistentFlags().GetInt("threads"); got != 4 {
		t.Errorf("persistent flag threads = %d, want 4", got)
	}

	// An explicit CLI flag must still win over the config default.
	if err := cmd.Flags().Set("window", "99"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, _ := cmd.Flags().GetInt("window"); got != 99 {
		t.Errorf("explicit --window should override the config default, got %d", got)
	}
}

func TestParseConfigFile(t *testing.T) {
	f, err := os.CreateTemp("", "lcmask-config-*")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer os.Remove(f.Name())
	content := "# a comment\nwindow=30\n\nthreshold=0.6\nmalformed-line\n"
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	f.Seek(0, 0)

	scanner := bufio.NewScanner(f)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if !strings.Contains(strings.Join(lines, "\n"), "window=30") {
		t.Fatalf("fixture setup broken")
	}
	f.Seek(0, 0)

	defaults := parseConfigFile(f)
	if defaults["window"] != "30" {
		t.Errorf("defaults[window] = %q, want 30", defaults["window"])
	}
	if defaults["threshold"] != "0.6" {
		t.Errorf("defaults[threshold] = %q, want 0.6", defaults["threshold"])
	}
	if _, ok := defaults["malformed-line"]; ok {
		t.Errorf("malformed line should not produce an entry")
	}
}
