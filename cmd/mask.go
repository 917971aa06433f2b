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
	"fmt"
	"io"
	"runtime"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/spf13/cobra"

	"github.com/lcmask/lcmask"
)

var maskCmd = &cobra.Command{
	Use:   "mask",
	Short: "mask low-complexity stretches of FASTQ/A reads",
	Long: `mask low-complexity stretches of FASTQ/A reads

Slides a window across each read, scores its complexity with either the
incremental Shannon-entropy tracker (default) or the triplet-based DUST
scorer (--dust), and replaces every base of a low-complexity window with
'N' (and its quality with '#'). Read length, ids and record structure are
always preserved.
`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		runtime.GOMAXPROCS(opt.NumCPUs)
		seq.ValidateSeq = false

		useDust := getFlagBool(cmd, "dust")

		var mcfg lcmask.MaskConfig
		var dcfg lcmask.DustConfig
		if useDust {
			if cmd.Flags().Changed("threshold") || cmd.Flags().Changed("kmer-len") {
				checkError(fmt.Errorf("--dust cannot be combined with -e/--threshold or -k/--kmer-len"))
			}
			dcfg = lcmask.DustConfig{
				Window:    getFlagPositiveInt(cmd, "dust-window"),
				Threshold: getFlagInt(cmd, "dust-threshold"),
			}
			checkError(dcfg.Validate())
		} else {
			backend, err := parseBackend(getFlagString(cmd, "backend"))
			checkError(err)
			mcfg = lcmask.MaskConfig{
				Window:    getFlagPositiveInt(cmd, "window"),
				K:         getFlagPositiveInt(cmd, "kmer-len"),
				Threshold: getFlagFloat64(cmd, "threshold"),
				Backend:   backend,
			}
			checkError(mcfg.Validate())
		}

		chunkSize := getFlagPositiveInt(cmd, "chunk-size")
		outFile := getFlagString(cmd, "out-file")

		files := getFileListFromArgsAndFile(cmd, args)

		outW, outCloser, outF, err := outStream(outFile, outGzipped(outFile), opt.CompressionLevel)
		checkError(err)
		defer func() {
			outW.Flush()
			if outCloser != nil {
				outCloser.Close()
			}
			outF.Close()
		}()

		var reports []inputReport
		for _, file := range files {
			fastxReader, err := fastx.NewDefaultReader(file)
			checkError(err)

			var fileStats lcmask.Stats
			batch := make([]lcmask.Read, 0, chunkSize)
			flush := func() {
				if len(batch) == 0 {
					return
				}
				var masked []lcmask.MaskedRead
				var stats lcmask.Stats
				var err error
				if useDust {
					masked, stats, err = lcmask.PoolMaskDust(batch, dcfg, opt.NumCPUs)
				} else {
					masked, stats, err = lcmask.PoolMask(batch, mcfg, opt.NumCPUs)
				}
				checkError(err)
				for _, r := range masked {
					writeFastq(outW, r)
				}
				fileStats.Add(stats)
				batch = batch[:0]
			}

			for {
				record, err := fastxReader.Read()
				if err != nil {
					if err == io.EOF {
						break
					}
					checkError(err)
					break
				}
				batch = append(batch, readToRead(record))
				if len(batch) >= chunkSize {
					flush()
				}
			}
			flush()

			reports = append(reports, inputReport{file: displayName(file), Stats: fileStats})
		}

		printReport(reports)
	},
}

func init() {
	RootCmd.AddCommand(maskCmd)

	maskCmd.Flags().IntP("window", "w", 25, "sliding window width (entropy path)")
	maskCmd.Flags().Float64P("threshold", "e", 0.55, "mask windows with normalized entropy below this value")
	maskCmd.Flags().IntP("kmer-len", "k", 5, "k-mer size (entropy path)")
	maskCmd.Flags().StringP("backend", "", "auto", "entropy tracker backend: auto, dense, sparse")
	maskCmd.Flags().BoolP("dust", "", false, "use the triplet-based DUST scorer instead of the entropy path")
	maskCmd.Flags().IntP("dust-window", "", 64, "DUST window width, in triplet positions")
	maskCmd.Flags().IntP("dust-threshold", "", 20, "DUST complexity threshold")
	maskCmd.Flags().IntP("chunk-size", "", 1000, "reads per worker chunk")
	maskCmd.Flags().StringP("out-file", "o", "-", `out file ("-" for stdout), gzip-compressed when suffixed ".gz"`)

	applyConfigDefaults(maskCmd)
}

func parseBackend(s string) (lcmask.Backend, error) {
	switch s {
	case "auto", "":
		return lcmask.BackendAuto, nil
	case "dense":
		return lcmask.BackendDense, nil
	case "sparse":
		return lcmask.BackendSparse, nil
	default:
		return lcmask.BackendAuto, fmt.Errorf("unknown --backend: %s", s)
	}
}

// readToRead converts one fastx.Record into an lcmask.Read. FASTA records
// carry no quality; Qual is left empty, per the "missing quality" design
// decision.
func readToRead(record *fastx.Record) lcmask.Read {
	r := lcmask.Read{
		ID:  append([]byte(nil), record.Name...),
		Seq: append([]byte(nil), record.Seq.Seq...),
	}
	if len(record.Seq.Qual) > 0 {
		r.Qual = append([]byte(nil), record.Seq.Qual...)
	}
	return r
}

// writeFastq writes one masked read in FASTQ format. When the input carried
// no quality, it synthesizes one: '#' under every 'N', the neutral 'I'
// everywhere else.
func writeFastq(w io.Writer, r lcmask.MaskedRead) {
	qual := r.Qual
	if len(qual) == 0 {
		qual = make([]byte, len(r.Seq))
		for i := range qual {
			if r.Seq[i] == 'N' {
				qual[i] = '#'
			} else {
				qual[i] = 'I'
			}
		}
	}
	fmt.Fprintf(w, "@%s\n%s\n+\n%s\n", r.ID, r.Seq, qual)
}

func displayName(file string) string {
	if file == "-" {
		return "stdin"
	}
	return file
}
