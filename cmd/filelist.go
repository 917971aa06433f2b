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
	"github.com/shenwei356/breader"
	"github.com/spf13/cobra"
)

// getFileListFromArgsAndFile resolves the final input file list: if
// --infile-list is set, it is read (in parallel chunks) as a
// newline-delimited list of paths and the positional args are ignored;
// otherwise the positional args are used, falling back to stdin.
func getFileListFromArgsAndFile(cmd *cobra.Command, args []string) []string {
	opt := getOptions(cmd)
	if opt.InfileList == "" {
		return getFileList(args)
	}

	var files []string
	reader, err := breader.NewDefaultBufferedReader(opt.InfileList)
	checkError(err)
	for chunk := range reader.Ch {
		checkError(chunk.Err)
		for _, data := range chunk.Data {
			line := data.(string)
			if len(line) == 0 {
				continue
			}
			files = append(files, line)
		}
	}
	if len(files) == 0 {
		checkError(errNoInputFiles)
	}
	return files
}
