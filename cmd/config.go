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
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

// configFileName is a plain-text key=value file of flag defaults,
// resolved relative to the user's home directory.
const configFileName = ".lcmask.defaults"

// applyConfigDefaults overrides a command's flag defaults from
// ~/.lcmask.defaults, when present. This never overrides a value the user
// actually passes on the command line: it sets each flag's DefValue and
// current value from init(), before cobra/pflag parse the command line, so
// an explicit --flag still wins.
func applyConfigDefaults(cmd *cobra.Command) {
	home, err := homedir.Dir()
	if err != nil {
		return
	}
	path := filepath.Join(home, configFileName)
	f, err := os.Open(path)
	if err != nil {
		return // no defaults file: not an error, just nothing to apply
	}
	defer f.Close()

	defaults := parseConfigFile(f)
	for name, value := range defaults {
		// Flags() is where a subcommand's own flags live (window,
		// threshold, ...); PersistentFlags() is where a command's own
		// persistent flags live (threads, verbose, ... on RootCmd) before
		// cobra has merged them into a child's Flags() at execute time.
		// init() runs applyConfigDefaults before that merge happens, so
		// both sets have to be checked.
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(name)
		}
		if flag != nil {
			flag.DefValue = value
			flag.Value.Set(value)
		}
	}
}

// parseConfigFile reads "key=value" lines, skipping blanks and lines
// starting with '#'.
func parseConfigFile(f *os.File) map[string]string {
	defaults := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}
		defaults[key] = val
	}
	return defaults
}
