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
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/shenwei356/stable"

	"github.com/lcmask/lcmask"
)

// inputReport is one row of the per-input summary table.
type inputReport struct {
	file string
	lcmask.Stats
}

// printReport renders one row per input file plus a totals row, in the
// order inputs were processed.
func printReport(reports []inputReport) {
	style := &stable.TableStyle{
		Name:      "plain",
		HeaderRow: stable.RowStyle{Begin: "", Sep: "  ", End: ""},
		DataRow:   stable.RowStyle{Begin: "", Sep: "  ", End: ""},
		Padding:   "",
	}

	columns := []stable.Column{
		{Header: "file"},
		{Header: "reads", Align: stable.AlignRight},
		{Header: "bases", Align: stable.AlignRight},
		{Header: "masked-bases", Align: stable.AlignRight},
		{Header: "masked-pct", Align: stable.AlignRight},
	}

	tbl := stable.New()
	tbl.HeaderWithFormat(columns)

	var total lcmask.Stats
	for _, r := range reports {
		tbl.AddRow([]interface{}{
			r.file,
			humanize.Comma(r.Reads),
			humanize.Comma(r.Bases),
			humanize.Comma(r.MaskedBases),
			fmt.Sprintf("%.2f%%", maskedPct(r.Stats)),
		})
		total.Add(r.Stats)
	}
	if len(reports) > 1 {
		tbl.AddRow([]interface{}{
			"total",
			humanize.Comma(total.Reads),
			humanize.Comma(total.Bases),
			humanize.Comma(total.MaskedBases),
			fmt.Sprintf("%.2f%%", maskedPct(total)),
		})
	}

	os.Stderr.Write(tbl.Render(style))
}

func maskedPct(s lcmask.Stats) float64 {
	if s.Bases == 0 {
		return 0
	}
	return 100 * float64(s.MaskedBases) / float64(s.Bases)
}
