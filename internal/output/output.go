package output

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"tc/internal/count"
)

// ColumnWidth 是多列输出时每列的右对齐宽度。
const ColumnWidth = 8

// Line 渲染一行结果（含换行符）。只有一列时不补齐；label 为空时不追加名字。
func Line(c count.Counts, sel count.Selection, label string) string {
	width := ColumnWidth
	if sel.Enabled() == 1 {
		width = 0
	}
	var b strings.Builder
	for _, m := range count.Metrics {
		if !sel.Has(m) {
			continue
		}
		fmt.Fprintf(&b, "%*d", width, m.Value(c))
	}
	if label != "" {
		b.WriteByte(' ')
		b.WriteString(label)
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace) + "\n"
}

func Write(w io.Writer, c count.Counts, sel count.Selection, label string) error {
	_, err := io.WriteString(w, Line(c, sel, label))
	return err
}
