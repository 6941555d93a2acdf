package count

import (
	"fmt"
	"strings"
)

type Metric int

const (
	Lines Metric = iota
	Words
	Chars
	Tokens
)

// Metrics 是输出列的固定顺序。
var Metrics = []Metric{Lines, Words, Chars, Tokens}

func (m Metric) String() string {
	switch m {
	case Lines:
		return "lines"
	case Words:
		return "words"
	case Chars:
		return "chars"
	case Tokens:
		return "tokens"
	default:
		return "unknown"
	}
}

// Value 取出 c 中对应指标的值。
func (m Metric) Value(c Counts) int {
	switch m {
	case Lines:
		return c.Lines
	case Words:
		return c.Words
	case Chars:
		return c.Chars
	case Tokens:
		return c.Tokens
	default:
		return 0
	}
}

type Selection struct {
	Lines  bool
	Words  bool
	Chars  bool
	Tokens bool
}

// All 选中全部四个指标。
func All() Selection {
	return Selection{Lines: true, Words: true, Chars: true, Tokens: true}
}

func (s Selection) Has(m Metric) bool {
	switch m {
	case Lines:
		return s.Lines
	case Words:
		return s.Words
	case Chars:
		return s.Chars
	case Tokens:
		return s.Tokens
	default:
		return false
	}
}

func (s Selection) Enabled() int {
	n := 0
	for _, m := range Metrics {
		if s.Has(m) {
			n++
		}
	}
	return n
}

func (s Selection) IsZero() bool {
	return s.Enabled() == 0
}

// Resolve 在一个指标都没选时返回全选。
func (s Selection) Resolve() Selection {
	if s.IsZero() {
		return All()
	}
	return s
}

func (s Selection) String() string {
	names := make([]string, 0, 4)
	for _, m := range Metrics {
		if s.Has(m) {
			names = append(names, m.String())
		}
	}
	return strings.Join(names, ",")
}

// ParseSelection 解析指标名列表，如 ["lines", "tokens"]。
func ParseSelection(names []string) (Selection, error) {
	var s Selection
	for _, raw := range names {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "":
			continue
		case "lines", "l":
			s.Lines = true
		case "words", "w":
			s.Words = true
		case "chars", "characters", "c":
			s.Chars = true
		case "tokens", "t":
			s.Tokens = true
		default:
			return Selection{}, fmt.Errorf("unknown metric %q (want lines, words, chars or tokens)", raw)
		}
	}
	return s, nil
}
