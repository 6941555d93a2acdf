package app

import (
	"io"

	"tc/internal/count"
)

// Messages 按消息 id 取本地化文本。
type Messages interface {
	Message(id string, args ...any) string
}

type Options struct {
	// Paths 为空时读取 Stdin 作为唯一输入，且不输出合计行。
	Paths     []string
	Selection count.Selection
	// Tokenizer 仅在 Selection.Tokens 为 true 时使用。
	Tokenizer count.TokenCounter
	Decode    func([]byte) string
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Messages  Messages
}

type Result struct {
	Total   count.Counts
	Sources int
	Failed  int
}

func (r Result) HasFailure() bool {
	return r.Failed > 0
}
