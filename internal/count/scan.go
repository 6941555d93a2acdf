package count

import (
	"bytes"

	"tc/internal/textutil"
)

// TokenCounter 是分词器的最小能力：返回文本的 token 数。
type TokenCounter interface {
	Count(text string) int
}

// Scanner 把一段字节计量为 Counts。只做选中的指标；未选 tokens 时不会触碰 Tokenizer。
type Scanner struct {
	Selection Selection
	Tokenizer TokenCounter
	// Decode 把原始字节转成文本，用于字符与 token 统计；为空时按 UTF-8 有损解码。
	Decode func([]byte) string
}

func (s Scanner) Scan(data []byte) Counts {
	var c Counts
	sel := s.Selection
	if sel.Lines || sel.Words {
		lines, words := scanLines(data, sel.Words)
		if sel.Lines {
			c.Lines = lines
		}
		if sel.Words {
			c.Words = words
		}
	}
	if !sel.Chars && !(sel.Tokens && s.Tokenizer != nil) {
		return c
	}
	decode := s.Decode
	if decode == nil {
		decode = textutil.Lossy
	}
	text := decode(data)
	if sel.Chars {
		c.Chars = textutil.CountChars(text)
	}
	if sel.Tokens && s.Tokenizer != nil {
		c.Tokens = s.Tokenizer.Count(text)
	}
	return c
}

// scanLines 按 '\n' 切段，逐段向前看一段：最后一段为空（即输入以换行结尾或输入为空）时不计为一行。
func scanLines(data []byte, withWords bool) (lines, words int) {
	start := 0
	for start <= len(data) {
		i := bytes.IndexByte(data[start:], '\n')
		last := i < 0
		var seg []byte
		if last {
			seg = data[start:]
		} else {
			seg = data[start : start+i]
		}
		if last && len(seg) == 0 {
			break
		}
		lines++
		if withWords {
			words += countWords(seg)
		}
		if last {
			break
		}
		start += i + 1
	}
	return lines, words
}

func countWords(seg []byte) int {
	n := 0
	inWord := false
	for _, b := range seg {
		if isASCIISpace(b) {
			inWord = false
			continue
		}
		if !inWord {
			n++
			inWord = true
		}
	}
	return n
}

// 空格、\t、\n、\f、\r；不含 \v。
func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}
