package textutil

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
)

const (
	EncodingUTF8    = "utf-8"
	EncodingGBK     = "gbk"
	EncodingGB18030 = "gb18030"
)

// Lossy 按 UTF-8 解码，每个无效片段（最长的合法前缀，至少 1 字节）替换为一个 U+FFFD。
func Lossy(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	var b strings.Builder
	b.Grow(len(data) + 8)
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size <= 1 {
			b.WriteRune(utf8.RuneError)
			data = data[invalidPrefixLen(data):]
			continue
		}
		b.Write(data[:size])
		data = data[size:]
	}
	return b.String()
}

// invalidPrefixLen 返回 data 开头无效序列的长度：能作为某个合法多字节序列前缀的字节一并吞掉。
func invalidPrefixLen(data []byte) int {
	c := data[0]
	need := 0
	lo, hi := byte(0x80), byte(0xBF)
	switch {
	case c >= 0xC2 && c <= 0xDF:
		need = 1
	case c == 0xE0:
		need, lo = 2, 0xA0
	case c == 0xED:
		need, hi = 2, 0x9F
	case c >= 0xE1 && c <= 0xEF:
		need = 2
	case c == 0xF0:
		need, lo = 3, 0x90
	case c == 0xF4:
		need, hi = 3, 0x8F
	case c >= 0xF1 && c <= 0xF3:
		need = 3
	default:
		return 1
	}
	n := 1
	for i := 1; i <= need && i < len(data); i++ {
		x := data[i]
		if i == 1 {
			if x < lo || x > hi {
				break
			}
		} else if x < 0x80 || x > 0xBF {
			break
		}
		n++
	}
	return n
}

func CountChars(text string) int {
	return utf8.RuneCountInString(text)
}

// Decoder 返回指定输入编码的解码函数。非 UTF-8 编码用 x/text 解码，无法映射的字节替换为 U+FFFD。
func Decoder(name string) (func([]byte) string, error) {
	var enc encoding.Encoding
	switch NormalizeEncoding(name) {
	case EncodingUTF8:
		return Lossy, nil
	case EncodingGBK:
		enc = simplifiedchinese.GBK
	case EncodingGB18030:
		enc = simplifiedchinese.GB18030
	default:
		return nil, fmt.Errorf("unsupported encoding %q (want utf-8, gbk or gb18030)", name)
	}
	return func(data []byte) string {
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return Lossy(data)
		}
		return Lossy(out)
	}, nil
}

func NormalizeEncoding(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8
	case "gbk", "cp936":
		return EncodingGBK
	case "gb18030":
		return EncodingGB18030
	default:
		return strings.ToLower(strings.TrimSpace(name))
	}
}
