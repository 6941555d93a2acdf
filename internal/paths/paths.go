package paths

import (
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Stdin 作为参数时表示读取标准输入。
const Stdin = "-"

// Expand 展开参数中的 glob 模式（支持 **），其余参数原样保留，顺序不变、不去重。
// 已存在的路径不会被当作模式；模式没有匹配时保留原参数，由后续读取报告“不存在”。
func Expand(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		out = append(out, expandOne(a)...)
	}
	return out
}

func expandOne(arg string) []string {
	if arg == Stdin || !hasMeta(arg) {
		return []string{arg}
	}
	if _, err := os.Lstat(arg); err == nil {
		return []string{arg}
	}
	if !doublestar.ValidatePathPattern(arg) {
		return []string{arg}
	}
	matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
	if err != nil || len(matches) == 0 {
		slog.Debug("glob matched nothing", "pattern", arg, "err", err)
		return []string{arg}
	}
	sort.Strings(matches)
	slog.Debug("glob expanded", "pattern", arg, "matches", len(matches))
	return matches
}

func hasMeta(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}
