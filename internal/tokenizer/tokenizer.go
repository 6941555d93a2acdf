// Package tokenizer 把 BPE 分词库包装成只返回 token 数的计数器。
package tokenizer

import (
	"fmt"
	"log/slog"
	"strings"
)

// Counter 返回文本的 token 数。文本按普通文本处理，特殊 token 标记不做特殊解析。
type Counter interface {
	Count(text string) int
	Name() string
}

type Backend string

const (
	// BackendEmbedded 使用 tiktoken-go/tokenizer，词表随二进制内置。
	BackendEmbedded Backend = "embedded"
	// BackendTiktoken 使用 pkoukk/tiktoken-go，词表由离线 loader 提供。
	BackendTiktoken Backend = "tiktoken"
)

func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendEmbedded:
		return BackendEmbedded, nil
	case BackendTiktoken:
		return BackendTiktoken, nil
	default:
		return "", fmt.Errorf("unknown tokenizer backend %q (want embedded or tiktoken)", s)
	}
}

// New 构造指定后端与模型的计数器。词表加载失败时返回错误；构造成功后 Count 不会失败。
func New(backend Backend, model Model) (Counter, error) {
	if !model.Valid() {
		return nil, fmt.Errorf("invalid tokenizer model %s", model)
	}
	slog.Debug("loading tokenizer", "backend", string(backend), "model", model.String(), "encoding", model.Encoding())
	var (
		c   Counter
		err error
	)
	switch backend {
	case "", BackendEmbedded:
		c, err = newEmbedded(model)
	case BackendTiktoken:
		c, err = newTiktoken(model)
	default:
		return nil, fmt.Errorf("unknown tokenizer backend %q", string(backend))
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
