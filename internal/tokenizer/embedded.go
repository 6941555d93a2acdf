package tokenizer

import (
	"fmt"
	"log/slog"

	tkz "github.com/tiktoken-go/tokenizer"
)

type embeddedCounter struct {
	model Model
	codec tkz.Codec
}

func newEmbedded(model Model) (*embeddedCounter, error) {
	codec, err := tkz.Get(tkz.Encoding(model.Encoding()))
	if err != nil {
		return nil, fmt.Errorf("load %s encoding: %w", model.Encoding(), err)
	}
	return &embeddedCounter{model: model, codec: codec}, nil
}

// Count 返回 text 的 token 数。内置词表的编码不会失败；万一失败记一条 debug 日志并按 0 计。
func (c *embeddedCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	ids, _, err := c.codec.Encode(text)
	if err != nil {
		slog.Debug("encode failed", "encoding", c.model.Encoding(), "bytes", len(text), "err", err)
		return 0
	}
	return len(ids)
}

func (c *embeddedCounter) Name() string {
	return fmt.Sprintf("%s (%s, embedded)", c.model, c.model.Encoding())
}
