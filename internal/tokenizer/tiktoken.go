package tokenizer

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

var loaderOnce sync.Once

type tiktokenCounter struct {
	model Model
	enc   *tiktoken.Tiktoken
}

func newTiktoken(model Model) (*tiktokenCounter, error) {
	// 默认 loader 会联网下载词表，这里换成离线 loader。
	loaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})
	enc, err := tiktoken.GetEncoding(model.Encoding())
	if err != nil {
		return nil, fmt.Errorf("load %s encoding: %w", model.Encoding(), err)
	}
	return &tiktokenCounter{model: model, enc: enc}, nil
}

func (c *tiktokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(c.enc.EncodeOrdinary(text))
}

func (c *tiktokenCounter) Name() string {
	return fmt.Sprintf("%s (%s, tiktoken)", c.model, c.model.Encoding())
}
