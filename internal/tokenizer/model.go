package tokenizer

import (
	"fmt"
	"strings"
)

// Model 是可选的分词模型，封闭枚举。零值为基线模型 GPT3。
type Model int

const (
	GPT3 Model = iota
	Edit
	Code
	ChatGPT
	GPT4o
)

const DefaultModel = GPT3

var models = []Model{GPT3, Edit, Code, ChatGPT, GPT4o}

// Models 按帮助文本中的顺序返回全部模型。
func Models() []Model {
	out := make([]Model, len(models))
	copy(out, models)
	return out
}

func (m Model) String() string {
	switch m {
	case GPT3:
		return "gpt3"
	case Edit:
		return "edit"
	case Code:
		return "code"
	case ChatGPT:
		return "chatgpt"
	case GPT4o:
		return "gpt4o"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

// Encoding 返回模型对应的 BPE 编码名。
func (m Model) Encoding() string {
	switch m {
	case GPT3:
		return "r50k_base"
	case Edit:
		return "p50k_edit"
	case Code:
		return "p50k_base"
	case ChatGPT:
		return "cl100k_base"
	case GPT4o:
		return "o200k_base"
	default:
		return ""
	}
}

func (m Model) Valid() bool {
	return m.Encoding() != ""
}

func ParseModel(s string) (Model, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return DefaultModel, nil
	}
	for _, m := range models {
		if v == m.String() || v == m.Encoding() {
			return m, nil
		}
	}
	switch v {
	case "gpt-3", "davinci":
		return GPT3, nil
	case "gpt-4", "gpt4", "gpt-3.5-turbo":
		return ChatGPT, nil
	case "gpt-4o":
		return GPT4o, nil
	}
	return DefaultModel, fmt.Errorf("unknown tokenizer model %q (want %s)", s, strings.Join(modelNames(), ", "))
}

func modelNames() []string {
	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.String())
	}
	return names
}

// Set 让 *Model 可以直接作为命令行 flag 值。
func (m *Model) Set(s string) error {
	v, err := ParseModel(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m *Model) Type() string {
	return "model"
}
