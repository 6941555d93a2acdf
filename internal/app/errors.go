package app

import (
	"errors"
	"fmt"
	"io/fs"

	"tc/internal/i18n"
)

// ErrNoTokenizer 表示选择了 tokens 却没有提供分词器，此时不会读取任何输入。
var ErrNoTokenizer = errors.New("tokens selected but no tokenizer configured")

type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindPermissionDenied Kind = "permission_denied"
	KindOpenFailed       Kind = "open_failed"
	KindReadFailed       Kind = "read_failed"
	KindStdinFailed      Kind = "stdin_read_failed"
)

// SourceErr 是单个输入源的失败，记录后继续处理下一个源。
type SourceErr struct {
	Kind Kind
	Name string
	Err  error
}

func (e *SourceErr) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Name, e.Kind, e.Err)
}

func (e *SourceErr) Unwrap() error { return e.Err }

func (e *SourceErr) message(m Messages) string {
	switch e.Kind {
	case KindNotFound:
		return m.Message(i18n.ErrNotFound, e.Name)
	case KindPermissionDenied:
		return m.Message(i18n.ErrPermissionDenied, e.Name)
	case KindOpenFailed:
		return m.Message(i18n.ErrOpeningFile, e.Name, describe(e.Err))
	case KindStdinFailed:
		return m.Message(i18n.ErrReadingStdin)
	default:
		return m.Message(i18n.ErrReadingFile, e.Name, describe(e.Err))
	}
}

// WriteErr 表示结果输出失败；输出端坏了，整个运行立即终止。
type WriteErr struct{ Err error }

func (e *WriteErr) Error() string { return fmt.Sprintf("write output: %v", e.Err) }

func (e *WriteErr) Unwrap() error { return e.Err }

func classifyOpen(name string, err error) *SourceErr {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &SourceErr{Kind: KindNotFound, Name: name, Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &SourceErr{Kind: KindPermissionDenied, Name: name, Err: err}
	default:
		return &SourceErr{Kind: KindOpenFailed, Name: name, Err: err}
	}
}

// describe 去掉 *fs.PathError 里重复的操作和路径，只留底层原因（如 "is a directory"）。
func describe(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}
