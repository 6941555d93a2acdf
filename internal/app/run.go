package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"tc/internal/count"
	"tc/internal/i18n"
	"tc/internal/output"
	"tc/internal/paths"
)

// Run 按声明顺序逐个处理输入源：读入、计数、立即输出一行并累加到合计。
// 单个源失败只输出诊断并计数，不会中断；声明了多个源时最后输出合计行。
// 返回的 error 是 ErrNoTokenizer 或 *WriteErr，源失败体现在 Result.Failed。
func Run(opts Options) (Result, error) {
	var res Result
	if opts.Messages == nil {
		opts.Messages = i18n.New("en")
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	sel := opts.Selection.Resolve()
	if sel.Tokens && opts.Tokenizer == nil {
		return res, ErrNoTokenizer
	}
	sc := count.Scanner{Selection: sel, Decode: opts.Decode}
	if sel.Tokens {
		sc.Tokenizer = opts.Tokenizer
	}

	if len(opts.Paths) == 0 {
		res.Sources = 1
		data, err := readStdin(opts.Stdin, "")
		if err != nil {
			report(opts, &res, err)
			return res, nil
		}
		c := sc.Scan(data)
		trace("<stdin>", c, len(data))
		if err := output.Write(opts.Stdout, c, sel, ""); err != nil {
			return res, &WriteErr{Err: err}
		}
		res.Total.Add(c)
		return res, nil
	}

	for _, p := range opts.Paths {
		res.Sources++
		var (
			data []byte
			err  error
		)
		if p == paths.Stdin {
			data, err = readStdin(opts.Stdin, p)
		} else {
			data, err = readFile(p)
		}
		if err != nil {
			report(opts, &res, err)
			continue
		}
		c := sc.Scan(data)
		trace(p, c, len(data))
		if err := output.Write(opts.Stdout, c, sel, p); err != nil {
			return res, &WriteErr{Err: err}
		}
		res.Total.Add(c)
	}

	if res.Sources > 1 {
		if err := output.Write(opts.Stdout, res.Total, sel, opts.Messages.Message(i18n.Total)); err != nil {
			return res, &WriteErr{Err: err}
		}
	}
	slog.Debug("run finished", "sources", res.Sources, "failed", res.Failed)
	return res, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, classifyOpen(path, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &SourceErr{Kind: KindReadFailed, Name: path, Err: err}
	}
	return data, nil
}

func readStdin(r io.Reader, name string) ([]byte, error) {
	if r == nil {
		return nil, &SourceErr{Kind: KindStdinFailed, Name: name, Err: fmt.Errorf("no standard input")}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &SourceErr{Kind: KindStdinFailed, Name: name, Err: err}
	}
	return data, nil
}

func report(opts Options, res *Result, err error) {
	res.Failed++
	se, ok := err.(*SourceErr)
	if !ok {
		se = &SourceErr{Kind: KindReadFailed, Err: err}
	}
	slog.Debug("source failed", "source", se.Name, "kind", string(se.Kind), "err", se.Err)
	fmt.Fprintln(opts.Stderr, se.message(opts.Messages))
}

func trace(name string, c count.Counts, size int) {
	slog.Debug("source scanned", "source", name, "bytes", size,
		"lines", c.Lines, "words", c.Words, "chars", c.Chars, "tokens", c.Tokens)
}
