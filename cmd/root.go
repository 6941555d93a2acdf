package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"tc/internal/app"
	"tc/internal/config"
	"tc/internal/count"
	"tc/internal/i18n"
	"tc/internal/logging"
	"tc/internal/paths"
	"tc/internal/textutil"
	"tc/internal/tokenizer"
)

type rootFlags struct {
	Lines       bool
	Words       bool
	Chars       bool
	Tokens      bool
	Model       tokenizer.Model
	Backend     string
	Encoding    string
	Config      string
	Lang        string
	Glob        bool
	Debug       bool
	ShowVersion bool
}

// runConfig 是合并命令行、环境变量和配置文件之后的最终设置，整个运行期间只读。
type runConfig struct {
	Selection count.Selection
	Model     tokenizer.Model
	Backend   tokenizer.Backend
	Encoding  string
	Decode    func([]byte) string
	Lang      string
	Glob      bool
}

func Execute() int {
	root := NewRootCmd(os.Stdin, os.Stdout, os.Stderr)
	root.SetArgs(os.Args[1:])
	if err := root.Execute(); err != nil {
		var ee *ExitError
		if errors.As(err, &ee) {
			if ee.Msg != "" {
				fmt.Fprintln(os.Stderr, ee.Msg)
			}
			return ee.Code
		}
		fmt.Fprintf(os.Stderr, "tc: %v\n", err)
		return ExitArg
	}
	return ExitOK
}

func NewRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{Model: tokenizer.DefaultModel}
	root := &cobra.Command{
		Use:           "tc [flags] [FILE...]",
		Short:         "Count lines, words, characters and tokens",
		Long:          rootLongHelp(),
		Example:       rootExampleHelp(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.ShowVersion {
				printVersion(stdout)
				return nil
			}
			return runCount(cmd, stdin, stdout, stderr, flags, args)
		},
	}
	root.CompletionOptions.HiddenDefaultCmd = true
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	bindFlags(root, flags)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(stdout)
		},
	}
	root.AddCommand(versionCmd)
	return root
}

func bindFlags(cmd *cobra.Command, flags *rootFlags) {
	f := cmd.Flags()
	f.BoolVarP(&flags.Lines, "lines", "l", false, "show line count")
	f.BoolVarP(&flags.Words, "words", "w", false, "show word count")
	f.BoolVarP(&flags.Chars, "chars", "c", false, "show character count")
	f.BoolVarP(&flags.Tokens, "tokens", "t", false, "show token count")
	f.VarP(&flags.Model, "model", "m", "tokenizer model: gpt3, edit, code, chatgpt, gpt4o")
	f.StringVar(&flags.Backend, "backend", "", "tokenizer backend: embedded (default) or tiktoken")
	f.StringVar(&flags.Encoding, "encoding", "", "input encoding: utf-8 (default), gbk, gb18030")
	f.StringVar(&flags.Config, "config", "", "config file (YAML or TOML)")
	f.StringVar(&flags.Lang, "lang", "", "message language, e.g. en or ja (default from LC_ALL/LANG)")
	f.BoolVar(&flags.Glob, "glob", false, "expand glob patterns (including **) in FILE arguments")
	f.BoolVarP(&flags.ShowVersion, "version", "v", false, "print version information")
	f.BoolVar(&flags.Debug, "debug", false, "write debug logs to stderr")
	_ = f.MarkHidden("debug")
}

func runCount(cmd *cobra.Command, stdin io.Reader, stdout, stderr io.Writer, flags *rootFlags, args []string) error {
	level := logging.ParseLevel(os.Getenv(config.EnvPrefix + "LOG_LEVEL"))
	if flags.Debug {
		level = slog.LevelDebug
	}
	logging.Init(stderr, level)

	rc, err := resolveConfig(cmd, flags)
	if err != nil {
		return &ExitError{Code: ExitArg, Msg: fmt.Sprintf("tc: %v", err)}
	}

	var tok count.TokenCounter
	if rc.Selection.Tokens {
		c, err := tokenizer.New(rc.Backend, rc.Model)
		if err != nil {
			return &ExitError{Code: ExitFailure, Msg: fmt.Sprintf("tc: %v", err)}
		}
		slog.Debug("tokenizer ready", "name", c.Name())
		tok = c
	}

	sources := args
	if rc.Glob {
		sources = paths.Expand(args)
	}
	if len(sources) == 0 {
		traceStdin(stdin)
	}
	msgs := i18n.New(rc.Lang)
	slog.Debug("messages", "lang", msgs.Language().String(), "sources", len(sources))
	res, err := app.Run(app.Options{
		Paths:     sources,
		Selection: rc.Selection,
		Tokenizer: tok,
		Decode:    rc.Decode,
		Stdin:     stdin,
		Stdout:    stdout,
		Stderr:    stderr,
		Messages:  msgs,
	})
	if err != nil {
		var we *app.WriteErr
		if errors.As(err, &we) {
			slog.Debug("output failed", "err", we.Err)
			return &ExitError{Code: ExitFailure, Msg: msgs.Message(i18n.ErrWritingStdout)}
		}
		return &ExitError{Code: ExitFailure, Msg: fmt.Sprintf("tc: %v", err)}
	}
	if res.HasFailure() {
		return &ExitError{Code: ExitFailure}
	}
	return nil
}

func resolveConfig(cmd *cobra.Command, flags *rootFlags) (runConfig, error) {
	var rc runConfig
	cfg, source, err := config.Resolve(flags.Config)
	if err != nil {
		return rc, err
	}
	config.ApplyEnv(&cfg, config.EnvPrefix)

	sel := count.Selection{Lines: flags.Lines, Words: flags.Words, Chars: flags.Chars, Tokens: flags.Tokens}
	if sel.IsZero() {
		sel, err = count.ParseSelection(cfg.Metrics)
		if err != nil {
			return rc, err
		}
	}
	rc.Selection = sel.Resolve()

	rc.Model = flags.Model
	if !cmd.Flags().Changed("model") {
		if rc.Model, err = tokenizer.ParseModel(cfg.Model); err != nil {
			return rc, err
		}
	}
	if rc.Backend, err = tokenizer.ParseBackend(firstNonEmpty(flags.Backend, cfg.Backend)); err != nil {
		return rc, err
	}
	rc.Encoding = textutil.NormalizeEncoding(firstNonEmpty(flags.Encoding, cfg.Encoding))
	if rc.Decode, err = textutil.Decoder(rc.Encoding); err != nil {
		return rc, err
	}
	rc.Lang = firstNonEmpty(flags.Lang, cfg.Lang)
	rc.Glob = flags.Glob || cfg.Glob

	slog.Debug("config resolved",
		"config", source,
		"metrics", rc.Selection.String(),
		"model", rc.Model.String(),
		"backend", string(rc.Backend),
		"encoding", rc.Encoding,
		"lang", rc.Lang,
		"glob", rc.Glob,
	)
	return rc, nil
}

func traceStdin(stdin io.Reader) {
	f, ok := stdin.(*os.File)
	if !ok {
		return
	}
	if term.IsTerminal(int(f.Fd())) {
		slog.Debug("reading standard input from a terminal, end with Ctrl-D")
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
