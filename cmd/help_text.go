package cmd

import "strings"

func rootLongHelp() string {
	return strings.TrimSpace(`
Count lines, words, characters and language-model tokens.

With no FILE, or when FILE is -, read standard input. With more than one
FILE a total line is printed last. Without -l/-w/-c/-t all four counts are
shown, in the order lines, words, characters, tokens.

Counting rules:
- lines: newline-separated segments; a final newline does not start an extra line
- words: runs of non-whitespace bytes (ASCII whitespace only)
- chars: Unicode characters after UTF-8 decoding; each invalid byte sequence counts as one
- tokens: BPE tokens of the selected model

Models (-m/--model):
  gpt3     r50k_base (default)
  edit     p50k_edit
  code     p50k_base
  chatgpt  cl100k_base
  gpt4o    o200k_base

Configuration (flags win over environment, environment over the file):
- file: --config PATH, $TC_CONFIG, or <user config dir>/tc/config.yaml (.toml also accepted)
- keys: model, metrics, backend, encoding, lang
- environment: TC_MODEL, TC_METRICS, TC_BACKEND, TC_ENCODING, TC_LANG

Exit status:
  0  every input was read
  1  at least one input could not be opened or read, or output failed
  2  invalid arguments or configuration
`)
}

func rootExampleHelp() string {
	return strings.TrimSpace(`
  # all counts for two files plus a total line
  tc notes.md README.md

  # lines and words from standard input
  cat notes.md | tc -lw

  # GPT-4o tokens only
  tc -t --model gpt4o prompt.txt

  # every Markdown file below docs/
  tc --glob 'docs/**/*.md'

  # GBK encoded input
  tc --encoding gbk legacy.txt
`)
}
