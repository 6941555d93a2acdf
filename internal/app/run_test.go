package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tc/internal/count"
	"tc/internal/i18n"
)

type wordTokens struct{ calls int }

func (w *wordTokens) Count(text string) int {
	w.calls++
	return len(strings.Fields(text))
}

type failReader struct{}

func (failReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

type failWriter struct{ n int }

func (f *failWriter) Write(p []byte) (int, error) {
	f.n++
	return 0, errors.New("broken pipe")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func lines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestRunMissingMiddleSource(t *testing.T) {
	tmp := t.TempDir()
	a := writeFile(t, tmp, "a.txt", "Hello, world!\n")
	missing := filepath.Join(tmp, "missing.txt")
	c := writeFile(t, tmp, "c.txt", "This is another test.\n")

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	res, err := Run(Options{
		Paths:     []string{a, missing, c},
		Selection: count.Selection{Lines: true, Words: true, Chars: true},
		Stdout:    stdout,
		Stderr:    stderr,
		Messages:  i18n.New("en"),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	out := lines(stdout.String())
	want := []string{
		"       1       2      14 " + a,
		"       1       4      22 " + c,
		"       2       6      36 total",
	}
	if len(out) != len(want) {
		t.Fatalf("unexpected output: %q", stdout.String())
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("line %d: got %q want %q", i, out[i], want[i])
		}
	}
	diag := lines(stderr.String())
	if len(diag) != 1 || diag[0] != "tc: "+missing+": No such file" {
		t.Fatalf("unexpected diagnostics: %q", stderr.String())
	}
	if !res.HasFailure() || res.Failed != 1 || res.Sources != 3 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Total != (count.Counts{Lines: 2, Words: 6, Chars: 36}) {
		t.Fatalf("unexpected total: %+v", res.Total)
	}
}

func TestRunStdinHasNoTotal(t *testing.T) {
	stdout := &bytes.Buffer{}
	tok := &wordTokens{}
	res, err := Run(Options{
		Selection: count.Selection{},
		Tokenizer: tok,
		Stdin:     strings.NewReader("hello world\nrust is great"),
		Stdout:    stdout,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if stdout.String() != "       2       5      25       5\n" {
		t.Fatalf("unexpected output: %q", stdout.String())
	}
	if res.HasFailure() || res.Sources != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if tok.calls != 1 {
		t.Fatalf("tokenizer should run once, got %d", tok.calls)
	}
}

func TestRunEmptyStdin(t *testing.T) {
	stdout := &bytes.Buffer{}
	if _, err := Run(Options{Selection: count.Selection{Lines: true, Words: true, Chars: true}, Stdin: strings.NewReader(""), Stdout: stdout}); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "       0       0       0\n" {
		t.Fatalf("unexpected output: %q", stdout.String())
	}
}

func TestRunSingleMetricNoPadding(t *testing.T) {
	stdout := &bytes.Buffer{}
	if _, err := Run(Options{Selection: count.Selection{Words: true}, Stdin: strings.NewReader("hello world rust"), Stdout: stdout}); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "3\n" {
		t.Fatalf("unexpected output: %q", stdout.String())
	}
}

func TestRunStdinReadFailure(t *testing.T) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	res, err := Run(Options{Selection: count.Selection{Lines: true}, Stdin: failReader{}, Stdout: stdout, Stderr: stderr, Messages: i18n.New("ja")})
	if err != nil {
		t.Fatalf("stdin failure must not be fatal: %v", err)
	}
	if !res.HasFailure() {
		t.Fatalf("expected failure")
	}
	if stdout.Len() != 0 {
		t.Fatalf("unexpected output: %q", stdout.String())
	}
	if strings.TrimSpace(stderr.String()) != "tc: 標準入力の読み込み中にエラーが発生しました" {
		t.Fatalf("unexpected diagnostic: %q", stderr.String())
	}
}

func TestRunDirectoryIsReadFailure(t *testing.T) {
	tmp := t.TempDir()
	a := writeFile(t, tmp, "a.txt", "x\n")
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	res, err := Run(Options{
		Paths:     []string{tmp, a},
		Selection: count.Selection{Lines: true},
		Stdout:    stdout,
		Stderr:    stderr,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Failed != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !strings.Contains(stderr.String(), "tc: "+tmp+": Error reading file: ") {
		t.Fatalf("unexpected diagnostic: %q", stderr.String())
	}
	if stdout.String() != "1 "+a+"\n1 total\n" {
		t.Fatalf("unexpected output: %q", stdout.String())
	}
}

func TestRunPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	tmp := t.TempDir()
	p := writeFile(t, tmp, "secret.txt", "x")
	if err := os.Chmod(p, 0o000); err != nil {
		t.Fatal(err)
	}
	stderr := &bytes.Buffer{}
	res, err := Run(Options{Paths: []string{p}, Tokenizer: &wordTokens{}, Stdout: &bytes.Buffer{}, Stderr: stderr})
	if err != nil {
		t.Fatal(err)
	}
	if res.Failed != 1 || strings.TrimSpace(stderr.String()) != "tc: "+p+": Permission denied" {
		t.Fatalf("unexpected: %+v %q", res, stderr.String())
	}
}

func TestRunAllFailedStillPrintsTotal(t *testing.T) {
	tmp := t.TempDir()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	res, err := Run(Options{
		Paths:     []string{filepath.Join(tmp, "x"), filepath.Join(tmp, "y")},
		Selection: count.Selection{Lines: true, Words: true},
		Stdout:    stdout,
		Stderr:    stderr,
		Messages:  i18n.New("ja"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "       0       0 合計\n" {
		t.Fatalf("unexpected output: %q", stdout.String())
	}
	if len(lines(stderr.String())) != 2 || res.Failed != 2 {
		t.Fatalf("unexpected diagnostics: %q", stderr.String())
	}
}

func TestRunSingleFileHasNoTotal(t *testing.T) {
	tmp := t.TempDir()
	a := writeFile(t, tmp, "a.txt", "hello\n")
	stdout := &bytes.Buffer{}
	if _, err := Run(Options{Paths: []string{a}, Selection: count.Selection{Chars: true}, Stdout: stdout}); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "6 "+a+"\n" {
		t.Fatalf("unexpected output: %q", stdout.String())
	}
}

func TestRunDashReadsStdin(t *testing.T) {
	tmp := t.TempDir()
	a := writeFile(t, tmp, "a.txt", "one two\n")
	stdout := &bytes.Buffer{}
	_, err := Run(Options{
		Paths:     []string{"-", a},
		Selection: count.Selection{Words: true},
		Stdin:     strings.NewReader("a b c"),
		Stdout:    stdout,
	})
	if err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "3 -\n2 "+a+"\n5 total\n" {
		t.Fatalf("unexpected output: %q", stdout.String())
	}
}

func TestRunWriteFailureIsFatal(t *testing.T) {
	tmp := t.TempDir()
	a := writeFile(t, tmp, "a.txt", "x")
	b := writeFile(t, tmp, "b.txt", "y")
	w := &failWriter{}
	_, err := Run(Options{Paths: []string{a, b}, Selection: count.Selection{Lines: true}, Stdout: w})
	var we *WriteErr
	if !errors.As(err, &we) {
		t.Fatalf("expected WriteErr, got %v", err)
	}
	if w.n != 1 {
		t.Fatalf("run must stop at the first failed write, got %d writes", w.n)
	}
}

func TestRunTokenizerOnlyWhenSelected(t *testing.T) {
	tok := &wordTokens{}
	_, err := Run(Options{
		Selection: count.Selection{Lines: true, Words: true},
		Tokenizer: tok,
		Stdin:     strings.NewReader("a b"),
		Stdout:    &bytes.Buffer{},
	})
	if err != nil {
		t.Fatal(err)
	}
	if tok.calls != 0 {
		t.Fatalf("tokenizer must not run, got %d calls", tok.calls)
	}
}

func TestRunTokensWithoutTokenizer(t *testing.T) {
	stdout := &bytes.Buffer{}
	_, err := Run(Options{
		Selection: count.Selection{Lines: true, Tokens: true},
		Stdin:     strings.NewReader("a b"),
		Stdout:    stdout,
	})
	if !errors.Is(err, ErrNoTokenizer) {
		t.Fatalf("expected ErrNoTokenizer, got %v", err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("nothing must be printed, got %q", stdout.String())
	}

	// 未选择时默认全选，同样需要分词器
	if _, err := Run(Options{Stdin: strings.NewReader("a"), Stdout: stdout}); !errors.Is(err, ErrNoTokenizer) {
		t.Fatalf("default selection needs a tokenizer, got %v", err)
	}
}

func TestRunOrderIndependentTotal(t *testing.T) {
	tmp := t.TempDir()
	a := writeFile(t, tmp, "a.txt", "hello world\nrust is great")
	b := writeFile(t, tmp, "b.txt", "Hello, 世界!")
	sel := count.Selection{Lines: true, Words: true, Chars: true}
	r1, err := Run(Options{Paths: []string{a, b}, Selection: sel, Stdout: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	r2, err := Run(Options{Paths: []string{b, a}, Selection: sel, Stdout: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if r1.Total != r2.Total || r1.Total != (count.Counts{Lines: 3, Words: 7, Chars: 35}) {
		t.Fatalf("totals differ: %+v vs %+v", r1.Total, r2.Total)
	}
}

func TestDescribe(t *testing.T) {
	_, err := os.Open(filepath.Join(t.TempDir(), "nope"))
	if got := describe(err); strings.Contains(got, "nope") {
		t.Fatalf("describe should drop the path: %q", got)
	}
	if describe(errors.New("plain")) != "plain" {
		t.Fatalf("plain error changed")
	}
}
