package script

import (
	"testing"
	"time"

	"vtstage/internal/key"
)

func TestParseBlankLine(t *testing.T) {
	cmd, err := Parse("")
	if err != nil || cmd != nil {
		t.Fatalf("got %v, %v", cmd, err)
	}
}

func TestParseCommentLine(t *testing.T) {
	cmd, err := Parse("   # a comment")
	if err != nil || cmd != nil {
		t.Fatalf("got %v, %v", cmd, err)
	}
}

func TestParseStart(t *testing.T) {
	cmd, err := Parse(`start "bash" "-i"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := cmd.(Start)
	if !ok {
		t.Fatalf("got %T", cmd)
	}
	want := []string{"bash", "-i"}
	if len(got.Args) != len(want) || got.Args[0] != want[0] || got.Args[1] != want[1] {
		t.Fatalf("got %v", got.Args)
	}
}

func TestParseStartMissingArgs(t *testing.T) {
	_, err := Parse("start")
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != ExpectedString {
		t.Fatalf("got %v", err)
	}
}

func TestParseSendKeysMixed(t *testing.T) {
	cmd, err := Parse(`send_keys "ab" <Enter>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := cmd.(SendKeys)
	if !ok {
		t.Fatalf("got %T", cmd)
	}
	if len(got.Keys) != 3 {
		t.Fatalf("got %d keys", len(got.Keys))
	}
	if got.Keys[0].Char != 'a' || got.Keys[1].Char != 'b' {
		t.Fatalf("got %v", got.Keys)
	}
	if got.Keys[2].Special != key.Enter {
		t.Fatalf("got %v", got.Keys[2])
	}
}

func TestParseKill(t *testing.T) {
	cmd, err := Parse("kill")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cmd.(Kill); !ok {
		t.Fatalf("got %T", cmd)
	}
}

func TestParseWait(t *testing.T) {
	cmd, err := Parse("wait")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cmd.(Wait); !ok {
		t.Fatalf("got %T", cmd)
	}
}

func TestParseWaitTextDefaultTimeout(t *testing.T) {
	cmd, err := Parse(`wait_text "ready"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := cmd.(WaitText)
	if !ok {
		t.Fatalf("got %T", cmd)
	}
	if got.Text != "ready" || got.Timeout != time.Second {
		t.Fatalf("got %v", got)
	}
}

func TestParseWaitTextExplicitTimeout(t *testing.T) {
	cmd, err := Parse(`wait_text "ready" timeout: 500ms`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := cmd.(WaitText)
	if !ok {
		t.Fatalf("got %T", cmd)
	}
	if got.Timeout != 500*time.Millisecond {
		t.Fatalf("got %v", got.Timeout)
	}
}

func TestParseSleepSeconds(t *testing.T) {
	cmd, err := Parse("sleep 2s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := cmd.(Sleep)
	if !ok || got.Duration != 2*time.Second {
		t.Fatalf("got %v", cmd)
	}
}

func TestParseSleepMillis(t *testing.T) {
	cmd, err := Parse("sleep 250ms")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := cmd.(Sleep)
	if !ok || got.Duration != 250*time.Millisecond {
		t.Fatalf("got %v", cmd)
	}
}

func TestParseSleepUnknownSuffix(t *testing.T) {
	_, err := Parse("sleep 2x")
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != UnknownSuffix {
		t.Fatalf("got %v", err)
	}
}

func TestParsePrint(t *testing.T) {
	cmd, err := Parse(`print "hello world"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := cmd.(Print)
	if !ok || got.Message != "hello world" {
		t.Fatalf("got %v", cmd)
	}
}

func TestParseDumpPng(t *testing.T) {
	cmd, err := Parse(`dump_png "out.png"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := cmd.(DumpPng)
	if !ok || got.Path != "out.png" {
		t.Fatalf("got %v", cmd)
	}
}

func TestParseDumpTxt(t *testing.T) {
	cmd, err := Parse(`dump_txt "out.txt"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := cmd.(DumpTxt)
	if !ok || got.Path != "out.txt" {
		t.Fatalf("got %v", cmd)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("frobnicate")
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != UnknownCommand {
		t.Fatalf("got %v", err)
	}
}

func TestParseStringEscapes(t *testing.T) {
	cmd, err := Parse(`print "line\nbreak\tend\\quote\""`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := cmd.(Print).Message
	want := "line\nbreak\tend\\quote\""
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestParseUnclosedStringLiteral(t *testing.T) {
	_, err := Parse(`print "unterminated`)
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != UnclosedStringLiteral {
		t.Fatalf("got %v", err)
	}
}

func TestParseUnexpectedEscape(t *testing.T) {
	_, err := Parse(`print "bad \q escape"`)
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != UnexpectedEscape {
		t.Fatalf("got %v", err)
	}
}

func TestParseUnclosedKeyLiteral(t *testing.T) {
	_, err := Parse("send_keys <Enter")
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != UnclosedKeyLiteral {
		t.Fatalf("got %v", err)
	}
}

func TestParseExpectedDuration(t *testing.T) {
	_, err := Parse(`sleep "not a duration"`)
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != ExpectedDuration {
		t.Fatalf("got %v", err)
	}
}

func TestParseUnexpectedCharacter(t *testing.T) {
	_, err := Parse("kill @")
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != UnexpectedCharacter {
		t.Fatalf("got %v", err)
	}
}
