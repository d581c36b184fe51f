package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlainModeLeavesTextUnstyled(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(&Config{Mode: ModePlain, Writer: &buf})
	t.Cleanup(func() { SetDefault(nil) })

	if got := Success("ok"); got != "ok" {
		t.Errorf("Success in plain mode = %q", got)
	}
	if got := Error("bad"); got != "bad" {
		t.Errorf("Error in plain mode = %q", got)
	}

	Printf("applied %d\n", 3)
	Println("done")
	out := buf.String()
	if !strings.Contains(out, "applied 3") || !strings.Contains(out, "done") {
		t.Errorf("output = %q", out)
	}
}

func TestDefaultIsLazy(t *testing.T) {
	SetDefault(nil)
	if Default() == nil {
		t.Fatal("Default should auto-detect a config")
	}
}
