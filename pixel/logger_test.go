package pixel

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	src := solid(t, 8, 8, FormatRGB, 1, 2, 3)
	if _, _, err := Convert(src, params(8, 8, 2, 2)); err != nil {
		t.Fatal(err)
	}
	for _, msg := range []string{"compositing", "downsampled", "clustered", "quantized"} {
		if !strings.Contains(buf.String(), "msg="+msg) {
			t.Errorf("log output lacks %q:\n%s", msg, buf.String())
		}
	}

	SetLogger(nil)
	buf.Reset()
	if _, _, err := Convert(src, params(8, 8, 2, 2)); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("silenced logger wrote %q", buf.String())
	}
}
