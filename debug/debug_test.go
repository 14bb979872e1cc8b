package debug

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLogMemStats_WarnsOnceOnRSSFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logged := false
	fail := func() (uint64, error) { return 0, errors.New("unsupported") }
	logMemStats(logger, fail, &logged)
	logMemStats(logger, fail, &logged)
	out := buf.String()
	if strings.Count(out, "rss query failed") != 1 {
		t.Fatalf("expected exactly one warning, got:\n%s", out)
	}
	if strings.Count(out, `"msg":"memstats"`) != 2 {
		t.Fatalf("expected two memstats lines, got:\n%s", out)
	}
}
