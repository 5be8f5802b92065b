package debug

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStartRuntimeLogger_IncludesPipelineStats(t *testing.T) {
	out := &lockedBuffer{}
	logger := slog.New(slog.NewJSONHandler(out, nil))
	stop := StartRuntimeLogger(5*time.Millisecond, logger, func() []slog.Attr {
		return []slog.Attr{slog.Uint64("mosaic_updates", 7)}
	})
	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), `"mosaic_updates":7`) {
		if time.Now().After(deadline) {
			t.Fatalf("no runtime line logged: %q", out.String())
		}
		time.Sleep(5 * time.Millisecond)
	}
	stop()
	stop()
	if !strings.Contains(out.String(), `"goroutines"`) {
		t.Fatalf("missing goroutine count: %q", out.String())
	}
}
