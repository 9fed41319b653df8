package spinning

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func TestSpinning(t *testing.T) {
	Interval = time.Millisecond
	var out syncBuffer
	s := NewWithTheme(context.Background(), &out, ThemeAscii)
	time.Sleep(20 * time.Millisecond)
	s.Done()
	s.Done()
	text := out.buf.String()
	assert.Contains(t, text, "\b\b|")
	assert.Contains(t, text, "\b\b/")
	assert.True(t, bytes.HasSuffix(out.buf.Bytes(), []byte("\b\b\033[?25h")), "cursor restored: %q", text)
}
