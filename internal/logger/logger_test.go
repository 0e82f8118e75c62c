package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 5, 1, 12, 30, 0, 0, time.Local)
}

func TestLogWritesFileAndMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "demo.txt")
	l := NewFile(path)
	l.now = fixedClock

	l.Log("hello")
	l.Logf("frame %d", 3)

	assert.Equal(t, []string{
		"[2024-05-01 12:30:00] hello",
		"[2024-05-01 12:30:00] frame 3",
	}, l.Lines())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[2024-05-01 12:30:00] hello\n[2024-05-01 12:30:00] frame 3\n", string(data))
}

func TestMemoryOnly(t *testing.T) {
	l := NewFile("")
	l.Log("x")
	assert.Len(t, l.Lines(), 1)
}

func TestHistoryIsBounded(t *testing.T) {
	l := NewFile("")
	l.maxLines = 3
	for i := 0; i < 5; i++ {
		l.Logf("%d", i)
	}
	lines := l.Lines()
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], " 2"))
	assert.True(t, strings.HasSuffix(lines[2], " 4"))

	tail := l.Tail(2)
	require.Len(t, tail, 2)
	assert.True(t, strings.HasSuffix(tail[1], " 4"))
	assert.Len(t, l.Tail(10), 3)
}

func TestConcurrentLog(t *testing.T) {
	l := NewFile("")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				l.Log("line")
			}
		}()
	}
	wg.Wait()
	assert.Len(t, l.Lines(), 160)
}
