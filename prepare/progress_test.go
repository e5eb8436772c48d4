package prepare

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_ReportsAtIntervals(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "Parsed", 100, 10)

	tracker.Start()
	tracker.Increment(25)
	tracker.Increment(25)
	tracker.Increment(50)

	assert.Greater(t, tracker.Elapsed(), time.Duration(0))

	output := buf.String()
	assert.Contains(t, output, "Parsed: ")
	assert.Contains(t, output, "100/100")
	assert.Contains(t, output, "100.0%")
}

func TestProgressTracker_FinishCompletesAndPrintsNewline(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "Loaded", 100, 10)

	tracker.Start()
	tracker.Increment(75)
	tracker.Finish()

	output := buf.String()
	assert.Contains(t, output, "Loaded: 100/100")
	assert.Contains(t, output, "\n", "finish should print a trailing newline")
}

func TestProgressTracker_IgnoredBeforeStart(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "Parsed", 10, 1)

	tracker.Increment(5)
	tracker.Finish()

	assert.Empty(t, buf.String())
	assert.Equal(t, time.Duration(0), tracker.Elapsed())
}

func TestProgressTracker_ConcurrentIncrements(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "Parsed", 64, 8)
	tracker.Start()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 8; j++ {
				tracker.Increment(1)
			}
		}()
	}
	wg.Wait()
	tracker.Finish()

	assert.Contains(t, buf.String(), "64/64")
}
