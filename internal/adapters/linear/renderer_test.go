package linear_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"go.trai.ch/bake/internal/adapters/linear"
	"go.trai.ch/zerr"
)

func TestRenderer_StepLifecycle(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	start := time.Now()
	r.OnTaskStart("root", "", "Linux-x64", start)
	r.OnTaskStart("span1", "root", "Linux-x64 C Compile", start)

	if !strings.Contains(stderr.String(), "● Linux-x64\n") {
		t.Errorf("expected platform heading, got: %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "[Linux-x64 C Compile] Starting...") {
		t.Errorf("expected step start message, got: %q", stderr.String())
	}

	r.OnTaskLog("span1", []byte("first line\n"))
	r.OnTaskLog("span1", []byte("second line\n"))

	want := "[Linux-x64 C Compile] first line\n[Linux-x64 C Compile] second line\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}

	r.OnTaskComplete("span1", start.Add(100*time.Millisecond), nil)
	if !strings.Contains(stderr.String(), "[Linux-x64 C Compile] ✓ Completed in 100ms") {
		t.Errorf("expected completion message, got: %q", stderr.String())
	}

	if err := r.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if err := r.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
}

func TestRenderer_PartialLines(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	start := time.Now()
	r.OnTaskStart("span1", "root", "step", start)

	r.OnTaskLog("span1", []byte("partial"))
	if strings.Contains(stdout.String(), "partial") {
		t.Errorf("partial line should not be printed immediately")
	}

	r.OnTaskLog("span1", []byte(" line\r\n"))
	if stdout.String() != "[step] partial line\n" {
		t.Errorf("expected complete line, got: %q", stdout.String())
	}

	r.OnTaskLog("span1", []byte("unflushed"))
	r.OnTaskComplete("span1", start.Add(50*time.Millisecond), nil)

	if !strings.Contains(stdout.String(), "[step] unflushed\n") {
		t.Errorf("expected flushed partial line on complete, got: %q", stdout.String())
	}
}

func TestRenderer_StepError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	start := time.Now()
	r.OnTaskStart("span1", "root", "Windows-x64 C Compile", start)
	r.OnTaskComplete("span1", start.Add(50*time.Millisecond), zerr.New("command failed"))

	got := stderr.String()
	if !strings.Contains(got, "✗ Failed after 50ms: command failed") {
		t.Errorf("expected failure message, got: %q", got)
	}
}

func TestRenderer_UnknownSpanIgnored(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	r.OnTaskLog("missing", []byte("data\n"))
	r.OnTaskComplete("missing", time.Now(), nil)

	if stdout.Len() != 0 || stderr.Len() != 0 {
		t.Errorf("expected no output, got stdout=%q stderr=%q", stdout.String(), stderr.String())
	}
}

func TestRenderer_ConcurrentSteps(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	start := time.Now()
	r.OnTaskStart("span1", "root", "task1", start)
	r.OnTaskStart("span2", "root", "task2", start)

	r.OnTaskLog("span1", []byte("task1 line 1\n"))
	r.OnTaskLog("span2", []byte("task2 "))
	r.OnTaskLog("span1", []byte("task1 line 2\n"))
	r.OnTaskLog("span2", []byte("line 1\n"))

	want := "[task1] task1 line 1\n[task1] task1 line 2\n[task2] task2 line 1\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
}

func TestRenderer_StopFlushesBuffers(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	r.OnTaskStart("span1", "root", "step", time.Now())
	r.OnTaskLog("span1", []byte("tail"))

	if err := r.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if stdout.String() != "[step] tail\n" {
		t.Errorf("stdout = %q, want flushed tail", stdout.String())
	}
}
