package main

// Notes:
// - notifyContext: we only test the observable behavior (cancellation via
//   stop() and parent propagation). Actual OS signal delivery is not tested.
// - An interrupted run is simulated with an already canceled context.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestNotifyContext - Context creation and cancellation behavior
// ---------------------------------------------------------------------------

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	t.Run("not canceled until stop", func(t *testing.T) {
		t.Parallel()

		ctx, stop := notifyContext(context.Background())
		if ctx.Err() != nil {
			t.Fatal("context should not be canceled initially")
		}
		stop()
		if ctx.Err() == nil {
			t.Fatal("context should be canceled after stop()")
		}
	})

	t.Run("inherits parent cancellation", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := notifyContext(parent)
		defer stop()

		cancel()
		<-ctx.Done()
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_Interrupted - Canceled runs write nothing and exit 1
// ---------------------------------------------------------------------------

func TestRunMain_Interrupted(t *testing.T) {
	t.Parallel()

	src := setupSource(t, map[string]string{"a.md": "a\n", "b.md": "b\n"})
	out := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	env, _, stderr := testEnv()
	if code := runMain(ctx, []string{"--watch", src, out}, env); code != ExitGeneral {
		t.Fatalf("exit code = %d, want %d; stderr = %s", code, ExitGeneral, stderr.String())
	}
	if !strings.Contains(stderr.String(), "2 of 2 document(s) failed") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if _, err := os.Stat(filepath.Join(out, "a.md")); !os.IsNotExist(err) {
		t.Error("interrupted run wrote a.md")
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_WatchKeepsInitialFailure - Leaving watch mode reports failed files
// ---------------------------------------------------------------------------

func TestRunMain_WatchKeepsInitialFailure(t *testing.T) {
	t.Parallel()

	src := setupSource(t, map[string]string{"good.md": "ok\n", "bad.md": "bad \xff bytes\n"})
	out := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	env, stdout, stderr := testEnv()
	if code := runMain(ctx, []string{"--watch", src, out}, env); code != ExitIO {
		t.Fatalf("exit code = %d, want %d; stderr = %s", code, ExitIO, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Watching") {
		t.Errorf("stdout = %q, want watch mode to start", stdout.String())
	}
	if !strings.Contains(stderr.String(), "1 of 2 document(s) failed") {
		t.Errorf("stderr = %q", stderr.String())
	}
}
