package csvsort

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// engineLogTag prefixes every engine output line forwarded to the logger.
const engineLogTag = "sqlite3: "

// columnMismatchPattern recognizes the engine diagnostic emitted when an
// imported row does not match the declared column count. Matching it is a
// best-effort fast abort: the engine would otherwise keep importing a file
// that can never satisfy the schema. The general non-zero-exit path remains
// the fallback if the wording ever changes.
var columnMismatchPattern = regexp.MustCompile(`expected \d+ columns but found \d+`)

// engineRun holds the shared state of one engine invocation. Stream
// callbacks fire on separate goroutines, so logging and error collection
// are serialized by the mutex.
type engineRun struct {
	mu       sync.Mutex
	logf     func(string)
	errLines []string
	mismatch bool
	kill     func()
}

// runEngine launches the external engine with the database file path as its
// sole argument, streams the script to its standard input, and waits for it
// to exit. All output lines are forwarded to the logger; stderr is also
// collected for error reporting. A launch failure is returned unchanged.
func runEngine(ctx context.Context, executable, dbPath, script string, logf func(string)) error {
	cmd := exec.CommandContext(ctx, executable, dbPath)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("csvsort: open engine stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("csvsort: open engine stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("csvsort: open engine stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	run := &engineRun{
		logf: logf,
		kill: func() { _ = cmd.Process.Kill() },
	}

	var g errgroup.Group
	g.Go(func() error {
		// The engine may exit before consuming the whole script, so a
		// short write here is not an error in itself.
		_, _ = io.WriteString(stdin, script)
		_ = stdin.Close()
		return nil
	})
	g.Go(func() error {
		run.forward(stdout, false)
		return nil
	})
	g.Go(func() error {
		run.forward(stderr, true)
		return nil
	})
	_ = g.Wait()

	waitErr := cmd.Wait()
	if waitErr == nil && !run.mismatch {
		return nil
	}

	exitCode := -1
	if waitErr == nil {
		exitCode = 0
	} else if exitErr, ok := waitErr.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	} else {
		return waitErr
	}

	base := ErrEngineFailure
	if run.mismatch {
		base = ErrColumnMismatch
	}
	return fmt.Errorf("%w: engine exited with code %d\n%s", base, exitCode, strings.Join(run.reported(), "\n"))
}

// forward reads a stream line by line and hands each line to emit. A stream
// that ends in a newline still yields one trailing empty line; this is
// preserved for log-format compatibility.
func (r *engineRun) forward(stream io.Reader, isStderr bool) {
	br := bufio.NewReader(stream)
	for {
		line, err := br.ReadString('\n')
		r.emit(strings.TrimSuffix(line, "\n"), isStderr)
		if err != nil {
			return
		}
	}
}

// emit logs one line and, for stderr, records it and checks the mismatch
// pattern. On the first match an explanatory line is appended and the
// engine is terminated: a schema mismatch is structural and cannot be
// resolved by letting the import finish.
func (r *engineRun) emit(line string, isStderr bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logf(engineLogTag + line)
	if !isStderr {
		return
	}

	r.errLines = append(r.errLines, line)
	if !r.mismatch && columnMismatchPattern.MatchString(line) {
		r.mismatch = true
		r.errLines = append(r.errLines, "csvsort: the declared schema does not match the number of columns in the source file")
		r.kill()
	}
}

// reported returns the collected stderr lines capped for error messages.
func (r *engineRun) reported() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errLines) > maxReportedErrorLines {
		return r.errLines[:maxReportedErrorLines]
	}
	return r.errLines
}
