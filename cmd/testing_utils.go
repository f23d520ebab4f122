// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test environments,
// running the CLI and capturing its output.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/closet/internal/configs"
	"github.com/PolarWolf314/closet/internal/vault"
)

// testEnv describes the temporary directories a test runs in.
type testEnv struct {
	configDir string
	dataDir   string
}

// setupTestEnvironment points closet at temporary config and data
// directories and writes a config with cheap key derivation.
func setupTestEnvironment(t *testing.T) testEnv {
	t.Helper()

	env := testEnv{
		configDir: filepath.Join(t.TempDir(), "config"),
		dataDir:   filepath.Join(t.TempDir(), "data"),
	}
	t.Setenv(configs.EnvConfigDir, env.configDir)
	t.Setenv(configs.EnvDataDir, env.dataDir)
	t.Setenv("NO_COLOR", "1")

	config := &configs.Config{
		KDF: configs.KDFConfig{Time: 1, MemoryKiB: 64, Threads: 1},
	}
	if err := configs.SaveConfig(filepath.Join(env.configDir, "config.toml"), config); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	t.Cleanup(ResetGlobalState)
	return env
}

// dataFile returns the path of a user's data file.
func (e testEnv) dataFile(username string) string {
	return filepath.Join(e.dataDir, username+vault.Extension)
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes
	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// runCLI runs closet as alice with --password-stdin, feeding input on stdin.
// The first line of input is the password.
func runCLI(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	return runCLIAs(t, "alice", input, args...)
}

// runCLIAs is runCLI for another user.
func runCLIAs(t *testing.T, username, input string, args ...string) (string, error) {
	t.Helper()
	return runCLIWithReader(t, username, strings.NewReader(input), args...)
}

// runCLIWithReader runs closet as username reading stdin from in.
func runCLIWithReader(t *testing.T, username string, in io.Reader, args ...string) (string, error) {
	t.Helper()
	ResetGlobalState()

	RootCmd.SetArgs(append([]string{"--password-stdin", "--user", username}, args...))
	RootCmd.SetIn(in)
	t.Cleanup(func() {
		RootCmd.SetIn(nil)
		RootCmd.SetArgs(nil)
	})

	return captureOutput(RootCmd.Execute)
}

// mustRun runs the CLI and fails the test if the command returns an error.
func mustRun(t *testing.T, input string, args ...string) string {
	t.Helper()
	output, err := runCLI(t, input, args...)
	if err != nil {
		t.Fatalf("closet %s failed: %v\nOutput: %s", strings.Join(args, " "), err, output)
	}
	return output
}

// lineReader hands out one line per Read call. A hook registered for a line
// index runs just before that line is read, which lets a test change the
// environment part way through an interactive session.
type lineReader struct {
	lines  []string
	before map[int]func()
	next   int
	buf    []byte
}

func (r *lineReader) Read(p []byte) (int, error) {
	if len(r.buf) == 0 {
		if r.next >= len(r.lines) {
			return 0, io.EOF
		}
		if hook := r.before[r.next]; hook != nil {
			hook()
		}
		r.buf = []byte(r.lines[r.next] + "\n")
		r.next++
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}
