// Package reportkit holds the pieces shared by the bench, coverage and fuzz
// report tools: locating the module root, stamping report headers and
// writing files under target/reports.
package reportkit

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const rule = 72

// Root walks up from the calling source file until it finds go.mod.
func Root() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		log.Fatal("could not determine script directory")
	}
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			log.Fatal("could not find project root (no go.mod found)")
		}
		dir = parent
	}
}

// Dir returns target/reports under the module root, creating it if needed.
func Dir() string {
	dir := filepath.Join(Root(), "target", "reports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("creating report directory: %v", err)
	}
	return dir
}

// GoVersion reports the toolchain that will run the tests.
func GoVersion() string {
	out, err := exec.Command("go", "version").Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}

// Separator returns a full-width rule made of ch.
func Separator(ch string) string {
	return strings.Repeat(ch, rule)
}

// Field is one "Key: value" line of a report header.
type Field struct {
	Key   string
	Value string
}

// Header writes the title block every FlowLand Steward report starts with.
func Header(w io.Writer, title string, extra ...Field) {
	fields := append([]Field{
		{"Generated", time.Now().Format(time.RFC1123)},
		{"Go Version", GoVersion()},
		{"OS/Arch", runtime.GOOS + "/" + runtime.GOARCH},
	}, extra...)

	width := 0
	for _, f := range fields {
		width = max(width, len(f.Key)+1)
	}

	fmt.Fprintf(w, "FlowLand Steward %s\n", title)
	fmt.Fprintln(w, Separator("="))
	for _, f := range fields {
		fmt.Fprintf(w, "%-*s %s\n", width+1, f.Key+":", f.Value)
	}
	fmt.Fprintln(w, Separator("="))
	fmt.Fprintln(w)
}

// GoCommand runs the go tool from the module root, teeing its output to the
// terminal while capturing it.
func GoCommand(args ...string) (string, error) {
	cmd := exec.Command("go", args...)
	cmd.Dir = Root()

	var buf bytes.Buffer
	cmd.Stdout = io.MultiWriter(os.Stdout, &buf)
	cmd.Stderr = io.MultiWriter(os.Stderr, &buf)
	err := cmd.Run()
	return buf.String(), err
}

// Save writes a finished report and returns its path.
func Save(name, content string) string {
	path := filepath.Join(Dir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		log.Fatalf("writing %s: %v", name, err)
	}
	return path
}
