package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"go.uber.org/zap"
)

// Write stores every unit under cfg.OutDir. Files whose content is already
// current are left untouched.
func Write(cfg Config, units []*Unit) error {
	log := cfg.logger()
	for _, u := range units {
		p := filepath.Join(cfg.OutDir, filepath.FromSlash(u.File()))
		if old, err := os.ReadFile(p); err == nil && bytes.Equal(old, u.Source) {
			log.Debug("unchanged", zap.String("file", u.File()))
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("gen: %w", err)
		}
		if err := os.WriteFile(p, u.Source, 0o644); err != nil {
			return fmt.Errorf("gen: %w", err)
		}
		log.Info("wrote", zap.String("file", u.File()))
	}
	return nil
}

// Drift is a unit whose file on disk differs from the rendered source.
type Drift struct {
	// File is relative to OutDir.
	File    string
	Missing bool
	// Diff lists changed lines, "-" for disk and "+" for rendered.
	Diff string
}

// Check compares the rendered units with the files under cfg.OutDir.
func Check(cfg Config, units []*Unit) ([]Drift, error) {
	var drifts []Drift
	for _, u := range units {
		p := filepath.Join(cfg.OutDir, filepath.FromSlash(u.File()))
		old, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			drifts = append(drifts, Drift{File: u.File(), Missing: true})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("gen: %w", err)
		}
		if !bytes.Equal(old, u.Source) {
			drifts = append(drifts, Drift{File: u.File(), Diff: Diff(string(old), string(u.Source))})
		}
	}
	return drifts, nil
}

const diffContext = 2

// Diff renders a line diff of a and b. Changed lines are prefixed with
// their line number in a (deletions) or b (insertions); runs of equal lines
// are cut down to diffContext lines around each change.
func Diff(a, b string) string {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var sb strings.Builder
	la, lb := 1, 1
	for i, d := range diffs {
		ls := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, l := range ls {
				writeLine(&sb, '-', la, l)
				la++
			}
		case diffmatchpatch.DiffInsert:
			for _, l := range ls {
				writeLine(&sb, '+', lb, l)
				lb++
			}
		case diffmatchpatch.DiffEqual:
			head, tail := diffContext, diffContext
			if i == 0 {
				head = 0
			}
			if i == len(diffs)-1 {
				tail = 0
			}
			for j, l := range ls {
				if j < head || j >= len(ls)-tail {
					writeLine(&sb, ' ', lb+j, l)
				} else if j == head {
					sb.WriteString("...\n")
				}
			}
			la += len(ls)
			lb += len(ls)
		}
	}
	return sb.String()
}

func writeLine(sb *strings.Builder, op byte, n int, line string) {
	sb.WriteByte(op)
	sb.WriteString(strconv.Itoa(n))
	sb.WriteByte('\t')
	sb.WriteString(line)
	sb.WriteByte('\n')
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
