package domain

import (
	"fmt"
	"log/slog"
	"regexp"

	"gext.dev/pkg/gext/internal/adapter"
	m "gext.dev/pkg/gext/internal/model"
)

// DefaultIncludePattern recognizes the conventional GNOME Shell import
// form `const Name = NS.imports.some.path;`. The named group `import`
// carries the dotted identifier; overriding patterns must provide the same
// group.
const DefaultIncludePattern = `(?m)^const\s+\w+\s*=\s*\w+\.imports\.(?P<import>[\w.]+);`

// ImportGroup is the capture group name an inclusion pattern must define.
const ImportGroup = "import"

// ScanStatus is the outcome of one Advance step.
type ScanStatus int

// Advance outcomes.
const (
	// ScanYielded means a newly discovered file was returned.
	ScanYielded ScanStatus = iota
	// ScanSuspended means the last yielded file is not readable yet; the
	// traversal is parked until it appears or the caller calls Skip.
	ScanSuspended
	// ScanDone means every reachable file has been yielded.
	ScanDone
)

// Scanner walks the textual import graph rooted at a set of files,
// yielding each distinct reference exactly once. It is an explicit state
// machine so a caller can suspend on a file that is still being produced
// and resume the same traversal later.
//
// The visited set records files as soon as they are scheduled, not when
// they are yielded, so a file reachable through several importers is still
// yielded once.
type Scanner struct {
	tree      adapter.TreeFS
	pattern   *regexp.Regexp
	importIdx int

	pending  []m.Path
	visited  map[m.Path]struct{}
	awaiting m.Path
	parked   bool
}

// NewScanner creates a scanner over the given roots. An empty pattern
// selects DefaultIncludePattern.
func NewScanner(tree adapter.TreeFS, pattern string, roots []m.Path) (*Scanner, error) {
	if pattern == "" {
		pattern = DefaultIncludePattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("include pattern: %w", err)
	}

	idx := re.SubexpIndex(ImportGroup)
	if idx < 0 {
		return nil, fmt.Errorf("include pattern %q has no (?P<%s>...) group", pattern, ImportGroup)
	}

	s := &Scanner{
		tree:      tree,
		pattern:   re,
		importIdx: idx,
		visited:   make(map[m.Path]struct{}),
	}

	for _, root := range roots {
		s.schedule(root.Clean())
	}

	return s, nil
}

// Advance performs one traversal step. It returns the next discovered
// path with ScanYielded, or no path with ScanSuspended (the previously
// yielded file still cannot be read) or ScanDone (work queue empty). A
// read failure on a file that does exist is returned as an error.
func (s *Scanner) Advance() (m.Path, ScanStatus, error) {
	if s.parked {
		if !s.tree.InSource(s.awaiting) && !s.tree.InBuild(s.awaiting) {
			return "", ScanSuspended, nil
		}

		if err := s.scanContent(s.awaiting); err != nil {
			return "", ScanSuspended, err
		}

		s.parked = false
	}

	if len(s.pending) == 0 {
		return "", ScanDone, nil
	}

	// Traversal order is not observable to callers; pop from the tail.
	next := s.pending[len(s.pending)-1]
	s.pending = s.pending[:len(s.pending)-1]

	s.awaiting = next
	s.parked = true

	return next, ScanYielded, nil
}

// Skip abandons the content of the last yielded file, unparking the
// traversal without scanning it. Used when the caller decides a missing
// file will never be produced; provenance classification reports it later.
func (s *Scanner) Skip() {
	s.parked = false
}

// Drain runs the scan to completion, skipping the content of files absent
// from both trees.
func (s *Scanner) Drain() ([]m.Path, error) {
	var found []m.Path

	for {
		p, status, err := s.Advance()
		if err != nil {
			return nil, err
		}

		switch status {
		case ScanYielded:
			found = append(found, p)
		case ScanSuspended:
			slog.Debug("skipping unreadable file during scan", "path", s.awaiting)
			s.Skip()
		case ScanDone:
			return found, nil
		}
	}
}

func (s *Scanner) schedule(p m.Path) {
	if _, seen := s.visited[p]; seen {
		return
	}

	s.visited[p] = struct{}{}
	s.pending = append(s.pending, p)
}

// scanContent schedules every import reference found in the file. Dotted
// identifiers resolve relative to the bundle root, mirroring how the shell
// resolves Me.imports.
func (s *Scanner) scanContent(p m.Path) error {
	data, err := s.tree.ReadFile(p)
	if err != nil {
		return fmt.Errorf("scan %s: %w", p, err)
	}

	for _, match := range s.pattern.FindAllSubmatch(data, -1) {
		identifier := string(match[s.importIdx])
		s.schedule(m.PathFromImport(identifier))
	}

	return nil
}
