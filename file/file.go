// Package file keeps the library of score files on disk and loads and saves
// them by extension.
package file

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jsphweid/reprise/composition"
	"github.com/jsphweid/reprise/midi"
	"github.com/jsphweid/reprise/score"
	"github.com/jsphweid/reprise/util"
)

var (
	ErrUnknownScore      = errors.New("unknown score")
	ErrUnsupportedFormat = errors.New("unsupported score format")
)

// Entry is one score file. The id is derived from the path, so it stays the
// same across restarts.
type Entry struct {
	Id   uuid.UUID
	Path string
}

type Library struct {
	entries []Entry
	byId    map[uuid.UUID]string
}

func NewLibrary(paths []string) *Library {
	l := &Library{byId: make(map[uuid.UUID]string)}
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	for _, p := range sorted {
		id := IdFor(p)
		if _, dup := l.byId[id]; dup {
			continue
		}
		l.byId[id] = p
		l.entries = append(l.entries, Entry{Id: id, Path: p})
	}
	return l
}

// Scan collects up to maxNum score files under dir; 0 means all of them.
func Scan(dir string, maxNum int) (*Library, error) {
	paths, err := util.GatherAllScorePaths(dir, maxNum)
	if err != nil {
		return nil, fmt.Errorf("error scanning %s: %w", dir, err)
	}
	return NewLibrary(paths), nil
}

func IdFor(path string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(filepath.Clean(path)))
}

// Entries returns every score sorted by path.
func (l *Library) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

func (l *Library) Path(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnknownScore, id, err)
	}
	p, ok := l.byId[parsed]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownScore, id)
	}
	return p, nil
}

func isMidi(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".mid" || ext == ".midi"
}

func isYaml(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Load reads a score file of either format.
func Load(path string) (*composition.Composition, error) {
	switch {
	case isMidi(path):
		return midi.ReadComposition(path)
	case isYaml(path):
		return score.ReadFile(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Save writes c in the format the extension of path asks for.
func Save(c *composition.Composition, path string) error {
	switch {
	case isMidi(path):
		return midi.WriteFile(c, path)
	case isYaml(path):
		return score.WriteFile(c, path)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}
