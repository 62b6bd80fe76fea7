// Package progress owns the per-novel reading records and the rules for
// changing them. Every operation is a full read-modify-write of one JSON
// document stored under the novel identifier.
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/brogergvhs/yomikazu/internal/kv"
)

var (
	// ErrStorageUnavailable means the port could not be read or written.
	ErrStorageUnavailable = errors.New("progress storage unavailable")
	// ErrMalformedRecord means the key holds something that is not a Novel.
	// The record is left alone rather than overwritten.
	ErrMalformedRecord = errors.New("malformed novel record")
	// ErrNotFound means no record exists under the identifier.
	ErrNotFound = errors.New("novel not tracked")
)

// Store reads and writes novel records through a kv port.
type Store struct {
	kv  kv.Store
	log interface {
		Debugf(string, ...any)
	}
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}

// NewStore wraps s. A nil log discards debug output.
func NewStore(s kv.Store, log interface{ Debugf(string, ...any) }) *Store {
	if log == nil {
		log = nopLogger{}
	}
	return &Store{kv: s, log: log}
}

// Load returns the record for novelID. A novel seen for the first time is
// created empty and persisted straight away.
func (s *Store) Load(ctx context.Context, novelID string) (Novel, error) {
	n, err := s.Get(ctx, novelID)
	if !errors.Is(err, ErrNotFound) {
		return n, err
	}

	s.log.Debugf("novel %s not seen before, initialising\n", novelID)
	n = NewNovel()
	if err := s.save(ctx, novelID, n); err != nil {
		return Novel{}, err
	}
	return n, nil
}

// Get returns the stored record for novelID without ever writing.
// ErrNotFound when there is none.
func (s *Store) Get(ctx context.Context, novelID string) (Novel, error) {
	raw, ok, err := s.kv.Get(ctx, novelID)
	if err != nil {
		return Novel{}, fmt.Errorf("%w: load %s: %w", ErrStorageUnavailable, novelID, err)
	}
	if !ok {
		return Novel{}, fmt.Errorf("%w: %s", ErrNotFound, novelID)
	}

	var n Novel
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return Novel{}, fmt.Errorf("%w: %s: %v", ErrMalformedRecord, novelID, err)
	}

	return n, nil
}

// RecordChapter sets chapterID to ch, replacing any earlier observation, and
// persists the whole record. The input novel is not modified.
func (s *Store) RecordChapter(ctx context.Context, novelID string, n Novel, chapterID string, ch Chapter) (Novel, error) {
	out := n.clone()
	out.ReadChapters[chapterID] = ch

	if err := s.save(ctx, novelID, out); err != nil {
		return Novel{}, err
	}

	s.log.Debugf("novel %s: recorded chapter %s (%q, %d chars)\n", novelID, chapterID, ch.Title, ch.Characters)
	return out, nil
}

// DeleteChapter removes chapterID and persists the result. Removing an absent
// chapter is not an error.
func (s *Store) DeleteChapter(ctx context.Context, novelID string, n Novel, chapterID string) (Novel, error) {
	out := n.clone()
	delete(out.ReadChapters, chapterID)

	if err := s.save(ctx, novelID, out); err != nil {
		return Novel{}, err
	}

	s.log.Debugf("novel %s: deleted chapter %s\n", novelID, chapterID)
	return out, nil
}

// List returns the identifiers of every stored novel. Keys holding anything
// else are skipped.
func (s *Store) List(ctx context.Context) ([]string, error) {
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %w", ErrStorageUnavailable, err)
	}

	var out []string
	for _, k := range keys {
		raw, ok, err := s.kv.Get(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("%w: list: %w", ErrStorageUnavailable, err)
		}
		if ok && looksLikeNovel(raw) {
			out = append(out, k)
		}
	}

	return out, nil
}

// TotalCharacters sums every recorded chapter. It is never cached.
func TotalCharacters(n Novel) int {
	total := 0
	for _, ch := range n.ReadChapters {
		total += ch.Characters
	}
	return total
}

func (s *Store) save(ctx context.Context, novelID string, n Novel) error {
	b, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode novel %s: %w", novelID, err)
	}

	if err := s.kv.Set(ctx, novelID, string(b)); err != nil {
		return fmt.Errorf("%w: save %s: %w", ErrStorageUnavailable, novelID, err)
	}

	return nil
}

func looksLikeNovel(raw string) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return false
	}
	if _, ok := probe["readChapters"]; !ok {
		return false
	}

	var n Novel
	return json.Unmarshal([]byte(raw), &n) == nil
}
