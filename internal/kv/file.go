package kv

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const stateFileName = "progress.json"

// File keeps the whole namespace in one JSON document. Every Set rewrites the
// document, so a crash mid-visit leaves the previous version in place. Sets
// hold an exclusive lock on path+".lock" across read-modify-write, so writers
// in other processes (or other File values) never drop each other's keys.
type File struct {
	path string
	mu   sync.Mutex
}

// StateDir returns XDG_STATE_HOME/yomikazu or ~/.local/state/yomikazu.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "yomikazu")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "yomikazu")
}

// NewFile opens the document at path, or StateDir()/progress.json when path is
// empty. The file itself is created on the first Set.
func NewFile(path string) (*File, error) {
	if path == "" {
		path = filepath.Join(StateDir(), stateFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, unavailable("create state dir", err)
	}

	return &File{path: path}, nil
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	unlock, err := lockFile(f.path + ".lock")
	if err != nil {
		return unavailable("lock "+f.path, err)
	}
	defer unlock()

	data, err := f.load()
	if err != nil {
		return err
	}
	data[key] = value

	return f.save(data)
}

func (f *File) Keys(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(data))
	for k := range data {
		out = append(out, k)
	}
	sort.Strings(out)

	return out, nil
}

func (f *File) Close() error { return nil }

func (f *File) load() (map[string]string, error) {
	data := make(map[string]string)

	b, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return data, nil
	}
	if err != nil {
		return nil, unavailable("read "+f.path, err)
	}
	if len(b) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, unavailable("decode "+f.path, err)
	}

	return data, nil
}

func (f *File) save(data map[string]string) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return unavailable("encode", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return unavailable("create temp", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return unavailable("write "+tmp.Name(), err)
	}
	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		return unavailable("chmod "+tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return unavailable("close "+tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return unavailable("rename "+tmp.Name(), err)
	}

	return nil
}
