package progress

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

var mapType = reflect.TypeOf(map[string]Chapter{})

// Chapter is one observed installment. It is replaced wholesale whenever the
// same chapter is visited again.
type Chapter struct {
	Title      string `json:"title"`
	Characters int    `json:"characters"`
}

// Novel is the persisted record for one work, keyed in storage by the novel
// identifier. The JSON shape is bare: {"readChapters":{id:{title,characters}}}.
type Novel struct {
	ReadChapters map[string]Chapter `json:"readChapters"`
}

// Entry pairs a chapter with its identifier for ordered display.
type Entry struct {
	ID string
	Chapter
}

// NewNovel is the record of a novel seen for the first time.
func NewNovel() Novel {
	return Novel{ReadChapters: map[string]Chapter{}}
}

func (n Novel) clone() Novel {
	out := Novel{ReadChapters: make(map[string]Chapter, len(n.ReadChapters)+1)}
	for k, v := range n.ReadChapters {
		out.ReadChapters[k] = v
	}
	return out
}

// Len reports how many chapters have been recorded.
func (n Novel) Len() int {
	return len(n.ReadChapters)
}

// Sorted returns the chapters ordered by numeric chapter identifier. Identifiers
// that are not plain digits sort after the numeric ones, lexically.
func (n Novel) Sorted() []Entry {
	out := make([]Entry, 0, len(n.ReadChapters))
	for id, ch := range n.ReadChapters {
		out = append(out, Entry{ID: id, Chapter: ch})
	}

	sort.Slice(out, func(i, j int) bool {
		return chapterLess(out[i].ID, out[j].ID)
	})

	return out
}

func (n Novel) MarshalJSON() ([]byte, error) {
	chapters := n.ReadChapters
	if chapters == nil {
		chapters = map[string]Chapter{}
	}

	return json.Marshal(struct {
		ReadChapters map[string]Chapter `json:"readChapters"`
	}{chapters})
}

// UnmarshalJSON accepts the empty array written by the first release of the
// tracker for brand new novels.
func (n *Novel) UnmarshalJSON(b []byte) error {
	var raw struct {
		ReadChapters json.RawMessage `json:"readChapters"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	n.ReadChapters = map[string]Chapter{}

	rc := bytes.TrimSpace(raw.ReadChapters)
	if len(rc) == 0 || bytes.Equal(rc, []byte("null")) {
		return nil
	}
	if rc[0] == '[' {
		var legacy []json.RawMessage
		if err := json.Unmarshal(rc, &legacy); err != nil {
			return err
		}
		if len(legacy) > 0 {
			return &json.UnmarshalTypeError{Value: "array", Type: mapType, Field: "readChapters"}
		}
		return nil
	}

	if err := json.Unmarshal(rc, &n.ReadChapters); err != nil {
		return err
	}
	for id, ch := range n.ReadChapters {
		if ch.Characters < 0 {
			return fmt.Errorf("chapter %s: negative character count %d", id, ch.Characters)
		}
	}
	return nil
}

func chapterLess(a, b string) bool {
	an, bn := isDigits(a), isDigits(b)
	switch {
	case an && bn:
		a, b = trimZeros(a), trimZeros(b)
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	case an:
		return true
	case bn:
		return false
	default:
		return a < b
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func trimZeros(s string) string {
	t := strings.TrimLeft(s, "0")
	if t == "" {
		return "0"
	}
	return t
}
