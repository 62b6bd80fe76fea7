package progress

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSorted(t *testing.T) {
	n := Novel{ReadChapters: map[string]Chapter{
		"10":                   {Title: "ten"},
		"2":                    {Title: "two"},
		"1":                    {Title: "one"},
		"16817330647574398331": {Title: "long"},
		"afterword":            {Title: "extra"},
		"002b":                 {Title: "odd"},
	}}

	var ids []string
	for _, e := range n.Sorted() {
		ids = append(ids, e.ID)
	}

	assert.Equal(t, []string{"1", "2", "10", "16817330647574398331", "002b", "afterword"}, ids)
}

func TestNovelJSONShape(t *testing.T) {
	b, err := json.Marshal(Novel{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"readChapters":{}}`, string(b))

	b, err = json.Marshal(Novel{ReadChapters: map[string]Chapter{"3": {Title: "Prologue", Characters: 7}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"readChapters":{"3":{"title":"Prologue","characters":7}}}`, string(b))
}

func TestNovelUnmarshalRejectsNonEmptyArray(t *testing.T) {
	var n Novel
	err := json.Unmarshal([]byte(`{"readChapters":[{"title":"x"}]}`), &n)
	assert.Error(t, err)
}

func TestNovelUnmarshalRejectsNegativeCharacters(t *testing.T) {
	var n Novel
	err := json.Unmarshal([]byte(`{"readChapters":{"2":{"title":"x","characters":-1}}}`), &n)
	assert.ErrorContains(t, err, "negative character count")
}
