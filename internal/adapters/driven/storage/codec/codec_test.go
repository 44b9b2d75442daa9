package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
)

func TestMarshal_CompactKeys(t *testing.T) {
	data, err := Marshal(domain.ResultSet{{
		Title:     "Post",
		Link:      "https://blog/post.html",
		Summary:   "Snippet",
		Thumbnail: "https://img/s300/a.jpg",
		Labels:    []string{"go"},
	}})
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"t":"Post","l":"https://blog/post.html","s":"Snippet","i":"https://img/s300/a.jpg","c":["go"]}]`,
		string(data))
}

func TestMarshal_NilLabelsAndSet(t *testing.T) {
	data, err := Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = Marshal(domain.ResultSet{{Title: "x", Link: "y"}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"c":[]`)
}

func TestUnmarshal_OriginalShape(t *testing.T) {
	// Entries persisted by earlier versions of the overlay use the same keys.
	rs, err := Unmarshal([]byte(`[{"t":"A","l":"https://a","s":"sum","i":"","c":["x","y"]},{"t":"B","l":"https://b","s":""}]`))
	require.NoError(t, err)
	require.Len(t, rs, 2)

	assert.Equal(t, "A", rs[0].Title)
	assert.False(t, rs[0].HasThumbnail())
	assert.Equal(t, []string{"x", "y"}, rs[0].Labels)
	assert.NotNil(t, rs[1].Labels)
	assert.Empty(t, rs[1].Labels)
}

func TestUnmarshal_Corrupt(t *testing.T) {
	_, err := Unmarshal([]byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding result set")
}
