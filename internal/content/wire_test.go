package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

const sampleBody = `[
  {"_type": "block", "_key": "a", "style": "h2", "children": [{"_type": "span", "text": "Brief"}]},
  {"_type": "block", "_key": "b", "children": [{"text": "Read ", "marks": []}, {"text": "more", "marks": ["strong", "l1"]}],
   "markDefs": [{"_key": "l1", "_type": "link", "href": "https://example.com", "blank": true}]},
  {"_type": "image", "_key": "c", "asset": {"url": "/img/1.jpg", "alt": "Poster", "width": 640}, "caption": "The poster"},
  {"_type": "divider", "_key": "d", "style": "decorative"},
  {"_type": "pullQuote", "_key": "e", "text": "Say less.", "attribution": "Editor"},
  {"_type": "video", "_key": "f", "url": "/v.mp4"},
  {"_type": "block", "_key": "g", "children": "not-a-list"}
]`

func TestBodyUnmarshalJSON(t *testing.T) {
	var body Body
	require.NoError(t, json.Unmarshal([]byte(sampleBody), &body))
	require.Len(t, body, 7)

	h2, ok := body[0].(TextBlock)
	require.True(t, ok)
	assert.Equal(t, StyleH2, h2.Style)
	assert.Equal(t, "Brief", h2.Spans[0].Text)

	para := body[1].(TextBlock)
	def, ok := para.MarkDef("l1")
	require.True(t, ok)
	assert.True(t, def.Blank)
	assert.Equal(t, []string{"strong", "l1"}, para.Spans[1].Marks)

	img := body[2].(ImageBlock)
	assert.Equal(t, "Poster", img.Asset.Alt)
	assert.Equal(t, 640, img.Asset.Width)
	assert.Equal(t, "The poster", img.Caption)

	assert.Equal(t, Divider{Key: "d", Style: DividerDecorative}, body[3])
	assert.Equal(t, PullQuote{Key: "e", Text: "Say less.", Attribution: "Editor"}, body[4])
	assert.Equal(t, UnknownBlock{Key: "f", Type: "video"}, body[5])
	assert.Equal(t, UnknownBlock{Key: "g", Type: "block", Malformed: true}, body[6])
}

func TestBodyJSONRoundTripKeepsOrder(t *testing.T) {
	var body Body
	require.NoError(t, json.Unmarshal([]byte(sampleBody), &body))

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	var again Body
	require.NoError(t, json.Unmarshal(raw, &again))
	require.Len(t, again, len(body))
	for i := range body {
		assert.Equal(t, body[i].BlockType(), again[i].BlockType(), "block %d", i)
	}
}

func TestBodyEmptyMarshalsAsArray(t *testing.T) {
	raw, err := json.Marshal(Body(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestBodyBSON(t *testing.T) {
	var body Body
	require.NoError(t, json.Unmarshal([]byte(sampleBody), &body))

	doc := struct {
		Body Body `bson:"body"`
	}{Body: body[:5]}
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var out struct {
		Body Body `bson:"body"`
	}
	require.NoError(t, bson.Unmarshal(raw, &out))
	require.Len(t, out.Body, 5)
	assert.Equal(t, body[3], out.Body[3])
	assert.Equal(t, body[4], out.Body[4])
	assert.Equal(t, "Poster", out.Body[2].(ImageBlock).Asset.Alt)
}
