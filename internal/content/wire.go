package content

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Body is the ordered block sequence of a case study. Its position in the
// slice is the only ordering signal; blocks carry no explicit position.
//
// JSON and BSON share one wire shape, discriminated by "_type". A block
// record that cannot be decoded does not fail the whole body: it becomes an
// UnknownBlock that validation reports and rendering skips.
type Body []Block

type wireBlock struct {
	Type        string    `bson:"_type" json:"_type"`
	Key         string    `bson:"_key,omitempty" json:"_key,omitempty"`
	Style       string    `bson:"style,omitempty" json:"style,omitempty"`
	Children    []Span    `bson:"children,omitempty" json:"children,omitempty"`
	MarkDefs    []MarkDef `bson:"markDefs,omitempty" json:"markDefs,omitempty"`
	Asset       *Image    `bson:"asset,omitempty" json:"asset,omitempty"`
	Caption     string    `bson:"caption,omitempty" json:"caption,omitempty"`
	Text        string    `bson:"text,omitempty" json:"text,omitempty"`
	Attribution string    `bson:"attribution,omitempty" json:"attribution,omitempty"`
}

type wireTag struct {
	Type string `bson:"_type" json:"_type"`
	Key  string `bson:"_key" json:"_key"`
}

func (b Body) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.wire())
}

func (b *Body) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("body: %w", err)
	}
	if raw == nil {
		*b = nil
		return nil
	}
	out := make(Body, 0, len(raw))
	for _, item := range raw {
		var w wireBlock
		if err := json.Unmarshal(item, &w); err != nil {
			var tag wireTag
			_ = json.Unmarshal(item, &tag)
			out = append(out, UnknownBlock{Key: tag.Key, Type: tag.Type, Malformed: knownType(tag.Type)})
			continue
		}
		out = append(out, w.block())
	}
	*b = out
	return nil
}

func (b Body) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(b.wire())
}

func (b *Body) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bsontype.Null || t == bsontype.Undefined {
		*b = nil
		return nil
	}
	var raw []bson.RawValue
	if err := (bson.RawValue{Type: t, Value: data}).Unmarshal(&raw); err != nil {
		return fmt.Errorf("body: %w", err)
	}
	out := make(Body, 0, len(raw))
	for _, item := range raw {
		var w wireBlock
		if err := item.Unmarshal(&w); err != nil {
			var tag wireTag
			_ = item.Unmarshal(&tag)
			out = append(out, UnknownBlock{Key: tag.Key, Type: tag.Type, Malformed: knownType(tag.Type)})
			continue
		}
		out = append(out, w.block())
	}
	*b = out
	return nil
}

func knownType(t string) bool {
	switch t {
	case TypeText, TypeImage, TypeDivider, TypePullQuote:
		return true
	}
	return false
}

func (b Body) wire() []wireBlock {
	out := make([]wireBlock, 0, len(b))
	for _, blk := range b {
		if blk == nil {
			continue
		}
		out = append(out, wireOf(blk))
	}
	return out
}

func (w wireBlock) block() Block {
	switch w.Type {
	case TypeText:
		return TextBlock{
			Key:      w.Key,
			Style:    TextStyle(w.Style),
			Spans:    w.Children,
			MarkDefs: w.MarkDefs,
		}
	case TypeImage:
		img := ImageBlock{Key: w.Key, Caption: w.Caption}
		if w.Asset != nil {
			img.Asset = *w.Asset
		}
		return img
	case TypeDivider:
		return Divider{Key: w.Key, Style: DividerStyle(w.Style)}
	case TypePullQuote:
		return PullQuote{Key: w.Key, Text: w.Text, Attribution: w.Attribution}
	default:
		return UnknownBlock{Key: w.Key, Type: w.Type}
	}
}

func wireOf(blk Block) wireBlock {
	switch v := blk.(type) {
	case TextBlock:
		return wireBlock{Type: TypeText, Key: v.Key, Style: string(v.Style), Children: v.Spans, MarkDefs: v.MarkDefs}
	case ImageBlock:
		asset := v.Asset
		return wireBlock{Type: TypeImage, Key: v.Key, Asset: &asset, Caption: v.Caption}
	case Divider:
		return wireBlock{Type: TypeDivider, Key: v.Key, Style: string(v.Style)}
	case PullQuote:
		return wireBlock{Type: TypePullQuote, Key: v.Key, Text: v.Text, Attribution: v.Attribution}
	case UnknownBlock:
		return wireBlock{Type: v.Type, Key: v.Key}
	default:
		return wireBlock{Type: blk.BlockType()}
	}
}
