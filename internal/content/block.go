package content

// Block is one unit of body content. The set of implementations is closed:
// TextBlock, ImageBlock, Divider, PullQuote, plus UnknownBlock for tags this
// version does not understand.
type Block interface {
	BlockType() string
	block()
}

const (
	TypeText      = "block"
	TypeImage     = "image"
	TypeDivider   = "divider"
	TypePullQuote = "pullQuote"
)

type TextStyle string

const (
	StyleNormal     TextStyle = "normal"
	StyleH2         TextStyle = "h2"
	StyleH3         TextStyle = "h3"
	StyleH4         TextStyle = "h4"
	StyleBlockquote TextStyle = "blockquote"
)

const (
	MarkStrong = "strong"
	MarkEm     = "em"
	MarkLink   = "link"
)

// TextBlock is a paragraph or heading made of spans. A span mark is either
// a decorator (MarkStrong, MarkEm) or the key of one of MarkDefs.
type TextBlock struct {
	Key      string    `json:"key,omitempty"`
	Style    TextStyle `json:"style,omitempty" validate:"omitempty,oneof=normal h2 h3 h4 blockquote"`
	Spans    []Span    `json:"children" validate:"min=1"`
	MarkDefs []MarkDef `json:"markDefs,omitempty" validate:"dive"`
}

type Span struct {
	Text  string   `bson:"text" json:"text"`
	Marks []string `bson:"marks,omitempty" json:"marks,omitempty"`
}

// MarkDef is an annotation referenced by key from span marks. Blank asks
// for the link to open in a new browsing context.
type MarkDef struct {
	Key   string `bson:"_key" json:"_key" validate:"required"`
	Type  string `bson:"_type" json:"_type" validate:"required,oneof=link"`
	Href  string `bson:"href" json:"href" validate:"required"`
	Blank bool   `bson:"blank,omitempty" json:"blank,omitempty"`
}

// MarkDef returns the annotation registered under key.
func (b TextBlock) MarkDef(key string) (MarkDef, bool) {
	for _, def := range b.MarkDefs {
		if def.Key == key {
			return def, true
		}
	}
	return MarkDef{}, false
}

type ImageBlock struct {
	Key     string `json:"key,omitempty"`
	Asset   Image  `json:"asset"`
	Caption string `json:"caption,omitempty"`
}

type DividerStyle string

const (
	DividerLine       DividerStyle = "line"
	DividerDecorative DividerStyle = "decorative"
	DividerSpacer     DividerStyle = "spacer"
)

type Divider struct {
	Key   string       `json:"key,omitempty"`
	Style DividerStyle `json:"style,omitempty" validate:"omitempty,oneof=line decorative spacer"`
}

type PullQuote struct {
	Key         string `json:"key,omitempty"`
	Text        string `json:"text" validate:"required"`
	Attribution string `json:"attribution,omitempty"`
}

// UnknownBlock keeps the tag of a block written by a newer schema so it can
// be reported at authoring time and skipped at render time. Malformed is set
// when the tag is known but the fields did not decode.
type UnknownBlock struct {
	Key       string `json:"key,omitempty"`
	Type      string `json:"type"`
	Malformed bool   `json:"malformed,omitempty"`
}

func (TextBlock) BlockType() string { return TypeText }
func (ImageBlock) BlockType() string { return TypeImage }
func (Divider) BlockType() string { return TypeDivider }
func (PullQuote) BlockType() string { return TypePullQuote }
func (b UnknownBlock) BlockType() string { return b.Type }

func (TextBlock) block() {}
func (ImageBlock) block() {}
func (Divider) block() {}
func (PullQuote) block() {}
func (UnknownBlock) block() {}
