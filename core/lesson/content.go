package lesson

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

type BlockKind string

const (
	KindText  BlockKind = "text"
	KindImage BlockKind = "image"
)

type (
	// Block is one element of a content page: a TextBlock or an ImageBlock.
	Block interface {
		Kind() BlockKind
		Value() string
	}

	TextBlock struct {
		Text string
	}

	// ImageBlock holds a durable URL or, when freshly edited, a data payload awaiting upload.
	// Previous is the durable URL the payload replaces; it is never stored.
	ImageBlock struct {
		Source   string
		Previous string
	}

	// Page is an ordered list of blocks.
	Page []Block

	// Content maps page ids (page0, page1, ...) to pages.
	Content map[string]Page

	wireBlock struct {
		Type     BlockKind `json:"type"`
		Value    string    `json:"value"`
		OldValue string    `json:"oldValue,omitempty"`
	}
)

func (b TextBlock) Kind() BlockKind  { return KindText }
func (b TextBlock) Value() string    { return b.Text }
func (b ImageBlock) Kind() BlockKind { return KindImage }
func (b ImageBlock) Value() string   { return b.Source }

func (p Page) MarshalJSON() ([]byte, error) {
	blocks := make([]wireBlock, 0, len(p))
	for _, b := range p {
		switch b := b.(type) {
		case TextBlock:
			blocks = append(blocks, wireBlock{Type: KindText, Value: b.Text})
		case ImageBlock:
			blocks = append(blocks, wireBlock{Type: KindImage, Value: b.Source})
		default:
			return nil, fmt.Errorf("unknown content block %T", b)
		}
	}
	return json.Marshal(blocks)
}

func (p *Page) UnmarshalJSON(data []byte) error {
	var blocks []wireBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		return err
	}
	page := make(Page, 0, len(blocks))
	for _, b := range blocks {
		block, err := NewBlock(b.Type, b.Value, b.OldValue)
		if err != nil {
			return err
		}
		page = append(page, block)
	}
	*p = page
	return nil
}

// NewBlock builds the Block of the given kind.
func NewBlock(kind BlockKind, value, oldValue string) (Block, error) {
	switch kind {
	case KindText:
		return TextBlock{Text: value}, nil
	case KindImage:
		return ImageBlock{Source: value, Previous: oldValue}, nil
	default:
		return nil, fmt.Errorf("unknown content block type %q", kind)
	}
}

// PageID returns the id of the n-th page.
func PageID(n int) string {
	return "page" + strconv.Itoa(n)
}

// Normalize renumbers the pages as page0..pageN, keeping the order of the incoming ids:
// ids with a numeric suffix first (by number), then the others lexically.
func (c Content) Normalize() Content {
	keys := c.pageIDs()
	normalized := make(Content, len(c))
	for i, k := range keys {
		page := make(Page, len(c[k]))
		copy(page, c[k])
		normalized[PageID(i)] = page
	}
	return normalized
}

// Images returns the value of every image block, page by page.
func (c Content) Images() []string {
	urls := make([]string, 0)
	for _, k := range c.pageIDs() {
		for _, b := range c[k] {
			if img, ok := b.(ImageBlock); ok && img.Source != "" {
				urls = append(urls, img.Source)
			}
		}
	}
	return urls
}

func (c Content) pageIDs() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, iok := pageNumber(keys[i])
		nj, jok := pageNumber(keys[j])
		switch {
		case iok && jok && ni != nj:
			return ni < nj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

func pageNumber(id string) (int, bool) {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	if i == len(id) {
		return 0, false
	}
	n, err := strconv.Atoi(id[i:])
	if err != nil {
		return 0, false
	}
	return n, true
}
