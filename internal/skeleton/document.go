package skeleton

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"bone-renamer/internal/common"
)

const (
	// DefaultNodesSelector selects the node objects of a glTF document.
	DefaultNodesSelector = "$.nodes[*]"
	// DefaultNameKey is the node member holding the node name.
	DefaultNameKey = "name"
)

// DocumentOptions locate the named nodes inside a JSON document.
type DocumentOptions struct {
	// Nodes is a JSONPath expression selecting node objects.
	Nodes string
	// NameKey is the member of each node object holding its name.
	NameKey string
}

func (o DocumentOptions) withDefaults() DocumentOptions {
	if o.Nodes == "" {
		o.Nodes = DefaultNodesSelector
	}

	if o.NameKey == "" {
		o.NameKey = DefaultNameKey
	}

	return o
}

// Document is a skeleton stored as JSON, such as the node list of a glTF
// asset. Nodes sharing a name are renamed together. A document whose
// selector matches no node objects is not an armature.
type Document struct {
	root  any
	nodes []map[string]any
	key   string
}

// ParseDocument parses JSON data and selects its nodes.
func ParseDocument(data []byte, opts DocumentOptions) (*Document, error) {
	opts = opts.withDefaults()

	x, err := jp.ParseString(opts.Nodes)
	if err != nil {
		return nil, fmt.Errorf("invalid node selector '%s': %w", opts.Nodes, err)
	}

	root, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse skeleton document: %w", err)
	}

	doc := &Document{root: root, key: opts.NameKey}

	for _, v := range x.Get(root) {
		if node, ok := v.(map[string]any); ok {
			doc.nodes = append(doc.nodes, node)
		}
	}

	return doc, nil
}

// Kind implements Skeleton.
func (d *Document) Kind() Kind {
	if len(d.nodes) == 0 {
		return KindUnknown
	}

	return KindArmature
}

// Editable implements Skeleton. Documents are always editable.
func (d *Document) Editable() bool {
	return true
}

// Names implements Skeleton. Names are returned in document order without
// repeats; nodes without a string name are ignored.
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.nodes))
	for _, node := range d.nodes {
		if name, ok := d.nameOf(node); ok {
			names = append(names, name)
		}
	}

	return common.UniqueOrdered(names)
}

// Rename implements Skeleton.
func (d *Document) Rename(from, to string) error {
	if to == "" {
		return fmt.Errorf("rename %q: %w", from, ErrEmptyName)
	}

	var matched []map[string]any

	for _, node := range d.nodes {
		name, ok := d.nameOf(node)
		if !ok {
			continue
		}

		if name == to && from != to {
			return fmt.Errorf("rename %q to %q: %w", from, to, ErrNameTaken)
		}

		if name == from {
			matched = append(matched, node)
		}
	}

	if len(matched) == 0 {
		return fmt.Errorf("rename %q: %w", from, ErrNoSuchNode)
	}

	for _, node := range matched {
		node[d.key] = to
	}

	return nil
}

// JSON returns the document, including renamed nodes, as indented JSON.
func (d *Document) JSON() []byte {
	return []byte(oj.JSON(d.root, &oj.Options{Indent: 2, Sort: true}))
}

func (d *Document) nameOf(node map[string]any) (string, bool) {
	name, ok := node[d.key].(string)
	if !ok || name == "" {
		return "", false
	}

	return name, true
}
