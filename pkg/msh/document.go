// Package msh parses Pandemic Studios' chunked MSH model format into an
// in-memory scene document.
package msh

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	mshmath "github.com/Faultbox/mshkit/pkg/math"
)

// Document is a fully parsed and cross-linked MSH file. It is not modified
// after Parse returns.
type Document struct {
	SceneInfo  *SceneInfo
	Materials  []Material
	Models     []Model
	Animations []Cycle
	Keyframes  []BoneKeyframes

	// Textures lists every texture key the document references, first-seen order.
	Textures []string

	// Nodes has one entry per model, in the same order.
	Nodes []Node

	// Issues lists dangling references found while assembling.
	Issues []Issue
}

// Node is the assembled view of one model.
type Node struct {
	Model   int
	Kind    NodeKind
	Visible bool
	Parent  int   // index into Models, -1 for roots
	Mesh    *Mesh // merged geometry of mesh nodes
}

// Parser parses MSH buffers. A Parser holds only options and is safe for
// concurrent use.
type Parser struct {
	logger *zap.Logger
	strict bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger that receives parse issues.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithStrict makes Parse return an error wrapping ErrValidation when the
// document has issues. The document is returned either way.
func WithStrict(strict bool) Option {
	return func(p *Parser) {
		p.strict = strict
	}
}

// NewParser creates a parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses MSH data with default options.
func Parse(data []byte) (*Document, error) {
	return NewParser().Parse(data)
}

// ParseFile parses an MSH file from disk.
func ParseFile(path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading MSH file: %w", err)
	}
	return NewParser(opts...).Parse(data)
}

// Parse decodes data into a Document. Malformed input yields a partial
// document; an error is only returned in strict mode.
func (p *Parser) Parse(data []byte) (*Document, error) {
	s := newSession(data, p.logger)

	if len(data) < 4 || string(data[:4]) != "HEDR" {
		s.report(IssueNotMSH, "", ErrNotMSH.Error())
	}

	doc := &Document{
		SceneInfo: s.readSceneInfo(),
		Materials: s.readMaterials(),
		Models:    s.readModels(),
	}
	if anim := s.readAnimation(doc.Models); anim != nil {
		doc.Animations = anim.Cycles
		doc.Keyframes = anim.Keyframes
	}
	s.assemble(doc)

	doc.Textures = s.textures.names
	doc.Issues = s.issues

	p.logger.Debug("parsed MSH",
		zap.Int("materials", len(doc.Materials)),
		zap.Int("models", len(doc.Models)),
		zap.Int("cycles", len(doc.Animations)),
		zap.Int("tracks", len(doc.Keyframes)),
		zap.Int("issues", len(doc.Issues)))

	if p.strict {
		if err := doc.Validate(); err != nil {
			return doc, err
		}
	}
	return doc, nil
}

// assemble classifies models, links parents and merges geometry.
func (s *session) assemble(doc *Document) {
	envelope := make(map[uint32]bool)
	byIndex := make(map[uint32]int, len(doc.Models))
	byName := make(map[string]int, len(doc.Models))

	for i := range doc.Models {
		m := &doc.Models[i]
		if prev, dup := byIndex[m.Index]; dup {
			s.report(IssueDuplicateIndex, m.Name,
				fmt.Sprintf("model index %d already used by %q", m.Index, doc.Models[prev].Name),
				zap.Uint32("mndx", m.Index))
		} else {
			byIndex[m.Index] = i
		}
		if _, ok := byName[m.Name]; !ok {
			byName[m.Name] = i
		}
		if m.Geometry != nil {
			for _, idx := range m.Geometry.Envelope {
				envelope[idx] = true
			}
		}
	}

	doc.Nodes = make([]Node, len(doc.Models))
	for i := range doc.Models {
		m := &doc.Models[i]
		hasGeometry := m.Geometry != nil && (len(m.Geometry.Segments) > 0 || m.Geometry.Cloth != nil)
		node := Node{
			Model:   i,
			Kind:    Classify(m.Name, envelope[m.Index], hasGeometry),
			Visible: visible(m),
			Parent:  -1,
		}

		if m.HasParent() {
			p, ok := byName[strings.ToLower(m.Parent)]
			switch {
			case !ok:
				s.report(IssueParentMissing, m.Name,
					fmt.Sprintf("parent %q not found", m.Parent),
					zap.String("parent", m.Parent))
			case p == i:
				s.report(IssueParentMissing, m.Name, "model is its own parent")
			default:
				node.Parent = p
			}
		}

		if m.Geometry != nil {
			for slot, mndx := range m.Geometry.Envelope {
				if _, ok := byIndex[mndx]; !ok {
					s.report(IssueEnvelopeUnresolved, m.Name,
						fmt.Sprintf("envelope slot %d names model index %d, which no model has", slot, mndx),
						zap.Int("slot", slot), zap.Uint32("mndx", mndx))
				}
			}
			mesh := s.buildMesh(m, len(doc.Materials))
			if node.Kind == NodeMesh {
				node.Mesh = mesh
			}
		}
		doc.Nodes[i] = node
	}
}

// Validate returns an error wrapping ErrValidation and every issue, or nil.
func (d *Document) Validate() error {
	if len(d.Issues) == 0 {
		return nil
	}
	errs := make([]error, len(d.Issues))
	for i, issue := range d.Issues {
		errs[i] = issue
	}
	return fmt.Errorf("%w: %w", ErrValidation, errors.Join(errs...))
}

// ModelByName returns the index of the first model with the given name
// (case-insensitive), or -1.
func (d *Document) ModelByName(name string) int {
	name = strings.ToLower(name)
	for i := range d.Models {
		if d.Models[i].Name == name {
			return i
		}
	}
	return -1
}

// ModelByIndex returns the index in Models of the model with the given MNDX, or -1.
func (d *Document) ModelByIndex(mndx uint32) int {
	for i := range d.Models {
		if d.Models[i].Index == mndx {
			return i
		}
	}
	return -1
}

// Roots returns the models without a resolved parent.
func (d *Document) Roots() []int {
	var roots []int
	for i := range d.Nodes {
		if d.Nodes[i].Parent < 0 {
			roots = append(roots, i)
		}
	}
	return roots
}

// Children returns the models whose parent is model i.
func (d *Document) Children(i int) []int {
	var children []int
	for j := range d.Nodes {
		if d.Nodes[j].Parent == i {
			children = append(children, j)
		}
	}
	return children
}

// WorldMatrix composes the placement of model i with all of its ancestors.
// Scale is ignored, matching how the models are placed in game.
func (d *Document) WorldMatrix(i int) mshmath.Mat4 {
	m := mshmath.Identity()
	for steps := 0; i >= 0 && i < len(d.Models) && steps <= len(d.Models); steps++ {
		m = d.Models[i].Transform.Matrix().Mul(m)
		i = d.Nodes[i].Parent
	}
	return m
}

// InverseBindMatrix returns the inverse world matrix of model i, the usual
// bind-pose matrix of a bone.
func (d *Document) InverseBindMatrix(i int) mshmath.Mat4 {
	return d.WorldMatrix(i).InverseRigid()
}

// Bounds returns the world-space bounding box of every visible mesh node, or
// false when there is none.
func (d *Document) Bounds() (lo, hi [3]float32, ok bool) {
	var bmin, bmax mshmath.Vec3
	for i := range d.Nodes {
		node := &d.Nodes[i]
		if node.Kind != NodeMesh || !node.Visible || node.Mesh == nil {
			continue
		}
		world := d.WorldMatrix(i)
		for _, p := range node.Mesh.Positions {
			w := world.TransformPoint(mshmath.Vec3FromArray(p))
			if !ok {
				bmin, bmax, ok = w, w, true
				continue
			}
			bmin, bmax = bmin.Min(w), bmax.Max(w)
		}
	}
	return bmin.Array(), bmax.Array(), ok
}

// Bones returns the indices of bone-classified models.
func (d *Document) Bones() []int {
	var bones []int
	for i := range d.Nodes {
		if d.Nodes[i].Kind == NodeBone {
			bones = append(bones, i)
		}
	}
	return bones
}

// HasAnimation reports whether the document carries any keyframes.
func (d *Document) HasAnimation() bool {
	return len(d.Keyframes) > 0
}

// TotalVertexCount returns the number of segment vertices across all models.
func (d *Document) TotalVertexCount() int {
	total := 0
	for i := range d.Models {
		if g := d.Models[i].Geometry; g != nil {
			total += g.VertexCount()
		}
	}
	return total
}
