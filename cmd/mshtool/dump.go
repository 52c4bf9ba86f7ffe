package main

import (
	"github.com/Faultbox/mshkit/pkg/msh"
)

// summary is the info report.
type summary struct {
	File       string         `yaml:"file"`
	Scene      *msh.SceneInfo `yaml:"-"`
	SceneName  string         `yaml:"scene,omitempty"`
	Materials  int            `yaml:"materials"`
	Models     int            `yaml:"models"`
	Meshes     int            `yaml:"meshes"`
	Bones      int            `yaml:"bones"`
	Hardpoints int            `yaml:"hardpoints"`
	Empties    int            `yaml:"empties"`
	Hidden     int            `yaml:"hidden"`
	Segments   int            `yaml:"segments"`
	Vertices   int            `yaml:"vertices"`
	Triangles  int            `yaml:"triangles"`
	Bounds     *boundsDump    `yaml:"bounds,omitempty"`
	Cycles     int            `yaml:"cycles"`
	Tracks     int            `yaml:"tracks"`
	Textures   []string       `yaml:"textures"`
	Issues     []string       `yaml:"issues,omitempty"`
}

func summarize(path string, doc *msh.Document) summary {
	s := summary{
		File:      path,
		Scene:     doc.SceneInfo,
		Materials: len(doc.Materials),
		Models:    len(doc.Models),
		Cycles:    len(doc.Animations),
		Tracks:    len(doc.Keyframes),
		Textures:  doc.Textures,
		Issues:    issueStrings(doc.Issues),
	}
	if doc.SceneInfo != nil {
		s.SceneName = doc.SceneInfo.Name
	}

	for i := range doc.Models {
		node := doc.Nodes[i]
		switch node.Kind {
		case msh.NodeMesh:
			s.Meshes++
		case msh.NodeBone:
			s.Bones++
		case msh.NodeHardpoint:
			s.Hardpoints++
		default:
			s.Empties++
		}
		if !node.Visible {
			s.Hidden++
		}
		if g := doc.Models[i].Geometry; g != nil {
			s.Segments += len(g.Segments)
			for j := range g.Segments {
				s.Triangles += g.Segments[j].TriangleCount()
			}
		}
	}
	s.Vertices = doc.TotalVertexCount()
	if lo, hi, ok := doc.Bounds(); ok {
		s.Bounds = &boundsDump{Min: lo, Max: hi}
	}
	return s
}

// boundsDump is the world-space box of the visible meshes.
type boundsDump struct {
	Min [3]float32 `yaml:"min,flow"`
	Max [3]float32 `yaml:"max,flow"`
}

func issueStrings(issues []msh.Issue) []string {
	if len(issues) == 0 {
		return nil
	}
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Error()
	}
	return out
}

type documentDump struct {
	File      string         `yaml:"file"`
	Scene     *sceneDump     `yaml:"scene,omitempty"`
	Materials []materialDump `yaml:"materials"`
	Models    []modelDump    `yaml:"models"`
	Animation *animDump      `yaml:"animation,omitempty"`
	Textures  []string       `yaml:"textures"`
	Issues    []string       `yaml:"issues,omitempty"`
}

type sceneDump struct {
	Name       string     `yaml:"name"`
	FrameStart int32      `yaml:"frame_start"`
	FrameEnd   int32      `yaml:"frame_end"`
	FPS        float32    `yaml:"fps"`
	Center     [3]float32 `yaml:"center,flow"`
	Extents    [3]float32 `yaml:"extents,flow"`
	Radius     float32    `yaml:"radius"`
}

type materialDump struct {
	Name       string     `yaml:"name"`
	Diffuse    [4]float32 `yaml:"diffuse,flow"` // RGBA
	Specular   [4]float32 `yaml:"specular,flow"`
	Ambient    [4]float32 `yaml:"ambient,flow"`
	Shininess  float32    `yaml:"shininess"`
	RenderType string     `yaml:"render_type,omitempty"`
	Flags      string     `yaml:"flags,omitempty"`
	Data       []int      `yaml:"data,flow,omitempty"`
	Textures   []string   `yaml:"textures,omitempty"`
}

type modelDump struct {
	Name        string        `yaml:"name"`
	Index       uint32        `yaml:"mndx"`
	Type        string        `yaml:"type"`
	Kind        string        `yaml:"kind"`
	Visible     bool          `yaml:"visible"`
	Parent      string        `yaml:"parent,omitempty"`
	Translation [3]float32    `yaml:"translation,flow"`
	Rotation    [4]float32    `yaml:"rotation,flow"`
	Segments    []segmentDump `yaml:"segments,omitempty"`
	Envelope    []uint32      `yaml:"envelope,flow,omitempty"`
	Cloth       *clothDump    `yaml:"cloth,omitempty"`
}

type segmentDump struct {
	Material  int          `yaml:"material"`
	Vertices  int          `yaml:"vertices"`
	Triangles int          `yaml:"triangles"`
	Positions [][3]float32 `yaml:"positions,omitempty"`
	Indices   []uint16     `yaml:"indices,flow,omitempty"`
}

type clothDump struct {
	Texture     string `yaml:"texture"`
	Vertices    int    `yaml:"vertices"`
	Triangles   int    `yaml:"triangles"`
	FixedPoints int    `yaml:"fixed_points"`
	Constraints int    `yaml:"constraints"`
}

type animDump struct {
	Cycles []cycleDump `yaml:"cycles"`
	Tracks []trackDump `yaml:"tracks"`
}

type cycleDump struct {
	Name  string  `yaml:"name"`
	First uint32  `yaml:"first"`
	Last  uint32  `yaml:"last"`
	FPS   float32 `yaml:"fps"`
	Style string  `yaml:"style"`
}

type trackDump struct {
	Bone         string               `yaml:"bone"`
	Translations int                  `yaml:"translations"`
	Rotations    int                  `yaml:"rotations"`
	Keys         []msh.TranslationKey `yaml:"translation_keys,omitempty"`
	RotKeys      []msh.RotationKey    `yaml:"rotation_keys,omitempty"`
}

func dumpDocument(path string, doc *msh.Document, full bool) documentDump {
	d := documentDump{
		File:      path,
		Materials: materialDumps(doc),
		Models:    modelDumps(doc, full),
		Textures:  doc.Textures,
		Issues:    issueStrings(doc.Issues),
	}
	if info := doc.SceneInfo; info != nil {
		d.Scene = &sceneDump{
			Name:       info.Name,
			FrameStart: info.FrameStart,
			FrameEnd:   info.FrameEnd,
			FPS:        info.FPS,
			Center:     info.Center,
			Extents:    info.Extents,
			Radius:     info.Radius,
		}
	}
	if len(doc.Animations) > 0 || len(doc.Keyframes) > 0 {
		anim := animationDump(doc)
		if !full {
			for i := range anim.Tracks {
				anim.Tracks[i].Keys, anim.Tracks[i].RotKeys = nil, nil
			}
		}
		d.Animation = anim
	}
	return d
}

func materialDumps(doc *msh.Document) []materialDump {
	out := make([]materialDump, len(doc.Materials))
	for i, m := range doc.Materials {
		md := materialDump{
			Name:      m.Name,
			Diffuse:   msh.BGRAToRGBAf(m.Diffuse),
			Specular:  msh.BGRAToRGBAf(m.Specular),
			Ambient:   msh.BGRAToRGBAf(m.Ambient),
			Shininess: m.Shininess,
		}
		if a := m.Attributes; a != nil {
			md.RenderType = a.RenderType.String()
			md.Flags = flagList(a.Flags)
			md.Data = []int{int(a.Data0), int(a.Data1)}
		}
		for _, t := range m.Textures {
			if t != "" {
				md.Textures = append(md.Textures, t)
			}
		}
		out[i] = md
	}
	return out
}

func modelDumps(doc *msh.Document, full bool) []modelDump {
	out := make([]modelDump, len(doc.Models))
	for i, m := range doc.Models {
		node := doc.Nodes[i]
		md := modelDump{
			Name:        m.OriginalName,
			Index:       m.Index,
			Type:        m.Type.String(),
			Kind:        node.Kind.String(),
			Visible:     node.Visible,
			Translation: m.Transform.Translation,
			Rotation:    m.Transform.Rotation,
		}
		if node.Parent >= 0 {
			md.Parent = doc.Models[node.Parent].OriginalName
		}
		if g := m.Geometry; g != nil {
			md.Envelope = g.Envelope
			for j := range g.Segments {
				seg := &g.Segments[j]
				sd := segmentDump{
					Material:  seg.Material,
					Vertices:  len(seg.Positions),
					Triangles: seg.TriangleCount(),
				}
				if full {
					sd.Positions = seg.Positions
					sd.Indices = seg.Triangles
				}
				md.Segments = append(md.Segments, sd)
			}
			if cl := g.Cloth; cl != nil {
				md.Cloth = &clothDump{
					Texture:     cl.Texture,
					Vertices:    len(cl.Positions),
					Triangles:   len(cl.Triangles),
					FixedPoints: len(cl.FixedPoints),
					Constraints: len(cl.Stretch) + len(cl.Cross) + len(cl.Bend),
				}
			}
		}
		out[i] = md
	}
	return out
}

func animationDump(doc *msh.Document) *animDump {
	anim := &animDump{}
	for _, c := range doc.Animations {
		anim.Cycles = append(anim.Cycles, cycleDump{
			Name:  c.Name,
			First: c.FirstFrame,
			Last:  c.LastFrame,
			FPS:   c.FPS,
			Style: c.PlayStyle.String(),
		})
	}
	for i := range doc.Keyframes {
		kf := &doc.Keyframes[i]
		anim.Tracks = append(anim.Tracks, trackDump{
			Bone:         kf.ID(),
			Translations: len(kf.Translations),
			Rotations:    len(kf.Rotations),
			Keys:         kf.Translations,
			RotKeys:      kf.Rotations,
		})
	}
	return anim
}
