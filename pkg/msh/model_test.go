package msh

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		model       string
		inEnvelope  bool
		hasGeometry bool
		want        NodeKind
	}{
		{"envelope wins over name", "hp_weapon", true, false, NodeBone},
		{"bone prefix", "Bone_Pelvis", false, false, NodeBone},
		{"bone prefix with geometry", "bone_tail", false, true, NodeBone},
		{"hardpoint", "HP_Fire", false, false, NodeHardpoint},
		{"hardpoint ignores geometry", "hp_light", false, true, NodeHardpoint},
		{"mesh", "body", false, true, NodeMesh},
		{"empty", "dummyroot", false, false, NodeEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.model, tt.inEnvelope, tt.hasGeometry); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}

func TestDefaultVisible(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"body", true},
		{"sv_body", false},
		{"ShadowVolume01", false},
		{"collision_box", false},
		{"p_mesh", false},
		{"c_mesh", false},
		{"terraincutter1", false},
		{"body_lod2", false},
		{"body_LOD3", false},
		{"body_lowrez", false},
		{"body_lowres", false},
		{"body_shadowvolume", false},
		{"body_lod1", true},
		{"capsule", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultVisible(tt.name); got != tt.want {
				t.Errorf("DefaultVisible(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestParse_Visibility(t *testing.T) {
	data := msh(
		modl("body", 0, chunk("FLGS", u32s(FlagHidden))),
		modl("sv_body", 1, chunk("FLGS", u32s(0))),
		modl("collision", 2),
		modl("wheel", 3),
	)
	doc, _ := Parse(data)

	want := []bool{false, true, false, true}
	for i, w := range want {
		if doc.Nodes[i].Visible != w {
			t.Errorf("%s visible = %v, want %v", doc.Models[i].Name, doc.Nodes[i].Visible, w)
		}
	}
	if doc.Models[3].Flags != nil {
		t.Error("model without FLGS has flags")
	}
}

func TestReadModels_Fields(t *testing.T) {
	data := msh(modl("Turret", 4,
		chunk("PRNT", str("Base")),
		chunk("TRAN", f32s(2, 2, 2), f32s(0, 0, 0.70710677, 0.70710677), f32s(1, 2, 3)),
	))
	models := ReadModels(data)
	if len(models) != 1 {
		t.Fatalf("got %d models, want 1", len(models))
	}

	m := models[0]
	if m.Type != ModelStatic || m.Index != 4 {
		t.Errorf("type/index = %v/%d, want Static/4", m.Type, m.Index)
	}
	if m.Parent != "Base" || !m.HasParent() {
		t.Errorf("Parent = %q, want Base", m.Parent)
	}
	if m.Transform.Scale != [3]float32{2, 2, 2} {
		t.Errorf("Scale = %v", m.Transform.Scale)
	}
	if m.Transform.Translation != [3]float32{1, 2, 3} {
		t.Errorf("Translation = %v", m.Transform.Translation)
	}
	if m.Geometry != nil {
		t.Error("model without GEOM has geometry")
	}
}

func TestReadModels_DefaultTransform(t *testing.T) {
	models := ReadModels(msh(modl("a", 0, chunk("TRAN", f32s(1, 1)))))
	if got := models[0].Transform; got != IdentityTransform() {
		t.Errorf("Transform = %+v, want identity", got)
	}
}

func TestModelType_String(t *testing.T) {
	tests := []struct {
		typ  ModelType
		want string
	}{
		{ModelNull, "Null"},
		{ModelSkin, "Skin"},
		{ModelCloth, "Cloth"},
		{ModelBone, "Bone"},
		{ModelStatic, "Static"},
		{ModelShadow, "Shadow"},
		{ModelType(5), "Unknown(5)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadSegment_IndexEncodings(t *testing.T) {
	quad := posl([3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{1, 1, 0}, [3]float32{0, 1, 0})

	tests := []struct {
		name string
		seg  []byte
		want []uint16
	}{
		{
			name: "triangle list",
			seg:  chunk("SEGM", quad, ndxt(0, 1, 2, 0, 2, 3)),
			want: []uint16{0, 1, 2, 0, 2, 3},
		},
		{
			name: "strip",
			seg:  chunk("SEGM", quad, chunk("STRP", u32s(4), u16s(0|stripFlag, 1|stripFlag, 3, 2))),
			want: []uint16{0, 1, 3, 1, 2, 3},
		},
		{
			name: "polygon list",
			seg:  chunk("SEGM", quad, chunk("NDXL", u32s(1), u16s(4, 0, 1, 2, 3))),
			want: []uint16{0, 1, 2, 0, 2, 3},
		},
		{
			name: "all encodings merged",
			seg: chunk("SEGM", quad,
				ndxt(0, 1, 2),
				chunk("STRP", u32s(4), u16s(0|stripFlag, 1|stripFlag, 3, 2)),
				chunk("NDXL", u32s(1), u16s(4, 0, 1, 2, 3)),
			),
			want: []uint16{0, 1, 2, 0, 1, 3, 1, 2, 3, 0, 1, 2, 0, 2, 3},
		},
		{
			name: "merged in file order",
			seg: chunk("SEGM", quad,
				chunk("NDXL", u32s(1), u16s(4, 0, 1, 2, 3)),
				chunk("STRP", u32s(4), u16s(0|stripFlag, 1|stripFlag, 3, 2)),
			),
			want: []uint16{0, 1, 2, 0, 2, 3, 0, 1, 3, 1, 2, 3},
		},
		{
			name: "no indices",
			seg:  chunk("SEGM", quad),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			models := ReadModels(msh(modl("m", 0, chunk("GEOM", tt.seg))))
			got := models[0].Geometry.Segments[0].Triangles
			if len(got) != len(tt.want) {
				t.Fatalf("Triangles = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Triangles = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestReadSegment_Attributes(t *testing.T) {
	seg := chunk("SEGM",
		chunk("MATI", u32s(2)),
		posl([3]float32{0, 0, 0}, [3]float32{1, 0, 0}),
		chunk("NRML", u32s(2), f32s(0, 0, 1, 0, 0, 1)),
		chunk("UV0L", u32s(2), f32s(0, 0, 1, 0)),
		chunk("CLRL", u32s(2), []byte{1, 2, 3, 4, 5, 6, 7, 8}),
		chunk("CLRB", []byte{9, 9, 9, 9}),
	)
	models := ReadModels(msh(modl("m", 0, chunk("GEOM", seg))))
	s := models[0].Geometry.Segments[0]

	if s.Material != 2 {
		t.Errorf("Material = %d, want 2", s.Material)
	}
	if len(s.Normals) != 2 || s.Normals[1] != [3]float32{0, 0, 1} {
		t.Errorf("Normals = %v", s.Normals)
	}
	if len(s.UVs) != 2 || s.UVs[1] != [2]float32{1, 0} {
		t.Errorf("UVs = %v", s.UVs)
	}
	if len(s.Colors) != 2 || s.Colors[1] != [4]uint8{5, 6, 7, 8} {
		t.Errorf("Colors = %v", s.Colors)
	}
	if s.FlatColor == nil || *s.FlatColor != [4]uint8{9, 9, 9, 9} {
		t.Errorf("FlatColor = %v", s.FlatColor)
	}
}

func TestReadGeometry_Cloth(t *testing.T) {
	clth := chunk("CLTH",
		chunk("CTEX", str("Cape")),
		chunk("CPOS", u32s(3), f32s(0, 0, 0, 1, 0, 0, 0, 1, 0)),
		chunk("CUV0", u32s(3), f32s(0, 0, 1, 0, 0, 1)),
		chunk("FIDX", u32s(1, 0)),
		chunk("FWGT", u32s(1), []byte("bone_neck\x00")),
		chunk("CMSH", u32s(1, 0, 1, 2)),
		chunk("SPRS", u32s(1), u16s(0, 1)),
		chunk("CPRS", u32s(1), u16s(1, 2)),
		chunk("BPRS", u32s(1), u16s(0, 2)),
	)
	second := chunk("CLTH", chunk("CTEX", str("other")))

	data := msh(modl("cape", 0, chunk("GEOM", clth, second)))
	doc, _ := Parse(data)

	cl := doc.Models[0].Geometry.Cloth
	if cl == nil {
		t.Fatal("Cloth is nil")
	}
	if cl.Texture != "cape.tga" {
		t.Errorf("Texture = %q, want cape.tga", cl.Texture)
	}
	if len(cl.Positions) != 3 || len(cl.UVs) != 3 {
		t.Errorf("positions/uvs = %d/%d, want 3/3", len(cl.Positions), len(cl.UVs))
	}
	if len(cl.Triangles) != 1 || cl.Triangles[0] != [3]uint32{0, 1, 2} {
		t.Errorf("Triangles = %v", cl.Triangles)
	}
	if len(cl.FixedPoints) != 1 || len(cl.FixedWeights) != 1 || cl.FixedWeights[0] != "bone_neck" {
		t.Errorf("fixed = %v / %v", cl.FixedPoints, cl.FixedWeights)
	}
	if len(cl.Stretch) != 1 || len(cl.Cross) != 1 || cl.Bend[0] != [2]uint16{0, 2} {
		t.Errorf("constraints = %v %v %v", cl.Stretch, cl.Cross, cl.Bend)
	}

	if len(doc.Textures) != 1 || doc.Textures[0] != "cape.tga" {
		t.Errorf("Textures = %v, want only the first cloth texture", doc.Textures)
	}
	if doc.Nodes[0].Kind != NodeMesh {
		t.Errorf("cloth model kind = %v, want Mesh", doc.Nodes[0].Kind)
	}
}
