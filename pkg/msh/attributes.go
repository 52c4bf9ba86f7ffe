package msh

import "fmt"

// Material flag bits of the ATRB chunk.
const (
	FlagEmissive          uint8 = 1 << iota // unlit
	FlagGlow                                // bloom
	FlagSingleTransparent                   // single-sided alpha blend
	FlagDoubleTransparent                   // double-sided alpha blend
	FlagHardEdged                           // alpha test
	FlagPerPixel                            // per-pixel lighting
	FlagAdditive                            // additive blend
	FlagSpecular
)

// RenderType selects the shader a material is drawn with.
type RenderType uint8

const (
	RenderNormal RenderType = iota
	RenderGlow
	RenderLightmap
	RenderScrolling
	RenderSpecular
	RenderGlossMap
	RenderChrome
	RenderAnimated
	RenderIce
	RenderSky
	RenderWater
	RenderDetail
	RenderScroll2
	RenderRotate
	RenderGlowRotate
	RenderPlanarReflection
	RenderGlowScroll
	RenderGlowScroll2
	RenderCurvedReflection
	RenderNormalMapFade
	RenderNormalMapInvFade
	RenderIceReflection
	RenderIceRefraction
	RenderEmboss
	RenderWireframe
	RenderEnergy
	RenderAfterburner
	RenderBumpMap
	RenderBumpMapGlossMap
	RenderTeleportal
	RenderMultiState
	RenderShield
)

var renderTypeNames = [...]string{
	"Normal", "Glow", "Lightmap", "Scrolling", "Specular", "GlossMap", "Chrome",
	"Animated", "Ice", "Sky", "Water", "Detail", "Scroll2", "Rotate", "GlowRotate",
	"PlanarReflection", "GlowScroll", "GlowScroll2", "CurvedReflection",
	"NormalMapFade", "NormalMapInvFade", "IceReflection", "IceRefraction", "Emboss",
	"Wireframe", "Energy", "Afterburner", "BumpMap", "BumpMapGlossMap", "Teleportal",
	"MultiState", "Shield",
}

// String returns a human-readable render type name.
func (r RenderType) String() string {
	if int(r) < len(renderTypeNames) {
		return renderTypeNames[r]
	}
	return fmt.Sprintf("Unknown(%d)", uint8(r))
}

// Deprecated reports render types that later engine versions no longer draw.
func (r RenderType) Deprecated() bool {
	switch r {
	case RenderGlow, RenderLightmap, RenderSpecular, RenderGlossMap, RenderChrome,
		RenderIce, RenderSky, RenderWater, RenderPlanarReflection, RenderCurvedReflection,
		RenderIceReflection, RenderIceRefraction, RenderEmboss, RenderWireframe,
		RenderTeleportal, RenderMultiState:
		return true
	}
	return false
}

// Known reports whether r is one of the named render types.
func (r RenderType) Known() bool {
	return int(r) < len(renderTypeNames)
}

// MaterialFlags is the decoded ATRB flag byte.
type MaterialFlags struct {
	Emissive          bool
	Glow              bool
	SingleTransparent bool
	DoubleTransparent bool
	HardEdged         bool
	PerPixel          bool
	Additive          bool
	Specular          bool
}

func decodeFlags(b uint8) MaterialFlags {
	return MaterialFlags{
		Emissive:          b&FlagEmissive != 0,
		Glow:              b&FlagGlow != 0,
		SingleTransparent: b&FlagSingleTransparent != 0,
		DoubleTransparent: b&FlagDoubleTransparent != 0,
		HardEdged:         b&FlagHardEdged != 0,
		PerPixel:          b&FlagPerPixel != 0,
		Additive:          b&FlagAdditive != 0,
		Specular:          b&FlagSpecular != 0,
	}
}

// Transparent reports whether any blended transparency flag is set.
func (f MaterialFlags) Transparent() bool {
	return f.SingleTransparent || f.DoubleTransparent || f.Additive
}

// Attributes is the ATRB chunk of a material.
type Attributes struct {
	RawFlags   uint8
	RawRender  uint8
	Data0      uint8
	Data1      uint8
	Flags      MaterialFlags
	RenderType RenderType
}

func decodeAttributes(flags, render, d0, d1 uint8) *Attributes {
	return &Attributes{
		RawFlags:   flags,
		RawRender:  render,
		Data0:      d0,
		Data1:      d1,
		Flags:      decodeFlags(flags),
		RenderType: RenderType(render),
	}
}

// ScrollSpeed returns the U/V scroll speeds of scrolling render types.
func (a *Attributes) ScrollSpeed() (u, v uint8, ok bool) {
	switch a.RenderType {
	case RenderScrolling, RenderScroll2, RenderGlowScroll, RenderGlowScroll2:
		return a.Data0, a.Data1, true
	}
	return 0, 0, false
}

// AnimationFrames returns frame count and frames per second of animated materials.
func (a *Attributes) AnimationFrames() (frames, fps uint8, ok bool) {
	if a.RenderType == RenderAnimated {
		return a.Data0, a.Data1, true
	}
	return 0, 0, false
}

// PulseTiming returns minimum brightness and pulse speed of pulsating materials.
func (a *Attributes) PulseTiming() (minBrightness, speed uint8, ok bool) {
	switch a.RenderType {
	case RenderEnergy, RenderShield, RenderAfterburner:
		return a.Data0, a.Data1, true
	}
	return 0, 0, false
}
