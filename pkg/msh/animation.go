package msh

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	mshmath "github.com/Faultbox/mshkit/pkg/math"
)

const cycleNameSize = 64

// PlayStyle is how a cycle repeats.
type PlayStyle uint32

const (
	PlayLoop     PlayStyle = 0
	PlayOnce     PlayStyle = 1
	PlayPingPong PlayStyle = 2
)

// String returns a human-readable play style name.
func (p PlayStyle) String() string {
	switch p {
	case PlayLoop:
		return "Loop"
	case PlayOnce:
		return "Once"
	case PlayPingPong:
		return "PingPong"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(p))
	}
}

// Cycle is a named frame range of the shared keyframe timeline.
type Cycle struct {
	Name       string
	FPS        float32
	PlayStyle  PlayStyle
	FirstFrame uint32
	LastFrame  uint32
}

// FrameCount returns the number of frames covered by the cycle.
func (c Cycle) FrameCount() int {
	if c.LastFrame < c.FirstFrame {
		return 0
	}
	return int(c.LastFrame-c.FirstFrame) + 1
}

// TranslationKey is a translation sample stamped with its frame.
type TranslationKey struct {
	Frame uint32
	Value [3]float32
}

// RotationKey is a rotation sample (x, y, z, w) stamped with its frame.
type RotationKey struct {
	Frame uint32
	Value [4]float32
}

// BoneKeyframes is the keyframe track of one bone. Samples keep file order,
// which need not be frame order.
type BoneKeyframes struct {
	CRC      uint32
	Bone     string // resolved model name, "" if unresolved
	Resolved bool
	Type     uint32

	Translations []TranslationKey
	Rotations    []RotationKey
}

// ID returns the bone name, or the raw hash when no model matched it.
func (b *BoneKeyframes) ID() string {
	if b.Resolved {
		return b.Bone
	}
	return fmt.Sprintf("0x%08x", b.CRC)
}

// Animation is the decoded ANM2 block.
type Animation struct {
	Cycles    []Cycle
	Keyframes []BoneKeyframes
}

// ReadAnimation decodes the ANM2 block, resolving bone hashes against models.
// Returns nil if the file has no animation.
func ReadAnimation(data []byte, models []Model) *Animation {
	return newSession(data, nil).readAnimation(models)
}

func (s *session) readAnimation(models []Model) *Animation {
	anm, ok := FindChunk(s.data, "ANM2", 0, len(s.data))
	if !ok {
		return nil
	}

	bones := s.boneHashes(models)
	anim := &Animation{}
	for _, child := range Children(s.data, anm) {
		switch child.Tag {
		case "CYCL":
			anim.Cycles = append(anim.Cycles, readCycles(newCursor(s.data, child))...)
		case "KFR3":
			anim.Keyframes = append(anim.Keyframes, s.readKeyframes(newCursor(s.data, child), bones)...)
		}
	}
	return anim
}

// boneHashes maps the lower-case CRC of every model's raw name bytes to that
// name. The first model wins when two different names share a hash.
func (s *session) boneHashes(models []Model) map[uint32]string {
	hashes := make(map[uint32]string, len(models))
	for i := range models {
		if models[i].OriginalName == "" {
			continue
		}
		crc := models[i].NameCRC
		prev, ok := hashes[crc]
		if !ok {
			hashes[crc] = models[i].Name
			continue
		}
		if prev != models[i].Name {
			s.report(IssueHashCollision, models[i].Name,
				fmt.Sprintf("name hash 0x%08x already used by %q", crc, prev),
				zap.Uint32("crc", crc), zap.String("kept", prev))
		}
	}
	return hashes
}

func readCycles(c *cursor) []Cycle {
	n, capHint := c.count(cycleNameSize + 16)
	if c.short {
		return nil
	}
	cycles := make([]Cycle, 0, capHint)
	for i := 0; i < n; i++ {
		cy := Cycle{
			Name:       c.fixedString(cycleNameSize),
			FPS:        c.f32(),
			PlayStyle:  PlayStyle(c.u32()),
			FirstFrame: c.u32(),
			LastFrame:  c.u32(),
		}
		if c.short {
			break
		}
		cycles = append(cycles, cy)
	}
	return cycles
}

func (s *session) readKeyframes(c *cursor, bones map[uint32]string) []BoneKeyframes {
	n, capHint := c.count(16)
	if c.short {
		return nil
	}
	tracks := make([]BoneKeyframes, 0, capHint)
	for i := 0; i < n; i++ {
		kf := BoneKeyframes{CRC: c.u32(), Type: c.u32()}
		nT, nR := int(c.u32()), int(c.u32())
		if c.short {
			break
		}

		kf.Translations = make([]TranslationKey, 0, min(nT, c.remaining()/16))
		for j := 0; j < nT; j++ {
			k := TranslationKey{Frame: c.u32(), Value: c.vec3()}
			if c.short {
				break
			}
			kf.Translations = append(kf.Translations, k)
		}
		kf.Rotations = make([]RotationKey, 0, min(nR, c.remaining()/20))
		for j := 0; j < nR; j++ {
			k := RotationKey{Frame: c.u32(), Value: c.vec4()}
			if c.short {
				break
			}
			kf.Rotations = append(kf.Rotations, k)
		}

		if name, ok := bones[kf.CRC]; ok {
			kf.Bone, kf.Resolved = name, true
		} else {
			s.report(IssueUnresolvedBone, "",
				fmt.Sprintf("no model name hashes to 0x%08x", kf.CRC),
				zap.Uint32("crc", kf.CRC))
		}
		tracks = append(tracks, kf)
		if c.short {
			break
		}
	}
	return tracks
}

// Track returns the samples of a bone that fall inside the cycle's frame range,
// sorted by frame.
func Track(cycle Cycle, bone *BoneKeyframes) ([]TranslationKey, []RotationKey) {
	var ts []TranslationKey
	for _, k := range bone.Translations {
		if k.Frame >= cycle.FirstFrame && k.Frame <= cycle.LastFrame {
			ts = append(ts, k)
		}
	}
	var rs []RotationKey
	for _, k := range bone.Rotations {
		if k.Frame >= cycle.FirstFrame && k.Frame <= cycle.LastFrame {
			rs = append(rs, k)
		}
	}
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].Frame < ts[j].Frame })
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].Frame < rs[j].Frame })
	return ts, rs
}

// Pose is a bone's local translation and rotation (x, y, z, w) at one frame.
type Pose struct {
	Translation [3]float32
	Rotation    [4]float32
}

// Sample evaluates a bone's track at a frame of the shared timeline, using
// only keys inside the cycle. Translations are interpolated linearly and
// rotations spherically; frames before the first key or after the last clamp
// to that key. A missing rotation track yields the identity rotation. Returns
// false when the cycle holds no keys for the bone.
func Sample(cycle Cycle, bone *BoneKeyframes, frame float32) (Pose, bool) {
	ts, rs := Track(cycle, bone)
	pose := Pose{Rotation: mshmath.QuatIdentity().Array()}

	if len(ts) > 0 {
		lo, hi, t := bracket(len(ts), func(i int) uint32 { return ts[i].Frame }, frame)
		a := mshmath.Vec3FromArray(ts[lo].Value)
		b := mshmath.Vec3FromArray(ts[hi].Value)
		pose.Translation = a.Lerp(b, t).Array()
	}
	if len(rs) > 0 {
		lo, hi, t := bracket(len(rs), func(i int) uint32 { return rs[i].Frame }, frame)
		a := mshmath.QuatFromArray(rs[lo].Value).Normalize()
		b := mshmath.QuatFromArray(rs[hi].Value).Normalize()
		pose.Rotation = a.Slerp(b, t).Array()
	}
	return pose, len(ts)+len(rs) > 0
}

// bracket finds the keys around frame in n frame-sorted keys and the blend
// factor between them.
func bracket(n int, frameAt func(int) uint32, frame float32) (lo, hi int, t float32) {
	if frame <= float32(frameAt(0)) {
		return 0, 0, 0
	}
	for k := 1; k < n; k++ {
		f1 := float32(frameAt(k))
		if frame > f1 {
			continue
		}
		f0 := float32(frameAt(k - 1))
		if f1 == f0 {
			return k, k, 0
		}
		return k - 1, k, (frame - f0) / (f1 - f0)
	}
	return n - 1, n - 1, 0
}
