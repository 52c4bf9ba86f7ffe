package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/mshkit/internal/config"
	"github.com/Faultbox/mshkit/internal/texture"
	"github.com/Faultbox/mshkit/pkg/msh"
)

func (a *app) cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)

	doc, path, err := a.open("info", fs)
	if err != nil {
		return err
	}

	s := summarize(path, doc)
	if a.cfg.Output.Format == config.FormatYAML {
		return a.writeYAML(s)
	}

	fmt.Fprintf(a.out, "File:      %s\n", s.File)
	if s.Scene != nil {
		fmt.Fprintf(a.out, "Scene:     %s\n", s.Scene.Name)
		fmt.Fprintf(a.out, "Frames:    %d-%d @ %.1f fps\n", s.Scene.FrameStart, s.Scene.FrameEnd, s.Scene.FPS)
	} else {
		fmt.Fprintln(a.out, "Scene:     (no SINF)")
	}
	fmt.Fprintf(a.out, "Materials: %d\n", s.Materials)
	fmt.Fprintf(a.out, "Models:    %d (%d mesh, %d bone, %d hardpoint, %d empty, %d hidden)\n",
		s.Models, s.Meshes, s.Bones, s.Hardpoints, s.Empties, s.Hidden)
	fmt.Fprintf(a.out, "Geometry:  %d segments, %d vertices, %d triangles\n", s.Segments, s.Vertices, s.Triangles)
	if s.Bounds != nil {
		fmt.Fprintf(a.out, "Bounds:    %v .. %v\n", s.Bounds.Min, s.Bounds.Max)
	}
	fmt.Fprintf(a.out, "Animation: %d cycles, %d tracks\n", s.Cycles, s.Tracks)
	fmt.Fprintf(a.out, "Textures:  %d\n", len(s.Textures))
	fmt.Fprintf(a.out, "Issues:    %d\n", len(s.Issues))
	return nil
}

func (a *app) cmdMaterials(args []string) error {
	fs := flag.NewFlagSet("materials", flag.ExitOnError)
	fs.Parse(args)

	doc, _, err := a.open("materials", fs)
	if err != nil {
		return err
	}

	if a.cfg.Output.Format == config.FormatYAML {
		return a.writeYAML(materialDumps(doc))
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tRENDER\tFLAGS\tDIFFUSE\tTEXTURES")
	for i, m := range doc.Materials {
		render, flags := "-", "-"
		if m.Attributes != nil {
			render = m.Attributes.RenderType.String()
			if m.Attributes.RenderType.Deprecated() {
				render += "*"
			}
			flags = flagList(m.Attributes.Flags)
		}
		rgba := msh.BGRAToRGBAf(m.Diffuse)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f,%.2f,%.2f,%.2f\t%s\n",
			i, m.Name, render, flags, rgba[0], rgba[1], rgba[2], rgba[3], textureList(m.Textures))
	}
	return tw.Flush()
}

func (a *app) cmdModels(args []string) error {
	fs := flag.NewFlagSet("models", flag.ExitOnError)
	tree := fs.Bool("tree", false, "Print the hierarchy")
	fs.Parse(args)

	doc, _, err := a.open("models", fs)
	if err != nil {
		return err
	}

	if a.cfg.Output.Format == config.FormatYAML {
		return a.writeYAML(modelDumps(doc, false))
	}

	if *tree {
		for _, root := range doc.Roots() {
			a.printTree(doc, root, 0)
		}
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tMNDX\tNAME\tTYPE\tKIND\tVISIBLE\tPARENT\tVERTS")
	for i, m := range doc.Models {
		node := doc.Nodes[i]
		parent := "-"
		if node.Parent >= 0 {
			parent = doc.Models[node.Parent].OriginalName
		}
		verts := 0
		if m.Geometry != nil {
			verts = m.Geometry.VertexCount()
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%v\t%s\t%d\n",
			i, m.Index, m.OriginalName, m.Type, node.Kind, node.Visible, parent, verts)
	}
	return tw.Flush()
}

func (a *app) printTree(doc *msh.Document, i, depth int) {
	node := doc.Nodes[i]
	hidden := ""
	if !node.Visible {
		hidden = " (hidden)"
	}
	fmt.Fprintf(a.out, "%s%s [%s]%s\n", strings.Repeat("  ", depth), doc.Models[i].OriginalName, node.Kind, hidden)
	for _, child := range doc.Children(i) {
		if child == i || depth > len(doc.Models) {
			continue
		}
		a.printTree(doc, child, depth+1)
	}
}

func (a *app) cmdAnims(args []string) error {
	fs := flag.NewFlagSet("anims", flag.ExitOnError)
	cycleName := fs.String("cycle", "", "Show per-bone key counts for this cycle")
	frame := fs.Float64("frame", -1, "With -cycle, print each bone's pose this many frames into the cycle")
	fs.Parse(args)

	doc, _, err := a.open("anims", fs)
	if err != nil {
		return err
	}

	if a.cfg.Output.Format == config.FormatYAML {
		return a.writeYAML(animationDump(doc))
	}

	if len(doc.Animations) == 0 && len(doc.Keyframes) == 0 {
		fmt.Fprintln(a.out, "No animation data")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CYCLE\tFRAMES\tFPS\tSTYLE")
	for _, c := range doc.Animations {
		fmt.Fprintf(tw, "%s\t%d-%d\t%.1f\t%s\n", c.Name, c.FirstFrame, c.LastFrame, c.FPS, c.PlayStyle)
	}
	tw.Flush()
	fmt.Fprintln(a.out)

	var cycle *msh.Cycle
	if *cycleName != "" {
		for i := range doc.Animations {
			if strings.EqualFold(doc.Animations[i].Name, *cycleName) {
				cycle = &doc.Animations[i]
			}
		}
		if cycle == nil {
			return fmt.Errorf("no cycle named %q", *cycleName)
		}
	}

	if cycle != nil && *frame >= 0 {
		return a.printPoses(*cycle, doc.Keyframes, float32(cycle.FirstFrame)+float32(*frame))
	}

	tw = tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BONE\tTRANSLATIONS\tROTATIONS")
	for i := range doc.Keyframes {
		kf := &doc.Keyframes[i]
		nT, nR := len(kf.Translations), len(kf.Rotations)
		if cycle != nil {
			ts, rs := msh.Track(*cycle, kf)
			nT, nR = len(ts), len(rs)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\n", kf.ID(), nT, nR)
	}
	return tw.Flush()
}

// printPoses prints every track sampled at one frame of the timeline.
func (a *app) printPoses(cycle msh.Cycle, tracks []msh.BoneKeyframes, frame float32) error {
	fmt.Fprintf(a.out, "Pose of %q at frame %.2f\n", cycle.Name, frame)
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BONE\tTRANSLATION\tROTATION")
	for i := range tracks {
		pose, ok := msh.Sample(cycle, &tracks[i], frame)
		if !ok {
			fmt.Fprintf(tw, "%s\t-\t-\n", tracks[i].ID())
			continue
		}
		t, r := pose.Translation, pose.Rotation
		fmt.Fprintf(tw, "%s\t%.3f %.3f %.3f\t%.3f %.3f %.3f %.3f\n",
			tracks[i].ID(), t[0], t[1], t[2], r[0], r[1], r[2], r[3])
	}
	return tw.Flush()
}

func (a *app) cmdTextures(args []string) error {
	fs := flag.NewFlagSet("textures", flag.ExitOnError)
	export := fs.Bool("export", false, "Export WebP thumbnails")
	outDir := fs.String("o", "", "Thumbnail output directory (default from config)")
	size := fs.Int("size", 0, "Thumbnail size in pixels (default from config)")
	workers := fs.Int("j", 0, "Export workers (0 = GOMAXPROCS)")
	fs.Parse(args)

	doc, _, err := a.open("textures", fs)
	if err != nil {
		return err
	}

	index := texture.BuildIndex(a.cfg.Textures.SearchPaths, a.log.Named("texture"))

	if !*export {
		missing := 0
		for _, key := range doc.Textures {
			path, ok := index.ResolvePath(key)
			if !ok {
				missing++
				path = "MISSING"
			}
			fmt.Fprintf(a.out, "%-32s %s\n", key, path)
		}
		if missing > 0 {
			return fmt.Errorf("%d of %d textures not found in %s", missing, len(doc.Textures),
				strings.Join(a.cfg.Textures.SearchPaths, ", "))
		}
		return nil
	}

	cfg := texture.ExportConfig{
		OutputDir: a.cfg.Textures.OutputDir,
		Size:      a.cfg.Textures.ThumbnailSize,
		Workers:   *workers,
		Resolver:  texture.NewCache(index),
		Log:       a.log.Named("texture"),
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}
	if *size > 0 {
		cfg.Size = *size
	}

	results, err := texture.Export(cfg, doc.Textures)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Success {
			fmt.Fprintf(a.out, "  %s -> %s\n", r.Key, r.Path)
		} else {
			failed++
			fmt.Fprintf(a.out, "  %s: %s\n", r.Key, r.Error)
		}
	}
	a.log.Info("exported thumbnails",
		zap.Int("ok", len(results)-failed),
		zap.Int("failed", failed),
		zap.String("dir", cfg.OutputDir))
	if failed > 0 {
		return fmt.Errorf("%d textures could not be exported", failed)
	}
	return nil
}

func (a *app) cmdDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	full := fs.Bool("full", false, "Include vertex and keyframe data")
	out := fs.String("o", "", "Write to file instead of stdout")
	fs.Parse(args)

	doc, path, err := a.open("dump", fs)
	if err != nil {
		return err
	}

	d := dumpDocument(path, doc, *full)
	if *out == "" {
		return a.writeYAML(d)
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	return enc.Close()
}

func (a *app) cmdValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	quiet := fs.Bool("q", false, "Only print failing files")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return errors.New("usage: mshtool validate <file.msh>...")
	}

	failed := 0
	for _, path := range fs.Args() {
		doc, err := a.parse(path, true)
		switch {
		case err == nil:
			if !*quiet {
				fmt.Fprintf(a.out, "OK    %s\n", path)
			}
		case errors.Is(err, msh.ErrValidation):
			failed++
			fmt.Fprintf(a.out, "FAIL  %s (%d issues)\n", path, len(doc.Issues))
			for _, issue := range doc.Issues {
				fmt.Fprintf(a.out, "      %s\n", issue)
			}
		default:
			failed++
			fmt.Fprintf(a.out, "ERROR %s: %v\n", path, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, fs.NArg())
	}
	return nil
}

func (a *app) cmdConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	write := fs.String("write", "", "Save the effective config to this path")
	fs.Parse(args)

	if *write != "" {
		if err := a.cfg.SaveTo(*write); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Wrote %s\n", *write)
		return nil
	}
	return a.writeYAML(a.cfg)
}

func (a *app) writeYAML(v any) error {
	enc := yaml.NewEncoder(a.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func flagList(f msh.MaterialFlags) string {
	var names []string
	for _, fl := range []struct {
		set  bool
		name string
	}{
		{f.Emissive, "emissive"},
		{f.Glow, "glow"},
		{f.SingleTransparent, "transparent"},
		{f.DoubleTransparent, "transparent2"},
		{f.HardEdged, "hardedged"},
		{f.PerPixel, "perpixel"},
		{f.Additive, "additive"},
		{f.Specular, "specular"},
	} {
		if fl.set {
			names = append(names, fl.name)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}

func textureList(slots [4]string) string {
	var names []string
	for _, t := range slots {
		if t != "" {
			names = append(names, t)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, " ")
}
