package utils

import (
	"fmt"
	"io"
	"os"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/fatih/color"

	"github.com/meshplace/hxa/go/hxa"
)

// maximum scalar values printed per meta entry before eliding
const dumpMaxValues = 8

type printer struct {
	w     io.Writer
	kind  func(format string, a ...any) string
	name  func(format string, a ...any) string
	typ   func(format string, a ...any) string
	faint func(format string, a ...any) string
}

func newPrinter(w io.Writer, colorize bool) *printer {
	p := &printer{w: w}
	if colorize {
		p.kind = color.New(color.FgCyan, color.Bold).SprintfFunc()
		p.name = color.New(color.FgGreen).SprintfFunc()
		p.typ = color.New(color.FgYellow).SprintfFunc()
		p.faint = color.New(color.Faint).SprintfFunc()
	} else {
		p.kind = fmt.Sprintf
		p.name = fmt.Sprintf
		p.typ = fmt.Sprintf
		p.faint = fmt.Sprintf
	}
	return p
}

// DumpFile walks f read-only and prints a human-readable rendition of the
// whole tree. Bulk layer data is summarized as a byte count plus an xxhash64
// fingerprint rather than printed in full.
func DumpFile(w io.Writer, f *hxa.File, colorize bool) {
	p := newPrinter(w, colorize)
	fmt.Fprintf(w, "hxa version %d, %d node(s)\n", f.Version, len(f.Nodes))
	for i := range f.Nodes {
		p.node(&f.Nodes[i], fmt.Sprintf("node %d", i), "")
	}
}

func (p *printer) node(n *hxa.Node, label, indent string) {
	fmt.Fprintf(p.w, "%s%s: %s\n", indent, label, p.kind("%s", n.Kind))
	for i := range n.Meta {
		p.meta(&n.Meta[i], indent+"  ")
	}
	switch {
	case n.Geometry != nil:
		g := n.Geometry
		p.stack(&g.Vertex, "vertex", uint64(g.VertexCount), indent+"  ")
		p.stack(&g.Corner, "corner", uint64(g.CornerCount), indent+"  ")
		if g.Edge != nil {
			p.stack(g.Edge, "edge", uint64(g.CornerCount), indent+"  ")
		}
		p.stack(&g.Face, "face", uint64(g.FaceCount), indent+"  ")
	case n.Image != nil:
		img := n.Image
		res := ""
		for i := 0; i < img.Type.Dimensions(); i++ {
			if i > 0 {
				res += "×"
			}
			res += fmt.Sprintf("%d", img.Resolution[i])
		}
		fmt.Fprintf(p.w, "%s  shape %s %s\n", indent, p.typ("%s", img.Type), res)
		elements, _ := img.ElementCount()
		p.stack(&img.Stack, "image", elements, indent+"  ")
	}
}

func (p *printer) meta(m *hxa.Meta, indent string) {
	fmt.Fprintf(p.w, "%smeta %s %s[%d]", indent, p.name("%q", m.Name), p.typ("%s", m.Type), m.Count())
	switch m.Type {
	case hxa.MetaU64:
		fmt.Fprintf(p.w, " %s", p.faint("%v", elide(m.U64s)))
	case hxa.MetaF64:
		fmt.Fprintf(p.w, " %s", p.faint("%v", elide(m.F64s)))
	case hxa.MetaText:
		fmt.Fprintf(p.w, " %s", p.faint("%q", elideBytes(m.Text)))
	case hxa.MetaBinary:
		fmt.Fprintf(p.w, " %s", p.faint("(%d bytes, xxh64 %016x)", len(m.Binary), xxhash.Sum64(m.Binary)))
	}
	fmt.Fprintln(p.w)
	for i := range m.Nodes {
		p.node(&m.Nodes[i], fmt.Sprintf("node %d", i), indent+"  ")
	}
	for i := range m.Metas {
		p.meta(&m.Metas[i], indent+"  ")
	}
}

func (p *printer) stack(s *hxa.LayerStack, what string, elements uint64, indent string) {
	fmt.Fprintf(p.w, "%s%s stack: %d element(s), %d layer(s)\n", indent, what, elements, len(s.Layers))
	for i := range s.Layers {
		l := &s.Layers[i]
		fmt.Fprintf(p.w, "%s  layer %s %d×%s %s\n",
			indent, p.name("%q", l.Name), l.Components, p.typ("%s", l.Type),
			p.faint("(%d bytes, xxh64 %016x)", len(l.Data), l.Digest()))
	}
}

func elide[T any](vals []T) []T {
	if len(vals) > dumpMaxValues {
		return vals[:dumpMaxValues]
	}
	return vals
}

func elideBytes(b []byte) []byte {
	if len(b) > 64 {
		return b[:64]
	}
	return b
}

// RunHXA2TXT decodes inPath and dumps it as text to outPath, or to stdout
// when outPath is empty.
func RunHXA2TXT(inPath, outPath string, colorize bool) error {
	f, err := hxa.Load(inPath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", inPath, err)
	}
	w := io.Writer(os.Stdout)
	if outPath != "" {
		out, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer out.Close()
		w = out
	}
	DumpFile(w, f, colorize)
	return nil
}
