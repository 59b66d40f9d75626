package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/lawnchairsociety/dungeonkit/internal/snapshot"
)

func main() {
	inputFile := flag.String("input", "data/layout.zst", "Path to layout snapshot")
	outputFile := flag.String("output", "", "Output file (empty for stdout)")
	scale := flag.Int("scale", 2, "Map characters per world unit")
	showLegend := flag.Bool("legend", true, "Show legend")
	headerOnly := flag.Bool("header", false, "Print only the snapshot header")
	flag.Parse()

	if *headerOnly {
		h, err := snapshot.ReadHeader(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading header: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("kind=%s version=%d seed=%d created=%s\n",
			h.Kind, h.Version, h.Seed, h.CreatedAt.Format("2006-01-02 15:04:05"))
		return
	}

	layout, err := snapshot.Read(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading snapshot: %v\n", err)
		os.Exit(1)
	}
	if err := snapshot.Validate(layout); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid layout: %v\n", err)
		os.Exit(1)
	}

	var output strings.Builder
	output.WriteString(fmt.Sprintf("Room Layout (Seed: %d, %gx%g, %d items)\n",
		layout.Header.Seed, layout.Room.Width, layout.Room.Height, len(layout.Items)))
	output.WriteString(fmt.Sprintf("Generated: %s\n", layout.Header.CreatedAt.Format("2006-01-02 15:04:05")))
	output.WriteString(strings.Repeat("=", 60) + "\n\n")
	output.WriteString(snapshot.Render(layout, *scale) + "\n")

	if *showLegend {
		output.WriteString("\n" + legend(layout))
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output.String()), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Layout written to %s\n", *outputFile)
		return
	}
	fmt.Print(output.String())
}

// legend lists the glyphs used in the map and how many items share each prefab.
func legend(l snapshot.Layout) string {
	counts := make(map[string]int)
	names := make(map[string]string)
	for _, it := range l.Items {
		counts[it.Prefab]++
		if it.Name != "" {
			names[it.Prefab] = it.Name
		}
	}
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	b.WriteString("Legend:\n")
	b.WriteString("  # wall\n")
	b.WriteString("  . floor\n")
	for _, id := range ids {
		name := names[id]
		if name == "" {
			name = id
		}
		b.WriteString(fmt.Sprintf("  %c %s x%d\n", strings.ToUpper(name)[0], name, counts[id]))
	}
	return b.String()
}
