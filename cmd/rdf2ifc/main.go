// Command rdf2ifc is a debug harness for the pipeline, not the real
// application CLI (an RDF parser and a concrete IFC writer are both out of
// scope here; see the TripleStore documentation in pkg/topology and the
// package documentation for pkg/export). It parses one
// YAML config, runs the pipeline against a small built-in triple store
// fixture, records the hand-off with export.RecordingWriter, and prints the
// run's report and diagnostics. Useful for exercising the pipeline end to
// end without either external dependency wired up.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/archtopo/rdf2ifc/pkg/export"
	"github.com/archtopo/rdf2ifc/pkg/pipeline"
	"github.com/archtopo/rdf2ifc/pkg/pipelinecfg"
	"github.com/archtopo/rdf2ifc/pkg/pipelinelog"
	"github.com/archtopo/rdf2ifc/pkg/topology"
	"github.com/archtopo/rdf2ifc/pkg/vocab"
)

const version = "0.1.0"

var (
	configPath  = flag.String("config", "", "Path to YAML configuration file (optional; defaults are used if omitted)")
	debugOutDir = flag.String("debug-out", "", "Directory to write JSON/SVG debug artifacts to (optional)")
	verbose     = flag.Bool("verbose", false, "Enable verbose (DEBUG-level) logging")
	versionFlag = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("rdf2ifc version %s\n", version)
		os.Exit(0)
	}

	if *verbose {
		pipelinelog.SetLevel(pipelinelog.DEBUG)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := pipelinecfg.DefaultConfig()
	if *configPath != "" {
		loaded, err := pipelinecfg.Load(*configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	store := builtinFixture()
	writer := export.NewRecordingWriter()

	result, err := pipeline.Run(context.Background(), store, vocab.Default(), cfg, writer)
	if err != nil {
		return fmt.Errorf("pipeline run failed: %w", err)
	}

	printReport(result)

	if *debugOutDir != "" {
		if err := writeDebugArtifacts(result, *debugOutDir); err != nil {
			return fmt.Errorf("failed to write debug artifacts: %w", err)
		}
	}

	return nil
}

// builtinFixture is a small, fixed two-storey building used when no real
// TripleStore implementation is wired in: a ground-floor kitchen/living
// room pair and a basement storage room.
func builtinFixture() *topology.MemoryStore {
	store := topology.NewMemoryStore()

	store.AddType("storey:ground", "internal:Storey")
	store.Add("storey:ground", "internal:elevation", "0")
	store.Add("storey:ground", "internal:name", "Ground Floor")

	store.AddType("storey:basement", "internal:Storey")
	store.Add("storey:basement", "internal:elevation", "-3")
	store.Add("storey:basement", "internal:name", "Basement")

	store.AddType("space:kitchen", "internal:Space")
	store.Add("space:kitchen", "internal:name", "Kitchen")
	store.Add("space:kitchen", "internal:targetArea", "12")
	store.Add("space:kitchen", "internal:storey", "storey:ground")

	store.AddType("space:living", "internal:Space")
	store.Add("space:living", "internal:name", "Living Room")
	store.Add("space:living", "internal:targetArea", "24")
	store.Add("space:living", "internal:storey", "storey:ground")

	store.AddType("space:storage", "internal:Space")
	store.Add("space:storage", "internal:name", "Storage")
	store.Add("space:storage", "internal:targetArea", "8")
	store.Add("space:storage", "internal:storey", "storey:basement")

	store.Add("space:kitchen", "internal:adjacentTo", "space:living")
	store.Add("space:kitchen", "internal:connectsTo", "space:living")

	return store
}

func printReport(result *pipeline.Result) {
	fmt.Printf("Storeys: %d, Spaces: %d\n", len(result.Topology.Storeys), len(result.Topology.Spaces))
	fmt.Printf("Placements: %d\n", len(result.Layout.Placements))
	fmt.Printf("Adjacency satisfaction: %.2f%%\n", result.LayoutReport.AdjacencyScore()*100)

	if warnings := result.Diagnostics.Warnings(); len(warnings) > 0 {
		fmt.Printf("\nWarnings (%d):\n", len(warnings))
		for _, d := range warnings {
			fmt.Printf("  %s\n", d)
		}
	}
}

func writeDebugArtifacts(result *pipeline.Result, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	layoutJSON := export.BuildDebugLayout(result.Topology, result.Layout)
	if err := export.SaveLayoutJSON(layoutJSON, dir+"/layout.json"); err != nil {
		return err
	}

	reportJSON := export.BuildDebugReport(result.LayoutReport, result.Diagnostics)
	if err := export.SaveReportJSON(reportJSON, dir+"/report.json"); err != nil {
		return err
	}

	opts := export.DefaultSVGOptions()
	for _, st := range result.Topology.Storeys {
		opts.Title = st.Name
		path := fmt.Sprintf("%s/%s.svg", dir, st.ID)
		if err := export.SaveStoreySVG(st.ID, result.Topology, result.Layout, result.Geometry[st.ID], opts, path); err != nil {
			return err
		}
	}

	return nil
}
