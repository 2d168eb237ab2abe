package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tdewolff/argp"

	"github.com/hsorby/cmlibs.exporter/pkg/flatmap"
	"github.com/hsorby/cmlibs.exporter/pkg/scene"
)

type Export struct {
	Output      string `short:"o" default:"." desc:"Output directory"`
	Prefix      string `short:"p" default:"flatmap" desc:"Artifact filename prefix"`
	Annotations string `short:"a" desc:"CSV file mapping ontology terms to group names"`
	Coordinates string `short:"c" default:"coordinates" desc:"Coordinate field name"`
	Input       string `index:"0" desc:"Scene document (JSON)"`
}

func main() {
	root := argp.NewCmd(&Export{}, "Export a scene's centreline paths as flatmap SVG and properties artifacts")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Export) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	data, err := os.ReadFile(cmd.Input)
	if err != nil {
		return err
	}
	model, err := scene.ReadDocument(data)
	if err != nil {
		return err
	}

	exporter := flatmap.New(cmd.Output, cmd.Prefix)
	exporter.AnnotationsCSV = cmd.Annotations
	exporter.CoordinatesField = cmd.Coordinates
	if err := exporter.Export(model); err != nil {
		return err
	}

	fmt.Println("Wrote", filepath.Join(cmd.Output, exporter.Prefix+".svg"),
		"and", filepath.Join(cmd.Output, "properties.json"))
	return nil
}
