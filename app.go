package main

import (
	"fmt"
	"log"

	"github.com/chazu/carve/pkg/config"
	"github.com/chazu/carve/pkg/engine"
	"github.com/chazu/carve/pkg/graph"
	"github.com/chazu/carve/pkg/kernel"
	"github.com/chazu/carve/pkg/kernel/csg"
	"github.com/chazu/carve/pkg/tessellate"
)

// App runs the full pipeline: script, design graph, validation, meshes.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
	cfg    config.Config
}

// MeshData is the JSON-serializable mesh format written by the CLI.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of one evaluation.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp creates an App with the default configuration.
func NewApp() *App {
	return NewAppWithConfig(config.Default())
}

// NewAppWithConfig creates an App with an engine and the CSG kernel set up
// from cfg.
func NewAppWithConfig(cfg config.Config) *App {
	return &App{
		engine: engine.NewEngine(
			engine.WithTimeout(cfg.EvalTimeout()),
			engine.WithSegments(cfg.CylinderSegments),
		),
		kernel: csg.New(csg.WithSegments(cfg.CylinderSegments)),
		cfg:    cfg,
	}
}

// Evaluate takes Lisp source and returns mesh data + errors.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the Lisp source into a design graph.
	g, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Report script errors.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Step 3: Validate the graph; warnings never block.
	vr := graph.ValidateAll(g)
	for _, w := range vr.Warnings {
		result.Warnings = append(result.Warnings, findingData(g, w.NodeID, w.Message))
	}
	if !vr.OK() {
		for _, e := range vr.Errors {
			result.Errors = append(result.Errors, findingData(g, e.NodeID, e.Message))
		}
		return result
	}

	// Step 4: Tessellate the design graph into triangle meshes.
	meshes, err := tessellate.Tessellate(g, a.kernel)
	if err != nil {
		log.Printf("Tessellate error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return result
	}

	// Step 5: Convert kernel meshes to MeshData, skipping empty results.
	for _, m := range meshes {
		if m.IsEmpty() {
			result.Warnings = append(result.Warnings, EvalErrorData{
				Message: fmt.Sprintf("part %q is empty", m.PartName),
			})
			continue
		}
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			PartName: m.PartName,
			Color:    a.cfg.Color(len(result.Meshes)),
		})
	}

	return result
}

// findingData formats a validation finding with the node's source position.
func findingData(g *graph.DesignGraph, id graph.NodeID, msg string) EvalErrorData {
	n := g.Get(id)
	if n == nil {
		return EvalErrorData{Message: msg}
	}
	return EvalErrorData{
		Line:    n.Source.Line,
		Col:     n.Source.Col,
		Message: fmt.Sprintf("%s: %s", n.DisplayName(), msg),
	}
}
