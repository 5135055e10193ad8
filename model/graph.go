// Package model defines the graph representation backing a live
// visualization session.
//
// This package provides the core data structures used throughout
// ingestion, physics simulation and streaming: Node and Edge describe
// a single document graph, PhysicsRecord carries the per-node
// simulation state, and Graph ties them together with a deterministic
// builder that derives edges from cross-document reference counts.
//
// Key data structures:
//   - Node: a document with a stable string id, a wire-facing numeric
//     id, and a PhysicsRecord
//   - Edge: an unordered, weighted link between two nodes
//   - Graph: the full node/edge set plus the metadata it was built from
//
// Graphs are rebuilt wholesale when the source metadata changes; a
// rebuild preserves the position and velocity of surviving nodes so
// the simulation does not visibly reset (see Rebuild).
package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sbl8/forcegraph/errs"
)

// Graph is the canonical in-memory representation: an ordered node
// sequence, the edge set, and the metadata store it was built from.
// Node order follows sorted file-name order so Build is deterministic
// regardless of Go's randomized map iteration.
type Graph struct {
	Nodes    []*Node
	Edges    []Edge
	Metadata MetadataStore

	byStringID map[string]*Node
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// NodeByStringID looks up a node in O(1). Returns nil if absent.
func (g *Graph) NodeByStringID(id string) *Node {
	if g.byStringID == nil {
		return nil
	}
	return g.byStringID[id]
}

func (g *Graph) reindex() {
	g.byStringID = make(map[string]*Node, len(g.Nodes))
	for _, n := range g.Nodes {
		g.byStringID[n.StringID] = n
	}
}

// Snapshot returns a deep clone of g for read-only consumers — nodes,
// edges and the metadata map are all copied, never shared.
func (g *Graph) Snapshot() *Graph {
	out := &Graph{
		Nodes: make([]*Node, len(g.Nodes)),
		Edges: append([]Edge(nil), g.Edges...),
	}
	for i, n := range g.Nodes {
		out.Nodes[i] = n.Clone()
	}
	if g.Metadata != nil {
		out.Metadata = make(MetadataStore, len(g.Metadata))
		for k, v := range g.Metadata {
			cp := *v
			cp.References = make(map[string]int, len(v.References))
			for rk, rv := range v.References {
				cp.References[rk] = rv
			}
			out.Metadata[k] = &cp
		}
	}
	out.reindex()
	return out
}

// Validate checks the graph invariants — a non-empty node set, unique
// string ids, unique numeric ids, no self-edges, no dangling edges —
// and is also exposed standalone for graphs assembled by hand (e.g. in
// tests).
func (g *Graph) Validate() error {
	if len(g.Nodes) == 0 {
		return errs.NewTopologyError("graph has no nodes")
	}
	numeric := make(map[uint16]bool, len(g.Nodes))
	strIDs := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if strIDs[n.StringID] {
			return errs.NewTopologyError("duplicate node id %q", n.StringID)
		}
		strIDs[n.StringID] = true
		if numeric[n.NumericID] {
			return errs.NewTopologyError("duplicate numeric id %d", n.NumericID)
		}
		numeric[n.NumericID] = true
	}
	for _, e := range g.Edges {
		if e.Source == e.Target {
			return errs.NewTopologyError("self-edge on %q", e.Source)
		}
		if !strIDs[e.Source] {
			return errs.NewTopologyError("edge references unknown node %q", e.Source)
		}
		if !strIDs[e.Target] {
			return errs.NewTopologyError("edge references unknown node %q", e.Target)
		}
	}
	return nil
}

func stripMD(fileName string) string {
	return strings.TrimSuffix(fileName, ".md")
}

// Build constructs a fresh Graph from a MetadataStore. Deterministic:
// node order follows sorted file-name order, edges are derived per
// the bidirectional-sum rule and returned sorted by endpoint pair.
// Newly built nodes receive no position — callers that need one
// should seed the graph (see SeedPositions) before first use.
func Build(metadata MetadataStore) (*Graph, error) {
	return buildWithPrevious(metadata, nil)
}

// Rebuild constructs a Graph from metadata, preserving the position
// and velocity of any surviving node found in prev. Nodes that did
// not exist in prev are left unseeded; callers should run
// SeedPositions over the result before resuming simulation.
func Rebuild(metadata MetadataStore, prev *Graph) (*Graph, error) {
	return buildWithPrevious(metadata, prev)
}

func buildWithPrevious(metadata MetadataStore, prev *Graph) (*Graph, error) {
	fileNames := make([]string, 0, len(metadata))
	for name := range metadata {
		fileNames = append(fileNames, name)
	}
	sort.Strings(fileNames)

	g := &Graph{Metadata: metadata}
	seen := make(map[string]struct{}, len(fileNames))
	var nextNumericID uint32

	for _, fileName := range fileNames {
		stringID := stripMD(fileName)
		if _, dup := seen[stringID]; dup {
			return nil, errs.NewTopologyError("duplicate node id %q (from %q)", stringID, fileName)
		}
		seen[stringID] = struct{}{}

		if nextNumericID > 0xFFFF {
			return nil, errs.NewTopologyError("node count exceeds 16-bit wire id space at %q", fileName)
		}
		node := NewNode(stringID, uint16(nextNumericID))
		nextNumericID++

		entry := metadata[fileName]
		node.Physics.Mass = MassFromFileSize(entry.FileSize)
		node.Label = stringID
		node.Metadata["fileSize"] = fmt.Sprintf("%d", entry.FileSize)
		node.Metadata["hyperlinkCount"] = fmt.Sprintf("%d", entry.HyperlinkCount)
		node.Metadata["lastModified"] = fmt.Sprintf("%d", entry.LastModified)
		node.Metadata["contentHash"] = entry.ContentHash

		if prev != nil {
			if old := prev.NodeByStringID(stringID); old != nil {
				node.Physics.Position = old.Physics.Position
				node.Physics.Velocity = old.Physics.Velocity
			}
		}

		g.Nodes = append(g.Nodes, node)
	}
	g.reindex()

	edgeWeights := make(map[[2]string]float32)
	var edgeOrder [][2]string
	for _, fileName := range fileNames {
		sourceID := stripMD(fileName)
		entry := metadata[fileName]
		targets := make([]string, 0, len(entry.References))
		for target := range entry.References {
			targets = append(targets, target)
		}
		sort.Strings(targets)
		for _, targetFile := range targets {
			count := entry.References[targetFile]
			targetID := stripMD(targetFile)
			if sourceID == targetID {
				continue // self-edges are forbidden
			}
			if _, ok := seen[targetID]; !ok {
				continue // dangling edges are forbidden: drop silently, don't fail the build
			}
			key := edgeKey(sourceID, targetID)
			if _, exists := edgeWeights[key]; !exists {
				edgeOrder = append(edgeOrder, key)
			}
			edgeWeights[key] += float32(count)
		}
	}

	sort.Slice(edgeOrder, func(i, j int) bool {
		a, b := edgeOrder[i], edgeOrder[j]
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		return a[1] < b[1]
	})

	for _, key := range edgeOrder {
		g.Edges = append(g.Edges, Edge{Source: key[0], Target: key[1], Weight: edgeWeights[key]})
	}

	markConnected(g)

	return g, nil
}

func edgeKey(a, b string) [2]string {
	if a <= b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}

func markConnected(g *Graph) {
	connected := make(map[string]bool, len(g.Edges)*2)
	for _, e := range g.Edges {
		connected[e.Source] = true
		connected[e.Target] = true
	}
	for _, n := range g.Nodes {
		n.Physics.SetConnected(connected[n.StringID])
	}
}
