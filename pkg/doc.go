// Package pkg provides the core libraries for Trendspot follows-network analysis.
//
// # Overview
//
// Trendspot analyzes directed social "follows" networks: who follows whom,
// which accounts set trends, and how content spreads. The pkg directory is
// organized into four main areas:
//
//  1. [digraph] - The follows graph structure (vertices, edges, subgraphs)
//  2. [community], [rank], [viral] - Analysis algorithms
//  3. [cache], [observability], [errors] - Infrastructure
//  4. [pipeline] - Orchestration (ingest → decompose → rank → spread)
//
// # Architecture
//
// The typical data flow through Trendspot:
//
//	Edge-list source
//	         ↓
//	    [ingest] package (parse follow relations)
//	         ↓
//	    [digraph] package (graph structure + subgraph views)
//	         ↓
//	    [community] package (strongly connected decomposition)
//	         ↓
//	    [rank] package (trend-setter selection)
//	         ↓
//	    [viral] package (spread simulation)
//
// [graphio] serializes graphs for caching and the CLI; [render] draws them
// as node-link diagrams.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{Path: "follows.txt"})
//
// [digraph]: github.com/matzehuels/trendspot/pkg/digraph
// [community]: github.com/matzehuels/trendspot/pkg/community
// [rank]: github.com/matzehuels/trendspot/pkg/rank
// [viral]: github.com/matzehuels/trendspot/pkg/viral
// [cache]: github.com/matzehuels/trendspot/pkg/cache
// [observability]: github.com/matzehuels/trendspot/pkg/observability
// [errors]: github.com/matzehuels/trendspot/pkg/errors
// [pipeline]: github.com/matzehuels/trendspot/pkg/pipeline
// [ingest]: github.com/matzehuels/trendspot/pkg/ingest
// [graphio]: github.com/matzehuels/trendspot/pkg/graphio
// [render]: github.com/matzehuels/trendspot/pkg/render
package pkg
