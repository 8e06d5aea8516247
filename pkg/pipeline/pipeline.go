// Package pipeline provides the core analysis pipeline for Trendspot.
//
// This package implements the complete ingest → decompose → rank → spread
// pipeline that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Ingest: Build the follows graph from an edge-list source
//  2. Decompose: Partition the graph into communities (strongly connected
//     components)
//  3. Rank: Select trend setters within each community
//  4. Spread: Simulate content propagation from a start account (optional)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Path:   "follows.txt",
//	    Spread: true,
//	    Start:  2,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	setters := result.TrendSetters
//
// Run individual stages:
//
//	// Ingest only
//	g, err := runner.Ingest(ctx, opts)
//
//	// Decompose and rank an existing graph
//	communities, setters, err := runner.Analyze(ctx, g, opts)
//
//	// Simulate spread on an existing graph
//	gens, err := runner.Spread(ctx, g, setters, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trendspot/pkg/cache"
	"github.com/matzehuels/trendspot/pkg/digraph"
	"github.com/matzehuels/trendspot/pkg/rank"
	"github.com/matzehuels/trendspot/pkg/viral"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultTopFraction is the share of each community selected as trend
	// setters.
	DefaultTopFraction = rank.DefaultTopFraction

	// DefaultMaxGenerations bounds emitted spread generations.
	DefaultMaxGenerations = viral.DefaultMaxGenerations

	// DefaultMaxVisited is the safety cutoff on processed vertices during
	// spread simulation.
	DefaultMaxVisited = viral.DefaultMaxVisited
)

// Metric name constants for influence ranking.
const (
	MetricFollowers = "followers"
	MetricFollowing = "following"
)

// DefaultMetric is the default ranking metric.
const DefaultMetric = MetricFollowers

// ValidMetrics is the set of supported ranking metrics.
var ValidMetrics = map[string]bool{
	MetricFollowers: true,
	MetricFollowing: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the analysis pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Ingest options
	Path    string `json:"path,omitempty"`    // Edge-list file path
	Input   string `json:"input,omitempty"`   // Inline edge-list text (alternative to Path)
	Refresh bool   `json:"refresh,omitempty"` // Bypass the cache and recompute

	// Ranking options
	Metric      string  `json:"metric,omitempty"`
	TopFraction float64 `json:"top_fraction,omitempty"`

	// Spread options
	Spread         bool `json:"spread,omitempty"` // Run the spread stage
	Start          int  `json:"start,omitempty"`  // Account the content originates from
	MaxDepth       int  `json:"max_depth,omitempty"`
	MaxGenerations int  `json:"max_generations,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution.
	RunID string

	// Graph is the ingested follows graph.
	Graph *digraph.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Communities holds the member IDs of each community.
	Communities [][]int

	// TrendSetters is the union of trend setters across communities.
	TrendSetters rank.Set

	// Generations holds the spread snapshots, if the spread stage ran.
	Generations []viral.Generation

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount      int
	EdgeCount        int
	CommunityCount   int
	TrendSetterCount int
	IngestTime       time.Duration
	AnalyzeTime      time.Duration
	SpreadTime       time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GraphHit     bool // Whether the ingested graph came from cache
	CommunityHit bool // Whether decomposition and ranking came from cache
	SpreadHit    bool // Whether the spread result came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateMetric checks that a ranking metric name is valid.
func ValidateMetric(metric string) error {
	if !ValidMetrics[metric] {
		return fmt.Errorf("invalid metric: %q (must be one of: followers, following)", metric)
	}
	return nil
}

// metricFor resolves a metric name to the ranking function.
// The name must have been validated.
func metricFor(metric string) rank.Metric {
	if metric == MetricFollowing {
		return rank.ByFollowing
	}
	return rank.ByFollowers
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForIngest(); err != nil {
		return err
	}
	if err := o.ValidateForAnalyze(); err != nil {
		return err
	}
	if o.Spread {
		if err := o.ValidateForSpread(); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// ValidateForIngest checks required fields for graph ingestion.
func (o *Options) ValidateForIngest() error {
	if o.Path == "" && o.Input == "" {
		return fmt.Errorf("path or input is required")
	}
	if o.Path != "" && o.Input != "" {
		return fmt.Errorf("path and input are mutually exclusive")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetAnalyzeDefaults sets default values for decomposition and ranking.
func (o *Options) SetAnalyzeDefaults() {
	if o.Metric == "" {
		o.Metric = DefaultMetric
	}
	if o.TopFraction == 0 {
		o.TopFraction = DefaultTopFraction
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForAnalyze validates and sets defaults for decomposition and ranking.
func (o *Options) ValidateForAnalyze() error {
	o.SetAnalyzeDefaults()
	if err := ValidateMetric(o.Metric); err != nil {
		return err
	}
	if o.TopFraction < 0 || o.TopFraction > 1 {
		return fmt.Errorf("invalid top_fraction: %v (must be in (0, 1])", o.TopFraction)
	}
	return nil
}

// SetSpreadDefaults sets default values for spread simulation.
func (o *Options) SetSpreadDefaults() {
	if o.MaxGenerations == 0 {
		o.MaxGenerations = DefaultMaxGenerations
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForSpread validates and sets defaults for spread simulation.
func (o *Options) ValidateForSpread() error {
	o.SetSpreadDefaults()
	if o.MaxDepth < 0 {
		return fmt.Errorf("invalid max_depth: %d (must be >= 0)", o.MaxDepth)
	}
	if o.MaxGenerations < 0 {
		return fmt.Errorf("invalid max_generations: %d (must be >= 0)", o.MaxGenerations)
	}
	return nil
}

// CommunityKeyOpts returns cache key options for decomposition and ranking.
func (o *Options) CommunityKeyOpts() cache.CommunityKeyOpts {
	return cache.CommunityKeyOpts{
		Metric:      o.Metric,
		TopFraction: o.TopFraction,
	}
}

// SpreadKeyOpts returns cache key options for spread simulation.
func (o *Options) SpreadKeyOpts() cache.SpreadKeyOpts {
	return cache.SpreadKeyOpts{
		Start:          o.Start,
		MaxDepth:       o.MaxDepth,
		MaxGenerations: o.MaxGenerations,
	}
}
