package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/trendspot/pkg/cache"
	"github.com/matzehuels/trendspot/pkg/community"
	"github.com/matzehuels/trendspot/pkg/digraph"
	"github.com/matzehuels/trendspot/pkg/graphio"
	"github.com/matzehuels/trendspot/pkg/ingest"
	"github.com/matzehuels/trendspot/pkg/observability"
	"github.com/matzehuels/trendspot/pkg/rank"
	"github.com/matzehuels/trendspot/pkg/viral"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete ingest → decompose → rank → spread pipeline
// with caching. The spread stage runs only when opts.Spread is set.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID: uuid.NewString(),
	}

	// Stage 1: Ingest
	ingestStart := time.Now()
	g, graphHit, err := r.IngestWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	result.Graph = g
	result.Stats.IngestTime = time.Since(ingestStart)
	result.Stats.VertexCount = g.Order()
	result.Stats.EdgeCount = g.Size()
	result.CacheInfo.GraphHit = graphHit

	// Compute graph hash for cache keys and API responses
	if graphData, err := graphio.MarshalSnapshot(g); err == nil {
		result.GraphHash = cache.Hash(graphData)
	}

	r.Logger.Info("ingested follows graph",
		"vertices", g.Order(),
		"edges", g.Size(),
		"duration", result.Stats.IngestTime)

	// Stage 2+3: Decompose and rank
	analyzeStart := time.Now()
	communities, setters, communityHit, err := r.AnalyzeWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Communities = communities
	result.TrendSetters = setters
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	result.Stats.CommunityCount = len(communities)
	result.Stats.TrendSetterCount = len(setters)
	result.CacheInfo.CommunityHit = communityHit

	r.Logger.Info("analyzed communities",
		"communities", len(communities),
		"trend_setters", len(setters),
		"duration", result.Stats.AnalyzeTime)

	// Stage 4: Spread (optional)
	if opts.Spread {
		spreadStart := time.Now()
		generations, spreadHit, err := r.SpreadWithCacheInfo(ctx, g, setters, opts)
		if err != nil {
			return nil, fmt.Errorf("spread: %w", err)
		}
		result.Generations = generations
		result.Stats.SpreadTime = time.Since(spreadStart)
		result.CacheInfo.SpreadHit = spreadHit

		r.Logger.Info("simulated spread",
			"start", opts.Start,
			"generations", len(generations),
			"duration", result.Stats.SpreadTime)
	}

	return result, nil
}

// IngestWithCacheInfo builds the follows graph with caching and returns
// cache hit info.
func (r *Runner) IngestWithCacheInfo(ctx context.Context, opts Options) (*digraph.Graph, bool, error) {
	if err := opts.ValidateForIngest(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	source := opts.Input
	if opts.Path != "" {
		raw, err := os.ReadFile(opts.Path)
		if err != nil {
			return nil, false, err
		}
		source = string(raw)
	}

	observability.Analysis().OnIngestStart(ctx, opts.Path)
	start := time.Now()

	cacheKey := r.Keyer.GraphKey(source)

	// Try cache first (unless refresh requested). The snapshot form keeps
	// duplicate follows and adjacency order, so a hit restores the exact
	// graph a miss would have parsed.
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			g, err := graphio.ReadSnapshot(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				observability.Analysis().OnIngestComplete(ctx, opts.Path, g.Order(), g.Size(), time.Since(start), nil)
				return g, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	g, err := ingest.Read(strings.NewReader(source))
	observability.Analysis().OnIngestComplete(ctx, opts.Path, vertexCount(g), edgeCount(g), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if !opts.Refresh {
		if data, err := graphio.MarshalSnapshot(g); err == nil {
			if r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph) == nil {
				observability.Cache().OnCacheSet(ctx, "graph", len(data))
			}
		}
	}

	return g, false, nil // Cache miss
}

// Ingest is a convenience wrapper that calls IngestWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Ingest(ctx context.Context, opts Options) (*digraph.Graph, error) {
	g, _, err := r.IngestWithCacheInfo(ctx, opts)
	return g, err
}

// communityArtifact is the cached form of a decomposition and ranking run.
type communityArtifact struct {
	Communities  [][]int `json:"communities"`
	TrendSetters []int   `json:"trend_setters"`
}

// AnalyzeWithCacheInfo decomposes the graph into communities, ranks trend
// setters, and returns cache hit info.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, g *digraph.Graph, opts Options) ([][]int, rank.Set, bool, error) {
	if err := opts.ValidateForAnalyze(); err != nil {
		return nil, nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key
	graphData, _ := graphio.MarshalSnapshot(g)
	graphHash := cache.Hash(graphData)
	cacheKey := r.Keyer.CommunityKey(graphHash, opts.CommunityKeyOpts())

	// Try cache first
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var artifact communityArtifact
			if err := json.Unmarshal(data, &artifact); err == nil {
				observability.Cache().OnCacheHit(ctx, "community")
				setters := make(rank.Set, len(artifact.TrendSetters))
				for _, id := range artifact.TrendSetters {
					setters[id] = true
				}
				return artifact.Communities, setters, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "community")
	}

	// Decompose
	decomposeStart := time.Now()
	observability.Analysis().OnDecomposeStart(ctx, g.Order())
	communities := community.Components(g)
	observability.Analysis().OnDecomposeComplete(ctx, len(communities), time.Since(decomposeStart), nil)

	// Rank
	rankStart := time.Now()
	observability.Analysis().OnRankStart(ctx, len(communities))
	setters := rank.TrendSetters(g, communities,
		rank.WithMetric(metricFor(opts.Metric)),
		rank.WithTopFraction(opts.TopFraction))
	observability.Analysis().OnRankComplete(ctx, len(setters), time.Since(rankStart), nil)

	// Cache the result
	artifact := communityArtifact{
		Communities:  communities,
		TrendSetters: setters.IDs(),
	}
	if data, err := json.Marshal(artifact); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLCommunity) == nil {
			observability.Cache().OnCacheSet(ctx, "community", len(data))
		}
	}

	return communities, setters, false, nil // Cache miss
}

// Analyze is a convenience wrapper that calls AnalyzeWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, g *digraph.Graph, opts Options) ([][]int, rank.Set, error) {
	communities, setters, _, err := r.AnalyzeWithCacheInfo(ctx, g, opts)
	return communities, setters, err
}

// spreadArtifact is the cached form of a spread run. Generation graphs are
// not stored; they are rebuilt as induced subgraphs on load.
type spreadArtifact struct {
	Generations []generationRecord `json:"generations"`
}

type generationRecord struct {
	Index   int   `json:"index"`
	Members []int `json:"members"`
}

// SpreadWithCacheInfo simulates content propagation with caching and
// returns cache hit info.
func (r *Runner) SpreadWithCacheInfo(ctx context.Context, g *digraph.Graph, setters rank.Set, opts Options) ([]viral.Generation, bool, error) {
	if err := opts.ValidateForSpread(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key
	graphData, _ := graphio.MarshalSnapshot(g)
	graphHash := cache.Hash(graphData)
	cacheKey := r.Keyer.SpreadKey(graphHash, opts.SpreadKeyOpts())

	// Try cache first
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var artifact spreadArtifact
			if err := json.Unmarshal(data, &artifact); err == nil {
				observability.Cache().OnCacheHit(ctx, "spread")
				generations := make([]viral.Generation, 0, len(artifact.Generations))
				for _, rec := range artifact.Generations {
					generations = append(generations, viral.Generation{
						Index:   rec.Index,
						Members: rec.Members,
						Graph:   g.Induced(rec.Members),
					})
				}
				return generations, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "spread")
	}

	// Simulate
	start := time.Now()
	observability.Analysis().OnSpreadStart(ctx, opts.Start)

	viralOpts := []viral.Option{viral.WithMaxGenerations(opts.MaxGenerations)}
	if opts.MaxDepth > 0 {
		viralOpts = append(viralOpts, viral.WithMaxDepth(opts.MaxDepth))
	}
	generations, err := viral.Spread(g, opts.Start, setters, viralOpts...)
	observability.Analysis().OnSpreadComplete(ctx, opts.Start, len(generations), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	artifact := spreadArtifact{Generations: make([]generationRecord, 0, len(generations))}
	for _, gen := range generations {
		artifact.Generations = append(artifact.Generations, generationRecord{
			Index:   gen.Index,
			Members: gen.Members,
		})
	}
	if data, err := json.Marshal(artifact); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLSpread) == nil {
			observability.Cache().OnCacheSet(ctx, "spread", len(data))
		}
	}

	return generations, false, nil // Cache miss
}

// Spread is a convenience wrapper that calls SpreadWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Spread(ctx context.Context, g *digraph.Graph, setters rank.Set, opts Options) ([]viral.Generation, error) {
	generations, _, err := r.SpreadWithCacheInfo(ctx, g, setters, opts)
	return generations, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func vertexCount(g *digraph.Graph) int {
	if g == nil {
		return 0
	}
	return g.Order()
}

func edgeCount(g *digraph.Graph) int {
	if g == nil {
		return 0
	}
	return g.Size()
}
