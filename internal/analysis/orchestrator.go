package analysis

import (
	"context"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultRegion = "BR"

// Orchestrator runs the three producers concurrently, joins them, and merges
// their results into one document. It never fails: any producer failure
// degrades the document instead of aborting the request.
type Orchestrator struct {
	estimator *KeywordEstimator
	analyzer  *CompetitorAnalyzer
	narrative NarrativeGenerator
	chain     *DecoderChain
	timeout   time.Duration
	tracer    trace.Tracer
}

func NewOrchestrator(estimator *KeywordEstimator, analyzer *CompetitorAnalyzer, narrative NarrativeGenerator, timeout time.Duration) *Orchestrator {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Orchestrator{
		estimator: estimator,
		analyzer:  analyzer,
		narrative: narrative,
		chain:     NewDecoderChain(),
		timeout:   timeout,
		tracer:    otel.Tracer("mercadoscope/analysis"),
	}
}

// Run produces the consolidated document for a validated request.
// The join is a hard barrier: merge never observes a partial producer result,
// and all three producers run to completion even if one fails.
func (o *Orchestrator) Run(ctx context.Context, req Request) Document {
	ctx, span := o.tracer.Start(ctx, "analysis.run", trace.WithAttributes(attribute.String("niche", req.Niche)))
	defer span.End()

	var (
		wg           sync.WaitGroup
		keywords     map[string]KeywordRecord
		competitors  []CompetitorProfile
		narrativeDoc *Document
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		keywords = o.estimator.EstimateNiche(req.Niche, defaultRegion)
	}()
	go func() {
		defer wg.Done()
		competitors = o.analyzer.Analyze(req.Niche, competitorNames(req))
	}()
	go func() {
		defer wg.Done()
		narrativeDoc = o.runNarrative(ctx, req)
	}()
	wg.Wait()

	if narrativeDoc == nil {
		span.SetAttributes(attribute.Bool("degraded", true))
		log.Printf("narrative producer unavailable for niche %q, substituting synthetic document", req.Niche)
		return SyntheticDocument(req)
	}

	doc := *narrativeDoc
	mergeResults(&doc, req, keywords, competitors)
	doc.ActionPlan = BuildActionPlan(req.LaunchTimeline)
	doc.RiskAnalysis = BuildRiskAnalysis()
	return doc
}

func (o *Orchestrator) runNarrative(ctx context.Context, req Request) *Document {
	ctx, span := o.tracer.Start(ctx, "analysis.narrative")
	defer span.End()

	if o.narrative == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	raw, err := o.narrative.Generate(ctx, req)
	if err != nil {
		if IsDeadlineFailure(err) {
			log.Printf("narrative call exceeded %s deadline: %v", o.timeout, err)
		} else {
			log.Printf("narrative call failed: %v", err)
		}
		return nil
	}
	return o.chain.Coerce(raw)
}

// mergeResults is the deterministic merge: the narrative document is the
// base, the competitor analyzer supersedes its competitor list, and the
// keyword and trend results land under market_intelligence.
func mergeResults(doc *Document, req Request, keywords map[string]KeywordRecord, competitors []CompetitorProfile) {
	if len(competitors) > 0 {
		doc.Competition.Competitors = competitors
	}
	doc.MarketIntelligence.KeywordAnalysis = keywords
	doc.MarketIntelligence.SearchTrends = AnalyzeSearchTrends(req.Niche)
	doc.MarketIntelligence.MarketSizeEstimate = EstimateMarketSize(req.Niche)
	doc.MarketIntelligence.SeasonalPatterns = IdentifySeasonalPatterns(req.Niche)
	doc.MarketIntelligence.GrowthOpportunities = GrowthOpportunities(req.Niche)
}

func competitorNames(req Request) []string {
	if len(req.CompetitorNames) > 0 {
		return req.CompetitorNames
	}
	return SplitCompetitors(req.Competitors)
}
