package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type mockNarrative struct {
	response string
	err      error
	delay    time.Duration
	calls    int
}

func (m *mockNarrative) Generate(ctx context.Context, req Request) (string, error) {
	m.calls++
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return m.response, m.err
}

func newTestOrchestrator(narrative NarrativeGenerator, timeout time.Duration) *Orchestrator {
	return NewOrchestrator(NewKeywordEstimator(nil), NewCompetitorAnalyzer(), narrative, timeout)
}

func narrativeResponse(t *testing.T) string {
	t.Helper()
	doc := Document{
		Avatar:      Avatar{Name: "Ana", Age: "29 anos"},
		Positioning: Positioning{Statement: "posição"},
		Competition: Competition{
			Competitors: []CompetitorProfile{{Name: "inventado pelo modelo"}},
			MarketGaps:  []string{"lacuna narrada"},
		},
		Metrics: Metrics{LeadsNeeded: 4000, RealisticROI: "320%"},
	}
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return "```json\n" + string(b) + "\n```"
}

func TestRunMergesAllProducers(t *testing.T) {
	narrative := &mockNarrative{response: narrativeResponse(t)}
	o := newTestOrchestrator(narrative, time.Second)
	req := Request{Niche: "marketing digital", CompetitorNames: []string{"Alpha", "Beta"}}

	doc := o.Run(context.Background(), req)

	if doc.Degraded {
		t.Fatal("successful narrative must not be degraded")
	}
	if doc.Avatar.Name != "Ana" || doc.Metrics.LeadsNeeded != 4000 {
		t.Fatalf("narrative fields should survive the merge: %+v", doc.Metrics)
	}
	if len(doc.Competition.Competitors) != 2 || doc.Competition.Competitors[0].Name != "Alpha" {
		t.Fatalf("analyzer output must supersede the narrative competitor list: %+v", doc.Competition.Competitors)
	}
	if doc.Competition.MarketGaps[0] != "lacuna narrada" {
		t.Fatal("merge must only replace the competitor list, not the rest of the section")
	}
	if len(doc.MarketIntelligence.KeywordAnalysis) != 8 {
		t.Fatalf("expected 8 keyword records, got %d", len(doc.MarketIntelligence.KeywordAnalysis))
	}
	if doc.MarketIntelligence.SearchTrends == nil || doc.MarketIntelligence.MarketSizeEstimate == nil {
		t.Fatal("intelligence enrichers must run after the merge")
	}
	if len(doc.ActionPlan.KPIs) == 0 || len(doc.RiskAnalysis.IdentifiedRisks) == 0 {
		t.Fatal("plan and risk enrichers must run after the merge")
	}
}

func TestRunFreeTextCompetitorsShim(t *testing.T) {
	narrative := &mockNarrative{response: narrativeResponse(t)}
	o := newTestOrchestrator(narrative, time.Second)
	doc := o.Run(context.Background(), Request{Niche: "yoga", Competitors: "Gamma; Delta"})
	if len(doc.Competition.Competitors) != 2 || doc.Competition.Competitors[0].Name != "Gamma" {
		t.Fatalf("free-text competitors should flow through the shim: %+v", doc.Competition.Competitors)
	}
}

func TestRunNarrativeErrorYieldsSynthetic(t *testing.T) {
	narrative := &mockNarrative{err: errors.New("api unavailable")}
	o := newTestOrchestrator(narrative, time.Second)
	doc := o.Run(context.Background(), Request{Niche: "yoga"})
	if !doc.Degraded {
		t.Fatal("narrative failure must degrade the document")
	}
	if doc.Metrics.LeadsNeeded != 8000 {
		t.Fatalf("expected synthetic metrics, got %+v", doc.Metrics)
	}
	if narrative.calls != 1 {
		t.Fatalf("narrative should be called once, got %d", narrative.calls)
	}
}

func TestRunNarrativeTimeoutYieldsSynthetic(t *testing.T) {
	narrative := &mockNarrative{response: narrativeResponse(t), delay: time.Second}
	o := newTestOrchestrator(narrative, 20*time.Millisecond)
	start := time.Now()
	doc := o.Run(context.Background(), Request{Niche: "yoga"})
	if !doc.Degraded {
		t.Fatal("deadline overrun must degrade the document")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("run should return at the producer deadline, took %s", elapsed)
	}
}

func TestRunNilNarrativeYieldsSynthetic(t *testing.T) {
	o := newTestOrchestrator(nil, time.Second)
	doc := o.Run(context.Background(), Request{Niche: "yoga"})
	if !doc.Degraded {
		t.Fatal("missing generator must degrade the document")
	}
}

func TestRunGarbageNarrativeKeepsStubUndegraded(t *testing.T) {
	narrative := &mockNarrative{response: "desculpe, não consegui gerar a análise"}
	o := newTestOrchestrator(narrative, time.Second)
	doc := o.Run(context.Background(), Request{Niche: "yoga"})
	if doc.Degraded {
		t.Fatal("stub coercion is a parse fallback, not a producer failure")
	}
	if doc.Avatar.Name != "Dados não disponíveis" {
		t.Fatalf("expected stub avatar, got %q", doc.Avatar.Name)
	}
	if len(doc.Competition.Competitors) == 0 {
		t.Fatal("analyzer output should still be merged over the stub")
	}
}
