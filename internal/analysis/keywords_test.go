package analysis

import (
	"reflect"
	"testing"
)

func TestEstimateKeywordBands(t *testing.T) {
	e := NewKeywordEstimator(nil)
	recs := e.Estimate([]string{"yoga", "marketing digital", "como aprender yoga", "yoga para iniciantes em casa"})

	one := recs["yoga"]
	if one.Volume != 10000 || one.Difficulty != DifficultyHigh {
		t.Fatalf("single word: got volume %d difficulty %s", one.Volume, one.Difficulty)
	}
	two := recs["marketing digital"]
	if two.Difficulty != DifficultyHigh || two.CPC != 3.50 {
		t.Fatalf("high-value two words: got difficulty %s cpc %.2f", two.Difficulty, two.CPC)
	}
	three := recs["como aprender yoga"]
	if three.Difficulty != DifficultyMedium || three.Volume != 30000 {
		t.Fatalf("three words: got difficulty %s volume %d", three.Difficulty, three.Volume)
	}
	long := recs["yoga para iniciantes em casa"]
	if long.Difficulty != DifficultyLow || long.Volume != 50000 {
		t.Fatalf("long tail: got difficulty %s volume %d (cap is 50000)", long.Difficulty, long.Volume)
	}
}

func TestEstimateIsDeterministic(t *testing.T) {
	e := NewKeywordEstimator(nil)
	kws := KeywordsForNiche("finanças pessoais")
	if len(kws) != 8 {
		t.Fatalf("expected 8 candidates, got %d", len(kws))
	}
	a := e.Estimate(kws)
	b := e.Estimate(kws)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same input must yield identical records")
	}
}

func TestEstimateNicheMemoizes(t *testing.T) {
	cache := NewKeywordCache(10)
	e := NewKeywordEstimator(cache)
	first := e.EstimateNiche("Yoga", "BR")
	second := e.EstimateNiche("  yoga ", "BR")
	if !reflect.DeepEqual(first, second) {
		t.Fatal("niche key must be case and whitespace insensitive")
	}
	if cache.Len() != 1 {
		t.Fatalf("expected 1 cached entry, got %d", cache.Len())
	}
}

func TestKeywordCacheEvictsOldest(t *testing.T) {
	cache := NewKeywordCache(2)
	e := NewKeywordEstimator(cache)
	e.EstimateNiche("a", "BR")
	e.EstimateNiche("b", "BR")
	e.EstimateNiche("c", "BR")
	if cache.Len() != 2 {
		t.Fatalf("expected bounded cache of 2, got %d", cache.Len())
	}
	if _, ok := cache.get("a|BR"); ok {
		t.Fatal("oldest entry should have been evicted")
	}
	if _, ok := cache.get("c|BR"); !ok {
		t.Fatal("newest entry missing")
	}
}

func TestIdentifyKeywordOpportunities(t *testing.T) {
	records := map[string]KeywordRecord{
		"nicho muito especifico de verdade": {Volume: 40000, Difficulty: DifficultyLow, CPC: 2.10},
		"como aprender marketing":           {Volume: 30000, Difficulty: DifficultyMedium, CPC: 4.00},
		"yoga":                              {Volume: 10000, Difficulty: DifficultyHigh, CPC: 1.50},
	}
	opps := IdentifyKeywordOpportunities(records)
	if len(opps) != 2 {
		t.Fatalf("expected 2 opportunities, got %d", len(opps))
	}
	// Sorted by keyword, so the medium-difficulty one comes first.
	if opps[0].Priority != "Média" || opps[0].EstimatedValue != 6000 {
		t.Fatalf("high-value opportunity: got priority %s value %.2f", opps[0].Priority, opps[0].EstimatedValue)
	}
	if opps[1].Priority != "Alta" || opps[1].EstimatedTraffic != 4000 {
		t.Fatalf("low-difficulty opportunity: got priority %s traffic %d", opps[1].Priority, opps[1].EstimatedTraffic)
	}
}
