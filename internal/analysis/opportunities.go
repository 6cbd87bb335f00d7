package analysis

import (
	"fmt"
	"math"
	"sort"
)

// KeywordOpportunity flags a keyword worth acting on, either because
// competition is low or because the traffic is unusually valuable.
type KeywordOpportunity struct {
	Keyword          string            `json:"palavra_chave"`
	Volume           int               `json:"volume"`
	Difficulty       KeywordDifficulty `json:"dificuldade"`
	CPC              float64           `json:"cpc"`
	Priority         string            `json:"prioridade,omitempty"`
	EstimatedTraffic int               `json:"trafego_estimado,omitempty"`
	EstimatedValue   float64           `json:"valor_estimado,omitempty"`
	Reason           string            `json:"motivo"`
}

// IdentifyKeywordOpportunities scans estimated records for two patterns:
// low-difficulty keywords with real volume, and medium-difficulty keywords
// with a CPC above R$ 3. Output is sorted by keyword for stable responses.
func IdentifyKeywordOpportunities(records map[string]KeywordRecord) []KeywordOpportunity {
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	opps := make([]KeywordOpportunity, 0, len(keys))
	for _, kw := range keys {
		rec := records[kw]
		switch {
		case rec.Difficulty == DifficultyLow && rec.Volume > 1000:
			opps = append(opps, KeywordOpportunity{
				Keyword:          kw,
				Volume:           rec.Volume,
				Difficulty:       rec.Difficulty,
				CPC:              rec.CPC,
				Priority:         "Alta",
				EstimatedTraffic: int(float64(rec.Volume) * 0.1),
				Reason:           "Baixa concorrência com volume relevante",
			})
		case rec.Difficulty == DifficultyMedium && rec.CPC > 3.0:
			opps = append(opps, KeywordOpportunity{
				Keyword:        kw,
				Volume:         rec.Volume,
				Difficulty:     rec.Difficulty,
				CPC:            rec.CPC,
				Priority:       "Média",
				EstimatedValue: math.Round(rec.CPC*float64(rec.Volume)*0.05*100) / 100,
				Reason:         fmt.Sprintf("CPC de R$ %.2f indica alta intenção comercial", rec.CPC),
			})
		}
	}
	return opps
}

// KeywordRecommendations is the fixed guidance block attached to keyword
// reports.
func KeywordRecommendations() []string {
	return []string{
		"Priorize palavras-chave de baixa dificuldade para resultados rápidos",
		"Crie conteúdo otimizado para as palavras de maior volume",
		"Use palavras de cauda longa em campanhas pagas para reduzir CPC",
		"Monitore a evolução mensal das posições orgânicas",
	}
}
