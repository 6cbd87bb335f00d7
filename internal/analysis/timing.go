package analysis

import "strings"

// Launch-timing analysis: fixed-table heuristics for when to launch in a
// given niche.

type LaunchQuarter struct {
	Period         string   `json:"periodo"`
	Recommendation string   `json:"recomendacao"`
	Factors        []string `json:"fatores"`
}

type CompetitorTiming struct {
	LaunchPeaks       []string `json:"picos_lancamento_concorrencia"`
	LowCompetition    []string `json:"periodos_menor_concorrencia"`
	TimingOpportunity []string `json:"oportunidades_timing"`
}

type TimingAnalysis struct {
	BestLaunchMonth  string                   `json:"melhor_mes_lancamento"`
	WorstLaunchMonth string                   `json:"pior_mes_lancamento"`
	SeasonalFactors  []string                 `json:"fatores_sazonais"`
	LaunchCalendar   map[string]LaunchQuarter `json:"calendario_lancamentos"`
	CompetitorTiming CompetitorTiming         `json:"analise_concorrencia_timing"`
	Recommendations  []string                 `json:"recomendacoes"`
}

var bestLaunchMonths = []struct {
	niche string
	month string
}{
	{"marketing", "Março"},
	{"saude", "Janeiro"},
	{"saúde", "Janeiro"},
	{"fitness", "Janeiro"},
	{"educacao", "Março"},
	{"educação", "Março"},
	{"financas", "Janeiro"},
	{"finanças", "Janeiro"},
	{"desenvolvimento pessoal", "Janeiro"},
}

// AnalyzeLaunchTiming is pure and total; unknown niches fall back to the
// default calendar.
func AnalyzeLaunchTiming(niche, productType string) TimingAnalysis {
	return TimingAnalysis{
		BestLaunchMonth:  bestLaunchMonth(niche),
		WorstLaunchMonth: "Dezembro",
		SeasonalFactors: []string{
			"Volta às aulas (Fevereiro/Março)",
			"Planejamento de metas (Janeiro)",
			"Black Friday (Novembro)",
			"Férias escolares (Julho/Dezembro)",
		},
		LaunchCalendar: map[string]LaunchQuarter{
			"trimestre_1": {Period: "Janeiro-Março", Recommendation: "Ideal para lançamentos", Factors: []string{"Ano novo, novas metas", "Volta às aulas", "Orçamentos renovados"}},
			"trimestre_2": {Period: "Abril-Junho", Recommendation: "Bom período", Factors: []string{"Estabilidade", "Foco em resultados", "Preparação meio do ano"}},
			"trimestre_3": {Period: "Julho-Setembro", Recommendation: "Moderado", Factors: []string{"Férias julho", "Volta às aulas agosto/setembro"}},
			"trimestre_4": {Period: "Outubro-Dezembro", Recommendation: "Evitar dezembro", Factors: []string{"Black Friday novembro", "Festividades dezembro"}},
		},
		CompetitorTiming: CompetitorTiming{
			LaunchPeaks:    []string{"Janeiro", "Março", "Setembro"},
			LowCompetition: []string{"Maio", "Agosto", "Outubro"},
			TimingOpportunity: []string{
				"Lançar em períodos de baixa concorrência",
				"Contra-atacar lançamentos dos concorrentes",
				"Aproveitar datas comemorativas específicas do nicho",
			},
		},
		Recommendations: timingRecommendations(productType),
	}
}

func bestLaunchMonth(niche string) string {
	lower := strings.ToLower(niche)
	for _, m := range bestLaunchMonths {
		if strings.Contains(lower, m.niche) {
			return m.month
		}
	}
	return "Março"
}

func timingRecommendations(productType string) []string {
	recs := []string{
		"Inicie o aquecimento 30 dias antes do lançamento",
		"Evite competir diretamente com grandes players",
		"Use sazonalidade a seu favor",
		"Monitore calendário de lançamentos dos concorrentes",
	}
	switch productType {
	case "curso":
		recs = append(recs, "Aproveite período de volta às aulas")
	case "consultoria":
		recs = append(recs, "Foque no início do ano e meio do ano")
	}
	return recs
}
