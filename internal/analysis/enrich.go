package analysis

import "strings"

// Document enrichers. Each is pure and total: absent or unmatched inputs
// resolve to documented defaults, and re-running any of them on the same
// input yields identical output.

func AnalyzeSearchTrends(niche string) *SearchTrends {
	return &SearchTrends{
		OverallTrend:     "Crescimento estável",
		SeasonalPeaks:    []string{"Janeiro", "Setembro"},
		SeasonalDeclines: []string{"Dezembro", "Julho"},
		EmergingKeywords: []string{niche + " 2024", niche + " ia", niche + " automacao"},
	}
}

var marketSizes = []struct {
	niche string
	size  MarketSize
}{
	{"marketing digital", MarketSize{TAM: "R$ 2.1 bilhões", SAM: "R$ 420 milhões", SOM: "R$ 21 milhões"}},
	{"saude", MarketSize{TAM: "R$ 3.5 bilhões", SAM: "R$ 350 milhões", SOM: "R$ 17.5 milhões"}},
	{"saúde", MarketSize{TAM: "R$ 3.5 bilhões", SAM: "R$ 350 milhões", SOM: "R$ 17.5 milhões"}},
	{"educacao", MarketSize{TAM: "R$ 1.8 bilhões", SAM: "R$ 180 milhões", SOM: "R$ 9 milhões"}},
	{"educação", MarketSize{TAM: "R$ 1.8 bilhões", SAM: "R$ 180 milhões", SOM: "R$ 9 milhões"}},
}

var defaultMarketSize = MarketSize{TAM: "R$ 500 milhões", SAM: "R$ 50 milhões", SOM: "R$ 2.5 milhões"}

func EstimateMarketSize(niche string) *MarketSize {
	lower := strings.ToLower(niche)
	for _, ms := range marketSizes {
		if strings.Contains(lower, ms.niche) {
			size := ms.size
			return &size
		}
	}
	size := defaultMarketSize
	return &size
}

func IdentifySeasonalPatterns(niche string) *SeasonalPatterns {
	return &SeasonalPatterns{
		BestLaunchWindow:  "Março ou Setembro",
		WorstLaunchWindow: "Dezembro ou Julho",
		SeasonalFactors:   []string{"Volta às aulas", "Planejamento anual", "Férias escolares"},
	}
}

func GrowthOpportunities(niche string) []string {
	return []string{
		"Integração com inteligência artificial",
		"Foco em micro-nichos específicos",
		"Parcerias estratégicas com influenciadores",
		"Expansão para formato mobile-first",
		"Criação de comunidade engajada",
	}
}

// BuildActionPlan sizes the preparation phase by the first 30/60/90 token in
// the launch timeline, defaulting to 90 days.
func BuildActionPlan(timeline string) ActionPlan {
	days := preparationDays(timeline)
	return ActionPlan{
		Preparation: ActionPhase{
			Duration: itoaDays(days),
			Tasks: []string{
				"Finalizar produto/serviço (Dias 1-10)",
				"Criar landing page e funil (Dias 11-15)",
				"Produzir conteúdo de aquecimento (Dias 16-20)",
				"Configurar tracking e analytics (Dias 21-25)",
				"Testar todos os sistemas (Dias 26-30)",
			},
		},
		PreLaunch: ActionPhase{
			Duration: "7 dias",
			Tasks: []string{
				"Sequência de aquecimento via e-mail",
				"Conteúdo de valor nas redes sociais",
				"Anúncios de retargeting para leads",
				"Parcerias com afiliados/influenciadores",
			},
		},
		Launch: ActionPhase{
			Duration: "10 dias",
			Tasks: []string{
				"Webinar de lançamento (Dia 1)",
				"Abertura do carrinho (Dia 2)",
				"E-mails diários de conversão",
				"Lives de quebra de objeções",
				"Últimas horas com urgência",
			},
		},
		KPIs: []string{
			"CPL por canal",
			"Taxa de abertura de e-mails",
			"Taxa de conversão do funil",
			"ROI por anúncio",
			"Lifetime Value",
		},
	}
}

func BuildRiskAnalysis() RiskAnalysis {
	return RiskAnalysis{
		IdentifiedRisks: []Risk{
			{Risk: "Alta concorrência no nicho", Probability: "Média", Impact: "Alto", Mitigation: "Diferenciação clara e proposta de valor única"},
			{Risk: "Custo de aquisição elevado", Probability: "Alta", Impact: "Alto", Mitigation: "Diversificar canais e focar em conversão orgânica"},
			{Risk: "Baixa taxa de conversão inicial", Probability: "Média", Impact: "Médio", Mitigation: "Testes A/B constantes e otimização do funil"},
			{Risk: "Mudanças no algoritmo das plataformas", Probability: "Alta", Impact: "Médio", Mitigation: "Estratégia multi-canal e lista de e-mail própria"},
		},
		Contingency: ContingencyPlan{
			PessimisticScenario: "ROI abaixo de 200% - Reduzir investimento e focar em otimização",
			OptimisticScenario:  "ROI acima de 500% - Escalar investimento rapidamente",
			AlertIndicators:     []string{"CPL > R$ 50", "Taxa conversão < 1%", "ROI < 150%"},
		},
	}
}

func preparationDays(timeline string) int {
	switch {
	case strings.Contains(timeline, "30"):
		return 30
	case strings.Contains(timeline, "60"):
		return 60
	default:
		return 90
	}
}

func itoaDays(days int) string {
	switch days {
	case 30:
		return "30 dias"
	case 60:
		return "60 dias"
	default:
		return "90 dias"
	}
}
