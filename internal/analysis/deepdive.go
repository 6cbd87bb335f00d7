package analysis

// Single-competitor deep dive, used by the dedicated competitor endpoint.
// Like the list analysis, everything here resolves from fixed tables.

type MarketingReport struct {
	MainChannels    []string `json:"canais_principais"`
	ContentStrategy string   `json:"estrategia_conteudo"`
	EstimatedBudget string   `json:"investimento_estimado"`
	Copywriting     string   `json:"copywriting"`
}

type PricingReport struct {
	PriceRange  string `json:"faixa_preco"`
	Strategy    string `json:"estrategia_precos"`
	Positioning string `json:"posicionamento"`
}

type ContentReport struct {
	PostFrequency string   `json:"frequencia_postagem"`
	TopFormats    []string `json:"formatos_principais"`
	Engagement    string   `json:"engajamento"`
}

type CompetitorDeepDive struct {
	Profile   CompetitorProfile `json:"perfil"`
	Marketing MarketingReport   `json:"analise_marketing"`
	Pricing   PricingReport     `json:"analise_precos"`
	Content   ContentReport     `json:"analise_conteudo"`
}

// DeepDive builds the full report for one named competitor.
func (a *CompetitorAnalyzer) DeepDive(name, niche string) CompetitorDeepDive {
	profiles := a.Analyze(niche, []string{name})
	return CompetitorDeepDive{
		Profile: profiles[0],
		Marketing: MarketingReport{
			MainChannels:    []string{"Facebook Ads", "Instagram", "E-mail marketing"},
			ContentStrategy: "Conteúdo educativo com CTAs para isca digital",
			EstimatedBudget: "R$ 10.000-50.000/mês em mídia paga",
			Copywriting:     "Foco em dor e transformação, urgência moderada",
		},
		Pricing: PricingReport{
			PriceRange:  estimateCompetitorPrice(niche),
			Strategy:    "Ancoragem com plano premium e parcelamento em 12x",
			Positioning: "Intermediário-premium dentro do nicho",
		},
		Content: ContentReport{
			PostFrequency: "4-7 posts por semana",
			TopFormats:    []string{"Reels", "Carrossel", "Lives semanais"},
			Engagement:    "2-5% da base ativa",
		},
	}
}
