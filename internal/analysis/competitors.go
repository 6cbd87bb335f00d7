package analysis

import "strings"

// CompetitorAnalyzer synthesizes competitor profiles from fixed lookup
// tables. Total function: it never fails and never returns an empty list.
type CompetitorAnalyzer struct{}

func NewCompetitorAnalyzer() *CompetitorAnalyzer { return &CompetitorAnalyzer{} }

var competitorPriceRanges = []struct {
	niche string
	price string
}{
	{"marketing digital", "R$ 497-2.997"},
	{"saúde", "R$ 197-997"},
	{"saude", "R$ 197-997"},
	{"fitness", "R$ 97-497"},
	{"finanças", "R$ 297-1.497"},
	{"financas", "R$ 297-1.497"},
	{"educação", "R$ 197-897"},
	{"educacao", "R$ 197-897"},
	{"desenvolvimento pessoal", "R$ 297-1.997"},
}

const defaultCompetitorPrice = "R$ 197-997"

var (
	competitorStrengths = []string{
		"Marca estabelecida no mercado",
		"Base de clientes consolidada",
		"Presença forte nas redes sociais",
		"Conteúdo de qualidade",
		"Preço competitivo",
	}
	competitorWeaknesses = []string{
		"Atendimento ao cliente limitado",
		"Produto genérico sem diferenciação",
		"Marketing massificado",
		"Falta de inovação",
		"Preço elevado para o valor entregue",
	}
	competitorStrategies = []string{
		"Foco em Facebook Ads e Instagram",
		"Marketing de conteúdo e SEO",
		"Parcerias com influenciadores",
		"E-mail marketing intensivo",
	}
	differentiationOpportunities = []string{
		"Personalização da experiência do cliente",
		"Suporte mais humanizado e próximo",
		"Metodologia exclusiva e comprovada",
		"Garantia mais robusta",
		"Bônus de maior valor percebido",
	}
)

// Analyze builds one profile per competitor name, in input order. An empty
// list yields the two synthetic archetypes so the document never shows an
// empty competitor section.
func (a *CompetitorAnalyzer) Analyze(niche string, names []string) []CompetitorProfile {
	profiles := make([]CompetitorProfile, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		profiles = append(profiles, CompetitorProfile{
			Name:                       name,
			ProductOrService:           "Produto/serviço em " + niche,
			EstimatedPrice:             estimateCompetitorPrice(niche),
			Strengths:                  strings.Join(competitorStrengths[:3], "; "),
			Weaknesses:                 strings.Join(competitorWeaknesses[:3], "; "),
			EstimatedMarketShare:       "5-15% do nicho",
			MarketingStrategy:          competitorStrategies[0],
			DifferentiationOpportunity: differentiationOpportunities[0],
		})
	}
	if len(profiles) == 0 {
		return genericCompetitors(niche)
	}
	return profiles
}

// AnalyzeText is the legacy-compat shim for free-text competitor lists.
// The structured list on the request is preferred at the API boundary.
func (a *CompetitorAnalyzer) AnalyzeText(niche, competitorsText string) []CompetitorProfile {
	return a.Analyze(niche, SplitCompetitors(competitorsText))
}

// SplitCompetitors breaks a free-text competitor list on commas, semicolons
// and newlines, discarding blanks.
func SplitCompetitors(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			names = append(names, f)
		}
	}
	return names
}

func estimateCompetitorPrice(niche string) string {
	lower := strings.ToLower(niche)
	for _, pr := range competitorPriceRanges {
		if strings.Contains(lower, pr.niche) {
			return pr.price
		}
	}
	return defaultCompetitorPrice
}

func genericCompetitors(niche string) []CompetitorProfile {
	return []CompetitorProfile{
		{
			Name:                       "Líder do mercado em " + niche,
			ProductOrService:           "Curso/consultoria premium em " + niche,
			EstimatedPrice:             estimateCompetitorPrice(niche),
			Strengths:                  "Autoridade estabelecida; Grande base de clientes; Marketing bem estruturado",
			Weaknesses:                 "Preço elevado; Atendimento massificado; Pouca inovação",
			EstimatedMarketShare:       "15-25% do nicho",
			MarketingStrategy:          "Facebook Ads + E-mail marketing + Webinars",
			DifferentiationOpportunity: "Atendimento personalizado e metodologia exclusiva",
		},
		{
			Name:                       "Challenger em " + niche,
			ProductOrService:           "Produto digital intermediário em " + niche,
			EstimatedPrice:             "R$ 197-697",
			Strengths:                  "Preço acessível; Marketing ágil; Inovação constante",
			Weaknesses:                 "Menor autoridade; Recursos limitados; Suporte básico",
			EstimatedMarketShare:       "5-10% do nicho",
			MarketingStrategy:          "Instagram + TikTok + Influenciadores micro",
			DifferentiationOpportunity: "Superior qualidade de conteúdo e suporte premium",
		},
	}
}
