package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mercadoscope/mercadoscope/internal/analysis"
)

// Meta is the record envelope rendered into the report header.
type Meta struct {
	ID        int64
	CreatedAt time.Time
}

// BuildMarkdown renders a completed analysis as a standalone markdown report.
func BuildMarkdown(meta Meta, req analysis.Request, doc analysis.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Análise de Mercado: %s\n\n", sanitize(req.Niche))
	fmt.Fprintf(&b, "- Análise: #%d\n", meta.ID)
	if req.Product != "" {
		fmt.Fprintf(&b, "- Produto: %s\n", sanitize(req.Product))
	}
	fmt.Fprintf(&b, "- Data: %s\n\n", meta.CreatedAt.Format("02/01/2006 15:04"))

	if doc.Degraded {
		fmt.Fprintf(&b, "> ATENÇÃO: esta análise foi gerada em modo degradado com projeções padrão. Trate os números como ponto de partida, não como previsão.\n\n")
	}

	// --- Avatar ---
	fmt.Fprintf(&b, "## Avatar do Cliente Ideal\n\n")
	fmt.Fprintf(&b, "**%s**", sanitize(doc.Avatar.Name))
	if doc.Avatar.Age != "" {
		fmt.Fprintf(&b, ", %s", sanitize(doc.Avatar.Age))
	}
	if doc.Avatar.Profession != "" {
		fmt.Fprintf(&b, " — %s", sanitize(doc.Avatar.Profession))
	}
	fmt.Fprintf(&b, "\n\n")
	if doc.Avatar.Context != "" {
		fmt.Fprintf(&b, "%s\n\n", sanitize(doc.Avatar.Context))
	}
	if doc.Avatar.CriticalBarrier != "" {
		fmt.Fprintf(&b, "**Barreira crítica**: %s\n\n", sanitize(doc.Avatar.CriticalBarrier))
	}
	writeList(&b, "Frustrações", doc.Avatar.Frustrations)
	writeList(&b, "Sonhos e aspirações", doc.Avatar.DreamsAspirations)

	// --- Positioning ---
	fmt.Fprintf(&b, "## Posicionamento\n\n")
	if doc.Positioning.Statement != "" {
		fmt.Fprintf(&b, "%s\n\n", sanitize(doc.Positioning.Statement))
	}
	for _, a := range doc.Positioning.Angles {
		fmt.Fprintf(&b, "- **%s**: %s\n", sanitize(a.Type), sanitize(a.Message))
	}
	if len(doc.Positioning.Angles) > 0 {
		fmt.Fprintf(&b, "\n")
	}
	if doc.Positioning.ValueProposition != "" {
		fmt.Fprintf(&b, "**Proposta de valor**: %s\n\n", sanitize(doc.Positioning.ValueProposition))
	}

	// --- Competition ---
	fmt.Fprintf(&b, "## Concorrência\n\n")
	if len(doc.Competition.Competitors) > 0 {
		fmt.Fprintf(&b, "| Concorrente | Oferta | Preço | Oportunidade de diferenciação |\n")
		fmt.Fprintf(&b, "|-------------|--------|-------|-------------------------------|\n")
		for _, c := range doc.Competition.Competitors {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				sanitizeCell(c.Name), sanitizeCell(c.ProductOrService),
				sanitizeCell(c.EstimatedPrice), sanitizeCell(c.DifferentiationOpportunity))
		}
		fmt.Fprintf(&b, "\n")
	}
	writeList(&b, "Lacunas de mercado", doc.Competition.MarketGaps)

	// --- Metrics ---
	fmt.Fprintf(&b, "## Métricas e Projeções\n\n")
	fmt.Fprintf(&b, "| Métrica | Valor |\n|---------|-------|\n")
	fmt.Fprintf(&b, "| Leads necessários | %d |\n", doc.Metrics.LeadsNeeded)
	fmt.Fprintf(&b, "| Taxa de conversão | %s |\n", sanitizeCell(doc.Metrics.RealisticConversion))
	fmt.Fprintf(&b, "| Faturamento 12 meses | %s |\n", sanitizeCell(doc.Metrics.Revenue12Months))
	fmt.Fprintf(&b, "| ROI realista | %s |\n", sanitizeCell(doc.Metrics.RealisticROI))
	if doc.Metrics.OptimisticROI != "" {
		fmt.Fprintf(&b, "| ROI otimista | %s |\n", sanitizeCell(doc.Metrics.OptimisticROI))
	}
	fmt.Fprintf(&b, "\n")
	if len(doc.Metrics.SpendDistribution) > 0 {
		fmt.Fprintf(&b, "### Distribuição de Investimento\n\n")
		for _, cs := range doc.Metrics.SpendDistribution {
			fmt.Fprintf(&b, "- %s: %s (%s)\n", sanitize(cs.Channel), sanitize(cs.Amount), sanitize(cs.Percentage))
		}
		fmt.Fprintf(&b, "\n")
	}

	// --- Funnel ---
	if len(doc.Funnel.Phases) > 0 {
		fmt.Fprintf(&b, "## Funil de Vendas\n\n")
		for i, p := range doc.Funnel.Phases {
			fmt.Fprintf(&b, "%d. **%s** — %s\n", i+1, sanitize(p.Name), sanitize(p.Objective))
		}
		fmt.Fprintf(&b, "\n")
		if doc.Funnel.ExecutionSchedule != "" {
			fmt.Fprintf(&b, "**Cronograma**: %s\n\n", sanitize(doc.Funnel.ExecutionSchedule))
		}
		writeList(&b, "Métricas críticas", doc.Funnel.CriticalMetrics)
	}

	// --- Market intelligence ---
	fmt.Fprintf(&b, "## Inteligência de Mercado\n\n")
	writeKeywordTable(&b, doc.MarketIntelligence.KeywordAnalysis)
	if ms := doc.MarketIntelligence.MarketSizeEstimate; ms != nil {
		fmt.Fprintf(&b, "**Tamanho de mercado**: TAM %s · SAM %s · SOM %s\n\n", ms.TAM, ms.SAM, ms.SOM)
	}
	if st := doc.MarketIntelligence.SearchTrends; st != nil {
		fmt.Fprintf(&b, "**Tendência de busca**: %s\n\n", sanitize(st.OverallTrend))
	}
	writeList(&b, "Oportunidades de crescimento", doc.MarketIntelligence.GrowthOpportunities)

	// --- Action plan ---
	fmt.Fprintf(&b, "## Plano de Ação\n\n")
	writePhase(&b, "Preparação", doc.ActionPlan.Preparation)
	writePhase(&b, "Pré-lançamento", doc.ActionPlan.PreLaunch)
	writePhase(&b, "Lançamento", doc.ActionPlan.Launch)
	writeList(&b, "KPIs de monitoramento", doc.ActionPlan.KPIs)

	// --- Risks ---
	fmt.Fprintf(&b, "## Análise de Riscos\n\n")
	if len(doc.RiskAnalysis.IdentifiedRisks) > 0 {
		fmt.Fprintf(&b, "| Risco | Probabilidade | Impacto | Mitigação |\n")
		fmt.Fprintf(&b, "|-------|---------------|---------|----------|\n")
		for _, r := range doc.RiskAnalysis.IdentifiedRisks {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				sanitizeCell(r.Risk), sanitizeCell(r.Probability),
				sanitizeCell(r.Impact), sanitizeCell(r.Mitigation))
		}
		fmt.Fprintf(&b, "\n")
	}
	if cp := doc.RiskAnalysis.Contingency; cp.PessimisticScenario != "" || cp.OptimisticScenario != "" {
		fmt.Fprintf(&b, "- Cenário pessimista: %s\n", sanitize(cp.PessimisticScenario))
		fmt.Fprintf(&b, "- Cenário otimista: %s\n\n", sanitize(cp.OptimisticScenario))
	}

	// --- Appendix ---
	fmt.Fprintf(&b, "## Apêndice\n\n### Documento Completo (JSON)\n\n```json\n%s\n```\n", prettyJSON(doc))
	return b.String()
}

func writeKeywordTable(b *strings.Builder, records map[string]analysis.KeywordRecord) {
	if len(records) == 0 {
		return
	}
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(b, "| Palavra-chave | Volume | Dificuldade | CPC |\n")
	fmt.Fprintf(b, "|---------------|--------|-------------|-----|\n")
	for _, k := range keys {
		r := records[k]
		fmt.Fprintf(b, "| %s | %d | %s | R$ %.2f |\n", sanitizeCell(k), r.Volume, r.Difficulty, r.CPC)
	}
	fmt.Fprintf(b, "\n")
}

func writePhase(b *strings.Builder, name string, phase analysis.ActionPhase) {
	if len(phase.Tasks) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s (%s)\n\n", name, sanitize(phase.Duration))
	for _, t := range phase.Tasks {
		fmt.Fprintf(b, "- %s\n", sanitize(t))
	}
	fmt.Fprintf(b, "\n")
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s**:\n\n", title)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", sanitize(it))
	}
	fmt.Fprintf(b, "\n")
}

func prettyJSON(v any) string {
	blob, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(blob)
}

func sanitize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

// sanitizeCell prepares text for a markdown table cell: no newlines and no
// unescaped pipes.
func sanitizeCell(s string) string {
	return strings.ReplaceAll(sanitize(s), "|", "\\|")
}
