package analysis

import (
	"fmt"
	"strings"
	"time"
)

const narrativeSchemaPrompt = `FORMATO DE RESPOSTA: JSON estruturado seguindo exatamente o esquema abaixo:

` + "```json" + `
{
  "avatar": {
    "nome": "Nome realista",
    "idade": "Faixa etária específica",
    "profissao": "Profissão detalhada",
    "renda": "Faixa salarial em R$",
    "localizacao": "Cidade/Estado brasileiro",
    "estado_civil": "Estado civil",
    "contexto": "Parágrafo detalhado sobre rotina e estilo de vida",
    "barreira_critica": "Principal dor e suas consequências",
    "estado_desejado": "Transformação desejada específica",
    "frustracoes": ["Frustração específica 1", "Frustração específica 2", "Frustração específica 3"],
    "crenca_limitante": "Crença enraizada específica",
    "sonhos_aspiracoes": ["Sonho específico 1", "Sonho específico 2"],
    "onde_online": ["Plataforma 1", "Plataforma 2"]
  },
  "positioning": {
    "declaracao": "Declaração única de posicionamento",
    "angulos": [
      {"tipo": "Lógico", "mensagem": "Mensagem com dados específicos"},
      {"tipo": "Emocional", "mensagem": "Mensagem emocional impactante"},
      {"tipo": "Contraste", "mensagem": "Contraste vs concorrência"},
      {"tipo": "Urgência", "mensagem": "Mensagem de urgência específica"}
    ],
    "proposta_valor_irrefutavel": "Proposta única de valor"
  },
  "competition": {
    "concorrentes": [
      {
        "nome": "Nome do concorrente real",
        "produto_servico": "Produto específico",
        "preco_estimado": "Faixa de preço",
        "forcas": "Forças específicas",
        "fraquezas": "Fraquezas identificadas",
        "oportunidade_diferenciacao": "Como se diferenciar"
      }
    ],
    "lacunas_mercado": ["Gap específico 1", "Gap específico 2"]
  },
  "marketing": {
    "landing_page_headlines": ["Headline testada 1", "Headline testada 2", "Headline testada 3"],
    "emails_assuntos": ["Assunto e-mail 1", "Assunto e-mail 2", "Assunto e-mail 3"],
    "anuncios_roteiros": [{"angulo": "Ângulo específico", "roteiro": "Roteiro detalhado do anúncio"}]
  },
  "metrics": {
    "leads_necessarios": 1000,
    "taxa_conversao_realista": "2.5%",
    "projecao_faturamento_3_meses": "R$ 25.000",
    "projecao_faturamento_6_meses": "R$ 75.000",
    "projecao_faturamento_12_meses": "R$ 180.000",
    "roi_realista": "300%",
    "cpl_estimado": "R$ 15",
    "cpa_estimado": "R$ 600"
  },
  "funnel": {
    "fases": [
      {
        "nome": "Consciência",
        "objetivo": "Objetivo específico",
        "acoes_marketing": "Ações detalhadas",
        "metricas_acompanhamento": ["Métrica 1", "Métrica 2"]
      }
    ],
    "cronograma_execucao": "Cronograma semanal detalhado",
    "metricas_criticas": ["CPL", "Taxa Conversão", "CPA", "ROI", "LTV"]
  }
}
` + "```"

// BuildNarrativePrompt renders the single large prompt embedding all request
// fields and the literal schema example.
func BuildNarrativePrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Data atual: %s\n\n", time.Now().Format("2006-01-02"))
	b.WriteString("Analise os seguintes dados e crie uma estratégia EXTREMAMENTE detalhada e acionável:\n\n")
	b.WriteString("DADOS DO PRODUTO:\n")
	fmt.Fprintf(&b, "- Nicho: %s\n", req.Niche)
	fmt.Fprintf(&b, "- Produto: %s\n", orDefault(req.Product, "Não especificado"))
	fmt.Fprintf(&b, "- Descrição: %s\n", orDefault(req.Description, "Não fornecida"))
	fmt.Fprintf(&b, "- Preço: %s\n", moneyOrDefault(req.Price, "Não definido"))
	fmt.Fprintf(&b, "- Público-Alvo: %s\n", orDefault(req.Audience, "Não especificado"))
	fmt.Fprintf(&b, "- Concorrentes: %s\n", orDefault(req.Competitors, "Não informados"))
	fmt.Fprintf(&b, "- Objetivo Receita: %s\n", moneyOrDefault(req.RevenueGoal, "Não definido"))
	fmt.Fprintf(&b, "- Orçamento Marketing: %s\n", moneyOrDefault(req.MarketingBudget, "Não definido"))
	fmt.Fprintf(&b, "- Prazo Lançamento: %s\n\n", orDefault(req.LaunchTimeline, "Não definido"))
	b.WriteString(`INSTRUÇÕES ESPECÍFICAS:

1. AVATAR DETALHADO: Crie um perfil ultra-específico com nome, idade, profissão, renda, localização, rotina detalhada, principais dores emocionais e aspirações.

2. POSICIONAMENTO ESTRATÉGICO: Desenvolva uma declaração única de posicionamento e 4 ângulos diferentes (lógico, emocional, contraste, urgência).

3. ANÁLISE COMPETITIVA: Se não houver concorrentes informados, identifique os principais players do nicho no Brasil.

4. ESTRATÉGIA DE MARKETING: Headlines testadas, estrutura de página de vendas, sequência de e-mails, roteiros de anúncios específicos.

5. MÉTRICAS REALISTAS: Baseie-se em benchmarks reais do mercado brasileiro para estimar conversões, CPL, CPA e ROI.

6. FUNIL DETALHADO: Mapeie cada etapa com ações específicas, métricas de acompanhamento e cronograma executável.

`)
	b.WriteString(narrativeSchemaPrompt)
	b.WriteString(`

IMPORTANTE:
- Use dados brasileiros específicos
- Seja extremamente detalhado e acionável
- Baseie estimativas em benchmarks reais
- Não use placeholders genéricos`)
	return b.String()
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func moneyOrDefault(v *float64, def string) string {
	if v == nil {
		return def
	}
	return fmt.Sprintf("R$ %.2f", *v)
}
