package analysis

import (
	"fmt"
	"strconv"
	"strings"
)

// Synthetic projection constants. Tests and downstream consumers rely on
// these being fixed.
const (
	syntheticLeads         = 8000
	syntheticConversionPct = 2.5
	syntheticInvestment    = 50000
	syntheticDefaultPrice  = 997.0
)

// SyntheticDocument is the hard fallback used when the narrative pipeline
// fails entirely. It is seeded from the request and fully deterministic, and
// substitutes the merge: every section, including intelligence, action plan
// and risks, is generated here.
func SyntheticDocument(req Request) Document {
	price := syntheticDefaultPrice
	if req.Price != nil && *req.Price > 0 {
		price = *req.Price
	}
	niche := req.Niche
	product := orDefault(req.Product, "seu produto")

	sales := int(float64(syntheticLeads) * syntheticConversionPct / 100)
	revenue := sales * int(price)
	roi := (revenue - syntheticInvestment) * 100 / syntheticInvestment
	optimisticROI := (int(float64(revenue)*1.8) - syntheticInvestment) * 100 / syntheticInvestment

	doc := Document{
		Avatar:      syntheticAvatar(niche),
		Positioning: syntheticPositioning(niche, product),
		Competition: syntheticCompetition(niche, price),
		Marketing:   syntheticMarketing(niche, product),
		Metrics: Metrics{
			LeadsNeeded:         syntheticLeads,
			RealisticConversion: fmt.Sprintf("%.1f%%", syntheticConversionPct),
			Revenue3Months:      formatBRL(int(float64(revenue) * 0.4)),
			Revenue6Months:      formatBRL(int(float64(revenue) * 0.7)),
			Revenue12Months:     formatBRL(revenue),
			OptimisticROI:       strconv.Itoa(optimisticROI) + "%",
			RealisticROI:        strconv.Itoa(roi) + "%",
			SpendDistribution:   syntheticSpend(),
		},
		Funnel:   syntheticFunnel(niche),
		Degraded: true,
	}
	doc.MarketIntelligence = MarketIntelligence{
		SearchTrends:        AnalyzeSearchTrends(niche),
		MarketSizeEstimate:  EstimateMarketSize(niche),
		SeasonalPatterns:    IdentifySeasonalPatterns(niche),
		GrowthOpportunities: GrowthOpportunities(niche),
	}
	doc.ActionPlan = BuildActionPlan(req.LaunchTimeline)
	doc.RiskAnalysis = BuildRiskAnalysis()
	return doc
}

func syntheticAvatar(niche string) Avatar {
	return Avatar{
		Name:            "Carlos Eduardo Silva - Especialista em " + niche,
		Age:             "38 anos",
		Profession:      "Empreendedor Digital e Consultor",
		Income:          "R$ 15.000 - R$ 35.000",
		Location:        "São Paulo, SP",
		MaritalStatus:   "Casado, 2 filhos",
		Context:         fmt.Sprintf("Carlos é um profissional experiente que busca dominar %s para escalar seu negócio. Trabalha 12 horas por dia, mas sente que não está progredindo na velocidade desejada. Valoriza metodologias comprovadas e resultados mensuráveis.", niche),
		CriticalBarrier: fmt.Sprintf("A principal barreira de Carlos é a paralisia por análise - ele consome muito conteúdo sobre %s, mas tem dificuldade em transformar conhecimento em ação efetiva.", niche),
		DesiredState:    fmt.Sprintf("Carlos deseja ser reconhecido como uma autoridade em %s, com um negócio que gere pelo menos R$ 100.000 mensais de forma consistente.", niche),
		Frustrations: []string{
			fmt.Sprintf("Excesso de informação contraditória sobre %s disponível online", niche),
			"Dificuldade em encontrar estratégias que funcionem especificamente no mercado brasileiro",
			"Falta de tempo para implementar todas as táticas que aprende",
			fmt.Sprintf("Dificuldade em mensurar o ROI real das estratégias implementadas em %s", niche),
		},
		LimitingBelief: fmt.Sprintf("Carlos acredita que para ter sucesso em %s é preciso trabalhar mais horas e estar sempre atualizado com as últimas tendências.", niche),
		DreamsAspirations: []string{
			fmt.Sprintf("Construir um império digital em %s que funcione sem sua presença constante", niche),
			"Ter liberdade financeira para investir em outros negócios e projetos pessoais",
		},
		OnlinePresence: []string{
			"LinkedIn (grupos de empreendedorismo digital e marketing)",
			"Instagram (seguindo influenciadores de negócios e mentores)",
			"YouTube (canais de educação empresarial)",
			"Podcasts sobre negócios e marketing digital",
		},
	}
}

func syntheticPositioning(niche, product string) Positioning {
	return Positioning{
		Statement: fmt.Sprintf("Para empreendedores ambiciosos que querem dominar %s sem perder a sanidade, %s é a única metodologia que combina estratégias comprovadas com implementação prática, garantindo resultados mensuráveis em 90 dias ou menos.", niche, product),
		Angles: []PositioningAngle{
			{Type: "Lógico - Baseado em Dados", Message: fmt.Sprintf("Nossos alunos aumentaram em média 347%% seu faturamento em %s nos primeiros 6 meses.", niche)},
			{Type: "Emocional - Transformação de Vida", Message: fmt.Sprintf("Imagine acordar sabendo exatamente o que fazer para crescer em %s, sem a ansiedade de estar perdendo oportunidades.", niche)},
			{Type: "Contraste - Diferenciação Clara", Message: fmt.Sprintf("Enquanto outros vendem teoria e promessas vazias, %s entrega um sistema passo-a-passo com acompanhamento real.", product)},
			{Type: "Urgência/Escassez - Oportunidade Limitada", Message: fmt.Sprintf("Apenas 50 vagas disponíveis para a próxima turma de %s. Quem não se posicionar agora ficará para trás.", product)},
		},
		ValueProposition: fmt.Sprintf("%s é o único programa que oferece estratégias avançadas de %s, implementação assistida, comunidade exclusiva e garantia de resultados em 90 dias.", product, niche),
	}
}

func syntheticCompetition(niche string, price float64) Competition {
	return Competition{
		Competitors: []CompetitorProfile{
			{
				Name:                       fmt.Sprintf("MasterClass %s Brasil", niche),
				ProductOrService:           "Curso online com certificação",
				EstimatedPrice:             formatBRL(int(price * 0.6)),
				Strengths:                  "Marca reconhecida, conteúdo extenso, preço acessível, certificação oficial.",
				Weaknesses:                 "Conteúdo muito teórico, sem acompanhamento personalizado, baixa taxa de conclusão (12%).",
				DifferentiationOpportunity: "Oferecer mentoria em grupo, foco total em implementação prática e garantia de resultados.",
			},
			{
				Name:                       fmt.Sprintf("Consultoria Premium %s", niche),
				ProductOrService:           "Consultoria individual 1-on-1",
				EstimatedPrice:             formatBRL(int(price * 4.0)),
				Strengths:                  "Atendimento 100% personalizado, consultor experiente, resultados rápidos para quem implementa.",
				Weaknesses:                 "Preço inacessível para maioria, não escalável, dependência total do consultor.",
				DifferentiationOpportunity: "Criar modelo híbrido com sessões em grupo + individual, reduzindo custo com qualidade.",
			},
			{
				Name:                       fmt.Sprintf("Agência Full Service %s", niche),
				ProductOrService:           "Gestão completa de estratégias",
				EstimatedPrice:             formatBRL(int(price * 5.0)),
				Strengths:                  "Execução completa para o cliente, equipe especializada, resultados diretos sem esforço do cliente.",
				Weaknesses:                 "Custo mensal muito alto, cliente não aprende o processo, falta de controle.",
				DifferentiationOpportunity: "Ensinar o cliente a ser independente, com ferramentas e capacitação da equipe interna.",
			},
		},
		MarketGaps: []string{
			fmt.Sprintf("Ausência de metodologia estruturada para %s com foco no mercado brasileiro", niche),
			"Falta de programas que combinem teoria + prática + acompanhamento + comunidade",
			fmt.Sprintf("Carência de garantias reais de resultado em programas de %s", niche),
		},
		Benchmarking: []string{
			"Modelo de mentoria em grupo com sessões semanais ao vivo",
			"Comunidade exclusiva com networking ativo e troca de experiências",
			"Sistema de implementação assistida com templates, checklists e ferramentas prontas",
		},
	}
}

func syntheticMarketing(niche, product string) Marketing {
	return Marketing{
		LandingPageHeadlines: []string{
			fmt.Sprintf("A Metodologia Que Está Transformando Empreendedores em Autoridades de %s (Resultados em 90 Dias)", niche),
			fmt.Sprintf("Como Dominar %s e Faturar 6 Dígitos Sem Trabalhar 12 Horas Por Dia", niche),
			fmt.Sprintf("O Sistema Completo Para Você Se Tornar Referência em %s", niche),
		},
		SalesPageStructure: []SalesPageSection{
			{Title: fmt.Sprintf("A Frustração Que Todo Empreendedor de %s Conhece", niche), Summary: "Abrir com a dor específica: excesso de informação, falta de resultados práticos."},
			{Title: "A Descoberta Que Mudou Tudo", Summary: "História do criador do método e validação da metodologia."},
			{Title: fmt.Sprintf("Apresentando %s - O Sistema Definitivo", product), Summary: "Apresentação da solução, pilares da metodologia e diferencial competitivo."},
			{Title: "Prova Social Irrefutável - Resultados Reais", Summary: "Depoimentos em vídeo, cases de sucesso com números reais."},
			{Title: "Garantia Blindada de Resultados", Summary: "Garantia de 90 dias, condições claras, redução de risco para o cliente."},
			{Title: "Última Chance - Garanta Sua Vaga", Summary: "CTA final com urgência, escassez real e resumo dos benefícios."},
		},
		EmailSubjects: []string{
			fmt.Sprintf("[REVELADO] O segredo dos top 1%% em %s que ninguém te conta", niche),
			fmt.Sprintf("%s - Vagas abertas para a turma mais exclusiva do ano", product),
			fmt.Sprintf("Por que 97%% dos empreendedores falham em %s (e como estar nos 3%%)", niche),
			fmt.Sprintf("URGENTE: Últimas 12 vagas para %s - Encerra amanhã", product),
			fmt.Sprintf("FINAL: %s encerra hoje às 23:59 - Não perca sua chance", product),
		},
		AdScripts: []AdScript{
			{Angle: "Dor + Solução + Prova Social", Script: fmt.Sprintf("Cansado de estudar %s mas não ver resultados? Conheça %s, a metodologia que já transformou mais de 500 empreendedores em autoridades do mercado.", niche, product)},
			{Angle: "Autoridade + Transformação", Script: fmt.Sprintf("Se você quer sair da teoria e partir para resultados reais em %s, %s é para você. Vagas limitadas!", niche, product)},
			{Angle: "Urgência + Benefício Claro", Script: fmt.Sprintf("ÚLTIMAS VAGAS: %s está encerrando e pode ser sua última chance de dominar %s com quem entende do mercado brasileiro.", product, niche)},
		},
	}
}

func syntheticSpend() []ChannelSpend {
	channels := []struct {
		name string
		pct  float64
	}{
		{"Meta Ads (Facebook + Instagram)", 0.45},
		{"Google Ads (Search + YouTube)", 0.25},
		{"Conteúdo Orgânico + SEO", 0.15},
		{"E-mail Marketing + Automação", 0.10},
		{"Parcerias + Afiliados", 0.05},
	}
	out := make([]ChannelSpend, 0, len(channels))
	for _, c := range channels {
		out = append(out, ChannelSpend{
			Channel:    c.name,
			Percentage: fmt.Sprintf("%.0f%%", c.pct*100),
			Amount:     formatBRL(int(syntheticInvestment * c.pct)),
		})
	}
	return out
}

func syntheticFunnel(niche string) Funnel {
	return Funnel{
		Phases: []FunnelPhase{
			{
				Name:             "Consciência e Atração (Awareness)",
				Objective:        fmt.Sprintf("Atrair o público-alvo qualificado e gerar reconhecimento da marca como autoridade em %s.", niche),
				MarketingActions: "Conteúdo de valor no blog e redes sociais, anúncios de topo de funil, SEO para palavras-chave do nicho.",
				TrackingMetrics:  []string{"Alcance e impressões dos anúncios", "Tráfego orgânico e pago", "Engajamento nas redes sociais"},
			},
			{
				Name:             "Interesse e Educação (Interest)",
				Objective:        fmt.Sprintf("Educar o lead sobre os problemas de %s e posicionar a solução como a mais adequada.", niche),
				MarketingActions: "Webinars educativos, e-books gratuitos, sequência de e-mails com conteúdo de valor, retargeting.",
				TrackingMetrics:  []string{"Taxa de conversão de visitante para lead", "Taxa de abertura e clique dos e-mails", "Participação nos webinars"},
			},
			{
				Name:             "Consideração e Avaliação (Consideration)",
				Objective:        "Demonstrar credibilidade, quebrar objeções e posicionar o produto como a melhor escolha.",
				MarketingActions: "Cases de sucesso detalhados, depoimentos em vídeo, comparações com concorrentes, FAQ completo.",
				TrackingMetrics:  []string{"Tempo gasto na página de vendas", "Visualizações dos depoimentos", "Interações com o FAQ"},
			},
			{
				Name:             "Intenção de Compra (Intent)",
				Objective:        "Converter leads qualificados em clientes, removendo últimas objeções e criando urgência.",
				MarketingActions: "Ofertas por tempo limitado, bônus exclusivos, remarketing, e-mails de carrinho abandonado.",
				TrackingMetrics:  []string{"Adições ao carrinho", "Início do checkout", "Taxa de abandono de carrinho"},
			},
			{
				Name:             "Compra e Conversão (Purchase)",
				Objective:        "Facilitar o processo de compra e maximizar o valor do pedido.",
				MarketingActions: "Checkout otimizado, múltiplas opções de pagamento, upsells e cross-sells.",
				TrackingMetrics:  []string{"Taxa de conversão final", "Ticket médio", "Taxa de sucesso de upsells"},
			},
			{
				Name:             "Pós-Venda e Fidelização (Retention)",
				Objective:        "Garantir satisfação, maximizar LTV e transformar clientes em promotores da marca.",
				MarketingActions: "Onboarding estruturado, suporte proativo, programa de fidelidade e indicações.",
				TrackingMetrics:  []string{"Taxa de satisfação (NPS)", "Taxa de retenção", "Lifetime Value (LTV)"},
			},
		},
		ExecutionSchedule: "Semana 1-2: pré-aquecimento com conteúdo de valor. Semana 3: lançamento com webinar e abertura de carrinho. Semana 4: intensificação com depoimentos e quebra de objeções. Semana 5: urgência com bônus finais. Semana 6: fechamento oficial e onboarding.",
		CriticalMetrics: []string{
			"Custo por Lead Qualificado (CPL) - Meta: R$ 15-25",
			"Taxa de Conversão do Funil Completo - Meta: 2-3%",
			"Custo por Aquisição (CPA) - Meta: R$ 300-500",
			"Retorno sobre Investimento (ROI) - Meta: 300-500%",
			"Lifetime Value (LTV) - Meta: R$ 2.000-3.000",
		},
	}
}

// formatBRL renders an integer amount as "R$ 1.234.567".
func formatBRL(v int) string {
	s := strconv.Itoa(v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := "R$ " + strings.Join(parts, ".")
	if neg {
		out = "R$ -" + strings.Join(parts, ".")
	}
	return out
}
