package analysis

// Wire field names stay in Portuguese: the document schema predates this
// service and stored records must keep reading back unchanged.

type Request struct {
	Niche           string   `json:"nicho" validate:"required,niche"`
	Product         string   `json:"produto"`
	Description     string   `json:"descricao"`
	Price           *float64 `json:"preco" validate:"omitempty,gte=0"`
	Audience        string   `json:"publico"`
	Competitors     string   `json:"concorrentes"`
	CompetitorNames []string `json:"concorrentes_lista,omitempty"`
	AdditionalData  string   `json:"dados_adicionais"`
	RevenueGoal     *float64 `json:"objetivo_receita" validate:"omitempty,gte=0"`
	LaunchTimeline  string   `json:"prazo_lancamento"`
	MarketingBudget *float64 `json:"orcamento_marketing" validate:"omitempty,gte=0"`
}

type KeywordDifficulty string

const (
	DifficultyLow    KeywordDifficulty = "Baixa"
	DifficultyMedium KeywordDifficulty = "Média"
	DifficultyHigh   KeywordDifficulty = "Alta"
)

type KeywordRecord struct {
	Volume     int               `json:"volume"`
	Difficulty KeywordDifficulty `json:"difficulty"`
	CPC        float64           `json:"cpc"`
	Trend      string            `json:"trend"`
}

type CompetitorProfile struct {
	Name                       string `json:"nome"`
	ProductOrService           string `json:"produto_servico"`
	EstimatedPrice             string `json:"preco_estimado"`
	Strengths                  string `json:"forcas"`
	Weaknesses                 string `json:"fraquezas"`
	EstimatedMarketShare       string `json:"market_share_estimado"`
	MarketingStrategy          string `json:"estrategia_marketing"`
	DifferentiationOpportunity string `json:"oportunidade_diferenciacao"`
}

type Avatar struct {
	Name              string   `json:"nome"`
	Age               string   `json:"idade"`
	Profession        string   `json:"profissao"`
	Income            string   `json:"renda"`
	Location          string   `json:"localizacao"`
	MaritalStatus     string   `json:"estado_civil"`
	Context           string   `json:"contexto"`
	CriticalBarrier   string   `json:"barreira_critica"`
	DesiredState      string   `json:"estado_desejado"`
	Frustrations      []string `json:"frustracoes"`
	LimitingBelief    string   `json:"crenca_limitante"`
	DreamsAspirations []string `json:"sonhos_aspiracoes"`
	OnlinePresence    []string `json:"onde_online"`
}

type PositioningAngle struct {
	Type    string `json:"tipo"`
	Message string `json:"mensagem"`
}

type Positioning struct {
	Statement        string             `json:"declaracao"`
	Angles           []PositioningAngle `json:"angulos"`
	ValueProposition string             `json:"proposta_valor_irrefutavel"`
}

type Competition struct {
	Competitors  []CompetitorProfile `json:"concorrentes"`
	MarketGaps   []string            `json:"lacunas_mercado"`
	Benchmarking []string            `json:"benchmarking_melhores_praticas,omitempty"`
}

type SalesPageSection struct {
	Title   string `json:"titulo"`
	Summary string `json:"resumo_conteudo"`
}

type AdScript struct {
	Angle  string `json:"angulo"`
	Script string `json:"roteiro"`
}

type Marketing struct {
	LandingPageHeadlines []string           `json:"landing_page_headlines"`
	SalesPageStructure   []SalesPageSection `json:"pagina_vendas_estrutura,omitempty"`
	EmailSubjects        []string           `json:"emails_assuntos"`
	AdScripts            []AdScript         `json:"anuncios_roteiros"`
}

type ChannelSpend struct {
	Channel    string `json:"canal"`
	Percentage string `json:"percentual"`
	Amount     string `json:"valor"`
}

type Metrics struct {
	LeadsNeeded         int            `json:"leads_necessarios"`
	RealisticConversion string         `json:"taxa_conversao_realista"`
	Revenue3Months      string         `json:"projecao_faturamento_3_meses"`
	Revenue6Months      string         `json:"projecao_faturamento_6_meses"`
	Revenue12Months     string         `json:"projecao_faturamento_12_meses"`
	OptimisticROI       string         `json:"roi_otimista,omitempty"`
	RealisticROI        string         `json:"roi_realista"`
	EstimatedCPL        string         `json:"cpl_estimado,omitempty"`
	EstimatedCPA        string         `json:"cpa_estimado,omitempty"`
	SpendDistribution   []ChannelSpend `json:"distribuicao_investimento,omitempty"`
}

type FunnelPhase struct {
	Name             string   `json:"nome"`
	Objective        string   `json:"objetivo"`
	MarketingActions string   `json:"acoes_marketing"`
	TrackingMetrics  []string `json:"metricas_acompanhamento"`
}

type Funnel struct {
	Phases            []FunnelPhase `json:"fases"`
	ExecutionSchedule string        `json:"cronograma_execucao"`
	CriticalMetrics   []string      `json:"metricas_criticas"`
}

type SearchTrends struct {
	OverallTrend     string   `json:"tendencia_geral"`
	SeasonalPeaks    []string `json:"picos_sazonais"`
	SeasonalDeclines []string `json:"declinio_sazonal"`
	EmergingKeywords []string `json:"palavras_emergentes"`
}

type MarketSize struct {
	TAM string `json:"tam"`
	SAM string `json:"sam"`
	SOM string `json:"som"`
}

type SeasonalPatterns struct {
	BestLaunchWindow  string   `json:"melhor_periodo_lancamento"`
	WorstLaunchWindow string   `json:"pior_periodo_lancamento"`
	SeasonalFactors   []string `json:"fatores_sazonais"`
}

type MarketIntelligence struct {
	KeywordAnalysis     map[string]KeywordRecord `json:"keyword_analysis,omitempty"`
	SearchTrends        *SearchTrends            `json:"search_trends,omitempty"`
	MarketSizeEstimate  *MarketSize              `json:"market_size_estimation,omitempty"`
	SeasonalPatterns    *SeasonalPatterns        `json:"seasonal_patterns,omitempty"`
	GrowthOpportunities []string                 `json:"growth_opportunities,omitempty"`
}

type ActionPhase struct {
	Duration string   `json:"duracao"`
	Tasks    []string `json:"tarefas"`
}

type ActionPlan struct {
	Preparation ActionPhase `json:"fase_preparacao"`
	PreLaunch   ActionPhase `json:"fase_pre_lancamento"`
	Launch      ActionPhase `json:"fase_lancamento"`
	KPIs        []string    `json:"kpis_monitoramento"`
}

type Risk struct {
	Risk        string `json:"risco"`
	Probability string `json:"probabilidade"`
	Impact      string `json:"impacto"`
	Mitigation  string `json:"mitigacao"`
}

type ContingencyPlan struct {
	PessimisticScenario string   `json:"cenario_pessimista"`
	OptimisticScenario  string   `json:"cenario_otimista"`
	AlertIndicators     []string `json:"indicadores_alerta"`
}

type RiskAnalysis struct {
	IdentifiedRisks []Risk          `json:"riscos_identificados"`
	Contingency     ContingencyPlan `json:"plano_contingencia"`
}

// Document is the consolidated analysis. All nine sections are value fields
// so every top-level key is always present on the wire; consumers never need
// to branch on key absence.
type Document struct {
	Avatar             Avatar             `json:"avatar"`
	Positioning        Positioning        `json:"positioning"`
	Competition        Competition        `json:"competition"`
	Marketing          Marketing          `json:"marketing"`
	Metrics            Metrics            `json:"metrics"`
	Funnel             Funnel             `json:"funnel"`
	MarketIntelligence MarketIntelligence `json:"market_intelligence"`
	ActionPlan         ActionPlan         `json:"action_plan"`
	RiskAnalysis       RiskAnalysis       `json:"risk_analysis"`
	Degraded           bool               `json:"degraded"`
}
