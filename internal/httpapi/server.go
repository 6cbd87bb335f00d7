package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mercadoscope/mercadoscope/internal/analysis"
	"github.com/mercadoscope/mercadoscope/internal/report"
	"github.com/mercadoscope/mercadoscope/internal/store"
)

// Runner produces the consolidated document for a request. It never fails;
// degraded results come back as documents, not errors.
type Runner interface {
	Run(ctx context.Context, req analysis.Request) analysis.Document
}

// Store is the persistence surface the API needs.
type Store interface {
	Create(ctx context.Context, req analysis.Request) (int64, error)
	Complete(ctx context.Context, id int64, doc analysis.Document) error
	Fail(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (store.Record, error)
	List(ctx context.Context, filter store.ListFilter) ([]store.Summary, error)
	Niches(ctx context.Context) ([]string, error)
	Performance(ctx context.Context, since time.Time, topN int) (int, []store.NicheCount, error)
}

type Server struct {
	store     Store
	runner    Runner
	estimator *analysis.KeywordEstimator
	analyzer  *analysis.CompetitorAnalyzer
	renderer  report.PDFRenderer
	validate  *validator.Validate
}

func NewServer(st Store, runner Runner, estimator *analysis.KeywordEstimator, analyzer *analysis.CompetitorAnalyzer, renderer report.PDFRenderer) http.Handler {
	s := &Server{
		store:     st,
		runner:    runner,
		estimator: estimator,
		analyzer:  analyzer,
		renderer:  renderer,
		validate:  newValidator(),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/analyses", s.handleAnalyses)
	mux.HandleFunc("/v1/analyses/keywords", s.handleKeywords)
	mux.HandleFunc("/v1/analyses/competitor", s.handleCompetitor)
	mux.HandleFunc("/v1/analyses/timing", s.handleTiming)
	mux.HandleFunc("/v1/analyses/", s.handleAnalysisByID)
	mux.HandleFunc("/v1/niches", s.handleNiches)
	mux.HandleFunc("/v1/analytics/performance", s.handlePerformance)
	mux.HandleFunc("/v1/health", s.handleHealth)
	return mux
}

// newValidator registers the "niche" rule: at least three characters after
// trimming, with no markup metacharacters. Field names in error payloads
// follow the wire names, not the Go names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("niche", func(fl validator.FieldLevel) bool {
		value := strings.TrimSpace(fl.Field().String())
		if len([]rune(value)) < 3 {
			return false
		}
		return !strings.ContainsAny(value, "<>{}[]")
	})
	return v
}

type fieldError struct {
	Field string `json:"campo"`
	Rule  string `json:"regra"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"ok": false, "error": msg})
}

func (s *Server) writeValidationError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"ok":     false,
			"error":  "requisição inválida",
			"campos": fields,
		})
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("corpo da requisição vazio")
	}
	blob, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(blob) == 0 {
		return errors.New("corpo da requisição vazio")
	}
	return json.Unmarshal(blob, dst)
}

func methodOnly(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func parseInt(value string, def int) int {
	if strings.TrimSpace(value) == "" {
		return def
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return v
}

// analysisResponse inlines the document next to a top-level analysis_id.
type analysisResponse struct {
	AnalysisID int64 `json:"analysis_id,omitempty"`
	analysis.Document
}

func (s *Server) handleAnalyses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleAnalyze(w, r)
	case http.MethodGet:
		s.handleList(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analysis.Request
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "json inválido: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeValidationError(w, err)
		return
	}

	// Persistence is best-effort: a storage outage must never block the
	// analysis itself.
	id, err := s.store.Create(r.Context(), req)
	if err != nil {
		log.Printf("create analysis record: %v", err)
		id = 0
	}

	doc := s.runner.Run(r.Context(), req)

	if id > 0 {
		if err := s.store.Complete(r.Context(), id, doc); err != nil {
			log.Printf("complete analysis %d: %v", id, err)
			if ferr := s.store.Fail(r.Context(), id); ferr != nil {
				log.Printf("fail analysis %d: %v", id, ferr)
			}
		}
	}
	writeJSON(w, http.StatusOK, analysisResponse{AnalysisID: id, Document: doc})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ListFilter{
		Niche: strings.TrimSpace(q.Get("nicho")),
		Limit: parseInt(q.Get("limit"), 0),
	}
	if days := parseInt(q.Get("dias"), 0); days > 0 {
		filter.Since = time.Now().AddDate(0, 0, -days)
	}
	summaries, err := s.store.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"analyses": summaries, "total": len(summaries)})
}

func (s *Server) handleAnalysisByID(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/v1/analyses/")
	wantPDF := strings.HasSuffix(path, "/report.pdf")
	if wantPDF {
		path = strings.TrimSuffix(path, "/report.pdf")
	}
	id, err := strconv.ParseInt(strings.TrimSuffix(path, "/"), 10, 64)
	if err != nil || id <= 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "análise não encontrada")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if wantPDF {
		s.servePDF(w, r, rec)
		return
	}
	payload := map[string]any{
		"id":         rec.ID,
		"nicho":      rec.Request.Niche,
		"produto":    rec.Request.Product,
		"status":     rec.Status,
		"degraded":   rec.Degraded,
		"created_at": rec.CreatedAt,
		"updated_at": rec.UpdatedAt,
	}
	if rec.Document != nil {
		payload["document"] = rec.Document
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) servePDF(w http.ResponseWriter, r *http.Request, rec store.Record) {
	if rec.Status != store.StatusCompleted || rec.Document == nil {
		writeError(w, http.StatusConflict, "análise ainda não concluída")
		return
	}
	if s.renderer == nil {
		writeError(w, http.StatusServiceUnavailable, "renderização de PDF indisponível")
		return
	}
	md := report.BuildMarkdown(report.Meta{ID: rec.ID, CreatedAt: rec.CreatedAt}, rec.Request, *rec.Document)
	pdf, err := s.renderer.Render(r.Context(), md)
	if err != nil {
		log.Printf("render pdf for analysis %d: %v", rec.ID, err)
		writeError(w, http.StatusInternalServerError, "falha ao gerar PDF")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=analise-%d.pdf", rec.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

type keywordsRequest struct {
	Niche    string   `json:"nicho"`
	Keywords []string `json:"palavras_chave"`
}

func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	var req keywordsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "json inválido: "+err.Error())
		return
	}
	req.Niche = strings.TrimSpace(req.Niche)
	if req.Niche == "" && len(req.Keywords) == 0 {
		writeError(w, http.StatusBadRequest, "informe nicho ou palavras_chave")
		return
	}

	var records map[string]analysis.KeywordRecord
	if len(req.Keywords) > 0 {
		records = s.estimator.Estimate(req.Keywords)
	} else {
		records = s.estimator.EstimateNiche(req.Niche, "BR")
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"nicho":          req.Niche,
		"palavras_chave": records,
		"oportunidades":  analysis.IdentifyKeywordOpportunities(records),
		"recomendacoes":  analysis.KeywordRecommendations(),
	})
}

type competitorRequest struct {
	Name  string `json:"nome" validate:"required"`
	Niche string `json:"nicho" validate:"required,niche"`
}

func (s *Server) handleCompetitor(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	var req competitorRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "json inválido: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeValidationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.analyzer.DeepDive(req.Name, req.Niche))
}

type timingRequest struct {
	Niche       string `json:"nicho" validate:"required,niche"`
	ProductType string `json:"tipo_produto"`
}

func (s *Server) handleTiming(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	var req timingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "json inválido: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeValidationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis.AnalyzeLaunchTiming(req.Niche, req.ProductType))
}

func (s *Server) handleNiches(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	niches, err := s.store.Niches(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"niches": niches, "total": len(niches)})
}

var performanceTrends = []string{
	"Nichos de educação e finanças lideram o volume de análises",
	"Tickets entre R$ 497 e R$ 1.997 concentram a maior demanda",
	"Crescimento de produtos com componente de inteligência artificial",
}

var performanceSuccessMetrics = map[string]string{
	"taxa_conclusao":    "análises concluídas sobre análises iniciadas",
	"tempo_medio":       "tempo entre criação e conclusão do registro",
	"indice_degradacao": "proporção de documentos gerados em modo degradado",
}

func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	days := parseInt(r.URL.Query().Get("dias"), 30)
	if days <= 0 {
		days = 30
	}
	total, top, err := s.store.Performance(r.Context(), time.Now().AddDate(0, 0, -days), 5)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"periodo_dias":     days,
		"total_analises":   total,
		"nichos_top":       top,
		"tendencias":       performanceTrends,
		"metricas_sucesso": performanceSuccessMetrics,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "status": "healthy", "service": "mercadoscope"})
}
