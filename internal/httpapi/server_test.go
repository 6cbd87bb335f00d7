package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mercadoscope/mercadoscope/internal/analysis"
	"github.com/mercadoscope/mercadoscope/internal/store"
)

type mockStore struct {
	nextID    int64
	records   map[int64]store.Record
	createErr error
	failCalls int
}

func newMockStore() *mockStore {
	return &mockStore{records: map[int64]store.Record{}}
}

func (m *mockStore) Create(_ context.Context, req analysis.Request) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.nextID++
	m.records[m.nextID] = store.Record{
		ID:        m.nextID,
		Request:   req,
		Status:    store.StatusProcessing,
		CreatedAt: time.Now(),
	}
	return m.nextID, nil
}

func (m *mockStore) Complete(_ context.Context, id int64, doc analysis.Document) error {
	rec, ok := m.records[id]
	if !ok {
		return store.ErrNotFound
	}
	rec.Document = &doc
	rec.Degraded = doc.Degraded
	rec.Status = store.StatusCompleted
	m.records[id] = rec
	return nil
}

func (m *mockStore) Fail(_ context.Context, id int64) error {
	m.failCalls++
	rec, ok := m.records[id]
	if !ok {
		return store.ErrNotFound
	}
	rec.Status = store.StatusFailed
	m.records[id] = rec
	return nil
}

func (m *mockStore) Get(_ context.Context, id int64) (store.Record, error) {
	rec, ok := m.records[id]
	if !ok {
		return store.Record{}, store.ErrNotFound
	}
	return rec, nil
}

func (m *mockStore) List(_ context.Context, filter store.ListFilter) ([]store.Summary, error) {
	out := []store.Summary{}
	for _, rec := range m.records {
		if filter.Niche != "" && rec.Request.Niche != filter.Niche {
			continue
		}
		out = append(out, store.Summary{ID: rec.ID, Niche: rec.Request.Niche, Status: rec.Status})
	}
	return out, nil
}

func (m *mockStore) Niches(context.Context) ([]string, error) {
	return []string{"marketing digital", "yoga"}, nil
}

func (m *mockStore) Performance(context.Context, time.Time, int) (int, []store.NicheCount, error) {
	return 3, []store.NicheCount{{Niche: "yoga", Count: 2}}, nil
}

type stubRunner struct {
	doc analysis.Document
}

func (r stubRunner) Run(context.Context, analysis.Request) analysis.Document { return r.doc }

type stubRenderer struct {
	err error
}

func (r stubRenderer) Render(context.Context, string) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.4 stub"), nil
}

func newTestServer(ms *mockStore, doc analysis.Document) http.Handler {
	return NewServer(ms, stubRunner{doc: doc}, analysis.NewKeywordEstimator(nil), analysis.NewCompetitorAnalyzer(), stubRenderer{})
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	payload := map[string]json.RawMessage{}
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(rr.Body.Bytes(), &payload)
	}
	return rr, payload
}

func TestAnalyzeEndToEnd(t *testing.T) {
	ms := newMockStore()
	doc := analysis.SyntheticDocument(analysis.Request{Niche: "yoga"})
	h := newTestServer(ms, doc)

	rr, payload := doJSON(t, h, http.MethodPost, "/v1/analyses", `{"nicho": "yoga"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	for _, key := range []string{"analysis_id", "avatar", "positioning", "competition", "marketing", "metrics", "funnel", "market_intelligence", "action_plan", "risk_analysis", "degraded"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("response missing %q", key)
		}
	}
	var id int64
	_ = json.Unmarshal(payload["analysis_id"], &id)
	if id != 1 {
		t.Fatalf("analysis_id: got %d", id)
	}
	if ms.records[1].Status != store.StatusCompleted {
		t.Fatalf("record lifecycle: got %s", ms.records[1].Status)
	}
}

func TestAnalyzeValidation(t *testing.T) {
	h := newTestServer(newMockStore(), analysis.Document{})
	cases := []string{
		`{}`,
		`{"nicho": "ab"}`,
		`{"nicho": "  a  "}`,
		`{"nicho": "<script>alert(1)</script>"}`,
		`{"nicho": "yoga", "preco": -10}`,
	}
	for _, body := range cases {
		rr, payload := doJSON(t, h, http.MethodPost, "/v1/analyses", body)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rr.Code)
		}
		if _, ok := payload["campos"]; !ok {
			t.Fatalf("body %s: expected field errors, got %s", body, rr.Body.String())
		}
	}
}

func TestAnalyzeValidationFieldNames(t *testing.T) {
	h := newTestServer(newMockStore(), analysis.Document{})
	rr, _ := doJSON(t, h, http.MethodPost, "/v1/analyses", `{}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"campo":"nicho"`) {
		t.Fatalf("field errors must use wire names: %s", rr.Body.String())
	}
}

func TestAnalyzeSurvivesStorageOutage(t *testing.T) {
	ms := newMockStore()
	ms.createErr = errors.New("disk full")
	doc := analysis.SyntheticDocument(analysis.Request{Niche: "yoga"})
	h := newTestServer(ms, doc)

	rr, payload := doJSON(t, h, http.MethodPost, "/v1/analyses", `{"nicho": "yoga"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("storage outage must not fail the analysis: %d", rr.Code)
	}
	if _, ok := payload["analysis_id"]; ok {
		t.Fatal("analysis_id must be omitted when persistence failed")
	}
	if _, ok := payload["metrics"]; !ok {
		t.Fatal("document must still be returned")
	}
}

func TestGetAnalysisByID(t *testing.T) {
	ms := newMockStore()
	doc := analysis.SyntheticDocument(analysis.Request{Niche: "yoga"})
	h := newTestServer(ms, doc)
	doJSON(t, h, http.MethodPost, "/v1/analyses", `{"nicho": "yoga"}`)

	rr, payload := doJSON(t, h, http.MethodGet, "/v1/analyses/1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if _, ok := payload["document"]; !ok {
		t.Fatal("completed record must include the document")
	}

	rr, _ = doJSON(t, h, http.MethodGet, "/v1/analyses/99", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	rr, _ = doJSON(t, h, http.MethodGet, "/v1/analyses/abc", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-numeric id, got %d", rr.Code)
	}
}

func TestListAnalyses(t *testing.T) {
	ms := newMockStore()
	doc := analysis.SyntheticDocument(analysis.Request{Niche: "yoga"})
	h := newTestServer(ms, doc)
	doJSON(t, h, http.MethodPost, "/v1/analyses", `{"nicho": "yoga"}`)
	doJSON(t, h, http.MethodPost, "/v1/analyses", `{"nicho": "pilates"}`)

	rr, payload := doJSON(t, h, http.MethodGet, "/v1/analyses?nicho=yoga", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var total int
	_ = json.Unmarshal(payload["total"], &total)
	if total != 1 {
		t.Fatalf("expected 1 filtered row, got %d", total)
	}
}

func TestKeywordsEndpoint(t *testing.T) {
	h := newTestServer(newMockStore(), analysis.Document{})

	rr, payload := doJSON(t, h, http.MethodPost, "/v1/analyses/keywords", `{"nicho": "yoga"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var records map[string]analysis.KeywordRecord
	_ = json.Unmarshal(payload["palavras_chave"], &records)
	if len(records) != 8 {
		t.Fatalf("expected 8 derived keywords, got %d", len(records))
	}
	if _, ok := payload["oportunidades"]; !ok {
		t.Fatal("missing oportunidades")
	}
	if _, ok := payload["recomendacoes"]; !ok {
		t.Fatal("missing recomendacoes")
	}

	rr, _ = doJSON(t, h, http.MethodPost, "/v1/analyses/keywords", `{"palavras_chave": ["a", "b"]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("explicit keyword list: status %d", rr.Code)
	}
	rr, _ = doJSON(t, h, http.MethodPost, "/v1/analyses/keywords", `{}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("empty request: expected 400, got %d", rr.Code)
	}
}

func TestCompetitorEndpoint(t *testing.T) {
	h := newTestServer(newMockStore(), analysis.Document{})

	rr, payload := doJSON(t, h, http.MethodPost, "/v1/analyses/competitor", `{"nome": "Alpha", "nicho": "fitness"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	if _, ok := payload["perfil"]; !ok {
		t.Fatal("missing perfil")
	}
	if _, ok := payload["analise_precos"]; !ok {
		t.Fatal("missing analise_precos")
	}

	rr, _ = doJSON(t, h, http.MethodPost, "/v1/analyses/competitor", `{"nicho": "fitness"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing nome: expected 400, got %d", rr.Code)
	}
}

func TestTimingEndpoint(t *testing.T) {
	h := newTestServer(newMockStore(), analysis.Document{})
	rr, payload := doJSON(t, h, http.MethodPost, "/v1/analyses/timing", `{"nicho": "fitness", "tipo_produto": "curso"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var best string
	_ = json.Unmarshal(payload["melhor_mes_lancamento"], &best)
	if best != "Janeiro" {
		t.Fatalf("best month: got %q", best)
	}
}

func TestNichesAndPerformanceEndpoints(t *testing.T) {
	h := newTestServer(newMockStore(), analysis.Document{})

	rr, payload := doJSON(t, h, http.MethodGet, "/v1/niches", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("niches status %d", rr.Code)
	}
	var niches []string
	_ = json.Unmarshal(payload["niches"], &niches)
	if len(niches) != 2 {
		t.Fatalf("expected 2 niches, got %v", niches)
	}

	rr, payload = doJSON(t, h, http.MethodGet, "/v1/analytics/performance", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("performance status %d", rr.Code)
	}
	var total int
	_ = json.Unmarshal(payload["total_analises"], &total)
	if total != 3 {
		t.Fatalf("total: got %d", total)
	}
	if _, ok := payload["nichos_top"]; !ok {
		t.Fatal("missing nichos_top")
	}
}

func TestReportPDF(t *testing.T) {
	ms := newMockStore()
	doc := analysis.SyntheticDocument(analysis.Request{Niche: "yoga"})
	h := newTestServer(ms, doc)
	doJSON(t, h, http.MethodPost, "/v1/analyses", `{"nicho": "yoga"}`)

	rr, _ := doJSON(t, h, http.MethodGet, "/v1/analyses/1/report.pdf", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type: %q", ct)
	}

	// A processing record has no document to render yet.
	ms.nextID++
	ms.records[ms.nextID] = store.Record{ID: ms.nextID, Status: store.StatusProcessing}
	rr, _ = doJSON(t, h, http.MethodGet, "/v1/analyses/2/report.pdf", "")
	if rr.Code != http.StatusConflict {
		t.Fatalf("processing record: expected 409, got %d", rr.Code)
	}
}

func TestHealthAndMethodGuards(t *testing.T) {
	h := newTestServer(newMockStore(), analysis.Document{})

	rr, _ := doJSON(t, h, http.MethodGet, "/v1/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("health status %d", rr.Code)
	}
	rr, _ = doJSON(t, h, http.MethodDelete, "/v1/analyses", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
	rr, _ = doJSON(t, h, http.MethodGet, "/v1/analyses/keywords", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 on GET keywords, got %d", rr.Code)
	}
}
