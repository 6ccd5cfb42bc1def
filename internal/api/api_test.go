package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openpatrimoine/socle/internal/advisory"
	"github.com/openpatrimoine/socle/internal/cache"
	"github.com/openpatrimoine/socle/internal/catalog"
	"github.com/openpatrimoine/socle/internal/check"
	"github.com/openpatrimoine/socle/internal/domain"
	"github.com/openpatrimoine/socle/internal/profile"
	"github.com/openpatrimoine/socle/internal/rules"
)

// createTestServer creates a server with engine and processor for testing.
func createTestServer() *Server {
	cfg := domain.ServerConfig{
		Host:         "localhost",
		Port:         8080,
		ReadTimeout:  30,
		WriteTimeout: 30,
	}

	// Create check engine with a test check that only flags very large
	// capitals (>1M) so normal test simulations stay OK.
	engine, _ := check.NewEngine(nil, 5)
	testCheck := &domain.CheckConfig{
		ID:         "test-check-001",
		Name:       "High Capital Test Check",
		Expression: "capital_emprunte > 1000000.0 ? 1.0 : 0.0",
		Weight:     1.0,
		Enabled:    true,
	}
	engine.LoadCheck(testCheck)

	resolver := rules.NewResolver()

	deps := Deps{
		Cache:      cache.NewLRUCache(100),
		Engine:     engine,
		Processor:  advisory.NewProcessor(),
		Profiles:   profile.NewService(catalog.NewStatic(), resolver),
		Resolver:   resolver,
		FiscalYear: 2025,
	}

	return NewServer(cfg, deps, "test-v1")
}

func postJSON(t *testing.T, server *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", "tenant-001")

	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)
	return rr
}

func getPath(server *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-Tenant-ID", "tenant-001")

	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)
	return rr
}

func TestSimulationEndpoint(t *testing.T) {
	server := createTestServer()

	validRequest := SimulationRequest{
		Loans: []domain.Loan{
			{
				LoanParams: domain.LoanParams{Capital: 200000, TauxAssur: 0.3, AssurMode: domain.InsuranceCRD},
				Taux:       3.0,
				DureeMois:  240,
			},
		},
	}

	t.Run("SuccessfulSimulation", func(t *testing.T) {
		rr := postJSON(t, server, "/simulations", validRequest)

		if rr.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
		}

		var resp SimulationResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		if resp.SimID == "" {
			t.Error("expected simId in response")
		}
		if resp.Status != domain.AdvisoryOK {
			t.Errorf("expected status OK, got %s", resp.Status)
		}
		if len(resp.Global) != 240 {
			t.Errorf("expected 240 global periods, got %d", len(resp.Global))
		}
		if resp.Summary.NbPrets != 1 {
			t.Errorf("expected 1 loan in summary, got %d", resp.Summary.NbPrets)
		}
		if resp.Summary.CapitalEmprunte != 200000 {
			t.Errorf("expected capital 200000, got %.2f", resp.Summary.CapitalEmprunte)
		}
		if len(resp.CheckResults) != 1 {
			t.Errorf("expected 1 check result, got %d", len(resp.CheckResults))
		}
		if resp.Metadata.Version != "test-v1" {
			t.Errorf("expected version test-v1, got %s", resp.Metadata.Version)
		}
		if resp.Metadata.TraceID == "" {
			t.Error("expected traceId in metadata")
		}
	})

	t.Run("MissingTenantID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/simulations", bytes.NewBufferString("{}"))
		req.Header.Set("Content-Type", "application/json")
		// No X-Tenant-ID header

		rr := httptest.NewRecorder()
		server.Router().ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rr.Code)
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/simulations", bytes.NewBufferString("not-json"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Tenant-ID", "tenant-001")

		rr := httptest.NewRecorder()
		server.Router().ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rr.Code)
		}
	})

	t.Run("NoLoans", func(t *testing.T) {
		rr := postJSON(t, server, "/simulations", SimulationRequest{})
		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rr.Code)
		}
	})

	t.Run("InvalidCapital", func(t *testing.T) {
		rr := postJSON(t, server, "/simulations", SimulationRequest{
			Loans: []domain.Loan{{
				LoanParams: domain.LoanParams{Capital: -100},
				DureeMois:  120,
			}},
		})
		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rr.Code)
		}
	})

	t.Run("InvalidDuration", func(t *testing.T) {
		rr := postJSON(t, server, "/simulations", SimulationRequest{
			Loans: []domain.Loan{{
				LoanParams: domain.LoanParams{Capital: 100000},
				DureeMois:  0,
			}},
		})
		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rr.Code)
		}
	})

	t.Run("AsyncWithoutBus", func(t *testing.T) {
		async := validRequest
		async.Async = true

		rr := postJSON(t, server, "/simulations", async)
		if rr.Code != http.StatusServiceUnavailable {
			t.Errorf("expected status 503, got %d", rr.Code)
		}
	})

	t.Run("GetUnknownSimulation", func(t *testing.T) {
		// No repository wired: retrieval is unavailable.
		rr := getPath(server, "/simulations/nonexistent")
		if rr.Code != http.StatusServiceUnavailable {
			t.Errorf("expected status 503, got %d", rr.Code)
		}
	})

	t.Run("ResponseHeaders", func(t *testing.T) {
		rr := postJSON(t, server, "/simulations", validRequest)

		if rr.Header().Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header in response")
		}
		if rr.Header().Get("X-Trace-ID") == "" {
			t.Error("expected X-Trace-ID header in response")
		}
		if rr.Header().Get("Content-Type") != "application/json" {
			t.Error("expected Content-Type: application/json")
		}
	})
}

func TestProfileEndpoint(t *testing.T) {
	server := createTestServer()

	t.Run("AssuranceVie", func(t *testing.T) {
		rr := getPath(server, "/profiles/AV?audience=pp")

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
		}

		var prof domain.FiscalProfile
		if err := json.Unmarshal(rr.Body.Bytes(), &prof); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		if prof.CatalogID != "assurance_vie" {
			t.Errorf("expected catalogId 'assurance_vie', got '%s'", prof.CatalogID)
		}
		if !prof.HasRules {
			t.Error("expected hasRules true for AV/pp")
		}
	})

	t.Run("PERBancaire", func(t *testing.T) {
		rr := getPath(server, "/profiles/PER?audience=pm&per=bancaire")

		var prof domain.FiscalProfile
		json.Unmarshal(rr.Body.Bytes(), &prof)

		if prof.CatalogID != "perin_bancaire" {
			t.Errorf("expected catalogId 'perin_bancaire', got '%s'", prof.CatalogID)
		}
	})

	t.Run("UnsupportedCombination", func(t *testing.T) {
		// PEA has no legal-entity form: resolution degrades, never 404s.
		rr := getPath(server, "/profiles/PEA?audience=pm")

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}

		var prof domain.FiscalProfile
		json.Unmarshal(rr.Body.Bytes(), &prof)

		if prof.CatalogID != "PEA" {
			t.Errorf("expected degraded catalogId 'PEA', got '%s'", prof.CatalogID)
		}
		if prof.HasRules {
			t.Error("expected hasRules false for unsupported combination")
		}
	})

	t.Run("UnknownEnvelope", func(t *testing.T) {
		rr := getPath(server, "/profiles/XX")

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}

		var prof domain.FiscalProfile
		json.Unmarshal(rr.Body.Bytes(), &prof)

		if prof.CatalogID != "XX" {
			t.Errorf("expected degraded catalogId 'XX', got '%s'", prof.CatalogID)
		}
		if prof.HasRules {
			t.Error("expected hasRules false for unknown envelope")
		}
	})

	t.Run("InvalidAudience", func(t *testing.T) {
		rr := getPath(server, "/profiles/AV?audience=corp")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rr.Code)
		}
	})

	t.Run("MemoizedResolution", func(t *testing.T) {
		first := getPath(server, "/profiles/CTO?audience=pm")
		second := getPath(server, "/profiles/CTO?audience=pm")

		if first.Code != http.StatusOK || second.Code != http.StatusOK {
			t.Fatalf("expected status 200 on both calls, got %d and %d", first.Code, second.Code)
		}
		if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
			t.Error("expected identical responses from the memoized resolution")
		}
	})
}

func TestProductRulesEndpoint(t *testing.T) {
	server := createTestServer()

	t.Run("KnownProduct", func(t *testing.T) {
		rr := getPath(server, "/products/assurance_vie/rules?audience=pp")

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}

		var resp ProductRulesResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		if !resp.HasSocle {
			t.Error("expected hasSocle true for assurance_vie")
		}
		if len(resp.Rules.Constitution) == 0 {
			t.Error("expected constitution rule blocks")
		}
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		rr := getPath(server, "/products/produit_inconnu/rules")

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}

		var resp ProductRulesResponse
		json.Unmarshal(rr.Body.Bytes(), &resp)

		if resp.HasSocle {
			t.Error("expected hasSocle false for unknown product")
		}
		// The placeholder still carries displayable content.
		if len(resp.Rules.Constitution) == 0 {
			t.Error("expected placeholder rule blocks for unknown product")
		}
	})
}

func TestImpotEndpoint(t *testing.T) {
	server := createTestServer()

	t.Run("CoupleWithChildren", func(t *testing.T) {
		rr := postJSON(t, server, "/impot/adjustments", ImpotAdjustmentsRequest{
			Household: domain.Household{
				Status: domain.StatusCouple,
				Children: []domain.Child{
					{Mode: domain.ChildCharge},
					{Mode: domain.ChildShared},
					{Mode: domain.ChildNone},
				},
			},
			SalaryD1:   30000,
			RealModeD1: domain.RealAbat10,
			RealModeD2: domain.RealAbat10,
		})

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
		}

		var resp ImpotAdjustmentsResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		if resp.PersonsACharge != 2 {
			t.Errorf("expected 2 persons a charge, got %d", resp.PersonsACharge)
		}
		if resp.Parts.Effective != 3.0 {
			t.Errorf("expected 3.0 effective parts, got %.2f", resp.Parts.Effective)
		}
		if resp.Abat10D1 != 3000 {
			t.Errorf("expected abat10D1 3000, got %.2f", resp.Abat10D1)
		}
		// D2 has no salary: its 10% deduction is zero.
		if resp.ExtraDeductions != 3000 {
			t.Errorf("expected extraDeductions 3000, got %.2f", resp.ExtraDeductions)
		}
		if resp.Year != 2025 {
			t.Errorf("expected default year 2025, got %d", resp.Year)
		}
	})

	t.Run("SingleWithRealExpenses", func(t *testing.T) {
		rr := postJSON(t, server, "/impot/adjustments", ImpotAdjustmentsRequest{
			Household:      domain.Household{Status: domain.StatusSingle},
			SalaryD1:       40000,
			RealModeD1:     domain.RealReels,
			RealExpensesD1: 5200,
			// D2 is ignored for a single household.
			RealModeD2:     domain.RealReels,
			RealExpensesD2: 9999,
		})

		var resp ImpotAdjustmentsResponse
		json.Unmarshal(rr.Body.Bytes(), &resp)

		if resp.ExtraDeductions != 5200 {
			t.Errorf("expected extraDeductions 5200, got %.2f", resp.ExtraDeductions)
		}
		if resp.Parts.Effective != 1.0 {
			t.Errorf("expected 1.0 effective parts, got %.2f", resp.Parts.Effective)
		}
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		rr := postJSON(t, server, "/impot/adjustments", ImpotAdjustmentsRequest{
			Household: domain.Household{Status: "widowed"},
		})
		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rr.Code)
		}
	})
}

func TestCheckEndpoints(t *testing.T) {
	server := createTestServer()

	t.Run("ListChecks", func(t *testing.T) {
		rr := getPath(server, "/checks")

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}

		var resp map[string]interface{}
		json.Unmarshal(rr.Body.Bytes(), &resp)

		if resp["count"].(float64) != 1 {
			t.Errorf("expected 1 loaded check, got %v", resp["count"])
		}
	})

	t.Run("GetCheck", func(t *testing.T) {
		rr := getPath(server, "/checks/test-check-001")
		if rr.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rr.Code)
		}

		rr = getPath(server, "/checks/nonexistent")
		if rr.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rr.Code)
		}
	})

	t.Run("CreateCheck", func(t *testing.T) {
		rr := postJSON(t, server, "/checks", CreateCheckRequest{
			ID:         "duree-check",
			Name:       "Duree Check",
			Expression: "duree_mois > 300 ? 1.0 : 0.0",
			Weight:     0.5,
			Enabled:    true,
		})

		if rr.Code != http.StatusCreated {
			t.Errorf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("CreateCheckInvalidExpression", func(t *testing.T) {
		rr := postJSON(t, server, "/checks", CreateCheckRequest{
			ID:         "bad-check",
			Name:       "Bad Check",
			Expression: "this is not CEL",
			Enabled:    true,
		})

		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rr.Code)
		}
	})

	t.Run("CreateCheckMissingFields", func(t *testing.T) {
		rr := postJSON(t, server, "/checks", CreateCheckRequest{ID: "x"})
		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rr.Code)
		}
	})

	t.Run("ReloadWithoutRepository", func(t *testing.T) {
		rr := postJSON(t, server, "/checks/reload", map[string]string{})
		if rr.Code != http.StatusServiceUnavailable {
			t.Errorf("expected status 503, got %d", rr.Code)
		}
	})
}

func TestSettingsEndpoints(t *testing.T) {
	server := createTestServer()

	// No settings service wired in the test server.
	t.Run("GetUnavailable", func(t *testing.T) {
		rr := getPath(server, "/settings/2025")
		if rr.Code != http.StatusServiceUnavailable {
			t.Errorf("expected status 503, got %d", rr.Code)
		}
	})

	t.Run("InvalidYear", func(t *testing.T) {
		rr := getPath(server, "/settings/abc")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rr.Code)
		}
	})
}

func TestHealthEndpoint(t *testing.T) {
	server := createTestServer()

	t.Run("HealthCheck", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)

		rr := httptest.NewRecorder()
		server.Router().ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rr.Code)
		}

		var resp map[string]string
		json.Unmarshal(rr.Body.Bytes(), &resp)

		if resp["status"] != "healthy" {
			t.Errorf("expected status 'healthy', got '%s'", resp["status"])
		}
		if resp["version"] != "test-v1" {
			t.Errorf("expected version 'test-v1', got '%s'", resp["version"])
		}
	})

	t.Run("ReadyCheck", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ready", nil)

		rr := httptest.NewRecorder()
		server.Router().ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rr.Code)
		}
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("TenantMiddlewareExtractsID", func(t *testing.T) {
		var capturedTenantID string

		handler := TenantMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			capturedTenantID = GetTenantID(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Tenant-ID", "my-tenant-123")

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if capturedTenantID != "my-tenant-123" {
			t.Errorf("expected tenant ID 'my-tenant-123', got '%s'", capturedTenantID)
		}
	})

	t.Run("TracingMiddlewareSetsRequestID", func(t *testing.T) {
		var capturedRequestID string

		handler := TracingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if v, ok := r.Context().Value(RequestIDKey).(string); ok {
				capturedRequestID = v
			}
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if capturedRequestID == "" {
			t.Error("expected request ID to be set")
		}

		if rr.Header().Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID response header")
		}
	})

	t.Run("RecoverMiddlewareHandlesPanic", func(t *testing.T) {
		handler := RecoverMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("test panic")
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()

		// Should not panic
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", rr.Code)
		}
	})
}
