package dependency

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mealsync/backend/config"
	"github.com/mealsync/backend/internal/integration/email"
	"github.com/mealsync/backend/internal/integration/entrypoint/dto"
	"github.com/mealsync/backend/internal/integration/persistence/model"
)

type testAPI struct {
	t      *testing.T
	engine *gin.Engine
	inj    *Injector
	sender *email.MockEmailSender
	token  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	catalog, err := config.DefaultCatalog()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	cfg := &config.Config{
		Server:  config.ServerConfig{Environment: "test"},
		Redis:   config.RedisConfig{CacheTTL: time.Minute},
		Session: config.SessionConfig{Secret: "test-secret", TokenExpiry: time.Hour},
		Email:   config.EmailConfig{AppBaseURL: "https://mealsync.example", PollInterval: time.Second, BatchSize: 10},
		Digest:  config.DigestConfig{Cron: "@weekly", SendLimit: 3, SendWindow: time.Hour},
	}

	sender := email.NewMockEmailSender()
	inj, err := NewInjector(cfg, db, redisClient, catalog, sender)
	if err != nil {
		t.Fatalf("failed to wire injector: %v", err)
	}

	return &testAPI{t: t, engine: inj.Router.Setup("test"), inj: inj, sender: sender}
}

func (a *testAPI) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testAPI) startSession() {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/v1/sessions", nil)
	if w.Code != http.StatusCreated {
		a.t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp dto.SessionResponse
	decode(a.t, w, &resp)
	a.token = resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode %s: %v", w.Body.String(), err)
	}
}

func summaryLine(t *testing.T, resp dto.SummaryResponse, key string) dto.SummaryLineResponse {
	t.Helper()
	for _, l := range resp.Lines {
		if l.Key == key {
			return l
		}
	}
	t.Fatalf("summary line %s missing", key)
	return dto.SummaryLineResponse{}
}

func TestAPI_HealthAndCatalog(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var health map[string]string
	decode(t, w, &health)
	if health["database"] != "connected" || health["cache"] != "connected" {
		t.Errorf("unexpected health %v", health)
	}

	w = api.do(http.MethodGet, "/api/v1/catalog", nil)
	var catalog dto.CatalogResponse
	decode(t, w, &catalog)
	if len(catalog.Breakfast) != 8 || len(catalog.Lunch) != 2 || len(catalog.Dinner) != 2 {
		t.Errorf("unexpected catalog sizes %d/%d/%d", len(catalog.Breakfast), len(catalog.Lunch), len(catalog.Dinner))
	}
	if catalog.DefaultBudgets["grandTotal"] != 5500 {
		t.Errorf("expected grandTotal budget 5500, got %v", catalog.DefaultBudgets["grandTotal"])
	}
}

func TestAPI_Options(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantMeals  int
	}{
		{"monday week 1 breakfast", "week=1&day=0&meal_type=breakfast", http.StatusOK, 4},
		{"tuesday week 1 breakfast has default", "week=1&day=1&meal_type=breakfast", http.StatusOK, 5},
		{"sunday breakfast empty", "week=1&day=6&meal_type=breakfast", http.StatusOK, 0},
		{"lunch", "week=2&day=3&meal_type=lunch", http.StatusOK, 2},
		{"bad week", "week=5&day=0&meal_type=lunch", http.StatusBadRequest, 0},
		{"non numeric day", "week=1&day=x&meal_type=lunch", http.StatusBadRequest, 0},
		{"bad meal type", "week=1&day=0&meal_type=brunch", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(http.MethodGet, "/api/v1/catalog/options?"+tt.query, nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp dto.OptionsResponse
			decode(t, w, &resp)
			// skip and custom come first
			if got := len(resp.Options) - 2; got != tt.wantMeals {
				t.Errorf("expected %d meals, got %d", tt.wantMeals, got)
			}
			for i := 3; i < len(resp.Options); i++ {
				if *resp.Options[i].Price < *resp.Options[i-1].Price {
					t.Errorf("options not sorted by price: %+v", resp.Options)
				}
			}
		})
	}
}

func TestAPI_PlanRequiresSession(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/api/v1/plan", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	api.token = "garbage"
	w = api.do(http.MethodGet, "/api/v1/plan/summary", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAPI_MixedWeekScenario(t *testing.T) {
	api := newTestAPI(t)
	api.startSession()

	selections := []struct {
		path string
		body dto.SetSelectionRequest
	}{
		{"/api/v1/plan/weeks/1/days/0/meals/breakfast", dto.SetSelectionRequest{Choice: "meal", MealID: "pongal"}},
		{"/api/v1/plan/weeks/1/days/0/meals/dinner", dto.SetSelectionRequest{Choice: "meal", MealID: "mess-dinner"}},
		{"/api/v1/plan/weeks/1/days/6/meals/lunch", dto.SetSelectionRequest{Choice: "custom", Price: "150"}},
		{"/api/v1/plan/weeks/1/days/6/meals/dinner", dto.SetSelectionRequest{Choice: "skip"}},
	}
	for _, s := range selections {
		if w := api.do(http.MethodPut, s.path, s.body); w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", s.path, w.Code, w.Body.String())
		}
	}

	w := api.do(http.MethodGet, "/api/v1/plan/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var summary dto.SummaryResponse
	decode(t, w, &summary)

	weekly := summaryLine(t, summary, "weekly")
	if weekly.Actual != 85 {
		t.Errorf("expected weekly 85, got %v", weekly.Actual)
	}
	if weekly.Delta == nil || *weekly.Delta != 755 || weekly.Status != "under_budget" {
		t.Errorf("unexpected weekly delta %+v", weekly)
	}
	if got := summaryLine(t, summary, "sunday").Actual; got != 150 {
		t.Errorf("expected sunday 150, got %v", got)
	}
	if got := summaryLine(t, summary, "grandTotal").Actual; got != 235 {
		t.Errorf("expected grand total 235, got %v", got)
	}

	// Toggling Monday to lunch drops the breakfast from the total.
	w = api.do(http.MethodPost, "/api/v1/plan/weeks/1/days/0/toggle", nil)
	var day dto.DayResponse
	decode(t, w, &day)
	if day.MainMealType != "lunch" {
		t.Errorf("expected lunch main meal, got %s", day.MainMealType)
	}

	w = api.do(http.MethodGet, "/api/v1/plan/weeks/1", nil)
	var board dto.WeekBoardResponse
	decode(t, w, &board)
	if board.Total != 60 {
		t.Errorf("expected week total 60, got %v", board.Total)
	}
	if len(board.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(board.Days))
	}
	if board.Days[6].CanToggle {
		t.Error("expected sunday not to be toggleable")
	}
	if board.Days[0].Slots[0].DisplayName != "Not planned" {
		t.Errorf("expected unplanned lunch, got %q", board.Days[0].Slots[0].DisplayName)
	}

	w = api.do(http.MethodPost, "/api/v1/plan/weeks/1/days/6/toggle", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 toggling sunday, got %d", w.Code)
	}
}

func TestAPI_SelectionValidation(t *testing.T) {
	api := newTestAPI(t)
	api.startSession()

	tests := []struct {
		name     string
		path     string
		body     any
		wantCode string
	}{
		{"week out of range", "/api/v1/plan/weeks/5/days/0/meals/lunch", dto.SetSelectionRequest{Choice: "skip"}, "PLN-020001"},
		{"day out of range", "/api/v1/plan/weeks/1/days/7/meals/lunch", dto.SetSelectionRequest{Choice: "skip"}, "PLN-020002"},
		{"unknown meal type", "/api/v1/plan/weeks/1/days/0/meals/brunch", dto.SetSelectionRequest{Choice: "skip"}, "PLN-020003"},
		{"sunday breakfast", "/api/v1/plan/weeks/1/days/6/meals/breakfast", dto.SetSelectionRequest{Choice: "skip"}, "PLN-020004"},
		{"unknown choice", "/api/v1/plan/weeks/1/days/0/meals/lunch", map[string]string{"choice": "maybe"}, "PLN-020005"},
		{"meal without id", "/api/v1/plan/weeks/1/days/0/meals/lunch", dto.SetSelectionRequest{Choice: "meal"}, "PLN-020010"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(http.MethodPut, tt.path, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			var resp dto.ErrorResponse
			decode(t, w, &resp)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestAPI_Budgets(t *testing.T) {
	api := newTestAPI(t)
	api.startSession()

	w := api.do(http.MethodPut, "/api/v1/plan/budgets/weekly", dto.UpdateBudgetRequest{Amount: "900"})
	var budget dto.BudgetResponse
	decode(t, w, &budget)
	if w.Code != http.StatusOK || budget.Amount != 900 || budget.UsedDefault {
		t.Fatalf("unexpected response %d %+v", w.Code, budget)
	}

	w = api.do(http.MethodPut, "/api/v1/plan/budgets/sunday", dto.UpdateBudgetRequest{Amount: "lots"})
	decode(t, w, &budget)
	if budget.Amount != 2140 || !budget.UsedDefault {
		t.Errorf("expected fallback to default 2140, got %+v", budget)
	}

	w = api.do(http.MethodPut, "/api/v1/plan/budgets/weekly", dto.UpdateBudgetRequest{Amount: "-5"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative budget, got %d", w.Code)
	}

	w = api.do(http.MethodPut, "/api/v1/plan/budgets/monthly", dto.UpdateBudgetRequest{Amount: "5"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown key, got %d", w.Code)
	}

	w = api.do(http.MethodPost, "/api/v1/plan/budgets/weekly/reset", nil)
	decode(t, w, &budget)
	if budget.Amount != 840 {
		t.Errorf("expected reset to 840, got %v", budget.Amount)
	}
}

func TestAPI_SelectedWeekPersists(t *testing.T) {
	api := newTestAPI(t)
	api.startSession()

	w := api.do(http.MethodPut, "/api/v1/plan/selected-week", map[string]int{"week": 3})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = api.do(http.MethodPut, "/api/v1/plan/selected-week", map[string]int{"week": 9})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for week 9, got %d", w.Code)
	}

	w = api.do(http.MethodGet, "/api/v1/plan", nil)
	var plan dto.PlanResponse
	decode(t, w, &plan)
	if plan.Snapshot.SelectedWeek != 3 {
		t.Errorf("expected selected week 3, got %d", plan.Snapshot.SelectedWeek)
	}

	w = api.do(http.MethodGet, "/api/v1/plan/summary", nil)
	var summary dto.SummaryResponse
	decode(t, w, &summary)
	if summary.Week != 3 {
		t.Errorf("expected summary of week 3, got %d", summary.Week)
	}
}

func TestAPI_Digest(t *testing.T) {
	api := newTestAPI(t)
	api.startSession()

	w := api.do(http.MethodPost, "/api/v1/plan/digest/send", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 without digest address, got %d", w.Code)
	}

	for _, invalid := range []string{"not an email", "Cook <cook@example.com>", "cook@"} {
		w = api.do(http.MethodPut, "/api/v1/plan/digest", dto.UpdateDigestRequest{Email: invalid})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", invalid, w.Code)
		}
		var errResp dto.ErrorResponse
		decode(t, w, &errResp)
		if errResp.Code != "PLN-020009" {
			t.Errorf("expected PLN-020009 for %q, got %s", invalid, errResp.Code)
		}
	}

	w = api.do(http.MethodPut, "/api/v1/plan/digest", dto.UpdateDigestRequest{Email: "cook@example.com"})
	var digest dto.DigestResponse
	decode(t, w, &digest)
	if !digest.Subscribed {
		t.Fatalf("expected subscription, got %+v", digest)
	}

	w = api.do(http.MethodPost, "/api/v1/plan/digest/send", nil)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}

	api.inj.EmailWorker.ProcessNow(context.Background())
	sent := api.sender.Sent()
	if len(sent) != 1 || sent[0].To != "cook@example.com" {
		t.Fatalf("expected one digest to cook@example.com, got %+v", sent)
	}

	w = api.do(http.MethodPut, "/api/v1/plan/digest", dto.UpdateDigestRequest{})
	decode(t, w, &digest)
	if w.Code != http.StatusOK || digest.Subscribed {
		t.Fatalf("expected empty address to unsubscribe, got %d %+v", w.Code, digest)
	}
	api.do(http.MethodPut, "/api/v1/plan/digest", dto.UpdateDigestRequest{Email: "cook@example.com"})

	api.sender.Reset()
	api.inj.DigestScheduler.RunOnce()
	api.inj.EmailWorker.ProcessNow(context.Background())
	if len(api.sender.Sent()) != 1 {
		t.Errorf("expected scheduled digest to be sent, got %d", len(api.sender.Sent()))
	}
}

func TestAPI_DigestSendIsRateLimitedPerPlan(t *testing.T) {
	api := newTestAPI(t)
	api.startSession()

	w := api.do(http.MethodPut, "/api/v1/plan/digest", dto.UpdateDigestRequest{Email: "cook@example.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	for i := 1; i <= 3; i++ {
		if w = api.do(http.MethodPost, "/api/v1/plan/digest/send", nil); w.Code != http.StatusAccepted {
			t.Fatalf("send %d: expected 202, got %d", i, w.Code)
		}
	}

	w = api.do(http.MethodPost, "/api/v1/plan/digest/send", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after three sends, got %d", w.Code)
	}
	var errResp dto.ErrorResponse
	decode(t, w, &errResp)
	if errResp.Code != "PLN-030002" {
		t.Errorf("expected PLN-030002, got %s", errResp.Code)
	}

	api.inj.EmailWorker.ProcessNow(context.Background())
	if got := len(api.sender.Sent()); got != 3 {
		t.Errorf("expected 3 digests delivered, got %d", got)
	}

	// Another plan keeps its own allowance.
	api.startSession()
	api.do(http.MethodPut, "/api/v1/plan/digest", dto.UpdateDigestRequest{Email: "other@example.com"})
	if w = api.do(http.MethodPost, "/api/v1/plan/digest/send", nil); w.Code != http.StatusAccepted {
		t.Errorf("expected 202 for a second plan, got %d", w.Code)
	}
}

func TestAPI_BudgetAmountBounds(t *testing.T) {
	api := newTestAPI(t)
	api.startSession()

	tests := []struct {
		name            string
		amount          string
		wantStatus      int
		wantCode        string
		wantAmount      float64
		wantUsedDefault bool
	}{
		{"largest amount", "9999999999.99", http.StatusOK, "", 9999999999.99, false},
		{"above column range", "10000000000", http.StatusBadRequest, "PLN-020007", 0, false},
		{"huge exponent falls back", "1e50000000", http.StatusOK, "", 840, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(http.MethodPut, "/api/v1/plan/budgets/weekly", dto.UpdateBudgetRequest{Amount: tt.amount})
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantCode != "" {
				var errResp dto.ErrorResponse
				decode(t, w, &errResp)
				if errResp.Code != tt.wantCode {
					t.Errorf("expected code %s, got %s", tt.wantCode, errResp.Code)
				}
				return
			}
			var budget dto.BudgetResponse
			decode(t, w, &budget)
			if budget.Amount != tt.wantAmount || budget.UsedDefault != tt.wantUsedDefault {
				t.Errorf("expected %v (default %v), got %+v", tt.wantAmount, tt.wantUsedDefault, budget)
			}
		})
	}

	w := api.do(http.MethodGet, "/api/v1/plan/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected summary after bounded budgets, got %d", w.Code)
	}
}
