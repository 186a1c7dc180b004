// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mealsync/backend/config"
	"github.com/mealsync/backend/internal/infra/dependency"
	"github.com/mealsync/backend/internal/integration/email"
	"github.com/mealsync/backend/internal/integration/persistence/model"
	"github.com/mealsync/backend/test/integration/mock"
)

const testSessionSecret = "test-session-secret-for-feature-tests"

// Suite-wide resources, shared by every scenario.
var (
	testServer   *httptest.Server
	testDB       *mock.Db
	testRedis    *redis.Client
	testSender   *email.MockEmailSender
	testInjector *dependency.Injector
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	response     *http.Response
	responseBody []byte

	requestHeaders map[string]string
	sessionToken   string
	planID         string
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite wires the full service against SQLite and miniredis.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		testDB = mock.NewDb(map[string]any{
			"plans":       &model.PlanModel{},
			"email_queue": &model.EmailQueueModel{},
		})
		testRedis = mock.NewRedis()
		testSender = email.NewMockEmailSender()

		catalog, err := config.DefaultCatalog()
		if err != nil {
			panic(fmt.Sprintf("failed to load catalog: %v", err))
		}

		cfg := &config.Config{
			Server:  config.ServerConfig{Environment: "test"},
			Redis:   config.RedisConfig{CacheTTL: time.Minute},
			Session: config.SessionConfig{Secret: testSessionSecret, TokenExpiry: time.Hour},
			Email:   config.EmailConfig{AppBaseURL: "http://localhost:5173", PollInterval: time.Second, BatchSize: 50},
			Digest:  config.DigestConfig{Enabled: true, Cron: "0 8 * * 1", SendLimit: 3, SendWindow: time.Hour},
		}

		testInjector, err = dependency.NewInjector(cfg, testDB.DbConn, testRedis, catalog, testSender)
		if err != nil {
			panic(fmt.Sprintf("failed to wire injector: %v", err))
		}
		testServer = httptest.NewServer(testInjector.Router.Setup("test"))
	})

	ctx.AfterSuite(func() {
		if testServer != nil {
			testServer.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		if err := testDB.ClearDB(); err != nil {
			return ctx, err
		}
		if err := mock.ClearRedis(testRedis); err != nil {
			return ctx, err
		}
		testSender.Reset()

		tc := &TestContext{
			requestHeaders: make(map[string]string),
		}
		return SetTestContext(ctx, tc), nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerPlanSteps(ctx)
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should not exist$`, theResponseFieldShouldNotExist)
}

func theAPIServerIsRunning(ctx context.Context) error {
	if GetTestContext(ctx) == nil || testServer == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	return sendRequest(ctx, method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) (context.Context, error) {
	return sendRequest(ctx, method, endpoint, bytes.NewBufferString(body.Content))
}

func sendRequest(ctx context.Context, method, endpoint string, body io.Reader) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	req, err := http.NewRequest(method, testServer.URL+endpoint, body)
	if err != nil {
		return ctx, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}
	if tc.sessionToken != "" && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+tc.sessionToken)
	}

	resp, err := testServer.Client().Do(req)
	if err != nil {
		return ctx, fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return ctx, fmt.Errorf("failed to read response body: %w", err)
	}

	return SetTestContext(ctx, tc), nil
}

func iSetHeaderTo(ctx context.Context, header, value string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.requestHeaders[header] = value
	return SetTestContext(ctx, tc), nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	value, err := responseField(ctx, field)
	if err != nil {
		return err
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	_, err := responseField(ctx, field)
	return err
}

func theResponseFieldShouldNotExist(ctx context.Context, field string) error {
	if _, err := responseField(ctx, field); err == nil {
		return fmt.Errorf("field '%s' should not be in the response", field)
	}
	return nil
}

// responseField resolves a dotted path such as "lines.0.delta" in the JSON body.
func responseField(ctx context.Context, path string) (interface{}, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return nil, fmt.Errorf("test context not found")
	}

	var current interface{}
	if err := json.Unmarshal(tc.responseBody, &current); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			value, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response: %s", path, string(tc.responseBody))
			}
			current = value
		case []interface{}:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("index '%s' of '%s' out of range", part, path)
			}
			current = node[i]
		default:
			return nil, fmt.Errorf("field '%s' not found in response", path)
		}
	}
	return current, nil
}
