package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
)

// registerPlanSteps registers MealSync specific steps.
func registerPlanSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I have started a plan session$`, iHaveStartedAPlanSession)
	ctx.Step(`^I use the session token "([^"]*)"$`, iUseTheSessionToken)
	ctx.Step(`^I choose "([^"]*)" for week (\d+) day (\d+) "([^"]*)"$`, iChooseMealFor)
	ctx.Step(`^I enter a custom price of "([^"]*)" for week (\d+) day (\d+) "([^"]*)"$`, iEnterACustomPriceFor)
	ctx.Step(`^the email worker runs$`, theEmailWorkerRuns)
	ctx.Step(`^the weekly digest job runs$`, theWeeklyDigestJobRuns)
	ctx.Step(`^(\d+) emails? should have been sent to "([^"]*)"$`, emailsShouldHaveBeenSentTo)
	ctx.Step(`^the db should contain (\d+) objects in the "([^"]*)" table$`, theDbShouldContainObjectsInTheTable)
	ctx.Step(`^the plan should be cached$`, thePlanShouldBeCached)
}

func iHaveStartedAPlanSession(ctx context.Context) (context.Context, error) {
	ctx, err := sendRequest(ctx, http.MethodPost, "/api/v1/sessions", nil)
	if err != nil {
		return ctx, err
	}
	tc := GetTestContext(ctx)
	if tc.response.StatusCode != http.StatusCreated {
		return ctx, fmt.Errorf("failed to start session: %d %s", tc.response.StatusCode, string(tc.responseBody))
	}

	var body struct {
		PlanID string `json:"plan_id"`
		Token  string `json:"token"`
	}
	if err := json.Unmarshal(tc.responseBody, &body); err != nil {
		return ctx, fmt.Errorf("failed to parse session response: %w", err)
	}
	tc.sessionToken = body.Token
	tc.planID = body.PlanID
	return SetTestContext(ctx, tc), nil
}

func iUseTheSessionToken(ctx context.Context, token string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.sessionToken = token
	return SetTestContext(ctx, tc), nil
}

func iChooseMealFor(ctx context.Context, mealID string, week, day int, mealType string) (context.Context, error) {
	body := fmt.Sprintf(`{"choice":"meal","meal_id":%q}`, mealID)
	if mealID == "skip" {
		body = `{"choice":"skip"}`
	}
	return putSelection(ctx, week, day, mealType, body)
}

func iEnterACustomPriceFor(ctx context.Context, price string, week, day int, mealType string) (context.Context, error) {
	return putSelection(ctx, week, day, mealType, fmt.Sprintf(`{"choice":"custom","price":%q}`, price))
}

func putSelection(ctx context.Context, week, day int, mealType, body string) (context.Context, error) {
	endpoint := fmt.Sprintf("/api/v1/plan/weeks/%d/days/%d/meals/%s", week, day, mealType)
	ctx, err := iSendARequestToWithBody(ctx, http.MethodPut, endpoint, &godog.DocString{Content: body})
	if err != nil {
		return ctx, err
	}
	if err := theResponseStatusShouldBe(ctx, http.StatusOK); err != nil {
		return ctx, err
	}
	return ctx, nil
}

func theEmailWorkerRuns(ctx context.Context) error {
	if testInjector.EmailWorker == nil {
		return fmt.Errorf("email worker is not configured")
	}
	testInjector.EmailWorker.ProcessNow(ctx)
	return nil
}

func theWeeklyDigestJobRuns() error {
	testInjector.DigestScheduler.RunOnce()
	return nil
}

func emailsShouldHaveBeenSentTo(count int, recipient string) error {
	sent := 0
	for _, e := range testSender.Sent() {
		if e.To == recipient {
			sent++
		}
	}
	if sent != count {
		return fmt.Errorf("expected %d emails to %s, got %d", count, recipient, sent)
	}
	return nil
}

func theDbShouldContainObjectsInTheTable(count int, table string) error {
	actual, err := testDB.Count(table)
	if err != nil {
		return err
	}
	if actual != int64(count) {
		return fmt.Errorf("expected %d rows in %s, got %d", count, table, actual)
	}
	return nil
}

func thePlanShouldBeCached(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.planID == "" {
		return fmt.Errorf("no plan session started")
	}
	if _, err := uuid.Parse(tc.planID); err != nil {
		return fmt.Errorf("invalid plan id %q", tc.planID)
	}
	exists, err := testRedis.Exists(ctx, "mealsync:plan:"+tc.planID).Result()
	if err != nil {
		return err
	}
	if exists != 1 {
		return fmt.Errorf("plan %s is not cached", tc.planID)
	}
	return nil
}
