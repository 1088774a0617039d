package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	httpadapter "github.com/jsamuelsen/quotation-service/internal/adapters/http"
	"github.com/jsamuelsen/quotation-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotation-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotation-service/internal/adapters/store/memory"
	"github.com/jsamuelsen/quotation-service/internal/adapters/ws"
	"github.com/jsamuelsen/quotation-service/internal/app"
	"github.com/jsamuelsen/quotation-service/internal/ports"
)

// quietWait bounds how long a subscriber listens when no event is expected.
const quietWait = 200 * time.Millisecond

// testContext holds state shared across step definitions within a scenario.
type testContext struct {
	server *httptest.Server
	store  *memory.Store
	hub    *ws.Hub
	client *http.Client

	subscriber *websocket.Conn

	response     *http.Response
	responseBody []byte
}

func newTestContext() *testContext {
	return &testContext{client: &http.Client{Timeout: 10 * time.Second}}
}

// start wires the service in-process over the memory store.
func (tc *testContext) start() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tc.store = memory.New()
	tc.hub = ws.NewHub(ws.Config{Logger: logger})

	service := app.NewQuotationService(app.QuotationServiceConfig{
		Store:       tc.store,
		Broadcaster: tc.hub,
		Logger:      logger,
	})

	registry := ports.NewHealthRegistry()
	_ = registry.Register(tc.hub)

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		ServiceName:      "quotation-service-features",
		HealthHandler:    handlers.NewHealthHandler(registry, handlers.NewBuildInfo("features", "", "")),
		QuotationHandler: handlers.NewQuotationHandler(service),
		RealtimePath:     "/ws",
		RealtimeHandler:  tc.hub.HandleWS,
		Timeout:          httpadapter.DefaultRequestTimeout,
	})

	tc.server = httptest.NewServer(engine)
}

// reset releases everything a scenario opened.
func (tc *testContext) reset() {
	if tc.subscriber != nil {
		_ = tc.subscriber.CloseNow()
		tc.subscriber = nil
	}

	if tc.hub != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		_ = tc.hub.Close(ctx)
		cancel()
		tc.hub = nil
	}

	if tc.server != nil {
		tc.server.Close()
		tc.server = nil
	}

	tc.response = nil
	tc.responseBody = nil
}

// InitializeScenario registers step definitions for each scenario.
func InitializeScenario(sc *godog.ScenarioContext) {
	tc := newTestContext()

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	sc.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	sc.Step(`^the service is running$`, tc.theServiceIsRunning)
	sc.Step(`^a realtime subscriber is connected$`, tc.aRealtimeSubscriberIsConnected)
	sc.Step(`^the store is unavailable$`, tc.theStoreIsUnavailable)
	sc.Step(`^these quotations were submitted in order:$`, tc.theseQuotationsWereSubmitted)
	sc.Step(`^I create a quotation with:$`, tc.iCreateAQuotationWith)
	sc.Step(`^I create a quotation for "([^"]*)" on "([^"]*)"$`, tc.iCreateAQuotationFor)
	sc.Step(`^I request GET "([^"]*)"$`, tc.iRequestGET)
	sc.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	sc.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.theResponseFieldShouldBe)
	sc.Step(`^the response should have an identity and a creation time$`, tc.theResponseShouldHaveIdentity)
	sc.Step(`^the response error code should be "([^"]*)"$`, tc.theResponseErrorCodeShouldBe)
	sc.Step(`^the response error details should name "([^"]*)"$`, tc.theResponseErrorDetailsShouldName)
	sc.Step(`^the subscriber should receive the created quotation$`, tc.theSubscriberShouldReceiveTheCreated)
	sc.Step(`^the subscriber should receive nothing$`, tc.theSubscriberShouldReceiveNothing)
	sc.Step(`^the store should hold (\d+) quotations$`, tc.theStoreShouldHold)
	sc.Step(`^the quotations should be listed for "([^"]*)"$`, tc.theQuotationsShouldBeListedFor)
}

func (tc *testContext) theServiceIsRunning() error {
	tc.start()

	resp, err := tc.client.Get(tc.server.URL + "/-/live")
	if err != nil {
		return fmt.Errorf("service is not running: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status %d", resp.StatusCode)
	}

	return nil
}

func (tc *testContext) aRealtimeSubscriberIsConnected() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	before := tc.hub.ConnectionCount()

	conn, resp, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(tc.server.URL, "http")+"/ws", nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	if err != nil {
		return fmt.Errorf("dialing realtime endpoint: %w", err)
	}

	tc.subscriber = conn

	// The hub registers the subscriber before answering the handshake.
	if tc.hub.ConnectionCount() == before {
		return errors.New("subscriber was not registered when the handshake completed")
	}

	return nil
}

func (tc *testContext) theStoreIsUnavailable() error {
	tc.store.FailWith(errors.New("connection refused"))
	return nil
}

func (tc *testContext) theseQuotationsWereSubmitted(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		if err := tc.iCreateAQuotationFor(row.Cells[0].Value, row.Cells[1].Value); err != nil {
			return err
		}

		if err := tc.theResponseStatusShouldBe(http.StatusCreated); err != nil {
			return err
		}

		// Keeps creation times distinct so the newest-first order is observable.
		time.Sleep(2 * time.Millisecond)
	}

	return nil
}

func (tc *testContext) iCreateAQuotationWith(body *godog.DocString) error {
	return tc.post("/api/quotations", []byte(body.Content))
}

func (tc *testContext) iCreateAQuotationFor(clientName, eventDate string) error {
	body, err := json.Marshal(map[string]any{
		"clientName":        clientName,
		"companyName":       clientName + " Events",
		"eventDate":         eventDate,
		"startTime":         "19:00",
		"endTime":           "23:00",
		"numberOfGuests":    20,
		"servicesRequested": []string{"bartending"},
	})
	if err != nil {
		return err
	}

	return tc.post("/api/quotations", body)
}

func (tc *testContext) post(path string, body []byte) error {
	resp, err := tc.client.Post(tc.server.URL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	return tc.capture(resp)
}

func (tc *testContext) iRequestGET(path string) error {
	resp, err := tc.client.Get(tc.server.URL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	return tc.capture(resp)
}

func (tc *testContext) capture(resp *http.Response) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	tc.response = resp
	tc.responseBody = body

	return nil
}

func (tc *testContext) theResponseStatusShouldBe(expectedCode int) error {
	if tc.response == nil {
		return errors.New("no response received")
	}

	if tc.response.StatusCode != expectedCode {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expectedCode, tc.response.StatusCode, string(tc.responseBody))
	}

	return nil
}

func (tc *testContext) record() (map[string]any, error) {
	var record map[string]any
	if err := json.Unmarshal(tc.responseBody, &record); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w", err)
	}

	return record, nil
}

func (tc *testContext) theResponseFieldShouldBe(field, expected string) error {
	record, err := tc.record()
	if err != nil {
		return err
	}

	if got := fmt.Sprint(record[field]); got != expected {
		return fmt.Errorf("field %q: expected %q, got %q", field, expected, got)
	}

	return nil
}

func (tc *testContext) theResponseShouldHaveIdentity() error {
	var record dto.QuotationResponse
	if err := json.Unmarshal(tc.responseBody, &record); err != nil {
		return err
	}

	if record.ID == "" {
		return errors.New("response has no _id")
	}

	if record.CreatedAt.IsZero() {
		return errors.New("response has no createdAt")
	}

	return nil
}

func (tc *testContext) errorResponse() (*dto.ErrorResponse, error) {
	var resp dto.ErrorResponse
	if err := json.Unmarshal(tc.responseBody, &resp); err != nil {
		return nil, fmt.Errorf("response is not an error envelope: %w", err)
	}

	return &resp, nil
}

func (tc *testContext) theResponseErrorCodeShouldBe(code string) error {
	resp, err := tc.errorResponse()
	if err != nil {
		return err
	}

	if resp.Error.Code != code {
		return fmt.Errorf("expected error code %q, got %q", code, resp.Error.Code)
	}

	return nil
}

func (tc *testContext) theResponseErrorDetailsShouldName(fields string) error {
	resp, err := tc.errorResponse()
	if err != nil {
		return err
	}

	want := splitList(fields)
	got := make([]string, 0, len(resp.Error.Details))
	for field := range resp.Error.Details {
		got = append(got, field)
	}

	slices.Sort(want)
	slices.Sort(got)

	if !slices.Equal(want, got) {
		return fmt.Errorf("expected details for %v, got %v", want, got)
	}

	return nil
}

func (tc *testContext) theSubscriberShouldReceiveTheCreated() error {
	var created dto.QuotationResponse
	if err := json.Unmarshal(tc.responseBody, &created); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, data, err := tc.subscriber.Read(ctx)
	if err != nil {
		return fmt.Errorf("no event received: %w", err)
	}

	var event struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &event); err != nil {
		return err
	}

	if event.Type != ws.EventNewQuotation {
		return fmt.Errorf("expected %q event, got %q", ws.EventNewQuotation, event.Type)
	}

	var payload dto.QuotationResponse
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return err
	}

	if payload.ID != created.ID || !payload.CreatedAt.Equal(created.CreatedAt) {
		return fmt.Errorf("event payload %+v does not match response %+v", payload, created)
	}

	return nil
}

// theSubscriberShouldReceiveNothing listens briefly. A timed-out read
// closes the connection, so it must be the last realtime step.
func (tc *testContext) theSubscriberShouldReceiveNothing() error {
	ctx, cancel := context.WithTimeout(context.Background(), quietWait)
	defer cancel()

	_, data, err := tc.subscriber.Read(ctx)
	if err == nil {
		return fmt.Errorf("unexpected event: %s", data)
	}

	return nil
}

func (tc *testContext) theStoreShouldHold(n int) error {
	if got := tc.store.Len(); got != n {
		return fmt.Errorf("expected %d stored quotations, got %d", n, got)
	}

	return nil
}

func (tc *testContext) theQuotationsShouldBeListedFor(names string) error {
	var records []dto.QuotationResponse
	if err := json.Unmarshal(tc.responseBody, &records); err != nil {
		return fmt.Errorf("response is not a JSON array: %w", err)
	}

	got := make([]string, 0, len(records))
	for _, r := range records {
		got = append(got, r.ClientName)
	}

	if want := splitList(names); !slices.Equal(want, got) {
		return fmt.Errorf("expected order %v, got %v", want, got)
	}

	return nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

// TestFeatures runs the GoDog BDD test suite.
func TestFeatures(t *testing.T) {
	gin.SetMode(gin.TestMode)

	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
