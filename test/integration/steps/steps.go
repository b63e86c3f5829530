package steps

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gigledger/backend/internal/domain/entity"
	"github.com/gigledger/backend/internal/integration/persistence/model"
	"github.com/gigledger/backend/test/integration/mock"
)

const defaultPassword = "DefaultPass123!"

type testContext struct {
	suite         *suite
	headers       map[string]string
	client        *http.Client
	response      *response
	accessToken   string
	refreshToken  string
	resetToken    string
	currentUserID uuid.UUID
	currentEmail  string
	shiftID       uuid.UUID
	expenseID     uuid.UUID
}

type response struct {
	status int
	body   any
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)"$`, test.aUserExistsWithEmail)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^the user has the PIN "([^"]*)"$`, test.theUserHasThePin)
	ctx.Given(`^the user is logged in with valid tokens$`, test.theUserIsLoggedInWithValidTokens)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^a password reset token exists for "([^"]*)"$`, test.aPasswordResetTokenExistsFor)

	// Record setup steps
	ctx.Given(`^the user has the following shifts:$`, test.theUserHasTheFollowingShifts)
	ctx.Given(`^the user has the following expenses:$`, test.theUserHasTheFollowingExpenses)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I open the statistics stream with query "([^"]*)"$`, test.iOpenTheStatisticsStream)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should be null$`, test.theResponseFieldShouldBeNull)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^the statistics cache should contain (\d+) entr(?:y|ies)$`, test.theStatisticsCacheShouldContainEntries)

	// Email API steps
	ctx.Given(`^the email API responds to "([^"]*)" "([^"]*)" with status (\d+)$`, test.theEmailAPIRespondsWithStatus)
	ctx.Then(`^the email API should have received (\d+) requests? to "([^"]*)" "([^"]*)"$`, test.theEmailAPIShouldHaveReceivedRequests)
	ctx.Then(`^the email API request (\d+) to "([^"]*)" "([^"]*)" field "([^"]*)" should contain "([^"]*)"$`, test.theEmailAPIRequestFieldShouldContain)
}

func (t *testContext) before() error {
	s, err := startSuite()
	if err != nil {
		return err
	}

	t.suite = s
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.resetToken = ""
	t.currentUserID = uuid.Nil
	t.currentEmail = ""
	t.shiftID = uuid.Nil
	t.expenseID = uuid.Nil

	return s.reset()
}

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.suite.server.URL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("expected healthy server, got status %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) theCurrentTimeIs(value string) error {
	current, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	t.suite.clock.SetCurrentTime(current)
	return nil
}

func (t *testContext) aUserExistsWithEmail(email string) error {
	return t.createUser(email, defaultPassword, "Test Driver")
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(email, password, "Test Driver")
}

func (t *testContext) createUser(email, password, name string) error {
	hash, err := t.suite.passwords.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:              uuid.New(),
		Email:           email,
		Name:            name,
		PasswordHash:    hash,
		TermsAcceptedAt: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := t.suite.db.DbConn.Create(user).Error; err != nil {
		return err
	}

	t.currentUserID = user.ID
	t.currentEmail = email
	return nil
}

func (t *testContext) theUserHasThePin(pin string) error {
	hash, err := t.suite.passwords.HashPassword(pin)
	if err != nil {
		return err
	}
	return t.suite.db.DbConn.Model(&model.UserModel{}).
		Where("id = ?", t.currentUserID).
		Update("pin_hash", hash).Error
}

func (t *testContext) theUserIsLoggedInWithValidTokens() error {
	if t.currentUserID == uuid.Nil {
		return errors.New("no user to log in")
	}

	pair, err := t.suite.tokens.GenerateTokenPair(context.Background(), t.currentUserID, t.currentEmail, false)
	if err != nil {
		return fmt.Errorf("failed to generate tokens: %w", err)
	}
	t.accessToken = pair.AccessToken
	t.refreshToken = pair.RefreshToken
	return nil
}

func (t *testContext) iAmLoggedInAs(email string) error {
	var user model.UserModel
	err := t.suite.db.DbConn.Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := t.createUser(email, defaultPassword, "Test Driver"); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		t.currentUserID = user.ID
		t.currentEmail = user.Email
	}

	return t.theUserIsLoggedInWithValidTokens()
}

func (t *testContext) aPasswordResetTokenExistsFor(email string) error {
	var user model.UserModel
	if err := t.suite.db.DbConn.Where("email = ?", email).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	token, err := t.suite.resetTokens.GenerateResetToken(context.Background(), user.ID, email)
	if err != nil {
		return err
	}
	t.resetToken = token.Token
	return nil
}

func (t *testContext) theUserHasTheFollowingShifts(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, row := range rows {
		date, err := time.Parse(time.DateOnly, row["date"])
		if err != nil {
			return fmt.Errorf("invalid shift date %q: %w", row["date"], err)
		}

		shift := &model.ShiftModel{
			ID:            uuid.New(),
			UserID:        t.currentUserID,
			Date:          entity.NormalizeShiftDate(date),
			Hours:         intColumn(row, "hours"),
			Minutes:       intColumn(row, "minutes"),
			GrossIncome:   decimalColumn(row, "gross_income"),
			Tips:          decimalColumn(row, "tips"),
			Bonus:         decimalColumn(row, "bonus"),
			FuelCost:      decimalColumn(row, "fuel_cost"),
			OtherExpenses: decimalColumn(row, "other_expenses"),
			OrdersCount:   intColumn(row, "orders_count"),
			Kilometers:    decimalColumn(row, "kilometers"),
			Notes:         row["notes"],
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if row["deleted"] == "true" {
			shift.IsDeleted = true
			shift.DeletedAt = &now
		}

		if err := t.suite.db.DbConn.Create(shift).Error; err != nil {
			return err
		}
		t.shiftID = shift.ID
	}
	return nil
}

func (t *testContext) theUserHasTheFollowingExpenses(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, row := range rows {
		date, err := time.Parse(time.DateOnly, row["date"])
		if err != nil {
			return fmt.Errorf("invalid expense date %q: %w", row["date"], err)
		}

		paymentMethod := row["payment_method"]
		if paymentMethod == "" {
			paymentMethod = "cash"
		}

		expense := &model.ExpenseModel{
			ID:            uuid.New(),
			UserID:        t.currentUserID,
			Amount:        decimalColumn(row, "amount"),
			Category:      row["category"],
			Date:          date,
			PaymentMethod: paymentMethod,
			Notes:         row["notes"],
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if row["deleted"] == "true" {
			expense.IsDeleted = true
			expense.DeletedAt = &now
		}

		if err := t.suite.db.DbConn.Create(expense).Error; err != nil {
			return err
		}
		t.expenseID = expense.ID
	}
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = t.replacePlaceholders(value)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	payload := []byte(t.replacePlaceholders(body.Content))
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	replacer := strings.NewReplacer(
		"{{access_token}}", t.accessToken,
		"{{refresh_token}}", t.refreshToken,
		"{{reset_token}}", t.resetToken,
		"{{user_id}}", t.currentUserID.String(),
		"{{shift_id}}", t.shiftID.String(),
		"{{expense_id}}", t.expenseID.String(),
		"{{today}}", t.suite.clock.Now().UTC().Format(time.DateOnly),
	)
	return replacer.Replace(content)
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.suite.server.URL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody
	t.captureIdentifiers(path, responseBody)

	return nil
}

// captureIdentifiers remembers ids and tokens returned by the API so later
// steps can refer to them through placeholders.
func (t *testContext) captureIdentifiers(path string, body any) {
	object, ok := body.(map[string]any)
	if !ok {
		return
	}

	if idStr, ok := object["id"].(string); ok {
		if id, err := uuid.Parse(idStr); err == nil {
			switch {
			case strings.HasPrefix(path, "/api/v1/shifts"):
				t.shiftID = id
			case strings.HasPrefix(path, "/api/v1/expenses"):
				t.expenseID = id
			}
		}
	}

	if token, ok := object["access_token"].(string); ok && token != "" {
		t.accessToken = token
	}
	if token, ok := object["refresh_token"].(string); ok && token != "" {
		t.refreshToken = token
	}

	if user, ok := object["user"].(map[string]any); ok {
		if idStr, ok := user["id"].(string); ok {
			if id, err := uuid.Parse(idStr); err == nil {
				t.currentUserID = id
			}
		}
		if email, ok := user["email"].(string); ok {
			t.currentEmail = email
		}
	}
}

// iOpenTheStatisticsStream connects to the event stream and keeps the first
// statistics event as the response.
func (t *testContext) iOpenTheStatisticsStream(query string) error {
	values, err := url.ParseQuery(t.replacePlaceholders(query))
	if err != nil {
		return err
	}
	if t.accessToken != "" {
		values.Set("access_token", t.accessToken)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	endpoint := t.suite.server.URL + "/api/v1/statistics/stream?" + values.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	t.response = &response{status: resp.StatusCode}

	if resp.StatusCode != http.StatusOK {
		var body any
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return err
		}
		t.response.body = body
		return nil
	}

	event := ""
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:") && event == "statistics":
			var body any
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data:")), &body); err != nil {
				return fmt.Errorf("invalid statistics event: %w", err)
			}
			t.response.body = body
			return nil
		}
	}

	return fmt.Errorf("stream ended before a statistics event: %v", scanner.Err())
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	switch t.response.body.(type) {
	case map[string]any, []any:
		return nil
	default:
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value, found := getFieldValue(t.response.body, field)
	if !found || value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != t.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	if _, found := getFieldValue(t.response.body, field); !found {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBeNull(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value, found := getFieldValue(t.response.body, field)
	if !found {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	if value != nil {
		return fmt.Errorf("field '%s' expected null, got %v", field, value)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, quantity int) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value, found := getFieldValue(t.response.body, field)
	if !found {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	var count int
	switch items := value.(type) {
	case []any:
		count = len(items)
	case map[string]any:
		count = len(items)
	default:
		return fmt.Errorf("field '%s' is not a collection: %v", field, value)
	}

	if count != quantity {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, quantity, count)
	}
	return nil
}

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.suite.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.suite.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theStatisticsCacheShouldContainEntries(quantity int) error {
	keys := mock.RedisKeys("stats:*")
	if len(keys) != quantity {
		return fmt.Errorf("expected %d cached statistics, got %d (%v)", quantity, len(keys), keys)
	}
	return nil
}

func (t *testContext) theEmailAPIRespondsWithStatus(method, path string, status int) error {
	t.suite.emailAPI.SetResponse(method, path, status, map[string]any{
		"name":       "application_error",
		"message":    http.StatusText(status),
		"statusCode": status,
	})
	return nil
}

func (t *testContext) theEmailAPIShouldHaveReceivedRequests(quantity int, method, path string) error {
	count := t.suite.emailAPI.RequestCount(method, path)
	if count != quantity {
		return fmt.Errorf("expected %d requests to %s %s, got %d", quantity, method, path, count)
	}
	return nil
}

func (t *testContext) theEmailAPIRequestFieldShouldContain(index int, method, path, field, expected string) error {
	body := t.suite.emailAPI.GetRequestBody(method, path, index)
	if body == nil {
		return fmt.Errorf("no request %d to %s %s", index, method, path)
	}

	value, found := getFieldValue(body, field)
	if !found {
		return fmt.Errorf("field '%s' not found in request: %v", field, body)
	}
	if actual := fmt.Sprintf("%v", value); !strings.Contains(actual, expected) {
		return fmt.Errorf("field '%s' expected to contain '%s', got '%s'", field, expected, actual)
	}
	return nil
}

// getFieldValue walks a dot separated path through decoded JSON. Numeric
// segments index into arrays.
func getFieldValue(object any, dotSeparatedField string) (any, bool) {
	field := object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		switch v := field.(type) {
		case map[string]any:
			next, ok := v[currentField]
			if !ok {
				return nil, false
			}
			field = next
		case []any:
			i, err := strconv.Atoi(currentField)
			if err != nil || i < 0 || i >= len(v) {
				return nil, false
			}
			field = v[i]
		default:
			return nil, false
		}
	}

	return field, true
}

func tableRows(table *godog.Table) ([]map[string]string, error) {
	if len(table.Rows) < 1 {
		return nil, errors.New("table needs a header row")
	}

	header := table.Rows[0].Cells
	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i].Value] = cell.Value
		}
		rows = append(rows, values)
	}
	return rows, nil
}

func intColumn(row map[string]string, column string) int {
	value, err := strconv.Atoi(row[column])
	if err != nil {
		return 0
	}
	return value
}

func decimalColumn(row map[string]string, column string) decimal.Decimal {
	value, err := decimal.NewFromString(row[column])
	if err != nil {
		return decimal.Zero
	}
	return value
}
