package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/accounting-office/backend/internal/domain/entity"
	"github.com/accounting-office/backend/internal/integration/adapters"
	"github.com/accounting-office/backend/internal/integration/persistence"
	"github.com/accounting-office/backend/internal/integration/persistence/model"
	"github.com/accounting-office/backend/test/integration/mock"
)

func (t *testContext) iAmAuthenticatedWithScope(scope string) error {
	token, err := adapters.NewTokenService(testJWTSecret, 15*time.Minute).
		GenerateAccessToken(context.Background(), uuid.New(), strings.Split(scope, ","))
	if err != nil {
		return err
	}
	t.accessToken = token
	return nil
}

func (t *testContext) iAmAuthenticatedWithAnExpiredToken() error {
	past := time.Now().UTC().Add(-time.Hour)
	claims := adapters.CustomClaims{
		UserID:    uuid.New().String(),
		Scopes:    []string{"bookkeeping:read"},
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past),
			IssuedAt:  jwt.NewNumericDate(past.Add(-15 * time.Minute)),
			Issuer:    "accounting-office",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to sign expired token: %w", err)
	}
	t.accessToken = token
	return nil
}

// theChartOfAccounts stores rows of | code | name | business_type |.
func (t *testContext) theChartOfAccounts(table *godog.Table) error {
	repo := persistence.NewChartOfAccountsRepository(t.db.DbConn)
	for _, row := range tableRows(table) {
		node := entity.NewChartNode(row["code"], row["name"], entity.BusinessType(row["business_type"]))
		if err := repo.Create(context.Background(), node); err != nil {
			return fmt.Errorf("failed to store chart node %s: %w", node.Code, err)
		}
		t.chartNodes[node.Code] = node.ID
	}
	return nil
}

// companyLinksTheAccounts stores rows of | code | trial_balance_codes |,
// where trial_balance_codes is comma-separated.
func (t *testContext) companyLinksTheAccounts(alias string, table *godog.Table) error {
	companyID := t.company(alias)
	repo := persistence.NewParametrizationRepository(t.db.DbConn)
	for _, row := range tableRows(table) {
		nodeID, ok := t.chartNodes[row["code"]]
		if !ok {
			return fmt.Errorf("chart node %s was not created", row["code"])
		}
		codes := strings.Split(row["trial_balance_codes"], ",")
		for i := range codes {
			codes[i] = strings.TrimSpace(codes[i])
		}
		if err := repo.Create(context.Background(), entity.NewParametrizationLink(companyID, nodeID, codes)); err != nil {
			return fmt.Errorf("failed to link %s: %w", row["code"], err)
		}
	}
	return nil
}

// companyHasATrialBalanceWithLines stores a trial balance header and rows of
// | code | name | opening | closing |.
func (t *testContext) companyHasATrialBalanceWithLines(alias, status string, year, month int, table *godog.Table) error {
	companyID := t.company(alias)

	tb := entity.NewTrialBalance(companyID, year, month)
	tb.Status = entity.TrialBalanceStatus(status)
	if !tb.Status.IsValid() {
		return fmt.Errorf("unknown trial balance status %q", status)
	}
	if err := t.db.DbConn.Create(model.TrialBalanceFromEntity(tb)).Error; err != nil {
		return err
	}

	for _, row := range tableRows(table) {
		opening, err := decimal.NewFromString(row["opening"])
		if err != nil {
			return fmt.Errorf("invalid opening balance %q: %w", row["opening"], err)
		}
		closing, err := decimal.NewFromString(row["closing"])
		if err != nil {
			return fmt.Errorf("invalid closing balance %q: %w", row["closing"], err)
		}
		line := &entity.TrialBalanceLine{
			ID:             uuid.New(),
			CompanyID:      companyID,
			Year:           year,
			Month:          month,
			Code:           row["code"],
			Name:           row["name"],
			OpeningBalance: opening,
			ClosingBalance: closing,
		}
		if err := t.db.DbConn.Create(model.TrialBalanceLineFromEntity(line)).Error; err != nil {
			return err
		}
	}
	return nil
}

func tableRows(table *godog.Table) []map[string]string {
	if table == nil || len(table.Rows) == 0 {
		return nil
	}
	header := table.Rows[0].Cells
	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, r := range table.Rows[1:] {
		row := make(map[string]string, len(header))
		for i, cell := range r.Cells {
			row[header[i].Value] = cell.Value
		}
		rows = append(rows, row)
	}
	return rows
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // Clear access token to simulate unauthenticated request
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

// replacePlaceholders expands {{company:ALIAS}}, {{node:CODE}} and
// {{link_id}}.
func (t *testContext) replacePlaceholders(content string) string {
	for alias, id := range t.companies {
		content = strings.ReplaceAll(content, "{{company:"+alias+"}}", id.String())
	}
	for code, id := range t.chartNodes {
		content = strings.ReplaceAll(content, "{{node:"+code+"}}", id.String())
	}
	content = strings.ReplaceAll(content, "{{link_id}}", t.lastLinkID.String())
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path
	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
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

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	// Capture the link ID of a created link
	if idStr, ok := responseBody["id"].(string); ok {
		if _, isLink := responseBody["trial_balance_codes"]; isLink {
			if id, err := uuid.Parse(idStr); err == nil {
				t.lastLinkID = id
			}
		}
	}

	return nil
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
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
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
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != t.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
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
	m, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(m).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
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

func (t *testContext) theValidationCacheShouldHoldReports(quantity int) error {
	count := 0
	for _, key := range mock.RedisKeys() {
		if strings.HasPrefix(key, "parametrization:validation:") && !strings.HasSuffix(key, ":keys") {
			count++
		}
	}
	if count != quantity {
		return fmt.Errorf("expected %d cached reports, got %d (keys: %v)", quantity, count, mock.RedisKeys())
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
