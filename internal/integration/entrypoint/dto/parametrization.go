// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/accounting-office/backend/internal/application/usecase/parametrization"
	"github.com/accounting-office/backend/internal/domain/entity"
	"github.com/accounting-office/backend/internal/domain/valueobject"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// CreateLinkRequest represents the request body for link creation.
type CreateLinkRequest struct {
	ChartNodeID       string   `json:"chart_node_id" binding:"required,uuid"`
	TrialBalanceCodes []string `json:"trial_balance_codes" binding:"required,min=1,dive,required,max=40"`
}

// ChildContributionResponse is one child's share of a mother node.
type ChildContributionResponse struct {
	ChartNodeID       string `json:"chart_node_id"`
	Code              string `json:"code"`
	Name              string `json:"name"`
	Nature            string `json:"nature"`
	ParametrizedValue string `json:"parametrized_value"`
}

// FindingResponse represents one mother-node check in API responses.
type FindingResponse struct {
	ChartNodeID        string                      `json:"chart_node_id"`
	Code               string                      `json:"code"`
	Name               string                      `json:"name"`
	Level              int                         `json:"level"`
	Month              int                         `json:"month"`
	Nature             string                      `json:"nature"`
	ParametrizedValue  string                      `json:"parametrized_value"`
	CalculatedValue    string                      `json:"calculated_value"`
	AbsoluteDifference string                      `json:"absolute_difference"`
	Status             string                      `json:"status"`
	Children           []ChildContributionResponse `json:"children"`
}

// BalanceFindingResponse represents one month of the balance equation check.
type BalanceFindingResponse struct {
	Month            int      `json:"month"`
	Assets           string   `json:"assets"`
	Liabilities      string   `json:"liabilities"`
	Revenues         string   `json:"revenues"`
	CostsAndExpenses string   `json:"costs_and_expenses"`
	PatrimonialDelta string   `json:"patrimonial_delta"`
	ResultDelta      string   `json:"result_delta"`
	Difference       string   `json:"difference"`
	IsConsistent     bool     `json:"is_consistent"`
	MissingRoots     []string `json:"missing_roots,omitempty"`
}

// WarningResponse represents a configuration warning.
type WarningResponse struct {
	Kind             string `json:"kind"`
	Code             string `json:"code,omitempty"`
	ChartNodeID      string `json:"chart_node_id,omitempty"`
	TrialBalanceCode string `json:"trial_balance_code,omitempty"`
	Message          string `json:"message"`
}

// ValidationSummaryResponse aggregates a run.
type ValidationSummaryResponse struct {
	MonthsValidated        int  `json:"months_validated"`
	MothersChecked         int  `json:"mothers_checked"`
	Inconsistencies        int  `json:"inconsistencies"`
	BalanceInconsistencies int  `json:"balance_inconsistencies"`
	Warnings               int  `json:"warnings"`
	AllConsistent          bool `json:"all_consistent"`
}

// ValidationRunResponse represents the response of a validation run.
type ValidationRunResponse struct {
	CompanyID       string                    `json:"company_id"`
	Year            int                       `json:"year"`
	Months          []int                     `json:"months"`
	Cached          bool                      `json:"cached"`
	Summary         ValidationSummaryResponse `json:"summary"`
	Findings        []FindingResponse         `json:"findings"`
	BalanceFindings []BalanceFindingResponse  `json:"balance_findings"`
	Warnings        []WarningResponse         `json:"warnings"`
}

// StatementLineResponse is one row of a statement.
type StatementLineResponse struct {
	ChartNodeID string `json:"chart_node_id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Level       int    `json:"level"`
	Nature      string `json:"nature"`
	Value       string `json:"value"`
}

// StatementResponse represents a monthly statement.
type StatementResponse struct {
	CompanyID string                  `json:"company_id"`
	Year      int                     `json:"year"`
	Month     int                     `json:"month"`
	Status    string                  `json:"status"`
	Lines     []StatementLineResponse `json:"lines"`
	Warnings  []WarningResponse       `json:"warnings"`
}

// ChartNodeResponse represents a chart-of-accounts node.
type ChartNodeResponse struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Level        int    `json:"level"`
	BusinessType string `json:"business_type"`
}

// LinkResponse represents a parametrization link in API responses.
type LinkResponse struct {
	ID                string             `json:"id"`
	ChartNodeID       string             `json:"chart_node_id"`
	ChartNode         *ChartNodeResponse `json:"chart_node,omitempty"`
	TrialBalanceCodes []string           `json:"trial_balance_codes"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// LinkListResponse represents the response for listing links.
type LinkListResponse struct {
	Links []LinkResponse `json:"links"`
}

// ToValidationRunResponse converts a validation run output to its DTO.
func ToValidationRunResponse(output *parametrization.RunValidationOutput) ValidationRunResponse {
	findings := make([]FindingResponse, 0, len(output.Findings))
	for _, f := range output.Findings {
		findings = append(findings, toFindingResponse(f))
	}

	balance := make([]BalanceFindingResponse, 0, len(output.BalanceFindings))
	for _, b := range output.BalanceFindings {
		balance = append(balance, BalanceFindingResponse{
			Month:            b.Month,
			Assets:           b.Assets.StringFixed(2),
			Liabilities:      b.Liabilities.StringFixed(2),
			Revenues:         b.Revenues.StringFixed(2),
			CostsAndExpenses: b.CostsAndExpenses.StringFixed(2),
			PatrimonialDelta: b.PatrimonialDelta.StringFixed(2),
			ResultDelta:      b.ResultDelta.StringFixed(2),
			Difference:       b.Difference.StringFixed(2),
			IsConsistent:     b.IsConsistent,
			MissingRoots:     b.MissingRoots,
		})
	}

	months := output.Months
	if months == nil {
		months = []int{}
	}

	return ValidationRunResponse{
		CompanyID: output.CompanyID.String(),
		Year:      output.Year,
		Months:    months,
		Cached:    output.Cached,
		Summary: ValidationSummaryResponse{
			MonthsValidated:        output.Summary.MonthsValidated,
			MothersChecked:         output.Summary.MothersChecked,
			Inconsistencies:        output.Summary.Inconsistencies,
			BalanceInconsistencies: output.Summary.BalanceInconsistencies,
			Warnings:               output.Summary.Warnings,
			AllConsistent:          output.Summary.AllConsistent,
		},
		Findings:        findings,
		BalanceFindings: balance,
		Warnings:        toWarningResponses(output.Warnings),
	}
}

func toFindingResponse(f valueobject.ValidationFinding) FindingResponse {
	children := make([]ChildContributionResponse, 0, len(f.Children))
	for _, child := range f.Children {
		children = append(children, ChildContributionResponse{
			ChartNodeID:       child.ChartNodeID.String(),
			Code:              child.Code,
			Name:              child.Name,
			Nature:            string(child.Nature),
			ParametrizedValue: child.ParametrizedValue.StringFixed(2),
		})
	}
	return FindingResponse{
		ChartNodeID:        f.ChartNodeID.String(),
		Code:               f.Code,
		Name:               f.Name,
		Level:              f.Level,
		Month:              f.Month,
		Nature:             string(f.Nature),
		ParametrizedValue:  f.ParametrizedValue.StringFixed(2),
		CalculatedValue:    f.CalculatedValue.StringFixed(2),
		AbsoluteDifference: f.AbsoluteDifference.StringFixed(2),
		Status:             string(f.Status),
		Children:           children,
	}
}

func toWarningResponses(warnings []valueobject.ConfigurationWarning) []WarningResponse {
	out := make([]WarningResponse, 0, len(warnings))
	for _, w := range warnings {
		resp := WarningResponse{
			Kind:             string(w.Kind),
			Code:             w.Code,
			TrialBalanceCode: w.TrialBalanceCode,
			Message:          w.Message,
		}
		if w.ChartNodeID != uuid.Nil {
			resp.ChartNodeID = w.ChartNodeID.String()
		}
		out = append(out, resp)
	}
	return out
}

// ToStatementResponse converts a statement output to its DTO.
func ToStatementResponse(output *parametrization.GetStatementOutput) StatementResponse {
	lines := make([]StatementLineResponse, 0, len(output.Lines))
	for _, l := range output.Lines {
		lines = append(lines, StatementLineResponse{
			ChartNodeID: l.ChartNodeID.String(),
			Code:        l.Code,
			Name:        l.Name,
			Level:       l.Level,
			Nature:      string(l.Nature),
			Value:       l.Value.StringFixed(2),
		})
	}
	return StatementResponse{
		CompanyID: output.CompanyID.String(),
		Year:      output.Year,
		Month:     output.Month,
		Status:    string(output.Status),
		Lines:     lines,
		Warnings:  toWarningResponses(output.Warnings),
	}
}

// ToChartNodeResponse converts a chart node to its DTO.
func ToChartNodeResponse(node *entity.ChartNode) *ChartNodeResponse {
	if node == nil {
		return nil
	}
	return &ChartNodeResponse{
		ID:           node.ID.String(),
		Code:         node.Code,
		Name:         node.Name,
		Level:        node.Level(),
		BusinessType: string(node.BusinessType),
	}
}

// ToLinkResponse converts a link and its optional chart node to a DTO.
func ToLinkResponse(link *entity.ParametrizationLink, node *entity.ChartNode) LinkResponse {
	codes := link.TrialBalanceCodes
	if codes == nil {
		codes = []string{}
	}
	return LinkResponse{
		ID:                link.ID.String(),
		ChartNodeID:       link.ChartNodeID.String(),
		ChartNode:         ToChartNodeResponse(node),
		TrialBalanceCodes: codes,
		CreatedAt:         link.CreatedAt,
		UpdatedAt:         link.UpdatedAt,
	}
}

// ToLinkListResponse converts listed links to a DTO.
func ToLinkListResponse(output *parametrization.ListLinksOutput) LinkListResponse {
	links := make([]LinkResponse, 0, len(output.Links))
	for _, view := range output.Links {
		links = append(links, ToLinkResponse(view.Link, view.ChartNode))
	}
	return LinkListResponse{Links: links}
}
