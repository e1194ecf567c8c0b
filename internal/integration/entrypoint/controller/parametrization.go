// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/accounting-office/backend/internal/application/usecase/parametrization"
	domainerror "github.com/accounting-office/backend/internal/domain/error"
	"github.com/accounting-office/backend/internal/integration/entrypoint/dto"
)

// ParametrizationController handles parametrization endpoints.
type ParametrizationController struct {
	runValidationUseCase *parametrization.RunValidationUseCase
	getStatementUseCase  *parametrization.GetStatementUseCase
	listLinksUseCase     *parametrization.ListLinksUseCase
	createLinkUseCase    *parametrization.CreateLinkUseCase
	deleteLinkUseCase    *parametrization.DeleteLinkUseCase
}

// NewParametrizationController creates a new parametrization controller instance.
func NewParametrizationController(
	runValidationUseCase *parametrization.RunValidationUseCase,
	getStatementUseCase *parametrization.GetStatementUseCase,
	listLinksUseCase *parametrization.ListLinksUseCase,
	createLinkUseCase *parametrization.CreateLinkUseCase,
	deleteLinkUseCase *parametrization.DeleteLinkUseCase,
) *ParametrizationController {
	return &ParametrizationController{
		runValidationUseCase: runValidationUseCase,
		getStatementUseCase:  getStatementUseCase,
		listLinksUseCase:     listLinksUseCase,
		createLinkUseCase:    createLinkUseCase,
		deleteLinkUseCase:    deleteLinkUseCase,
	}
}

// RunValidation handles GET /companies/:company_id/parametrization/validation requests.
// refresh=true bypasses the result cache.
func (c *ParametrizationController) RunValidation(ctx *gin.Context) {
	companyID, ok := c.companyIDParam(ctx)
	if !ok {
		return
	}

	year, ok := intQuery(ctx, "year", domainerror.ErrCodeInvalidYear)
	if !ok {
		return
	}

	refresh, _ := strconv.ParseBool(ctx.DefaultQuery("refresh", "false"))

	output, err := c.runValidationUseCase.Execute(ctx.Request.Context(), parametrization.RunValidationInput{
		CompanyID: companyID,
		Year:      year,
		SkipCache: refresh,
	})
	if err != nil {
		c.handleParametrizationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToValidationRunResponse(output))
}

// GetStatement handles GET /companies/:company_id/parametrization/statements requests.
func (c *ParametrizationController) GetStatement(ctx *gin.Context) {
	companyID, ok := c.companyIDParam(ctx)
	if !ok {
		return
	}

	year, ok := intQuery(ctx, "year", domainerror.ErrCodeInvalidYear)
	if !ok {
		return
	}
	month, ok := intQuery(ctx, "month", domainerror.ErrCodeInvalidMonth)
	if !ok {
		return
	}

	output, err := c.getStatementUseCase.Execute(ctx.Request.Context(), parametrization.GetStatementInput{
		CompanyID: companyID,
		Year:      year,
		Month:     month,
	})
	if err != nil {
		c.handleParametrizationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatementResponse(output))
}

// ListLinks handles GET /companies/:company_id/parametrization/links requests.
func (c *ParametrizationController) ListLinks(ctx *gin.Context) {
	companyID, ok := c.companyIDParam(ctx)
	if !ok {
		return
	}

	output, err := c.listLinksUseCase.Execute(ctx.Request.Context(), parametrization.ListLinksInput{
		CompanyID: companyID,
	})
	if err != nil {
		c.handleParametrizationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLinkListResponse(output))
}

// CreateLink handles POST /companies/:company_id/parametrization/links requests.
func (c *ParametrizationController) CreateLink(ctx *gin.Context) {
	companyID, ok := c.companyIDParam(ctx)
	if !ok {
		return
	}

	var req dto.CreateLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingLinkFields),
			Details: err.Error(),
		})
		return
	}

	chartNodeID, err := uuid.Parse(req.ChartNodeID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid chart node ID format",
			Code:  string(domainerror.ErrCodeMissingLinkFields),
		})
		return
	}

	output, err := c.createLinkUseCase.Execute(ctx.Request.Context(), parametrization.CreateLinkInput{
		CompanyID:         companyID,
		ChartNodeID:       chartNodeID,
		TrialBalanceCodes: req.TrialBalanceCodes,
	})
	if err != nil {
		c.handleParametrizationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToLinkResponse(output.Link, output.ChartNode))
}

// DeleteLink handles DELETE /companies/:company_id/parametrization/links/:id requests.
func (c *ParametrizationController) DeleteLink(ctx *gin.Context) {
	companyID, ok := c.companyIDParam(ctx)
	if !ok {
		return
	}

	linkID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid link ID format",
			Code:  string(domainerror.ErrCodeMissingLinkFields),
		})
		return
	}

	err = c.deleteLinkUseCase.Execute(ctx.Request.Context(), parametrization.DeleteLinkInput{
		CompanyID: companyID,
		LinkID:    linkID,
	})
	if err != nil {
		c.handleParametrizationError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *ParametrizationController) companyIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	companyID, err := uuid.Parse(ctx.Param("company_id"))
	if err != nil || companyID == uuid.Nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid company ID format",
			Code:  string(domainerror.ErrCodeCompanyRequired),
		})
		return uuid.Nil, false
	}
	return companyID, true
}

func intQuery(ctx *gin.Context, name string, code domainerror.ParametrizationErrorCode) (int, bool) {
	value, err := strconv.Atoi(ctx.Query(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Query parameter " + name + " must be an integer",
			Code:  string(code),
		})
		return 0, false
	}
	return value, true
}

// handleParametrizationError handles parametrization errors and returns appropriate HTTP responses.
func (c *ParametrizationController) handleParametrizationError(ctx *gin.Context, err error) {
	var prmErr *domainerror.ParametrizationError
	if errors.As(err, &prmErr) {
		statusCode := c.getStatusCodeForParametrizationError(prmErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: prmErr.Message,
			Code:  string(prmErr.Code),
		})
		return
	}

	slog.Error("Parametrization request failed", "error", err, "path", ctx.FullPath())
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeParametrizationInternal),
	})
}

// getStatusCodeForParametrizationError maps parametrization error codes to HTTP status codes.
func (c *ParametrizationController) getStatusCodeForParametrizationError(code domainerror.ParametrizationErrorCode) int {
	switch code {
	case domainerror.ErrCodeCompanyRequired,
		domainerror.ErrCodeInvalidYear,
		domainerror.ErrCodeInvalidMonth,
		domainerror.ErrCodeEmptyCodes,
		domainerror.ErrCodeMissingLinkFields,
		domainerror.ErrCodeInvalidChartNode:
		return http.StatusBadRequest
	case domainerror.ErrCodeChartNodeNotFound,
		domainerror.ErrCodeTrialBalanceNotFound,
		domainerror.ErrCodeChartOfAccountsEmpty,
		domainerror.ErrCodeLinkNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCodeAlreadyMapped:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
