// Package parametrization contains the parametrization consistency use cases.
package parametrization

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/accounting-office/backend/internal/application/adapter"
	"github.com/accounting-office/backend/internal/domain/entity"
	domainerror "github.com/accounting-office/backend/internal/domain/error"
)

// ListLinksInput represents the input for listing a company's links.
type ListLinksInput struct {
	CompanyID uuid.UUID
}

// LinkView is a link joined with its chart node. ChartNode is nil when the
// link points at a node missing from the catalog.
type LinkView struct {
	Link      *entity.ParametrizationLink
	ChartNode *entity.ChartNode
}

// ListLinksOutput represents the output of listing links.
type ListLinksOutput struct {
	Links []LinkView
}

// ListLinksUseCase handles listing parametrization links.
type ListLinksUseCase struct {
	chartRepo           adapter.ChartOfAccountsRepository
	parametrizationRepo adapter.ParametrizationRepository
}

// NewListLinksUseCase creates a new ListLinksUseCase instance.
func NewListLinksUseCase(chartRepo adapter.ChartOfAccountsRepository, parametrizationRepo adapter.ParametrizationRepository) *ListLinksUseCase {
	return &ListLinksUseCase{
		chartRepo:           chartRepo,
		parametrizationRepo: parametrizationRepo,
	}
}

// Execute lists the links ordered by chart code. Links to unknown nodes
// are listed last.
func (uc *ListLinksUseCase) Execute(ctx context.Context, input ListLinksInput) (*ListLinksOutput, error) {
	if input.CompanyID == uuid.Nil {
		return nil, domainerror.NewParametrizationError(
			domainerror.ErrCodeCompanyRequired,
			"company id is required",
			domainerror.ErrCompanyRequired,
		)
	}

	nodes, err := uc.chartRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	catalog, _ := NewCatalog(nodes)

	links, err := uc.parametrizationRepo.FindByCompany(ctx, input.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load parametrization links: %w", err)
	}

	views := make([]LinkView, 0, len(links))
	for _, link := range links {
		node, _ := catalog.ByID(link.ChartNodeID)
		views = append(views, LinkView{Link: link, ChartNode: node})
	}
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i].ChartNode, views[j].ChartNode
		switch {
		case a == nil && b == nil:
			return views[i].Link.ID.String() < views[j].Link.ID.String()
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return entity.CompareCodes(a.Code, b.Code) < 0
	})

	return &ListLinksOutput{Links: views}, nil
}
