package parametrization

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/accounting-office/backend/internal/application/adapter"
	"github.com/accounting-office/backend/internal/domain/entity"
	domainerror "github.com/accounting-office/backend/internal/domain/error"
)

type fakeChartRepo struct {
	nodes []*entity.ChartNode
	err   error
}

func (r *fakeChartRepo) FindAll(context.Context) ([]*entity.ChartNode, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.nodes, nil
}

func (r *fakeChartRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ChartNode, error) {
	for _, n := range r.nodes {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, domainerror.ErrChartNodeNotFound
}

func (r *fakeChartRepo) Create(_ context.Context, node *entity.ChartNode) error {
	r.nodes = append(r.nodes, node)
	return nil
}

func (r *fakeChartRepo) CreateBatch(_ context.Context, nodes []*entity.ChartNode) error {
	if r.err != nil {
		return r.err
	}
	r.nodes = append(r.nodes, nodes...)
	return nil
}

type fakeParametrizationRepo struct {
	mu    sync.Mutex
	links []*entity.ParametrizationLink
	err   error
}

func (r *fakeParametrizationRepo) FindByCompany(_ context.Context, companyID uuid.UUID) ([]*entity.ParametrizationLink, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ParametrizationLink
	for _, l := range r.links {
		if l.CompanyID == companyID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeParametrizationRepo) FindCodeOwners(_ context.Context, companyID uuid.UUID, codes []string) (map[string]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	owners := make(map[string]uuid.UUID)
	for _, l := range r.links {
		if l.CompanyID != companyID {
			continue
		}
		for _, c := range l.TrialBalanceCodes {
			for _, want := range codes {
				if c == want {
					owners[c] = l.ChartNodeID
				}
			}
		}
	}
	return owners, nil
}

func (r *fakeParametrizationRepo) Create(_ context.Context, link *entity.ParametrizationLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links = append(r.links, link)
	return nil
}

func (r *fakeParametrizationRepo) DeleteByID(_ context.Context, companyID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.links {
		if l.ID == id && l.CompanyID == companyID {
			r.links = append(r.links[:i], r.links[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrParametrizationLinkNotFound
}

type periodKey struct {
	year  int
	month int
}

type fakeTrialBalanceRepo struct {
	mu        sync.Mutex
	companyID uuid.UUID
	statuses  map[periodKey]entity.TrialBalanceStatus
	lines     map[periodKey][]*entity.TrialBalanceLine
	linesErr  error
	loaded    []periodKey
}

func newFakeTrialBalanceRepo(companyID uuid.UUID) *fakeTrialBalanceRepo {
	return &fakeTrialBalanceRepo{
		companyID: companyID,
		statuses:  make(map[periodKey]entity.TrialBalanceStatus),
		lines:     make(map[periodKey][]*entity.TrialBalanceLine),
	}
}

func (r *fakeTrialBalanceRepo) addMonth(year, month int, status entity.TrialBalanceStatus, lines ...*entity.TrialBalanceLine) {
	k := periodKey{year, month}
	r.statuses[k] = status
	for _, l := range lines {
		l.CompanyID = r.companyID
		l.Year = year
		l.Month = month
	}
	r.lines[k] = lines
}

func (r *fakeTrialBalanceRepo) FindEligibleMonths(_ context.Context, companyID uuid.UUID, year int) ([]int, error) {
	if companyID != r.companyID {
		return nil, nil
	}
	var months []int
	for m := 12; m >= 1; m-- {
		if s, ok := r.statuses[periodKey{year, m}]; ok && s.IsEligibleForValidation() {
			months = append(months, m)
		}
	}
	return months, nil
}

func (r *fakeTrialBalanceRepo) FindLines(_ context.Context, companyID uuid.UUID, year, month int) ([]*entity.TrialBalanceLine, error) {
	r.mu.Lock()
	r.loaded = append(r.loaded, periodKey{year, month})
	r.mu.Unlock()
	if r.linesErr != nil {
		return nil, r.linesErr
	}
	if companyID != r.companyID {
		return nil, nil
	}
	return r.lines[periodKey{year, month}], nil
}

func (r *fakeTrialBalanceRepo) FindByPeriod(_ context.Context, companyID uuid.UUID, year, month int) (*entity.TrialBalance, error) {
	s, ok := r.statuses[periodKey{year, month}]
	if !ok || companyID != r.companyID {
		return nil, domainerror.ErrTrialBalanceNotFound
	}
	tb := entity.NewTrialBalance(companyID, year, month)
	tb.Status = s
	return tb, nil
}

type fakeCache struct {
	reports     map[string]*adapter.ValidationReport
	sets        int
	invalidated []uuid.UUID
	clears      int
	getErr      error
}

func newFakeCache() *fakeCache {
	return &fakeCache{reports: make(map[string]*adapter.ValidationReport)}
}

func cacheKey(companyID uuid.UUID, year int) string {
	return companyID.String() + "/" + strconv.Itoa(year)
}

func (c *fakeCache) Get(_ context.Context, companyID uuid.UUID, year int) (*adapter.ValidationReport, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	r, ok := c.reports[cacheKey(companyID, year)]
	return r, ok, nil
}

func (c *fakeCache) Set(_ context.Context, report *adapter.ValidationReport, _ time.Duration) error {
	c.sets++
	c.reports[cacheKey(report.CompanyID, report.Year)] = report
	return nil
}

func (c *fakeCache) InvalidateCompany(_ context.Context, companyID uuid.UUID) error {
	c.invalidated = append(c.invalidated, companyID)
	for k, r := range c.reports {
		if r.CompanyID == companyID {
			delete(c.reports, k)
		}
	}
	return nil
}

func (c *fakeCache) InvalidateAll(context.Context) error {
	c.clears++
	c.reports = make(map[string]*adapter.ValidationReport)
	return nil
}

// fixture helpers

func node(code, name string, bt entity.BusinessType) *entity.ChartNode {
	return entity.NewChartNode(code, name, bt)
}

func line(code string, closing string) *entity.TrialBalanceLine {
	return &entity.TrialBalanceLine{
		ID:             uuid.New(),
		Code:           code,
		Name:           code,
		OpeningBalance: decimal.Zero,
		ClosingBalance: decimal.RequireFromString(closing),
	}
}

func link(companyID uuid.UUID, n *entity.ChartNode, codes ...string) *entity.ParametrizationLink {
	return entity.NewParametrizationLink(companyID, n.ID, codes)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
