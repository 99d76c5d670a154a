package depot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xraph/depot/asset"
	"github.com/xraph/depot/assignment"
	"github.com/xraph/depot/id"
	"github.com/xraph/depot/plugin"
	"github.com/xraph/depot/store"
)

// Engine is the central asset search engine. It resolves the caller's
// visibility scope, runs the tiered matcher or the paged listing against
// the store, hydrates seat assignments, and fires plugin hooks.
type Engine struct {
	store   store.Store
	cache   Cache
	plugins *plugin.Registry
	logger  *slog.Logger
	config  Config
}

// NewEngine creates a new Depot engine with the given options.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		logger: slog.Default(),
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		return nil, ErrStoreRequired
	}
	return e, nil
}

// Store returns the underlying composite store.
func (e *Engine) Store() store.Store { return e.store }

// Plugins returns the plugin registry (may be nil).
func (e *Engine) Plugins() *plugin.Registry { return e.plugins }

// Start performs any startup initialization.
func (e *Engine) Start(_ context.Context) error { return nil }

// Stop performs graceful shutdown.
func (e *Engine) Stop(ctx context.Context) error {
	if e.plugins != nil {
		e.plugins.EmitShutdown(ctx)
	}
	return nil
}

// Search runs a scoped asset search. This is the hot path: the request is
// normalized, the caller's visibility is resolved, and then either the
// tiered matcher (free-text queries) or the paged listing (facets only)
// produces the page. Seat chips are hydrated onto the returned rows.
func (e *Engine) Search(ctx context.Context, caller *CallerIdentity, req SearchRequest) (*PagedResult[*asset.Row], error) {
	start := time.Now()
	req = Normalize(req)

	if e.plugins != nil {
		e.plugins.EmitBeforeSearch(ctx, &req)
	}

	scope, err := e.ResolveScope(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("depot scope: %w", err)
	}
	if e.plugins != nil {
		e.plugins.EmitScopeResolved(ctx, &scope)
	}

	result, err := e.page(ctx, scope, req)
	if err != nil {
		return nil, err
	}

	if err := e.hydrateSeats(ctx, result.Items); err != nil {
		return nil, fmt.Errorf("depot seats: %w", err)
	}

	e.logger.DebugContext(ctx, "search complete",
		"query", req.Query,
		"page", req.Page,
		"rows", len(result.Items),
		"total", result.Total,
		"duration", time.Since(start),
	)

	if e.plugins != nil {
		e.plugins.EmitAfterSearch(ctx, &req, result)
	}
	return result, nil
}

// ListAssets is the administrative listing path: no free text, wider page
// bounds than Search, facets and scope still applied. The request's Query
// is ignored.
func (e *Engine) ListAssets(ctx context.Context, caller *CallerIdentity, req SearchRequest) (*PagedResult[*asset.Row], error) {
	page, pageSize := NormalizePaging(req.Page, req.PageSize)
	req = Normalize(req)
	req.Query = ""
	req.Page, req.PageSize = page, pageSize

	scope, err := e.ResolveScope(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("depot scope: %w", err)
	}

	result, err := e.page(ctx, scope, req)
	if err != nil {
		return nil, err
	}
	if err := e.hydrateSeats(ctx, result.Items); err != nil {
		return nil, fmt.Errorf("depot seats: %w", err)
	}
	return result, nil
}

// page produces one result page for a normalized request under a resolved
// scope: empty for no-visibility callers, tiered matching for text
// queries, cached exact or look-ahead paging otherwise.
func (e *Engine) page(ctx context.Context, scope RoleScope, req SearchRequest) (*PagedResult[*asset.Row], error) {
	if scope.SeesNothing() {
		return &PagedResult[*asset.Row]{
			Items:    []*asset.Row{},
			Page:     req.Page,
			PageSize: req.PageSize,
			Total:    0,
		}, nil
	}

	base := asset.Query{
		Type:         req.Type,
		Status:       req.Status,
		ShowArchived: req.ShowArchived,
		Scope:        scope.Visibility(),
	}

	if req.HasQuery() {
		rows, total, err := e.runTiers(ctx, base, ExpandTerms(req.Query), req.Query, req.Page, req.PageSize)
		if err != nil {
			return nil, fmt.Errorf("depot search: %w", err)
		}
		return &PagedResult[*asset.Row]{
			Items:    rows,
			Page:     req.Page,
			PageSize: req.PageSize,
			Total:    total,
		}, nil
	}

	key := listCacheKey(scope, req)
	fetch := func(ctx context.Context, limit, offset int) ([]*asset.Row, error) {
		q := base
		q.Limit, q.Offset = limit, offset
		return e.store.SearchAssets(ctx, &q)
	}

	if req.Totals == TotalsLookahead {
		return PageLookahead(ctx, e.cache, key, req.Page, req.PageSize, e.config.pageTTL(), fetch)
	}
	return PageExact(ctx, e.cache, key, req.Page, req.PageSize, e.config.pageTTL(), fetch,
		func(ctx context.Context) (int64, error) {
			return e.store.CountAssets(ctx, &base)
		})
}

// listCacheKey identifies a faceted listing for the paging cache. Scope
// identity is part of the key so callers with different visibility never
// share pages.
func listCacheKey(scope RoleScope, req SearchRequest) string {
	who := "all"
	if !scope.AdminOrHelpDesk {
		who = "user:" + scope.UserID.String()
	}
	return fmt.Sprintf("assets:%s:type=%s:status=%s:archived=%t",
		who, req.Type, req.Status, req.ShowArchived)
}

// hydrateSeats attaches active seat-holder chips to the software rows of
// a rendered page. Hardware rows and pages without software are untouched.
func (e *Engine) hydrateSeats(ctx context.Context, rows []*asset.Row) error {
	var ids []id.SoftwareID
	seen := make(map[id.SoftwareID]bool)
	for _, r := range rows {
		if r.IsSoftware() && !seen[r.SoftwareID] {
			seen[r.SoftwareID] = true
			ids = append(ids, r.SoftwareID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	holders, err := e.store.ListActiveSeatHolders(ctx, ids)
	if err != nil {
		return err
	}

	seats := make(map[id.SoftwareID][]asset.SeatAssignment, len(ids))
	for _, h := range holders {
		seats[h.SoftwareID] = append(seats[h.SoftwareID], asset.SeatAssignment{
			UserID:         h.UserID,
			Name:           h.Name,
			EmployeeNumber: h.EmployeeNumber,
		})
	}
	for _, r := range rows {
		if r.IsSoftware() {
			r.Seats = seats[r.SoftwareID]
		}
	}
	return nil
}

// Assign opens a new assignment binding an asset to a user. Exactly one
// of HardwareID or SoftwareID must be set.
func (e *Engine) Assign(ctx context.Context, a *assignment.Assignment) error {
	if a.HardwareID.IsNil() == a.SoftwareID.IsNil() {
		return ErrAmbiguousAsset
	}
	if a.ID.IsNil() {
		a.ID = id.NewAssignmentID()
	}
	if a.AssignedAt.IsZero() {
		a.AssignedAt = time.Now().UTC()
	}
	if err := e.store.CreateAssignment(ctx, a); err != nil {
		return fmt.Errorf("depot assign: %w", err)
	}
	if e.plugins != nil {
		e.plugins.EmitAssetAssigned(ctx, a)
	}
	return nil
}

// Unassign closes an active assignment, stamping its end time.
func (e *Engine) Unassign(ctx context.Context, asgnID id.AssignmentID) error {
	if err := e.store.Unassign(ctx, asgnID, time.Now().UTC()); err != nil {
		return fmt.Errorf("depot unassign: %w", err)
	}
	if e.plugins != nil {
		e.plugins.EmitAssetUnassigned(ctx, asgnID)
	}
	return nil
}
