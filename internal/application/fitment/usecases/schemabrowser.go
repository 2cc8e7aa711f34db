package usecases

import (
	"context"
	"sort"
	"strings"

	"github.com/orris-inc/fitment/internal/domain/fitment"
	"github.com/orris-inc/fitment/internal/shared/logger"
	"github.com/orris-inc/fitment/internal/shared/query"
)

// SchemaBrowserUseCase lists and previews the project's tables and views.
type SchemaBrowserUseCase struct {
	repo    fitment.Repository
	allowed map[string]struct{}
	logger  logger.Interface
}

func NewSchemaBrowserUseCase(repo fitment.Repository, logger logger.Interface) *SchemaBrowserUseCase {
	allowed := make(map[string]struct{}, len(fitment.ProjectTables)+len(fitment.ProjectViews))
	for _, name := range append(append([]string{}, fitment.ProjectTables...), fitment.ProjectViews...) {
		allowed[strings.ToUpper(name)] = struct{}{}
	}
	return &SchemaBrowserUseCase{
		repo:    repo,
		allowed: allowed,
		logger:  logger,
	}
}

// ListTables returns the catalog objects that belong to the project, sorted by name.
func (uc *SchemaBrowserUseCase) ListTables(ctx context.Context) ([]string, error) {
	names, err := uc.repo.SchemaObjects(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load tables", "error", err)
		return nil, err
	}

	filtered := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := uc.allowed[strings.ToUpper(name)]; ok {
			filtered = append(filtered, name)
		}
	}
	sort.Strings(filtered)
	return filtered, nil
}

// Preview returns the first rows of a project table or view. Only names present in the
// catalog listing reach the query.
func (uc *SchemaBrowserUseCase) Preview(ctx context.Context, name string) *fitment.Table {
	name = strings.TrimSpace(name)
	if query.IsUnset(name) {
		return fitment.MessageTable(MsgSelectTable)
	}

	tables, err := uc.ListTables(ctx)
	if err != nil {
		return fitment.ErrorTable(err)
	}

	var resolved string
	for _, t := range tables {
		if strings.EqualFold(t, name) {
			resolved = t
			break
		}
	}
	if resolved == "" {
		uc.logger.Warnw("preview of unknown table rejected", "table", name)
		return fitment.ErrorText(msgTableNotFound(name))
	}

	table, err := uc.repo.Preview(ctx, resolved)
	if err != nil {
		uc.logger.Errorw("failed to preview table/view", "table", resolved, "error", err)
		return fitment.ErrorTable(err)
	}
	if table.IsEmpty() {
		return fitment.MessageTable(msgTableEmpty(name))
	}
	return table
}
