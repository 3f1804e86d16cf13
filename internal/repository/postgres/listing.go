package postgres

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"ledgerbook/internal/domain"
)

// listSpec describes how a table can be filtered and ordered by list
// endpoints. Only columns present in sortColumns may be used for ordering.
type listSpec struct {
	sortColumns map[string]string
	defaultSort string
	searchCols  []string
	dateCol     string
}

func (s listSpec) where(businessID uuid.UUID, q domain.ListQuery) sq.And {
	conds := sq.And{sq.Eq{"business_id": businessID}}

	if term := strings.TrimSpace(q.Search); term != "" && len(s.searchCols) > 0 {
		pattern := "%" + escapeLike(term) + "%"
		or := sq.Or{}
		for _, col := range s.searchCols {
			or = append(or, sq.ILike{col: pattern})
		}
		conds = append(conds, or)
	}
	if s.dateCol != "" {
		if q.From != nil {
			conds = append(conds, sq.GtOrEq{s.dateCol: *q.From})
		}
		if q.To != nil {
			conds = append(conds, sq.LtOrEq{s.dateCol: *q.To})
		}
	}
	return conds
}

func (s listSpec) orderBy(q domain.ListQuery) (string, error) {
	col := s.defaultSort
	if q.Sort != "" {
		mapped, ok := s.sortColumns[q.Sort]
		if !ok {
			return "", domain.ErrInvalidSortField
		}
		col = mapped
	}
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	return col + " " + dir + ", id " + dir, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
