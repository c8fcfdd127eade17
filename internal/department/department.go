package department

import (
	"context"

	departmentDatamodel "github.com/bccsims/asset-inventory/internal/core/datamodel/department"
)

// Department is a lookup row for the asset assignment forms.
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type RepositoryAPI interface {
	List(ctx context.Context) ([]*departmentDatamodel.Department, error)
}

func FromDataModelSlice(rows []*departmentDatamodel.Department) []*Department {
	result := make([]*Department, len(rows))
	for i, row := range rows {
		result[i] = &Department{ID: row.ID, Name: row.Name}
	}
	return result
}
