package persistence

import (
	"strings"

	"github.com/erp/lpcore/internal/domain/shared"
)

// ValidateSortOrder normalizes a sort direction to ASC or DESC. Anything else is DESC.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when allowed lists it, else defaultField.
// Column names reach ORDER BY only through here.
func ValidateSortField(sortField string, allowed map[string]bool, defaultField string) string {
	field := strings.ToLower(strings.TrimSpace(sortField))
	if allowed[field] {
		return field
	}
	return defaultField
}

// StatusAuditSortFields are the sortable status_audit columns
var StatusAuditSortFields = map[string]bool{
	"changed_at": true,
	"field":      true,
}

// statusAuditOrder builds the ORDER BY clauses for an audit listing. Entries
// written by one unit of work share changed_at, so id (time ordered) breaks ties.
func statusAuditOrder(filter shared.Filter) []string {
	field := ValidateSortField(filter.OrderBy, StatusAuditSortFields, "changed_at")
	dir := ValidateSortOrder(filter.OrderDir)
	if field == "changed_at" {
		return []string{"changed_at " + dir, "id " + dir}
	}
	return []string{field + " " + dir, "changed_at DESC", "id DESC"}
}
