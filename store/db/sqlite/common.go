package sqlite

import (
	"strings"
)

func joinAnd(conditions []string) string {
	return strings.Join(conditions, " AND ")
}
