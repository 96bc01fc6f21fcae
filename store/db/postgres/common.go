package postgres

import (
	"fmt"
	"strings"
)

// placeholder returns a positional placeholder for PostgreSQL (uses $1, $2, ...).
func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

func joinAnd(conditions []string) string {
	return strings.Join(conditions, " AND ")
}
