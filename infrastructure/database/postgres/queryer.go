package postgres

import (
	"context"
	"database/sql"
)

// Queryer abstrai a execução de comandos SQL, permitindo que os repositórios
// funcionem tanto sobre a conexão quanto dentro de uma transação
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (sql.Result, error)
	Query(ctx context.Context, sql string, args ...any) (*sql.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) *sql.Row
}
