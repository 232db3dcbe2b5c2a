package sqlxrepos

import (
	"database/sql"
	"strings"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/trezcool/escola/core"
)

// trapErr maps driver errors onto core errors: no rows to NotFound, unique violations to
// DuplicateKey and anything else to a StoreError described by op.
func trapErr(err error, entity, key, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return core.NewNotFoundError(entity, key)
	}
	if isUniqueViolation(err) {
		return core.NewDuplicateKeyError(entity, key)
	}
	return core.NewStoreError(err, op)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == "unique_violation"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(code == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE"))
	}
	return false
}

// rowsAffected reads the affected rows count of res.
func rowsAffected(res sql.Result, op string) (int, error) {
	cnt, err := res.RowsAffected()
	if err != nil {
		return 0, core.NewStoreError(err, op)
	}
	return int(cnt), nil
}

func orderBy(ordering []core.DBOrdering, allowed map[string]string, fallback string) []string {
	clauses := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		col, ok := allowed[ord.Field]
		if !ok {
			continue
		}
		ord.Field = col
		clauses = append(clauses, ord.String())
	}
	if len(clauses) == 0 {
		clauses = append(clauses, fallback)
	}
	return clauses
}
