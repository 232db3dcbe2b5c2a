package sqlxrepos

import (
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/escola/core"
)

func Test_trapErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want core.ErrorKind
	}{
		{name: "nil", err: nil, want: core.KindNone},
		{name: "no rows", err: sql.ErrNoRows, want: core.KindNotFound},
		{name: "wrapped no rows", err: errors.Wrap(sql.ErrNoRows, "scan"), want: core.KindNotFound},
		{name: "postgres unique violation", err: &pq.Error{Code: "23505"}, want: core.KindDuplicateKey},
		{name: "postgres foreign key violation", err: &pq.Error{Code: "23503"}, want: core.KindStore},
		{name: "anything else", err: errors.New("disk I/O error"), want: core.KindStore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := trapErr(tt.err, "student", "2024001", "testing")
			assert.Equal(t, tt.want, core.KindOf(err))
		})
	}
}

func Test_orderBy(t *testing.T) {
	allowed := map[string]string{"name": "name", "enrollment": "enrollment_code"}

	tests := []struct {
		name     string
		ordering []core.DBOrdering
		want     []string
	}{
		{name: "empty uses fallback", want: []string{"name ASC"}},
		{
			name:     "maps field names",
			ordering: []core.DBOrdering{{Field: "enrollment"}, {Field: "name", Ascending: true}},
			want:     []string{"enrollment_code DESC", "name ASC"},
		},
		{
			name:     "drops unknown fields",
			ordering: []core.DBOrdering{{Field: "password; DROP TABLE students", Ascending: true}},
			want:     []string{"name ASC"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderBy(tt.ordering, allowed, "name ASC"))
		})
	}
}
