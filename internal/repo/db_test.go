package repo

import (
	"testing"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func TestPaginateRendersPostgresLimitOffset(t *testing.T) {
	where := map[string]interface{}{
		"patient_id": int64(7),
		"_orderby":   "consultation_date desc, id desc",
	}
	sqlStr, args, err := builder.BuildSelect("consultation_records", where, nil)
	require.NoError(t, err)

	sqlStr, args = paginate(sqlStr, args, 2, 20)
	bound := sqlx.Rebind(sqlx.DOLLAR, sqlStr)

	require.Equal(t,
		"SELECT * FROM consultation_records WHERE (patient_id=$1) ORDER BY consultation_date desc, id desc LIMIT $2 OFFSET $3",
		bound)
	require.NotContains(t, bound, ",$", "MySQL-style LIMIT x,y is not valid Postgres")
	require.Equal(t, []interface{}{int64(7), 20, 20}, args)
}

func TestPaginateClampsNegativeOffset(t *testing.T) {
	sqlStr, args := paginate("SELECT * FROM patients", nil, 0, 20)
	require.Equal(t, "SELECT * FROM patients LIMIT ? OFFSET ?", sqlStr)
	require.Equal(t, []interface{}{20, 0}, args)
}
