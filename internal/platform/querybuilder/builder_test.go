package querybuilder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "status").
		From("events").
		Where(Eq("room_id", int64(3)), In("status", 0, 1), IsNull("format_id")).
		OrderBy("inserted_at DESC", "id DESC").
		Limit(1).
		ForUpdate().
		ToSQL()
	require.NoError(t, err)

	wantQuery := "SELECT id, status FROM events WHERE room_id = $1 AND status IN ($2, $3) AND format_id IS NULL ORDER BY inserted_at DESC, id DESC LIMIT 1 FOR UPDATE"
	assert.Equal(t, wantQuery, query)
	assert.Equal(t, []any{int64(3), 0, 1}, args)
}

func TestSelectBuilder_ExprPlaceholders(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	query, args, err := Select("COUNT(*)").
		From("ratings").
		Where(Eq("user_id", int64(9)), Expr("(inserted_at, id) > (?, ?)", at, int64(12))).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM ratings WHERE user_id = $1 AND (inserted_at, id) > ($2, $3)", query)
	assert.Equal(t, []any{int64(9), at, int64(12)}, args)
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("users").
		Columns("external_id", "name").
		Values("u1", "name-1").
		Suffix("RETURNING id").
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO users (external_id, name) VALUES ($1, $2) RETURNING id", query)
	assert.Equal(t, []any{"u1", "name-1"}, args)
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("users").Columns("a", "b").Values(1).ToSQL()
	assert.Error(t, err)
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("events").
		Set("status", 2).
		SetExpr("updated_at", "GREATEST(updated_at, ?)", "t").
		Where(Eq("id", int64(1)), Ne("status", 2)).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE events SET status = $1, updated_at = GREATEST(updated_at, $2) WHERE id = $3 AND status <> $4", query)
	assert.Equal(t, []any{2, "t", int64(1), 2}, args)
}

func TestDeleteBuilder_RequiresCondition(t *testing.T) {
	_, _, err := DeleteFrom("participants").ToSQL()
	assert.Error(t, err)

	query, args, err := DeleteFrom("participants").Where(Eq("event_id", 1), Eq("user_id", 2)).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM participants WHERE event_id = $1 AND user_id = $2", query)
	assert.Equal(t, []any{1, 2}, args)
}

type sampleModel struct {
	Name    string `db:"name"`
	Skipped string `db:"-"`
	Count   int    `db:"count,omitempty"`
	hidden  int    `db:"hidden"`
}

func TestInsertAndUpdateModel(t *testing.T) {
	model := sampleModel{Name: "FFA", Skipped: "x", Count: 3, hidden: 1}
	_ = model.hidden

	query, args, err := InsertModel("event_formats", model, "RETURNING *")
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO event_formats (name, count) VALUES ($1, $2) RETURNING *", query)
	assert.Equal(t, []any{"FFA", 3}, args)

	query, args, err = UpdateModel("event_formats", &model, Eq("id", int64(5)))
	require.NoError(t, err)
	assert.Equal(t, "UPDATE event_formats SET name = $1, count = $2 WHERE id = $3", query)
	assert.Equal(t, []any{"FFA", 3, int64(5)}, args)

	_, _, err = InsertModel("x", 5, "")
	assert.Error(t, err)
}
