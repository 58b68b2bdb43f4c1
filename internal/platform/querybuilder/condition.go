package querybuilder

type Condition interface {
	writeTo(w *writer)
}

type compareCondition struct {
	column string
	op     string
	value  any
}

func (c compareCondition) writeTo(w *writer) {
	w.raw(c.column, " ", c.op, " ")
	w.bind(c.value)
}

func Eq(column string, value any) Condition {
	return compareCondition{column: column, op: "=", value: value}
}

func Ne(column string, value any) Condition {
	return compareCondition{column: column, op: "<>", value: value}
}

func Gt(column string, value any) Condition {
	return compareCondition{column: column, op: ">", value: value}
}

type inCondition struct {
	column string
	values []any
}

func In(column string, values ...any) Condition {
	return inCondition{column: column, values: values}
}

func (c inCondition) writeTo(w *writer) {
	if len(c.values) == 0 {
		w.raw("1=0")
		return
	}
	w.raw(c.column, " IN (")
	for i, v := range c.values {
		if i > 0 {
			w.raw(", ")
		}
		w.bind(v)
	}
	w.raw(")")
}

type nullCondition struct {
	column string
	not    bool
}

func IsNull(column string) Condition {
	return nullCondition{column: column}
}

func IsNotNull(column string) Condition {
	return nullCondition{column: column, not: true}
}

func (c nullCondition) writeTo(w *writer) {
	if c.not {
		w.raw(c.column, " IS NOT NULL")
		return
	}
	w.raw(c.column, " IS NULL")
}

type exprCondition struct {
	expr string
	args []any
}

// Expr embeds a raw expression; ? marks bind args in order.
func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) writeTo(w *writer) {
	w.expr(c.expr, c.args)
}
