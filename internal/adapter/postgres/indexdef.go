package postgres

import (
	"fmt"
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"
)

// parseIndexColumns recovers the ordered column sequence from a
// pg_get_indexdef() statement using PostgreSQL's actual parser. Plain
// column elements yield their name; expression elements (e.g.
// lower(email)) are deparsed back to SQL text so the sequence stays
// order-sensitive and comparable.
func parseIndexColumns(indexdef string) ([]string, error) {
	tree, err := pg_query.Parse(indexdef)
	if err != nil {
		return nil, fmt.Errorf("parsing index definition: %w", err)
	}
	if len(tree.Stmts) != 1 {
		return nil, fmt.Errorf("index definition is not a single statement: %q", indexdef)
	}

	stmt := tree.Stmts[0].GetStmt().GetIndexStmt()
	if stmt == nil {
		return nil, fmt.Errorf("index definition is not CREATE INDEX: %q", indexdef)
	}

	cols := make([]string, 0, len(stmt.IndexParams))
	for _, param := range stmt.IndexParams {
		elem := param.GetIndexElem()
		if elem == nil {
			continue
		}
		if elem.Name != "" {
			cols = append(cols, elem.Name)
			continue
		}
		expr, err := deparseExpr(elem.Expr)
		if err != nil {
			return nil, err
		}
		cols = append(cols, expr)
	}
	return cols, nil
}

// deparseExpr renders an expression node back to SQL by deparsing it as
// the sole target of a synthetic SELECT.
func deparseExpr(expr *pg_query.Node) (string, error) {
	if expr == nil {
		return "", fmt.Errorf("index element has neither name nor expression")
	}

	sel := &pg_query.ParseResult{
		Stmts: []*pg_query.RawStmt{{
			Stmt: &pg_query.Node{Node: &pg_query.Node_SelectStmt{
				SelectStmt: &pg_query.SelectStmt{
					TargetList: []*pg_query.Node{{Node: &pg_query.Node_ResTarget{
						ResTarget: &pg_query.ResTarget{Val: expr},
					}}},
					Op:          pg_query.SetOperation_SETOP_NONE,
					LimitOption: pg_query.LimitOption_LIMIT_OPTION_DEFAULT,
				},
			}},
		}},
	}

	out, err := pg_query.Deparse(sel)
	if err != nil {
		return "", fmt.Errorf("deparsing index expression: %w", err)
	}
	return strings.TrimPrefix(out, "SELECT "), nil
}
