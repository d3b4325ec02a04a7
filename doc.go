// Package mysqlb is a fluent MySQL statement builder.
//
// A Client owns one lazily opened connection and hands out per-table
// queries. Clauses accumulate on the query and are compiled into a single
// parameterized statement when a terminal method runs:
//
//	cfg, err := mysqlb.LoadConfig("db.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := mysqlb.Open(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	page, err := client.Use("users").
//	    Where("age", ">=", 18).
//	    LeftJoin("professions", "id", "user_id").
//	    OrderBy("id", "desc").
//	    Paginate(ctx, 20, 1)
//
// The builder itself lives in package dialect/sql and works with any
// dialect.ExecQuerier.
package mysqlb
