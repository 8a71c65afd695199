package postgres

// queryListTables enumerates user tables in one schema, in name order.
// $1 = schema.
const queryListTables = `
	SELECT t.table_name
	FROM information_schema.tables t
	WHERE t.table_schema = $1
		AND t.table_type = 'BASE TABLE'
	ORDER BY t.table_name`

// queryColumns fetches column definitions in ordinal order.
// $1 = schema, $2 = table_name.
const queryColumns = `
	SELECT
		c.column_name,
		c.data_type,
		c.is_nullable = 'YES'
	FROM information_schema.columns c
	WHERE c.table_schema = $1 AND c.table_name = $2
	ORDER BY c.ordinal_position`

// queryPrimaryKeys fetches primary-key member columns.
// $1 = schema, $2 = table_name.
const queryPrimaryKeys = `
	SELECT a.attname
	FROM pg_index i
	JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = ANY(i.indkey)
	WHERE i.indrelid = (quote_ident($1) || '.' || quote_ident($2))::regclass
		AND i.indisprimary`

// queryForeignKeys fetches declared single-column foreign-key constraints.
// $1 = schema, $2 = table_name.
const queryForeignKeys = `
	SELECT
		kcu.column_name,
		ccu.table_name AS referenced_table,
		ccu.column_name AS referenced_column
	FROM information_schema.table_constraints tc
	JOIN information_schema.key_column_usage kcu
		ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema
	JOIN information_schema.constraint_column_usage ccu
		ON tc.constraint_name = ccu.constraint_name AND tc.table_schema = ccu.table_schema
	WHERE tc.constraint_type = 'FOREIGN KEY'
		AND tc.table_schema = $1
		AND tc.table_name = $2
	ORDER BY kcu.column_name`

// queryIndexes fetches index definitions; indexdef is parsed to recover
// the ordered column sequence. $1 = schema, $2 = table_name.
const queryIndexes = `
	SELECT
		pgi.indexname,
		pgi.indexdef,
		i.indisunique
	FROM pg_indexes pgi
	JOIN pg_class c ON c.relname = pgi.indexname
	JOIN pg_index i ON i.indexrelid = c.oid
	WHERE pgi.schemaname = $1 AND pgi.tablename = $2
	ORDER BY pgi.indexname`
