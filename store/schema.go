package store

// SchemaSQL is the complete schema for fresh installs. Single source of
// truth: tests open in-memory databases with this schema rather than
// hardcoding their own CREATE TABLE statements.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	organization_id TEXT NOT NULL,
	name TEXT NOT NULL,
	building_reference TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS quotes (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	organization_id TEXT NOT NULL,
	number TEXT NOT NULL,
	client_name TEXT,
	status TEXT NOT NULL DEFAULT 'draft',
	total REAL NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS quote_line_items (
	id TEXT PRIMARY KEY,
	quote_id TEXT NOT NULL,
	description TEXT NOT NULL,
	product_id TEXT,
	quantity REAL NOT NULL DEFAULT 1,
	unit_price REAL NOT NULL DEFAULT 0,
	position INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (quote_id) REFERENCES quotes(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS manufacturers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id TEXT PRIMARY KEY,
	code TEXT NOT NULL,
	name TEXT NOT NULL,
	pillar TEXT,
	manufacturer_id TEXT,
	specifications TEXT NOT NULL DEFAULT '{}',
	certifications TEXT NOT NULL DEFAULT '[]',
	FOREIGN KEY (manufacturer_id) REFERENCES manufacturers(id)
);

CREATE TABLE IF NOT EXISTS regulations (
	id TEXT PRIMARY KEY,
	reference TEXT NOT NULL,
	name TEXT NOT NULL,
	category TEXT
);

CREATE TABLE IF NOT EXISTS product_regulations (
	product_id TEXT NOT NULL,
	regulation_id TEXT NOT NULL,
	compliance_notes TEXT,
	test_evidence_ref TEXT,
	PRIMARY KEY (product_id, regulation_id),
	FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE,
	FOREIGN KEY (regulation_id) REFERENCES regulations(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS product_files (
	id TEXT PRIMARY KEY,
	product_id TEXT NOT NULL,
	name TEXT NOT NULL,
	file_type TEXT NOT NULL,
	size_bytes INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS golden_thread_packages (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	organization_id TEXT NOT NULL,
	package_reference TEXT NOT NULL,
	score INTEGER NOT NULL DEFAULT 0,
	generated_at DATETIME NOT NULL,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS golden_thread_audit (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	package_reference TEXT NOT NULL,
	action TEXT NOT NULL,
	actor TEXT,
	timestamp DATETIME NOT NULL,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_quotes_project ON quotes(project_id);
CREATE INDEX IF NOT EXISTS idx_line_items_quote ON quote_line_items(quote_id);
CREATE INDEX IF NOT EXISTS idx_audit_project ON golden_thread_audit(project_id);
`
