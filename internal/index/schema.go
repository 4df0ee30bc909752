package index

const SchemaVersion = 1

const schemaSQL = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

-- Validated principle documents
CREATE TABLE IF NOT EXISTS documents (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT UNIQUE NOT NULL,
    principle TEXT NOT NULL,
    title TEXT,
    content_hash TEXT,
    encoding TEXT DEFAULT 'utf-8',
    status TEXT DEFAULT 'error',
    missing TEXT,
    validated_at DATETIME,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_documents_path ON documents(path);
CREATE INDEX IF NOT EXISTS idx_documents_principle ON documents(principle);
CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status);
`

func GetSchema() string {
	return schemaSQL
}

func GetSchemaVersion() int {
	return SchemaVersion
}
