package storage

const (
	GetRecordQuery = `
		SELECT value
		FROM extension_storage
		WHERE key = $1
	`

	UpsertRecordQuery = `
		INSERT INTO extension_storage (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
	`
)
