package database

type migration struct {
	id   int
	name string
	sql  string
}

var migrations = []migration{
	{
		id:   1,
		name: "initial_schema",
		sql: `
			-- Saves table: one row per save slot, snapshot stored in the
			-- line-oriented scenario format.
			CREATE TABLE saves (
				id TEXT PRIMARY KEY,
				slot INTEGER UNIQUE NOT NULL,
				name TEXT NOT NULL,
				turn INTEGER NOT NULL,
				current_empire INTEGER NOT NULL,
				snapshot TEXT NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX idx_saves_slot ON saves(slot);
		`,
	},
}
