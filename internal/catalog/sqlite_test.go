package catalog

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "films.db"), testRand())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteSeedAndQuery(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, s.Seed(ctx, testRecords()))

	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	names, err := s.ListFilmNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Heat", "Inception", "Interstellar"}, names)

	ids, err := s.ListFilmIdentifiers(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2", "3"}, ids)

	f, err := s.GetFilmDetails(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Inception", f.Title)
	assert.Equal(t, "/p/1.jpg", f.PosterImage)
	assert.Equal(t, testRecords()[0].Actors, f.ActorImages, "actor order must follow position")
}

func TestSQLiteSeedIsIdempotent(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx, testRecords()))
	updated := testRecords()
	updated[0].Title = "Inception (2010)"
	require.NoError(t, s.Seed(ctx, updated))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	f, err := s.GetFilmDetails(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Inception (2010)", f.Title)
	assert.Len(t, f.ActorImages, 5)
}

func TestSQLiteSeedRejectsInvalid(t *testing.T) {
	s := openTestSQLite(t)
	bad := testRecords()
	bad[1].Poster = ""
	assert.Error(t, s.Seed(context.Background(), bad))

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSQLiteNotFoundAndEmpty(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	_, err := s.GetFilmDetails(ctx, "404")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetRandomFilm(ctx)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestSQLiteRandomFilm(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx, testRecords()))

	titles := map[string]bool{"Inception": true, "Interstellar": true, "Heat": true}
	for i := 0; i < 10; i++ {
		f, err := s.GetRandomFilm(ctx)
		require.NoError(t, err)
		assert.True(t, titles[f.Title], f.Title)
	}
}

func TestSQLiteReopenKeepsMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "films.db")
	s, err := OpenSQLite(path, testRand())
	require.NoError(t, err)
	require.NoError(t, s.Seed(context.Background(), testRecords()))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path, testRand())
	require.NoError(t, err)
	defer s.Close()

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestMigrateRollsBackFailedScript(t *testing.T) {
	db, err := openDB(filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	fsys := fstest.MapFS{
		"001_ok.sql":  {Data: []byte(`CREATE TABLE a (x INTEGER);`)},
		"002_bad.sql": {Data: []byte(`CREATE TABLE b (x INTEGER); INSERT INTO missing VALUES (1);`)},
	}
	err = migrate(db, fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "002_bad.sql")

	applied, err := queryNames(db, `SELECT name FROM _migrations ORDER BY name`)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_ok.sql"}, applied)

	tables, err := queryNames(db, `SELECT name FROM sqlite_master WHERE type='table' AND name IN ('a','b') ORDER BY name`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, tables, "partial script must not leave table b behind")

	// Fixing the script lets the next run pick it up.
	fsys["002_bad.sql"] = &fstest.MapFile{Data: []byte(`CREATE TABLE b (x INTEGER);`)}
	require.NoError(t, migrate(db, fsys))
	applied, err = queryNames(db, `SELECT name FROM _migrations ORDER BY name`)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_ok.sql", "002_bad.sql"}, applied)
}

func queryNames(db *sql.DB, query string) ([]string, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
