package filer

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/poet/db"
	"github.com/teranos/poet/errors"
	"github.com/teranos/poet/logger"
)

// Artifact statuses.
const (
	StatusCreated = "created"
	StatusWritten = "written"
)

// Artifact is one generated source file recorded in the manifest.
type Artifact struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Path      string    `json:"path" db:"path"`
	Status    string    `json:"status" db:"status"`
	Bytes     int64     `json:"bytes" db:"bytes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	Origins   []string  `json:"origins,omitempty"`
}

// Manifest tracks generated artifacts and the elements they came from, so a
// build tool can tell which outputs to regenerate when an input changes.
type Manifest struct {
	db  *sql.DB
	log *zap.SugaredLogger
	now func() time.Time
}

// NewManifest wraps an already migrated database.
func NewManifest(conn *sql.DB) *Manifest {
	return &Manifest{
		db:  conn,
		log: logger.ComponentLogger("poet.manifest"),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// OpenManifest opens (and migrates) the manifest database at path.
func OpenManifest(path string) (*Manifest, error) {
	conn, err := db.OpenWithMigrations(path, logger.ComponentLogger("poet.db"))
	if err != nil {
		return nil, errors.Wrap(err, "open manifest")
	}
	return NewManifest(conn), nil
}

// Close closes the underlying database.
func (m *Manifest) Close() error {
	return m.db.Close()
}

// Record stores a new artifact and its origins, replacing any artifact of the
// same name left by an earlier run.
func (m *Manifest) Record(a *Artifact) error {
	now := m.now()
	a.CreatedAt, a.UpdatedAt = now, now

	tx, err := m.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin record artifact")
	}
	if _, err := tx.Exec(`DELETE FROM artifacts WHERE name = ?`, a.Name); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "replace artifact %s", a.Name)
	}
	if _, err := tx.Exec(`
		INSERT INTO artifacts (id, name, path, status, bytes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Path, a.Status, a.Bytes, a.CreatedAt, a.UpdatedAt,
	); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "insert artifact %s", a.Name)
	}
	for _, element := range a.Origins {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO artifact_origins (artifact_id, element) VALUES (?, ?)`, a.ID, element); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "insert origin %s of %s", element, a.Name)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "commit artifact %s", a.Name)
	}

	m.log.Debugw("Artifact recorded",
		logger.FieldArtifact, a.ID,
		logger.FieldFile, a.Name,
		logger.FieldCount, len(a.Origins))
	return nil
}

// MarkWritten flags an artifact as fully written.
func (m *Manifest) MarkWritten(id string, bytes int64) error {
	res, err := m.db.Exec(`UPDATE artifacts SET status = ?, bytes = ?, updated_at = ? WHERE id = ?`,
		StatusWritten, bytes, m.now(), id)
	if err != nil {
		return errors.Wrapf(err, "mark artifact %s written", id)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.Newf("artifact %s not found", id)
	}
	return nil
}

// Remove deletes an artifact and its origins.
func (m *Manifest) Remove(id string) error {
	if _, err := m.db.Exec(`DELETE FROM artifacts WHERE id = ?`, id); err != nil {
		return errors.Wrapf(err, "remove artifact %s", id)
	}
	return nil
}

const artifactColumns = `a.id, a.name, a.path, a.status, a.bytes, a.created_at, a.updated_at`

// Artifacts lists every artifact ordered by name.
func (m *Manifest) Artifacts() ([]Artifact, error) {
	return m.query(`SELECT `+artifactColumns+` FROM artifacts a ORDER BY a.name`)
}

// ArtifactsFrom lists the artifacts generated from element.
func (m *Manifest) ArtifactsFrom(element string) ([]Artifact, error) {
	return m.query(`
		SELECT `+artifactColumns+`
		FROM artifacts a
		JOIN artifact_origins o ON o.artifact_id = a.id
		WHERE o.element = ?
		ORDER BY a.name`, element)
}

func (m *Manifest) query(q string, args ...interface{}) ([]Artifact, error) {
	rows, err := m.db.Query(q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query artifacts")
	}
	defer rows.Close()

	var out []Artifact
	for rows.Next() {
		var a Artifact
		if err := rows.Scan(&a.ID, &a.Name, &a.Path, &a.Status, &a.Bytes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "scan artifact")
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate artifacts")
	}

	for i := range out {
		origins, err := m.origins(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Origins = origins
	}
	return out, nil
}

func (m *Manifest) origins(id string) ([]string, error) {
	rows, err := m.db.Query(`SELECT element FROM artifact_origins WHERE artifact_id = ? ORDER BY element`, id)
	if err != nil {
		return nil, errors.Wrapf(err, "query origins of %s", id)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, errors.Wrap(err, "scan origin")
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
