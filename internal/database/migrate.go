// File: internal/database/migrate.go
package database

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"

	"docuchat/internal/domain"
	"docuchat/internal/services"
)

// schemaMigration is one row in the version-marker table.
type schemaMigration struct {
	Version   int `gorm:"primarykey"`
	Name      string
	AppliedAt time.Time
}

func (schemaMigration) TableName() string { return "schema_migrations" }

type migration struct {
	version int
	name    string
	run     func(tx *gorm.DB, log services.Logger) error
}

// The ordered migration list. Early installations created the chats and pdfs
// tables without cascade rules and stored uploads on disk; later versions
// retrofit ON DELETE CASCADE, add projects, and move file bytes inline.
// Each step guards on current schema state, so replaying against an
// up-to-date database is a no-op.
var migrations = []migration{
	{1, "create chats and pdfs tables", createBaseTables},
	{2, "retrofit cascade delete onto pdfs", retrofitAttachmentCascade},
	{3, "add projects and chat filing", addProjects},
	{4, "store attachment content inline", inlineAttachmentContent},
}

// Migrate brings the schema up to date, applying pending migrations in
// order inside transactions and recording each in schema_migrations.
// Existing rows are never dropped; table rebuilds copy data across.
//
// SQLite cannot alter constraints in place, so rebuild steps run with
// foreign_keys off (restored afterwards). The caller must keep the
// connection pool at a single connection so the pragma sticks.
func Migrate(db *gorm.DB, log services.Logger) error {
	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	if err := db.Exec("PRAGMA foreign_keys = OFF").Error; err != nil {
		return fmt.Errorf("disable foreign keys: %w", err)
	}
	defer db.Exec("PRAGMA foreign_keys = ON")

	for _, m := range migrations {
		var count int64
		if err := db.Model(&schemaMigration{}).Where("version = ?", m.version).Count(&count).Error; err != nil {
			return fmt.Errorf("read schema_migrations: %w", err)
		}
		if count > 0 {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.run(tx, log); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{Version: m.version, Name: m.name, AppliedAt: time.Now().UTC()}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		log.Info("applied schema migration", "version", m.version, "name", m.name)
	}
	return nil
}

// createBaseTables creates the two original tables in their first-release
// shape. IF NOT EXISTS keeps it a no-op on legacy databases that already
// carry them.
func createBaseTables(tx *gorm.DB, _ services.Logger) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS chats (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT DEFAULT 'Untitled',
			messages TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS pdfs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			chat_id INTEGER,
			filename TEXT,
			filepath TEXT,
			uploaded_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			mimetype TEXT,
			FOREIGN KEY (chat_id) REFERENCES chats(id)
		)`,
	}
	for _, s := range stmts {
		if err := tx.Exec(s).Error; err != nil {
			return err
		}
	}
	return nil
}

// retrofitAttachmentCascade rebuilds pdfs with ON DELETE CASCADE. SQLite
// offers no ALTER for constraints, so the table is recreated and rows are
// copied across, keeping their ids.
func retrofitAttachmentCascade(tx *gorm.DB, log services.Logger) error {
	hasCascade, err := tableHasCascadeDelete(tx, "pdfs")
	if err != nil {
		return err
	}
	if hasCascade {
		return nil
	}
	log.Info("rebuilding pdfs table to add cascade delete")

	stmts := []string{
		`CREATE TABLE pdfs_new (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			chat_id INTEGER,
			filename TEXT,
			filepath TEXT,
			uploaded_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			mimetype TEXT,
			FOREIGN KEY (chat_id) REFERENCES chats(id) ON DELETE CASCADE
		)`,
		`INSERT INTO pdfs_new (id, chat_id, filename, filepath, uploaded_at, mimetype)
			SELECT id, chat_id, filename, filepath, uploaded_at, mimetype FROM pdfs`,
		`DROP TABLE pdfs`,
		`ALTER TABLE pdfs_new RENAME TO pdfs`,
	}
	for _, s := range stmts {
		if err := tx.Exec(s).Error; err != nil {
			return err
		}
	}
	return nil
}

// addProjects introduces the projects table and files chats under them. The
// chats table is rebuilt to pick up project_id with cascade delete plus the
// created_at/updated_at columns later releases rely on.
func addProjects(tx *gorm.DB, log services.Logger) error {
	if err := tx.Exec(`CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`).Error; err != nil {
		return err
	}

	if tx.Migrator().HasColumn(&domain.Chat{}, "project_id") {
		return nil
	}
	log.Info("rebuilding chats table to add project filing")

	stmts := []string{
		`CREATE TABLE chats_new (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT DEFAULT 'Untitled',
			messages TEXT,
			project_id INTEGER REFERENCES projects(id) ON DELETE CASCADE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`INSERT INTO chats_new (id, title, messages) SELECT id, title, messages FROM chats`,
		`DROP TABLE chats`,
		`ALTER TABLE chats_new RENAME TO chats`,
	}
	for _, s := range stmts {
		if err := tx.Exec(s).Error; err != nil {
			return err
		}
	}
	return nil
}

// inlineAttachmentContent adds the content blob column and moves legacy
// on-disk uploads into it. Per-row failures are logged and skipped; a file
// that cannot be read keeps its filepath so a later run can retry.
func inlineAttachmentContent(tx *gorm.DB, log services.Logger) error {
	if !tx.Migrator().HasColumn(&domain.Attachment{}, "content") {
		if err := tx.Exec(`ALTER TABLE pdfs ADD COLUMN content BLOB`).Error; err != nil {
			return err
		}
	}

	var legacy []domain.Attachment
	err := tx.Where("filepath IS NOT NULL AND filepath <> '' AND (content IS NULL OR length(content) = 0)").
		Find(&legacy).Error
	if err != nil {
		return err
	}

	for _, a := range legacy {
		data, err := os.ReadFile(a.Filepath)
		if err != nil {
			log.Warn("could not inline legacy attachment file", "attachment_id", a.ID, "path", a.Filepath, "error", err)
			continue
		}
		err = tx.Model(&domain.Attachment{}).Where("id = ?", a.ID).
			Updates(map[string]interface{}{"content": data, "filepath": ""}).Error
		if err != nil {
			return err
		}
		log.Info("inlined legacy attachment file", "attachment_id", a.ID, "bytes", len(data))
	}
	return nil
}

// tableHasCascadeDelete inspects the table's foreign keys for an ON DELETE
// CASCADE rule.
func tableHasCascadeDelete(tx *gorm.DB, table string) (bool, error) {
	rows, err := tx.Raw(fmt.Sprintf("PRAGMA foreign_key_list(%s)", table)).Rows()
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, seq            int
			refTable, from     string
			to                 sql.NullString
			onUpdate, onDelete string
			match              string
		)
		if err := rows.Scan(&id, &seq, &refTable, &from, &to, &onUpdate, &onDelete, &match); err != nil {
			return false, err
		}
		if onDelete == "CASCADE" {
			return true, nil
		}
	}
	return false, rows.Err()
}
