package repos

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"estateadmin/internal/domain"
)

type SessionRow struct {
	ID        string `db:"id"`
	Token     []byte `db:"token"`
	AdminID   string `db:"admin_id"`
	ExpiresAt int64  `db:"expires_at"`
}

type SessionRepo struct{ DB *sqlx.DB }

func NewSessionRepo(db *sqlx.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Save binds a sealed token to the browser session sid, replacing any
// previous one.
func (r *SessionRepo) Save(sid string, sealed []byte, adminID string, expiresAt time.Time) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,token,admin_id,expires_at,last_seen)
                          VALUES(?,?,?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET token=excluded.token,admin_id=excluded.admin_id,
                            expires_at=excluded.expires_at,last_seen=CURRENT_TIMESTAMP`,
		sid, sealed, adminID, expiresAt.Unix())
	return err
}

func (r *SessionRepo) Get(sid string) (*SessionRow, error) {
	var row SessionRow
	err := r.DB.Get(&row, `SELECT id,token,admin_id,expires_at FROM sessions WHERE id=?`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *SessionRepo) Touch(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}

func (r *SessionRepo) Delete(sid string) error {
	_, err := r.DB.Exec(`DELETE FROM sessions WHERE id=?`, sid)
	return err
}

// DeleteExpired removes every session whose token expired at or before now
// and returns the ids it removed.
func (r *SessionRepo) DeleteExpired(now time.Time) ([]string, error) {
	tx, err := r.DB.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var ids []string
	if err := tx.Select(&ids, `SELECT id FROM sessions WHERE expires_at <= ?`, now.Unix()); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	if _, err := tx.Exec(`DELETE FROM sessions WHERE expires_at <= ?`, now.Unix()); err != nil {
		return nil, err
	}
	return ids, tx.Commit()
}

func (r *SessionRepo) Count() (int, error) {
	var n int
	err := r.DB.Get(&n, `SELECT COUNT(*) FROM sessions`)
	return n, err
}
