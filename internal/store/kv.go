package store

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// KV is durable key-value storage scoped to one namespace (the browser
// session id). It backs services.SessionStore persistence.
type KV struct {
	db *sqlx.DB
	ns string
}

func NewKV(db *sqlx.DB, namespace string) *KV {
	return &KV{db: db, ns: namespace}
}

func (kv *KV) Get(key string) (string, bool, error) {
	var v string
	err := kv.db.Get(&v, `SELECT v FROM kv WHERE ns = ? AND k = ?`, kv.ns, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (kv *KV) Put(key, value string) error {
	_, err := kv.db.Exec(`
		INSERT INTO kv(ns,k,v,updated_at) VALUES(?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(ns,k) DO UPDATE SET v = excluded.v, updated_at = CURRENT_TIMESTAMP
	`, kv.ns, key, value)
	return err
}

func (kv *KV) Delete(key string) error {
	_, err := kv.db.Exec(`DELETE FROM kv WHERE ns = ? AND k = ?`, kv.ns, key)
	return err
}
