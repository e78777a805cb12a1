// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package hostlib

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"luabind.256lights.llc/pkg/internal/xio"
	"luabind.256lights.llc/pkg/lua"
	"luabind.256lights.llc/pkg/luabind"
	"zombiezen.com/go/log"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitemigration"
	"zombiezen.com/go/sqlite/sqlitex"
)

//go:embed sql
var rawSQLFiles embed.FS

func sqlFiles() fs.FS {
	fsys, err := fs.Sub(rawSQLFiles, "sql")
	if err != nil {
		panic(err)
	}
	return fsys
}

func kvSchema() (sqlitemigration.Schema, error) {
	var schema sqlitemigration.Schema
	for i := 1; ; i++ {
		migration, err := fs.ReadFile(sqlFiles(), fmt.Sprintf("kv/schema/%02d.sql", i))
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		if err != nil {
			return sqlitemigration.Schema{}, fmt.Errorf("read migrations: %v", err)
		}
		schema.Migrations = append(schema.Migrations, string(migration))
	}
	return schema, nil
}

// kvStore is a key-value table in a SQLite database.
type kvStore struct {
	ctx  context.Context
	pool *sqlitemigration.Pool
}

func (store *kvStore) Close() error {
	log.Debugf(store.ctx, "Closing kv database")
	return store.pool.Close()
}

func openKV(ctx context.Context, l *lua.State, path string) error {
	schema, err := kvSchema()
	if err != nil {
		return err
	}
	store := &kvStore{
		ctx: ctx,
		pool: sqlitemigration.NewPool(path, schema, sqlitemigration.Options{
			Flags:       sqlite.OpenCreate | sqlite.OpenReadWrite,
			PoolSize:    1,
			PrepareConn: prepareKV,
			OnError: func(err error) {
				log.Errorf(ctx, "kv migration: %v", err)
			},
		}),
	}
	s := xio.NewShared(store)
	get, set, del, keys := s.Ref(), s.Ref(), s.Ref(), s.Ref()
	return registerShared(l, KVModule, map[string]any{
		"get":    luabind.Bind1(get, kvGet),
		"set":    luabind.Bind2(set, kvSet),
		"delete": luabind.Bind1(del, kvDelete),
		"keys":   luabind.Bind1(keys, kvKeys),
	}, get, set, del, keys)
}

func prepareKV(conn *sqlite.Conn) error {
	if err := sqlitex.ExecuteTransient(conn, "PRAGMA journal_mode=wal;", nil); err != nil {
		return fmt.Errorf("enable write-ahead logging: %v", err)
	}
	return nil
}

func (store *kvStore) get(key string) (_ string, found bool, err error) {
	conn, err := store.pool.Get(store.ctx)
	if err != nil {
		return "", false, err
	}
	defer store.pool.Put(conn)

	var value string
	err = sqlitex.ExecuteTransientFS(conn, sqlFiles(), "kv/get.sql", &sqlitex.ExecOptions{
		Named: map[string]any{":key": key},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			value = stmt.ColumnText(0)
			found = true
			return nil
		},
	})
	if err != nil {
		return "", false, fmt.Errorf("get %q: %v", key, err)
	}
	return value, found, nil
}

func (store *kvStore) set(key, value string) error {
	conn, err := store.pool.Get(store.ctx)
	if err != nil {
		return err
	}
	defer store.pool.Put(conn)

	err = sqlitex.ExecuteTransientFS(conn, sqlFiles(), "kv/set.sql", &sqlitex.ExecOptions{
		Named: map[string]any{
			":key":   key,
			":value": []byte(value),
		},
	})
	if err != nil {
		return fmt.Errorf("set %q: %v", key, err)
	}
	return nil
}

func (store *kvStore) delete(key string) (bool, error) {
	conn, err := store.pool.Get(store.ctx)
	if err != nil {
		return false, err
	}
	defer store.pool.Put(conn)

	err = sqlitex.ExecuteTransientFS(conn, sqlFiles(), "kv/delete.sql", &sqlitex.ExecOptions{
		Named: map[string]any{":key": key},
	})
	if err != nil {
		return false, fmt.Errorf("delete %q: %v", key, err)
	}
	return conn.Changes() > 0, nil
}

func (store *kvStore) keys(prefix string) ([]string, error) {
	conn, err := store.pool.Get(store.ctx)
	if err != nil {
		return nil, err
	}
	defer store.pool.Put(conn)

	var keys []string
	err = sqlitex.ExecuteTransientFS(conn, sqlFiles(), "kv/keys.sql", &sqlitex.ExecOptions{
		Named: map[string]any{":prefix": escapeLike(prefix)},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			keys = append(keys, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("list keys: %v", err)
	}
	return keys, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func kvGet(h *xio.Ref[*kvStore], key string) luabind.Result[luabind.Optional[string]] {
	value, found, err := h.Value().get(key)
	if err != nil {
		return luabind.Fail[luabind.Optional[string]](err)
	}
	if !found {
		return luabind.Ok(luabind.None[string]())
	}
	return luabind.Ok(luabind.Some(value))
}

func kvSet(h *xio.Ref[*kvStore], key, value string) luabind.Result[bool] {
	if err := h.Value().set(key, value); err != nil {
		return luabind.Fail[bool](err)
	}
	return luabind.Ok(true)
}

// kvDelete reports whether the key was present.
func kvDelete(h *xio.Ref[*kvStore], key string) luabind.Result[bool] {
	return luabind.Try(h.Value().delete(key))
}

// kvKeys lists the keys that start with prefix in sorted order.
func kvKeys(h *xio.Ref[*kvStore], prefix luabind.Optional[string]) luabind.Result[[]string] {
	return luabind.Try(h.Value().keys(prefix.Value))
}
