// Package sqlio adapts MySQL tables as sources and sinks for streaming
// jobs: a query becomes tab-separated record lines on a job's input, and
// reducer output loads back through batched upserts.
package sqlio

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	log "github.com/sirupsen/logrus"
)

// Open connects to MySQL and verifies the connection.
func Open(ctx context.Context, cfg ConnConfig) (*sql.DB, error) {
	if cfg.User == "" {
		return nil, fmt.Errorf("db user is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("db database is required")
	}
	return OpenDSN(ctx, cfg.DSN())
}

// OpenDSN connects to MySQL with a raw driver DSN.
func OpenDSN(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// ExportTSV streams the (key, value) rows of the configured source as
// tab-separated record lines, ready to feed a mapper's input.
func ExportTSV(ctx context.Context, db *sql.DB, cfg SourceConfig, w io.Writer) error {
	cfg.WithDefaults()
	if cfg.Table == "" {
		return fmt.Errorf("source table is required")
	}

	table, err := quoteIdentifier(cfg.Table)
	if err != nil {
		return err
	}
	key, err := quoteIdentifier(cfg.KeyColumn)
	if err != nil {
		return err
	}
	val, err := quoteIdentifier(cfg.ValColumn)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s", key, val, table, cfg.Where)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	bw := bufio.NewWriterSize(w, 1<<20)
	n := 0
	for rows.Next() {
		var k, v interface{}
		if err := rows.Scan(&k, &v); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", asString(k), asString(v)); err != nil {
			return err
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	log.WithFields(log.Fields{"table": cfg.Table, "rows": n}).Debug("source export complete")
	return nil
}

// ImportTSV loads reducer output records into the configured sink table
// with batched upserts. The whole import is one transaction.
func ImportTSV(ctx context.Context, db *sql.DB, cfg SinkConfig, r io.Reader) error {
	cfg.WithDefaults()
	if cfg.Table == "" {
		return fmt.Errorf("sink table is required")
	}

	table, err := quoteIdentifier(cfg.Table)
	if err != nil {
		return err
	}
	keyCol, err := quoteIdentifier(cfg.KeyColumn)
	if err != nil {
		return err
	}
	valCol, err := quoteIdentifier(cfg.ValColumn)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if cfg.Replace {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return err
		}
	}

	upsert := fmt.Sprintf(
		"INSERT INTO %s (%s, %s) VALUES %%s ON DUPLICATE KEY UPDATE %s=VALUES(%s)",
		table, keyCol, valCol, valCol, valCol,
	)

	batch := make([][2]string, 0, cfg.BatchSize)
	total := 0
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		args := make([]interface{}, 0, len(batch)*2)
		rows := make([]string, 0, len(batch))
		for _, kv := range batch {
			rows = append(rows, "(?, ?)")
			args = append(args, kv[0], kv[1])
		}
		stmt := fmt.Sprintf(upsert, strings.Join(rows, ","))
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			return err
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64<<10), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		key, value, _ := strings.Cut(line, "\t")
		batch = append(batch, [2]string{key, value})
		if len(batch) >= cfg.BatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if err := flush(); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.WithFields(log.Fields{"table": cfg.Table, "rows": total}).Debug("sink import complete")
	return nil
}
