package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	// postgres driver
	_ "github.com/lib/pq"
	"max.ks1230/finance-tracker/internal/entity/record"
	"max.ks1230/finance-tracker/internal/entity/user"
	"max.ks1230/finance-tracker/internal/logger"
)

const dsnTemplate = "user=%s password=%s host=%s dbname=%s sslmode=disable"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type pgConfig interface {
	Host() string
	Username() string
	Password() string
	Database() string
}

// PostgresStorage is the alternative backend. Record identity stays
// positional: rows carry an explicit position column, and saving a user's
// sequence replaces all of that user's rows, mirroring the file backend's
// full-rewrite semantics.
type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config pgConfig) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", fmt.Sprintf(dsnTemplate,
		config.Username(),
		config.Password(),
		config.Host(),
		config.Database()))
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = db.Ping(); err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	return &PostgresStorage{db}, nil
}

func (s *PostgresStorage) GetUser(ctx context.Context, username string) (user.User, bool, error) {
	query := psql.Select("username", "password").
		From("users").
		Where(sq.Eq{"username": username})

	var res user.User
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&res.Username, &res.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, false, nil
	}
	if err != nil {
		return user.User{}, false, errors.Wrap(err, "get user")
	}
	return res, true, nil
}

func (s *PostgresStorage) SaveUser(ctx context.Context, u user.User) error {
	query := psql.Insert("users").
		Columns("username", "password").
		Values(u.Username, u.Password).
		Suffix("ON CONFLICT(username) DO UPDATE SET password = ?", u.Password)

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "save user")
}

func (s *PostgresStorage) GetRecords(ctx context.Context, username string) ([]record.FinancialRecord, error) {
	query := psql.Select("description", "amount", "category", "record_type", "date").
		From("records").
		Where(sq.Eq{"username": username}).
		OrderBy("position")

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get records")
	}
	defer func() {
		if rowErr := rows.Close(); rowErr != nil {
			logger.Error("error closing rows", zap.Error(rowErr))
		}
	}()

	recs := make([]record.FinancialRecord, 0)
	for rows.Next() {
		var r record.FinancialRecord
		var rt string
		if err = rows.Scan(&r.Description, &r.Amount, &r.Category, &rt, &r.Date); err != nil {
			return nil, errors.Wrap(err, "get records")
		}
		if r.Type, err = record.ParseType(rt); err != nil {
			return nil, errors.Wrap(err, "get records")
		}
		recs = append(recs, r)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "get records")
	}

	return recs, nil
}

func (s *PostgresStorage) SaveRecords(ctx context.Context, username string, recs []record.FinancialRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "save records")
	}
	defer func() {
		if txErr := tx.Rollback(); txErr != nil && !errors.Is(txErr, sql.ErrTxDone) {
			logger.Error("error when transaction rollback", zap.Error(txErr))
		}
	}()

	del := psql.Delete("records").Where(sq.Eq{"username": username})
	if _, err = del.RunWith(tx).ExecContext(ctx); err != nil {
		return errors.Wrap(err, "save records")
	}

	for pos, r := range recs {
		ins := psql.Insert("records").
			Columns("username", "position", "description", "amount", "category", "record_type", "date").
			Values(username, pos, r.Description, r.Amount, r.Category, string(r.Type), r.Date)
		if _, err = ins.RunWith(tx).ExecContext(ctx); err != nil {
			return errors.Wrap(err, "save records")
		}
	}

	return errors.Wrap(tx.Commit(), "save records")
}
