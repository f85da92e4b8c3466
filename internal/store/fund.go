package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rokto/internal/utils"
	"rokto/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const fundTableName = "rokto.funds"

var fundColumns = utils.StructTagValues(types.Fund{})

type FundRepository struct {
	pool *pgxpool.Pool
}

func NewFundRepository(pool *pgxpool.Pool) *FundRepository {
	return &FundRepository{pool: pool}
}

func (r *FundRepository) Create(ctx context.Context, fund *types.Fund) error {
	fund.ID = utils.NanoID()
	fund.FundingDate = time.Now()

	query, args, err := psql().
		Insert(fundTableName).
		SetMap(utils.StructToMap(fund)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert fund query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return types.ErrDuplicateTransaction
		}
		return fmt.Errorf("failed to create fund: %w", err)
	}

	return nil
}

func (r *FundRepository) Funds(ctx context.Context) ([]*types.Fund, error) {
	query, args, err := psql().
		Select(fundColumns...).
		From(fundTableName).
		OrderBy("funding_date desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate funds query: %w", err)
	}

	var funds = make([]*types.Fund, 0)
	err = pgxscan.Select(ctx, r.pool, &funds, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch funds: %w", err)
	}

	return funds, nil
}
