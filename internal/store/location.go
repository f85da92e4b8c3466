package store

import (
	"context"
	"fmt"

	"rokto/internal/utils"
	"rokto/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	districtTableName = "rokto.districts"
	upazilaTableName  = "rokto.upazilas"
)

var (
	districtColumns = utils.StructTagValues(types.District{})
	upazilaColumns  = utils.StructTagValues(types.Upazila{})
)

type LocationRepository struct {
	pool *pgxpool.Pool
}

func NewLocationRepository(pool *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{pool: pool}
}

func (r *LocationRepository) Districts(ctx context.Context) ([]*types.District, error) {
	query, args, err := psql().
		Select(districtColumns...).
		From(districtTableName).
		OrderBy("name asc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate districts query: %w", err)
	}

	var districts = make([]*types.District, 0)
	err = pgxscan.Select(ctx, r.pool, &districts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch districts: %w", err)
	}

	return districts, nil
}

func (r *LocationRepository) Upazilas(ctx context.Context) ([]*types.Upazila, error) {
	query, args, err := psql().
		Select(upazilaColumns...).
		From(upazilaTableName).
		OrderBy("name asc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate upazilas query: %w", err)
	}

	var upazilas = make([]*types.Upazila, 0)
	err = pgxscan.Select(ctx, r.pool, &upazilas, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upazilas: %w", err)
	}

	return upazilas, nil
}

func (r *LocationRepository) UpsertDistrict(ctx context.Context, district types.District) error {
	query, args, err := psql().
		Insert(districtTableName).
		Columns("id", "name", "bn_name").
		Values(district.ID, district.Name, district.BnName).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, bn_name = EXCLUDED.bn_name").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert district query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert district")
}

func (r *LocationRepository) UpsertUpazila(ctx context.Context, upazila types.Upazila) error {
	query, args, err := psql().
		Insert(upazilaTableName).
		Columns("id", "name", "bn_name", "district_id").
		Values(upazila.ID, upazila.Name, upazila.BnName, upazila.DistrictID).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, bn_name = EXCLUDED.bn_name, district_id = EXCLUDED.district_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert upazila query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert upazila")
}
