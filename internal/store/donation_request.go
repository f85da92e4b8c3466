package store

import (
	"context"
	"fmt"
	"time"

	"rokto/internal/utils"
	"rokto/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const requestTableName = "rokto.donation_requests"

var requestColumns = utils.StructTagValues(types.DonationRequest{})

type DonationRequestRepository struct {
	pool *pgxpool.Pool
}

func NewDonationRequestRepository(pool *pgxpool.Pool) *DonationRequestRepository {
	return &DonationRequestRepository{pool: pool}
}

func (r *DonationRequestRepository) Request(ctx context.Context, requestID string) (*types.DonationRequest, error) {
	query, args, err := psql().
		Select(requestColumns...).
		From(requestTableName).
		Where(sq.Eq{"id": requestID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate request query: %w", err)
	}

	var request types.DonationRequest
	err = pgxscan.Get(ctx, r.pool, &request, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to fetch request: %w", err)
	}

	return &request, nil
}

// Requests lists requests, combining whichever filter fields are set.
// Ordering is server-defined (created_at desc) and callers must not depend
// on anything beyond it being stable within one fetch.
func (r *DonationRequestRepository) Requests(ctx context.Context, filter types.RequestFilter) ([]*types.DonationRequest, error) {
	builder := psql().
		Select(requestColumns...).
		From(requestTableName).
		OrderBy("created_at desc")

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"donation_status": filter.Status})
	}
	if filter.RequesterID != "" {
		builder = builder.Where(sq.Eq{"requester_id": filter.RequesterID})
	}
	if filter.DonorID != "" {
		builder = builder.Where(sq.Eq{"donor_id": filter.DonorID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate requests query: %w", err)
	}

	var requests = make([]*types.DonationRequest, 0)
	err = pgxscan.Select(ctx, r.pool, &requests, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch requests: %w", err)
	}

	return requests, nil
}

func (r *DonationRequestRepository) Create(ctx context.Context, request *types.DonationRequest) error {
	now := time.Now()
	request.ID = utils.NanoID()
	request.DonationStatus = types.DonationStatusPending
	request.DonorID = nil
	request.DonorName = nil
	request.DonorEmail = nil
	request.CreatedAt = now
	request.UpdatedAt = now

	query, args, err := psql().
		Insert(requestTableName).
		SetMap(utils.StructToMap(request)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert request query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create request")
}

// Donate commits the acting donor to a pending request. The update is
// conditioned on the row still being pending with no donor, so of two
// concurrent donors exactly one statement matches; the loser sees zero rows
// affected and gets ErrRequestUnavailable.
func (r *DonationRequestRepository) Donate(ctx context.Context, requestID string, donor *types.User) error {
	query, args, err := psql().
		Update(requestTableName).
		Set("donation_status", types.DonationStatusInProgress).
		Set("donor_id", donor.ID).
		Set("donor_name", donor.Name).
		Set("donor_email", donor.Email).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": requestID, "donation_status": types.DonationStatusPending}).
		Where("donor_id IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate donate query for request %s: %w", requestID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to commit donor to request %s: %w", requestID, err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrRequestUnavailable
	}

	return nil
}

// SetStatus writes the status unconditionally. Donor columns are left as-is:
// a request moved to done or canceled keeps whatever donor was recorded at
// the inprogress transition.
func (r *DonationRequestRepository) SetStatus(ctx context.Context, requestID string, status types.DonationStatus) error {
	query, args, err := psql().
		Update(requestTableName).
		Set("donation_status", status).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": requestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate status update query for request %s: %w", requestID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrRequestNotFound
	}

	return nil
}

func (r *DonationRequestRepository) Delete(ctx context.Context, requestID string) error {
	query, args, err := psql().
		Delete(requestTableName).
		Where(sq.Eq{"id": requestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete query for request %s: %w", requestID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)

	return utils.ErrorWrapOrNil(err, "failed to delete request")
}
