package seed

import (
	"context"
	"fmt"

	"rokto/internal/store"
	"rokto/pkg/types"
)

// SeedLocations syncs the database with the district/upazila definitions
// below. This file is the source of truth for reference locations:
// - Inserts rows that don't exist
// - Updates rows whose names have changed
//
// To generate new IDs: `go run ./cmd/rokto nanoid`
func SeedLocations(ctx context.Context, repo *store.LocationRepository) error {
	districts := []types.District{
		{ID: "fQ2mW7dKx4ZpTn9RbYc3e", Name: "Dhaka", BnName: "ঢাকা"},
		{ID: "Hs8vL1gJq6XwEo4MtUa0i", Name: "Chattogram", BnName: "চট্টগ্রাম"},
		{ID: "Zc5yN3kFb9VrGd2PhSe7u", Name: "Rajshahi", BnName: "রাজশাহী"},
		{ID: "Aw1tD6jMx8QzKf5LnYo4r", Name: "Khulna", BnName: "খুলনা"},
		{ID: "Ue9pB4hSv2WmJc7XdTq1y", Name: "Sylhet", BnName: "সিলেট"},
		{ID: "Ko3fR8nGt5YxCb1ZjVw6m", Name: "Barishal", BnName: "বরিশাল"},
	}

	upazilas := []types.Upazila{
		{ID: "m2XvT7qLd4KpWn8FbRc9e", Name: "Savar", BnName: "সাভার", DistrictID: "fQ2mW7dKx4ZpTn9RbYc3e"},
		{ID: "g6JwQ1sNz9YtEo3MhUa5i", Name: "Dhamrai", BnName: "ধামরাই", DistrictID: "fQ2mW7dKx4ZpTn9RbYc3e"},
		{ID: "k4FyB8nVc2WrGd7PtSe1u", Name: "Keraniganj", BnName: "কেরানীগঞ্জ", DistrictID: "fQ2mW7dKx4ZpTn9RbYc3e"},
		{ID: "d9TwA3jHx6QzKf2LnYo8r", Name: "Dohar", BnName: "দোহার", DistrictID: "fQ2mW7dKx4ZpTn9RbYc3e"},
		{ID: "b5UpE7hSv1WmJc4XdTq9y", Name: "Nawabganj", BnName: "নবাবগঞ্জ", DistrictID: "fQ2mW7dKx4ZpTn9RbYc3e"},
		{ID: "w8KoC2fRn6YxGb9ZjVt3m", Name: "Patiya", BnName: "পটিয়া", DistrictID: "Hs8vL1gJq6XwEo4MtUa0i"},
		{ID: "q1MvX5tLd8KpWn3FbRc7e", Name: "Sitakunda", BnName: "সীতাকুণ্ড", DistrictID: "Hs8vL1gJq6XwEo4MtUa0i"},
		{ID: "s7GwJ9qNz2YtEo6MhUa1i", Name: "Hathazari", BnName: "হাটহাজারী", DistrictID: "Hs8vL1gJq6XwEo4MtUa0i"},
		{ID: "u3FyK6nVc9WrGd1PtSe8b", Name: "Paba", BnName: "পবা", DistrictID: "Zc5yN3kFb9VrGd2PhSe7u"},
		{ID: "r2TwD8jHx4QzKf7LnYo5a", Name: "Godagari", BnName: "গোদাগাড়ী", DistrictID: "Zc5yN3kFb9VrGd2PhSe7u"},
		{ID: "y6UpB1hSv5WmJc9XdTq2e", Name: "Dumuria", BnName: "ডুমুরিয়া", DistrictID: "Aw1tD6jMx8QzKf5LnYo4r"},
		{ID: "n4KoF7fRt2YxCb5ZjVw9m", Name: "Phultala", BnName: "ফুলতলা", DistrictID: "Aw1tD6jMx8QzKf5LnYo4r"},
		{ID: "e8MvZ3qLd7KpWn1FbRc4t", Name: "Beanibazar", BnName: "বিয়ানীবাজার", DistrictID: "Ue9pB4hSv2WmJc7XdTq1y"},
		{ID: "h5GwQ9sNz4YtEo8MhUa2j", Name: "Golapganj", BnName: "গোলাপগঞ্জ", DistrictID: "Ue9pB4hSv2WmJc7XdTq1y"},
		{ID: "v1FyR6nVc3WrGd8PtSe5k", Name: "Bakerganj", BnName: "বাকেরগঞ্জ", DistrictID: "Ko3fR8nGt5YxCb1ZjVw6m"},
		{ID: "x9TwC4jHx2QzKf6LnYo7d", Name: "Wazirpur", BnName: "উজিরপুর", DistrictID: "Ko3fR8nGt5YxCb1ZjVw6m"},
	}

	for _, district := range districts {
		if err := repo.UpsertDistrict(ctx, district); err != nil {
			return fmt.Errorf("upsert district %s: %w", district.Name, err)
		}
	}

	for _, upazila := range upazilas {
		if err := repo.UpsertUpazila(ctx, upazila); err != nil {
			return fmt.Errorf("upsert upazila %s: %w", upazila.Name, err)
		}
	}

	return nil
}
