package types

// District and Upazila are read-only administrative reference data with
// Bengali display names, seeded once and served verbatim.
type District struct {
	ID     string `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	BnName string `db:"bn_name" json:"bn_name"`
}

type Upazila struct {
	ID         string `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	BnName     string `db:"bn_name" json:"bn_name"`
	DistrictID string `db:"district_id" json:"district_id"`
}

// FilterUpazilas is the cascading-selector computation: a pure function from
// the selected district and the full upazila list to the matching subset.
func FilterUpazilas(districtID string, upazilas []*Upazila) []*Upazila {
	out := make([]*Upazila, 0, len(upazilas))
	for _, u := range upazilas {
		if u.DistrictID == districtID {
			out = append(out, u)
		}
	}
	return out
}
