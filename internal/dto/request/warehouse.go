package request

// SetRentalLocationRequest assigns the location units sit at while rented
// out. It must be an internal location of the warehouse so rented units keep
// counting toward fleet capacity.
type SetRentalLocationRequest struct {
	LocationID string `json:"location_id" validate:"required,uuid4"`
}
