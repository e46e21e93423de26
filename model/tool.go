// model/tool.go
package model

import "time"

type ToolCategory string

const (
	CategoryTools       ToolCategory = "Tools"
	CategoryElectronics ToolCategory = "Electronics"
	CategoryGardening   ToolCategory = "Gardening"
	CategorySports      ToolCategory = "Sports"
	CategoryOther       ToolCategory = "Other"
)

type Tool struct {
	ID                 int64        `json:"id"`
	Name               string       `json:"name"`
	Description        string       `json:"description,omitempty"`
	Category           ToolCategory `json:"category"`
	PricePerDay        float64      `json:"price_per_day"`
	PickupLocationName string       `json:"pickup_location_name"`
	PickupLocationDesc string       `json:"pickup_location_desc,omitempty"`
	PickupLat          *float64     `json:"pickup_lat,omitempty"`
	PickupLon          *float64     `json:"pickup_lon,omitempty"`
	ImageURL           *string      `json:"image_url,omitempty"`
	OwnerID            int64        `json:"owner_id"`
	OwnerName          string       `json:"owner_name"`
	Available          bool         `json:"available"`
	Borrowed           bool         `json:"borrowed"`
	BorrowedDays       *int         `json:"borrowed_days,omitempty"`
	TotalCost          *float64     `json:"total_cost,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`

	// DistanceKm is filled at read time when the caller supplied its
	// own coordinates; it is never persisted.
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// CreateToolReq represents a new listing payload
// swagger:model CreateToolReq
type CreateToolReq struct {
	Name               string   `json:"name" validate:"required"`
	Description        string   `json:"description"`
	Category           string   `json:"category" validate:"required,oneof=Tools Electronics Gardening Sports Other"`
	PricePerDay        float64  `json:"price_per_day" validate:"required,gt=0"`
	PickupLocationName string   `json:"pickup_location_name" validate:"required"`
	PickupLocationDesc string   `json:"pickup_location_desc"`
	PickupLat          *float64 `json:"pickup_lat" validate:"omitempty,gte=-90,lte=90"`
	PickupLon          *float64 `json:"pickup_lon" validate:"omitempty,gte=-180,lte=180"`
	ImageURL           *string  `json:"image_url" validate:"omitempty,url"`
}
