package links

import (
	"errors"
	"fmt"

	"travel-admin/feature/links/models"
)

// ErrUnknownRelation is returned for a relationship kind that is not registered.
var ErrUnknownRelation = errors.New("unknown relationship kind")

// Relationship kinds.
const (
	KindHotelAmenity            = "hotel-amenity"
	KindTransportServiceFeature = "transport-service-feature"
	KindRestaurantDietaryOption = "restaurant-dietary-option"
	KindActivityRestriction     = "activity-restriction"
	KindActivityAdditionalInfo  = "activity-additional-info"
)

// Relation describes the association table of one relationship kind.
type Relation struct {
	// Kind is the public name of the relationship.
	Kind string `json:"kind"`

	// Table is the association table.
	Table string `json:"table"`

	// ParentColumn holds the owning entity id.
	ParentColumn string `json:"parent_column"`

	// ChildColumn holds the linked entity id.
	ChildColumn string `json:"child_column"`

	// Parent and Child name the entities in messages.
	Parent string `json:"parent"`
	Child  string `json:"child"`

	// UnlinkByID deletes links by association id instead of by (parent, child).
	UnlinkByID bool `json:"unlink_by_id"`

	// Model is the gorm model used for migrations.
	Model any `json:"-"`
}

// Columns returns every column the table must expose.
func (r Relation) Columns() []string {
	return []string{"id", r.ParentColumn, r.ChildColumn, "is_deleted", "created_at", "updated_at"}
}

// describe names one (parent, child) pair in error messages.
func (r Relation) describe(parent, child uint) string {
	return fmt.Sprintf("%s %d %s %d", r.Parent, parent, r.Child, child)
}

var relations = []Relation{
	{
		Kind:         KindHotelAmenity,
		Table:        "hotel_amenities",
		ParentColumn: "hotel_id",
		ChildColumn:  "amenity_id",
		Parent:       "hotel",
		Child:        "amenity",
		Model:        &models.HotelAmenity{},
	},
	{
		Kind:         KindTransportServiceFeature,
		Table:        "transport_service_features",
		ParentColumn: "transport_service_id",
		ChildColumn:  "feature_id",
		Parent:       "transport service",
		Child:        "feature",
		Model:        &models.TransportServiceFeature{},
	},
	{
		Kind:         KindRestaurantDietaryOption,
		Table:        "restaurant_dietary_options",
		ParentColumn: "restaurant_id",
		ChildColumn:  "dietary_option_id",
		Parent:       "restaurant",
		Child:        "dietary option",
		UnlinkByID:   true,
		Model:        &models.RestaurantDietaryOption{},
	},
	{
		Kind:         KindActivityRestriction,
		Table:        "leisure_activity_restrictions",
		ParentColumn: "activity_id",
		ChildColumn:  "restriction_id",
		Parent:       "activity",
		Child:        "restriction",
		Model:        &models.LeisureActivityRestriction{},
	},
	{
		Kind:         KindActivityAdditionalInfo,
		Table:        "leisure_activity_additional_infos",
		ParentColumn: "activity_id",
		ChildColumn:  "info_id",
		Parent:       "activity",
		Child:        "additional info",
		Model:        &models.LeisureActivityAdditionalInfo{},
	},
}

// Relations returns every registered relationship kind.
func Relations() []Relation {
	out := make([]Relation, len(relations))
	copy(out, relations)
	return out
}

// LookupRelation returns the relation registered under kind.
func LookupRelation(kind string) (Relation, error) {
	for _, r := range relations {
		if r.Kind == kind {
			return r, nil
		}
	}
	return Relation{}, fmt.Errorf("%w: %q", ErrUnknownRelation, kind)
}
