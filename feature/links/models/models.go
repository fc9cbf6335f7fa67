package models

import "time"

// HotelAmenity links a hotel to an amenity.
type HotelAmenity struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	HotelID   uint      `gorm:"column:hotel_id;not null;uniqueIndex:uq_hotel_amenities_pair,priority:1"`
	AmenityID uint      `gorm:"column:amenity_id;not null;uniqueIndex:uq_hotel_amenities_pair,priority:2"`
	IsDeleted bool      `gorm:"column:is_deleted;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (HotelAmenity) TableName() string {
	return "hotel_amenities"
}

// TransportServiceFeature links a transport service to a feature.
type TransportServiceFeature struct {
	ID                 uint      `gorm:"column:id;primaryKey;autoIncrement"`
	TransportServiceID uint      `gorm:"column:transport_service_id;not null;uniqueIndex:uq_transport_service_features_pair,priority:1"`
	FeatureID          uint      `gorm:"column:feature_id;not null;uniqueIndex:uq_transport_service_features_pair,priority:2"`
	IsDeleted          bool      `gorm:"column:is_deleted;not null;default:false"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (TransportServiceFeature) TableName() string {
	return "transport_service_features"
}

// RestaurantDietaryOption links a restaurant to a dietary option.
type RestaurantDietaryOption struct {
	ID              uint      `gorm:"column:id;primaryKey;autoIncrement"`
	RestaurantID    uint      `gorm:"column:restaurant_id;not null;uniqueIndex:uq_restaurant_dietary_options_pair,priority:1"`
	DietaryOptionID uint      `gorm:"column:dietary_option_id;not null;uniqueIndex:uq_restaurant_dietary_options_pair,priority:2"`
	IsDeleted       bool      `gorm:"column:is_deleted;not null;default:false"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (RestaurantDietaryOption) TableName() string {
	return "restaurant_dietary_options"
}

// LeisureActivityRestriction links a leisure activity to a restriction.
type LeisureActivityRestriction struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement"`
	ActivityID    uint      `gorm:"column:activity_id;not null;uniqueIndex:uq_leisure_activity_restrictions_pair,priority:1"`
	RestrictionID uint      `gorm:"column:restriction_id;not null;uniqueIndex:uq_leisure_activity_restrictions_pair,priority:2"`
	IsDeleted     bool      `gorm:"column:is_deleted;not null;default:false"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (LeisureActivityRestriction) TableName() string {
	return "leisure_activity_restrictions"
}

// LeisureActivityAdditionalInfo links a leisure activity to an additional info entry.
type LeisureActivityAdditionalInfo struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement"`
	ActivityID uint      `gorm:"column:activity_id;not null;uniqueIndex:uq_leisure_activity_additional_infos_pair,priority:1"`
	InfoID     uint      `gorm:"column:info_id;not null;uniqueIndex:uq_leisure_activity_additional_infos_pair,priority:2"`
	IsDeleted  bool      `gorm:"column:is_deleted;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (LeisureActivityAdditionalInfo) TableName() string {
	return "leisure_activity_additional_infos"
}
