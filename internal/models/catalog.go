package models

// ModificationType is a catalog row describing the kind of work done on a lift.
type ModificationType struct {
	ID    uint64 `gorm:"primarykey" json:"-"`
	Code  string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Label string `gorm:"type:varchar(255);not null" json:"label"`
}

// ApplicableNorm is a catalog row naming a regulation the project complies with.
type ApplicableNorm struct {
	ID    uint64 `gorm:"primarykey" json:"-"`
	Code  string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Label string `gorm:"type:varchar(255);not null" json:"label"`
}

// LegalizationProcess is a catalog row naming the administrative procedure.
type LegalizationProcess struct {
	ID    uint64 `gorm:"primarykey" json:"-"`
	Code  string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Label string `gorm:"type:varchar(255);not null" json:"label"`
}
