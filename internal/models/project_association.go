package models

// Join rows linking a project to catalog entries. They are replaced as a whole
// on every project write and removed with the project.

type ProjectModificationType struct {
	ProjectID          uint64 `gorm:"primarykey" json:"project_id"`
	ModificationTypeID uint64 `gorm:"primarykey;index:idx_pmt_modification_type_id" json:"modification_type_id"`

	// Relations
	Project          Project          `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	ModificationType ModificationType `gorm:"foreignKey:ModificationTypeID" json:"-"`
}

type ProjectApplicableNorm struct {
	ProjectID        uint64 `gorm:"primarykey" json:"project_id"`
	ApplicableNormID uint64 `gorm:"primarykey;index:idx_pan_applicable_norm_id" json:"applicable_norm_id"`

	// Relations
	Project        Project        `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	ApplicableNorm ApplicableNorm `gorm:"foreignKey:ApplicableNormID" json:"-"`
}

type ProjectLegalizationProcess struct {
	ProjectID             uint64 `gorm:"primarykey" json:"project_id"`
	LegalizationProcessID uint64 `gorm:"primarykey;index:idx_plp_legalization_process_id" json:"legalization_process_id"`

	// Relations
	Project             Project             `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	LegalizationProcess LegalizationProcess `gorm:"foreignKey:LegalizationProcessID" json:"-"`
}
