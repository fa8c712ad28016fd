package models

import "time"

// TimestampLayout is the fixed-width UTC layout used for project timestamps.
// Fixed width keeps lexical order equal to chronological order, which the
// list ordering relies on.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Project is a lift modernization file. Order numbers are unique per user.
type Project struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	UserID      uint64 `gorm:"not null;uniqueIndex:idx_projects_user_order;index" json:"user_id"`
	OrderNumber string `gorm:"type:varchar(100);not null;uniqueIndex:idx_projects_user_order" json:"order_number"`
	RAE         string `gorm:"column:rae;type:varchar(100);not null" json:"rae"`

	// Client
	ClientName    string `gorm:"type:varchar(255);not null" json:"client_name"`
	ClientNIF     string `gorm:"column:client_nif;type:varchar(50);not null" json:"client_nif"`
	ClientAddress string `gorm:"type:varchar(255);not null" json:"client_address"`
	ClientCity    string `gorm:"type:varchar(255);not null" json:"client_city"`
	ClientZip     string `gorm:"type:varchar(10);not null" json:"client_zip"`

	// Lift location
	LiftAddress string `gorm:"type:varchar(255);not null" json:"lift_address"`
	LiftCity    string `gorm:"type:varchar(255);not null" json:"lift_city"`
	LiftZip     string `gorm:"type:varchar(10);not null" json:"lift_zip"`

	// Inspection
	ExamType string `gorm:"type:varchar(255)" json:"exam_type"`
	OCA      string `gorm:"column:oca;type:varchar(255)" json:"oca"`
	QMS      string `gorm:"column:qms;type:varchar(255)" json:"qms"`

	// Technical specs
	NominalLoad      string `gorm:"type:varchar(100)" json:"nominal_load"`
	Speed            string `gorm:"type:varchar(100)" json:"speed"`
	MachineRoom      string `gorm:"type:varchar(100)" json:"machine_room"`
	Passengers       string `gorm:"type:varchar(100)" json:"passengers"`
	ControlSystem    string `gorm:"type:varchar(100)" json:"control_system"`
	CabDimensions    string `gorm:"type:varchar(100)" json:"cab_dimensions"`
	Stops            string `gorm:"type:varchar(100)" json:"stops"`
	NominalTension   string `gorm:"type:varchar(100)" json:"nominal_tension"`
	DoorType         string `gorm:"type:varchar(100)" json:"door_type"`
	Travel           string `gorm:"type:varchar(100)" json:"travel"`
	NominalPower     string `gorm:"type:varchar(100)" json:"nominal_power"`
	DoorSize         string `gorm:"type:varchar(100)" json:"door_size"`
	NumCable         string `gorm:"type:varchar(100)" json:"num_cable"`
	NominalIntensity string `gorm:"type:varchar(100)" json:"nominal_intensity"`
	CableDiameter    string `gorm:"type:varchar(100)" json:"cable_diameter"`
	Ratio            string `gorm:"type:varchar(100)" json:"ratio"`
	CabMass          string `gorm:"type:varchar(100)" json:"cab_mass"`
	CabRails         string `gorm:"type:varchar(100)" json:"cab_rails"`
	CwMass           string `gorm:"type:varchar(100)" json:"cw_mass"`
	CwRails          string `gorm:"type:varchar(100)" json:"cw_rails"`

	// Certificates
	LockingDevice1   string `gorm:"column:locking_device1;type:varchar(100)" json:"locking_device1"`
	LockingDevice2   string `gorm:"column:locking_device2;type:varchar(100)" json:"locking_device2"`
	MachineBrake     string `gorm:"type:varchar(100)" json:"machine_brake"`
	CabParachute     string `gorm:"type:varchar(100)" json:"cab_parachute"`
	CwParachute      string `gorm:"type:varchar(100)" json:"cw_parachute"`
	CabSpeedGovernor string `gorm:"type:varchar(100)" json:"cab_speed_governor"`
	CwSpeedGovernor  string `gorm:"type:varchar(100)" json:"cw_speed_governor"`
	CabBuffer        string `gorm:"type:varchar(100)" json:"cab_buffer"`
	CwBuffer         string `gorm:"type:varchar(100)" json:"cw_buffer"`
	SafetyCircuit    string `gorm:"type:varchar(100)" json:"safety_circuit"`
	UCMDetect        string `gorm:"column:ucm_detect;type:varchar(100)" json:"ucm_detect"`
	UCMAct           string `gorm:"column:ucm_act;type:varchar(100)" json:"ucm_act"`
	UCMStop          string `gorm:"column:ucm_stop;type:varchar(100)" json:"ucm_stop"`

	// Stored as text, see TimestampLayout
	CreatedAt string  `gorm:"type:varchar(40);not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt *string `gorm:"type:varchar(40);autoUpdateTime:false" json:"updated_at"`
}
