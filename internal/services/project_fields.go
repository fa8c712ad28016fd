package services

import (
	"strings"

	"github.com/yukikurage/lift-project-api/internal/models"
	"github.com/yukikurage/lift-project-api/internal/repository"
	"github.com/yukikurage/lift-project-api/internal/validation"
)

// column returns the project column that stores a text field, or nil for the
// catalog selections.
func column(p *models.Project, f validation.Field) *string {
	switch f {
	case validation.FieldOrderNumber:
		return &p.OrderNumber
	case validation.FieldRAE:
		return &p.RAE
	case validation.FieldClientName:
		return &p.ClientName
	case validation.FieldClientNIF:
		return &p.ClientNIF
	case validation.FieldClientAddress:
		return &p.ClientAddress
	case validation.FieldClientCity:
		return &p.ClientCity
	case validation.FieldClientZip:
		return &p.ClientZip
	case validation.FieldLiftAddress:
		return &p.LiftAddress
	case validation.FieldLiftCity:
		return &p.LiftCity
	case validation.FieldLiftZip:
		return &p.LiftZip
	case validation.FieldExamType:
		return &p.ExamType
	case validation.FieldOCA:
		return &p.OCA
	case validation.FieldQMS:
		return &p.QMS
	case validation.FieldNominalLoad:
		return &p.NominalLoad
	case validation.FieldSpeed:
		return &p.Speed
	case validation.FieldMachineRoom:
		return &p.MachineRoom
	case validation.FieldPassengers:
		return &p.Passengers
	case validation.FieldControlSystem:
		return &p.ControlSystem
	case validation.FieldCabDimensions:
		return &p.CabDimensions
	case validation.FieldStops:
		return &p.Stops
	case validation.FieldNominalTension:
		return &p.NominalTension
	case validation.FieldDoorType:
		return &p.DoorType
	case validation.FieldTravel:
		return &p.Travel
	case validation.FieldNominalPower:
		return &p.NominalPower
	case validation.FieldDoorSize:
		return &p.DoorSize
	case validation.FieldNumCable:
		return &p.NumCable
	case validation.FieldNominalIntensity:
		return &p.NominalIntensity
	case validation.FieldCableDiameter:
		return &p.CableDiameter
	case validation.FieldRatio:
		return &p.Ratio
	case validation.FieldCabMass:
		return &p.CabMass
	case validation.FieldCabRails:
		return &p.CabRails
	case validation.FieldCwMass:
		return &p.CwMass
	case validation.FieldCwRails:
		return &p.CwRails
	case validation.FieldLockingDevice1:
		return &p.LockingDevice1
	case validation.FieldLockingDevice2:
		return &p.LockingDevice2
	case validation.FieldMachineBrake:
		return &p.MachineBrake
	case validation.FieldCabParachute:
		return &p.CabParachute
	case validation.FieldCwParachute:
		return &p.CwParachute
	case validation.FieldCabSpeedGovernor:
		return &p.CabSpeedGovernor
	case validation.FieldCwSpeedGovernor:
		return &p.CwSpeedGovernor
	case validation.FieldCabBuffer:
		return &p.CabBuffer
	case validation.FieldCwBuffer:
		return &p.CwBuffer
	case validation.FieldSafetyCircuit:
		return &p.SafetyCircuit
	case validation.FieldUCMDetect:
		return &p.UCMDetect
	case validation.FieldUCMAct:
		return &p.UCMAct
	case validation.FieldUCMStop:
		return &p.UCMStop
	}
	return nil
}

// projectFromValues copies validated form values into a project row and the
// catalog selection.
func projectFromValues(vals *validation.Values) (models.Project, repository.Selection) {
	var p models.Project
	for _, f := range validation.Fields() {
		if col := column(&p, f); col != nil {
			*col = strings.TrimSpace(vals.Get(f).Text)
		}
	}

	sel := repository.Selection{
		ModificationTypes:   trimmed(vals.Get(validation.FieldModificationTypes).List),
		ApplicableNorms:     trimmed(vals.Get(validation.FieldApplicableNorms).List),
		LegalizationProcess: strings.TrimSpace(vals.Get(validation.FieldLegalizationProcess).Text),
	}
	return p, sel
}

// trimmed keeps blank codes; the repository rejects them as unknown.
func trimmed(codes []string) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
