// Package sanitize escapes user-entered project text before it is shown.
package sanitize

import (
	"html"

	"github.com/yukikurage/lift-project-api/internal/models"
)

// Project returns a copy of p with every free-text column HTML-escaped.
// Postal codes only ever hold digits and are returned as stored.
func Project(p models.Project) models.Project {
	for _, s := range freeText(&p) {
		*s = html.EscapeString(*s)
	}
	return p
}

// Text escapes a single value.
func Text(s string) string {
	return html.EscapeString(s)
}

func freeText(p *models.Project) []*string {
	return []*string{
		&p.OrderNumber, &p.RAE,
		&p.ClientName, &p.ClientNIF, &p.ClientAddress, &p.ClientCity,
		&p.LiftAddress, &p.LiftCity,
		&p.ExamType, &p.OCA, &p.QMS,
		&p.NominalLoad, &p.Speed, &p.MachineRoom, &p.Passengers, &p.ControlSystem,
		&p.CabDimensions, &p.Stops, &p.NominalTension, &p.DoorType, &p.Travel,
		&p.NominalPower, &p.DoorSize, &p.NumCable, &p.NominalIntensity,
		&p.CableDiameter, &p.Ratio, &p.CabMass, &p.CabRails, &p.CwMass, &p.CwRails,
		&p.LockingDevice1, &p.LockingDevice2, &p.MachineBrake,
		&p.CabParachute, &p.CwParachute, &p.CabSpeedGovernor, &p.CwSpeedGovernor,
		&p.CabBuffer, &p.CwBuffer, &p.SafetyCircuit,
		&p.UCMDetect, &p.UCMAct, &p.UCMStop,
	}
}
