// Package validation checks project and account form input.
package validation

import (
	"fmt"

	"github.com/yukikurage/lift-project-api/internal/catalog"
)

// Field is a project form field. The set is closed; request keys coming from
// clients are mapped through FieldByKey and anything else is rejected.
type Field int

const (
	FieldOrderNumber Field = iota
	FieldRAE
	FieldClientName
	FieldClientNIF
	FieldClientAddress
	FieldClientCity
	FieldClientZip
	FieldLiftAddress
	FieldLiftCity
	FieldLiftZip
	FieldModificationTypes
	FieldApplicableNorms
	FieldLegalizationProcess
	FieldExamType
	FieldOCA
	FieldQMS
	FieldNominalLoad
	FieldSpeed
	FieldMachineRoom
	FieldPassengers
	FieldControlSystem
	FieldCabDimensions
	FieldStops
	FieldNominalTension
	FieldDoorType
	FieldTravel
	FieldNominalPower
	FieldDoorSize
	FieldNumCable
	FieldNominalIntensity
	FieldCableDiameter
	FieldRatio
	FieldCabMass
	FieldCabRails
	FieldCwMass
	FieldCwRails
	FieldLockingDevice1
	FieldLockingDevice2
	FieldMachineBrake
	FieldCabParachute
	FieldCwParachute
	FieldCabSpeedGovernor
	FieldCwSpeedGovernor
	FieldCabBuffer
	FieldCwBuffer
	FieldSafetyCircuit
	FieldUCMDetect
	FieldUCMAct
	FieldUCMStop

	fieldCount
)

// Rule selects the check applied to a field after the required check.
type Rule int

const (
	RuleText Rule = iota
	RulePostalCode
	RuleOrderNumber
	RuleCatalogMulti
	RuleCatalogSingle
)

type fieldSpec struct {
	key      string
	rule     Rule
	required bool
	kind     catalog.Kind
}

var specs = [fieldCount]fieldSpec{
	FieldOrderNumber:         {key: "orderNumber", rule: RuleOrderNumber, required: true},
	FieldRAE:                 {key: "rae", required: true},
	FieldClientName:          {key: "clientName", required: true},
	FieldClientNIF:           {key: "clientNIF", required: true},
	FieldClientAddress:       {key: "clientAddress", required: true},
	FieldClientCity:          {key: "clientCity", required: true},
	FieldClientZip:           {key: "clientZip", rule: RulePostalCode, required: true},
	FieldLiftAddress:         {key: "liftAddress", required: true},
	FieldLiftCity:            {key: "liftCity", required: true},
	FieldLiftZip:             {key: "liftZip", rule: RulePostalCode, required: true},
	FieldModificationTypes:   {key: "modificationTypes", rule: RuleCatalogMulti, required: true, kind: catalog.ModificationTypes},
	FieldApplicableNorms:     {key: "applicableNorms", rule: RuleCatalogMulti, required: true, kind: catalog.ApplicableNorms},
	FieldLegalizationProcess: {key: "legalizationProcess", rule: RuleCatalogSingle, required: true, kind: catalog.LegalizationProcesses},
	FieldExamType:            {key: "examType"},
	FieldOCA:                 {key: "oca"},
	FieldQMS:                 {key: "qualityManagementSystem"},
	FieldNominalLoad:         {key: "nominalLoad"},
	FieldSpeed:               {key: "speed"},
	FieldMachineRoom:         {key: "machineRoom"},
	FieldPassengers:          {key: "passengers"},
	FieldControlSystem:       {key: "controlSystem"},
	FieldCabDimensions:       {key: "cabDimensions"},
	FieldStops:               {key: "stops"},
	FieldNominalTension:      {key: "nominalTension"},
	FieldDoorType:            {key: "doorType"},
	FieldTravel:              {key: "travel"},
	FieldNominalPower:        {key: "nominalPower"},
	FieldDoorSize:            {key: "doorSize"},
	FieldNumCable:            {key: "numCable"},
	FieldNominalIntensity:    {key: "nominalIntensity"},
	FieldCableDiameter:       {key: "cableDiameter"},
	FieldRatio:               {key: "ratio"},
	FieldCabMass:             {key: "cabMass"},
	FieldCabRails:            {key: "cabRails"},
	FieldCwMass:              {key: "cwMass"},
	FieldCwRails:             {key: "cwRails"},
	FieldLockingDevice1:      {key: "lockingDevice1"},
	FieldLockingDevice2:      {key: "lockingDevice2"},
	FieldMachineBrake:        {key: "machineBrake"},
	FieldCabParachute:        {key: "cabParachute"},
	FieldCwParachute:         {key: "cwParachute"},
	FieldCabSpeedGovernor:    {key: "cabSpeedGovernor"},
	FieldCwSpeedGovernor:     {key: "cwSpeedGovernor"},
	FieldCabBuffer:           {key: "cabBuffer"},
	FieldCwBuffer:            {key: "cwBuffer"},
	FieldSafetyCircuit:       {key: "safetyCircuit"},
	FieldUCMDetect:           {key: "ucmDetect"},
	FieldUCMAct:              {key: "ucmAct"},
	FieldUCMStop:             {key: "ucmStop"},
}

var fieldsByKey = func() map[string]Field {
	m := make(map[string]Field, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		m[specs[f].key] = f
	}
	return m
}()

// Fields returns every project field in form order.
func Fields() []Field {
	out := make([]Field, fieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// FieldByKey maps a request key to its field.
func FieldByKey(key string) (Field, bool) {
	f, ok := fieldsByKey[key]
	return f, ok
}

func (f Field) valid() bool { return f >= 0 && f < fieldCount }

// Key is the request and error-map key of the field.
func (f Field) Key() string {
	if !f.valid() {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return specs[f].key
}

func (f Field) String() string { return f.Key() }

// Rule returns the check applied to the field.
func (f Field) Rule() Rule {
	if !f.valid() {
		return RuleText
	}
	return specs[f].rule
}

// Required reports whether the field must be non-empty.
func (f Field) Required() bool {
	return f.valid() && specs[f].required
}

// Catalog returns the catalog a select field draws from.
func (f Field) Catalog() (catalog.Kind, bool) {
	if !f.valid() {
		return 0, false
	}
	switch specs[f].rule {
	case RuleCatalogMulti, RuleCatalogSingle:
		return specs[f].kind, true
	}
	return 0, false
}

// Value is a submitted field value. Select fields use List, the rest Text.
type Value struct {
	Text string
	List []string
}

// Text wraps a scalar value.
func Text(s string) Value { return Value{Text: s} }

// List wraps a multi-select value.
func List(codes ...string) Value { return Value{List: codes} }

// Values holds one submitted value per project field.
type Values [fieldCount]Value

// Get returns the value of f.
func (vs *Values) Get(f Field) Value {
	if !f.valid() {
		return Value{}
	}
	return vs[f]
}

// Set stores the value of f.
func (vs *Values) Set(f Field, v Value) {
	if f.valid() {
		vs[f] = v
	}
}
