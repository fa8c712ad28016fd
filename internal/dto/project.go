package dto

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/yukikurage/lift-project-api/internal/catalog"
	"github.com/yukikurage/lift-project-api/internal/models"
	"github.com/yukikurage/lift-project-api/internal/repository"
	"github.com/yukikurage/lift-project-api/internal/validation"
)

// ProjectRequest is the project form, accepted as JSON or form data
type ProjectRequest struct {
	OrderNumber   string `json:"orderNumber" form:"orderNumber"`
	RAE           string `json:"rae" form:"rae"`
	ClientName    string `json:"clientName" form:"clientName"`
	ClientNIF     string `json:"clientNIF" form:"clientNIF"`
	ClientAddress string `json:"clientAddress" form:"clientAddress"`
	ClientCity    string `json:"clientCity" form:"clientCity"`
	ClientZip     string `json:"clientZip" form:"clientZip"`
	LiftAddress   string `json:"liftAddress" form:"liftAddress"`
	LiftCity      string `json:"liftCity" form:"liftCity"`
	LiftZip       string `json:"liftZip" form:"liftZip"`

	ModificationTypes   []string `json:"modificationTypes" form:"modificationTypes"`
	ApplicableNorms     []string `json:"applicableNorms" form:"applicableNorms"`
	LegalizationProcess string   `json:"legalizationProcess" form:"legalizationProcess"`

	ExamType string `json:"examType" form:"examType"`
	OCA      string `json:"oca" form:"oca"`
	QMS      string `json:"qualityManagementSystem" form:"qualityManagementSystem"`

	NominalLoad      string `json:"nominalLoad" form:"nominalLoad"`
	Speed            string `json:"speed" form:"speed"`
	MachineRoom      string `json:"machineRoom" form:"machineRoom"`
	Passengers       string `json:"passengers" form:"passengers"`
	ControlSystem    string `json:"controlSystem" form:"controlSystem"`
	CabDimensions    string `json:"cabDimensions" form:"cabDimensions"`
	Stops            string `json:"stops" form:"stops"`
	NominalTension   string `json:"nominalTension" form:"nominalTension"`
	DoorType         string `json:"doorType" form:"doorType"`
	Travel           string `json:"travel" form:"travel"`
	NominalPower     string `json:"nominalPower" form:"nominalPower"`
	DoorSize         string `json:"doorSize" form:"doorSize"`
	NumCable         string `json:"numCable" form:"numCable"`
	NominalIntensity string `json:"nominalIntensity" form:"nominalIntensity"`
	CableDiameter    string `json:"cableDiameter" form:"cableDiameter"`
	Ratio            string `json:"ratio" form:"ratio"`
	CabMass          string `json:"cabMass" form:"cabMass"`
	CabRails         string `json:"cabRails" form:"cabRails"`
	CwMass           string `json:"cwMass" form:"cwMass"`
	CwRails          string `json:"cwRails" form:"cwRails"`

	LockingDevice1   string `json:"lockingDevice1" form:"lockingDevice1"`
	LockingDevice2   string `json:"lockingDevice2" form:"lockingDevice2"`
	MachineBrake     string `json:"machineBrake" form:"machineBrake"`
	CabParachute     string `json:"cabParachute" form:"cabParachute"`
	CwParachute      string `json:"cwParachute" form:"cwParachute"`
	CabSpeedGovernor string `json:"cabSpeedGovernor" form:"cabSpeedGovernor"`
	CwSpeedGovernor  string `json:"cwSpeedGovernor" form:"cwSpeedGovernor"`
	CabBuffer        string `json:"cabBuffer" form:"cabBuffer"`
	CwBuffer         string `json:"cwBuffer" form:"cwBuffer"`
	SafetyCircuit    string `json:"safetyCircuit" form:"safetyCircuit"`
	UCMDetect        string `json:"ucmDetect" form:"ucmDetect"`
	UCMAct           string `json:"ucmAct" form:"ucmAct"`
	UCMStop          string `json:"ucmStop" form:"ucmStop"`
}

// Values returns the submitted values keyed by form field
func (r *ProjectRequest) Values() *validation.Values {
	var vs validation.Values
	text := func(f validation.Field, s string) { vs.Set(f, validation.Text(s)) }

	text(validation.FieldOrderNumber, r.OrderNumber)
	text(validation.FieldRAE, r.RAE)
	text(validation.FieldClientName, r.ClientName)
	text(validation.FieldClientNIF, r.ClientNIF)
	text(validation.FieldClientAddress, r.ClientAddress)
	text(validation.FieldClientCity, r.ClientCity)
	text(validation.FieldClientZip, r.ClientZip)
	text(validation.FieldLiftAddress, r.LiftAddress)
	text(validation.FieldLiftCity, r.LiftCity)
	text(validation.FieldLiftZip, r.LiftZip)
	vs.Set(validation.FieldModificationTypes, validation.List(r.ModificationTypes...))
	vs.Set(validation.FieldApplicableNorms, validation.List(r.ApplicableNorms...))
	text(validation.FieldLegalizationProcess, r.LegalizationProcess)
	text(validation.FieldExamType, r.ExamType)
	text(validation.FieldOCA, r.OCA)
	text(validation.FieldQMS, r.QMS)
	text(validation.FieldNominalLoad, r.NominalLoad)
	text(validation.FieldSpeed, r.Speed)
	text(validation.FieldMachineRoom, r.MachineRoom)
	text(validation.FieldPassengers, r.Passengers)
	text(validation.FieldControlSystem, r.ControlSystem)
	text(validation.FieldCabDimensions, r.CabDimensions)
	text(validation.FieldStops, r.Stops)
	text(validation.FieldNominalTension, r.NominalTension)
	text(validation.FieldDoorType, r.DoorType)
	text(validation.FieldTravel, r.Travel)
	text(validation.FieldNominalPower, r.NominalPower)
	text(validation.FieldDoorSize, r.DoorSize)
	text(validation.FieldNumCable, r.NumCable)
	text(validation.FieldNominalIntensity, r.NominalIntensity)
	text(validation.FieldCableDiameter, r.CableDiameter)
	text(validation.FieldRatio, r.Ratio)
	text(validation.FieldCabMass, r.CabMass)
	text(validation.FieldCabRails, r.CabRails)
	text(validation.FieldCwMass, r.CwMass)
	text(validation.FieldCwRails, r.CwRails)
	text(validation.FieldLockingDevice1, r.LockingDevice1)
	text(validation.FieldLockingDevice2, r.LockingDevice2)
	text(validation.FieldMachineBrake, r.MachineBrake)
	text(validation.FieldCabParachute, r.CabParachute)
	text(validation.FieldCwParachute, r.CwParachute)
	text(validation.FieldCabSpeedGovernor, r.CabSpeedGovernor)
	text(validation.FieldCwSpeedGovernor, r.CwSpeedGovernor)
	text(validation.FieldCabBuffer, r.CabBuffer)
	text(validation.FieldCwBuffer, r.CwBuffer)
	text(validation.FieldSafetyCircuit, r.SafetyCircuit)
	text(validation.FieldUCMDetect, r.UCMDetect)
	text(validation.FieldUCMAct, r.UCMAct)
	text(validation.FieldUCMStop, r.UCMStop)
	return &vs
}

// ValidateFieldRequest is a live check of one form field. Value is a string
// or, for multi-selects, a list of codes.
type ValidateFieldRequest struct {
	Field     string          `json:"field"`
	Value     json.RawMessage `json:"value"`
	ProjectID json.RawMessage `json:"project_id"`
}

// TextValue returns Value as a string. Lists are joined with commas.
func (r *ValidateFieldRequest) TextValue() string {
	v := r.FieldValue()
	if v.List != nil {
		return strings.Join(v.List, ",")
	}
	return v.Text
}

// FieldValue decodes Value into a validation value
func (r *ValidateFieldRequest) FieldValue() validation.Value {
	if len(r.Value) == 0 {
		return validation.Value{}
	}
	var list []string
	if err := json.Unmarshal(r.Value, &list); err == nil {
		return validation.List(list...)
	}
	var s string
	if err := json.Unmarshal(r.Value, &s); err == nil {
		return validation.Text(s)
	}
	// Numbers and other scalars are checked as typed
	return validation.Text(string(r.Value))
}

// ExcludeID returns the project being edited, or zero. It accepts a JSON
// number or a string of digits.
func (r *ValidateFieldRequest) ExcludeID() uint64 {
	raw := strings.Trim(strings.TrimSpace(string(r.ProjectID)), `"`)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// ValidateFieldResponse is the live check outcome. Message is a string, or the
// list of unmet rule flags for the registration password.
type ValidateFieldResponse struct {
	Success bool        `json:"success"`
	Message interface{} `json:"message"`
}

// ProjectSummaryDTO is a project in list responses
type ProjectSummaryDTO struct {
	ID          uint64  `json:"id"`
	OrderNumber string  `json:"order_number"`
	RAE         string  `json:"rae"`
	LiftAddress string  `json:"lift_address"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
}

// ToProjectSummaryDTO converts a project to its list form
func ToProjectSummaryDTO(p models.Project) ProjectSummaryDTO {
	return ProjectSummaryDTO{
		ID:          p.ID,
		OrderNumber: p.OrderNumber,
		RAE:         p.RAE,
		LiftAddress: p.LiftAddress,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProjectSummaryDTOs converts a list of projects
func ToProjectSummaryDTOs(projects []models.Project) []ProjectSummaryDTO {
	out := make([]ProjectSummaryDTO, len(projects))
	for i, p := range projects {
		out[i] = ToProjectSummaryDTO(p)
	}
	return out
}

// ProjectDetailDTO is a project with its catalog entries
type ProjectDetailDTO struct {
	models.Project
	ModificationTypes   []catalog.Entry `json:"modification_types"`
	ApplicableNorms     []catalog.Entry `json:"applicable_norms"`
	LegalizationProcess []catalog.Entry `json:"legalization_process"`
	ModificationCodes   []string        `json:"mod_codes"`
	ProcessCodes        []string        `json:"process_codes"`
}

// ToProjectDetailDTO converts a repository detail
func ToProjectDetailDTO(d repository.ProjectDetail) ProjectDetailDTO {
	return ProjectDetailDTO{
		Project:             d.Project,
		ModificationTypes:   nonNil(d.ModificationTypes),
		ApplicableNorms:     nonNil(d.ApplicableNorms),
		LegalizationProcess: nonNil(d.LegalizationProcesses),
		ModificationCodes:   codes(d.ModificationTypes),
		ProcessCodes:        codes(d.LegalizationProcesses),
	}
}

// CatalogsDTO is the reference data offered by the project form
type CatalogsDTO struct {
	ModificationTypes     []catalog.Entry     `json:"modification_types"`
	ApplicableNorms       []catalog.Entry     `json:"applicable_norms"`
	LegalizationProcesses []catalog.Entry     `json:"legalization_processes"`
	TechnicalSpecs        map[string][]string `json:"technical_specs"`
	Certificates          map[string][]string `json:"certificates"`
}

func nonNil(entries []catalog.Entry) []catalog.Entry {
	if entries == nil {
		return []catalog.Entry{}
	}
	return entries
}

func codes(entries []catalog.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Code
	}
	return out
}
