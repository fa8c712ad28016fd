package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/lift-project-api/internal/catalog"
	"github.com/yukikurage/lift-project-api/internal/models"
)

func testDocument() *Document {
	return &Document{
		Project: models.Project{
			OrderNumber: "ORD-1",
			ClientName:  "O&#39;Brien &amp; Hijos",
			ClientZip:   "28001",
			UCMDetect:   "MIC-20.50-DETECT.",
		},
		ModificationTypes:     []catalog.Entry{{Code: "UCM", Label: "Protección <UCM>"}},
		LegalizationProcesses: []catalog.Entry{{Code: "MOD_IMPORTANTE", Label: "Modificación importante"}},
		CreatedAt:             time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
		UpdatedAt:             time.Date(2024, 4, 6, 10, 0, 0, 0, time.UTC),
	}
}

func TestHTML(t *testing.T) {
	out, err := HTML(testDocument())
	require.NoError(t, err)

	// Escaped once, not twice
	assert.Contains(t, out, "O&#39;Brien &amp; Hijos")
	assert.NotContains(t, out, "&amp;amp;")
	// Labels go through template escaping
	assert.Contains(t, out, "Protección &lt;UCM&gt;")
	assert.Contains(t, out, "05/03/2024")
	assert.Contains(t, out, "06/04/2024")
	assert.Contains(t, out, "MIC-20.50-DETECT.")
	assert.Contains(t, out, "proyecto técnico y examen")
}

func TestHTML_ConditionalSections(t *testing.T) {
	doc := testDocument()
	doc.ModificationTypes = []catalog.Entry{{Code: "SUST_MAQUINA", Label: "Sustitución de la máquina"}}
	doc.LegalizationProcesses = []catalog.Entry{{Code: "EXAMEN_FINAL", Label: "Examen final"}}

	out, err := HTML(doc)
	require.NoError(t, err)
	assert.NotContains(t, out, "UCM detección")
	assert.NotContains(t, out, "proyecto técnico y examen")
}

func TestStylesheet(t *testing.T) {
	assert.Contains(t, Stylesheet(), "size: A4")
}
