package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/lift-project-api/internal/models"
)

func TestProject(t *testing.T) {
	in := models.Project{
		OrderNumber: `<b>"1"</b>`,
		ClientName:  "O'Brien & Hijos",
		ClientZip:   "28001",
		UCMStop:     "<script>alert(1)</script>",
	}

	out := Project(in)
	assert.Equal(t, "&lt;b&gt;&#34;1&#34;&lt;/b&gt;", out.OrderNumber)
	assert.Equal(t, "O&#39;Brien &amp; Hijos", out.ClientName)
	assert.Equal(t, "28001", out.ClientZip)
	assert.Equal(t, "&lt;script&gt;alert(1)&lt;/script&gt;", out.UCMStop)

	// The input is a value and stays untouched
	assert.Equal(t, "O'Brien & Hijos", in.ClientName)
}

func TestProject_CoversEveryTextColumn(t *testing.T) {
	var p models.Project
	fields := freeText(&p)
	for _, s := range fields {
		*s = "<"
	}

	out := Project(p)
	for _, s := range freeText(&out) {
		assert.Equal(t, "&lt;", *s)
	}
	// 46 text columns minus the two postal codes
	assert.Len(t, fields, 44)
}
