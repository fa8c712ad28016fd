package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/lift-project-api/internal/catalog"
	"github.com/yukikurage/lift-project-api/internal/constants"
	"github.com/yukikurage/lift-project-api/internal/middleware"
	"github.com/yukikurage/lift-project-api/internal/models"
	"github.com/yukikurage/lift-project-api/internal/repository"
	"github.com/yukikurage/lift-project-api/internal/services"
	"github.com/yukikurage/lift-project-api/internal/testutil"
	"gorm.io/gorm"
)

type fakeEngine struct {
	html string
	err  error
}

func (f *fakeEngine) Render(_ context.Context, html, _ string) ([]byte, error) {
	f.html = html
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.7 fake"), nil
}

type ProjectHandlerSuite struct {
	suite.Suite
	db     *gorm.DB
	engine *fakeEngine
	owner  *models.User
	other  *models.User
}

func TestProjectHandlerSuite(t *testing.T) {
	suite.Run(t, new(ProjectHandlerSuite))
}

func (s *ProjectHandlerSuite) SetupTest() {
	s.db = testutil.SetupTestDB(s.T())
	s.engine = &fakeEngine{}
	s.owner = testutil.CreateTestUser(s.T(), s.db)
	s.other = testutil.CreateTestUser(s.T(), s.db)
}

// router serves the project routes as userID.
func (s *ProjectHandlerSuite) router(userID uint64) *gin.Engine {
	projectRepo := repository.NewProjectRepository(s.db)
	catalogRepo := repository.NewCatalogRepository(s.db)
	now := func() time.Time { return time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC) }
	handler := NewProjectHandler(
		services.NewProjectService(projectRepo, catalogRepo),
		services.NewDocumentService(projectRepo, s.engine, now),
	)

	r := newSessionRouter()
	projects := r.Group("/api/projects", withUser(userID))
	projects.GET("", handler.ListProjects)
	projects.POST("", handler.CreateProject)
	projects.POST("/validate-field", handler.ValidateField)
	owned := projects.Group("/:id", middleware.RequireProjectAccess(projectRepo))
	owned.GET("", handler.GetProject)
	owned.PUT("", handler.UpdateProject)
	owned.DELETE("", handler.DeleteProject)
	owned.GET("/document", handler.GetDocument)
	return r
}

func projectPayload(order string) map[string]interface{} {
	return map[string]interface{}{
		"orderNumber":         order,
		"rae":                 "RAE-" + order,
		"clientName":          "Comunidad <Sol>",
		"clientNIF":           "H12345678",
		"clientAddress":       "Calle Mayor 1",
		"clientCity":          "Madrid",
		"clientZip":           "28001",
		"liftAddress":         "Calle Mayor 1",
		"liftCity":            "Madrid",
		"liftZip":             "28001",
		"modificationTypes":   []string{"SUST_MAQUINA", "UCM"},
		"applicableNorms":     []string{"EN81-20"},
		"legalizationProcess": "MOD_IMPORTANTE",
		"speed":               "1 m/s",
	}
}

func (s *ProjectHandlerSuite) create(order string) uint64 {
	w := doJSON(s.T(), s.router(s.owner.ID), http.MethodPost, "/api/projects", projectPayload(order))
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	project := decode(s.T(), w)["project"].(map[string]interface{})
	return uint64(project["id"].(float64))
}

func (s *ProjectHandlerSuite) TestCreate() {
	id := s.create("ORD-1")

	var stored models.Project
	s.Require().NoError(s.db.First(&stored, id).Error)
	s.Equal("Comunidad <Sol>", stored.ClientName)
	s.Equal("1 m/s", stored.Speed)
	s.Equal(int64(2), testutil.CountRows(s.T(), s.db, &models.ProjectModificationType{}))
}

func (s *ProjectHandlerSuite) TestCreate_FormEncoded() {
	form := url.Values{}
	for k, v := range projectPayload("ORD-F") {
		switch val := v.(type) {
		case string:
			form.Set(k, val)
		case []string:
			for _, code := range val {
				form.Add(k, code)
			}
		}
	}
	req := httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.router(s.owner.ID).ServeHTTP(w, req)

	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Equal(int64(1), testutil.CountRows(s.T(), s.db, &models.ProjectApplicableNorm{}))
}

func (s *ProjectHandlerSuite) TestCreate_FieldErrors() {
	payload := projectPayload("ORD-2")
	payload["clientZip"] = "2800"
	payload["modificationTypes"] = []string{"SUST_MAQUINA", "NOPE"}
	delete(payload, "rae")

	w := doJSON(s.T(), s.router(s.owner.ID), http.MethodPost, "/api/projects", payload)

	s.Require().Equal(http.StatusBadRequest, w.Code)
	errs := fieldErrors(s.T(), w)
	s.Equal(constants.MsgPostalCode, errs["clientZip"])
	s.Equal(constants.MsgInvalidModification, errs["modificationTypes"])
	s.Equal(constants.MsgRequired, errs["rae"])
	s.Equal(int64(0), testutil.CountRows(s.T(), s.db, &models.Project{}))
	s.Equal(int64(0), testutil.CountRows(s.T(), s.db, &models.ProjectModificationType{}))
}

func (s *ProjectHandlerSuite) TestCreate_DuplicateOrderNumber() {
	s.create("ORD-3")

	w := doJSON(s.T(), s.router(s.owner.ID), http.MethodPost, "/api/projects", projectPayload("ORD-3"))
	s.Require().Equal(http.StatusBadRequest, w.Code)
	s.Equal(constants.MsgOrderNumberTaken, fieldErrors(s.T(), w)["orderNumber"])

	// Order numbers are unique per user only
	w = doJSON(s.T(), s.router(s.other.ID), http.MethodPost, "/api/projects", projectPayload("ORD-3"))
	s.Equal(http.StatusCreated, w.Code)
}

func (s *ProjectHandlerSuite) TestGet_Sanitized() {
	id := s.create("ORD-4")

	w := doJSON(s.T(), s.router(s.owner.ID), http.MethodGet, fmt.Sprintf("/api/projects/%d", id), nil)

	s.Require().Equal(http.StatusOK, w.Code)
	data := decode(s.T(), w)["data"].(map[string]interface{})
	s.Equal("Comunidad &lt;Sol&gt;", data["client_name"])
	s.Equal([]interface{}{"SUST_MAQUINA", "UCM"}, data["mod_codes"])
	s.Equal([]interface{}{"MOD_IMPORTANTE"}, data["process_codes"])
}

func (s *ProjectHandlerSuite) TestOtherUsersProjectIsNotFound() {
	id := s.create("ORD-5")
	r := s.router(s.other.ID)
	path := fmt.Sprintf("/api/projects/%d", id)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w := doJSON(s.T(), r, method, path, projectPayload("ORD-5"))
		s.Equal(http.StatusNotFound, w.Code, method)
		s.Equal(constants.MsgProjectNotFound, decode(s.T(), w)["message"], method)
	}
	w := doJSON(s.T(), r, http.MethodGet, path+"/document", nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = doJSON(s.T(), r, http.MethodGet, "/api/projects/abc", nil)
	s.Equal(http.StatusNotFound, w.Code)

	s.Equal(int64(1), testutil.CountRows(s.T(), s.db, &models.Project{}))
}

func (s *ProjectHandlerSuite) TestUpdate_ReplacesAssociations() {
	id := s.create("ORD-6")
	payload := projectPayload("ORD-6")
	payload["modificationTypes"] = []string{"SUST_CUADRO"}
	payload["applicableNorms"] = []string{"EN81-50", "EN81-80"}
	payload["speed"] = ""

	w := doJSON(s.T(), s.router(s.owner.ID), http.MethodPut, fmt.Sprintf("/api/projects/%d", id), payload)

	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var stored models.Project
	s.Require().NoError(s.db.First(&stored, id).Error)
	s.Empty(stored.Speed)
	s.Require().NotNil(stored.UpdatedAt)
	s.Equal(int64(1), testutil.CountRows(s.T(), s.db, &models.ProjectModificationType{}))
	s.Equal(int64(2), testutil.CountRows(s.T(), s.db, &models.ProjectApplicableNorm{}))
}

func (s *ProjectHandlerSuite) TestDelete() {
	id := s.create("ORD-7")

	w := doJSON(s.T(), s.router(s.owner.ID), http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), nil)

	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(float64(id), decode(s.T(), w)["id"])
	s.Equal(int64(0), testutil.CountRows(s.T(), s.db, &models.Project{}))
	s.Equal(int64(0), testutil.CountRows(s.T(), s.db, &models.ProjectModificationType{}))
	s.Equal(int64(0), testutil.CountRows(s.T(), s.db, &models.ProjectLegalizationProcess{}))
}

func (s *ProjectHandlerSuite) TestList() {
	s.create("ORD-A")
	s.create("ORD-B")
	testutil.CreateTestProject(s.T(), s.db, s.other.ID, "ORD-X")
	r := s.router(s.owner.ID)

	w := doJSON(s.T(), r, http.MethodGet, "/api/projects", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	body := decode(s.T(), w)
	s.Len(body["projects"], 2)
	s.NotContains(body, "pagination")

	w = doJSON(s.T(), r, http.MethodGet, "/api/projects?page=2&limit=1", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	body = decode(s.T(), w)
	s.Len(body["projects"], 1)
	s.Equal(map[string]interface{}{"page": float64(2), "limit": float64(1), "total": float64(2)}, body["pagination"])
}

func (s *ProjectHandlerSuite) TestValidateField() {
	id := s.create("ORD-8")
	r := s.router(s.owner.ID)

	tests := []struct {
		name        string
		payload     map[string]interface{}
		wantSuccess bool
		wantMessage string
	}{
		{"taken order", map[string]interface{}{"field": "orderNumber", "value": "ORD-8"}, false, constants.MsgOrderNumberTaken},
		{"own order while editing", map[string]interface{}{"field": "orderNumber", "value": "ORD-8", "project_id": fmt.Sprint(id)}, true, ""},
		{"bad zip", map[string]interface{}{"field": "liftZip", "value": "28A01"}, false, constants.MsgPostalCode},
		{"norms list", map[string]interface{}{"field": "applicableNorms", "value": []string{"EN81-20", "EN81-50"}}, true, ""},
		{"unknown process", map[string]interface{}{"field": "legalizationProcess", "value": "OTRO"}, false, constants.MsgInvalidProcess},
		{"unknown field", map[string]interface{}{"field": "colour", "value": "red"}, false, constants.MsgInvalidField},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := doJSON(s.T(), r, http.MethodPost, "/api/projects/validate-field", tt.payload)
			s.Require().Equal(http.StatusOK, w.Code)
			body := decode(s.T(), w)
			s.Equal(tt.wantSuccess, body["success"])
			s.Equal(tt.wantMessage, body["message"])
		})
	}
}

func (s *ProjectHandlerSuite) TestGetDocument() {
	id := s.create("ORD/9 ñ")

	w := doJSON(s.T(), s.router(s.owner.ID), http.MethodGet, fmt.Sprintf("/api/projects/%d/document", id), nil)

	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("application/pdf", w.Header().Get("Content-Type"))
	s.Contains(w.Header().Get("Content-Disposition"), "inline")
	s.Contains(w.Header().Get("Content-Disposition"), "filename*=utf-8''proyecto_ORD%2F9%20%C3%B1.pdf")
	s.Equal("%PDF-1.7 fake", w.Body.String())
	s.Contains(s.engine.html, "Comunidad &lt;Sol&gt;")
}

func (s *ProjectHandlerSuite) TestGetDocument_ControlCharacterOrderNumber() {
	id := s.create("ORD\x01-11")

	w := doJSON(s.T(), s.router(s.owner.ID), http.MethodGet, fmt.Sprintf("/api/projects/%d/document", id), nil)

	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.NotEmpty(w.Header().Get("Content-Disposition"))
	s.Contains(w.Header().Get("Content-Disposition"), "inline")
}

func (s *ProjectHandlerSuite) TestGetDocument_RenderFailure() {
	id := s.create("ORD-10")
	s.engine.err = errors.New("chrome crashed")

	w := doJSON(s.T(), s.router(s.owner.ID), http.MethodGet, fmt.Sprintf("/api/projects/%d/document", id), nil)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal(constants.MsgGenericFailure, decode(s.T(), w)["message"])
}

func TestCatalogHandler_ListCatalogs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	data, err := catalog.Default()
	require.NoError(t, err)
	handler := NewCatalogHandler(repository.NewCatalogRepository(db), data)

	r := gin.New()
	r.GET("/api/catalogs", handler.ListCatalogs)
	w := doJSON(t, r, http.MethodGet, "/api/catalogs", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)["data"].(map[string]interface{})
	assert.Len(t, body["modification_types"], len(data.ModificationTypes))
	assert.Len(t, body["applicable_norms"], len(data.ApplicableNorms))
	assert.Len(t, body["legalization_processes"], len(data.LegalizationProcesses))
	specs := body["technical_specs"].(map[string]interface{})
	assert.Contains(t, specs, "machineRoom")
	certs := body["certificates"].(map[string]interface{})
	assert.Contains(t, certs, "ucmDetect")
}

func TestContentDisposition(t *testing.T) {
	tests := []struct {
		name        string
		disposition string
		filename    string
		want        string
	}{
		{"token", "inline", "proyecto_A-1.pdf", "inline; filename=proyecto_A-1.pdf"},
		{"quoted", "inline", "proyecto_A 1.pdf", `inline; filename="proyecto_A 1.pdf"`},
		{"unencodable falls back", "in line", "proyecto_A-1.pdf", fallbackDisposition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contentDisposition(tt.disposition, tt.filename))
		})
	}

	assert.NotEmpty(t, contentDisposition("inline", "proyecto_\x01\x7f.pdf"))
}
