package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"perfdash/domain/employee"
	"perfdash/internal/dashboard"
	"perfdash/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"
)

// 1x1 transparent GIF
var gifPixel = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return newServerFor(t, []employee.Record{
		{Name: "Ana", Gender: "Female", MaritalStatus: "Single", Age: 30, Salary: 5000, AverageWorkHours: 40, PerformanceScore: 4, Position: "Dev"},
		{Name: "Luis", Gender: "Male", MaritalStatus: "Married", Age: 50, Salary: 9000, AverageWorkHours: 45, PerformanceScore: 3, Position: "Ops"},
		{Name: "Eva", Gender: "Female", MaritalStatus: "Single", Age: 25, Salary: 4000, AverageWorkHours: 38, PerformanceScore: 5, Position: "QA"},
		{Name: "Rosa", Gender: "Female", MaritalStatus: "Married", Age: 41, Salary: 6500, AverageWorkHours: 42, PerformanceScore: 1, Position: "Dev"},
	})
}

func newServerFor(t *testing.T, records []employee.Record) *Server {
	t.Helper()

	ds, err := employee.New(records)
	require.NoError(t, err)

	narrative, err := dashboard.LoadNarrative()
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	srv, err := NewServer(os.DirFS(".."), Dependencies{
		Board:     dashboard.NewBoard(ds, dashboard.DefaultOptions(), logger),
		Narrative: narrative,
		Logo:      &Asset{Path: "logo.gif", ContentType: "image/gif", Data: gifPixel},
		Logger:    logger,
	})
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) dashboard.View {
	t.Helper()
	var view dashboard.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "Dashboard de Análisis de Desempeño")
	assert.Contains(t, body, "Conclusión del Análisis")
	assert.Contains(t, body, `<option value="Female" selected>`)
	assert.Contains(t, body, `<option value="Single" selected>`)
	assert.Contains(t, body, `name="score_min" min="1" max="5" step="1" value="1"`)
	assert.Contains(t, body, `name="score_max" min="1" max="5" step="1" value="5"`)
	assert.Contains(t, body, `src="/logo"`)
	assert.Contains(t, body, "Ana")
	assert.NotContains(t, body, "Luis")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(body), "</html>"))
}

func TestIndexFallsBackOnInvalidCriteria(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/?gender=Other")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<option value="Female" selected>`)
}

func TestViewDefaults(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/api/view")

	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeView(t, rec)
	assert.Equal(t, "Female", view.Criteria.Gender)
	assert.Equal(t, "Single", view.Criteria.MaritalStatus)
	assert.Equal(t, 1, view.Criteria.ScoreMin)
	assert.Equal(t, 5, view.Criteria.ScoreMax)
	assert.Equal(t, 2, view.RowCount)
	assert.Equal(t, 4, view.TotalCount)
	assert.Len(t, view.Charts.AverageHours.Data, 2)
	assert.NotEmpty(t, rec.Header().Get(headerRequestID))
}

func TestViewAppliesQuery(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/api/view?gender=Female&marital_status=Single&score_min=5&score_max=5")

	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeView(t, rec)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "Eva", view.Rows[0][0])
}

func TestViewSwapsAndClampsRange(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/api/view?score_min=99&score_max=-4")

	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeView(t, rec)
	assert.Equal(t, 1, view.Criteria.ScoreMin)
	assert.Equal(t, 5, view.Criteria.ScoreMax)
}

func TestViewChartSpecs(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/api/view")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Equal(t, "Histograma del Desempeño", gjson.Get(body, "charts.histogram.layout.title.text").String())
	assert.InDelta(t, 0.2, gjson.Get(body, "charts.histogram.layout.bargap").Float(), 1e-9)
	assert.Equal(t, "#636EFA", gjson.Get(body, "charts.histogram.data.0.marker.color").String())
	assert.Equal(t, []string{"Female", "Male"}, stringsOf(gjson.Get(body, "charts.age_salary.data.#.name")))
	assert.Equal(t, "area", gjson.Get(body, "charts.hours_score.data.0.marker.sizemode").String())
	assert.Equal(t, "40.00", gjson.Get(body, "charts.average_hours.data.0.text.0").String())
}

func stringsOf(r gjson.Result) []string {
	var out []string
	for _, v := range r.Array() {
		out = append(out, v.String())
	}
	return out
}

func TestViewSelectsEmptyCategory(t *testing.T) {
	srv := newServerFor(t, []employee.Record{
		{Name: "Ana", Gender: "Female", MaritalStatus: "Single", Age: 30, Salary: 5000, AverageWorkHours: 40, PerformanceScore: 4, Position: "Dev"},
		{Name: "Noa", Gender: "", MaritalStatus: "Single", Age: 33, Salary: 5200, AverageWorkHours: 41, PerformanceScore: 3, Position: "QA"},
	})

	rec := get(t, srv, "/api/view?gender=&marital_status=Single")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeView(t, rec)
	assert.Equal(t, "", view.Criteria.Gender)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "Noa", view.Rows[0][0])

	rec = get(t, srv, "/api/view?marital_status=Single")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Female", decodeView(t, rec).Criteria.Gender)
}

func TestViewEmptySelection(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/api/view?gender=Male&marital_status=Single")

	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeView(t, rec)
	assert.Zero(t, view.RowCount)
	assert.NotNil(t, view.Rows)
	assert.Empty(t, view.Rows)
}

func TestViewRejectsInvalidInput(t *testing.T) {
	srv := newTestServer(t)

	for _, target := range []string{
		"/api/view?score_min=abc",
		"/api/view?score_max=1.5",
		"/api/view?gender=Other",
		"/api/view?marital_status=Unknown",
		"/fragments/table?gender=Other",
	} {
		t.Run(target, func(t *testing.T) {
			rec := get(t, srv, target)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, errors.CodeInvalidInput, body["code"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestOptions(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/api/options")

	require.Equal(t, http.StatusOK, rec.Code)
	var opts dashboard.FilterOptions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Equal(t, []string{"Female", "Male"}, opts.Genders)
	assert.Equal(t, []string{"Single", "Married"}, opts.MaritalStatuses)
	assert.Equal(t, employee.ScoreBounds{Min: 1, Max: 5}, opts.ScoreBounds)
}

func TestTableFragment(t *testing.T) {
	srv := newTestServer(t)

	rec := get(t, srv, "/fragments/table?gender=Female&marital_status=Married")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Rosa")
	assert.NotContains(t, body, "Ana")
	assert.NotContains(t, body, "<html")

	rec = get(t, srv, "/fragments/table?gender=Male&marital_status=Single")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sin registros")
}

func TestExportCSV(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/api/export?format=csv&gender=Male&marital_status=Married")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "employee_data_filtered.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(employee.RequiredColumns, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Luis,Male,Married,50,"))
}

func TestExportXLSX(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/api/export?format=xlsx")

	require.Equal(t, http.StatusOK, rec.Code)
	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, os.WriteFile(path, rec.Body.Bytes(), 0o644))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/api/export?format=pdf")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoHealthAndStatic(t *testing.T) {
	srv := newTestServer(t)

	rec := get(t, srv, "/logo")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/gif", rec.Header().Get("Content-Type"))
	assert.Equal(t, gifPixel, rec.Body.Bytes())

	rec = get(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","records":4}`, rec.Body.String())

	rec = get(t, srv, "/static/js/dashboard.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Plotly.react")

	rec = get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestRequestIDIsPropagated(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(headerRequestID, "abc-123")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(headerRequestID))
}

func TestLoadAsset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.gif")
	require.NoError(t, os.WriteFile(path, gifPixel, 0o644))

	asset, err := LoadAsset(path)
	require.NoError(t, err)
	assert.Equal(t, "image/gif", asset.ContentType)

	_, err = LoadAsset(filepath.Join(dir, "missing.jpg"))
	assert.True(t, errors.HasCode(err, errors.CodeAssetMissing))

	empty := filepath.Join(dir, "empty.jpg")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = LoadAsset(empty)
	assert.True(t, errors.HasCode(err, errors.CodeAssetMissing))
}

func TestNewServerRequiresBoard(t *testing.T) {
	_, err := NewServer(os.DirFS(".."), Dependencies{})
	assert.Error(t, err)
}
