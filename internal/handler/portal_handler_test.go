package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/middleware"
	"github.com/noah-isme/classroom-portal/internal/models"
	"github.com/noah-isme/classroom-portal/internal/service"
	"github.com/noah-isme/classroom-portal/pkg/config"
	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
	"github.com/noah-isme/classroom-portal/pkg/storage"
)

var (
	adminID   = &models.Identity{UserID: 1, Name: "Root", Email: "root@x", Role: models.RoleAdmin}
	studentID = &models.Identity{UserID: 5, Name: "Ann", Email: "a@x", Role: models.RoleStudent}
)

type request struct {
	method      string
	route       string
	target      string
	body        io.Reader
	contentType string
	identity    *models.Identity
}

func serve(t *testing.T, h gin.HandlerFunc, req request) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Sessions(config.SessionConfig{Backend: config.SessionBackendMemory, Name: "session", Secret: "test", MaxAge: time.Hour}))
	r.Use(func(c *gin.Context) {
		if req.identity != nil {
			c.Set(middleware.ContextIdentityKey, *req.identity)
		}
		c.Next()
	})
	r.Handle(req.method, req.route, h)

	if req.target == "" {
		req.target = req.route
	}
	httpReq := httptest.NewRequest(req.method, req.target, req.body)
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httpReq)
	return rec
}

func formBody(values url.Values) (io.Reader, string) {
	return strings.NewReader(values.Encode()), "application/x-www-form-urlencoded"
}

func multipartBody(t *testing.T, fields map[string]string, filename, content string) (io.Reader, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

type fakeAuthService struct {
	user        *models.User
	err         error
	registered  []dto.RegisterRequest
	registerErr error
}

func (f *fakeAuthService) Authenticate(context.Context, string, string) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeAuthService) Register(_ context.Context, req dto.RegisterRequest) (*models.User, error) {
	f.registered = append(f.registered, req)
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{UserID: 1, Name: req.Name, Email: req.Email, Role: models.UserRole(req.Role)}, nil
}

func TestLoginSuccessRedirectsToDashboard(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{user: &models.User{UserID: 2, Name: "Ann", Email: "a@x", Role: models.RoleStudent}})
	body, ct := formBody(url.Values{"email": {"a@x"}, "password": {"p"}})

	rec := serve(t, h.Login, request{method: http.MethodPost, route: "/", body: body, contentType: ct})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	assert.NotEmpty(t, rec.Header().Get("Set-Cookie"))
}

func TestLoginFailureIsUnauthorized(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{err: appErrors.ErrInvalidCredentials})
	body, ct := formBody(url.Values{"email": {"a@x"}, "password": {"nope"}})

	rec := serve(t, h.Login, request{method: http.MethodPost, route: "/", body: body, contentType: ct})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password.")
}

func TestLoginMissingFields(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{})
	body, ct := formBody(url.Values{"email": {"a@x"}})

	rec := serve(t, h.Login, request{method: http.MethodPost, route: "/", body: body, contentType: ct})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestSignup(t *testing.T) {
	cases := []struct {
		name     string
		form     url.Values
		svcErr   error
		status   int
		location string
	}{
		{name: "created", form: url.Values{"name": {"Ann"}, "email": {"a@x"}, "password": {"p"}, "role": {"Student"}}, status: http.StatusSeeOther, location: "/"},
		{name: "email taken", form: url.Values{"name": {"Ann"}, "email": {"a@x"}, "password": {"p"}, "role": {"Student"}}, svcErr: appErrors.ErrEmailTaken, status: http.StatusSeeOther, location: "/signup"},
		{name: "bad role", form: url.Values{"name": {"Ann"}, "email": {"a@x"}, "password": {"p"}, "role": {"Teacher"}}, status: http.StatusBadRequest},
		{name: "missing name", form: url.Values{"email": {"a@x"}, "password": {"p"}, "role": {"Admin"}}, status: http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeAuthService{registerErr: tc.svcErr}
			body, ct := formBody(tc.form)

			rec := serve(t, NewAuthHandler(svc).Signup, request{method: http.MethodPost, route: "/signup", body: body, contentType: ct})

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.location, rec.Header().Get("Location"))
		})
	}
}

func TestLogoutRedirectsToLogin(t *testing.T) {
	rec := serve(t, NewAuthHandler(&fakeAuthService{}).Logout, request{method: http.MethodGet, route: "/logout"})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestLoginViewReturnsFlashes(t *testing.T) {
	rec := serve(t, NewAuthHandler(&fakeAuthService{}).LoginView, request{method: http.MethodGet, route: "/"})

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.JSONEq(t, `{"flashes": []}`, string(env["meta"]))
	assert.JSONEq(t, `{"view": "login"}`, string(env["data"]))
}

type fakeDashboardService struct{ got models.Identity }

func (f *fakeDashboardService) ForIdentity(_ context.Context, actor models.Identity) models.Dashboard {
	f.got = actor
	return models.Dashboard{Role: actor.Role, Students: []models.UserView{{UserID: 5, Name: "Ann", Role: models.RoleStudent}}}
}

func TestDashboardPassesIdentity(t *testing.T) {
	svc := &fakeDashboardService{}

	rec := serve(t, NewDashboardHandler(svc).Show, request{method: http.MethodGet, route: "/dashboard", identity: adminID})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, *adminID, svc.got)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Contains(t, rec.Body.String(), `"students":[{"user_id":5`)
}

func TestDashboardWithoutIdentity(t *testing.T) {
	rec := serve(t, NewDashboardHandler(&fakeDashboardService{}).Show, request{method: http.MethodGet, route: "/dashboard"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type fakeLectureService struct {
	req      dto.MaterialUploadRequest
	filename string
	content  string
	err      error
}

func (f *fakeLectureService) List(context.Context) []models.Lecture { return []models.Lecture{} }

func (f *fakeLectureService) Upload(_ context.Context, _ models.Identity, req dto.MaterialUploadRequest, upload service.Upload) (*models.Lecture, error) {
	f.req = req
	if upload.Reader == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is required")
	}
	data, _ := io.ReadAll(upload.Reader)
	f.filename, f.content = upload.Filename, string(data)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Lecture{LectureID: 1}, nil
}

func TestLectureUploadPassesMultipart(t *testing.T) {
	svc := &fakeLectureService{}
	body, ct := multipartBody(t, map[string]string{"title": "Intro", "description": "week 1"}, "intro.pdf", "%PDF")

	rec := serve(t, NewLectureHandler(svc, 1<<20).Upload, request{method: http.MethodPost, route: "/admin/lectures", body: body, contentType: ct, identity: adminID})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/lectures", rec.Header().Get("Location"))
	assert.Equal(t, "Intro", svc.req.Title)
	assert.Equal(t, "intro.pdf", svc.filename)
	assert.Equal(t, "%PDF", svc.content)
}

func TestLectureUploadValidation(t *testing.T) {
	noTitle, ct1 := multipartBody(t, map[string]string{"description": "x"}, "intro.pdf", "%PDF")
	noFile, ct2 := multipartBody(t, map[string]string{"title": "Intro"}, "", "")
	tooBig, ct3 := multipartBody(t, map[string]string{"title": "Intro"}, "big.bin", strings.Repeat("x", 64))

	for name, tc := range map[string]struct {
		body io.Reader
		ct   string
	}{"no title": {noTitle, ct1}, "no file": {noFile, ct2}, "too big": {tooBig, ct3}} {
		t.Run(name, func(t *testing.T) {
			rec := serve(t, NewLectureHandler(&fakeLectureService{}, 16).Upload, request{method: http.MethodPost, route: "/admin/lectures", body: tc.body, contentType: tc.ct, identity: adminID})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

type fakeAssignmentService struct{ overview models.AssignmentOverview }

func (f *fakeAssignmentService) Overview(context.Context) models.AssignmentOverview { return f.overview }

func (f *fakeAssignmentService) Upload(context.Context, models.Identity, dto.MaterialUploadRequest, service.Upload) (*models.Assignment, error) {
	return &models.Assignment{AssignmentID: 1}, nil
}

func TestAssignmentOverview(t *testing.T) {
	svc := &fakeAssignmentService{overview: models.AssignmentOverview{
		Assignments: []models.Assignment{{AssignmentID: 1, Title: "HW1"}},
		Submissions: []models.SubmissionDetail{{Submission: models.Submission{SubmissionID: 1, AssignmentID: 1, SubmittedBy: 9}, StudentName: "Unknown"}},
	}}

	rec := serve(t, NewAssignmentHandler(svc, 0).Overview, request{method: http.MethodGet, route: "/admin/assignments", identity: adminID})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"student_name":"Unknown"`)
}

func TestAssignmentUploadRedirects(t *testing.T) {
	body, ct := multipartBody(t, map[string]string{"title": "HW1"}, "hw1.txt", "do it")

	rec := serve(t, NewAssignmentHandler(&fakeAssignmentService{}, 0).Upload, request{method: http.MethodPost, route: "/admin/assignments", body: body, contentType: ct, identity: adminID})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/assignments", rec.Header().Get("Location"))
}

type fakeSubmissionService struct {
	submitErr    error
	gradeErr     error
	assignmentID int
	submissionID int
	grade        string
}

func (f *fakeSubmissionService) Submit(_ context.Context, _ models.Identity, assignmentID int, _ service.Upload) (*models.Submission, error) {
	f.assignmentID = assignmentID
	return &models.Submission{SubmissionID: 1}, f.submitErr
}

func (f *fakeSubmissionService) Grade(_ context.Context, _ models.Identity, submissionID int, grade string) (*models.Submission, error) {
	f.submissionID, f.grade = submissionID, grade
	return &models.Submission{SubmissionID: submissionID, Grade: grade}, f.gradeErr
}

func TestSubmitOutcomes(t *testing.T) {
	cases := map[string]struct {
		filename string
		svcErr   error
		status   int
		location string
		called   bool
	}{
		"submitted":         {filename: "essay.txt", status: http.StatusSeeOther, location: "/dashboard", called: true},
		"missing file":      {status: http.StatusSeeOther, location: "/dashboard"},
		"already submitted": {filename: "essay.txt", svcErr: appErrors.ErrAlreadySubmitted, status: http.StatusSeeOther, location: "/dashboard", called: true},
		"store failure":     {filename: "essay.txt", svcErr: appErrors.Wrap(errors.New("disk"), appErrors.ErrInternal, ""), status: http.StatusInternalServerError, called: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &fakeSubmissionService{submitErr: tc.svcErr}
			body, ct := multipartBody(t, nil, tc.filename, "words")

			rec := serve(t, NewSubmissionHandler(svc, 0).Submit, request{
				method: http.MethodPost, route: "/student/submit/:assignment_id", target: "/student/submit/3",
				body: body, contentType: ct, identity: studentID,
			})

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.location, rec.Header().Get("Location"))
			if tc.called {
				assert.Equal(t, 3, svc.assignmentID)
			} else {
				assert.Zero(t, svc.assignmentID)
			}
		})
	}
}

func TestSubmitRejectsNonNumericID(t *testing.T) {
	body, ct := multipartBody(t, nil, "essay.txt", "words")

	rec := serve(t, NewSubmissionHandler(&fakeSubmissionService{}, 0).Submit, request{
		method: http.MethodPost, route: "/student/submit/:assignment_id", target: "/student/submit/abc",
		body: body, contentType: ct, identity: studentID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGradeOutcomes(t *testing.T) {
	svc := &fakeSubmissionService{}
	body, ct := formBody(url.Values{"grade": {"A"}})

	rec := serve(t, NewSubmissionHandler(svc, 0).Grade, request{
		method: http.MethodPost, route: "/admin/grade/:submission_id", target: "/admin/grade/4",
		body: body, contentType: ct, identity: adminID,
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/assignments", rec.Header().Get("Location"))
	assert.Equal(t, 4, svc.submissionID)
	assert.Equal(t, "A", svc.grade)

	svc = &fakeSubmissionService{gradeErr: appErrors.ErrSubmissionNotFound}
	body, ct = formBody(url.Values{"grade": {"A"}})
	rec = serve(t, NewSubmissionHandler(svc, 0).Grade, request{
		method: http.MethodPost, route: "/admin/grade/:submission_id", target: "/admin/grade/99",
		body: body, contentType: ct, identity: adminID,
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/assignments", rec.Header().Get("Location"))

	body, ct = formBody(url.Values{})
	rec = serve(t, NewSubmissionHandler(&fakeSubmissionService{}, 0).Grade, request{
		method: http.MethodPost, route: "/admin/grade/:submission_id", target: "/admin/grade/4",
		body: body, contentType: ct, identity: adminID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGradeAcceptsZeroIDAndEmptyGrade(t *testing.T) {
	svc := &fakeSubmissionService{}
	body, ct := formBody(url.Values{"grade": {""}})

	rec := serve(t, NewSubmissionHandler(svc, 0).Grade, request{
		method: http.MethodPost, route: "/admin/grade/:submission_id", target: "/admin/grade/3",
		body: body, contentType: ct, identity: adminID,
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 3, svc.submissionID)
	assert.Equal(t, "", svc.grade)

	svc = &fakeSubmissionService{gradeErr: appErrors.ErrSubmissionNotFound}
	body, ct = formBody(url.Values{"grade": {"B"}})
	rec = serve(t, NewSubmissionHandler(svc, 0).Grade, request{
		method: http.MethodPost, route: "/admin/grade/:submission_id", target: "/admin/grade/0",
		body: body, contentType: ct, identity: adminID,
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/assignments", rec.Header().Get("Location"))
	assert.Equal(t, 0, svc.submissionID)

	rec = serve(t, NewSubmissionHandler(&fakeSubmissionService{}, 0).Grade, request{
		method: http.MethodPost, route: "/admin/grade/:submission_id", target: "/admin/grade/-1",
		body: strings.NewReader("grade=A"), contentType: "application/x-www-form-urlencoded", identity: adminID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoleMismatchFromServiceBouncesToDashboard(t *testing.T) {
	svc := &fakeSubmissionService{gradeErr: appErrors.ErrRoleMismatch}
	body, ct := formBody(url.Values{"grade": {"A"}})

	rec := serve(t, NewSubmissionHandler(svc, 0).Grade, request{
		method: http.MethodPost, route: "/admin/grade/:submission_id", target: "/admin/grade/4",
		body: body, contentType: ct, identity: studentID,
	})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestUploadDownload(t *testing.T) {
	dir := t.TempDir()
	files, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))
	h := NewUploadHandler(files)

	rec := serve(t, h.Download, request{method: http.MethodGet, route: "/uploads/:filename", target: "/uploads/notes.txt", identity: studentID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")

	rec = serve(t, h.Download, request{method: http.MethodGet, route: "/uploads/:filename", target: "/uploads/missing.txt", identity: studentID})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, h.Download, request{method: http.MethodGet, route: "/uploads/:filename", target: "/uploads/..", identity: studentID})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type fakeExportService struct{ format string }

func (f *fakeExportService) Gradebook(_ context.Context, _ models.Identity, format string) (*service.ExportFile, error) {
	f.format = format
	return &service.ExportFile{Filename: "gradebook.csv", ContentType: "text/csv; charset=utf-8", Data: []byte("a,b\n")}, nil
}

func TestGradebookDownload(t *testing.T) {
	svc := &fakeExportService{}

	rec := serve(t, NewExportHandler(svc).Gradebook, request{method: http.MethodGet, route: "/admin/gradebook", target: "/admin/gradebook?format=csv", identity: adminID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "csv", svc.format)
	assert.Equal(t, `attachment; filename="gradebook.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n", rec.Body.String())

	rec = serve(t, NewExportHandler(svc).Gradebook, request{method: http.MethodGet, route: "/admin/gradebook", target: "/admin/gradebook?format=xlsx", identity: adminID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReadyReportsStoreFailure(t *testing.T) {
	failing := NewMetricsHandler(nil, func(context.Context) error { return errors.New("down") })
	rec := serve(t, failing.Ready, request{method: http.MethodGet, route: "/ready"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	ok := NewMetricsHandler(service.NewMetricsService(), nil)
	rec = serve(t, ok.Ready, request{method: http.MethodGet, route: "/ready"})
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = serve(t, ok.Prometheus, request{method: http.MethodGet, route: "/metrics"})
	assert.Equal(t, http.StatusOK, rec.Code)
}
