package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-portal/internal/models"
	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
	"github.com/noah-isme/classroom-portal/pkg/export"
)

type brokenRenderer struct{}

func (brokenRenderer) Render(export.Dataset) ([]byte, error) { return nil, errors.New("font missing") }
func (brokenRenderer) ContentType() string                   { return "application/pdf" }
func (brokenRenderer) Extension() string                     { return "pdf" }

func newGradebookService(pdf export.Renderer) *ExportService {
	subs := &memRepo[models.Submission]{records: []models.Submission{
		{SubmissionID: 1, AssignmentID: 1, SubmittedBy: 5, FilePath: "sub_5_a.txt", SubmitDate: "2024-05-01 10:00:00", Grade: "A"},
		{SubmissionID: 2, AssignmentID: 8, SubmittedBy: 9, FilePath: "sub_9_b.txt", SubmitDate: "2024-05-02 10:00:00", Grade: models.GradeNotGraded},
	}}
	assignments := &memRepo[models.Assignment]{records: []models.Assignment{{AssignmentID: 1, Title: "HW1"}}}
	users := &memRepo[models.User]{records: []models.User{{UserID: 5, Name: "Ann"}}}
	svc := NewExportService(subs, assignments, users, nil, nil, pdf)
	svc.now = clock
	return svc
}

func TestGradebookCSV(t *testing.T) {
	file, err := newGradebookService(nil).Gradebook(context.Background(), admin, "")
	require.NoError(t, err)

	assert.Equal(t, "gradebook_20240506_070809.csv", file.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)
	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Submission ID,Assignment,Student,Submitted At,File,Grade", lines[0])
	assert.Equal(t, "1,HW1,Ann,2024-05-01 10:00:00,sub_5_a.txt,A", lines[1])
	assert.Equal(t, "2,#8,Unknown,2024-05-02 10:00:00,sub_9_b.txt,Not Graded", lines[2])
}

func TestGradebookPDF(t *testing.T) {
	file, err := newGradebookService(nil).Gradebook(context.Background(), admin, FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Data), "%PDF"))
}

func TestGradebookRejections(t *testing.T) {
	ctx := context.Background()

	_, err := newGradebookService(nil).Gradebook(ctx, student, FormatCSV)
	assert.ErrorIs(t, err, appErrors.ErrRoleMismatch)

	_, err = newGradebookService(nil).Gradebook(ctx, admin, "xlsx")
	assert.ErrorIs(t, err, appErrors.ErrUnsupportedFormat)

	_, err = newGradebookService(brokenRenderer{}).Gradebook(ctx, admin, FormatPDF)
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}
