package export

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"lecturebot/internal/model"
)

type mockRegs struct {
	rows []model.RegistrationRow
	err  error
}

func (m *mockRegs) All(ctx context.Context) ([]model.RegistrationRow, error) {
	return m.rows, m.err
}

type mockAudit struct {
	actions []string
}

func (m *mockAudit) Record(ctx context.Context, adminID int64, action string, targetID int64) error {
	m.actions = append(m.actions, action)
	return nil
}

func sampleRows() []model.RegistrationRow {
	return []model.RegistrationRow{
		{
			ID:           1,
			StudentName:  "Alem",
			StudentRef:   "RU1234",
			LectureTitle: "Intro to Go",
			RegisteredAt: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:           2,
			StudentName:  "Sara",
			StudentRef:   "",
			LectureTitle: "Linear Algebra",
			RegisteredAt: time.Date(2025, 3, 11, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestWorkbook_RoundTrip(t *testing.T) {
	audit := &mockAudit{}
	svc := New(&mockRegs{rows: sampleRows()}, audit)

	buf, name, err := svc.Workbook(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "registrations_"))
	assert.True(t, strings.HasSuffix(name, ".xlsx"))
	assert.Equal(t, []string{model.ActionExportData}, audit.actions)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t,
		[]string{"Registration ID", "Student Name", "Student ID", "Lecture Title", "Registration Date"},
		rows[0])
	assert.Equal(t, []string{"1", "Alem", "RU1234", "Intro to Go", "2025-03-10"}, rows[1])
	assert.Equal(t, "Sara", rows[2][1])
}

func TestCSV_ContainsHeaderAndRows(t *testing.T) {
	svc := New(&mockRegs{rows: sampleRows()}, &mockAudit{})

	data, name, err := svc.CSV(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".csv"))

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Registration ID,Student Name,Student ID,Lecture Title,Registration Date", lines[0])
	assert.Equal(t, "1,Alem,RU1234,Intro to Go,2025-03-10", lines[1])
}

func TestExport_EmptyDataStillProducesArtifact(t *testing.T) {
	svc := New(&mockRegs{}, &mockAudit{})

	buf, _, err := svc.Workbook(context.Background(), 1)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}

func TestFilenamesAreUnique(t *testing.T) {
	a := filename("xlsx")
	b := filename("xlsx")
	assert.NotEqual(t, a, b)
}
