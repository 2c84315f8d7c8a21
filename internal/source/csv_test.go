package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gantt2svg/internal/schedule"
)

func TestReadCSV(t *testing.T) {
	in := "\ufeffType, Title ,Start date,End date\n" +
		"Activity,Design,2024-01-05,2024-01-10\n" +
		"Milestone,Launch,45311,\n" +
		",,,\n" +
		"Activity,\"Build, test\",01/15/2024,soon\n"

	table, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"Type", "Title", "Start date", "End date"}, table.Header)
	require.Len(t, table.Rows, 3, "blank rows are dropped")

	assert.Equal(t, schedule.Cell("Activity"), table.Rows[0][0])
	assert.Equal(t, schedule.Cell("2024-01-05"), table.Rows[0][2])
	assert.Equal(t, schedule.Cell("2024-01-10"), table.Rows[0][3])

	assert.Equal(t, schedule.Cell("45311"), table.Rows[1][2])
	assert.Equal(t, schedule.Cell(""), table.Rows[1][3])

	assert.Equal(t, schedule.Cell("Build, test"), table.Rows[2][1])
	assert.Equal(t, schedule.Cell("01/15/2024"), table.Rows[2][2])
	assert.Equal(t, schedule.Cell("soon"), table.Rows[2][3])

	recs, warnings, err := schedule.Normalize(table.Header, table.Rows, schedule.DefaultColumns())
	require.NoError(t, err)
	require.Len(t, warnings, 1, "only the unreadable end date is reported")
	assert.True(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC).Equal(recs[0].Start))
	assert.True(t, time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC).Equal(recs[1].Start))
	assert.True(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC).Equal(recs[2].Start))
	assert.False(t, recs[2].HasEnd())
}

func TestReadCSV_TitlesKeptVerbatim(t *testing.T) {
	in := "Type,Title,Start date,End date\n" +
		"Activity,007,2024-01-05,2024-01-10\n" +
		"Milestone,2024-03-01,2024-03-01,\n" +
		"Activity,1.50,45296,45301\n" +
		"2024,Numeric type,2024-01-05,2024-01-10\n"

	table, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	recs, warnings, err := schedule.Normalize(table.Header, table.Rows, schedule.DefaultColumns())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, recs, 4)

	assert.Equal(t, "007", recs[0].Title)
	assert.Equal(t, "2024-03-01", recs[1].Title)
	assert.True(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC).Equal(recs[1].Start))
	assert.Equal(t, "1.50", recs[2].Title)
	assert.True(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC).Equal(recs[2].Start))
	assert.Equal(t, schedule.KindOther, recs[3].Kind)
}

func TestReadCSV_FeedsNormalize(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("Type,Title,Start date,End date\nActivity,A,2024-01-05T12:00:00Z,2024-01-10\n"))
	require.NoError(t, err)
	recs, warnings, err := schedule.Normalize(table.Header, table.Rows, schedule.DefaultColumns())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.True(t, time.Date(2024, time.January, 5, 12, 0, 0, 0, time.UTC).Equal(recs[0].Start))
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorContains(t, err, "file is empty")

	_, err = ReadCSV(strings.NewReader("Type,Title\n\"unterminated,x\n"))
	assert.ErrorContains(t, err, "error reading CSV")
}

func TestReadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.csv")
	require.NoError(t, os.WriteFile(path, []byte("Type,Title,Start date,End date\nMilestone,M,2024-02-01,\n"), 0o644))

	table, err := ReadCSVFile(path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	_, err = ReadCSVFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorContains(t, err, "error opening CSV file")
}
