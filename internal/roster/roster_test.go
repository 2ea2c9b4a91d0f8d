package roster

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource counts how many times Batches is called so caching can
// be asserted.
type countingSource struct {
	batches []Batch
	calls   int
}

func (s *countingSource) Batches() ([]Batch, error) {
	s.calls++
	return s.batches, nil
}

func testBatches() []Batch {
	return []Batch{
		{
			Name: "students1",
			Rows: []Row{
				{"Roll Number": "197Z1A0101", "Name of the Student": "Arjun Rao", "E-mail ID of the Student": "arjun.rao@nnrg.edu.in", "Father's Name": "Mohan Rao"},
				{"Roll Number": ""}, // blank row
				{"Name of the Student": "Header Remnant"}, // no roll number at all
				{"Roll Number": "207Z1A0231", "Name of the Student (As per SSC)": "Kavya Nair", "Student Mobile": "9876543210"},
			},
		},
		{
			Name: "students2",
			Rows: []Row{
				{"Roll Number": "217Z1A1205", "Name of the Student": "Rohit Verma", "Father Name": "Suresh Verma"},
				{"Roll Number": "187Z1A0999", "Name of the Student": "Old Batch"},
			},
		},
	}
}

func TestLoadSkipsRowsWithoutRollNumber(t *testing.T) {
	r := New(StaticSource(testBatches()), zerolog.Nop())
	records := r.Load(context.Background())

	// 6 raw rows, 2 without a roll number
	require.Len(t, records, 4)
	for _, record := range records {
		assert.NotEmpty(t, record.RollNumber)
	}
}

func TestLoadPreservesBatchThenRowOrder(t *testing.T) {
	r := New(StaticSource(testBatches()), zerolog.Nop())
	records := r.Load(context.Background())

	require.Len(t, records, 4)
	assert.Equal(t, "197Z1A0101", records[0].RollNumber)
	assert.Equal(t, "207Z1A0231", records[1].RollNumber)
	assert.Equal(t, "217Z1A1205", records[2].RollNumber)
	assert.Equal(t, "187Z1A0999", records[3].RollNumber)
}

func TestSurrogateIDUsesBatchNameAndRowIndex(t *testing.T) {
	r := New(StaticSource(testBatches()), zerolog.Nop())
	records := r.Load(context.Background())

	require.Len(t, records, 4)
	assert.Equal(t, "student_0_students1", records[0].ID)
	// index 3 in the raw batch, skipped rows keep their positions
	assert.Equal(t, "student_3_students1", records[1].ID)
	assert.Equal(t, "student_0_students2", records[2].ID)
}

func TestDerivedBatchLabels(t *testing.T) {
	cases := map[string]string{
		"197Z1A0101": "2019-23",
		"207Z1A0231": "2020-24",
		"217Z1A1205": "2021-25",
		"187Z1A0999": "",
		"X":          "",
		"":           "",
	}
	for roll, want := range cases {
		assert.Equal(t, want, BatchLabel(roll), "roll %q", roll)
	}
}

func TestDerivedDepartments(t *testing.T) {
	cases := map[string]string{
		"197Z1A0101": "CSE",
		"207Z1A0231": "ECE",
		"197Z1A0345": "EEE",
		"197Z1A0400": "CIVIL",
		"197Z1A0550": "MECH",
		"217Z1A1205": "IT",
		"197Z1A9901": "", // unmapped code 99
		"1234567":    "", // too short for a code
	}
	for roll, want := range cases {
		assert.Equal(t, want, DepartmentName(roll), "roll %q", roll)
	}
}

func TestAliasPriorityOrder(t *testing.T) {
	batches := []Batch{{
		Name: "b",
		Rows: []Row{{
			"Roll Number":                      "197Z1A0101",
			"Name of the Student":              "Primary Name",
			"Name of the Student (As per SSC)": "Secondary Name",
		}},
	}}

	r := New(StaticSource(batches), zerolog.Nop())
	records := r.Load(context.Background())

	require.Len(t, records, 1)
	assert.Equal(t, "Primary Name", records[0].Name)
}

func TestMissingColumnsDefaultToEmptyString(t *testing.T) {
	batches := []Batch{{
		Name: "b",
		Rows: []Row{{"Roll Number": "197Z1A0101"}},
	}}

	r := New(StaticSource(batches), zerolog.Nop())
	records := r.Load(context.Background())

	require.Len(t, records, 1)
	assert.Empty(t, records[0].Name)
	assert.Empty(t, records[0].Email)
	assert.Empty(t, records[0].FatherName)
	assert.Empty(t, records[0].AadharNumber)
}

func TestLoadIsIdempotent(t *testing.T) {
	source := &countingSource{batches: testBatches()}
	r := New(source, zerolog.Nop())

	first := r.Load(context.Background())
	second := r.Load(context.Background())

	assert.Equal(t, 1, source.calls, "source must be read exactly once")
	assert.Equal(t, first, second)
	require.NotEmpty(t, first)
	assert.Same(t, &first[0], &second[0], "cached slice must be returned as-is")
}

func TestEmptyIngestionFallsBackToBuiltinRoster(t *testing.T) {
	r := New(StaticSource(nil), zerolog.Nop())
	records := r.Load(context.Background())

	assert.GreaterOrEqual(t, len(records), 6)
	for _, record := range records {
		assert.NotEmpty(t, record.Name)
		assert.NotEmpty(t, record.RollNumber)
	}
}

type failingSource struct{}

func (failingSource) Batches() ([]Batch, error) {
	return nil, assert.AnError
}

func TestIngestionErrorFallsBackInsteadOfFailing(t *testing.T) {
	r := New(failingSource{}, zerolog.Nop())
	records := r.Load(context.Background())

	assert.GreaterOrEqual(t, len(records), 6)
}

func TestFindByEmailIsCaseInsensitive(t *testing.T) {
	r := New(StaticSource(testBatches()), zerolog.Nop())
	ctx := context.Background()

	record := r.FindByEmail(ctx, "ARJUN.RAO@NNRG.EDU.IN")
	require.NotNil(t, record)
	assert.Equal(t, "197Z1A0101", record.RollNumber)

	assert.Nil(t, r.FindByEmail(ctx, "nobody@nnrg.edu.in"))
}

func TestFindByKeyPrefersRollNumberOverSurrogateID(t *testing.T) {
	r := New(StaticSource(testBatches()), zerolog.Nop())
	ctx := context.Background()

	byRoll := r.FindByKey(ctx, "217Z1A1205")
	require.NotNil(t, byRoll)
	assert.Equal(t, "Rohit Verma", byRoll.Name)

	byID := r.FindByKey(ctx, "student_0_students1")
	require.NotNil(t, byID)
	assert.Equal(t, "197Z1A0101", byID.RollNumber)

	assert.Nil(t, r.FindByKey(ctx, "no-such-key"))
}
