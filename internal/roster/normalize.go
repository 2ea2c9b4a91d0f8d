package roster

import (
	"fmt"
)

// fieldAliases lists the known column-name variants for each logical
// field, in priority order: the first alias present in a row wins.
// Batches exported from different academic years used slightly different
// headers for the same fields.
var fieldAliases = struct {
	rollNumber        []string
	name              []string
	email             []string
	fatherName        []string
	motherName        []string
	gender            []string
	dob               []string
	address           []string
	category          []string
	caste             []string
	aadharNumber      []string
	phoneNumber       []string
	parentPhoneNumber []string
}{
	rollNumber:        []string{"Roll Number"},
	name:              []string{"Name of the Student", "Name of the Student (As per SSC)"},
	email:             []string{"E-mail ID of the Student"},
	fatherName:        []string{"Father's Name", "Father Name"},
	motherName:        []string{"Mother's Name"},
	gender:            []string{"Gender"},
	dob:               []string{"DOB"},
	address:           []string{"Address"},
	category:          []string{"Category"},
	caste:             []string{"CASTE"},
	aadharNumber:      []string{"Aadhar No."},
	phoneNumber:       []string{"Student Mobile"},
	parentPhoneNumber: []string{"Parent Mobile"},
}

// departmentCodes maps the two-character code at positions 7-8 of a roll
// number to the department short name.
var departmentCodes = map[string]string{
	"01": "CSE",
	"02": "ECE",
	"03": "EEE",
	"04": "CIVIL",
	"05": "MECH",
	"12": "IT",
}

// lookupAlias returns the first non-empty value among the aliases,
// or the empty string when no alias is present.
func lookupAlias(row Row, aliases []string) string {
	for _, key := range aliases {
		if value, ok := row[key]; ok && value != "" {
			return value
		}
	}
	return ""
}

// BatchLabel derives the academic cohort label from a roll number prefix.
// Roll numbers starting with "19", "20" and "21" belong to the 2019-23,
// 2020-24 and 2021-25 cohorts; anything else yields the empty string.
func BatchLabel(rollNumber string) string {
	switch {
	case len(rollNumber) >= 2 && rollNumber[:2] == "19":
		return "2019-23"
	case len(rollNumber) >= 2 && rollNumber[:2] == "20":
		return "2020-24"
	case len(rollNumber) >= 2 && rollNumber[:2] == "21":
		return "2021-25"
	default:
		return ""
	}
}

// DepartmentName derives the department short name from the code embedded
// at positions 7-8 of the roll number. Unmapped codes yield the empty string.
func DepartmentName(rollNumber string) string {
	if len(rollNumber) < 8 {
		return ""
	}
	return departmentCodes[rollNumber[6:8]]
}

// normalizeBatch converts raw rows into records. Rows without a roll
// number are blank or header rows and are skipped. The surrogate id is
// built from the batch name and the zero-based row index, so it is only
// stable for one load; the roll number is the durable key.
func normalizeBatch(batch Batch) []Record {
	records := make([]Record, 0, len(batch.Rows))

	for index, row := range batch.Rows {
		rollNumber := lookupAlias(row, fieldAliases.rollNumber)
		if rollNumber == "" {
			continue
		}

		records = append(records, Record{
			ID:                fmt.Sprintf("student_%d_%s", index, batch.Name),
			RollNumber:        rollNumber,
			Name:              lookupAlias(row, fieldAliases.name),
			Email:             lookupAlias(row, fieldAliases.email),
			Batch:             BatchLabel(rollNumber),
			Department:        DepartmentName(rollNumber),
			FatherName:        lookupAlias(row, fieldAliases.fatherName),
			MotherName:        lookupAlias(row, fieldAliases.motherName),
			Gender:            lookupAlias(row, fieldAliases.gender),
			DOB:               lookupAlias(row, fieldAliases.dob),
			Address:           lookupAlias(row, fieldAliases.address),
			Category:          lookupAlias(row, fieldAliases.category),
			Caste:             lookupAlias(row, fieldAliases.caste),
			AadharNumber:      lookupAlias(row, fieldAliases.aadharNumber),
			PhoneNumber:       lookupAlias(row, fieldAliases.phoneNumber),
			ParentPhoneNumber: lookupAlias(row, fieldAliases.parentPhoneNumber),
		})
	}

	return records
}
