package roster

// fallbackRecords returns the built-in roster used when ingestion yields
// nothing at all. The directory screens still need data to render, so an
// empty load degrades to this fixed set instead of an error.
func fallbackRecords() []Record {
	return []Record{
		{
			ID:         "student_1",
			Name:       "Rahul Sharma",
			Email:      "rahul.sharma@example.com",
			Batch:      "2019-23",
			Department: "CSE",
			RollNumber: "NNRG19CS001",
		},
		{
			ID:         "student_2",
			Name:       "Priya Patel",
			Email:      "priya.patel@example.com",
			Batch:      "2020-24",
			Department: "ECE",
			RollNumber: "NNRG20EC045",
		},
		{
			ID:         "student_3",
			Name:       "Aditya Kumar",
			Email:      "aditya.kumar@example.com",
			Batch:      "2019-23",
			Department: "CSE",
			RollNumber: "NNRG19CS022",
		},
		{
			ID:         "student_4",
			Name:       "Sneha Reddy",
			Email:      "sneha.reddy@example.com",
			Batch:      "2020-24",
			Department: "CSE",
			RollNumber: "NNRG20CS105",
		},
		{
			ID:         "student_5",
			Name:       "Vikram Singh",
			Email:      "vikram.singh@example.com",
			Batch:      "2019-23",
			Department: "CSE",
			RollNumber: "NNRG19CS078",
		},
		{
			ID:         "student_6",
			Name:       "Ananya Desai",
			Email:      "ananya.desai@example.com",
			Batch:      "2020-24",
			Department: "ECE",
			RollNumber: "NNRG20EC032",
		},
	}
}
