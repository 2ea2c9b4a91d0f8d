package roster

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Record is one normalized student directory entry. Batch and Department
// are derived from the roll number at ingestion time; everything else is
// copied through from the source row with empty-string defaults.
type Record struct {
	ID                string `json:"id"`
	RollNumber        string `json:"rollNumber"`
	Name              string `json:"name"`
	Email             string `json:"email,omitempty"`
	Batch             string `json:"batch,omitempty"`
	Department        string `json:"department,omitempty"`
	FatherName        string `json:"fatherName,omitempty"`
	MotherName        string `json:"motherName,omitempty"`
	Gender            string `json:"gender,omitempty"`
	DOB               string `json:"dob,omitempty"`
	Address           string `json:"address,omitempty"`
	Category          string `json:"category,omitempty"`
	Caste             string `json:"caste,omitempty"`
	AadharNumber      string `json:"aadharNumber,omitempty"`
	PhoneNumber       string `json:"phoneNumber,omitempty"`
	ParentPhoneNumber string `json:"parentPhoneNumber,omitempty"`
}

// Roster holds the normalized student directory for one process lifetime.
// It is built once from its source on first Load and never mutated
// afterwards, so the record slice is safe for concurrent readers.
type Roster struct {
	source Source
	logger zerolog.Logger

	once    sync.Once
	records []Record
}

// New creates a Roster over the given source. Nothing is read until the
// first Load call.
func New(source Source, logger zerolog.Logger) *Roster {
	return &Roster{
		source: source,
		logger: logger,
	}
}

// Load builds the roster on first call and returns the cached records on
// every call after that. Batches are processed in source order and rows in
// row order; consumers may rely on that ordering. Ingestion failure or an
// empty result substitutes the built-in fallback roster instead of
// returning an error.
func (r *Roster) Load(ctx context.Context) []Record {
	r.once.Do(func() {
		batches, err := r.source.Batches()
		if err != nil {
			r.logger.Warn().Err(err).Msg("Directory ingestion failed, using fallback roster")
			r.records = fallbackRecords()
			return
		}

		var all []Record
		for _, batch := range batches {
			records := normalizeBatch(batch)
			r.logger.Debug().
				Str("batch", batch.Name).
				Int("rows", len(batch.Rows)).
				Int("records", len(records)).
				Msg("Normalized directory batch")
			all = append(all, records...)
		}

		if len(all) == 0 {
			r.logger.Warn().Msg("Directory ingestion produced no records, using fallback roster")
			r.records = fallbackRecords()
			return
		}

		r.records = all
		r.logger.Info().Int("students", len(all)).Int("batches", len(batches)).Msg("Student directory loaded")
	})

	return r.records
}

// Records returns the loaded roster, loading it first if needed.
func (r *Roster) Records(ctx context.Context) []Record {
	return r.Load(ctx)
}

// FindByEmail returns the first record whose email matches
// case-insensitively, or nil when there is no match.
func (r *Roster) FindByEmail(ctx context.Context, email string) *Record {
	for i, record := range r.Load(ctx) {
		if record.Email != "" && strings.EqualFold(record.Email, email) {
			return &r.records[i]
		}
	}
	return nil
}

// FindByRollNumber returns the record with the given roll number, the
// directory's canonical key, or nil.
func (r *Roster) FindByRollNumber(ctx context.Context, rollNumber string) *Record {
	for i, record := range r.Load(ctx) {
		if record.RollNumber == rollNumber {
			return &r.records[i]
		}
	}
	return nil
}

// FindByID returns the record with the given surrogate id, or nil. The
// surrogate id is positional and only stable within one load.
func (r *Roster) FindByID(ctx context.Context, id string) *Record {
	for i, record := range r.Load(ctx) {
		if record.ID == id {
			return &r.records[i]
		}
	}
	return nil
}

// FindByKey resolves a lookup key against the roll number first and the
// surrogate id second. The roll number is the canonical key; the id is an
// explicit secondary index, never a loose-equality fallback.
func (r *Roster) FindByKey(ctx context.Context, key string) *Record {
	if record := r.FindByRollNumber(ctx, key); record != nil {
		return record
	}
	return r.FindByID(ctx, key)
}
