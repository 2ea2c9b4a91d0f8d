// Package seed creates the default data a fresh deployment needs: the
// admin account and a starter set of job and event board entries.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/nnrgconnect/backend/internal/app/models"
	"github.com/nnrgconnect/backend/internal/app/models/dto"
	appRepos "github.com/nnrgconnect/backend/internal/app/repositories"
	"github.com/nnrgconnect/backend/internal/pkg/apperrors"
	"github.com/nnrgconnect/backend/internal/pkg/auth"
)

const (
	defaultAdminEmail    = "admin@nnrg.edu.in"
	defaultAdminPassword = "Admin123!"
)

// CreateDefaultData ensures the admin account exists and, on a fresh
// database, fills the job and event boards with starter entries.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	jobRepo := appRepos.NewJobRepository(dbPool)
	eventRepo := appRepos.NewEventRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	adminID, err := ensureAdminUser(ctx, userRepo, lgr)
	if err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if adminID > 0 {
		if err := seedJobs(ctx, jobRepo, adminID, lgr); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
		if err := seedEvents(ctx, eventRepo, adminID, lgr); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func ensureAdminUser(ctx context.Context, userRepo appRepos.IUserRepository, lgr zerolog.Logger) (int64, error) {
	existing, err := userRepo.GetByEmail(ctx, defaultAdminEmail)
	if err == nil {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return existing.ID, nil
	}
	if !errors.Is(err, apperrors.ErrAccountNotFound) {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return 0, err
	}

	lgr.Info().Msg("Creating default admin user...")

	hashedPassword, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return 0, err
	}

	admin := &appModels.User{
		Email:          defaultAdminEmail,
		Password:       hashedPassword,
		Name:           "NNRG Admin",
		RoleType:       appModels.RoleAdmin,
		ApprovalStatus: appModels.ApprovalApproved,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	adminID, err := userRepo.Create(ctx, admin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return 0, err
	}

	lgr.Info().Int64("adminID", adminID).Msg("Default admin user created")
	return adminID, nil
}

func seedJobs(ctx context.Context, jobRepo appRepos.IJobRepository, adminID int64, lgr zerolog.Logger) error {
	existing, _, err := jobRepo.List(ctx, dto.JobFilter{}, 0, 1)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking existing jobs")
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	jobs := []appModels.Job{
		{
			Title:        "Software Engineer",
			Company:      "TCS",
			Location:     "Hyderabad, India",
			JobType:      appModels.JobFullTime,
			Salary:       "₹4-7 LPA",
			Description:  "Campus placement opening for 2023/2024 passouts.",
			Requirements: []string{"B.Tech CSE/IT", "Strong fundamentals in DS and algorithms"},
			IsFeatured:   true,
		},
		{
			Title:        "Embedded Systems Intern",
			Company:      "Qualcomm",
			Location:     "Hyderabad, India",
			JobType:      appModels.JobInternship,
			Salary:       "₹30,000/month",
			Description:  "Six month internship with a pre-placement offer track.",
			Requirements: []string{"ECE/EEE background", "C programming"},
		},
		{
			Title:        "Data Analyst",
			Company:      "Deloitte",
			Location:     "Remote",
			JobType:      appModels.JobContract,
			Salary:       "₹5-6 LPA",
			Description:  "Contract role open to recent graduates.",
			Requirements: []string{"SQL", "Excel", "Communication skills"},
		},
	}

	for i := range jobs {
		jobs[i].PostedBy = adminID
		jobs[i].PostedAt = time.Now()
		if _, err := jobRepo.Create(ctx, &jobs[i]); err != nil {
			lgr.Error().Err(err).Str("title", jobs[i].Title).Msg("Error seeding job")
			return err
		}
	}

	lgr.Info().Int("count", len(jobs)).Msg("Seeded job board")
	return nil
}

func seedEvents(ctx context.Context, eventRepo appRepos.IEventRepository, adminID int64, lgr zerolog.Logger) error {
	existing, _, err := eventRepo.List(ctx, dto.EventFilter{}, 0, 1)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking existing events")
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now()
	events := []appModels.Event{
		{
			Title:       "Annual Alumni Meet",
			StartsAt:    now.AddDate(0, 1, 0),
			EndsAt:      now.AddDate(0, 1, 0).Add(6 * time.Hour),
			Location:    "NNRG Campus, Hyderabad",
			Organizer:   "NNRG Alumni Association",
			Category:    appModels.EventMeetup,
			Description: "Yearly gathering of alumni across all batches.",
			IsFeatured:  true,
		},
		{
			Title:       "Placement Preparation Workshop",
			StartsAt:    now.AddDate(0, 0, 14),
			EndsAt:      now.AddDate(0, 0, 14).Add(3 * time.Hour),
			Location:    "Seminar Hall B",
			Organizer:   "Training and Placement Cell",
			Category:    appModels.EventWorkshop,
			Description: "Aptitude and interview practice for final year students.",
		},
	}

	for i := range events {
		events[i].CreatedBy = adminID
		events[i].CreatedAt = now
		if _, err := eventRepo.Create(ctx, &events[i]); err != nil {
			lgr.Error().Err(err).Str("title", events[i].Title).Msg("Error seeding event")
			return err
		}
	}

	lgr.Info().Int("count", len(events)).Msg("Seeded event board")
	return nil
}
