package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	appModels "github.com/mkaraca/campushub/internal/app/models"
	appRepos "github.com/mkaraca/campushub/internal/app/repositories"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
	"github.com/mkaraca/campushub/internal/pkg/studentid"
)

// CreateDefaultData provisions a demo instructor, student and course so a
// fresh database can be logged into right away. Registration only accepts
// emails that already exist in the students or instructors tables, so
// without these rows a new deployment has no way to create the first account.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	instructorRepo := appRepos.NewInstructorRepository(dbPool)
	studentRepo := appRepos.NewStudentRepository(dbPool)
	courseRepo := appRepos.NewCourseRepository(dbPool)
	financeRepo := appRepos.NewFinanceRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (demo instructor, student, course)...")
	var finalErr error

	// --- Demo instructor --- //
	instructor := &appModels.Instructor{
		FullName:   "Dr. Grace Hopper",
		Email:      "ghopper@uni.edu",
		Department: "Computer Science",
	}
	instructorID, err := instructorRepo.CreateInstructor(ctx, instructor)
	if err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating demo instructor")
		finalErr = errors.Join(finalErr, err)
	} else if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		existing, errGet := instructorRepo.GetInstructorByEmail(ctx, instructor.Email)
		if errGet == nil {
			instructorID = existing.ID
		} else {
			lgr.Error().Err(errGet).Msg("Error looking up existing demo instructor")
			finalErr = errors.Join(finalErr, errGet)
		}
	}

	// --- Demo student --- //
	// A fixed student ID keeps the insert idempotent across restarts.
	const sid = "COM0001"
	student := &appModels.Student{
		Name:             "Ada Lovelace",
		DateOfBirth:      time.Date(2003, time.December, 10, 0, 0, 0, 0, time.UTC),
		Faculty:          "Engineering",
		Major:            "Computer Science",
		StudentID:        sid,
		UniversityEmail:  studentid.Email(sid),
		RegistrationDate: time.Now(),
	}
	if _, err := studentRepo.CreateStudent(ctx, student); err != nil {
		if !errors.Is(err, apperrors.ErrStudentIDAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating demo student")
			finalErr = errors.Join(finalErr, err)
		}
	} else {
		lgr.Info().Str("universityEmail", student.UniversityEmail).Msg("Demo student provisioned")
	}

	// --- Demo course with a fee --- //
	if instructorID > 0 {
		course := &appModels.Course{
			Code:         "CS101",
			Name:         "Introduction to Programming",
			CreditHours:  3,
			InstructorID: instructorID,
		}
		courseID, err := courseRepo.CreateCourse(ctx, course)
		if err != nil && !errors.Is(err, apperrors.ErrCourseAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating demo course")
			finalErr = errors.Join(finalErr, err)
		} else if err == nil {
			fee := &appModels.Fee{
				CourseID: courseID,
				Amount:   decimal.NewFromInt(150),
			}
			if _, err := financeRepo.CreateFee(ctx, fee); err != nil {
				lgr.Error().Err(err).Msg("Error creating demo course fee")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check complete.")
	}
	return finalErr
}
