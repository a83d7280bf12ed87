package main

import (
	"context"
	"fmt"

	"github.com/courseval/courseval-backend/internal/config"
	"github.com/courseval/courseval-backend/internal/database"
	"github.com/courseval/courseval-backend/internal/logger"
	"github.com/courseval/courseval-backend/internal/model"
	"github.com/courseval/courseval-backend/internal/repository"
	"github.com/courseval/courseval-backend/internal/repository/memory"
	"github.com/courseval/courseval-backend/internal/repository/postgres"
)

// Seeds the development catalog (same data the memory profile ships with)
// into PostgreSQL. Safe to rerun: rows that already exist are skipped.
func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	courseRepo := postgres.NewCourseRepository(pool)
	evalRepo := postgres.NewEvaluationRepository(pool)

	// ─── Users ─────────────────────────────────────────────────────────
	created := 0
	for _, u := range memory.FixtureUsers() {
		user := model.User{
			Email:        u.Email,
			Name:         u.Name,
			Role:         u.Role,
			PasswordHash: u.PasswordHash,
		}
		if err := userRepo.Create(ctx, &user); err != nil {
			if _, ok := repository.IsConflict(err); ok {
				continue // already seeded
			}
			log.Fatal().Err(err).Str("email", u.Email).Msg("Failed to seed user")
		}
		created++
	}
	fmt.Printf("Seeded %d users\n", created)

	// ─── Courses ───────────────────────────────────────────────────────
	// Fixture IDs are remapped onto the database-assigned UUIDs so the
	// evaluations land on the right course.
	existing, err := courseRepo.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list courses")
	}
	byTitle := make(map[string]string, len(existing))
	for _, c := range existing {
		byTitle[c.Title] = c.ID
	}

	courseIDs := make(map[string]string)
	created = 0
	for _, c := range memory.FixtureCourses() {
		if id, ok := byTitle[c.Title]; ok {
			courseIDs[c.ID] = id
			continue
		}
		course := model.Course{
			Title:        c.Title,
			Description:  c.Description,
			Hours:        c.Hours,
			Instructor:   c.Instructor,
			CreatorEmail: c.CreatorEmail,
		}
		if err := courseRepo.Create(ctx, &course); err != nil {
			log.Fatal().Err(err).Str("title", c.Title).Msg("Failed to seed course")
		}
		courseIDs[c.ID] = course.ID
		created++
	}
	fmt.Printf("Seeded %d courses\n", created)

	// ─── Evaluations ───────────────────────────────────────────────────
	created = 0
	for _, e := range memory.FixtureEvaluations() {
		courseID, ok := courseIDs[e.CourseID]
		if !ok {
			continue
		}

		seeded, err := evalRepo.ListByCourse(ctx, courseID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to list evaluations")
		}
		duplicate := false
		for _, s := range seeded {
			if s.StudentEmail == e.StudentEmail && s.Title == e.Title {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		eval := model.Evaluation{
			CourseID:     courseID,
			StudentEmail: e.StudentEmail,
			Rating:       e.Rating,
			Title:        e.Title,
			Description:  e.Description,
		}
		if err := evalRepo.Create(ctx, &eval); err != nil {
			log.Fatal().Err(err).Str("title", e.Title).Msg("Failed to seed evaluation")
		}
		created++
	}
	fmt.Printf("Seeded %d evaluations\n", created)
}
