package seeds

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const (
	numUsers         = 30
	numEvents        = 60
	numRegistrations = 300
)

func Setup(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	rng := rand.New(rand.NewSource(42))
	log := logger.With().Str("component", "seed").Logger()

	// Truncate existing data before insert
	log.Info().Msg("truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE event_registrations, events, users RESTART IDENTITY CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Info().Msg("inserting users")
	if err := seedUsers(ctx, pool, numUsers); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	log.Info().Msg("inserting events")
	if err := seedEvents(ctx, pool, rng, numEvents); err != nil {
		return fmt.Errorf("seed events: %w", err)
	}

	log.Info().Msg("inserting registrations")
	if err := seedRegistrations(ctx, pool, rng, numRegistrations); err != nil {
		return fmt.Errorf("seed registrations: %w", err)
	}

	log.Info().Msg("seeding complete")
	return nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, n int) error {
	rows := []string{}
	args := []any{}

	for i := range n {
		role := "student"
		if i < 2 {
			role = "admin"
		}
		username := fmt.Sprintf("student%02d", i+1)
		if role == "admin" {
			username = fmt.Sprintf("admin%02d", i+1)
		}
		email := username + "@campus.edu"
		createdAt := time.Now().AddDate(0, 0, -(i * 7))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
		args = append(args, username, email, role, createdAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO users (username, email, role, created_at) VALUES " + strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedEvents(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	categories := []string{"Technical", "Cultural", "Sports", "Workshop", "Seminar", "Social"}
	locations := []string{
		"Main Auditorium", "Engineering Block", "Sports Complex",
		"Library Hall", "Student Center", "Open Air Theatre",
	}
	titles := map[string][]string{
		"Technical": {
			"Intro to Distributed Systems", "Hack Night", "Robotics Demo Day",
			"Cloud Computing Talk", "Open Source Sprint",
		},
		"Cultural": {
			"Spring Music Festival", "Drama Club Showcase", "Art Exhibition",
			"Poetry Evening", "International Food Fair",
		},
		"Sports": {
			"Inter-Department Football", "Badminton Open", "Morning Run Club",
			"Table Tennis Knockouts", "Chess Championship",
		},
		"Workshop": {
			"Resume Writing Workshop", "Photography Basics", "Public Speaking Lab",
			"3D Printing Workshop", "Intro to Machine Learning",
		},
		"Seminar": {
			"Career Paths in Research", "Startup Founder Q&A", "Ethics in Engineering",
			"Sustainable Campus Seminar", "Alumni Panel",
		},
		"Social": {
			"Freshers Meetup", "Board Game Night", "Movie Under the Stars",
			"Volunteer Day", "End of Term Party",
		},
	}

	rows := []string{}
	args := []any{}

	for i := range n {
		category := categories[i%len(categories)]
		titleList := titles[category]
		title := titleList[i%len(titleList)]
		if i >= len(categories)*len(titleList) {
			title = fmt.Sprintf("%s %d", title, i/(len(categories)*len(titleList))+1)
		}

		location := locations[rng.Intn(len(locations))]

		// Mostly upcoming events spread over ~60 days, with a past tail
		// so scorers have something to exclude.
		var start time.Time
		if i%6 == 5 {
			start = time.Now().AddDate(0, 0, -(rng.Intn(30) + 1))
		} else {
			start = time.Now().AddDate(0, 0, rng.Intn(60)+1)
		}
		start = start.Truncate(time.Hour).Add(time.Duration(9+rng.Intn(9)) * time.Hour)
		end := start.Add(time.Duration(1+rng.Intn(4)) * time.Hour)

		capacity := []int{30, 50, 100, 150, 200}[rng.Intn(5)]
		creatorID := 1 + rng.Intn(2) // one of the admins

		base := len(args)
		placeholders := make([]string, 9)
		for p := range placeholders {
			placeholders[p] = fmt.Sprintf("$%d", base+p+1)
		}
		rows = append(rows, "("+strings.Join(placeholders, ", ")+")")
		args = append(args, title, "Seeded event for local development", category, location,
			start, end, capacity, creatorID, time.Now())
	}

	if len(rows) == 0 {
		return nil
	}

	query := `INSERT INTO events
		(title, description, category, location, start_time, end_time, max_capacity, creator_id, created_at)
		VALUES ` + strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedRegistrations(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	seen := make(map[[2]int64]bool)

	rows := []string{}
	args := []any{}

	for range n {
		// Power-law shape: a few very active students, a long quiet tail.
		userID := int64(math.Ceil(math.Pow(rng.Float64(), 1.5) * numUsers))
		userID = max(1, min(userID, numUsers))

		eventID := int64(math.Ceil(math.Pow(rng.Float64(), 1.3) * numEvents))
		eventID = max(1, min(eventID, numEvents))

		key := [2]int64{userID, eventID}
		if seen[key] {
			continue
		}
		seen[key] = true

		registeredAt := time.Now().AddDate(0, 0, -rng.Intn(21))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d)", base+1, base+2, base+3))
		args = append(args, userID, eventID, registeredAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO event_registrations (user_id, event_id, registered_at) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}
