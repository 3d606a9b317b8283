// Command seed creates a demo calendar with sample day content.
//
// Usage:
//
//	go run ./cmd/seed -db data/adventcal.db -slug demo -start 2025-12-01
//
// This tool:
// 1. Creates/opens the SQLite database
// 2. Runs migrations to ensure schema is current
// 3. Inserts a calendar with the given slug, day slots included
// 4. Fills the first few days with sample content
//
// Running it twice with the same slug fails on the unique constraint; pick
// another slug or delete the row to reseed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/instantcheese/adventcal/internal/auth"
	"github.com/instantcheese/adventcal/internal/database"
)

func main() {
	// Parse command line flags
	dbPath := flag.String("db", "data/adventcal.db", "Path to SQLite database")
	slug := flag.String("slug", "demo", "Slug for the demo calendar")
	start := flag.String("start", "2025-12-01", "Start date (YYYY-MM-DD)")
	days := flag.Int("days", 24, "Number of days")
	adminCode := flag.String("admin-code", "letmein", "Admin code for the demo calendar")
	accessCode := flag.String("access-code", "", "Guest access code (empty: public)")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if err := run(*dbPath, *slug, *start, *days, *adminCode, *accessCode, logger); err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seed complete", slog.String("slug", *slug))
}

func run(dbPath, slug, start string, days int, adminCode, accessCode string, logger *slog.Logger) error {
	ctx := context.Background()

	db, err := database.Open(database.DefaultConfig(dbPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	adminHash, err := auth.HashCode(adminCode)
	if err != nil {
		return fmt.Errorf("hash admin code: %w", err)
	}

	var accessHash *string
	if accessCode != "" {
		hash, err := auth.HashCode(accessCode)
		if err != nil {
			return fmt.Errorf("hash access code: %w", err)
		}
		accessHash = &hash
	}

	cal := &database.Calendar{
		Slug:           slug,
		RecipientName:  "Demo",
		StartDate:      start,
		AdminCodeHash:  adminHash,
		AccessCodeHash: accessHash,
	}
	// Creation-flow defaults, same as the API applies
	cal.ThemeColor = "#b91c1c"
	cal.Background = "custom-bg:#450a0a,#14532d,❄,24,1.2,45,float"
	cal.CardStyle = "custom-card:#7f1d1d"

	if err := db.CreateCalendar(ctx, cal, days); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return fmt.Errorf("slug %q already exists, choose another with -slug", slug)
		}
		return fmt.Errorf("create calendar: %w", err)
	}

	logger.Info("calendar created",
		slog.String("id", cal.ID),
		slog.String("slug", cal.Slug),
		slog.Int("days", days),
	)

	// Fill the first days so the demo has something to reveal
	samples := []struct {
		day     int
		typ     database.ContentType
		title   string
		content string
	}{
		{1, database.ContentTypeText, "Welcome", "The countdown starts **today**. Come back every morning!"},
		{2, database.ContentTypeImage, "A memory", "https://example.com/photos/first-snow.jpg"},
		{3, database.ContentTypeLetter, "Dear you", "Three days in already.\n\nHere is a little letter, just because."},
		{4, database.ContentTypeYouTube, "A song", "dQw4w9WgXcQ"},
	}

	for _, s := range samples {
		if s.day > days {
			break
		}
		title, content := s.title, s.content
		if err := db.UpdateDay(ctx, cal.ID, s.day, s.typ, &title, &content); err != nil {
			return fmt.Errorf("seed day %d: %w", s.day, err)
		}
		logger.Debug("seeded day", slog.Int("day", s.day), slog.String("type", string(s.typ)))
	}

	return nil
}
