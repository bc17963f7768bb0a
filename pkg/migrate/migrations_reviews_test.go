package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/platefinder/platefinder-backend/pkg/migrate"
)

func TestReviewsMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_reviews.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no reviews migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE reviews",
		"CHECK (rating BETWEEN 1 AND 5)",
		"CREATE UNIQUE INDEX reviews_user_restaurant_key ON reviews (user_id, restaurant_id)",
		"DROP TABLE IF EXISTS reviews",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestFavoritesMigrationHasUniquePair(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_favorites.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no favorites migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	if !strings.Contains(string(data), "CREATE UNIQUE INDEX favorites_user_restaurant_key ON favorites (user_id, restaurant_id)") {
		t.Errorf("missing unique (user_id, restaurant_id) index")
	}
}

func TestMigrationDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}
