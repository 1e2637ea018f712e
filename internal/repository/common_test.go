package repository_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"go-wine-tasting/config"
	"go-wine-tasting/internal/database"
	"go-wine-tasting/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// testDB 是測試用的資料庫連接池；連不上時為 nil，相關測試會被略過
var testDB *pgxpool.Pool

func TestMain(m *testing.M) {
	cfg := config.LoadTestConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Printf("Test database unavailable, skipping repository tests: %v", err)
	} else {
		if err := database.Migrate(context.Background(), pool); err != nil {
			log.Fatalf("Failed to migrate test database: %v", err)
		}
		testDB = pool
		log.Println("Test database connected successfully")
	}

	code := m.Run()
	if testDB != nil {
		testDB.Close()
		log.Println("Test database closed")
	}
	os.Exit(code)
}

// getTestDB 清空資料表並回傳連接池
func getTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testDB == nil {
		t.Skip("test database is not available")
	}
	_, err := testDB.Exec(context.Background(),
		"TRUNCATE diary_entries, evaluations, event_participants, event_wines, events, wines, users RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
	return testDB
}

// createTestUser 輔助函數：創建測試用的 user
func createTestUser(t *testing.T, name string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := testDB.Exec(context.Background(), `INSERT INTO users (id, name) VALUES ($1, $2)`, id, name)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return id
}

// createTestWine 輔助函數：創建測試用的 wine
func createTestWine(t *testing.T, ownerID uuid.UUID, name string) *model.Wine {
	t.Helper()
	wine := &model.Wine{WineID: uuid.New(), OwnerID: ownerID, Name: name}
	err := testDB.QueryRow(context.Background(),
		`INSERT INTO wines (wine_id, owner_id, name) VALUES ($1, $2, $3) RETURNING id, created_at`,
		wine.WineID, ownerID, name,
	).Scan(&wine.ID, &wine.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test wine: %v", err)
	}
	return wine
}

func eventParams(organizer uuid.UUID, code string, wines ...*model.Wine) model.CreateEventParams {
	ids := make([]uuid.UUID, 0, len(wines))
	for _, w := range wines {
		ids = append(ids, w.WineID)
	}
	return model.CreateEventParams{
		Name:        "Blind tasting",
		OrganizerID: organizer,
		InviteCode:  code,
		DateStart:   time.Date(2026, 10, 18, 19, 0, 0, 0, time.UTC),
		WineIDs:     ids,
	}
}
