package mysql

import (
	"context"
	"testing"
	"time"

	invDomain "offer-marketplace/internal/domain/investment"
	offerDomain "offer-marketplace/internal/domain/offer"
	userDomain "offer-marketplace/internal/domain/user"
	"offer-marketplace/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- SQLite-friendly schema only for tests (no ENUM) ---

type offerSQLite struct {
	ID                string    `gorm:"primaryKey;column:id"`
	Name              string    `gorm:"column:name"`
	Description       *string   `gorm:"column:description"`
	TargetAmount      int64     `gorm:"column:target_amount"`
	MinimumInvestment int64     `gorm:"column:minimum_investment"`
	EndAt             time.Time `gorm:"column:end_at"`
	Status            string    `gorm:"type:text;column:status;default:'draft'"` // ← no enum
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (offerSQLite) TableName() string { return "offers" }

type offerImageSQLite struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	OfferID   string    `gorm:"column:offer_id;index"`
	URL       string    `gorm:"column:url"`
	Position  int       `gorm:"column:position"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (offerImageSQLite) TableName() string { return "offer_images" }

type investmentSQLite struct {
	ID          string         `gorm:"primaryKey;column:id"`
	UserID      string         `gorm:"column:user_id"`
	OfferID     string         `gorm:"column:offer_id"`
	Amount      int64          `gorm:"column:amount"`
	Status      string         `gorm:"type:text;column:status;default:'pending'"`
	Reason      *string        `gorm:"column:reason"`
	CompletedAt *time.Time     `gorm:"column:completed_at"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (investmentSQLite) TableName() string { return "investments" }

type userSQLite struct {
	ID           string    `gorm:"primaryKey;column:id"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	FirstName    string    `gorm:"column:first_name"`
	LastName     string    `gorm:"column:last_name"`
	Role         string    `gorm:"type:text;column:role;default:'signer'"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userSQLite) TableName() string { return "users" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe schema.
// A single connection keeps every query on the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&userSQLite{}, &offerSQLite{}, &offerImageSQLite{}, &investmentSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeOffer(name string, status offerDomain.Status, endAt time.Time) *offerDomain.Offer {
	return &offerDomain.Offer{
		ID:                id.New(),
		Name:              name,
		TargetAmount:      10_000_000,
		MinimumInvestment: 100_000,
		EndAt:             endAt.UTC(),
		Status:            status,
	}
}

func makeUser(email string, role userDomain.Role) *userDomain.User {
	return &userDomain.User{
		ID:           id.New(),
		Email:        email,
		PasswordHash: "$2a$10$hash",
		FirstName:    "Jan",
		LastName:     "Kowalski",
		Role:         role,
	}
}

func makeInvestment(userID, offerID string, amount int64, status invDomain.Status) *invDomain.Investment {
	return &invDomain.Investment{
		ID:      id.New(),
		UserID:  userID,
		OfferID: offerID,
		Amount:  amount,
		Status:  status,
	}
}

func mustCreateOffer(t *testing.T, db *gorm.DB, o *offerDomain.Offer) *offerDomain.Offer {
	t.Helper()
	if err := NewOfferRepository(db).Create(context.Background(), o); err != nil {
		t.Fatalf("create offer: %v", err)
	}
	return o
}

func mustCreateUser(t *testing.T, db *gorm.DB, u *userDomain.User) *userDomain.User {
	t.Helper()
	if err := NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func mustCreateInvestment(t *testing.T, db *gorm.DB, inv *invDomain.Investment) *invDomain.Investment {
	t.Helper()
	if err := NewInvestmentRepository(db).Create(context.Background(), inv); err != nil {
		t.Fatalf("create investment: %v", err)
	}
	return inv
}
