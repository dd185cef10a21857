package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	bookingDomain "github.com/borrowhub/service-rental/internal/domain/booking"
	itemDomain "github.com/borrowhub/service-rental/internal/domain/item"
	requestDomain "github.com/borrowhub/service-rental/internal/domain/request"
	userDomain "github.com/borrowhub/service-rental/internal/domain/user"
)

// newTestDB opens a fresh in-memory database per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&UserModel{},
		&RequestModel{},
		&ItemModel{},
		&BookingModel{},
		&CommentModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) *userDomain.User {
	t.Helper()
	u, err := userDomain.NewUser(name, email)
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(db).Save(context.Background(), u))
	return u
}

func seedItem(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name string, available bool) *itemDomain.Item {
	t.Helper()
	i, err := itemDomain.NewItem(ownerID, name, name+" description", available, nil)
	require.NoError(t, err)
	require.NoError(t, NewGormItemRepository(db).Save(context.Background(), i))
	return i
}

func seedRequest(t *testing.T, repo *GormRequestRepository, requesterID uuid.UUID, description string) *requestDomain.Request {
	t.Helper()
	rq, err := requestDomain.NewRequest(requesterID, description)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), rq))
	return rq
}

func seedBooking(
	t *testing.T,
	db *gorm.DB,
	itm *itemDomain.Item,
	booker *userDomain.User,
	start, end time.Time,
	status bookingDomain.Status,
) *bookingDomain.Booking {
	t.Helper()
	now := time.Now().UTC()
	bk := bookingDomain.Reconstruct(
		uuid.New(), start, end,
		bookingDomain.ItemRef{ID: itm.ID(), Name: itm.Name(), OwnerID: itm.OwnerID()},
		bookingDomain.UserRef{ID: booker.ID(), Name: booker.Name()},
		status, 1, now, now,
	)
	require.NoError(t, db.Create(&BookingModel{
		ID:        bk.ID(),
		StartAt:   bk.Start(),
		EndAt:     bk.End(),
		ItemID:    bk.Item().ID,
		BookerID:  bk.Booker().ID,
		Status:    string(bk.Status()),
		Version:   bk.Version(),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}).Error)
	return bk
}
