package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance/internal/models"
	"finance/internal/storage"
	"finance/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuditService(storage.NewGormGateway(db))
	user := testutil.CreateTestUser(t, db)

	svc.Log(context.Background(), user.ID, AuditActionCreate, "CATEGORY", "cat-1", "127.0.0.1", map[string]any{"name": "Gym"})

	var entries []models.AuditLog
	require.NoError(t, db.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, AuditActionCreate, entries[0].Action)
	assert.Equal(t, "CATEGORY", entries[0].ResourceType)
	assert.JSONEq(t, `{"name":"Gym"}`, entries[0].Changes)
}

func TestAuditLogFailureDoesNotPanic(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuditService(storage.NewGormGateway(db))
	require.NoError(t, db.Migrator().DropTable(&models.AuditLog{}))

	assert.NotPanics(t, func() {
		svc.Log(context.Background(), "user", AuditActionDelete, "GOAL", "goal-1", "", nil)
	})
}
