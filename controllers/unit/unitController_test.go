package unitController

import (
	"testing"

	"lms/database"
	"lms/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func TestUpsertUnitFromMatrizCreates(t *testing.T) {
	db := newTestDB(t)

	unit, created, err := UpsertUnitFromMatriz(db, models.Unit{
		Code:  "SP-001",
		Name:  "Unidade Paulista",
		City:  "São Paulo",
		State: "SP",
		Phase: models.UnitPhaseImplantacao,
	})
	require.NoError(t, err)
	require.True(t, created)
	require.NotZero(t, unit.ID)
}

func TestUpsertUnitFromMatrizUpdatesByCode(t *testing.T) {
	db := newTestDB(t)

	first, _, err := UpsertUnitFromMatriz(db, models.Unit{Code: "RJ-002", Name: "Unidade Centro", Phase: models.UnitPhaseImplantacao})
	require.NoError(t, err)

	second, created, err := UpsertUnitFromMatriz(db, models.Unit{Code: "RJ-002", Name: "Unidade Centro RJ", Phase: models.UnitPhaseOperacao})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, second.ID)

	var stored models.Unit
	require.NoError(t, db.First(&stored, first.ID).Error)
	require.Equal(t, "Unidade Centro RJ", stored.Name)
	require.Equal(t, models.UnitPhaseOperacao, stored.Phase)

	var count int64
	db.Model(&models.Unit{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestUpsertUnitFromMatrizKeepsSoftDeleted(t *testing.T) {
	db := newTestDB(t)

	unit := models.Unit{Code: "MG-003", Name: "Unidade Savassi", IsDeleted: true}
	require.NoError(t, db.Create(&unit).Error)

	got, created, err := UpsertUnitFromMatriz(db, models.Unit{Code: "MG-003", Name: "Renomeada"})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, unit.ID, got.ID)

	// The feed does not resurrect locally removed units.
	var stored models.Unit
	require.NoError(t, db.First(&stored, unit.ID).Error)
	require.Equal(t, "Unidade Savassi", stored.Name)
	require.True(t, stored.IsDeleted)
}
