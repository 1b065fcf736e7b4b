package config

import (
	"testing"

	"hotel-ops/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, Config{}.Origins())
	assert.Equal(t, []string{"*"}, Config{CORSOrigins: " , "}.Origins())
	assert.Equal(t,
		[]string{"https://a.example", "https://b.example"},
		Config{CORSOrigins: "https://a.example, https://b.example,"}.Origins())
}

func TestResolveMySQLDSN(t *testing.T) {
	dsn, err := resolveMySQLDSN(Config{MySQLURL: "mysql://user:pw@db.internal/hotel"})
	require.NoError(t, err)
	assert.Equal(t, "user:pw@tcp(db.internal:3306)/hotel?charset=utf8mb4&loc=UTC&parseTime=True", dsn)

	dsn, err = resolveMySQLDSN(Config{DBUser: "root", DBPass: "x", DBHost: "127.0.0.1", DBPort: "3307", DBName: "hotel_db"})
	require.NoError(t, err)
	assert.Equal(t, "root:x@tcp(127.0.0.1:3307)/hotel_db?charset=utf8mb4&parseTime=True&loc=UTC", dsn)

	_, err = resolveMySQLDSN(Config{DatabaseURL: "mysql://user:pw@db.internal"})
	assert.Error(t, err)
}

func TestResolvePostgresDSN(t *testing.T) {
	assert.Equal(t, "postgres://u@h/db", resolvePostgresDSN(Config{DatabaseURL: "postgres://u@h/db"}))
	assert.Equal(t,
		"host=h user=u password=p dbname=d port=5432 sslmode=disable TimeZone=UTC",
		resolvePostgresDSN(Config{DBHost: "h", DBUser: "u", DBPass: "p", DBName: "d", DBPort: "3306"}))
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{"", "mysql", "postgres", "sqlite"} {
		d, err := Dialector(Config{DBDriver: driver, DBName: "hotel", SQLitePath: ":memory:"})
		require.NoError(t, err, driver)
		assert.NotNil(t, d)
	}
	_, err := Dialector(Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestSeedDatabaseIsIdempotent(t *testing.T) {
	db, err := OpenSQLite("file:seed_test?mode=memory&cache=shared")
	require.NoError(t, err)

	SeedDatabase(db)
	SeedDatabase(db)

	var staff, roomTypes, rooms int64
	require.NoError(t, db.Model(&models.Staff{}).Count(&staff).Error)
	require.NoError(t, db.Model(&models.RoomType{}).Count(&roomTypes).Error)
	require.NoError(t, db.Model(&models.Room{}).Count(&rooms).Error)
	assert.Equal(t, int64(1), staff)
	assert.Equal(t, int64(4), roomTypes)
	assert.Equal(t, int64(4), rooms)
}
