package database

import (
	"testing"

	"learnhub/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "whatever")
	assert.EqualError(t, err, `unsupported DB_DRIVER "oracle"`)
}

func TestOpenMemoryMigratesEveryTable(t *testing.T) {
	db, err := OpenMemory(t.Name())
	require.NoError(t, err)

	for _, table := range []string{"users", "courses", "modules", "classes", "cart_items", "enrollments", "class_progresses", "orders"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex("cart_items", "idx_cart_user_course"))
	assert.True(t, db.Migrator().HasIndex("enrollments", "idx_enrollment_user_course"))
	assert.True(t, db.Migrator().HasIndex("class_progresses", "idx_progress_user_class"))
}

func TestDsnFromConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "explicit dsn wins",
			cfg:  config.Config{DBDriver: "postgres", DBDSN: "postgres://x"},
			want: "postgres://x",
		},
		{
			name: "postgres",
			cfg:  config.Config{DBDriver: "postgres", DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5432"},
			want: "host=db user=u password=p dbname=n port=5432 sslmode=disable",
		},
		{
			name: "mysql",
			cfg:  config.Config{DBDriver: "mysql", DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "3306"},
			want: "u:p@tcp(db:3306)/n?charset=utf8mb4&parseTime=True&loc=UTC",
		},
		{
			name: "sqlite",
			cfg:  config.Config{DBDriver: "sqlite", DBName: "learnhub"},
			want: "learnhub.db",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			assert.Equal(t, tt.want, dsnFromConfig(&cfg))
		})
	}
}
