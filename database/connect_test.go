package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureSSLMode(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{
			"bare dsn",
			"postgres://u:p@db.example.com:5432/app",
			"postgres://u:p@db.example.com:5432/app?sslmode=require",
		},
		{
			"existing query params",
			"postgres://u:p@db.example.com:5432/app?connect_timeout=5",
			"postgres://u:p@db.example.com:5432/app?connect_timeout=5&sslmode=require",
		},
		{
			"sslmode already set",
			"postgres://u:p@db.example.com:5432/app?sslmode=disable",
			"postgres://u:p@db.example.com:5432/app?sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ensureSSLMode(tt.dsn))
		})
	}
}
