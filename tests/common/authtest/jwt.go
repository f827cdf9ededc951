//go:build e2e

package authtest

import (
	"testing"
	"time"

	"kashikiri-booking/internal/pkg/config"
	"kashikiri-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// StaffToken issues a token the way the platform's auth service would.
func StaffToken(t *testing.T, cfg config.Config, staffID uuid.UUID, role string) string {
	t.Helper()

	svc := jwt.NewService(cfg.JWT.Secret)
	token, err := svc.GenerateToken(staffID, role, time.Hour)
	require.NoError(t, err, "テスト用トークンの発行に失敗")
	return token
}
