package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCouponCode_Format(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	code := GenerateCouponCode(7, 10, 30, 40, at)

	parts := strings.Split(code, "-")
	assert.Len(t, parts, 4)
	assert.Len(t, parts[0], 3)     // campaign/stock/imageから導出した文字
	assert.Equal(t, "0314", parts[2]) // MMDD
	assert.Equal(t, "0926", parts[3]) // MMSS
}

func TestGenerateCouponCode_Deterministic(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	a := GenerateCouponCode(7, 10, 30, 40, at)
	b := GenerateCouponCode(7, 10, 30, 40, at)

	assert.Equal(t, a, b)
}

// 同一時刻でもユーザーが違えばコードは衝突しない
// （ユーザーIDが桁ごと埋め込まれるため）。
func TestGenerateCouponCode_UniquePerUser(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	seen := make(map[string]struct{}, 10000)
	for userID := int64(1); userID <= 10000; userID++ {
		code := GenerateCouponCode(userID, 10, 30, 40, at)
		_, dup := seen[code]
		assert.False(t, dup, "duplicate code %s for user %d", code, userID)
		seen[code] = struct{}{}
	}
}
