// internal/srs/scheduler_test.go
package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateNewMasteryLevel(t *testing.T) {
	tests := []struct {
		name       string
		level      int
		wasCorrect bool
		want       int
	}{
		{"正解: レベル0→1", 0, true, 1},
		{"正解: レベル1→2", 1, true, 2},
		{"正解: レベル2→3", 2, true, 3},
		{"正解: レベル3→4", 3, true, 4},
		{"正解: レベル4→5", 4, true, 5},
		{"正解: レベル5は上限維持", 5, true, 5},
		{"不正解: レベル0は下限維持", 0, false, 0},
		{"不正解: レベル1→0", 1, false, 0},
		{"不正解: レベル2→1", 2, false, 1},
		{"不正解: レベル3→2", 3, false, 2},
		{"不正解: レベル4→3", 4, false, 3},
		{"不正解: レベル5→4", 5, false, 4},
		{"範囲外: 負のレベルは0に丸めてから遷移", -3, true, 1},
		{"範囲外: 6以上は5に丸めてから遷移", 9, false, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateNewMasteryLevel(tt.level, tt.wasCorrect))
		})
	}
}

func TestGetIntervalDays(t *testing.T) {
	// レベル0..5の標準間隔テーブル
	wantByLevel := []int{1, 3, 7, 14, 30, 90}
	for level, want := range wantByLevel {
		assert.Equal(t, want, GetIntervalDays(level), "level=%d", level)
	}

	// 範囲外は1日にフォールバック
	assert.Equal(t, 1, GetIntervalDays(-1))
	assert.Equal(t, 1, GetIntervalDays(6))
	assert.Equal(t, 1, GetIntervalDays(100))
}

func TestCalculateIntervalDays(t *testing.T) {
	tests := []struct {
		name       string
		level      int
		wasCorrect bool
		want       int
	}{
		// 正解時は昇格後レベルの標準間隔
		{"正解: レベル0→1 は3日", 0, true, 3},
		{"正解: レベル1→2 は7日", 1, true, 7},
		{"正解: レベル2→3 は14日", 2, true, 14},
		{"正解: レベル4→5 は90日", 4, true, 90},
		{"正解: レベル5維持は90日", 5, true, 90},
		// 不正解時は回答前レベルの1つ下の間隔の半分 (最低1日)
		{"不正解: レベル0 は1日", 0, false, 1},
		{"不正解: レベル1 は interval(0)/2 の下限1日", 1, false, 1},
		{"不正解: レベル2 は interval(1)/2 = 1日", 2, false, 1},
		{"不正解: レベル3 は interval(2)/2 = 3日", 3, false, 3},
		{"不正解: レベル4 は interval(3)/2 = 7日", 4, false, 7},
		{"不正解: レベル5 は interval(4)/2 = 15日", 5, false, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateIntervalDays(tt.level, tt.wasCorrect))
		})
	}
}

func TestNextReviewDate(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 4, 5, 0, time.UTC)

	t.Run("レベル2で正解すると14日後", func(t *testing.T) {
		got := NextReviewDate(now, 2, true)
		assert.Equal(t, now.AddDate(0, 0, 14), got)
	})

	t.Run("レベル3で不正解すると3日後", func(t *testing.T) {
		got := NextReviewDate(now, 3, false)
		assert.Equal(t, now.AddDate(0, 0, 3), got)
	})

	t.Run("レベル0で不正解すると翌日", func(t *testing.T) {
		got := NextReviewDate(now, 0, false)
		assert.Equal(t, now.AddDate(0, 0, 1), got)
	})

	t.Run("次回復習日は常にイベント時刻より後", func(t *testing.T) {
		for level := 0; level <= 5; level++ {
			for _, correct := range []bool{true, false} {
				got := NextReviewDate(now, level, correct)
				assert.True(t, got.After(now), "level=%d correct=%t", level, correct)
			}
		}
	})
}
