// internal/srs/streak.go
package srs

import (
	"sort"
	"time"
)

// CalculateStreak はセッション日付のリストから連続学習日数を計算します。
//
// today から1日ずつ遡り、セッションのある日が続く限りカウントします。
// 当日にセッションがなければストリークは0です (「今日時点で継続中」の定義であり、
// 直近の連続記録の長さではありません)。日付の順序は問わず、同日の重複は1日と数えます。
func CalculateStreak(sessionDates []time.Time, today time.Time) int {
	if len(sessionDates) == 0 {
		return 0
	}

	// 時刻を落として日付に正規化し、降順にソート
	days := make([]time.Time, 0, len(sessionDates))
	for _, d := range sessionDates {
		days = append(days, truncateToDay(d))
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	streak := 0
	cursor := truncateToDay(today)

	for _, day := range days {
		switch {
		case day.Equal(cursor):
			streak++
			cursor = cursor.AddDate(0, 0, -1)
		case day.After(cursor):
			// 同日の重複レコード。カウント済みなのでスキップ
			continue
		default:
			// cursor より古い日付が現れた時点で連続が途切れている
			return streak
		}
	}

	return streak
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
