// internal/srs/scheduler.go
package srs

import (
	"time"

	"lingolearn/internal/model"
)

// intervalDays はレベルごとの標準復習間隔 (日数) です。
var intervalDays = map[int]int{
	0: 1,  // 新規単語: 翌日
	1: 3,  // 1回目の正解後: 3日
	2: 7,  // 2回目の正解後: 1週間
	3: 14, // 3回目の正解後: 2週間
	4: 30, // 4回目の正解後: 1ヶ月
	5: 90, // 習得済み: 3ヶ月
}

// GetIntervalDays はレベルに対応する標準復習間隔を返します。
// 範囲外のレベルは1日にフォールバックします (レベル不変条件が守られていれば到達しない)。
func GetIntervalDays(level int) int {
	if d, ok := intervalDays[level]; ok {
		return d
	}
	return 1
}

// CalculateNewMasteryLevel は回答の正誤から次の習熟度レベルを計算します。
// 正解で+1 (上限5)、不正解で-1 (下限0)。それ以外の入力は遷移に影響しません。
func CalculateNewMasteryLevel(currentLevel int, wasCorrect bool) int {
	currentLevel = clampLevel(currentLevel)
	if wasCorrect {
		if currentLevel >= model.MaxMasteryLevel {
			return model.MaxMasteryLevel
		}
		return currentLevel + 1
	}
	if currentLevel <= model.MinMasteryLevel {
		return model.MinMasteryLevel
	}
	return currentLevel - 1
}

// CalculateIntervalDays は回答の正誤から次の復習までの日数を計算します。
// currentLevel は回答前のレベルであることに注意。
//
// 正解時は昇格後レベルの標準間隔。不正解時は回答前レベルの1つ下の
// 標準間隔を半分にした値 (最低1日) で、ミス後の再テストを早めます。
// 半減の基準が降格後ではなく回答前のレベルであるのは意図的な仕様です。
func CalculateIntervalDays(currentLevel int, wasCorrect bool) int {
	currentLevel = clampLevel(currentLevel)

	if !wasCorrect {
		if currentLevel == model.MinMasteryLevel {
			return 1
		}
		half := GetIntervalDays(currentLevel-1) / 2
		if half < 1 {
			return 1
		}
		return half
	}

	return GetIntervalDays(CalculateNewMasteryLevel(currentLevel, wasCorrect))
}

// NextReviewDate はレビュー時刻から次回復習日時を計算します。
// 暦日ベースの加算 (AddDate) を使うため、夏時間等があっても「N日後の同時刻」になります。
func NextReviewDate(now time.Time, currentLevel int, wasCorrect bool) time.Time {
	return now.AddDate(0, 0, CalculateIntervalDays(currentLevel, wasCorrect))
}

// clampLevel は範囲外のレベルを [0,5] に丸めます。呼び出し側の契約違反に対する防御です。
func clampLevel(level int) int {
	if level < model.MinMasteryLevel {
		return model.MinMasteryLevel
	}
	if level > model.MaxMasteryLevel {
		return model.MaxMasteryLevel
	}
	return level
}
