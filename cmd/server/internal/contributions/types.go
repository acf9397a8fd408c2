// Package contributions implements the contribution-calendar core of the
// showcase application: fetching a user's GitHub contribution calendar,
// normalizing it, computing streaks, and falling back to synthetic data
// whenever the real source cannot serve.
package contributions

// ContributionDay is a single day in the calendar. Level is an ordinal
// 0-4 bucket; level 0 always pairs with count 0 in real data.
type ContributionDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// ContributionWeek is one calendar week of 1-7 chronological days.
// The final week of a year may be partial.
type ContributionWeek struct {
	Days []ContributionDay `json:"contributionDays"`
}

// ContributionStats is the immutable result snapshot returned per
// (username, year) query. Year is nil when the stats represent the
// source's default trailing window rather than an explicit year.
type ContributionStats struct {
	TotalContributions int                `json:"totalContributions"`
	Weeks              []ContributionWeek `json:"weeks"`
	LongestStreak      int                `json:"longestStreak"`
	CurrentStreak      int                `json:"currentStreak"`
	IsMockData         bool               `json:"isMockData"`
	Year               *int               `json:"year,omitempty"`
}

// CalendarDay and CalendarWeek mirror the GitHub GraphQL
// contributionCalendar wire shape consumed by the normalizer.
type CalendarDay struct {
	Date              string `json:"date"`
	ContributionCount int    `json:"contributionCount"`
	ContributionLevel string `json:"contributionLevel"`
}

type CalendarWeek struct {
	ContributionDays []CalendarDay `json:"contributionDays"`
}
