package contributions

// levelFromLabel maps the GraphQL contributionLevel enumeration to the
// ordinal 0-4 scale. Unrecognized labels map to 0 so bad categorical
// data never aborts a whole calendar.
func levelFromLabel(label string) int {
	switch label {
	case "NONE":
		return 0
	case "FIRST_QUARTILE":
		return 1
	case "SECOND_QUARTILE":
		return 2
	case "THIRD_QUARTILE":
		return 3
	case "FOURTH_QUARTILE":
		return 4
	default:
		return 0
	}
}

// Normalize reshapes the wire calendar into week buckets with ordinal
// levels. Pure transform, no side effects.
func Normalize(rawWeeks []CalendarWeek) []ContributionWeek {
	weeks := make([]ContributionWeek, 0, len(rawWeeks))
	for _, rw := range rawWeeks {
		week := ContributionWeek{Days: make([]ContributionDay, 0, len(rw.ContributionDays))}
		for _, rd := range rw.ContributionDays {
			week.Days = append(week.Days, ContributionDay{
				Date:  rd.Date,
				Count: rd.ContributionCount,
				Level: levelFromLabel(rd.ContributionLevel),
			})
		}
		weeks = append(weeks, week)
	}
	return weeks
}
