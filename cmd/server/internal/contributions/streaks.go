package contributions

// AnalyzeStreaks computes the longest historical run of active days and
// the unbroken run ending at the most recent day. Weeks and their days
// arrive chronologically ordered, so flattening is a concatenation.
func AnalyzeStreaks(weeks []ContributionWeek) (longest, current int) {
	var days []ContributionDay
	for _, w := range weeks {
		days = append(days, w.Days...)
	}

	run := 0
	for _, d := range days {
		if d.Count > 0 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}

	// Current streak only measures the unbroken tail, so the scan stops
	// at the first inactive day rather than resetting.
	for i := len(days) - 1; i >= 0; i-- {
		if days[i].Count == 0 {
			break
		}
		current++
	}

	return longest, current
}
