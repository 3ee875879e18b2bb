package segment

import "sort"

// adjustSequence rewards candidates whose extracted chapter numbers
// continue the running sequence and penalizes breaks. The running
// number is updated for every numbered candidate regardless of its
// confidence, so a spurious in-body number also perturbs what follows.
func adjustSequence(cands []candidate) []candidate {
	adjusted := make([]candidate, len(cands))
	lastNum := 0
	for i, c := range cands {
		if c.num != 0 {
			switch {
			case lastNum == 0:
				c.score += firstNumberBonus
			case c.num == lastNum || c.num == lastNum+1:
				c.score += sequenceBonus
			default:
				c.score -= sequencePenalty
			}
			lastNum = c.num
		}
		adjusted[i] = c
	}
	return adjusted
}

// acceptCandidates keeps candidates at or above acceptScore, with a
// small epsilon so scores assembled from float bonuses are not
// rejected one rounding error under the bar. If none clear the bar the
// whole adjusted set is kept, degrading gracefully instead of
// producing zero chapters.
func acceptCandidates(cands []candidate) []candidate {
	var accepted []candidate
	for _, c := range cands {
		if c.score >= acceptScore-scoreEpsilon {
			accepted = append(accepted, c)
		}
	}
	if len(accepted) == 0 {
		return cands
	}
	return accepted
}

// filterGranularity reduces accepted candidates to boundaries of the
// requested granularity. Chapter mode keeps level-1 headings with an
// explicit chapter or front/back-matter pattern; section mode also
// keeps numbered and second-level headings. An empty result falls back
// to the unfiltered accepted set.
func filterGranularity(cands []candidate, g Granularity) []candidate {
	var primary []candidate
	for _, c := range cands {
		switch g {
		case GranularitySection:
			if c.num != 0 || c.level <= 2 || sectionNumberRe.MatchString(c.title) {
				primary = append(primary, c)
			}
		default:
			if c.level == 1 && patternScore(c.title) > 0 {
				primary = append(primary, c)
			}
		}
	}
	if len(primary) == 0 {
		return cands
	}
	return primary
}

func sortByLine(cands []candidate) {
	sort.Slice(cands, func(i, j int) bool { return cands[i].line < cands[j].line })
}
