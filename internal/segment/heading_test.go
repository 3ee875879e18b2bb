package segment

import (
	"strings"
	"testing"
)

func TestPatternScore_StrongPatterns(t *testing.T) {
	strong := []string{
		"第一章 绪论",
		"第12章",
		"第三篇 应用",
		"Chapter 5",
		"CHAPTER 12 CONTROL",
		"附录A",
		"附录",
		"参考文献",
		"References",
		"preface",
		"Introduction",
	}
	for _, title := range strong {
		if patternScore(title) != strongPatternScore {
			t.Errorf("patternScore(%q) = %v, want %v", title, patternScore(title), strongPatternScore)
		}
	}

	weak := []string{
		"这是一段普通正文。",
		"robot kinematics overview",
		"见第三章的讨论",
	}
	for _, title := range weak {
		if patternScore(title) != 0 {
			t.Errorf("patternScore(%q) = %v, want 0", title, patternScore(title))
		}
	}
}

func TestMarkdownLevel(t *testing.T) {
	cases := []struct {
		line string
		want int
	}{
		{"# 第一章", 1},
		{"## 1.1 背景", 2},
		{"###### deep", 6},
		{"####### too deep", 0},
		{"#no space", 0},
		{"plain text", 0},
		{"  ## indented", 2},
	}
	for _, c := range cases {
		if got := markdownLevel(c.line); got != c.want {
			t.Errorf("markdownLevel(%q) = %d, want %d", c.line, got, c.want)
		}
	}
}

func TestIsolationScore(t *testing.T) {
	if got := isolationScore(0, 0); got != 0 {
		t.Errorf("no blanks: got %v, want 0", got)
	}
	if got := isolationScore(1, 0); got != isolationBonus {
		t.Errorf("blank before: got %v, want %v", got, isolationBonus)
	}
	if got := isolationScore(2, 3); got != 2*isolationBonus {
		t.Errorf("blanks both sides: got %v, want %v", got, 2*isolationBonus)
	}
}

func TestLengthPenalty(t *testing.T) {
	short := "第一章 绪论"
	if got := lengthPenalty(short); got != 0 {
		t.Errorf("short title: got %v, want 0", got)
	}
	mid := strings.Repeat("字", 100)
	if got := lengthPenalty(mid); got != -midTitlePenalty {
		t.Errorf("mid title: got %v, want %v", got, -midTitlePenalty)
	}
	long := strings.Repeat("字", 130)
	if got := lengthPenalty(long); got != -longTitlePenalty {
		t.Errorf("long title: got %v, want %v", got, -longTitlePenalty)
	}
}

func TestDetectCandidates_ScoresAndMetadata(t *testing.T) {
	lines := []string{
		"",
		"# 第一章 绪论",
		"",
		"正文第一段。",
		"第二章 动力学", // plain strong line, no markdown syntax
		"正文第二段。",
	}
	cands := detectCandidates(lines)
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}

	first := cands[0]
	if first.line != 1 || first.level != 1 || first.num != 1 {
		t.Errorf("first candidate metadata: %+v", first)
	}
	// strong pattern + markdown + blank line on both sides.
	want := strongPatternScore + markdownHeadingScore + 2*isolationBonus
	if first.score != want {
		t.Errorf("first candidate score = %v, want %v", first.score, want)
	}

	second := cands[1]
	if second.line != 4 || second.level != 0 || second.num != 2 {
		t.Errorf("second candidate metadata: %+v", second)
	}
	if second.score != strongPatternScore {
		t.Errorf("second candidate score = %v, want %v", second.score, strongPatternScore)
	}
}

func TestDetectCandidates_SkipsTOCMarkup(t *testing.T) {
	lines := []string{
		"- [第一章 绪论](#ch1)",
		"1. [Introduction](#intro)",
		"目录",
		"# 第1章 绪论 15",
		"# 第一章 绪论",
	}
	cands := detectCandidates(lines)
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	if cands[0].line != 4 {
		t.Errorf("expected candidate at line 4, got %d", cands[0].line)
	}
}

func TestBlankRuns(t *testing.T) {
	lines := []string{"a", "", "", "b", ""}
	before := blanksBefore(lines)
	after := blanksAfter(lines)

	wantBefore := []int{0, 0, 1, 2, 0}
	wantAfter := []int{2, 1, 0, 1, 0}
	for i := range lines {
		if before[i] != wantBefore[i] {
			t.Errorf("blanksBefore[%d] = %d, want %d", i, before[i], wantBefore[i])
		}
		if after[i] != wantAfter[i] {
			t.Errorf("blanksAfter[%d] = %d, want %d", i, after[i], wantAfter[i])
		}
	}
}
