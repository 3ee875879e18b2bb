package segment

import "testing"

func TestChapterNumber_Patterns(t *testing.T) {
	cases := []struct {
		title string
		want  int
		ok    bool
	}{
		{"第3章 动力学", 3, true},
		{"第12章", 12, true},
		{"第三章 绪论", 3, true},
		{"第十章", 10, true},
		{"第十二章", 12, true},
		{"第十五章", 15, true},
		{"第二十章", 20, true},
		{"第二十三章 控制系统", 23, true},
		{"Chapter 7", 7, true},
		{"chapter 4: Results", 4, true},
		{"CHAPTER 2", 2, true},
		{"3 概述", 3, true},
		{"前言", 0, false},
		{"动力学基础", 0, false},
		{"第零章", 0, false},
	}
	for _, c := range cases {
		got, ok := ChapterNumber(c.title)
		if ok != c.ok || got != c.want {
			t.Errorf("ChapterNumber(%q) = (%d, %v), want (%d, %v)", c.title, got, ok, c.want, c.ok)
		}
	}
}

func TestChapterNumber_ArabicBeatsChinese(t *testing.T) {
	// When both forms appear, the Arabic 第N章 pattern wins.
	got, ok := ChapterNumber("第2章 又名第三章")
	if !ok || got != 2 {
		t.Errorf("expected 2, got (%d, %v)", got, ok)
	}
}

func TestChineseNumeral_Composition(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"十", 10, true},
		{"十一", 11, true},
		{"二十", 20, true},
		{"九十九", 99, true},
		{"七", 7, true},
		{"零", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := chineseNumeral(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("chineseNumeral(%q) = (%d, %v), want (%d, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}
