package segment

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	arabicChapterRe  = regexp.MustCompile(`第(\d+)章`)
	chineseChapterRe = regexp.MustCompile(`第([一二三四五六七八九十零〇]+)章`)
	englishChapterRe = regexp.MustCompile(`(?i)Chapter\s+(\d+)`)
	leadingNumberRe  = regexp.MustCompile(`^(\d+)\b`)
)

var chineseDigits = map[rune]int{
	'零': 0, '〇': 0,
	'一': 1, '二': 2, '三': 3, '四': 4, '五': 5,
	'六': 6, '七': 7, '八': 8, '九': 9,
}

// ChapterNumber extracts a chapter number from a heading title. It
// tries "第N章" with Arabic digits, then with Chinese numerals, then
// "Chapter N", then a standalone leading integer. A resolved value of
// zero is treated as no number.
func ChapterNumber(title string) (int, bool) {
	if m := arabicChapterRe.FindStringSubmatch(title); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n, true
		}
	}
	if m := chineseChapterRe.FindStringSubmatch(title); m != nil {
		if n, ok := chineseNumeral(m[1]); ok {
			return n, true
		}
	}
	if m := englishChapterRe.FindStringSubmatch(title); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n, true
		}
	}
	if m := leadingNumberRe.FindStringSubmatch(title); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}

// chineseNumeral converts numerals built from 零〇一..九 and the tens
// multiplier 十. A bare 十 is 10; with 十 present the value is
// (left-of-十 or 1)*10 + (right-of-十 or 0); otherwise digit values
// are summed.
func chineseNumeral(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if s == "十" {
		return 10, true
	}
	total := 0
	if strings.ContainsRune(s, '十') {
		parts := strings.SplitN(s, "十", 2)
		left, right := parts[0], ""
		if len(parts) > 1 {
			right = parts[1]
		}
		l := 1
		if v, ok := singleDigit(left); ok {
			l = v
		}
		r := 0
		if v, ok := singleDigit(right); ok {
			r = v
		}
		total = l*10 + r
	} else {
		for _, ch := range s {
			total += chineseDigits[ch]
		}
	}
	if total <= 0 {
		return 0, false
	}
	return total, true
}

func singleDigit(s string) (int, bool) {
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, false
	}
	v, ok := chineseDigits[runes[0]]
	return v, ok
}
