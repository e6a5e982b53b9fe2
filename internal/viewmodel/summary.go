package viewmodel

import (
	"sort"
	"strings"
	"time"

	"estateadmin/internal/domain"
)

// Summary holds the counters shown next to a property list.
type Summary struct {
	Total     int
	Sold      int
	Available int
	Sale      int
	Rent      int
}

func Summarize(props []domain.Property) Summary {
	s := Summary{Total: len(props)}
	for _, p := range props {
		if p.IsSold {
			s.Sold++
		} else {
			s.Available++
		}
		switch p.Type {
		case domain.TypeSale:
			s.Sale++
		case domain.TypeRent:
			s.Rent++
		}
	}
	return s
}

// SoldCounts counts sold and available rows from the slim stats feed.
func SoldCounts(stats []domain.PropertyStat) (sold, available int) {
	for _, st := range stats {
		if st.IsSold {
			sold++
		} else {
			available++
		}
	}
	return sold, available
}

var MonthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthlyCounts buckets the timestamps that fall in year into twelve
// calendar-month slots. Timestamps from other years and zero times are
// ignored, so multiple years are never conflated.
func MonthlyCounts(times []time.Time, year int) [12]int {
	var out [12]int
	for _, t := range times {
		if t.IsZero() || t.Year() != year {
			continue
		}
		out[t.Month()-1]++
	}
	return out
}

// Years lists the distinct years present in times, newest first.
func Years(times []time.Time) []int {
	seen := map[int]bool{}
	var out []int
	for _, t := range times {
		if t.IsZero() || seen[t.Year()] {
			continue
		}
		seen[t.Year()] = true
		out = append(out, t.Year())
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// Series is one labelled histogram, ready for a template.
type Series struct {
	Label  string
	Counts [12]int
	Max    int
}

// Pct scales a count to a 0..100 bar height relative to the series max.
func (s Series) Pct(n int) int {
	if s.Max == 0 {
		return 0
	}
	return n * 100 / s.Max
}

func NewSeries(label string, times []time.Time, year int) Series {
	s := Series{Label: label, Counts: MonthlyCounts(times, year)}
	for _, n := range s.Counts {
		if n > s.Max {
			s.Max = n
		}
	}
	return s
}

// Slice is one labelled share of a whole, e.g. properties per category.
type Slice struct {
	Label string
	Value int
	Pct   int
}

// Shares turns taxonomy counts into title-cased labelled percentages.
func Shares(counts []domain.TaxonomyCount) []Slice {
	total := 0
	for _, c := range counts {
		total += c.Count.Posts
	}
	out := make([]Slice, 0, len(counts))
	for _, c := range counts {
		sl := Slice{Label: TitleCase(c.Name), Value: c.Count.Posts}
		if total > 0 {
			sl.Pct = c.Count.Posts * 100 / total
		}
		out = append(out, sl)
	}
	return out
}

// TitleCase upper-cases the first letter of name.
func TitleCase(name string) string {
	if name == "" {
		return ""
	}
	r := []rune(name)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

func StatTimes(stats []domain.PropertyStat) []time.Time {
	out := make([]time.Time, len(stats))
	for i, s := range stats {
		out[i] = s.CreatedAt
	}
	return out
}

func UserTimes(users []domain.User) []time.Time {
	out := make([]time.Time, len(users))
	for i, u := range users {
		out[i] = u.CreatedAt
	}
	return out
}
