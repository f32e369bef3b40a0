package record

import "strings"

// The five canonical education levels every free-text value is mapped onto.
const (
	EducationUnspecified = "不限"
	EducationAssociate   = "专科"
	EducationBachelor    = "本科"
	EducationMaster      = "硕士"
	EducationDoctorate   = "博士"
)

// eduSubstitutions maps free-text education phrases onto canonical levels.
// Scanned in order, first substring match wins.
var eduSubstitutions = []struct {
	contains  string
	canonical string
}{
	{"大专", EducationAssociate},
	{"专科及以上", EducationAssociate},
	{"本科及以上", EducationBachelor},
	{"硕士及以上", EducationMaster},
	{"博士及以上", EducationDoctorate},
	{"学士", EducationBachelor},
	{"研究生", EducationMaster},
	{"PhD", EducationDoctorate},
}

var canonicalEducations = map[string]bool{
	EducationUnspecified: true,
	EducationAssociate:   true,
	EducationBachelor:    true,
	EducationMaster:      true,
	EducationDoctorate:   true,
}

// majorCities is scanned in order; the first city found as a substring of a
// location wins.
var majorCities = []string{
	"北京", "上海", "广州", "深圳", "杭州", "南京", "成都", "武汉",
	"西安", "重庆", "天津", "苏州", "长沙", "郑州", "青岛", "大连",
}

// CleanText collapses runs of whitespace to single spaces and replaces
// non-breaking and full-width spaces with ordinary ones.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, "　", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// CanonicalEducation maps a free-text education requirement to one of the
// five canonical levels, defaulting to 不限.
func CanonicalEducation(education string) string {
	education = CleanText(education)

	for _, sub := range eduSubstitutions {
		if strings.Contains(education, sub.contains) {
			return sub.canonical
		}
	}

	if canonicalEducations[education] {
		return education
	}
	return EducationUnspecified
}

// CanonicalCity extracts the major city from a location string, returning the
// cleaned input unchanged when no known city is found.
func CanonicalCity(location string) string {
	location = CleanText(location)

	for _, city := range majorCities {
		if strings.Contains(location, city) {
			return city
		}
	}
	return location
}
