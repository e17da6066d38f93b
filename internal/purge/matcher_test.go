package purge

import "testing"

func TestMatcherWordBoundaries(t *testing.T) {
	m := MustCompile([]string{"senior", "staff", "sales development representative"})

	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{"exact word", "Senior Software Engineer", true},
		{"case insensitive", "SENIOR BACKEND DEVELOPER", true},
		{"word inside title", "Staff Accountant", true},
		{"prefix does not match", "Seniority Analyst", false},
		{"suffix does not match", "Overstaffing Consultant", false},
		{"multi word phrase", "Sales Development Representative", true},
		{"multi word with extra spaces", "Sales  Development   Representative", true},
		{"phrase split across words", "Sales Representative", false},
		{"empty title", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Match(tt.title); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestMatcherAccentedPhrases(t *testing.T) {
	// RE2's \b is ASCII-only; anchors must be skipped next to accented
	// letters or these phrases never match.
	m := MustCompile([]string{"confirmé", "téléconseiller"})

	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{"accented at phrase end", "Développeur Python Confirmé", true},
		{"accented at phrase start", "Téléconseiller H/F", true},
		{"accented uppercase folds", "DÉVELOPPEUR CONFIRMÉ", true},
		{"no accent no match", "Developer Confirm", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Match(tt.title); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestMatcherPhraseOrderIrrelevant(t *testing.T) {
	a := MustCompile([]string{"senior", "maintenance", "accountant"})
	b := MustCompile([]string{"accountant", "senior", "maintenance"})

	titles := []string{
		"Senior Engineer",
		"IT Maintenance Engineer",
		"Staff Accountant",
		"Junior Developer",
	}
	for _, title := range titles {
		if a.Match(title) != b.Match(title) {
			t.Errorf("order-dependent result for %q", title)
		}
	}
}

func TestMatcherEmptyAndBlankLists(t *testing.T) {
	empty, err := Compile(nil)
	if err != nil {
		t.Fatalf("Compile(nil): %v", err)
	}
	if empty.Match("anything at all") {
		t.Error("empty matcher should never match")
	}

	blank, err := Compile([]string{"", "   "})
	if err != nil {
		t.Fatalf("Compile(blank): %v", err)
	}
	if blank.Match("anything at all") {
		t.Error("blank-only matcher should never match")
	}
}

func TestMatcherQuotesMetaChars(t *testing.T) {
	m := MustCompile([]string{"c++ developer", "sr."})
	if !m.Match("C++ Developer wanted") {
		t.Error("metacharacters in phrases must be treated literally")
	}
	if !m.Match("Sr. Engineer") {
		t.Error("dot must match literally")
	}
	if m.Match("Srx Engineer") {
		t.Error("dot must not act as a wildcard")
	}
}
