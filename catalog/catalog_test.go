package catalog

import "testing"

func TestProgramCatalogShape(t *testing.T) {
	if got := len(Programs()); got != 4 {
		t.Fatalf("expected 4 programs, got %d", got)
	}
	for _, p := range Programs() {
		for _, lvl := range Levels {
			cur, ok := p.Curricula[lvl]
			if !ok {
				t.Fatalf("program %s missing curriculum for %s", p.ID, lvl)
			}
			if cur.Days != Days(lvl) {
				t.Fatalf("program %s level %s: curriculum days %d != level days %d", p.ID, lvl, cur.Days, Days(lvl))
			}
			if len(cur.Topics) == 0 {
				t.Fatalf("program %s level %s has no topics", p.ID, lvl)
			}
			if len(Titles(p.ID, lvl)) != Days(lvl) {
				t.Fatalf("program %s level %s: title pool has %d entries, want %d", p.ID, lvl, len(Titles(p.ID, lvl)), Days(lvl))
			}
		}
	}
}

func TestLevelTables(t *testing.T) {
	tests := []struct {
		level   Level
		days    int
		price   int
		credits int
	}{
		{LevelBeginner, 7, 3000, 1},
		{LevelIntermediate, 10, 7000, 3},
		{LevelExpert, 14, 12000, 5},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(string(tc.level), func(t *testing.T) {
			if got := Days(tc.level); got != tc.days {
				t.Fatalf("Days(%s) = %d, want %d", tc.level, got, tc.days)
			}
			if got := Price(tc.level); got != tc.price {
				t.Fatalf("Price(%s) = %d, want %d", tc.level, got, tc.price)
			}
			if got := Credits(tc.level); got != tc.credits {
				t.Fatalf("Credits(%s) = %d, want %d", tc.level, got, tc.credits)
			}
		})
	}
}

func TestNormalizeProgramID(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"vdaa", "vdaa"},
		{"VADMIN", "vadmin"},
		{"Virtual Data Analysis Assistant Training Program", "vdaa"},
		{"virtual administrative assistant", "vadmin"},
		{"Editorial track", "veditorial"},
		{"marketing", "vmarketing"},
		{"", "vdaa"},
		{"something else", "vdaa"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.raw, func(t *testing.T) {
			if got := NormalizeProgramID(tc.raw); got != tc.want {
				t.Fatalf("NormalizeProgramID(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestNormalizeLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want Level
	}{
		{"beginner", LevelBeginner},
		{"BEGINNER", LevelBeginner},
		{"Intermediate", LevelIntermediate},
		{"int", LevelIntermediate},
		{"expert", LevelExpert},
		{"exp", LevelExpert},
		{"", LevelBeginner},
		{"unknown", LevelBeginner},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.raw, func(t *testing.T) {
			if got := NormalizeLevel(tc.raw); got != tc.want {
				t.Fatalf("NormalizeLevel(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestTitlesNeverEmpty(t *testing.T) {
	if got := Titles("nope", Level("bogus")); len(got) == 0 {
		t.Fatal("Titles for unknown program/level must fall back, not return empty")
	}
}
