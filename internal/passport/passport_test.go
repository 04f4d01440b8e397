package passport

import (
	"errors"
	"testing"

	"github.com/tally/tally/internal/input"
	"github.com/tally/tally/internal/record"
	"github.com/tally/tally/internal/rules"
)

const sample = `ecl:gry pid:860033327 eyr:2020 hcl:#fffffd
byr:1937 iyr:2017 cid:147 hgt:183cm

iyr:2013 ecl:amb cid:350 eyr:2023 pid:028048884
hcl:#cfa07d byr:1929

hcl:#ae17e1 iyr:2013
eyr:2024
ecl:brn pid:760753108 byr:1931
hgt:179cm

hcl:#cfa07d eyr:2025 pid:166559648
iyr:2011 ecl:brn hgt:59in
`

const invalid = `eyr:1972 cid:100
hcl:#18171d ecl:amb hgt:170 pid:186cm iyr:2018 byr:1926

iyr:2019
hcl:#602927 eyr:1967 hgt:170cm
ecl:grn pid:012533040 byr:1946

hcl:dab227 iyr:2012
ecl:brn hgt:182cm pid:021572410 eyr:2020 byr:1992 cid:277

hgt:59cm ecl:zzz
eyr:2038 hcl:74454a iyr:2023
pid:3556412378 byr:2007
`

const valid = `pid:087499704 hgt:74in ecl:grn iyr:2012 eyr:2030 byr:1980
hcl:#623a2f

eyr:2029 ecl:blu cid:129 byr:1989
iyr:2014 pid:896056539 hcl:#a97842 hgt:165cm

hcl:#888785
hgt:164cm byr:2001 iyr:2015 cid:88
pid:545766238 ecl:hzl
eyr:2022

iyr:2010 hgt:158cm hcl:#b6652a ecl:blu byr:1944 eyr:2021 pid:093154719
`

func parse(t *testing.T, content string) []Passport {
	t.Helper()
	passports, _, err := Parse(input.SplitGroups(input.SplitLines(content)), rules.DefaultEngine(), false)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return passports
}

func TestParseSample(t *testing.T) {
	passports := parse(t, sample)
	if len(passports) != 4 {
		t.Fatalf("expected 4 passports, got %d", len(passports))
	}
	first := passports[0]
	if len(first.Fields) != 8 || first.Fields["hcl"] != "#fffffd" || first.Line != 1 {
		t.Fatalf("unexpected first passport %+v", first)
	}
	if passports[1].Line != 4 {
		t.Fatalf("expected second passport on line 4, got %d", passports[1].Line)
	}
}

func TestCountComplete(t *testing.T) {
	if n := CountComplete(rules.DefaultEngine(), parse(t, sample)); n != 2 {
		t.Fatalf("expected 2 complete passports, got %d", n)
	}
}

func TestCountValid(t *testing.T) {
	engine := rules.DefaultEngine()

	if n := CountValid(engine, parse(t, valid)); n != 4 {
		t.Fatalf("expected 4 valid passports, got %d", n)
	}
	bad := parse(t, invalid)
	if len(bad) != 4 {
		t.Fatalf("expected 4 passports, got %d", len(bad))
	}
	if n := CountValid(engine, bad); n != 0 {
		t.Fatalf("expected 0 valid passports, got %d", n)
	}
}

func TestParseMalformed(t *testing.T) {
	groups := input.SplitGroups([]string{"byr:1937 iyr:2017", "", "invalid", "", "zzz:1"})

	_, _, err := Parse(groups, rules.DefaultEngine(), false)
	var perr *record.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Line != 3 {
		t.Fatalf("expected line 3, got %d", perr.Line)
	}

	passports, malformed, err := Parse(groups, rules.DefaultEngine(), true)
	if err != nil {
		t.Fatalf("skip mode error: %v", err)
	}
	if len(passports) != 1 || malformed != 2 {
		t.Fatalf("expected 1 passport and 2 malformed, got %d and %d", len(passports), malformed)
	}
}
