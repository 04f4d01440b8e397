package record

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	got, err := Parse("1-3 a: abcde")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := Record{Policy: Policy{Low: 1, High: 3, Target: 'a'}, Subject: "abcde"}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestParseMalformed(t *testing.T) {
	cases := []string{
		"abc",
		"",
		"a-3 a: abcde",
		"1-b a: abcde",
		"1-3 a abcde",
		"1-3 a: ",
		"1-3 ab: abcde",
		"13 a: abcde",
		"99999999999999999999-3 a: abc",
	}

	for _, line := range cases {
		_, err := Parse(line)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("Parse(%q): expected ParseError, got %v", line, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	lines := []string{
		"1-3 a: abcde",
		"1-3 b: cdefg",
		"2-9 c: ccccccccc",
		"10-12 #: ##x#",
		"0-0 é: café",
	}

	for _, line := range lines {
		r, err := Parse(line)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", line, err)
		}
		if r.String() != line {
			t.Fatalf("expected %q, got %q", line, r.String())
		}
		again, err := Parse(r.String())
		if err != nil || again != r {
			t.Fatalf("round trip of %q failed: %+v %v", line, again, err)
		}
	}
}

func TestValidateVariants(t *testing.T) {
	cases := []struct {
		line         string
		wantCount    bool
		wantPosition bool
	}{
		{"1-3 a: abcde", true, true},
		{"1-3 b: cdefg", false, false},
		{"2-9 c: ccccccccc", true, false},
		{"1-2 x: xx", true, false},
		{"1-9 x: xab", true, true},
		{"0-1 z: abc", true, false},
	}

	for _, tt := range cases {
		r, err := Parse(tt.line)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.line, err)
		}
		if got := ValidateCount(r); got != tt.wantCount {
			t.Fatalf("%q count: expected %v, got %v", tt.line, tt.wantCount, got)
		}
		if got := ValidatePosition(r); got != tt.wantPosition {
			t.Fatalf("%q position: expected %v, got %v", tt.line, tt.wantPosition, got)
		}
	}
}

func TestParseLines(t *testing.T) {
	lines := []string{"1-3 a: abcde", "1-3 b: cdefg", "2-9 c: ccccccccc"}

	records, malformed, err := ParseLines(lines, false)
	if err != nil {
		t.Fatalf("ParseLines error: %v", err)
	}
	if malformed != 0 {
		t.Fatalf("expected 0 malformed, got %d", malformed)
	}
	if n := CountValid(records, VariantCount); n != 2 {
		t.Fatalf("expected 2 valid by count, got %d", n)
	}
	if n := CountValid(records, VariantPosition); n != 1 {
		t.Fatalf("expected 1 valid by position, got %d", n)
	}
}

func TestParseLinesMalformed(t *testing.T) {
	lines := []string{"1-3 a: abcde", "garbage", "2-9 c: ccccccccc"}

	_, _, err := ParseLines(lines, false)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Line != 2 {
		t.Fatalf("expected line 2, got %d", perr.Line)
	}
	if perr.Text != "garbage" || !strings.HasPrefix(err.Error(), "line 2: ") {
		t.Fatalf("expected error naming line 2 and its text, got %v", err)
	}

	records, malformed, err := ParseLines(lines, true)
	if err != nil {
		t.Fatalf("skip mode error: %v", err)
	}
	if len(records) != 2 || malformed != 1 {
		t.Fatalf("expected 2 records and 1 malformed, got %d and %d", len(records), malformed)
	}
}

func TestParseVariant(t *testing.T) {
	if v, err := ParseVariant(""); err != nil || v != VariantCount {
		t.Fatalf("expected default count variant, got %q %v", v, err)
	}
	if v, err := ParseVariant("position"); err != nil || v != VariantPosition {
		t.Fatalf("expected position variant, got %q %v", v, err)
	}
	if _, err := ParseVariant("other"); err == nil {
		t.Fatal("expected error for unknown variant")
	}
	if Variant("other").Validate(Record{}) {
		t.Fatal("unknown variant must not validate")
	}
}
