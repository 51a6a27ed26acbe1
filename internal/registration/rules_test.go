package registration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRequired(t *testing.T) {
	require.False(t, Required().Check(""))
	require.True(t, Required().Check("x"))
	require.True(t, Required().Check(" "))
}

func TestMinLength(t *testing.T) {
	rule := MinLength(2)

	require.True(t, rule.Check(""), "empty is left to Required")
	require.False(t, rule.Check("A"))
	require.True(t, rule.Check("Al"))
	require.Equal(t, TooShort, rule.Failure)
}

func TestMinLength_CountsGraphemes(t *testing.T) {
	rule := MinLength(2)

	// e + combining acute accent is one character.
	require.False(t, rule.Check("e\u0301"))
	require.True(t, rule.Check("Zoë"))
	require.False(t, rule.Check("👩‍💻"))
}

func TestEmailSyntax(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{"empty", "", true},
		{"simple", "a@edu.com", true},
		{"single label domain", "a@localhost", true},
		{"dotted local part", "first.last@university.edu", true},
		{"specials", "o'brien+tag@a.a", true},
		{"hyphenated label", "a@my-school.edu.com", true},
		{"no at", "edu.com", false},
		{"no local part", "@edu.com", false},
		{"no domain", "a@", false},
		{"double at", "a@@edu.com", false},
		{"leading dot", ".a@edu.com", false},
		{"double dot", "a..b@edu.com", false},
		{"trailing dot domain", "a@edu.", false},
		{"leading hyphen label", "a@-edu.com", false},
		{"trailing hyphen label", "a@edu-.com", false},
		{"space", "a b@edu.com", false},
		{"local part too long", strings.Repeat("a", 65) + "@m.m", false},
		{"local part at limit", strings.Repeat("a", 64) + "@m.m", true},
		{"too long overall", "a@" + strings.Repeat(strings.Repeat("b", 60)+".", 5) + "m", false},
		{"label too long", "a@" + strings.Repeat("b", 64) + ".m", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.valid, EmailSyntax().Check(tt.email))
		})
	}
}

func TestDomainAllowlist(t *testing.T) {
	rule := DomainAllowlist(AcceptedDomains...)

	require.True(t, rule.Check("a@edu.com"))
	require.True(t, rule.Check("a@university.edu"))
	require.True(t, rule.Check("a@a.a"))
	require.True(t, rule.Check("a@m.m"))
	require.True(t, rule.Check("x@m.m.evil.com"), "containment, not suffix")
	require.False(t, rule.Check("a@gmail.com"))
	require.False(t, rule.Check(""))
}

func TestCheck(t *testing.T) {
	require.Equal(t, []Failure{MissingField}, Check(FirstName, ""))
	require.Equal(t, []Failure{TooShort}, Check(LastName, "L"))
	require.Nil(t, Check(FirstName, "Ada"))

	require.Equal(t, []Failure{MissingField, DisallowedDomain}, Check(Email, ""))
	require.Equal(t, []Failure{InvalidEmailSyntax, DisallowedDomain}, Check(Email, "nope"))
	require.Equal(t, []Failure{DisallowedDomain}, Check(Email, "a@gmail.com"))
	require.Equal(t, []Failure{InvalidEmailSyntax}, Check(Email, "a b@m.m"))

	require.Equal(t, []Failure{MissingField}, Check(University, ""))
	require.Nil(t, Check(University, "MIT"))
}

func TestFailureString(t *testing.T) {
	require.Equal(t, "MissingField", MissingField.String())
	require.Equal(t, "DuplicateEmail", DuplicateEmail.String())
	require.Equal(t, "Unknown", Failure(0).String())
}

func TestFieldNames(t *testing.T) {
	require.Equal(t, "firstName", FirstName.Name())
	require.Equal(t, "university", University.String())
	require.Equal(t, "Last name", LastName.Label())
	require.Equal(t, "unknown", Field(9).Name())
}

var asciiNoSuffix = rapid.StringMatching(`[a-z0-9.@]{0,24}`).Filter(func(s string) bool {
	for _, d := range AcceptedDomains {
		if strings.Contains(s, d) {
			return false
		}
	}
	return true
})

func TestDomainAllowlist_RejectsWithoutSuffix(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		email := asciiNoSuffix.Draw(t, "email")
		if DomainAllowlist(AcceptedDomains...).Check(email) {
			t.Fatalf("%q has no accepted domain but passed", email)
		}
	})
}

func TestDomainAllowlist_AcceptsAnywhere(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prefix := rapid.StringMatching(`[a-z0-9.]{0,12}`).Draw(t, "prefix")
		suffix := rapid.StringMatching(`[a-z0-9.]{0,12}`).Draw(t, "suffix")
		domain := rapid.SampledFrom(AcceptedDomains).Draw(t, "domain")

		email := prefix + domain + suffix
		if !DomainAllowlist(AcceptedDomains...).Check(email) {
			t.Fatalf("%q contains %q but failed", email, domain)
		}
	})
}
