package firstmatch

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

// lowercase and explode are the canonical "l" tag handlers used across
// the registry tests: plain lowers the body, the 'l' flag splits it
// into single-character strings.
func lowercase(body string, _ FlagSet) (any, error) {
	return strings.ToLower(body), nil
}

func explode(body string, _ FlagSet) (any, error) {
	out := make([]string, 0, len(body))
	for _, r := range strings.ToLower(body) {
		out = append(out, string(r))
	}
	return out, nil
}

type FlagSetSuite struct {
	suite.Suite
}

func TestFlagSetSuite(t *testing.T) {
	suite.Run(t, new(FlagSetSuite))
}

func (s *FlagSetSuite) TestNormalizesOrderAndDuplicates() {
	s.Assert().True(Flags("lc").Equal(Flags("ccl")))
	s.Assert().Equal("cl", Flags("lclc").String())
	s.Assert().Equal(2, Flags("lclc").Len())
}

func (s *FlagSetSuite) TestZeroValueIsEmptySet() {
	var f FlagSet
	s.Assert().True(f.Equal(Flags("")))
	s.Assert().Zero(f.Len())
}

func (s *FlagSetSuite) TestHas() {
	f := Flags("lu")
	s.Assert().True(f.Has('l'))
	s.Assert().True(f.Has('u'))
	s.Assert().False(f.Has('x'))
}

func (s *FlagSetSuite) TestEqualIsExactNotSubset() {
	s.Assert().False(Flags("l").Equal(Flags("lc")))
	s.Assert().False(Flags("lc").Equal(Flags("l")))
}

type RegistrySuite struct {
	suite.Suite
	reg *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.reg = NewRegistry()
	s.reg.Register("l", Flags(""), lowercase)
	s.reg.Register("l", Flags("l"), explode)
}

func (s *RegistrySuite) TestCompilePlainVariant() {
	v, err := s.reg.Compile("l", "HELLO", Flags(""))

	s.Require().NoError(err)
	s.Assert().Equal("hello", v)
}

func (s *RegistrySuite) TestCompileFlaggedVariant() {
	v, err := s.reg.Compile("l", "HELLO", Flags("l"))

	s.Require().NoError(err)
	s.Assert().Equal([]string{"h", "e", "l", "l", "o"}, v)
}

func (s *RegistrySuite) TestCompileUnknownTag() {
	_, err := s.reg.Compile("u", "x", Flags(""))

	var unknown *UnknownTagError
	s.Require().ErrorAs(err, &unknown)
	s.Assert().Equal("u", unknown.Tag)
}

func (s *RegistrySuite) TestCompileNoFlagVariant() {
	_, err := s.reg.Compile("l", "HELLO", Flags("z"))

	var miss *NoFlagVariantError
	s.Require().ErrorAs(err, &miss)
	s.Assert().Equal("l", miss.Tag)
	s.Assert().True(miss.Flags.Equal(Flags("z")))
}

func (s *RegistrySuite) TestFlagLookupIsExactSetEquality() {
	// the 'l' variant exists, but "lc" is not a superset match
	_, err := s.reg.Compile("l", "HELLO", Flags("lc"))

	var miss *NoFlagVariantError
	s.Assert().ErrorAs(err, &miss)
}

func (s *RegistrySuite) TestReregistrationShadowsLastWins() {
	s.reg.Register("l", Flags(""), func(body string, _ FlagSet) (any, error) {
		return strings.ToUpper(body), nil
	})

	v, err := s.reg.Compile("l", "hello", Flags(""))

	s.Require().NoError(err)
	s.Assert().Equal("HELLO", v)

	// the flagged variant is untouched by the shadowing
	v, err = s.reg.Compile("l", "HI", Flags("l"))
	s.Require().NoError(err)
	s.Assert().Equal([]string{"h", "i"}, v)
}

func (s *RegistrySuite) TestShadowHookFires() {
	var shadowed []string
	reg := NewRegistry(WithOnShadow(func(tag string, flags FlagSet) {
		shadowed = append(shadowed, tag+"/"+flags.String())
	}))

	reg.Register("l", Flags(""), lowercase)
	reg.Register("x", Flags(""), lowercase)
	s.Assert().Empty(shadowed)

	reg.Register("l", Flags(""), explode)
	s.Assert().Equal([]string{"l/"}, shadowed)
}

func (s *RegistrySuite) TestCompileMissHookFires() {
	var misses []error
	reg := NewRegistry(WithOnCompileMiss(func(_ string, _ FlagSet, err error) {
		misses = append(misses, err)
	}))
	reg.Register("l", Flags(""), lowercase)

	_, _ = reg.Compile("u", "x", Flags(""))
	_, _ = reg.Compile("l", "x", Flags("z"))
	_, _ = reg.Compile("l", "x", Flags(""))

	s.Require().Len(misses, 2)
	var unknown *UnknownTagError
	s.Assert().ErrorAs(misses[0], &unknown)
	var variant *NoFlagVariantError
	s.Assert().ErrorAs(misses[1], &variant)
}

func (s *RegistrySuite) TestHandlerErrorPropagates() {
	wantErr := errors.New("bad body")
	reg := NewRegistry()
	reg.Register("b", Flags(""), func(string, FlagSet) (any, error) {
		return nil, wantErr
	})

	_, err := reg.Compile("b", "???", Flags(""))

	s.Assert().ErrorIs(err, wantErr)
}

func (s *RegistrySuite) TestTags() {
	s.reg.Register("bin", Flags(""), lowercase)

	s.Assert().Equal([]string{"bin", "l"}, s.reg.Tags())
}

func (s *RegistrySuite) TestVariants() {
	s.reg.Register("l", Flags(""), explode) // shadows the plain variant

	variants := s.reg.Variants("l")
	s.Require().Len(variants, 2)
	// most recent first, shadowed duplicate resolved
	s.Assert().True(variants[0].Equal(Flags("")))
	s.Assert().True(variants[1].Equal(Flags("l")))

	s.Assert().Nil(s.reg.Variants("nope"))
}

func (s *RegistrySuite) TestRegisterRejectsNilHandler() {
	s.Assert().Panics(func() {
		s.reg.Register("l", Flags(""), nil)
	})
}

func (s *RegistrySuite) TestRegisterRejectsEmptyTag() {
	s.Assert().Panics(func() {
		s.reg.Register("", Flags(""), lowercase)
	})
}

func (s *RegistrySuite) TestHandlerReceivesSuppliedFlags() {
	reg := NewRegistry()
	var seen FlagSet
	reg.Register("t", Flags("ab"), func(_ string, flags FlagSet) (any, error) {
		seen = flags
		return nil, nil
	})

	_, err := reg.Compile("t", "", Flags("ba"))

	s.Require().NoError(err)
	s.Assert().True(seen.Equal(Flags("ab")))
}
