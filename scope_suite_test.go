package template

import (
	"testing"

	jujutesting "github.com/juju/testing"
	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner, per the teacher's own
// pongo2_issues_test.go convention.
func TestScopeSuite(t *testing.T) { TestingT(t) }

// ScopeSuite exercises the compartment-isolation properties from §8
// (properties 2-5): PushBlock/PopBlock copy-on-push LOCAL/PRIVATE, while
// PushInclude/PopInclude additionally reset PRIVATE and leave the caller's
// frame untouched on return. Embedding juju/testing's IsolationSuite gives
// every test a clean SetUpTest/TearDownTest pair, matching the teacher's
// own dependency on it.
type ScopeSuite struct {
	jujutesting.IsolationSuite
	scope *Scope
}

var _ = Suite(&ScopeSuite{})

func (s *ScopeSuite) SetUpTest(c *C) {
	s.IsolationSuite.SetUpTest(c)
	s.scope = NewScope(map[string]*Value{"seed": Int(1)})
}

func (s *ScopeSuite) TestRootFrameSeeded(c *C) {
	c.Assert(s.scope.Depth(), Equals, 1)
	v, err := s.scope.Get("seed", Global)
	c.Assert(err, IsNil)
	c.Assert(v.Integer(), Equals, int64(1))
}

// property 2: PushBlock grows the frame stack by exactly one.
func (s *ScopeSuite) TestPushBlockGrowsDepth(c *C) {
	s.scope.PushBlock()
	c.Assert(s.scope.Depth(), Equals, 2)
	c.Assert(s.scope.PopBlock(), IsNil)
	c.Assert(s.scope.Depth(), Equals, 1)
}

// A block frame's LOCAL starts as a copy of the caller's, so
// writes inside are visible but do not alias the caller's map.
func (s *ScopeSuite) TestPushBlockCopiesLocal(c *C) {
	s.scope.Set("x", Local, Int(1))
	s.scope.PushBlock()
	s.scope.Set("x", Local, Int(2))
	v, err := s.scope.Get("x", Local)
	c.Assert(err, IsNil)
	c.Assert(v.Integer(), Equals, int64(2))

	c.Assert(s.scope.PopBlock(), IsNil)
	v, err = s.scope.Get("x", Local)
	c.Assert(err, IsNil)
	c.Assert(v.Integer(), Equals, int64(1))
}

// property 3: PushInclude starts PRIVATE empty regardless of the caller's
// PRIVATE contents — the included template cannot see the caller's private
// state.
func (s *ScopeSuite) TestPushIncludeResetsPrivate(c *C) {
	s.scope.Set("secret", Private, Str("top"))
	s.scope.PushInclude()
	_, err := s.scope.Get("secret", Private)
	c.Assert(err, NotNil)
	c.Assert(s.scope.PopInclude(), IsNil)

	v, err := s.scope.Get("secret", Private)
	c.Assert(err, IsNil)
	c.Assert(v.String(), Equals, "top")
}

// property 4: on PopInclude, the caller's LOCAL/PRIVATE are restored
// unchanged — mutations made inside the include frame never leak back.
func (s *ScopeSuite) TestPopIncludeDoesNotLeakLocal(c *C) {
	s.scope.Set("x", Local, Int(1))
	s.scope.PushInclude()
	s.scope.Set("x", Local, Int(99))
	c.Assert(s.scope.PopInclude(), IsNil)

	v, err := s.scope.Get("x", Local)
	c.Assert(err, IsNil)
	c.Assert(v.Integer(), Equals, int64(1))
}

// GLOBAL is shared across every frame, block or include.
func (s *ScopeSuite) TestGlobalIsSharedAcrossFrames(c *C) {
	s.scope.PushInclude()
	s.scope.Set("shared", Global, Str("visible"))
	c.Assert(s.scope.PopInclude(), IsNil)

	v, err := s.scope.Get("shared", Global)
	c.Assert(err, IsNil)
	c.Assert(v.String(), Equals, "visible")
}

func (s *ScopeSuite) TestPopBlockWithoutPushIsAnError(c *C) {
	err := s.scope.PopBlock()
	c.Assert(err, NotNil)
}

func (s *ScopeSuite) TestPopIncludeAgainstBlockFrameIsAnError(c *C) {
	s.scope.PushBlock()
	err := s.scope.PopInclude()
	c.Assert(err, NotNil)
}

func (s *ScopeSuite) TestUnsetAndClear(c *C) {
	s.scope.Set("x", Local, Int(1))
	s.scope.Set("y", Local, Int(2))
	s.scope.Unset("x", Local)
	_, err := s.scope.Get("x", Local)
	c.Assert(err, NotNil)
	v, err := s.scope.Get("y", Local)
	c.Assert(err, IsNil)
	c.Assert(v.Integer(), Equals, int64(2))

	s.scope.Clear(Local)
	_, err = s.scope.Get("y", Local)
	c.Assert(err, NotNil)
}

// TEMPLATE-compartment writes (SetTemplate) land in the enclosing include
// frame's LOCAL, so they are visible inside the current block frame and
// survive its pop.
func (s *ScopeSuite) TestSetTemplateTargetsIncludeRoot(c *C) {
	s.scope.PushBlock()
	s.scope.SetTemplate("t", Str("root"))
	v, err := s.scope.Get("t", Local)
	c.Assert(err, IsNil)
	c.Assert(v.String(), Equals, "root")
	c.Assert(s.scope.PopBlock(), IsNil)

	v, err = s.scope.Get("t", Local)
	c.Assert(err, IsNil)
	c.Assert(v.String(), Equals, "root")
}
