package imports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func registryOf(names ...Name) *Registry {
	r := NewRegistry()
	for _, n := range names {
		r.Record(n)
	}
	return r
}

func threshold(t *testing.T, n int) WildcardPolicy {
	t.Helper()
	p, err := WildcardThreshold(n)
	require.NoError(t, err)
	return p
}

func demoA() *Registry {
	return registryOf(
		NewName("demo.a", "Gamma"),
		NewName("demo.a", "Alpha"),
		NewName("demo.a", "Beta"),
	)
}

func TestPlanner_ThresholdReachedCollapses(t *testing.T) {
	plan := Planner{Policy: threshold(t, 3)}.Plan(demoA())

	assert.Equal(t, []string{"import demo.a.*;"}, plan.ImportLines())
	assert.Equal(t, []string{"demo.a"}, plan.Wildcards())
}

func TestPlanner_ThresholdMissedStaysExplicit(t *testing.T) {
	plan := Planner{Policy: threshold(t, 4)}.Plan(demoA())

	assert.Equal(t, []string{
		"import demo.a.Alpha;",
		"import demo.a.Beta;",
		"import demo.a.Gamma;",
	}, plan.ImportLines())
	assert.Empty(t, plan.Wildcards())
}

func TestPlanner_WildcardBoundary(t *testing.T) {
	for n := 1; n <= 5; n++ {
		reg := NewRegistry()
		for i := 0; i < n; i++ {
			reg.Record(NewName("demo.a", string(rune('A'+i))+"Type"))
		}

		at := Planner{Policy: threshold(t, n)}.Plan(reg)
		assert.Equal(t, []string{"import demo.a.*;"}, at.ImportLines(), "threshold %d", n)

		above := Planner{Policy: threshold(t, n+1)}.Plan(reg)
		assert.Len(t, above.ImportLines(), n, "threshold %d", n+1)
	}
}

func TestPlanner_RegistrationThresholdOverridesDisabledPolicy(t *testing.T) {
	rs := NewRegistrations()
	require.NoError(t, rs.Add(Hint("demo.b", 1)))

	plan := Planner{Registrations: rs}.Plan(registryOf(NewName("demo.b", "Delta")))

	assert.Equal(t, []string{"import demo.b.*;"}, plan.ImportLines())
}

func TestPlanner_RegistrationOrGlobalEitherCollapses(t *testing.T) {
	rs := NewRegistrations()
	require.NoError(t, rs.Add(Hint("demo.a", 10)))

	plan := Planner{Registrations: rs, Policy: threshold(t, 2)}.Plan(demoA())
	assert.Equal(t, []string{"import demo.a.*;"}, plan.ImportLines())

	plan = Planner{Registrations: rs, Policy: threshold(t, 5)}.Plan(demoA())
	assert.Len(t, plan.ImportLines(), 3)
}

func TestPlanner_ExplicitRegistrationWithoutThreshold(t *testing.T) {
	rs := NewRegistrations()
	require.NoError(t, rs.Add(Explicit("demo.a")))

	plan := Planner{Registrations: rs}.Plan(demoA())

	assert.Equal(t, []string{
		"import demo.a.Alpha;",
		"import demo.a.Beta;",
		"import demo.a.Gamma;",
	}, plan.ImportLines())
	assert.True(t, plan.Handled("demo.a"))
}

func TestPlanner_AlwaysPolicy(t *testing.T) {
	reg := registryOf(NewName("demo.a", "Alpha"), NewName("demo.b", "Beta"))

	plan := Planner{Policy: WildcardAlways}.Plan(reg)

	assert.Equal(t, []string{"import demo.a.*;", "import demo.b.*;"}, plan.ImportLines())
}

func TestPlanner_SkipBuiltin(t *testing.T) {
	reg := registryOf(NewName("java.lang", "String"), NewName("demo.a", "Alpha"))

	skipped := Planner{SkipBuiltin: true}.Plan(reg)
	assert.Equal(t, []string{"import demo.a.Alpha;"}, skipped.ImportLines())
	assert.True(t, skipped.Covers(NewName("java.lang", "String")))
	assert.False(t, skipped.Handled("java.lang"))

	kept := Planner{}.Plan(reg)
	assert.Equal(t, []string{"import demo.a.Alpha;", "import java.lang.String;"}, kept.ImportLines())
}

func TestPlanner_StaticsNeverCollapsed(t *testing.T) {
	reg := NewRegistry()
	reg.AddStatic("demo.c.Util.min")
	reg.AddStatic("demo.c.Util.max")
	reg.AddStatic("demo.c.Util.abs")

	plan := Planner{Policy: WildcardAlways}.Plan(reg)

	assert.Equal(t, []string{
		"import static demo.c.Util.abs;",
		"import static demo.c.Util.max;",
		"import static demo.c.Util.min;",
	}, plan.StaticLines())
	assert.Empty(t, plan.ImportLines())
}

func TestPlanner_StandaloneRegistrations(t *testing.T) {
	rs := NewRegistrations()
	require.NoError(t, rs.Add(Explicit("demo.z.SideEffect")))
	require.NoError(t, rs.Add(Hint("demo.q", 2)))
	require.NoError(t, rs.Add(Explicit("demo.c.Loader")))

	plan := Planner{Registrations: rs}.Plan(registryOf(NewName("demo.a", "Alpha")))

	assert.Equal(t, []Line{
		{Target: "demo.a.Alpha"},
		{Target: "demo.c.Loader", Standalone: true},
		{Target: "demo.z.SideEffect", Standalone: true},
	}, plan.Lines)
}

func TestPlanner_DuplicateLinesDropped(t *testing.T) {
	rs := NewRegistrations()
	require.NoError(t, rs.Add(Explicit("demo.a.Alpha")))
	require.NoError(t, rs.Add(Explicit("demo.a.*")))

	plan := Planner{Registrations: rs}.Plan(registryOf(NewName("demo.a", "Alpha")))
	assert.Equal(t, []string{"import demo.a.Alpha;", "import demo.a.*;"}, plan.ImportLines())

	plan = Planner{Registrations: rs, Policy: WildcardAlways}.Plan(registryOf(NewName("demo.a", "Alpha")))
	assert.Equal(t, []string{"import demo.a.*;", "import demo.a.Alpha;"}, plan.ImportLines())
}

func TestPlanner_HandledNamespaceRegistrationNotRepeated(t *testing.T) {
	rs := NewRegistrations()
	require.NoError(t, rs.Add(ExplicitWithThreshold("demo.a", 2)))

	plan := Planner{Registrations: rs}.Plan(demoA())

	assert.Equal(t, []string{"import demo.a.*;"}, plan.ImportLines())
}

func TestPlan_LookupAndCovers(t *testing.T) {
	reg := registryOf(
		NewName("demo.a", "Alpha"),
		NewName("demo.a", "Outer", "Inner"),
		NewName("demo.b", "Beta"),
	)

	plan := Planner{Policy: threshold(t, 2)}.Plan(reg)

	got, ok := plan.Lookup("Alpha")
	require.True(t, ok)
	assert.Equal(t, "demo.a.Alpha", got.Canonical())

	assert.True(t, plan.Covers(NewName("demo.a", "Outer", "Inner")))
	assert.True(t, plan.Covers(NewName("demo.b", "Beta")))
	assert.False(t, plan.Covers(NewName("demo.c", "Beta")))

	_, ok = plan.Lookup("Missing")
	assert.False(t, ok)
}

func TestPlan_EmptyAndNil(t *testing.T) {
	var nilPlan *Plan
	assert.True(t, nilPlan.Empty())
	_, ok := nilPlan.Lookup("Alpha")
	assert.False(t, ok)

	plan := Planner{}.Plan(nil)
	assert.True(t, plan.Empty())
}

func TestPlanner_Idempotent(t *testing.T) {
	rs := NewRegistrations()
	require.NoError(t, rs.Add(Explicit("demo.c.Side")))
	p := Planner{Registrations: rs, Policy: threshold(t, 2)}

	first := p.Plan(demoA())
	second := p.Plan(demoA())

	assert.Equal(t, first.ImportLines(), second.ImportLines())
	assert.Equal(t, first.StaticLines(), second.StaticLines())
}

func TestPlanner_LogsSummary(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := Planner{Policy: threshold(t, 3), Logger: zap.New(core).Sugar()}

	p.Plan(demoA())

	entries := logs.FilterMessage("Import plan computed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 1, fields["import_lines"])
	assert.EqualValues(t, 1, fields["namespaces"])
}

func TestPlanner_ShadowedWildcardWithdrawsShortName(t *testing.T) {
	reg := registryOf(NewName("demo.a", "Alpha"), NewName("demo.b", "Delta"))
	reg.Shadow(NewName("demo.b", "Alpha"))

	plan := Planner{Policy: WildcardAlways}.Plan(reg)

	assert.Equal(t, []string{"import demo.a.*;", "import demo.b.*;"}, plan.ImportLines())
	_, ok := plan.Lookup("Alpha")
	assert.False(t, ok, "Alpha is on demand from demo.a and demo.b")
	assert.True(t, plan.Covers(NewName("demo.b", "Delta")))
}

func TestPlanner_SingleTypeImportBeatsShadowedWildcard(t *testing.T) {
	reg := registryOf(NewName("demo.a", "Alpha"), NewName("demo.b", "Delta"))
	reg.Shadow(NewName("demo.b", "Alpha"))
	rs := NewRegistrations()
	require.NoError(t, rs.Add(Hint("demo.b", 1)))

	plan := Planner{Registrations: rs}.Plan(reg)

	assert.Equal(t, []string{"import demo.a.Alpha;", "import demo.b.*;"}, plan.ImportLines())
	assert.True(t, plan.Covers(NewName("demo.a", "Alpha")))
}

func TestPlanner_ShadowedBuiltinWithdrawsWildcardName(t *testing.T) {
	reg := registryOf(NewName("demo.a", "String"), NewName("demo.a", "Beta"))
	reg.Shadow(NewName("java.lang", "String"))

	plan := Planner{Policy: WildcardAlways}.Plan(reg)

	assert.Equal(t, []string{"import demo.a.*;"}, plan.ImportLines())
	assert.False(t, plan.Covers(NewName("demo.a", "String")), "java.lang is always on demand")
	assert.True(t, plan.Covers(NewName("demo.a", "Beta")))
}
