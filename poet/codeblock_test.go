package poet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/poet/errors"
)

func TestCodeBlock_Placeholders(t *testing.T) {
	list := MustClassName("java.util", "List")
	field, err := NewField(Int, "count").Build()
	require.NoError(t, err)

	tests := []struct {
		name   string
		format string
		args   []interface{}
		want   string
	}{
		{"literal", "int x = $L;", []interface{}{42}, "int x = 42;"},
		{"string", "log($S)", []interface{}{"hi \"you\"\n"}, `log("hi \"you\"\n")`},
		{"null string", "log($S)", []interface{}{nil}, "log(null)"},
		{"type", "$T items", []interface{}{list}, "java.util.List items"},
		{"name from spec", "this.$N = $N", []interface{}{field, "count"}, "this.count = count"},
		{"dollar", "$$x", nil, "$x"},
		{"nested block", "return $L", []interface{}{MustCodeBlock("$T.of()", list)}, "return java.util.List.of()"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb, err := NewCodeBlock(tt.format, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cb.String())
		})
	}
}

func TestCodeBlock_FormatErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []interface{}
	}{
		{"dangling dollar", "cost $", nil},
		{"unknown placeholder", "$Q", []interface{}{1}},
		{"missing argument", "$L + $L", []interface{}{1}},
		{"unused argument", "$L", []interface{}{1, 2}},
		{"type is not a type", "$T", []interface{}{"java.util.List"}},
		{"name is not a name", "$N", []interface{}{42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCodeBlock(tt.format, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.IsConfigurationError(err))
		})
	}
}

func TestCodeBlockBuilder_ControlFlow(t *testing.T) {
	cb, err := NewCodeBlockBuilder().
		BeginControlFlow("if (ready)").
		AddStatement("go()").
		NextControlFlow("else").
		AddComment("later").
		AddStatement("wait()").
		EndControlFlow().
		Build()
	require.NoError(t, err)

	assert.Equal(t, `if (ready) {
  go();
} else {
  // later
  wait();
}
`, cb.String())
}

func TestCodeBlockBuilder_KeepsFirstError(t *testing.T) {
	b := NewCodeBlockBuilder().Add("$L").Add("ok()")
	require.Error(t, b.Err())
	_, err := b.Build()
	assert.Error(t, err)
}

func TestCodeBlock_IsEmptyAndToBuilder(t *testing.T) {
	assert.True(t, CodeBlock{}.IsEmpty())

	cb := MustCodeBlock("a()")
	more, err := cb.ToBuilder().AddStatement("b()").Build()
	require.NoError(t, err)
	assert.Equal(t, "a()", cb.String())
	assert.Equal(t, "a()b();\n", more.String())
}

func TestJavaStringLiteral(t *testing.T) {
	assert.Equal(t, `"tab\there"`, javaStringLiteral("tab\there"))
	assert.Equal(t, `"back\\slash"`, javaStringLiteral(`back\slash`))
	assert.Equal(t, `"\u0001"`, javaStringLiteral("\x01"))
	assert.Equal(t, `"it's"`, javaStringLiteral("it's"))
}
