package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsMark(t *testing.T) {
	base := InvalidArgumentf("parameter name cannot be empty")
	err := Wrapf(base, "method %s", "Save")

	assert.Equal(t, "method Save: parameter name cannot be empty", err.Error())
	assert.True(t, Is(err, base))
	assert.True(t, IsInvalidArgument(err))
	assert.True(t, IsInvalidArgument(WithStack(base)))
}

type positionedError struct {
	line int
}

func (e *positionedError) Error() string {
	return fmt.Sprintf("line %d: unexpected token", e.line)
}

func TestAsThroughMark(t *testing.T) {
	err := Wrap(Mark(&positionedError{line: 7}, ErrSyntax), "parse Orders.cs")

	var pe *positionedError
	require.True(t, As(err, &pe))
	assert.Equal(t, 7, pe.line)
	assert.True(t, IsSyntaxError(err))
}

func TestHintsSurviveWrapping(t *testing.T) {
	err := WithHintf(UnsupportedFeaturef("records need C# 9, have %s", "8.0"), "set render.lang_version to %s", "9.0")
	err = WithDetail(err, "type Order")
	err = Wrap(err, "render record Order")

	assert.Equal(t, "render record Order: records need C# 9, have 8.0", err.Error())
	assert.Equal(t, []string{"set render.lang_version to 9.0"}, GetAllHints(err))
	assert.Equal(t, "set render.lang_version to 9.0", FlattenHints(err))
	assert.Equal(t, []string{"type Order"}, GetAllDetails(err))
	assert.True(t, Is(err, ErrUnsupportedFeature))
}

func TestJoinListsEvery(t *testing.T) {
	a := Mark(New("Orders.g.cs: missing }"), ErrSyntax)
	b := New("Users.g.cs: unexpected ;")
	err := Join(a, b)

	assert.Contains(t, err.Error(), "missing }")
	assert.Contains(t, err.Error(), "unexpected ;")
	assert.Nil(t, Join(nil, nil))
}

func TestStackTrace(t *testing.T) {
	err := InvalidOperationf("else already added")
	assert.Contains(t, fmt.Sprintf("%+v", err), "errors_test.go")
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithStack(nil))
	assert.Nil(t, WithHint(nil, "hint"))
}

func TestInvalidArgumentf(t *testing.T) {
	err := InvalidArgumentf("parameter %q already declared", "id")

	assert.Equal(t, `parameter "id" already declared`, err.Error())
	assert.True(t, IsInvalidArgument(err))
	assert.False(t, IsInvalidOperation(err))
	assert.True(t, Is(Wrap(err, "method Save"), ErrInvalidArgument))
}

func TestInvalidOperationf(t *testing.T) {
	err := InvalidOperationf("constructor already has a %s initializer", "this")

	assert.True(t, IsInvalidOperation(err))
	assert.False(t, IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "this initializer")
}

func TestTaxonomyIsDistinct(t *testing.T) {
	sentinels := []error{
		ErrInvalidArgument,
		ErrInvalidOperation,
		ErrAssertion,
		ErrExpectation,
		ErrSyntax,
		ErrUnsupportedFeature,
		ErrNotFound,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, Is(a, b), "%v must not match %v", a, b)
		}
	}
}

func TestNilClassification(t *testing.T) {
	assert.False(t, IsInvalidArgument(nil))
	assert.False(t, IsInvalidOperation(nil))
	assert.False(t, IsSyntaxError(nil))
	assert.False(t, IsNotFoundError(nil))
}

func TestUnsupportedFeaturef(t *testing.T) {
	err := UnsupportedFeaturef("records require C# %s", "9.0")
	assert.True(t, Is(err, ErrUnsupportedFeature))
	assert.True(t, IsNotFoundError(NewNotFoundError("class %s", "Foo")))
}

func ExampleWrap() {
	baseErr := New("unexpected token")
	err := Wrap(baseErr, "failed to parse Foo.cs")
	fmt.Println(err)
	// Output: failed to parse Foo.cs: unexpected token
}
