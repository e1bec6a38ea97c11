package subject

import (
	"testing"

	"github.com/gitrdm/concolite/pkg/concolic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLookupRoundTrip(t *testing.T) {
	name := "subject_test_echo"
	Register(Subject{
		Name: name,
		Args: []ArgSpec{{Name: "a", Seed: 3}},
		Fn: func(args map[string]*concolic.Value) interface{} {
			return args["a"].Concrete
		},
	})

	got, ok := Lookup(name)
	require.True(t, ok)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, []ArgSpec{{Name: "a", Seed: 3}}, got.Args)
}

func TestLookupMissingReturnsFalse(t *testing.T) {
	_, ok := Lookup("subject_test_does_not_exist")
	assert.False(t, ok)
}

func TestRegisterPanicsOnDuplicateName(t *testing.T) {
	name := "subject_test_dup"
	s := Subject{Name: name, Args: []ArgSpec{{Name: "a", Seed: 0}}, Fn: func(map[string]*concolic.Value) interface{} { return nil }}
	Register(s)
	assert.Panics(t, func() { Register(s) })
}

func TestListIsSortedAndIncludesRegistered(t *testing.T) {
	Register(Subject{Name: "subject_test_zzz", Args: []ArgSpec{{Name: "a", Seed: 0}}, Fn: func(map[string]*concolic.Value) interface{} { return nil }})
	Register(Subject{Name: "subject_test_aaa", Args: []ArgSpec{{Name: "a", Seed: 0}}, Fn: func(map[string]*concolic.Value) interface{} { return nil }})

	names := List()
	var sawAAA, sawZZZ, inOrder bool
	lastIdx := -1
	for i, n := range names {
		if n == "subject_test_aaa" {
			sawAAA = true
			lastIdx = i
		}
		if n == "subject_test_zzz" {
			sawZZZ = true
			inOrder = lastIdx != -1 && lastIdx < i
		}
	}
	assert.True(t, sawAAA)
	assert.True(t, sawZZZ)
	assert.True(t, inOrder, "subject_test_aaa must be listed before subject_test_zzz")
}

func TestAdapterUsesSeedUnlessOverridden(t *testing.T) {
	s := Subject{
		Name: "subject_test_adapter",
		Args: []ArgSpec{{Name: "a", Seed: 9}, {Name: "b", Seed: -1}},
		Fn: func(args map[string]*concolic.Value) interface{} {
			return args["a"].Concrete + args["b"].Concrete
		},
	}
	a := NewAdapter(s)

	assert.Equal(t, []string{"a", "b"}, a.GetNames())

	va := a.CreateArgumentValue(nil, "a", nil)
	assert.EqualValues(t, 9, va.Concrete)
	assert.True(t, va.IsVariable())

	override := int64(100)
	vb := a.CreateArgumentValue(nil, "b", &override)
	assert.EqualValues(t, 100, vb.Concrete)

	result := a.CallFunction(map[string]*concolic.Value{"a": va, "b": vb})
	assert.EqualValues(t, 109, result)
}
