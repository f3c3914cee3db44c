package arkprop

import (
	"github.com/stretchr/testify/require"
	"slices"
	"strconv"
	"strings"
	"testing"
)

func decodeFixture(t *testing.T, parts ...[]byte) *Struct {
	t.Helper()

	res, _, err := DecodeStruct(slices.Concat(append(parts, none())...), 0)
	require.NoError(t, err)

	return res.Value
}

func TestBindStruct(t *testing.T) {
	type Stats struct {
		Health float32
		Level  int
	}

	type Dino struct {
		Name    string  `ark:"TamedName"`
		Female  bool    `ark:"bIsFemale"`
		Stats   *Stats  `ark:"MyStats"`
		Missing *Stats  `ark:"NotThere"`
		Weight  float64 `ark:"Weight"`
		Skip    string  `ark:"-"`
	}

	tree := decodeFixture(t,
		strProp("TamedName", "Rex"),
		boolProp("bIsFemale", true),
		structProp("MyStats", "DinoStatsData", 0, slices.Concat(floatProp("Health", 250.5), intProp("Level", 0, 42), none())),
		floatProp("Weight", 12.25),
		strProp("Skip", "nope"),
	)

	var dino Dino
	require.NoError(t, Bind(tree, &dino))
	require.Equal(t, Dino{
		Name:   "Rex",
		Female: true,
		Stats:  &Stats{Health: 250.5, Level: 42},
		Weight: 12.25,
	}, dino)
}

func TestBindIndexed(t *testing.T) {
	type Tribe struct {
		Members []string `ark:"MembersPlayerName,indexed"`
		Ranks   []int32  `ark:"Rank,indexed"`
		Nobody  []string `ark:"Nobody,indexed"`
	}

	tree := decodeFixture(t,
		strProp("MembersPlayerName", "Alice"),
		intProp("Rank", 2, 30),
		slices.Concat(header("MembersPlayerName", "StrProperty", len(str("Carol")), 2), str("Carol")),
		intProp("Rank", 0, 10),
		slices.Concat(header("MembersPlayerName", "StrProperty", len(str("Bob")), 1), str("Bob")),
	)

	tribe, err := UnmarshalNew[Tribe](SourceOf(tree))
	require.NoError(t, err)
	require.Equal(t, Tribe{
		Members: []string{"Alice", "Bob", "Carol"},
		Ranks:   []int32{10, 30},
	}, tribe)
}

func TestBindRawValues(t *testing.T) {
	type Raw struct {
		Owner    ObjectRef
		Nothing  *string
		Location Opaque
		Inner    *Struct
		Levels   *Array
	}

	type Converted struct {
		Owner  string
		Levels []uint16
		Inner  map[string]any
	}

	type Untyped struct {
		Levels any
	}

	tree := decodeFixture(t,
		objectIndexProp("Owner", 42),
		slices.Concat(header("Nothing", "ObjectProperty", 4, 0), u32(0xffffffff)),
		structProp("Location", "Vector", 0, make([]byte, 12)),
		structProp("Inner", "InnerData", 0, slices.Concat(intProp("A", 0, 1), none())),
		arrayProp("Levels", "IntProperty", 2, slices.Concat(u32(1), u32(2))),
	)

	var raw Raw
	require.NoError(t, Bind(tree, &raw))

	require.Equal(t, ObjectRef{Kind: RefIndex, Index: 42}, raw.Owner)
	require.Nil(t, raw.Nothing)
	require.Equal(t, Opaque{Type: "Vector", Raw: make([]byte, 12)}, raw.Location)
	require.Equal(t, "InnerData", raw.Inner.Type)
	require.Equal(t, 2, raw.Levels.Len())

	var converted Converted
	require.NoError(t, Bind(tree, &converted))

	require.Equal(t, "0x2a", converted.Owner)
	require.Equal(t, []uint16{1, 2}, converted.Levels)
	require.Equal(t, map[string]any{StructTypeKey: "InnerData", "A": int32(1)}, converted.Inner)

	var untyped Untyped
	require.NoError(t, Bind(tree, &untyped))
	require.Same(t, raw.Levels, untyped.Levels)
}

func TestBindTaggedFieldWinsOverUntagged(t *testing.T) {
	type Target struct {
		Levels  []uint16
		Unknown any `ark:"Levels"`
	}

	tree := decodeFixture(t, arrayProp("Levels", "IntProperty", 2, slices.Concat(u32(1), u32(2))))

	var target Target
	require.NoError(t, Bind(tree, &target))
	require.Nil(t, target.Levels)
	require.IsType(t, &Array{}, target.Unknown)
}

func TestBindFixedArray(t *testing.T) {
	type Target struct {
		Colors [3]int8 `ark:"Colors"`
		Pair   [2]string
	}

	tree := decodeFixture(t,
		arrayProp("Colors", "ByteProperty", 4, []byte{1, 2, 3, 4}),
		arrayProp("Pair", "StrProperty", 1, str("left")),
	)

	target, err := UnmarshalNew[Target](SourceOf(tree))
	require.NoError(t, err)
	require.Equal(t, Target{Colors: [3]int8{1, 2, 3}, Pair: [2]string{"left", ""}}, target)
}

func TestBindRange(t *testing.T) {
	type Target struct {
		Small int8 `ark:"Value"`
	}

	type Unsigned struct {
		Value uint32
	}

	tree := decodeFixture(t, intProp("Value", 0, 300))

	_, err := UnmarshalNew[Target](SourceOf(tree))
	require.ErrorIs(t, err, strconv.ErrRange)

	negative := decodeFixture(t, intProp("Value", 0, -1))

	_, err = UnmarshalNew[Unsigned](SourceOf(negative))
	require.ErrorIs(t, err, ErrNotSupported)
}

func TestBindRequireValues(t *testing.T) {
	type Target struct {
		Value  int
		Absent string
	}

	tree := decodeFixture(t, intProp("Value", 0, 1))

	target, err := UnmarshalNew[Target](SourceOf(tree))
	require.NoError(t, err)
	require.Equal(t, Target{Value: 1}, target)

	_, err = UnmarshalNewWith[Target](NewBinder().RequireValues(), SourceOf(tree))
	require.ErrorIs(t, err, ErrNoValue)
}

func TestBindWithTag(t *testing.T) {
	type Target struct {
		Level int `json:"CharacterLevel"`
	}

	tree := decodeFixture(t, intProp("CharacterLevel", 0, 7))

	target, err := UnmarshalNewWith[Target](NewBinder().WithTag("json"), SourceOf(tree))
	require.NoError(t, err)
	require.Equal(t, Target{Level: 7}, target)
}

func TestBindEmbedded(t *testing.T) {
	type Common struct {
		Name  string
		Level int
	}

	type Target struct {
		Common
		Level int `ark:"OtherLevel"`
	}

	tree := decodeFixture(t, strProp("Name", "Rex"), intProp("Level", 0, 1), intProp("OtherLevel", 0, 2))

	target, err := UnmarshalNew[Target](SourceOf(tree))
	require.NoError(t, err)
	require.Equal(t, Target{Common: Common{Name: "Rex", Level: 1}, Level: 2}, target)
}

type upperName string

func (u *upperName) UnmarshalText(text []byte) error {
	*u = upperName(strings.ToUpper(string(text)))
	return nil
}

func TestBindTextUnmarshaler(t *testing.T) {
	type Target struct {
		Name upperName
	}

	tree := decodeFixture(t, strProp("Name", "rex"))

	target, err := UnmarshalNew[Target](SourceOf(tree))
	require.NoError(t, err)
	require.Equal(t, Target{Name: "REX"}, target)
}

func TestBindUnsupported(t *testing.T) {
	type Target struct {
		Ch chan int
	}

	_, err := UnmarshalNew[Target](SourceOf(NewStruct("")))
	require.ErrorAs(t, err, &NotSupportedError{})

	var notAPointer Target
	require.ErrorIs(t, Bind(NewStruct(""), notAPointer), ErrNotSupported)

	// a struct can not be read as a string
	_, err = UnmarshalNew[string](SourceOf(NewStruct("")))
	require.ErrorIs(t, err, ErrNotSupported)
}

func TestMemberIndex(t *testing.T) {
	cases := []struct {
		Key   string
		Index int
		OK    bool
	}{
		{"Name", 0, true},
		{"Name[1]", 1, true},
		{"Name[12]", 12, true},
		{"Name[]", 0, false},
		{"Name[-1]", 0, false},
		{"Name[1", 0, false},
		{"Names", 0, false},
		{"Other[1]", 0, false},
	}

	for _, c := range cases {
		index, ok := memberIndex(c.Key, "Name")
		require.Equal(t, c.OK, ok, c.Key)
		require.Equal(t, c.Index, index, c.Key)
	}
}
