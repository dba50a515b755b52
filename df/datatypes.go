package df

import "fmt"

// DataTypes are the types of data that the package supports
type DataTypes uint8

// values of DataTypes
const (
	DTunknown DataTypes = 0 + iota
	DTstring
	DTfloat
	DTint
	DTdate
	DTany // keep as last entry
)

//go:generate stringer -type=DataTypes

// MaxDT is max value of DataTypes type
const MaxDT = DTany

func DTFromString(nm string) DataTypes {
	const skeleton = "%v"

	var nms []string
	for ind := DataTypes(0); ind <= MaxDT; ind++ {
		nms = append(nms, fmt.Sprintf(skeleton, ind))
	}

	pos := position(nm, nms)
	if pos < 0 {
		return DTunknown
	}

	return DataTypes(uint8(pos))
}

func (d DataTypes) IsNumeric() bool {
	return d == DTfloat || d == DTint
}

// promote returns the type two columns of types d1 and d2 share when stacked.
func promote(d1, d2 DataTypes) DataTypes {
	switch {
	case d1 == d2:
		return d1
	case d1.IsNumeric() && d2.IsNumeric():
		return DTfloat
	default:
		return DTstring
	}
}
