package df

import (
	"fmt"
	"strings"
)

// *********** Other ***********

func has[C comparable](needle C, haystack []C) bool {
	return position(needle, haystack) >= 0
}

func position[C comparable](needle C, haystack []C) int {
	for ind, straw := range haystack {
		if needle == straw {
			return ind
		}
	}

	return -1
}

func validName(name string) error {
	const illegal = "!@#$%^&*()=+-;:'`/.,>< ~" + `"`

	if name == "" {
		return fmt.Errorf("empty column name")
	}

	if strings.ContainsAny(name, illegal) {
		return fmt.Errorf("invalid column name: %s", name)
	}

	return nil
}
