package clean

import (
	"fmt"

	d "github.com/invertedv/zclean/df"
)

// Prune drops the columns in names from t. Every one of them must be present.
func Prune(t *d.DF, names []string) error {
	var absent []string
	for _, nm := range names {
		if t.Column(nm) == nil {
			absent = append(absent, nm)
		}
	}

	if absent != nil {
		return fmt.Errorf("cannot prune absent columns %v", absent)
	}

	return t.DropColumns(names...)
}
