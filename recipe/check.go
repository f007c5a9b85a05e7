package recipe

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/multierr"
)

// Check verifies options before use and reports every problem found: a
// missing self generator, nil generators, empty base class, states used in
// styles without a generator and self used as a nested state. Apply
// tolerates all of these except the missing self generator, Check is meant
// to be run once when options are assembled.
func (o Options) Check() (err error) {
	if o.Selectors[Self] == nil {
		err = multierr.Append(err, ErrNoSelfSelector)
	}
	for _, tag := range slices.Sorted(maps.Keys(o.Selectors)) {
		if o.Selectors[tag] == nil && tag != Self {
			err = multierr.Append(err, fmt.Errorf("selector generator for state %q is nil", tag))
		}
	}
	if o.Base != nil {
		if o.Recipe.BaseClass == "" {
			err = multierr.Append(err, errors.New("base style requires recipe base class"))
		}
		err = multierr.Append(err, o.checkStates("base", *o.Base))
	}
	for i, c := range o.Compounds {
		err = multierr.Append(err, o.checkStates(fmt.Sprintf("compound %d", i), c.Style))
	}
	return err
}

func (o Options) checkStates(where string, style Style) (err error) {
	for _, st := range style.States {
		switch {
		case st.State == Self:
			err = multierr.Append(err, fmt.Errorf("%s: self state %q cannot be nested", where, Self))
		case o.Selectors[st.State] == nil:
			err = multierr.Append(err, fmt.Errorf("%s: state %q has no selector generator", where, st.State))
		}
	}
	return err
}
