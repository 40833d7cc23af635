// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package dog

import (
	"github.com/mohae/deepcopy"
)

// Clone returns an independent copy of the dog.
func (d *Dog) Clone() *Dog {
	return deepcopy.Copy(d).(*Dog)
}

// Clone returns an independent copy of the trial.
func (t *Trial) Clone() *Trial {
	return deepcopy.Copy(t).(*Trial)
}

// Clone returns an independent copy of the run.
func (r *Run) Clone() *Run {
	return deepcopy.Copy(r).(*Run)
}

// Clone returns an independent copy of every dog.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	return deepcopy.Copy(l).(List)
}
