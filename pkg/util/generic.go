// pkg/util/generic.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"github.com/iancoleman/orderedmap"
)

// OrderedMap wraps iancoleman/orderedmap so JSON-decoded maps preserve
// their original key order. Nothing in this module uses it yet:
// controller.AgentMap embeds iancoleman/orderedmap directly for its
// insertion-ordered agent ids.
type OrderedMap struct {
	orderedmap.OrderedMap
}

func (o *OrderedMap) CheckJSON(json interface{}) bool {
	_, ok := json.(map[string]interface{})
	return ok
}
