// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rayaw/storefront/pkg/pointer"
)

/*
TestAssign only overwrites when a value is provided.
*/
func TestAssign(t *testing.T) {
	name := "Ama"

	assert.False(t, pointer.Assign(&name, nil))
	assert.Equal(t, "Ama", name)

	assert.True(t, pointer.Assign(&name, pointer.To("Kofi")))
	assert.Equal(t, "Kofi", name)

	assert.Equal(t, "", pointer.Val[string](nil))
	assert.Equal(t, 3, pointer.Val(pointer.To(3)))
}
