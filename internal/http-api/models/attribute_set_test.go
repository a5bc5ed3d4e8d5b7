package models

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestAttributeSetColumnTypePerDriver(t *testing.T) {
	pg := &gorm.DB{Config: &gorm.Config{Dialector: postgres.Open("")}}
	assert.Equal(t, "integer[]", AttributeSet{}.GormDBDataType(pg, nil))

	lite := &gorm.DB{Config: &gorm.Config{Dialector: sqlite.Open(":memory:")}}
	assert.Equal(t, "text", AttributeSet{}.GormDBDataType(lite, nil))
}

func TestAttributeSetArrayLiteral(t *testing.T) {
	// The stored literal is postgres array syntax, so the same Value/Scan
	// pair works against both integer[] and text columns.
	value, err := AttributeSet{AttrCompilation, AttrBootleg}.Value()
	require.NoError(t, err)
	assert.Equal(t, "{4,102}", value)

	var scanned AttributeSet
	require.NoError(t, scanned.Scan("{4,102}"))
	assert.Equal(t, AttributeSet{AttrCompilation, AttrBootleg}, scanned)

	var empty AttributeSet
	require.NoError(t, empty.Scan("{}"))
	assert.Empty(t, empty)
}
