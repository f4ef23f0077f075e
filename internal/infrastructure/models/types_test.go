package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func TestStringArray_ValueScan(t *testing.T) {
	v, err := StringArray{"cash", "bank transfer"}.Value()
	require.NoError(t, err)
	require.Equal(t, `{"cash","bank transfer"}`, v)

	var out StringArray
	require.NoError(t, out.Scan(v))
	require.Equal(t, StringArray{"cash", "bank transfer"}, out)

	require.NoError(t, out.Scan([]byte(`{upi}`)))
	require.Equal(t, StringArray{"upi"}, out)
}

func TestStringArray_ParsesAsColumn(t *testing.T) {
	s, err := schema.Parse(&Offer{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	field := s.LookUpField("PaymentMethods")
	require.NotNil(t, field)
	require.Equal(t, schema.DataType("text"), field.DataType)
	_, isRelation := s.Relationships.Relations["PaymentMethods"]
	require.False(t, isRelation)
}

func TestStringArray_DialectTypes(t *testing.T) {
	pg := &gorm.DB{Config: &gorm.Config{Dialector: postgres.New(postgres.Config{})}}
	require.Equal(t, "text[]", StringArray{}.GormDBDataType(pg, nil))

	lite := &gorm.DB{Config: &gorm.Config{Dialector: sqlite.Open(":memory:")}}
	require.Equal(t, "text", StringArray{}.GormDBDataType(lite, nil))
}

func TestStringArray_MigratesOnSQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:stringarray?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(All()...))
	require.True(t, db.Migrator().HasColumn(&Offer{}, "payment_methods"))
}
