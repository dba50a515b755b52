package df

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDialectDataType(t *testing.T) {
	dlct := &Dialect{dialect: ch}

	tests := map[string]DataTypes{
		"Int32":                           DTint,
		"UInt64":                          DTint,
		"Nullable(Int64)":                 DTint,
		"LowCardinality(Nullable(Int16))": DTint,
		"BIGSERIAL":                       DTint,
		"INT8":                            DTint,
		"Float64":                         DTfloat,
		"Nullable(Float32)":               DTfloat,
		"NUMERIC":                         DTfloat,
		"Date":                            DTdate,
		"DateTime64(3)":                   DTdate,
		"TIMESTAMP":                       DTdate,
		"String":                          DTstring,
		"LowCardinality(String)":          DTstring,
		"TEXT":                            DTstring,
	}

	for dbType, dt := range tests {
		assert.Equal(t, dt, dlct.dataType(dbType), dbType)
	}
}

func TestDeref(t *testing.T) {
	i := 3
	var nilPtr *float64
	s := "a"
	ps := &s

	assert.Equal(t, "abc", deref([]byte("abc")))
	assert.Equal(t, 3, deref(&i))
	assert.Nil(t, deref(nilPtr))
	assert.Nil(t, deref(nil))
	assert.Equal(t, "a", deref(&ps))
	assert.Equal(t, 2.5, deref(2.5))
}

func TestNewDialect(t *testing.T) {
	_, e := NewDialect("mysql", nil)
	assert.NotNil(t, e)

	dlct, e := NewDialect("Postgres", nil)
	assert.Nil(t, e)
	assert.Equal(t, pg, dlct.DialectName())
	assert.Equal(t, "SELECT * FROM train_2017", dlct.Select("train_2017"))

	_, e = OpenDialect("oracle", "")
	assert.NotNil(t, e)
}

func TestDecimalColumn(t *testing.T) {
	dec := decimal.RequireFromString("1234.56")

	col, e := NewCol([]any{deref(dec), deref(&dec), nil}, DTfloat, ColName("taxamount"))
	assert.Nil(t, e)
	assert.Equal(t, 1234.56, col.Element(0))
	assert.Equal(t, 1234.56, col.Element(1))
	assert.True(t, col.IsNull(2))

	var nilDec *decimal.Decimal
	assert.Nil(t, deref(nilDec))
	assert.Equal(t, DTfloat, (&Dialect{dialect: ch}).dataType("Nullable(Decimal(18, 2))"))
}
