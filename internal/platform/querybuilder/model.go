package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// Columns lists the db-tagged column names of a table model in field order.
func Columns(model any) []string {
	typ := reflect.TypeOf(model)
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil
	}

	out := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		if col, ok := columnName(typ.Field(i)); ok {
			out = append(out, col)
		}
	}
	return out
}

// InsertModels starts an insert of one row per model, with columns taken from
// db tags. Models must share one struct type.
func InsertModels[M any](table string, models []M) (*InsertBuilder, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("insert models are required")
	}

	b := InsertInto(table)
	for i := range models {
		cols, vals, err := columnsAndValues(models[i])
		if err != nil {
			return nil, err
		}
		if i == 0 {
			b.Columns(cols...)
		}
		b.Values(vals...)
	}
	return b, nil
}

func columnsAndValues(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		col, ok := columnName(typ.Field(i))
		if !ok {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model %s has no db columns", typ.Name())
	}
	return cols, vals, nil
}

func columnName(field reflect.StructField) (string, bool) {
	if !field.IsExported() {
		return "", false
	}
	col := strings.TrimSpace(strings.Split(field.Tag.Get("db"), ",")[0])
	if col == "" || col == "-" {
		return "", false
	}
	return col, true
}
