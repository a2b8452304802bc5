package activitylog

import (
	"fmt"
	"reflect"

	"ats-backend/lib/utils/helpers"
	dbmodels "ats-backend/models/db"
)

var ignoreFields = map[string]bool{
	"id":         true,
	"company_id": true,
	"created_at": true,
	"updated_at": true,
	"deleted_at": true,
}

// UpdateChanges diffs an update map against the current record and keeps
// only the fields that actually change. rec must be a struct; embedded
// structs are flattened one level so BaseCompanyModel fields fall under
// the ignore list. Fields carrying a comment tag are reported under that
// label instead of the column name.
func UpdateChanges(descr string, rec interface{}, updMap map[string]interface{}) dbmodels.ActivityChanges {
	result := dbmodels.ActivityChanges{
		Description: descr,
		Data:        make([]dbmodels.ActivityChange, 0, len(updMap)),
	}
	if len(updMap) == 0 {
		return result
	}
	recMap := map[string]interface{}{}
	labelMap := map[string]string{}
	collectFields(reflect.ValueOf(rec), recMap, labelMap)

	for key, value := range updMap {
		fieldName := helpers.ToSnakeCase(key)
		if ignoreFields[fieldName] {
			continue
		}
		change := dbmodels.ActivityChange{
			Field:    fieldName,
			OldValue: "",
			NewValue: getValue(value),
		}
		if oldValue, ok := recMap[fieldName]; ok {
			change.OldValue = oldValue
		}
		if change.OldValue == change.NewValue {
			continue
		}
		if label := labelMap[fieldName]; label != "" {
			change.Field = label
		}
		result.Data = append(result.Data, change)
	}
	return result
}

func collectFields(vType reflect.Value, out map[string]interface{}, labels map[string]string) {
	if vType.Kind() == reflect.Ptr {
		if vType.IsNil() {
			return
		}
		vType = vType.Elem()
	}
	rType := vType.Type()
	for k := 0; k < rType.NumField(); k++ {
		field := rType.Field(k)
		if field.Anonymous {
			collectFields(vType.Field(k), out, labels)
			continue
		}
		fieldName := helpers.ToSnakeCase(field.Name)
		out[fieldName] = getValue(vType.Field(k).Interface())
		if comment := field.Tag.Get(dbmodels.CommentTag); comment != "" {
			labels[fieldName] = comment
		}
	}
}

func getValue(value interface{}) interface{} {
	if value == nil {
		return ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return ""
		}
		return getValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Map, reflect.Struct:
		return fmt.Sprintf("%v", value)
	}
	return value
}
