package utils

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/stellar/pingd/support/logger"
)

// LogConfig logs out the config file
func LogConfig(l logger.Logger, cfg fmt.Stringer) {
	l.Info("configs:")
	for _, line := range strings.Split(strings.TrimSuffix(cfg.String(), "\n"), "\n") {
		l.Infof("     %s", line)
	}
}

// StructString is a helper method that serializes configs; the transform keys are always flattened,
// i.e specify the key meant to be on an inner object at a top level key on the transform map
func StructString(s interface{}, indentLevel uint8, transforms map[string]func(interface{}) interface{}) string {
	var buf bytes.Buffer
	numFields := reflect.TypeOf(s).NumField()
	for i := 0; i < numFields; i++ {
		field := reflect.TypeOf(s).Field(i)
		fieldDisplayName := field.Tag.Get("toml")
		if fieldDisplayName == "" {
			fieldDisplayName = field.Name
		}

		transformFn := passthrough
		if fn, ok := transforms[fieldDisplayName]; ok {
			transformFn = fn
		}

		currentField := reflect.ValueOf(s).Field(i)
		if !currentField.CanInterface() {
			continue
		}

		value := currentField.Interface()
		kind := currentField.Kind()
		if kind == reflect.Ptr && !currentField.IsNil() {
			derefField := reflect.Indirect(currentField)
			value = derefField.Interface()
			kind = derefField.Kind()
		}

		for indentIdx := 0; indentIdx < int(indentLevel); indentIdx++ {
			buf.WriteString("    ")
		}
		if kind == reflect.Struct {
			subString := StructString(value, indentLevel+1, transforms)
			buf.WriteString(fmt.Sprintf("%s:\n%s", fieldDisplayName, subString))
		} else {
			buf.WriteString(fmt.Sprintf("%s: %+v\n", fieldDisplayName, transformFn(value)))
		}
	}
	return buf.String()
}

func passthrough(i interface{}) interface{} {
	return i
}

// Hide returns a placeholder so secret values never reach the logs
func Hide(i interface{}) interface{} {
	if i == "" {
		return ""
	}
	return "<hidden>"
}
