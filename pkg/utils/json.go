package utils

import (
	"bytes"
	"encoding/json"
)

// PrettyJson serializa o valor com indentação, para logs de depuração.
// Aceita estruturas ou um []byte já serializado.
func PrettyJson(in any) string {
	buffer, ok := in.([]byte)
	if !ok {
		var err error
		buffer, err = json.Marshal(in)
		if err != nil {
			return err.Error()
		}
	}

	var out bytes.Buffer
	if err := json.Indent(&out, buffer, "", "\t"); err != nil {
		return string(buffer)
	}

	return out.String()
}
