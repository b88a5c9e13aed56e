package criteria

import (
	"github.com/viant/stepflow/model"
	"github.com/viant/stepflow/service/dao"
)

// Matches applies list parameters to a process instance; processes match when
// every recognised parameter matches, unknown parameters are ignored.
func Matches(process *model.Process, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		switch parameter.Name {
		case "State":
			if !matchValue(string(process.CurrentState), parameter.Value) {
				return false
			}
		case "Type":
			if !matchValue(process.Type, parameter.Value) {
				return false
			}
		}
	}
	return true
}

func matchValue(actual string, expected interface{}) bool {
	switch value := expected.(type) {
	case string:
		return actual == value
	case []string:
		for _, candidate := range value {
			if actual == candidate {
				return true
			}
		}
		return false
	}
	return true
}
