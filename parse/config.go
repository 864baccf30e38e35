/*package parse reads the config files used by baofs. A config file starts
with a [header] line naming its type and continues with "Name = value"
assignments. Everything after a '#' on a line is a comment.*/
package parse

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

/////////////////////
// Conversion Code //
/////////////////////

type varType int

const (
	floatVar varType = iota
	stringVar
	stringsVar
)

func (v varType) String() string {
	switch v {
	case floatVar:
		return "float"
	case stringVar:
		return "string"
	case stringsVar:
		return "string list"
	}
	panic("Impossible")
}

type conversionFunc func(string) bool

// ConfigVars is a registry of the variables that can be set by a particular
// type of config file.
type ConfigVars struct {
	name            string
	varNames        []string
	varTypes        []varType
	conversionFuncs []conversionFunc
}

func floatConv(ptr *float64) conversionFunc {
	return func(s string) bool {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return false
		}
		*ptr = f
		return true
	}
}

func stringConv(ptr *string) conversionFunc {
	return func(s string) bool {
		*ptr = strings.TrimSpace(s)
		return true
	}
}

func strToList(a string) []string {
	strs := strings.Split(a, ",")
	for i := range strs {
		strs[i] = strings.TrimSpace(strs[i])
	}
	return strs
}

func stringsConv(ptr *[]string) conversionFunc {
	return func(s string) bool {
		if strings.TrimSpace(s) == "" {
			*ptr = []string{}
			return true
		}
		toks := strToList(s)
		for j := range toks {
			if toks[j] == "" {
				return false
			}
		}
		*ptr = toks
		return true
	}
}

// NewConfigVars creates a registry for config files with the header [name].
func NewConfigVars(name string) *ConfigVars {
	return &ConfigVars{name: name}
}

func (vars *ConfigVars) add(name string, t varType, f conversionFunc) {
	vars.varNames = append(vars.varNames, strings.ToLower(name))
	vars.varTypes = append(vars.varTypes, t)
	vars.conversionFuncs = append(vars.conversionFuncs, f)
}

// Float registers a float variable with the default value value.
func (vars *ConfigVars) Float(ptr *float64, name string, value float64) {
	*ptr = value
	vars.add(name, floatVar, floatConv(ptr))
}

// String registers a string variable with the default value value.
func (vars *ConfigVars) String(ptr *string, name string, value string) {
	*ptr = value
	vars.add(name, stringVar, stringConv(ptr))
}

// Strings registers a comma-separated string list variable with the default
// value value.
func (vars *ConfigVars) Strings(ptr *[]string, name string, value []string) {
	*ptr = value
	vars.add(name, stringsVar, stringsConv(ptr))
}

//////////////////
// Parsing Code //
//////////////////

// ReadConfig reads the config file fname into the variables registered
// with vars.
func ReadConfig(fname string, vars *ConfigVars) error {
	bs, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	return ParseConfig(bs, fname, vars)
}

// ParseConfig parses the contents of a config file. source is only used
// in error messages.
func ParseConfig(data []byte, source string, vars *ConfigVars) error {
	lines := strings.Split(string(data), "\n")
	lines, lineNums := removeComments(lines)
	for i := range lineNums {
		lineNums[i]++
	}

	if len(lines) == 0 || lines[0] != fmt.Sprintf("[%s]", vars.name) {
		return fmt.Errorf(
			"I expected the config file %s to have the header "+
				"[%s] at the top, but didn't find it.", source, vars.name,
		)
	}
	lines, lineNums = lines[1:], lineNums[1:]

	names, vals, errLine := associationList(lines)
	if errLine != -1 {
		return fmt.Errorf(
			"I could not parse line %d of the config file %s because it "+
				"did not take the form of a variable assignment.",
			lineNums[errLine], source,
		)
	}

	if errLine = checkValidNames(names, vars); errLine != -1 {
		return fmt.Errorf(
			"Line %d of the config file %s assigns a value to the "+
				"variable '%s', but config files of type %s don't have that "+
				"variable.", lineNums[errLine], source, names[errLine], vars.name,
		)
	}

	if errLine1, errLine2 := checkDuplicateNames(names); errLine1 != -1 {
		return fmt.Errorf(
			"Lines %d and %d of the config file %s both assign a value to "+
				"the variable '%s'.", lineNums[errLine1], lineNums[errLine2],
			source, names[errLine1],
		)
	}

	if errLine = convertAssoc(names, vals, vars); errLine != -1 {
		j := vars.index(names[errLine])
		typeName := vars.varTypes[j].String()
		return fmt.Errorf(
			"I could not parse line %d of the config file %s because '%s' "+
				"expects values of type %s and '%s' cannot be converted to "+
				"a %s.", lineNums[errLine], source, names[errLine], typeName,
			vals[errLine], typeName,
		)
	}

	return nil
}

func (vars *ConfigVars) index(name string) int {
	for j := range vars.varNames {
		if vars.varNames[j] == name {
			return j
		}
	}
	return -1
}

func removeComments(lines []string) ([]string, []int) {
	out, lineNums := []string{}, []int{}
	for i := range lines {
		line := lines[i]
		if comment := strings.Index(line, "#"); comment != -1 {
			line = line[:comment]
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		out = append(out, line)
		lineNums = append(lineNums, i)
	}
	return out, lineNums
}

func associationList(lines []string) ([]string, []string, int) {
	names, vals := []string{}, []string{}
	for i := range lines {
		eq := strings.Index(lines[i], "=")
		if eq == -1 {
			return nil, nil, i
		}
		name := strings.ToLower(strings.TrimSpace(lines[i][:eq]))
		if len(name) == 0 {
			return nil, nil, i
		}
		names = append(names, name)
		vals = append(vals, strings.TrimSpace(lines[i][eq+1:]))
	}
	return names, vals, -1
}

func checkValidNames(names []string, vars *ConfigVars) int {
	for i := range names {
		if vars.index(names[i]) == -1 {
			return i
		}
	}
	return -1
}

func checkDuplicateNames(names []string) (int, int) {
	for i := range names {
		for j := i + 1; j < len(names); j++ {
			if names[i] == names[j] {
				return i, j
			}
		}
	}
	return -1, -1
}

func convertAssoc(names, vals []string, vars *ConfigVars) int {
	for i := range names {
		j := vars.index(names[i])
		if ok := vars.conversionFuncs[j](vals[i]); !ok {
			return i
		}
	}
	return -1
}
