/*package version tracks the version of the baofs source and checks that
config files were written against it.*/
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// SourceVersion is the semantic version number of the source code.
const SourceVersion = "0.1.0"

// Parse parses a semantic version number string and returns an error if
// the string is invalid.
func Parse(s string) (major, minor, patch int, err error) {
	toks := strings.Split(s, ".")
	if len(toks) != 3 {
		return -1, -1, -1, fmt.Errorf("Version string '%s' does not take "+
			"the form of three period-separated non-negative numbers.", s)
	}

	nums := [3]int{}
	for i := range toks {
		nums[i], err = strconv.Atoi(strings.TrimSpace(toks[i]))
		if err != nil || nums[i] < 0 {
			return -1, -1, -1, fmt.Errorf("Version string '%s' does not "+
				"take the form of three period-separated non-negative "+
				"numbers.", s)
		}
	}

	return nums[0], nums[1], nums[2], nil
}

// Later returns true if s1 represents a later version of the source than
// s2. An error is returned if either is invalid.
func Later(s1, s2 string) (bool, error) {
	major1, minor1, patch1, err := Parse(s1)
	if err != nil {
		return false, err
	}
	major2, minor2, patch2, err := Parse(s2)
	if err != nil {
		return false, err
	}

	switch {
	case major1 != major2:
		return major1 > major2, nil
	case minor1 != minor2:
		return minor1 > minor2, nil
	default:
		return patch1 > patch2, nil
	}
}

// Check returns an error if a config file targets a version other than
// SourceVersion. Only major and minor numbers need to agree: patch releases
// never change the config format.
func Check(target string) error {
	major, minor, _, err := Parse(target)
	if err != nil {
		return fmt.Errorf("I couldn't parse the 'Version' variable: %w", err)
	}
	smajor, sminor, _, _ := Parse(SourceVersion)
	if major == smajor && minor == sminor {
		return nil
	}
	if later, _ := Later(target, SourceVersion); later {
		return fmt.Errorf("The 'Version' variable is set to %s, which is "+
			"newer than the version of the source, %s. You may need to "+
			"update baofs.", target, SourceVersion)
	}
	return fmt.Errorf("The 'Version' variable is set to %s, but the "+
		"version of the source is %s.", target, SourceVersion)
}
