package tweaks

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/scan-io-git/lintmux/internal/diagnostic"
	"github.com/scan-io-git/lintmux/internal/options"
)

var (
	quotedNameRe   = regexp.MustCompile(`name "([^"]+)"`)
	noElseRe       = regexp.MustCompile(`Unnecessary "(else|elif)" after "(return|raise|break|continue)"`)
	lineTooLongRe  = regexp.MustCompile(`\((\d+) > (\d+) characters\)`)
	noElseCodes    = []string{"R1705", "R1720", "R1723", "R1724"}
	enumerateHint  = "Iterate with enumerate() to get both the index and the item instead of range(len(...))"
	noElseTemplate = `The "%s" is redundant because the branch before it always ends with "%s"; remove it and de-indent its body`
)

// Default returns the built-in rule table. It is built on first use and must not be modified.
var Default = sync.OnceValue(func() Table {
	table := Table{
		{Source: diagnostic.SourcePylint, Code: "C0103"}: {
			UsedOptions: []options.Option{options.AllowedOnecharNames},
			ShouldKeep:  keepInvalidName,
		},
		{Source: diagnostic.SourcePylint, Code: "C0200"}: {
			Reword: func(diagnostic.Diagnostic) string { return enumerateHint },
		},
		{Source: diagnostic.SourceFlake8, Code: "E501"}: {
			Reword: rewordLineTooLong,
		},
	}
	for _, code := range noElseCodes {
		table[Key{Source: diagnostic.SourcePylint, Code: code}] = Rule{Reword: rewordNoElse}
	}
	return table
})

// keepInvalidName drops invalid-name reports for single-character names the configuration allows.
func keepInvalidName(d diagnostic.Diagnostic, relevant []options.Arg) bool {
	m := quotedNameRe.FindStringSubmatch(d.Message)
	if m == nil || len([]rune(m[1])) != 1 {
		return true
	}
	value, _ := options.Lookup(relevant, options.AllowedOnecharNames)
	allowed, _ := value.([]string)
	for _, name := range allowed {
		if name == m[1] {
			return false
		}
	}
	return true
}

func rewordNoElse(d diagnostic.Diagnostic) string {
	m := noElseRe.FindStringSubmatch(d.Message)
	if m == nil {
		return d.Message
	}
	return fmt.Sprintf(noElseTemplate, m[1], m[2])
}

func rewordLineTooLong(d diagnostic.Diagnostic) string {
	m := lineTooLongRe.FindStringSubmatch(d.Message)
	if m == nil {
		return d.Message
	}
	return fmt.Sprintf("line is %s characters long, the limit is %s", m[1], m[2])
}
